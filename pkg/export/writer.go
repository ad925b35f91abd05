// Package export serializes the model and plan to their output formats: a
// binary glTF massing model, an annotated SVG plan diagram, and a plain-text
// summary.
package export

// Buffer view targets from the glTF specification.
const (
	targetArrayBuffer        = 34962
	targetElementArrayBuffer = 34963
)

// BufferView is one registered span of the binary chunk.
type BufferView struct {
	ByteOffset int
	ByteLength int
	Target     int // 0 means no target
}

// BinaryWriter accumulates the binary chunk of a GLB file. Every appended
// blob is padded to 4-byte alignment and registered as a buffer view; the
// view index is returned for use by accessors.
type BinaryWriter struct {
	buf   []byte
	views []BufferView
}

// Append adds a blob and returns its buffer view index.
func (w *BinaryWriter) Append(data []byte, target int) int {
	view := BufferView{
		ByteOffset: len(w.buf),
		ByteLength: len(data),
		Target:     target,
	}
	w.buf = append(w.buf, data...)
	for len(w.buf)%4 != 0 {
		w.buf = append(w.buf, 0)
	}
	w.views = append(w.views, view)
	return len(w.views) - 1
}

// Len returns the current (aligned) chunk length.
func (w *BinaryWriter) Len() int {
	return len(w.buf)
}

// Bytes returns the accumulated chunk.
func (w *BinaryWriter) Bytes() []byte {
	return w.buf
}

// Views returns the registered buffer views in append order.
func (w *BinaryWriter) Views() []BufferView {
	return w.views
}
