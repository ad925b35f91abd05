package export

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/analytics"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/model"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
)

func TestBinaryWriterPaddingAndViews(t *testing.T) {
	var w BinaryWriter

	idx := w.Append([]byte{1, 2, 3}, targetArrayBuffer)
	if idx != 0 {
		t.Fatalf("first view index = %d, want 0", idx)
	}
	if w.Len() != 4 {
		t.Fatalf("length after 3-byte append = %d, want padded 4", w.Len())
	}

	idx = w.Append([]byte{4, 5, 6, 7, 8}, targetElementArrayBuffer)
	if idx != 1 {
		t.Fatalf("second view index = %d, want 1", idx)
	}

	views := w.Views()
	if len(views) != 2 {
		t.Fatalf("got %d views, want 2", len(views))
	}
	if views[0].ByteOffset != 0 || views[0].ByteLength != 3 || views[0].Target != targetArrayBuffer {
		t.Fatalf("first view = %+v", views[0])
	}
	if views[1].ByteOffset != 4 || views[1].ByteLength != 5 || views[1].Target != targetElementArrayBuffer {
		t.Fatalf("second view = %+v", views[1])
	}
}

func squareMesh() *model.Mesh {
	m := model.NewMesh()
	a := r3.Vec{X: 0, Y: 0, Z: 0}
	b := r3.Vec{X: 10, Y: 0, Z: 0}
	c := r3.Vec{X: 10, Y: 10, Z: 0}
	d := r3.Vec{X: 0, Y: 10, Z: 0}
	m.AddTriangle(model.MaterialConcrete, "slab", model.Triangle{a, b, c})
	m.AddTriangle(model.MaterialConcrete, "slab", model.Triangle{a, c, d})
	return m
}

func TestEncodeGLBEmptyMesh(t *testing.T) {
	_, err := EncodeGLB(model.NewMesh(), 0, false)
	if err == nil {
		t.Fatal("expected error for empty mesh")
	}
	if !strings.Contains(err.Error(), "no geometry") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEncodeGLBLayout(t *testing.T) {
	data, err := EncodeGLB(squareMesh(), 0, false)
	if err != nil {
		t.Fatal(err)
	}

	if string(data[:4]) != "glTF" {
		t.Fatalf("magic = %q", data[:4])
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != 2 {
		t.Fatalf("version = %d, want 2", v)
	}
	total := binary.LittleEndian.Uint32(data[8:12])
	if int(total) != len(data) {
		t.Fatalf("declared length %d, actual %d", total, len(data))
	}

	jsonLen := binary.LittleEndian.Uint32(data[12:16])
	if string(data[16:20]) != "JSON" {
		t.Fatalf("first chunk type = %q", data[16:20])
	}
	if jsonLen%4 != 0 {
		t.Fatalf("json chunk length %d not 4-byte aligned", jsonLen)
	}

	binStart := 20 + int(jsonLen)
	binLen := binary.LittleEndian.Uint32(data[binStart : binStart+4])
	if string(data[binStart+4:binStart+8]) != "BIN\x00" {
		t.Fatalf("second chunk type = %q", data[binStart+4:binStart+8])
	}
	if binLen%4 != 0 {
		t.Fatalf("bin chunk length %d not 4-byte aligned", binLen)
	}
	if want := 12 + 8 + int(jsonLen) + 8 + int(binLen); want != len(data) {
		t.Fatalf("chunk arithmetic gives %d, file is %d", want, len(data))
	}

	doc := string(data[20 : 20+jsonLen])
	for _, want := range []string{
		"\"version\":\"2.0\"",
		"\"name\":\"slab\"",
		"\"POSITION\"",
		"\"NORMAL\"",
		"\"VEC3\"",
		"\"SCALAR\"",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("scene document missing %s", want)
		}
	}
	// Two triangles share one primitive: 6 positions, 6 normals, 6 indices.
	if !strings.Contains(doc, "\"count\":6") {
		t.Error("expected accessors with count 6")
	}

	var parsed struct {
		Accessors []struct {
			BufferView    int    `json:"bufferView"`
			ComponentType int    `json:"componentType"`
			Count         int    `json:"count"`
			Type          string `json:"type"`
		} `json:"accessors"`
		BufferViews []struct {
			ByteLength int `json:"byteLength"`
		} `json:"bufferViews"`
	}
	if err := json.Unmarshal(data[20:20+jsonLen], &parsed); err != nil {
		t.Fatal(err)
	}
	for i, a := range parsed.Accessors {
		elemSize := 4
		if a.Type == "VEC3" {
			elemSize = 12
		}
		if got := parsed.BufferViews[a.BufferView].ByteLength; got != a.Count*elemSize {
			t.Errorf("accessor %d: view holds %d bytes, count %d implies %d", i, got, a.Count, a.Count*elemSize)
		}
	}
}

func TestEncodeGLBScaling(t *testing.T) {
	feet, err := EncodeGLB(squareMesh(), 0, false)
	if err != nil {
		t.Fatal(err)
	}
	meters, err := EncodeGLB(squareMesh(), 0, true)
	if err != nil {
		t.Fatal(err)
	}
	fj := string(feet[20:])
	mj := string(meters[20:])
	if !strings.Contains(fj, "\"max\":[10,10,0]") {
		t.Error("unscaled max should reach 10 feet")
	}
	if strings.Contains(mj, "\"max\":[10,10,0]") {
		t.Error("scaled export should not still span 10 units")
	}
}

func TestWriteGLBFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "massing.glb")
	if err := WriteGLB(squareMesh(), path, -90, true); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 20 || string(data[:4]) != "glTF" {
		t.Fatalf("file does not start with a GLB header (%d bytes)", len(data))
	}
}

func buildScenario(t *testing.T) (*plan.Geometry, *config.Params, *analytics.Metrics) {
	t.Helper()
	cfg := config.Default()
	cfg.CourtyardModule = config.CourtyardSharedFrontEdge
	g, err := plan.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return g, cfg, analytics.Measure(g, cfg)
}

func TestWriteSVGContents(t *testing.T) {
	g, cfg, m := buildScenario(t)
	path := filepath.Join(t.TempDir(), "plan.svg")
	if err := WriteSVG(g, path, cfg, m); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)

	for _, want := range []string{
		"<svg xmlns=\"http://www.w3.org/2000/svg\"",
		"marker id=\"arrow\"",
		">Wing A</text>",
		">Wing B</text>",
		">Wing C</text>",
		">Atrium</text>",
		">Master Triangle</text>",
		">Courtyard</text>",
		"Rotation preserves triangle area.",
		"Total plan area:",
		"stroke-dasharray=\"4,4\"",
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	// 3 wings + hex + courtyard + triangle outlines.
	if got := strings.Count(svg, "<polygon"); got != 6 {
		t.Errorf("got %d polygons, want 6", got)
	}
}

func TestWriteSVGWithoutLabels(t *testing.T) {
	g, cfg, m := buildScenario(t)
	cfg.Labels = false
	path := filepath.Join(t.TempDir(), "plan.svg")
	if err := WriteSVG(g, path, cfg, m); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), ">Wing A</text>") {
		t.Error("labels rendered despite being disabled")
	}
	if strings.Contains(string(data), "Legend") {
		t.Error("legend rendered despite labels being disabled")
	}
}

func TestWriteSummary(t *testing.T) {
	_, cfg, m := buildScenario(t)
	path := filepath.Join(t.TempDir(), "summary.txt")
	out := Outputs{PlanSVG: "out/plan.svg", MassingGLB: "out/massing.glb", SummaryTXT: path}
	if err := WriteSummary(path, cfg, m, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"Exploded Hexagon Home - Summary",
		"Parameters",
		"s: 23",
		"d: 7",
		"atrium_roof_apex: 32",
		"Courtyard shared edge matches atrium front edge.",
		"Areas (sq ft)",
		"Total Wings:",
		"Plan SVG: out/plan.svg",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestWriteSummaryCourtyardDisabled(t *testing.T) {
	cfg := config.Default()
	g, err := plan.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m := analytics.Measure(g, cfg)
	path := filepath.Join(t.TempDir(), "summary.txt")
	if err := WriteSummary(path, cfg, m, Outputs{SummaryTXT: path}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Courtyard disabled.") {
		t.Error("expected courtyard disabled line")
	}
}
