package export

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/model"
)

// feetToMetersScale converts model feet to glTF meters.
const feetToMetersScale = 0.3048

// glTF accessor component types.
const (
	componentFloat32 = 5126
	componentUint32  = 5125
)

type glbPBR struct {
	BaseColorFactor [4]float64 `json:"baseColorFactor"`
	MetallicFactor  float64    `json:"metallicFactor"`
	RoughnessFactor float64    `json:"roughnessFactor"`
}

type glbMaterial struct {
	PBRMetallicRoughness glbPBR `json:"pbrMetallicRoughness"`
	AlphaMode            string `json:"alphaMode,omitempty"`
	DoubleSided          bool   `json:"doubleSided"`
}

// materialTable gives each material its rendered appearance. Glass is the
// only translucent, double-sided entry.
var materialTable = map[string]glbMaterial{
	model.MaterialGlass: {
		PBRMetallicRoughness: glbPBR{
			BaseColorFactor: [4]float64{0.62, 0.79, 0.90, 0.35},
			RoughnessFactor: 0.05,
		},
		AlphaMode:   "BLEND",
		DoubleSided: true,
	},
	model.MaterialConcrete: {
		PBRMetallicRoughness: glbPBR{
			BaseColorFactor: [4]float64{0.70, 0.70, 0.72, 1.0},
			RoughnessFactor: 0.85,
		},
	},
	model.MaterialGround: {
		PBRMetallicRoughness: glbPBR{
			BaseColorFactor: [4]float64{0.18, 0.43, 0.20, 1.0},
			RoughnessFactor: 1.0,
		},
	},
	model.MaterialMarble: {
		PBRMetallicRoughness: glbPBR{
			BaseColorFactor: [4]float64{0.92, 0.90, 0.87, 1.0},
			RoughnessFactor: 0.15,
		},
	},
}

type glbAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

type glbScene struct {
	Nodes []int `json:"nodes"`
}

type glbNode struct {
	Mesh int    `json:"mesh"`
	Name string `json:"name"`
}

type glbPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    int            `json:"indices"`
	Material   int            `json:"material"`
}

type glbMesh struct {
	Name       string         `json:"name"`
	Primitives []glbPrimitive `json:"primitives"`
}

type glbBuffer struct {
	ByteLength int `json:"byteLength"`
}

type glbBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target,omitempty"`
}

type glbAccessor struct {
	BufferView    int       `json:"bufferView"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float64 `json:"min,omitempty"`
	Max           []float64 `json:"max,omitempty"`
}

type glbDocument struct {
	Asset       glbAsset        `json:"asset"`
	Scene       int             `json:"scene"`
	Scenes      []glbScene      `json:"scenes"`
	Nodes       []glbNode       `json:"nodes"`
	Meshes      []glbMesh       `json:"meshes"`
	Materials   []glbMaterial   `json:"materials"`
	Buffers     []glbBuffer     `json:"buffers"`
	BufferViews []glbBufferView `json:"bufferViews"`
	Accessors   []glbAccessor   `json:"accessors"`
}

func rotateX(p r3.Vec, degrees float64) r3.Vec {
	if math.Abs(degrees) < 1e-9 {
		return p
	}
	r := degrees * math.Pi / 180
	c, s := math.Cos(r), math.Sin(r)
	return r3.Vec{X: p.X, Y: p.Y*c - p.Z*s, Z: p.Y*s + p.Z*c}
}

func floats32LE(vals []float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

func uints32LE(vals []uint32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[4*i:], v)
	}
	return out
}

// EncodeGLB serializes the mesh into a complete GLB byte stream: one node
// and mesh per component (sorted by name), one primitive per material, flat
// per-face normals. It fails without touching any output when the mesh is
// empty.
func EncodeGLB(m *model.Mesh, rotateXDeg float64, feetToMeters bool) ([]byte, error) {
	materials := m.Materials()
	if len(materials) == 0 {
		return nil, errors.New("no geometry found to export")
	}
	materialIndex := make(map[string]int, len(materials))
	for i, name := range materials {
		materialIndex[name] = i
	}

	scale := 1.0
	if feetToMeters {
		scale = feetToMetersScale
	}

	var bin BinaryWriter
	var accessors []glbAccessor
	var meshes []glbMesh
	var nodes []glbNode

	for _, component := range m.Components() {
		var primitives []glbPrimitive

		for _, material := range m.ComponentMaterials(component) {
			triangles := m.ComponentTriangles(component, material)
			if len(triangles) == 0 {
				continue
			}

			positions := make([]float32, 0, len(triangles)*9)
			normals := make([]float32, 0, len(triangles)*9)
			indices := make([]uint32, 0, len(triangles)*3)
			minPos := []float64{math.Inf(1), math.Inf(1), math.Inf(1)}
			maxPos := []float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

			cursor := uint32(0)
			for _, tri := range triangles {
				var out model.Triangle
				for i, p := range tri {
					p = rotateX(p, rotateXDeg)
					out[i] = r3.Scale(scale, p)
				}
				n := out.Normal()
				for _, p := range out {
					px, py, pz := float32(p.X), float32(p.Y), float32(p.Z)
					positions = append(positions, px, py, pz)
					normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))
					minPos[0] = math.Min(minPos[0], float64(px))
					minPos[1] = math.Min(minPos[1], float64(py))
					minPos[2] = math.Min(minPos[2], float64(pz))
					maxPos[0] = math.Max(maxPos[0], float64(px))
					maxPos[1] = math.Max(maxPos[1], float64(py))
					maxPos[2] = math.Max(maxPos[2], float64(pz))
				}
				indices = append(indices, cursor, cursor+1, cursor+2)
				cursor += 3
			}

			posView := bin.Append(floats32LE(positions), targetArrayBuffer)
			nrmView := bin.Append(floats32LE(normals), targetArrayBuffer)
			idxView := bin.Append(uints32LE(indices), targetElementArrayBuffer)

			posAccessor := len(accessors)
			accessors = append(accessors, glbAccessor{
				BufferView:    posView,
				ComponentType: componentFloat32,
				Count:         len(positions) / 3,
				Type:          "VEC3",
				Min:           minPos,
				Max:           maxPos,
			})
			nrmAccessor := len(accessors)
			accessors = append(accessors, glbAccessor{
				BufferView:    nrmView,
				ComponentType: componentFloat32,
				Count:         len(normals) / 3,
				Type:          "VEC3",
			})
			idxAccessor := len(accessors)
			accessors = append(accessors, glbAccessor{
				BufferView:    idxView,
				ComponentType: componentUint32,
				Count:         len(indices),
				Type:          "SCALAR",
			})

			primitives = append(primitives, glbPrimitive{
				Attributes: map[string]int{
					"POSITION": posAccessor,
					"NORMAL":   nrmAccessor,
				},
				Indices:  idxAccessor,
				Material: materialIndex[material],
			})
		}

		if len(primitives) > 0 {
			meshIndex := len(meshes)
			meshes = append(meshes, glbMesh{Name: component, Primitives: primitives})
			nodes = append(nodes, glbNode{Mesh: meshIndex, Name: component})
		}
	}

	sceneNodes := make([]int, len(nodes))
	for i := range sceneNodes {
		sceneNodes[i] = i
	}
	views := make([]glbBufferView, len(bin.Views()))
	for i, v := range bin.Views() {
		views[i] = glbBufferView{Buffer: 0, ByteOffset: v.ByteOffset, ByteLength: v.ByteLength, Target: v.Target}
	}
	mats := make([]glbMaterial, len(materials))
	for i, name := range materials {
		mats[i] = materialTable[name]
	}

	doc := glbDocument{
		Asset:       glbAsset{Version: "2.0", Generator: "hexhome-massing-export"},
		Scene:       0,
		Scenes:      []glbScene{{Nodes: sceneNodes}},
		Nodes:       nodes,
		Meshes:      meshes,
		Materials:   mats,
		Buffers:     []glbBuffer{{ByteLength: bin.Len()}},
		BufferViews: views,
		Accessors:   accessors,
	}

	jsonChunk, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding scene document: %w", err)
	}
	for len(jsonChunk)%4 != 0 {
		jsonChunk = append(jsonChunk, ' ')
	}
	binChunk := bin.Bytes()
	for len(binChunk)%4 != 0 {
		binChunk = append(binChunk, 0)
	}

	total := 12 + 8 + len(jsonChunk) + 8 + len(binChunk)
	out := make([]byte, 0, total)
	header := make([]byte, 12)
	copy(header, "glTF")
	binary.LittleEndian.PutUint32(header[4:], 2)
	binary.LittleEndian.PutUint32(header[8:], uint32(total))
	out = append(out, header...)

	chunkHeader := make([]byte, 8)
	binary.LittleEndian.PutUint32(chunkHeader, uint32(len(jsonChunk)))
	copy(chunkHeader[4:], "JSON")
	out = append(out, chunkHeader...)
	out = append(out, jsonChunk...)

	binary.LittleEndian.PutUint32(chunkHeader, uint32(len(binChunk)))
	copy(chunkHeader[4:], "BIN\x00")
	out = append(out, chunkHeader...)
	out = append(out, binChunk...)

	return out, nil
}

// WriteGLB encodes the mesh and writes the complete file in one shot.
func WriteGLB(m *model.Mesh, path string, rotateXDeg float64, feetToMeters bool) error {
	data, err := EncodeGLB(m, rotateXDeg, feetToMeters)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	return nil
}
