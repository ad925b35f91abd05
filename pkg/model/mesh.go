// Package model turns a 2D plan into a triangle-soup solid model grouped by
// material and named component, ready for export.
package model

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Material names used by the massing model.
const (
	MaterialGlass    = "glass"
	MaterialConcrete = "concrete"
	MaterialGround   = "ground"
	MaterialMarble   = "marble"
)

// materialOrder fixes the primitive ordering inside exported meshes.
var materialOrder = []string{MaterialGlass, MaterialConcrete, MaterialGround, MaterialMarble}

// Triangle is a single oriented face in model space (Z up).
type Triangle [3]r3.Vec

// Normal returns the unit face normal, or +Z for a degenerate triangle.
func (t Triangle) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0]))
	if r3.Norm(n) == 0 {
		return r3.Vec{Z: 1}
	}
	return r3.Unit(n)
}

// Flip reverses the winding, negating the face normal.
func (t Triangle) Flip() Triangle {
	return Triangle{t[0], t[2], t[1]}
}

// Centroid returns the triangle centroid.
func (t Triangle) Centroid() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(t[0], r3.Add(t[1], t[2])))
}

// SignedVolume returns the signed volume of the tetrahedron formed with the
// origin. Summed over a closed mesh it gives the enclosed volume.
func (t Triangle) SignedVolume() float64 {
	return r3.Dot(t[0], r3.Cross(t[1], t[2])) / 6
}

// OrientOutward flips the triangle if its normal points toward the reference
// point, so the face ends up looking away from ref.
func OrientOutward(t Triangle, ref r3.Vec) Triangle {
	away := r3.Sub(t.Centroid(), ref)
	if r3.Dot(t.Normal(), away) < 0 {
		return t.Flip()
	}
	return t
}

// OrientToward flips the triangle if its normal opposes the given direction.
func OrientToward(t Triangle, dir r3.Vec) Triangle {
	if r3.Dot(t.Normal(), dir) < 0 {
		return t.Flip()
	}
	return t
}

// Mesh accumulates triangles grouped by material and by component.
// AddTriangle is the only way to grow a mesh; readers get stable snapshots.
type Mesh struct {
	byMaterial  map[string][]Triangle
	byComponent map[string]map[string][]Triangle
}

// NewMesh creates an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{
		byMaterial:  map[string][]Triangle{},
		byComponent: map[string]map[string][]Triangle{},
	}
}

// AddTriangle records one face under the given material and component.
func (m *Mesh) AddTriangle(material, component string, tri Triangle) {
	m.byMaterial[material] = append(m.byMaterial[material], tri)
	comp, ok := m.byComponent[component]
	if !ok {
		comp = map[string][]Triangle{}
		m.byComponent[component] = comp
	}
	comp[material] = append(comp[material], tri)
}

// IsEmpty reports whether no triangles have been added.
func (m *Mesh) IsEmpty() bool {
	return len(m.byMaterial) == 0
}

// TriangleCount returns the total number of faces.
func (m *Mesh) TriangleCount() int {
	n := 0
	for _, tris := range m.byMaterial {
		n += len(tris)
	}
	return n
}

// Materials lists the materials present, in the fixed export order.
func (m *Mesh) Materials() []string {
	out := make([]string, 0, len(m.byMaterial))
	for _, mat := range materialOrder {
		if len(m.byMaterial[mat]) > 0 {
			out = append(out, mat)
		}
	}
	return out
}

// MaterialTriangles returns all faces for one material.
func (m *Mesh) MaterialTriangles(material string) []Triangle {
	return m.byMaterial[material]
}

// Components lists component names in sorted order.
func (m *Mesh) Components() []string {
	out := make([]string, 0, len(m.byComponent))
	for name := range m.byComponent {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ComponentMaterials lists the materials a component uses, in export order.
func (m *Mesh) ComponentMaterials(component string) []string {
	comp := m.byComponent[component]
	out := make([]string, 0, len(comp))
	for _, mat := range materialOrder {
		if len(comp[mat]) > 0 {
			out = append(out, mat)
		}
	}
	return out
}

// ComponentTriangles returns the faces of one component and material.
func (m *Mesh) ComponentTriangles(component, material string) []Triangle {
	return m.byComponent[component][material]
}
