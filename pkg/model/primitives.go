package model

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
)

// skipEdgeTol matches wall edges against declared openings by endpoint
// proximity.
const skipEdgeTol = 1e-3

// planeShape is the 2D interior test used to orient walls.
type planeShape interface {
	Contains(pt geo.Point2D) bool
}

func vec(p geo.Point2D, z float64) r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: z}
}

func r3Up() r3.Vec   { return r3.Vec{Z: 1} }
func r3Down() r3.Vec { return r3.Vec{Z: -1} }

func r3Neg(v r3.Vec) r3.Vec { return r3.Scale(-1, v) }

// r3Horiz lifts a plan direction into model space with no vertical part.
func r3Horiz(d geo.Point2D) r3.Vec { return r3.Vec{X: d.X, Y: d.Y} }

// capRegion triangulates the region and emits a horizontal cap at z, facing
// up or down.
func capRegion(m *Mesh, material, component string, region geo.Region, z float64, up bool) {
	for _, tri := range geo.Triangulate(region) {
		t := Triangle{vec(tri[0], z), vec(tri[1], z), vec(tri[2], z)}
		if !up {
			t = t.Flip()
		}
		m.AddTriangle(material, component, t)
	}
}

func capPolygon(m *Mesh, material, component string, poly geo.Polygon, z float64, up bool) {
	capRegion(m, material, component, geo.RegionFrom(poly), z, up)
}

// quad emits two triangles for the quad (a, b, c, d), wound so the face
// normal agrees with out.
func quad(m *Mesh, material, component string, a, b, c, d, out r3.Vec) {
	m.AddTriangle(material, component, OrientToward(Triangle{a, b, c}, out))
	m.AddTriangle(material, component, OrientToward(Triangle{a, c, d}, out))
}

// solidWallEdge builds a six-face wall box for one edge, centered on the
// edge line with half the thickness to each side. The outward side is
// resolved by probing the interior shape just off the edge midpoint.
func solidWallEdge(m *Mesh, material, component string, p0, p1 geo.Point2D, z0, z1, thickness float64, interior planeShape) {
	edge := p1.Sub(p0)
	length := edge.Length()
	if length < 1e-9 {
		return
	}

	n := geo.Pt(-edge.Y/length, edge.X/length)
	mid := geo.MidPoint(p0, p1)
	if interior.Contains(mid.Add(n.Scale(0.05))) {
		n = n.Scale(-1)
	}

	half := thickness / 2
	o0 := p0.Add(n.Scale(half))
	o1 := p1.Add(n.Scale(half))
	i0 := p0.Sub(n.Scale(half))
	i1 := p1.Sub(n.Scale(half))
	u := edge.Scale(1 / length)

	outward := r3.Vec{X: n.X, Y: n.Y}
	along := r3.Vec{X: u.X, Y: u.Y}

	// Outer and inner faces.
	quad(m, material, component, vec(o0, z0), vec(o1, z0), vec(o1, z1), vec(o0, z1), outward)
	quad(m, material, component, vec(i1, z0), vec(i0, z0), vec(i0, z1), vec(i1, z1), r3.Scale(-1, outward))
	// Top and bottom caps.
	quad(m, material, component, vec(o0, z1), vec(o1, z1), vec(i1, z1), vec(i0, z1), r3.Vec{Z: 1})
	quad(m, material, component, vec(i0, z0), vec(i1, z0), vec(o1, z0), vec(o0, z0), r3.Vec{Z: -1})
	// End caps.
	quad(m, material, component, vec(o0, z0), vec(o0, z1), vec(i0, z1), vec(i0, z0), r3.Scale(-1, along))
	quad(m, material, component, vec(i1, z0), vec(i1, z1), vec(o1, z1), vec(o1, z0), along)
}

func edgeMatches(p0, p1, s0, s1 geo.Point2D) bool {
	direct := p0.Distance(s0) < skipEdgeTol && p1.Distance(s1) < skipEdgeTol
	reverse := p0.Distance(s1) < skipEdgeTol && p1.Distance(s0) < skipEdgeTol
	return direct || reverse
}

// wallBand walls every edge of the ring from z0 to z1, except edges that
// match a skip entry. Zero thickness gives a thin sheet, positive thickness
// a solid box per edge.
func wallBand(m *Mesh, material, component string, ring []geo.Point2D, z0, z1 float64, interior planeShape, skip [][2]geo.Point2D, thickness float64) {
	if len(ring) < 2 || z1 <= z0 {
		return
	}

	for i := range ring {
		p0 := ring[i]
		p1 := ring[(i+1)%len(ring)]

		skipped := false
		for _, se := range skip {
			if edgeMatches(p0, p1, se[0], se[1]) {
				skipped = true
				break
			}
		}
		if skipped {
			continue
		}

		if thickness > 0 {
			solidWallEdge(m, material, component, p0, p1, z0, z1, thickness, interior)
			continue
		}

		t1 := Triangle{vec(p0, z0), vec(p1, z0), vec(p1, z1)}
		t2 := Triangle{vec(p0, z0), vec(p1, z1), vec(p0, z1)}
		n := t1.Normal()
		if math.Abs(n.X)+math.Abs(n.Y) > 1e-9 {
			mid := geo.MidPoint(p0, p1)
			probe := mid.Add(geo.Pt(n.X, n.Y).Scale(0.05))
			if interior.Contains(probe) {
				t1 = t1.Flip()
				t2 = t2.Flip()
			}
		}
		m.AddTriangle(material, component, t1)
		m.AddTriangle(material, component, t2)
	}
}

// wallsForRegion walls every contour of the region, holes included.
func wallsForRegion(m *Mesh, material, component string, region geo.Region, z0, z1 float64, skip [][2]geo.Point2D, thickness float64) {
	for _, contour := range region.Contours() {
		wallBand(m, material, component, contour.Vertices, z0, z1, region, skip, thickness)
	}
}

func wallsForPolygon(m *Mesh, material, component string, poly geo.Polygon, z0, z1 float64, skip [][2]geo.Point2D, thickness float64) {
	wallBand(m, material, component, poly.Vertices, z0, z1, poly, skip, thickness)
}

// extrudeRegion builds a capped prism: top and bottom caps plus walls on
// every contour.
func extrudeRegion(m *Mesh, region geo.Region, z0, z1 float64, topMat, botMat, sideMat, component string, thickness float64) {
	if z1 <= z0 || region.IsEmpty() {
		return
	}
	capRegion(m, topMat, component, region, z1, true)
	capRegion(m, botMat, component, region, z0, false)
	wallsForRegion(m, sideMat, component, region, z0, z1, nil, thickness)
}

// pyramidRoof raises an apex over the base centroid and connects every base
// edge to it, faces up-and-outward.
func pyramidRoof(m *Mesh, material, component string, base []geo.Point2D, zBase, rise float64) {
	var cx, cy float64
	for _, p := range base {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(base))
	cy /= float64(len(base))
	apex := r3.Vec{X: cx, Y: cy, Z: zBase + rise}

	for i := range base {
		p0 := base[i]
		p1 := base[(i+1)%len(base)]
		t := Triangle{vec(p0, zBase), vec(p1, zBase), apex}
		n := t.Normal()
		if n.Z < 0 {
			t = t.Flip()
		} else if math.Abs(n.Z) < 1e-6 && n.X*(p0.X-cx)+n.Y*(p0.Y-cy) < 0 {
			t = t.Flip()
		}
		m.AddTriangle(material, component, t)
	}
}
