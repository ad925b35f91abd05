// Package plan derives the 2D footprint of the home from the parameter set:
// the hexagonal atrium, three radial wings, the rotated master triangle
// hovering above, and the optional courtyard modules.
package plan

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
)

// Wing names, keyed to the hexagon edge each wing grows from.
const (
	WingA = "A" // front-right, edge (5,0)
	WingB = "B" // front-left, edge (3,4)
	WingC = "C" // back, double-height, edge (1,2)
)

// WingEdgeIndices maps each wing to the hexagon edge it extends.
var WingEdgeIndices = map[string][2]int{
	WingA: {5, 0},
	WingB: {3, 4},
	WingC: {1, 2},
}

// triangleEdgeIndices are the alternating hexagon edges whose outward
// offsets form the master triangle, rotated 120 degrees so the triangle
// points fall between the wing axes.
var triangleEdgeIndices = [3][2]int{{1, 2}, {3, 4}, {5, 0}}

// Geometry is the complete derived plan.
type Geometry struct {
	HexVertices       []geo.Point2D
	ExtensionVertices []geo.Point2D
	Wings             map[string]geo.Polygon
	MasterTriangle    geo.Polygon
	AtriumFrontEdge   [2]geo.Point2D
	Courtyard         geo.Polygon // empty when the module is "none"
	SideCourtyardR    geo.Polygon // between wings A and C
	SideCourtyardL    geo.Polygon // between wings B and C
}

// Atrium returns the hexagon as a polygon.
func (g *Geometry) Atrium() geo.Polygon {
	return geo.NewPolygon(g.HexVertices)
}

// Extent returns the largest absolute plan coordinate, used to size the
// terrain patch and metric sectors.
func (g *Geometry) Extent() float64 {
	extent := 0.0
	consider := func(pts []geo.Point2D) {
		for _, p := range pts {
			extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
	}
	consider(g.HexVertices)
	consider(g.ExtensionVertices)
	consider(g.MasterTriangle.Vertices)
	for _, w := range g.Wings {
		consider(w.Vertices)
	}
	return extent
}

// Build derives the plan from the parameters. It fails on degenerate input
// that produces parallel offset lines; range checks belong to schema
// validation, invariant checks to Validate.
func Build(cfg *config.Params) (*Geometry, error) {
	s := cfg.S
	d := cfg.D
	center := geo.Origin

	hex := make([]geo.Point2D, 6)
	for i := 0; i < 6; i++ {
		angle := float64(i) * 60 * math.Pi / 180
		hex[i] = geo.Pt(s*math.Cos(angle), s*math.Sin(angle))
	}
	hex = geo.NewPolygon(hex).EnsureCCW().Vertices

	ext := make([]geo.Point2D, 6)
	for i, v := range hex {
		u := v.Sub(center).Normalize()
		if u.Length() == 0 {
			return nil, fmt.Errorf("hexagon vertex %d coincides with the center", i)
		}
		ext[i] = v.Add(u.Scale(s))
	}

	wings := make(map[string]geo.Polygon, 3)
	for name, e := range WingEdgeIndices {
		wings[name] = geo.NewPolygon([]geo.Point2D{
			hex[e[0]], hex[e[1]], ext[e[1]], ext[e[0]],
		}).EnsureCCW()
	}

	tri, err := buildMasterTriangle(hex, center, d)
	if err != nil {
		return nil, err
	}
	tri = solveTriangleRotation(tri, ext[1])
	if backoff := cfg.TriangleClockwiseBackoffDeg; backoff != 0 {
		tri = tri.RotateAround(tri.Centroid(), -backoff*math.Pi/180).EnsureCCW()
	}
	if shift := cfg.TrianglePlanDownShiftFt; math.Abs(shift) > 1e-9 {
		tri = tri.Translate(geo.Pt(0, -shift)).EnsureCCW()
	}

	front := [2]geo.Point2D{hex[4], hex[5]}

	var courtyard geo.Polygon
	switch cfg.CourtyardModule {
	case config.CourtyardNone:
	case config.CourtyardSharedFrontEdge:
		courtyard = makeSharedFrontEdgeCourtyard(front, tri)
	case config.CourtyardExteriorHex:
		courtyard = makeExteriorHexCourtyard(s)
	default:
		return nil, fmt.Errorf("unknown courtyard module: %s", cfg.CourtyardModule)
	}

	return &Geometry{
		HexVertices:       hex,
		ExtensionVertices: ext,
		Wings:             wings,
		MasterTriangle:    tri,
		AtriumFrontEdge:   front,
		Courtyard:         courtyard,
		SideCourtyardR:    makeSideCourtyardHex(s, 1),
		SideCourtyardL:    makeSideCourtyardHex(s, -1),
	}, nil
}

// buildMasterTriangle offsets the alternating hexagon edges outward by d and
// intersects adjacent offset lines pairwise.
func buildMasterTriangle(hex []geo.Point2D, center geo.Point2D, d float64) (geo.Polygon, error) {
	var lines [3][2]geo.Point2D
	for i, e := range triangleEdgeIndices {
		a, b := geo.OffsetEdgeOutward(hex[e[0]], hex[e[1]], center, d)
		lines[i] = [2]geo.Point2D{a, b}
	}

	top, err := geo.LineIntersection(lines[0][0], lines[0][1], lines[1][0], lines[1][1])
	if err != nil {
		return geo.Polygon{}, fmt.Errorf("building master triangle: %w", err)
	}
	left, err := geo.LineIntersection(lines[1][0], lines[1][1], lines[2][0], lines[2][1])
	if err != nil {
		return geo.Polygon{}, fmt.Errorf("building master triangle: %w", err)
	}
	right, err := geo.LineIntersection(lines[2][0], lines[2][1], lines[0][0], lines[0][1])
	if err != nil {
		return geo.Polygon{}, fmt.Errorf("building master triangle: %w", err)
	}

	return geo.NewPolygon([]geo.Point2D{right, top, left}).EnsureCCW(), nil
}

// solveTriangleRotation spins the triangle about its centroid until its back
// edge passes through wing C's outer corner.
func solveTriangleRotation(tri geo.Polygon, target geo.Point2D) geo.Polygon {
	centroid := tri.Centroid()

	// Back edge: the edge with the highest midpoint.
	backIdx := 0
	bestY := math.Inf(-1)
	for i := 0; i < 3; i++ {
		a, b := tri.Edge(i)
		if mid := (a.Y + b.Y) / 2; mid > bestY {
			bestY = mid
			backIdx = i
		}
	}
	backA, backB := tri.Edge(backIdx)

	angle := SolveRotationAngle(backA, backB, centroid, target)
	return tri.RotateAround(centroid, angle).EnsureCCW()
}

// makeSharedFrontEdgeCourtyard joins the atrium front edge with the master
// triangle's two lowest vertices into a quad.
func makeSharedFrontEdgeCourtyard(front [2]geo.Point2D, tri geo.Polygon) geo.Polygon {
	atriumLeft, atriumRight := front[0], front[1]
	if atriumRight.X < atriumLeft.X {
		atriumLeft, atriumRight = atriumRight, atriumLeft
	}

	verts := append([]geo.Point2D(nil), tri.Vertices...)
	sort.Slice(verts, func(i, j int) bool { return verts[i].Y < verts[j].Y })
	triLeft, triRight := verts[0], verts[1]
	if triRight.X < triLeft.X {
		triLeft, triRight = triRight, triLeft
	}

	return geo.NewPolygon([]geo.Point2D{atriumLeft, atriumRight, triRight, triLeft}).EnsureCCW()
}

// makeExteriorHexCourtyard places a same-size hexagon directly south of the
// atrium, sharing the atrium's vertex spacing.
func makeExteriorHexCourtyard(s float64) geo.Polygon {
	return hexAt(geo.Pt(0, -math.Sqrt(3)*s), s)
}

// makeSideCourtyardHex places a same-size hexagon between a wing pair:
// sign +1 between wings A and C, -1 between wings B and C.
func makeSideCourtyardHex(s float64, sign float64) geo.Polygon {
	return hexAt(geo.Pt(sign*1.5*s, math.Sqrt(3)*s/2), s)
}

func hexAt(center geo.Point2D, s float64) geo.Polygon {
	pts := make([]geo.Point2D, 6)
	for i := 0; i < 6; i++ {
		angle := float64(i) * 60 * math.Pi / 180
		pts[i] = geo.Pt(center.X+s*math.Cos(angle), center.Y+s*math.Sin(angle))
	}
	return geo.NewPolygon(pts).EnsureCCW()
}
