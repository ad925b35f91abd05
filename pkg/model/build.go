package model

import (
	"fmt"
	"strings"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
)

// seamFix pushes the atrium floor cap slightly past the coplanar wall faces
// so no T-junction artifact shows at the floor-wall junction.
const seamFix = 0.05

// Build assembles the full massing model from a validated plan: terrain and
// driveway, the elevated master triangle, the three wings with their garage
// volumes, the sunken atrium with its glass perimeter and pyramid roof, and
// the courtyard modules.
func Build(g *plan.Geometry, cfg *config.Params) (*Mesh, error) {
	switch cfg.CourtyardModule {
	case config.CourtyardNone, config.CourtyardSharedFrontEdge, config.CourtyardExteriorHex:
	default:
		return nil, fmt.Errorf("unknown courtyard module: %s", cfg.CourtyardModule)
	}

	m := NewMesh()

	lower := cfg.LowerGround
	upper := cfg.UpperGround
	slab := cfg.SlabThickness
	ceiling := cfg.CeilingHeight
	triElev := cfg.MasterTriangleElev()
	atriumFloor := cfg.AtriumFloor
	wtConc := cfg.WallThicknessConcrete
	wtGlass := cfg.WallThicknessGlass

	atrium := g.Atrium()
	triangle := g.MasterTriangle

	addTerrain(m, g, cfg)

	// Master triangle: annular floor slab, glass facade, roof slab.
	triangleRing := geo.RegionFrom(triangle).Difference(geo.RegionFrom(atrium))
	extrudeRegion(m, triangleRing, triElev, triElev+slab,
		MaterialConcrete, MaterialConcrete, MaterialConcrete, "master_triangle_floor", wtConc)
	wallsForPolygon(m, MaterialGlass, "master_triangle_facade", triangle,
		triElev+slab, triElev+slab+ceiling, nil, wtGlass)
	extrudeRegion(m, triangleRing, triElev+slab+ceiling, triElev+slab+ceiling+slab,
		MaterialConcrete, MaterialConcrete, MaterialConcrete, "master_triangle_roof_slab", wtConc)

	// Wings A and B carry garages below grade: a sealed foundation prism
	// from the atrium floor up to the garage slab, then concrete walls all
	// around, the atrium edge built separately as a solid wall.
	garageFloor := lower
	for _, name := range []string{plan.WingA, plan.WingB} {
		wing := g.Wings[name]
		e := plan.WingEdgeIndices[name]
		atriumEdge := [2]geo.Point2D{g.HexVertices[e[0]], g.HexVertices[e[1]]}
		comp := "wing_" + strings.ToLower(name)

		extrudeRegion(m, geo.RegionFrom(wing), atriumFloor, garageFloor+slab,
			MaterialConcrete, MaterialConcrete, MaterialConcrete, comp+"_garage_floor", wtConc)
		wallsForPolygon(m, MaterialConcrete, comp+"_garage_facade", wing,
			garageFloor+slab, garageFloor+slab+ceiling, [][2]geo.Point2D{atriumEdge}, wtConc)
		solidWallEdge(m, MaterialConcrete, comp+"_garage_facade",
			atriumEdge[0], atriumEdge[1], garageFloor+slab, garageFloor+slab+ceiling, wtConc, wing)
	}

	// Wing floors, glass facades, and roof slabs. Wing C is double height
	// and carries the marble floor; wings A and C open to the atrium.
	wingFloor := map[string]float64{plan.WingA: upper, plan.WingB: upper, plan.WingC: lower}
	wingAtriumEdges := map[string][2]geo.Point2D{
		plan.WingA: {g.HexVertices[0], g.HexVertices[5]},
		plan.WingC: {g.HexVertices[1], g.HexVertices[2]},
	}
	for _, name := range []string{plan.WingA, plan.WingB, plan.WingC} {
		wing := g.Wings[name]
		floor := wingFloor[name]
		comp := "wing_" + strings.ToLower(name)

		wallTop := floor + ceiling
		topMat := MaterialConcrete
		if name == plan.WingC {
			wallTop = triElev
			topMat = MaterialMarble
		}

		extrudeRegion(m, geo.RegionFrom(wing), floor, floor+slab,
			topMat, MaterialConcrete, MaterialConcrete, comp+"_floor", wtConc)

		var skip [][2]geo.Point2D
		if e, ok := wingAtriumEdges[name]; ok {
			skip = [][2]geo.Point2D{e}
		}
		wallsForPolygon(m, MaterialGlass, comp+"_facade", wing, floor+slab, wallTop, skip, wtGlass)

		extrudeRegion(m, geo.RegionFrom(wing), wallTop, wallTop+slab,
			MaterialConcrete, MaterialConcrete, MaterialConcrete, comp+"_roof_slab", wtConc)
	}

	// Wing C sits lower than the wings with garages, so its atrium edge
	// needs a wall closing the gap between the atrium floor and its slab.
	{
		e := plan.WingEdgeIndices[plan.WingC]
		p0, p1 := g.HexVertices[e[0]], g.HexVertices[e[1]]
		if top := wingFloor[plan.WingC]; top > atriumFloor {
			solidWallEdge(m, MaterialConcrete, "wing_c_atrium_wall",
				p0, p1, atriumFloor, top, wtConc, g.Wings[plan.WingC])
		}
	}

	addAtrium(m, g, cfg)

	addCourtyard(m, g, cfg)
	addSideCourtyards(m, g, cfg)

	return m, nil
}

// addAtrium builds the sunken marble floor slab, the perimeter glass, the
// stacked wing B edge, and the pyramid roof.
func addAtrium(m *Mesh, g *plan.Geometry, cfg *config.Params) {
	slab := cfg.SlabThickness
	ceiling := cfg.CeilingHeight
	triElev := cfg.MasterTriangleElev()
	atriumFloor := cfg.AtriumFloor
	roofBase := cfg.AtriumRoofBase
	wtConc := cfg.WallThicknessConcrete
	wtGlass := cfg.WallThicknessGlass
	atrium := g.Atrium()

	// Floor slab grown past the surrounding walls so the marble cap runs
	// under them with no visible seam.
	floorPoly := atrium.OffsetOutward(wtConc/2 + seamFix)
	capPolygon(m, MaterialMarble, "atrium_floor", floorPoly, atriumFloor+slab, true)
	capPolygon(m, MaterialConcrete, "atrium_floor", floorPoly, atriumFloor, false)

	// Inward-facing slab edge seal, so no void shows from inside the
	// atrium at steep view angles.
	centroid := floorPoly.Centroid()
	for i := range floorPoly.Vertices {
		p0, p1 := floorPoly.Edge(i)
		inward := r3Horiz(centroid.Sub(geo.MidPoint(p0, p1)))
		m.AddTriangle(MaterialConcrete, "atrium_floor",
			OrientToward(Triangle{vec(p0, atriumFloor), vec(p0, atriumFloor+slab), vec(p1, atriumFloor+slab)}, inward))
		m.AddTriangle(MaterialConcrete, "atrium_floor",
			OrientToward(Triangle{vec(p0, atriumFloor), vec(p1, atriumFloor+slab), vec(p1, atriumFloor)}, inward))
	}

	// Perimeter glass from below the marble surface to the roof base, with
	// all three wing edges open; the wing B edge is rebuilt in segments.
	wingBEdge := [2]geo.Point2D{g.HexVertices[3], g.HexVertices[4]}
	openEdges := [][2]geo.Point2D{
		{g.HexVertices[1], g.HexVertices[2]},
		{g.HexVertices[0], g.HexVertices[5]},
		wingBEdge,
	}
	wallsForPolygon(m, MaterialGlass, "atrium_facade", atrium,
		atriumFloor, roofBase, openEdges, wtGlass)

	// Wing B atrium edge: glass below the bedroom level, concrete across
	// it, glass above.
	segments := []struct {
		z0, z1    float64
		material  string
		thickness float64
		component string
	}{
		{atriumFloor, triElev, MaterialGlass, wtGlass, "atrium_facade"},
		{triElev + slab, triElev + slab + ceiling, MaterialConcrete, wtConc, "bedroom_accent_wall"},
		{triElev + slab + ceiling, roofBase, MaterialGlass, wtGlass, "atrium_facade"},
	}
	for _, seg := range segments {
		if seg.z1 <= seg.z0 {
			continue
		}
		solidWallEdge(m, seg.material, seg.component,
			wingBEdge[0], wingBEdge[1], seg.z0, seg.z1, seg.thickness, atrium)
	}

	pyramidRoof(m, MaterialGlass, "atrium_roof", g.HexVertices, roofBase, cfg.AtriumRoofRise)
}
