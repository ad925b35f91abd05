package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestOrientOutward(t *testing.T) {
	tri := Triangle{
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 0, Y: 1, Z: 1},
	}
	// Reference below the face: the normal must point up.
	out := OrientOutward(tri, r3.Vec{Z: 0})
	if out.Normal().Z <= 0 {
		t.Error("normal should point away from the reference point")
	}
	// Reference above the face: flipped.
	out = OrientOutward(tri, r3.Vec{Z: 2})
	if out.Normal().Z >= 0 {
		t.Error("normal should flip when the reference moves above")
	}
}

func TestOrientToward(t *testing.T) {
	tri := Triangle{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
	}
	if OrientToward(tri, r3.Vec{Z: -1}).Normal().Z >= 0 {
		t.Error("OrientToward should align the normal with the direction")
	}
	if OrientToward(tri, r3.Vec{Z: 1}).Normal().Z <= 0 {
		t.Error("already-aligned triangle should keep its winding")
	}
}

func TestMeshGrouping(t *testing.T) {
	m := NewMesh()
	if !m.IsEmpty() {
		t.Fatal("new mesh should be empty")
	}
	tri := Triangle{{X: 0}, {X: 1}, {Y: 1}}
	m.AddTriangle(MaterialConcrete, "walls", tri)
	m.AddTriangle(MaterialGlass, "walls", tri)
	m.AddTriangle(MaterialConcrete, "floor", tri)

	if m.TriangleCount() != 3 {
		t.Errorf("triangle count = %d, want 3", m.TriangleCount())
	}
	mats := m.Materials()
	if len(mats) != 2 || mats[0] != MaterialGlass || mats[1] != MaterialConcrete {
		t.Errorf("materials = %v, want [glass concrete]", mats)
	}
	comps := m.Components()
	if len(comps) != 2 || comps[0] != "floor" || comps[1] != "walls" {
		t.Errorf("components = %v", comps)
	}
	if n := len(m.ComponentTriangles("walls", MaterialConcrete)); n != 1 {
		t.Errorf("walls concrete triangles = %d, want 1", n)
	}
}

func TestTerrainProfile(t *testing.T) {
	cases := []struct {
		y    float64
		want float64
	}{
		{-100, 10}, // behind the break: high ground
		{0, 10},
		{50, 0}, // past the low point
		{25, 5}, // halfway down the slope
	}
	for _, c := range cases {
		if got := terrainProfile(c.y, 0, 50, 10, 0); !approxEqual(got, c.want, 1e-9) {
			t.Errorf("terrainProfile(%f) = %f, want %f", c.y, got, c.want)
		}
	}
	// Coincident break lines degrade to the low elevation.
	if got := terrainProfile(5, 5, 5, 10, 0); got != 10 {
		// y <= yBreak wins first.
		t.Errorf("at break = %f", got)
	}
}

func TestExtrudedPrismIsClosed(t *testing.T) {
	m := NewMesh()
	square := geo.NewPolygon([]geo.Point2D{
		geo.Pt(0, 0), geo.Pt(4, 0), geo.Pt(4, 4), geo.Pt(0, 4),
	})
	extrudeRegion(m, geo.RegionFrom(square), 0, 3,
		MaterialConcrete, MaterialConcrete, MaterialConcrete, "prism", 0)

	var volume float64
	for _, tri := range m.MaterialTriangles(MaterialConcrete) {
		volume += tri.SignedVolume()
	}
	if !approxEqual(volume, 48, 1e-6) {
		t.Errorf("enclosed volume = %f, want 48", volume)
	}
}

func TestSolidWallEdgeBoxVolume(t *testing.T) {
	m := NewMesh()
	interior := geo.NewPolygon([]geo.Point2D{
		geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10),
	})
	solidWallEdge(m, MaterialConcrete, "wall", geo.Pt(0, 0), geo.Pt(10, 0), 0, 5, 1, interior)

	if n := m.TriangleCount(); n != 12 {
		t.Fatalf("wall box triangles = %d, want 12", n)
	}
	var volume float64
	for _, tri := range m.MaterialTriangles(MaterialConcrete) {
		volume += tri.SignedVolume()
	}
	if !approxEqual(volume, 50, 1e-6) {
		t.Errorf("wall volume = %f, want 50", volume)
	}
}

func TestWallBandSkipsDeclaredOpenings(t *testing.T) {
	square := geo.NewPolygon([]geo.Point2D{
		geo.Pt(0, 0), geo.Pt(4, 0), geo.Pt(4, 4), geo.Pt(0, 4),
	})
	open := [][2]geo.Point2D{{geo.Pt(0, 0), geo.Pt(4, 0)}}

	m := NewMesh()
	wallBand(m, MaterialGlass, "band", square.Vertices, 0, 3, square, open, 0)
	if n := m.TriangleCount(); n != 6 {
		t.Errorf("triangles = %d, want 6 (three walled edges)", n)
	}

	// Reversed endpoints must match too.
	m = NewMesh()
	reversed := [][2]geo.Point2D{{geo.Pt(4, 0), geo.Pt(0, 0)}}
	wallBand(m, MaterialGlass, "band", square.Vertices, 0, 3, square, reversed, 0)
	if n := m.TriangleCount(); n != 6 {
		t.Errorf("triangles with reversed skip = %d, want 6", n)
	}
}

func TestPyramidRoofFaces(t *testing.T) {
	m := NewMesh()
	hex := make([]geo.Point2D, 6)
	for i := range hex {
		a := float64(i) * 60 * math.Pi / 180
		hex[i] = geo.Pt(10*math.Cos(a), 10*math.Sin(a))
	}
	pyramidRoof(m, MaterialGlass, "roof", hex, 20, 8)

	tris := m.MaterialTriangles(MaterialGlass)
	if len(tris) != 6 {
		t.Fatalf("pyramid faces = %d, want 6", len(tris))
	}
	for _, tri := range tris {
		if tri.Normal().Z <= 0 {
			t.Error("pyramid face should point upward")
		}
	}
}

func TestMotorcourtAndDrivewayLayout(t *testing.T) {
	drive := motorcourtAndDriveway(23, 12, 67.5, 50, 50)

	if drive.motorcourt.Len() != 5 {
		t.Errorf("motorcourt vertices = %d, want 5", drive.motorcourt.Len())
	}
	if drive.driveway.Len() != 4 {
		t.Errorf("driveway vertices = %d, want 4", drive.driveway.Len())
	}
	if got := drive.end.Distance(drive.start); !approxEqual(got, 67.5, 1e-6) {
		t.Errorf("ramp length = %f, want 67.5", got)
	}
	// Flat section plus 48 curve segments.
	if len(drive.extraSegs) == 0 || len(drive.extraSegs) > 1+curveSegments {
		t.Errorf("extra segments = %d", len(drive.extraSegs))
	}
	if len(drive.leftEdges) != len(drive.rightEdges) {
		t.Errorf("edge chains differ: %d vs %d", len(drive.leftEdges), len(drive.rightEdges))
	}
	// The ramp heads away from the house (south).
	if drive.dir.Y >= 0 {
		t.Errorf("driveway direction = %v, want southward", drive.dir)
	}
}

func buildDefaultModel(t *testing.T, mutate func(*config.Params)) (*Mesh, *config.Params) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	g, err := plan.Build(cfg)
	if err != nil {
		t.Fatalf("plan.Build: %v", err)
	}
	m, err := Build(g, cfg)
	if err != nil {
		t.Fatalf("model.Build: %v", err)
	}
	return m, cfg
}

func TestBuildComponents(t *testing.T) {
	m, _ := buildDefaultModel(t, nil)

	want := []string{
		"ground",
		"motorcourt_floor", "motorcourt_walls",
		"driveway_floor", "driveway_walls",
		"driveway_ext_floor", "driveway_ext_walls",
		"master_triangle_floor", "master_triangle_facade", "master_triangle_roof_slab",
		"wing_a_garage_floor", "wing_a_garage_facade",
		"wing_b_garage_floor", "wing_b_garage_facade",
		"wing_a_floor", "wing_a_facade", "wing_a_roof_slab",
		"wing_b_floor", "wing_b_facade", "wing_b_roof_slab",
		"wing_c_floor", "wing_c_facade", "wing_c_roof_slab",
		"wing_c_atrium_wall",
		"atrium_floor", "atrium_facade", "bedroom_accent_wall", "atrium_roof",
		"side_court_right_floor", "side_court_right_walls",
		"side_court_left_floor", "side_court_left_walls",
	}
	have := map[string]bool{}
	for _, c := range m.Components() {
		have[c] = true
	}
	for _, c := range want {
		if !have[c] {
			t.Errorf("missing component %q", c)
		}
	}
	if have["courtyard"] {
		t.Error("courtyard component present with module disabled")
	}

	mats := m.Materials()
	if len(mats) != 4 {
		t.Errorf("materials = %v, want all four", mats)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a, _ := buildDefaultModel(t, nil)
	b, _ := buildDefaultModel(t, nil)

	if a.TriangleCount() == 0 {
		t.Fatal("empty model")
	}
	if a.TriangleCount() != b.TriangleCount() {
		t.Errorf("triangle counts differ: %d vs %d", a.TriangleCount(), b.TriangleCount())
	}
	for _, comp := range a.Components() {
		for _, mat := range a.ComponentMaterials(comp) {
			if len(a.ComponentTriangles(comp, mat)) != len(b.ComponentTriangles(comp, mat)) {
				t.Errorf("component %s/%s count differs between runs", comp, mat)
			}
		}
	}
}

func TestBuildWithCourtyard(t *testing.T) {
	m, _ := buildDefaultModel(t, func(p *config.Params) {
		p.CourtyardModule = config.CourtyardSharedFrontEdge
	})
	found := false
	for _, c := range m.Components() {
		if c == "courtyard" {
			found = true
		}
	}
	if !found {
		t.Error("courtyard component missing")
	}
}

func TestAtriumRoofIsHexagonalPyramid(t *testing.T) {
	m, _ := buildDefaultModel(t, nil)
	tris := m.ComponentTriangles("atrium_roof", MaterialGlass)
	if len(tris) != 6 {
		t.Errorf("atrium roof faces = %d, want 6", len(tris))
	}
}

func TestGarageVolumesSealed(t *testing.T) {
	// The garage foundation prism alone is a closed solid with positive
	// enclosed volume.
	cfg := config.Default()
	g, err := plan.Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	m := NewMesh()
	wing := g.Wings[plan.WingA]
	extrudeRegion(m, geo.RegionFrom(wing), cfg.AtriumFloor, cfg.LowerGround+cfg.SlabThickness,
		MaterialConcrete, MaterialConcrete, MaterialConcrete, "garage", 0)

	var volume float64
	for _, tri := range m.MaterialTriangles(MaterialConcrete) {
		volume += tri.SignedVolume()
	}
	height := cfg.LowerGround + cfg.SlabThickness - cfg.AtriumFloor
	want := wing.Area() * height
	if math.Abs(volume-want)/want > 1e-6 {
		t.Errorf("garage volume = %f, want %f", volume, want)
	}
}
