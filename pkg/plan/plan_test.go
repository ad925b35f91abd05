package plan

import (
	"math"
	"testing"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func buildDefault(t *testing.T) *Geometry {
	t.Helper()
	g, err := Build(config.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestHexRegularity(t *testing.T) {
	cfg := config.Default() // s=23, d=7
	g := buildDefault(t)

	for i := range g.HexVertices {
		next := g.HexVertices[(i+1)%6]
		length := g.HexVertices[i].Distance(next)
		if !approxEqual(length, cfg.S, 1e-6) {
			t.Errorf("hex edge %d length = %f, want %f", i, length, cfg.S)
		}
	}
	for i, v := range g.HexVertices {
		length := v.Distance(g.ExtensionVertices[i])
		if !approxEqual(length, cfg.S, 1e-6) {
			t.Errorf("extension %d length = %f, want %f", i, length, cfg.S)
		}
	}
}

func TestAtriumArea(t *testing.T) {
	g := buildDefault(t)
	want := 3 * math.Sqrt(3) / 2 * 23 * 23
	if got := g.Atrium().Area(); !approxEqual(got, want, 0.01) {
		t.Errorf("atrium area = %f, want %f", got, want)
	}
}

func TestWingsAreTrapezoidsOfExpectedArea(t *testing.T) {
	g := buildDefault(t)
	if len(g.Wings) != 3 {
		t.Fatalf("wings = %d, want 3", len(g.Wings))
	}
	// Each wing spans a hex edge (s) out to the extension edge (2s) over a
	// perpendicular depth of s*sqrt(3)/2: area = (s + 2s)/2 * depth.
	s := 23.0
	want := 1.5 * s * s * math.Sqrt(3) / 2
	for name, w := range g.Wings {
		if !w.IsCounterClockwise() {
			t.Errorf("wing %s not counterclockwise", name)
		}
		if got := w.Area(); !approxEqual(got, want, 1e-6) {
			t.Errorf("wing %s area = %f, want %f", name, got, want)
		}
	}
}

func TestRotationPreservesTriangleArea(t *testing.T) {
	cfg := config.Default()
	g := buildDefault(t)

	hex := g.HexVertices
	unrotated, err := buildMasterTriangle(hex, geo.Origin, cfg.D)
	if err != nil {
		t.Fatal(err)
	}
	before := unrotated.Area()
	after := g.MasterTriangle.Area()
	if math.Abs(after-before)/before > 1e-6 {
		t.Errorf("rotation changed triangle area: %f -> %f", before, after)
	}
}

func TestSolvedRotationTouchesWingCCorner(t *testing.T) {
	g := buildDefault(t)
	target := g.ExtensionVertices[1]

	best := math.Inf(1)
	for i := 0; i < 3; i++ {
		a, b := g.MasterTriangle.Edge(i)
		best = math.Min(best, geo.PointLineDistance(target, a, b))
	}
	if best > 1e-3 {
		t.Errorf("triangle back edge misses wing C corner by %f", best)
	}
}

func TestTriangleContainsHexagon(t *testing.T) {
	g := buildDefault(t)
	if tri, hex := g.MasterTriangle.Area(), g.Atrium().Area(); tri <= hex {
		t.Errorf("triangle area %f not greater than atrium area %f", tri, hex)
	}
}

func TestZeroClearanceStillBuilds(t *testing.T) {
	cfg := config.Default()
	cfg.D = 0
	g, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build with d=0: %v", err)
	}
	if tri, hex := g.MasterTriangle.Area(), g.Atrium().Area(); tri <= hex {
		t.Errorf("d=0 triangle area %f not greater than atrium area %f", tri, hex)
	}
	if r := Validate(g, cfg); !r.Valid {
		t.Errorf("d=0 plan should validate, got %v", r.Errors)
	}
}

func TestCourtyardNone(t *testing.T) {
	g := buildDefault(t)
	if !g.Courtyard.IsEmpty() {
		t.Error("courtyard should be empty when module is none")
	}
}

func TestCourtyardSharedFrontEdge(t *testing.T) {
	cfg := config.Default()
	cfg.CourtyardModule = config.CourtyardSharedFrontEdge
	g, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if g.Courtyard.Len() != 4 {
		t.Fatalf("shared-front-edge courtyard has %d vertices, want 4", g.Courtyard.Len())
	}
	if !polygonHasEdge(g.Courtyard, g.AtriumFrontEdge, 1e-6) {
		t.Error("courtyard does not share the atrium front edge")
	}
	if r := Validate(g, cfg); !r.Valid {
		t.Errorf("plan should validate, got %v", r.Errors)
	}
}

func TestCourtyardExteriorHex(t *testing.T) {
	cfg := config.Default()
	cfg.CourtyardModule = config.CourtyardExteriorHex
	g, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := g.Courtyard.Area(), g.Atrium().Area(); !approxEqual(got, want, 1e-6) {
		t.Errorf("exterior hex courtyard area = %f, want %f", got, want)
	}
	c := g.Courtyard.Centroid()
	if !approxEqual(c.X, 0, 1e-6) || !approxEqual(c.Y, -math.Sqrt(3)*23, 1e-6) {
		t.Errorf("courtyard centroid = %v", c)
	}
}

func TestUnknownCourtyardModule(t *testing.T) {
	cfg := config.Default()
	cfg.CourtyardModule = "rooftop"
	if _, err := Build(cfg); err == nil {
		t.Error("expected error for unknown courtyard module")
	}
}

func TestSideCourtyardPlacement(t *testing.T) {
	g := buildDefault(t)
	s := 23.0
	right := g.SideCourtyardR.Centroid()
	left := g.SideCourtyardL.Centroid()
	if !approxEqual(right.X, 1.5*s, 1e-6) || !approxEqual(right.Y, math.Sqrt(3)*s/2, 1e-6) {
		t.Errorf("right side courtyard centroid = %v", right)
	}
	if !approxEqual(left.X, -1.5*s, 1e-6) || !approxEqual(left.Y, math.Sqrt(3)*s/2, 1e-6) {
		t.Errorf("left side courtyard centroid = %v", left)
	}
}

func TestClockwiseBackoffRotates(t *testing.T) {
	base := buildDefault(t)

	cfg := config.Default()
	cfg.TriangleClockwiseBackoffDeg = 8
	g, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	moved := 0.0
	for i, p := range g.MasterTriangle.Vertices {
		moved += p.Distance(base.MasterTriangle.Vertices[i])
	}
	if moved < 1e-3 {
		t.Error("backoff did not rotate the triangle")
	}
	if !approxEqual(g.MasterTriangle.Area(), base.MasterTriangle.Area(), 1e-6) {
		t.Error("backoff changed the triangle area")
	}
}

func TestDownShiftTranslates(t *testing.T) {
	base := buildDefault(t)

	cfg := config.Default()
	cfg.TrianglePlanDownShiftFt = 5
	g, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range g.MasterTriangle.Vertices {
		want := base.MasterTriangle.Vertices[i].Add(geo.Pt(0, -5))
		if p.Distance(want) > 1e-9 {
			t.Errorf("vertex %d = %v, want %v", i, p, want)
		}
	}
}

func TestValidateDetectsTamperedHex(t *testing.T) {
	cfg := config.Default()
	g := buildDefault(t)
	g.HexVertices[2] = g.HexVertices[2].Add(geo.Pt(0.5, 0))
	if r := Validate(g, cfg); r.Valid {
		t.Error("tampered hexagon should fail validation")
	}
}

func TestSolveRotationAngleExact(t *testing.T) {
	// A horizontal edge above the origin, target on the X axis: rotating by
	// 90 degrees puts the edge line through the target.
	edgeA, edgeB := geo.Pt(-1, 2), geo.Pt(1, 2)
	target := geo.Pt(2, 0)
	angle := SolveRotationAngle(edgeA, edgeB, geo.Origin, target)

	ra := edgeA.RotateAround(geo.Origin, angle)
	rb := edgeB.RotateAround(geo.Origin, angle)
	if d := geo.PointLineDistance(target, ra, rb); d > 1e-3 {
		t.Errorf("solved angle leaves distance %f", d)
	}
}
