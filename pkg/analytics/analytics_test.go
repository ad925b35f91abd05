package analytics

import (
	"math"
	"testing"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func measureDefault(t *testing.T, mutate func(*config.Params)) *Metrics {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	g, err := plan.Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return Measure(g, cfg)
}

func TestMinimalHexagonScenario(t *testing.T) {
	m := measureDefault(t, nil) // s=23, d=7

	want := 3 * math.Sqrt(3) / 2 * 23 * 23
	if !approxEqual(m.Areas.Atrium, want, 0.01) {
		t.Errorf("atrium area = %f, want %f", m.Areas.Atrium, want)
	}
	for i, length := range m.HexSideLengths {
		if !approxEqual(length, 23, 1e-9) {
			t.Errorf("hex side %d = %f, want 23", i, length)
		}
	}
	for i, length := range m.ExtensionLengths {
		if !approxEqual(length, 23, 1e-9) {
			t.Errorf("extension %d = %f, want 23", i, length)
		}
	}
}

func TestWingsTotal(t *testing.T) {
	m := measureDefault(t, nil)
	sum := m.Areas.WingA + m.Areas.WingB + m.Areas.WingC
	if !approxEqual(m.Areas.WingsTotal, sum, 1e-9) {
		t.Errorf("wings_total = %f, want %f", m.Areas.WingsTotal, sum)
	}
	if m.Areas.WingA <= 0 {
		t.Error("wing areas must be positive")
	}
}

func TestCourtyardDisabledReportsZero(t *testing.T) {
	m := measureDefault(t, nil)
	if m.CourtyardEnabled {
		t.Error("courtyard should be disabled by default")
	}
	if m.Areas.Courtyard != 0 {
		t.Errorf("disabled courtyard area = %f, want exactly 0", m.Areas.Courtyard)
	}
}

func TestCourtyardEnabledReportsArea(t *testing.T) {
	m := measureDefault(t, func(p *config.Params) {
		p.CourtyardModule = config.CourtyardExteriorHex
	})
	if !m.CourtyardEnabled {
		t.Fatal("courtyard should be enabled")
	}
	if !approxEqual(m.Areas.Courtyard, m.Areas.Atrium, 1e-6) {
		t.Errorf("exterior hex courtyard area = %f, want %f", m.Areas.Courtyard, m.Areas.Atrium)
	}
}

func TestTriangleRoomsPartitionUsableFloor(t *testing.T) {
	m := measureDefault(t, nil)

	usable := m.Areas.MasterTriangle - m.Areas.Atrium
	if usable <= 0 {
		t.Fatalf("usable area = %f", usable)
	}
	if math.Abs(m.TriangleRooms.Total-usable)/usable > 1e-3 {
		t.Errorf("room total = %f, want %f", m.TriangleRooms.Total, usable)
	}
	for name, area := range map[string]float64{
		"A": m.TriangleRooms.RoomA,
		"B": m.TriangleRooms.RoomB,
		"C": m.TriangleRooms.RoomC,
	} {
		if area <= 0 {
			t.Errorf("room %s area = %f, want > 0", name, area)
		}
	}
}

func TestWingAnglesRecorded(t *testing.T) {
	m := measureDefault(t, nil)
	if len(m.WingAngles) != 3 {
		t.Fatalf("wing angles = %d, want 3", len(m.WingAngles))
	}
	// Wing C grows from the back edge, roughly north of the centroid.
	c := m.WingAngles[plan.WingC]
	if math.Abs(c-math.Pi/2) > 0.2 {
		t.Errorf("wing C angle = %f, want near %f", c, math.Pi/2)
	}
}
