package validation

import (
	"testing"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
)

func TestReportAccumulation(t *testing.T) {
	r := NewReport()
	if !r.Valid {
		t.Fatal("new report should be valid")
	}

	r.AddWarning(Result{Level: LevelGeometry, Message: "suspicious"})
	if !r.Valid {
		t.Error("warnings should not invalidate")
	}

	r.AddError(Result{Level: LevelGeometry, Message: "broken"})
	if r.Valid {
		t.Error("errors should invalidate")
	}
	if r.Summary != "1 errors, 1 warnings, 0 info" {
		t.Errorf("summary = %q", r.Summary)
	}
}

func TestMergePropagatesInvalid(t *testing.T) {
	a := NewReport()
	b := NewReport()
	b.AddError(Result{Level: LevelSchema, Message: "bad"})

	a.Merge(b)
	if a.Valid {
		t.Error("merge should carry invalid state")
	}
	if len(a.Errors) != 1 {
		t.Errorf("merged errors = %d, want 1", len(a.Errors))
	}
}

func TestValidateParamsDefaultsPass(t *testing.T) {
	r := ValidateParams(config.Default())
	if !r.Valid {
		t.Errorf("defaults should validate, got %v", r.Errors)
	}
}

func TestValidateParamsRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Params)
	}{
		{"zero side", func(p *config.Params) { p.S = 0 }},
		{"negative clearance", func(p *config.Params) { p.D = -1 }},
		{"zero slab", func(p *config.Params) { p.SlabThickness = 0 }},
		{"zero roof rise", func(p *config.Params) { p.AtriumRoofRise = 0 }},
		{"atrium above lower ground", func(p *config.Params) { p.AtriumFloor = p.LowerGround + 1 }},
		{"inverted grounds", func(p *config.Params) { p.LowerGround = p.UpperGround }},
		{"negative driveway width", func(p *config.Params) { p.DrivewayWidth = -3 }},
		{"negative wall thickness", func(p *config.Params) { p.WallThicknessConcrete = -0.1 }},
		{"unknown courtyard", func(p *config.Params) { p.CourtyardModule = "rooftop" }},
		{"zero epsilon", func(p *config.Params) { p.Epsilon = 0 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := config.Default()
			c.mutate(p)
			if r := ValidateParams(p); r.Valid {
				t.Error("expected schema error")
			}
		})
	}
}
