package validation

import (
	"fmt"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
)

// ValidateParams performs schema validation on the parameter set. It checks
// value ranges and enumerations before any geometry is derived.
func ValidateParams(p *config.Params) *Report {
	r := NewReport()

	validateShape(p, r)
	validateVertical(p, r)
	validateDriveway(p, r)
	validateWalls(p, r)
	validateOptions(p, r)

	return r
}

func validateShape(p *config.Params, r *Report) {
	if p.S <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "hexagon side length s must be greater than 0",
			ParamPath:   "s",
			ActualValue: p.S,
			Expected:    "> 0",
		})
	}
	if p.D < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "triangle clearance d must be non-negative",
			ParamPath:   "d",
			ActualValue: p.D,
			Expected:    ">= 0",
		})
	}
}

func validateVertical(p *config.Params, r *Report) {
	if p.SlabThickness <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "slab_thickness must be greater than 0",
			ParamPath:   "slab_thickness",
			ActualValue: p.SlabThickness,
			Expected:    "> 0",
		})
	}
	if p.CeilingHeight <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "ceiling_height must be greater than 0",
			ParamPath:   "ceiling_height",
			ActualValue: p.CeilingHeight,
			Expected:    "> 0",
		})
	}
	if p.AtriumRoofRise <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "atrium_roof_rise must be greater than 0",
			ParamPath:   "atrium_roof_rise",
			ActualValue: p.AtriumRoofRise,
			Expected:    "> 0",
		})
	}
	if p.AtriumFloor > p.LowerGround {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "atrium_floor must not rise above lower_ground",
			ParamPath:   "atrium_floor",
			ActualValue: p.AtriumFloor,
			Expected:    fmt.Sprintf("<= %g", p.LowerGround),
		})
	}
	if p.LowerGround >= p.UpperGround {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "lower_ground must sit below upper_ground",
			ParamPath:   "lower_ground",
			ActualValue: p.LowerGround,
			Expected:    fmt.Sprintf("< %g", p.UpperGround),
		})
	}
}

func validateDriveway(p *config.Params, r *Report) {
	dims := map[string]float64{
		"driveway_width":        p.DrivewayWidth,
		"driveway_length":       p.DrivewayLength,
		"driveway_flat_length":  p.DrivewayFlatLength,
		"driveway_curve_length": p.DrivewayCurveLength,
	}
	for name, v := range dims {
		if v < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s must be non-negative", name),
				ParamPath:   name,
				ActualValue: v,
				Expected:    ">= 0",
			})
		}
	}
}

func validateWalls(p *config.Params, r *Report) {
	if p.WallThicknessConcrete < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "wall_thickness_concrete must be non-negative",
			ParamPath:   "wall_thickness_concrete",
			ActualValue: p.WallThicknessConcrete,
			Expected:    ">= 0",
		})
	}
	if p.WallThicknessGlass < 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "wall_thickness_glass must be non-negative",
			ParamPath:   "wall_thickness_glass",
			ActualValue: p.WallThicknessGlass,
			Expected:    ">= 0",
		})
	}
}

func validateOptions(p *config.Params, r *Report) {
	switch p.CourtyardModule {
	case config.CourtyardNone, config.CourtyardSharedFrontEdge, config.CourtyardExteriorHex:
	default:
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown courtyard_module %q", p.CourtyardModule),
			ParamPath:   "courtyard_module",
			ActualValue: p.CourtyardModule,
			Expected:    "none | shared_front_edge | exterior_hex",
			Suggestions: []string{"Use \"none\" to disable the courtyard"},
		})
	}
	if p.Epsilon <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "epsilon must be greater than 0",
			ParamPath:   "epsilon",
			ActualValue: p.Epsilon,
			Expected:    "> 0",
		})
	}
}
