package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/analytics"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/export"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/model"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/validation"
)

// generateOptions holds CLI parameter overrides. Only flags the user actually
// set are applied over the project file.
type generateOptions struct {
	s                 float64
	d                 float64
	backoffDeg        float64
	downShiftFt       float64
	ceilingHeight     float64
	slabThickness     float64
	lowerGround       float64
	upperGround       float64
	triangleElevation float64
	atriumFloor       float64
	atriumRoofBase    float64
	atriumRoofRise    float64
	courtyardDrop     float64
	terrainDrop       float64
	drivewayWidth     float64
	drivewayLength    float64
	rotateXDeg        float64
	courtyardModule   string
	labels            bool

	outDir      string
	timestamped bool

	changed map[string]bool
}

func (o *generateOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&o.s, "s", 0, "hexagon side length in feet")
	f.Float64Var(&o.d, "d", 0, "explode offset in feet")
	f.Float64Var(&o.backoffDeg, "triangle-clockwise-backoff-deg", 0, "clockwise backoff applied after the rotation solve")
	f.Float64Var(&o.downShiftFt, "triangle-plan-down-shift-ft", 0, "southward shift of the whole plan in feet")
	f.Float64Var(&o.ceilingHeight, "ceiling-height", 0, "wing ceiling height in feet")
	f.Float64Var(&o.slabThickness, "slab-thickness", 0, "floor slab thickness in feet")
	f.Float64Var(&o.lowerGround, "lower-ground", 0, "lower ground elevation in feet")
	f.Float64Var(&o.upperGround, "upper-ground", 0, "upper ground elevation in feet")
	f.Float64Var(&o.triangleElevation, "master-triangle-elevation", 0, "master triangle floor elevation in feet")
	f.Float64Var(&o.atriumFloor, "atrium-floor", 0, "atrium floor elevation in feet")
	f.Float64Var(&o.atriumRoofBase, "atrium-roof-base", 0, "atrium roof base elevation in feet")
	f.Float64Var(&o.atriumRoofRise, "atrium-roof-rise", 0, "atrium roof rise in feet")
	f.Float64Var(&o.courtyardDrop, "courtyard-drop", 0, "courtyard floor drop in feet")
	f.Float64Var(&o.terrainDrop, "terrain-drop", 0, "terrain drop below lower ground in feet")
	f.Float64Var(&o.drivewayWidth, "driveway-width", 0, "driveway width in feet")
	f.Float64Var(&o.drivewayLength, "driveway-length", 0, "driveway ramp length in feet")
	f.Float64Var(&o.rotateXDeg, "glb-rotate-x-deg", 0, "X rotation applied at export")
	f.StringVar(&o.courtyardModule, "courtyard", "", "courtyard module: none, shared_front_edge, exterior_hex")
	f.BoolVar(&o.labels, "labels", true, "include labels and legend in the plan diagram")
}

func (o *generateOptions) markChanged(cmd *cobra.Command) {
	o.changed = map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		o.changed[f.Name] = true
	})
}

func (o *generateOptions) apply(cfg *config.Params) {
	set := func(name string, dst *float64, v float64) {
		if o.changed[name] {
			*dst = v
		}
	}
	set("s", &cfg.S, o.s)
	set("d", &cfg.D, o.d)
	set("triangle-clockwise-backoff-deg", &cfg.TriangleClockwiseBackoffDeg, o.backoffDeg)
	set("triangle-plan-down-shift-ft", &cfg.TrianglePlanDownShiftFt, o.downShiftFt)
	set("ceiling-height", &cfg.CeilingHeight, o.ceilingHeight)
	set("slab-thickness", &cfg.SlabThickness, o.slabThickness)
	set("lower-ground", &cfg.LowerGround, o.lowerGround)
	set("upper-ground", &cfg.UpperGround, o.upperGround)
	set("atrium-floor", &cfg.AtriumFloor, o.atriumFloor)
	set("atrium-roof-base", &cfg.AtriumRoofBase, o.atriumRoofBase)
	set("atrium-roof-rise", &cfg.AtriumRoofRise, o.atriumRoofRise)
	set("courtyard-drop", &cfg.CourtyardDrop, o.courtyardDrop)
	set("terrain-drop", &cfg.TerrainDrop, o.terrainDrop)
	set("driveway-width", &cfg.DrivewayWidth, o.drivewayWidth)
	set("driveway-length", &cfg.DrivewayLength, o.drivewayLength)
	set("glb-rotate-x-deg", &cfg.GLBRotateXDeg, o.rotateXDeg)
	if o.changed["master-triangle-elevation"] {
		v := o.triangleElevation
		cfg.MasterTriangleElevation = &v
	}
	if o.changed["courtyard"] {
		cfg.CourtyardModule = o.courtyardModule
	}
	if o.changed["labels"] {
		cfg.Labels = o.labels
	}
}

// loadAndValidate loads the project parameters, applies flag overrides, and
// runs schema validation.
func loadAndValidate(projectPath string, opts *generateOptions) (*config.Params, *validation.Report, error) {
	cfg, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading parameters: %w", err)
	}
	opts.apply(cfg)
	return cfg, validation.ValidateParams(cfg), nil
}

func runValidate(projectPath string, opts *generateOptions) error {
	cfg, report, err := loadAndValidate(projectPath, opts)
	if err != nil {
		return err
	}

	if report.Valid {
		g, err := plan.Build(cfg)
		if err != nil {
			return fmt.Errorf("deriving plan: %w", err)
		}
		report.Merge(plan.Validate(g, cfg))
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGenerate(projectPath string, opts *generateOptions) error {
	cfg, report, err := loadAndValidate(projectPath, opts)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("parameters have validation errors")
	}

	g, err := plan.Build(cfg)
	if err != nil {
		return fmt.Errorf("deriving plan: %w", err)
	}
	report.Merge(plan.Validate(g, cfg))
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("geometry validation failed")
	}

	metrics := analytics.Measure(g, cfg)

	mesh, err := model.Build(g, cfg)
	if err != nil {
		return fmt.Errorf("building model: %w", err)
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = filepath.Join(projectPath, "out")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	paths := outputPaths(cfg, outDir, opts.timestamped)

	if err := export.WriteSVG(g, paths.PlanSVG, cfg, metrics); err != nil {
		return err
	}
	if err := export.WriteGLB(mesh, paths.MassingGLB, cfg.GLBRotateXDeg, cfg.FeetToMeters); err != nil {
		return err
	}
	if err := export.WriteSummary(paths.SummaryTXT, cfg, metrics, paths); err != nil {
		return err
	}

	fmt.Printf("[ok] areas sqft: atrium=%.2f, wings=%.2f, triangle=%.2f, courtyard=%.2f\n",
		metrics.Areas.Atrium, metrics.Areas.WingsTotal, metrics.Areas.MasterTriangle, metrics.Areas.Courtyard)
	fmt.Printf("[ok] plan: %s\n", paths.PlanSVG)
	fmt.Printf("[ok] glb: %s\n", paths.MassingGLB)
	fmt.Printf("[ok] summary: %s\n", paths.SummaryTXT)
	return nil
}

// fmtNum renders a parameter for a filename: integers bare, decimal points
// replaced so the name stays shell-friendly.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", "p")
}

func outputPaths(cfg *config.Params, outDir string, timestamped bool) export.Outputs {
	suffix := fmt.Sprintf("s%s_d%s", fmtNum(cfg.S), fmtNum(cfg.D))
	if timestamped {
		suffix += "_" + time.Now().Format("20060102_150405")
	}
	return export.Outputs{
		PlanSVG:    filepath.Join(outDir, fmt.Sprintf("plan_%s.svg", suffix)),
		MassingGLB: filepath.Join(outDir, fmt.Sprintf("massing_%s.glb", suffix)),
		SummaryTXT: filepath.Join(outDir, fmt.Sprintf("summary_%s.txt", suffix)),
	}
}
