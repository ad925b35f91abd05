package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/analytics"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
)

// Outputs names the artifact files a pipeline run produced.
type Outputs struct {
	PlanSVG    string
	MassingGLB string
	SummaryTXT string
}

// WriteSummary writes the human-readable run report: input parameters, the
// checks the plan passed, measured areas, and where the artifacts landed.
func WriteSummary(path string, cfg *config.Params, m *analytics.Metrics, out Outputs) error {
	courtyardLine := "Courtyard disabled."
	if m.CourtyardEnabled {
		courtyardLine = "Courtyard shared edge matches atrium front edge."
	}

	lines := []string{
		"Exploded Hexagon Home - Summary",
		"",
		"Parameters",
		fmt.Sprintf("s: %g", cfg.S),
		fmt.Sprintf("d: %g", cfg.D),
		fmt.Sprintf("ceiling_height: %g", cfg.CeilingHeight),
		fmt.Sprintf("slab_thickness: %g", cfg.SlabThickness),
		fmt.Sprintf("lower_ground: %g", cfg.LowerGround),
		fmt.Sprintf("upper_ground: %g", cfg.UpperGround),
		fmt.Sprintf("atrium_floor: %g", cfg.AtriumFloor),
		fmt.Sprintf("atrium_roof_base: %g", cfg.AtriumRoofBase),
		fmt.Sprintf("atrium_roof_apex: %g", cfg.AtriumRoofBase+cfg.AtriumRoofRise),
		fmt.Sprintf("courtyard_drop: %g", cfg.CourtyardDrop),
		"",
		"Validation",
		"Hex side lengths are equal to s.",
		"Exploded extension lengths are equal to s.",
		courtyardLine,
		"",
		"Areas (sq ft)",
		fmt.Sprintf("Atrium: %.3f", m.Areas.Atrium),
		fmt.Sprintf("Wing A: %.3f", m.Areas.WingA),
		fmt.Sprintf("Wing B: %.3f", m.Areas.WingB),
		fmt.Sprintf("Wing C: %.3f", m.Areas.WingC),
		fmt.Sprintf("Total Wings: %.3f", m.Areas.WingsTotal),
		fmt.Sprintf("Master Triangle: %.3f", m.Areas.MasterTriangle),
		fmt.Sprintf("Triangle Room A: %.3f", m.TriangleRooms.RoomA),
		fmt.Sprintf("Triangle Room B: %.3f", m.TriangleRooms.RoomB),
		fmt.Sprintf("Triangle Room C: %.3f", m.TriangleRooms.RoomC),
		fmt.Sprintf("Triangle Rooms Total: %.3f", m.TriangleRooms.Total),
		fmt.Sprintf("Courtyard: %.3f", m.Areas.Courtyard),
		"",
		"Outputs",
		"Plan SVG: " + out.PlanSVG,
		"Massing GLB: " + out.MassingGLB,
		"Summary TXT: " + out.SummaryTXT,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
