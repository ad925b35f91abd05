package plan

import (
	"fmt"
	"math"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/validation"
)

// Validate re-derives the plan invariants and reports violations. It never
// mutates the plan; a report with errors means the model build should not
// proceed.
func Validate(g *Geometry, cfg *config.Params) *validation.Report {
	r := validation.NewReport()
	eps := cfg.Epsilon

	checkHexRegularity(g, cfg.S, eps, r)
	checkWinding(g, r)
	checkAreas(g, cfg, eps, r)
	checkCourtyard(g, cfg, eps, r)

	return r
}

func checkHexRegularity(g *Geometry, s, eps float64, r *validation.Report) {
	for i := range g.HexVertices {
		next := g.HexVertices[(i+1)%len(g.HexVertices)]
		length := g.HexVertices[i].Distance(next)
		if math.Abs(length-s) > eps {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("hexagon edge %d length deviates from s", i),
				ActualValue: length,
				Expected:    fmt.Sprintf("%g (±%g)", s, eps),
			})
		}
	}
	for i, v := range g.HexVertices {
		length := v.Distance(g.ExtensionVertices[i])
		if math.Abs(length-s) > eps {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("extension %d length deviates from s", i),
				ActualValue: length,
				Expected:    fmt.Sprintf("%g (±%g)", s, eps),
			})
		}
	}
}

func checkWinding(g *Geometry, r *validation.Report) {
	polys := map[string]geo.Polygon{
		"atrium":          g.Atrium(),
		"master_triangle": g.MasterTriangle,
	}
	for name, w := range g.Wings {
		polys["wing_"+name] = w
	}
	if !g.Courtyard.IsEmpty() {
		polys["courtyard"] = g.Courtyard
	}

	for name, p := range polys {
		if p.SignedArea() <= 0 {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     fmt.Sprintf("%s polygon is not counterclockwise", name),
				ActualValue: p.SignedArea(),
				Expected:    "signed area > 0",
			})
		}
	}
}

func checkAreas(g *Geometry, cfg *config.Params, eps float64, r *validation.Report) {
	atrium := g.Atrium().Area()
	triangle := g.MasterTriangle.Area()

	if atrium <= 0 || triangle <= 0 {
		r.AddError(validation.Result{
			Level:    validation.LevelGeometry,
			Message:  "area calculation produced non-positive geometry",
			Expected: "atrium and triangle areas > 0",
		})
		return
	}
	// The offset construction only grows the triangle, so the hexagon must
	// fit strictly inside even at d = 0.
	if triangle <= atrium {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "master triangle does not contain the atrium hexagon",
			ActualValue: triangle,
			Expected:    fmt.Sprintf("> %g", atrium),
		})
	}
}

func checkCourtyard(g *Geometry, cfg *config.Params, eps float64, r *validation.Report) {
	enabled := cfg.CourtyardModule != config.CourtyardNone && !g.Courtyard.IsEmpty()
	if !enabled {
		return
	}

	area := g.Courtyard.Area()
	triangle := g.MasterTriangle.Area()
	atrium := g.Atrium().Area()

	if area <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "courtyard area must be positive when enabled",
			ActualValue: area,
			Expected:    "> 0",
		})
	}
	if area >= triangle {
		r.AddError(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "courtyard area reaches the master triangle area",
			ActualValue: area,
			Expected:    fmt.Sprintf("< %g", triangle),
		})
	}

	switch cfg.CourtyardModule {
	case config.CourtyardSharedFrontEdge:
		if !polygonHasEdge(g.Courtyard, g.AtriumFrontEdge, eps) {
			r.AddError(validation.Result{
				Level:    validation.LevelGeometry,
				Message:  "courtyard front edge does not match the atrium front edge",
				Expected: fmt.Sprintf("shared edge within %g", eps),
			})
		}
	case config.CourtyardExteriorHex:
		if math.Abs(area-atrium) > eps*math.Max(1, atrium) {
			r.AddError(validation.Result{
				Level:       validation.LevelGeometry,
				Message:     "exterior hex courtyard area does not match the atrium area",
				ActualValue: area,
				Expected:    fmt.Sprintf("%g (relative ±%g)", atrium, eps),
			})
		}
	}
}

// polygonHasEdge reports whether any polygon edge matches the given edge in
// either direction, endpoints within eps.
func polygonHasEdge(p geo.Polygon, edge [2]geo.Point2D, eps float64) bool {
	for i := range p.Vertices {
		a, b := p.Edge(i)
		direct := a.Distance(edge[0]) <= eps && b.Distance(edge[1]) <= eps
		reverse := a.Distance(edge[1]) <= eps && b.Distance(edge[0]) <= eps
		if direct || reverse {
			return true
		}
	}
	return false
}
