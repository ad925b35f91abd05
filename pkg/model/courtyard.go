package model

import (
	"math"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
)

// retainingWallRise is how far side-courtyard walls stand above the
// surrounding earth.
const retainingWallRise = 4.0

// courtyardTop is the rim elevation for the sunken courtyard. The explicit
// triangle elevation wins; otherwise the rim sits at the upper ground.
func courtyardTop(cfg *config.Params) float64 {
	if cfg.MasterTriangleElevation != nil {
		return *cfg.MasterTriangleElevation
	}
	return cfg.UpperGround
}

// addCourtyard builds the configured courtyard module: a sunken concrete
// floor with retaining walls up to the rim. Both placements share the same
// construction; only the footprint differs.
func addCourtyard(m *Mesh, g *plan.Geometry, cfg *config.Params) {
	if cfg.CourtyardModule == config.CourtyardNone || g.Courtyard.IsEmpty() {
		return
	}
	top := courtyardTop(cfg)
	floor := top + cfg.CourtyardDrop

	capPolygon(m, MaterialConcrete, "courtyard", g.Courtyard, floor, true)
	wallsForPolygon(m, MaterialConcrete, "courtyard", g.Courtyard, floor, top, nil, cfg.WallThicknessConcrete)
}

// addSideCourtyards builds the hexagonal garden voids between wing pairs:
// lawn floor at the lower ground, back edge open toward the descending
// terrain, and solid retaining walls whose tops follow the terrain plus a
// fixed rise.
func addSideCourtyards(m *Mesh, g *plan.Geometry, cfg *config.Params) {
	lower := cfg.LowerGround
	yBreak, yLow := gradeBreaks(g)
	terrainZ := func(p geo.Point2D) float64 {
		return terrainProfile(p.Y, yBreak, yLow, cfg.UpperGround, lower)
	}

	courts := []struct {
		label string
		poly  geo.Polygon
	}{
		{"side_court_right", g.SideCourtyardR},
		{"side_court_left", g.SideCourtyardL},
	}
	for _, court := range courts {
		if court.poly.IsEmpty() {
			continue
		}
		capPolygon(m, MaterialGround, court.label+"_floor", court.poly, lower, true)

		pts := court.poly.Vertices
		backIdx := 0
		bestY := math.Inf(-1)
		for i := range pts {
			mid := (pts[i].Y + pts[(i+1)%len(pts)].Y) / 2
			if mid > bestY {
				bestY = mid
				backIdx = i
			}
		}

		centroid := court.poly.Centroid()
		half := cfg.WallThicknessConcrete / 2
		for i := range pts {
			if i == backIdx {
				continue
			}
			p0 := pts[i]
			p1 := pts[(i+1)%len(pts)]

			top0 := math.Max(terrainZ(p0)+retainingWallRise, lower)
			top1 := math.Max(terrainZ(p1)+retainingWallRise, lower)
			if top0-lower < 0.5 && top1-lower < 0.5 {
				continue
			}

			edge := p1.Sub(p0)
			length := edge.Length()
			if length < 1e-9 {
				continue
			}
			n := geo.Pt(-edge.Y/length, edge.X/length)
			mid := geo.MidPoint(p0, p1)
			if n.Dot(mid.Sub(centroid)) < 0 {
				n = n.Scale(-1)
			}

			o0 := p0.Add(n.Scale(half))
			o1 := p1.Add(n.Scale(half))
			i0 := p0.Sub(n.Scale(half))
			i1 := p1.Sub(n.Scale(half))
			outward := r3Horiz(n)
			comp := court.label + "_walls"

			// Faces carry per-vertex tops so the cap follows the terrain.
			quad(m, MaterialConcrete, comp, vec(o0, lower), vec(o1, lower), vec(o1, top1), vec(o0, top0), outward)
			quad(m, MaterialConcrete, comp, vec(i1, lower), vec(i0, lower), vec(i0, top0), vec(i1, top1), r3Neg(outward))
			quad(m, MaterialConcrete, comp, vec(o0, top0), vec(o1, top1), vec(i1, top1), vec(i0, top0), r3Up())
			quad(m, MaterialConcrete, comp, vec(i0, lower), vec(i1, lower), vec(o1, lower), vec(o0, lower), r3Down())
		}
	}
}
