// Package analytics derives reporting metrics from a validated plan: region
// areas and the apportionment of the master triangle's usable floor among
// the three wings.
package analytics

import (
	"math"
	"sort"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
)

// Metrics is the measured output for the summary, SVG legend, and API.
type Metrics struct {
	HexSideLengths   []float64          `json:"hex_side_lengths"`
	ExtensionLengths []float64          `json:"extension_lengths"`
	Areas            Areas              `json:"areas"`
	TriangleRooms    TriangleRooms      `json:"triangle_room_areas"`
	CourtyardEnabled bool               `json:"courtyard_enabled"`
	WingAngles       map[string]float64 `json:"wing_angles"`
}

// Areas collects per-region plan areas in square feet.
type Areas struct {
	Atrium         float64 `json:"atrium"`
	WingA          float64 `json:"wing_A"`
	WingB          float64 `json:"wing_B"`
	WingC          float64 `json:"wing_C"`
	WingsTotal     float64 `json:"wings_total"`
	MasterTriangle float64 `json:"master_triangle"`
	Courtyard      float64 `json:"courtyard"`
}

// TriangleRooms apportions the triangle-minus-atrium region among wings.
type TriangleRooms struct {
	RoomA float64 `json:"room_A"`
	RoomB float64 `json:"room_B"`
	RoomC float64 `json:"room_C"`
	Total float64 `json:"room_total"`
}

// Measure computes all metrics. The courtyard area is exactly zero when the
// module is disabled.
func Measure(g *plan.Geometry, cfg *config.Params) *Metrics {
	m := &Metrics{
		HexSideLengths:   make([]float64, len(g.HexVertices)),
		ExtensionLengths: make([]float64, len(g.HexVertices)),
		WingAngles:       map[string]float64{},
	}
	for i := range g.HexVertices {
		next := g.HexVertices[(i+1)%len(g.HexVertices)]
		m.HexSideLengths[i] = g.HexVertices[i].Distance(next)
		m.ExtensionLengths[i] = g.HexVertices[i].Distance(g.ExtensionVertices[i])
	}

	atrium := g.Atrium()
	m.Areas.Atrium = atrium.Area()
	m.Areas.WingA = g.Wings[plan.WingA].Area()
	m.Areas.WingB = g.Wings[plan.WingB].Area()
	m.Areas.WingC = g.Wings[plan.WingC].Area()
	m.Areas.WingsTotal = m.Areas.WingA + m.Areas.WingB + m.Areas.WingC
	m.Areas.MasterTriangle = g.MasterTriangle.Area()

	m.CourtyardEnabled = cfg.CourtyardModule != config.CourtyardNone && !g.Courtyard.IsEmpty()
	if m.CourtyardEnabled {
		m.Areas.Courtyard = g.Courtyard.Area()
	}

	rooms := measureTriangleRooms(g, m)
	m.TriangleRooms = TriangleRooms{
		RoomA: rooms[plan.WingA],
		RoomB: rooms[plan.WingB],
		RoomC: rooms[plan.WingC],
		Total: rooms[plan.WingA] + rooms[plan.WingB] + rooms[plan.WingC],
	}
	return m
}

// measureTriangleRooms splits the triangle-minus-atrium region into three
// sectors whose boundary rays bisect the angular gaps between the wing
// direction angles around the atrium centroid.
func measureTriangleRooms(g *plan.Geometry, m *Metrics) map[string]float64 {
	atrium := g.Atrium()
	center := atrium.Centroid()
	usable := geo.RegionFrom(g.MasterTriangle).Difference(geo.RegionFrom(atrium))

	type wingAngle struct {
		name  string
		angle float64
	}
	ordered := make([]wingAngle, 0, 3)
	for name, w := range g.Wings {
		// Wing polygons start with the hex edge, so its midpoint gives the
		// wing direction.
		mid := geo.MidPoint(w.Vertices[0], w.Vertices[1])
		angle := normalizeAngle(math.Atan2(mid.Y-center.Y, mid.X-center.X))
		m.WingAngles[name] = angle
		ordered = append(ordered, wingAngle{name, angle})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].angle < ordered[j].angle })

	min, max := g.MasterTriangle.BoundingBox()
	radius := math.Max(max.X-min.X, max.Y-min.Y)*4 + 10

	rooms := make(map[string]float64, 3)
	for i, w := range ordered {
		prev := ordered[(i+2)%3].angle
		next := ordered[(i+1)%3].angle
		start := midAngle(prev, w.angle)
		end := midAngle(w.angle, next)
		if end < start {
			end += 2 * math.Pi
		}

		sector := geo.NewPolygon([]geo.Point2D{
			center,
			geo.Pt(center.X+radius*math.Cos(start), center.Y+radius*math.Sin(start)),
			geo.Pt(center.X+radius*math.Cos(end), center.Y+radius*math.Sin(end)),
		})
		rooms[w.name] = usable.Intersect(geo.RegionFrom(sector)).Area()
	}
	return rooms
}

func normalizeAngle(a float64) float64 {
	twoPi := 2 * math.Pi
	for a < 0 {
		a += twoPi
	}
	for a >= twoPi {
		a -= twoPi
	}
	return a
}

// midAngle bisects the counterclockwise arc from a0 to a1.
func midAngle(a0, a1 float64) float64 {
	if a1 < a0 {
		a1 += 2 * math.Pi
	}
	return normalizeAngle((a0 + a1) / 2)
}
