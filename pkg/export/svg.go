package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/analytics"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/config"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/geo"
	"github.com/jonburchel/exploded-hexagon-home-parametric/pkg/plan"
)

const (
	svgScale       = 8.0
	svgMargin      = 40.0
	svgLegendWidth = 380.0
	svgLabelStyle  = "font-family:Arial,sans-serif;font-size:14px;fill:#1f1f1f"
)

type svgCanvas struct {
	lines  []string
	minX   float64
	maxY   float64
	width  int
	height int
}

func (c *svgCanvas) tx(p geo.Point2D) (float64, float64) {
	return (p.X-c.minX)*svgScale + svgMargin, (c.maxY-p.Y)*svgScale + svgMargin
}

func (c *svgCanvas) add(format string, args ...any) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func (c *svgCanvas) points(pts []geo.Point2D) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		x, y := c.tx(p)
		parts[i] = fmt.Sprintf("%.2f,%.2f", x, y)
	}
	return strings.Join(parts, " ")
}

func (c *svgCanvas) polygon(pts []geo.Point2D, fill, stroke string, width float64) {
	c.add("  <polygon points=%q fill=%q stroke=%q stroke-width=%q/>",
		c.points(pts), fill, stroke, fmt.Sprintf("%g", width))
}

func (c *svgCanvas) text(x, y float64, style, anchor, label string) {
	if anchor != "" {
		c.add("  <text x=\"%.2f\" y=\"%.2f\" style=%q text-anchor=%q>%s</text>", x, y, style, anchor, label)
	} else {
		c.add("  <text x=\"%.2f\" y=\"%.2f\" style=%q>%s</text>", x, y, style, label)
	}
}

// dimension draws a measured edge: two extension strokes from the surveyed
// points, an arrowed dimension line offset away from the anchor, and a
// halo'd length label.
func (c *svgCanvas) dimension(p0, p1, anchor geo.Point2D, offsetFt float64, label, color string, dashed bool) {
	e := p1.Sub(p0)
	mag := math.Max(e.Length(), 1e-9)
	n1 := geo.Pt(e.Y/mag, -e.X/mag)
	n2 := geo.Pt(-e.Y/mag, e.X/mag)
	mid := geo.MidPoint(p0, p1)
	toAnchor := anchor.Sub(mid)
	n := n2
	if n1.Dot(toAnchor) > n2.Dot(toAnchor) {
		n = n1
	}
	q0 := p0.Add(n.Scale(offsetFt))
	q1 := p1.Add(n.Scale(offsetFt))
	s0x, s0y := c.tx(p0)
	s1x, s1y := c.tx(p1)
	q0x, q0y := c.tx(q0)
	q1x, q1y := c.tx(q1)
	dash := ""
	if dashed {
		dash = " stroke-dasharray=\"4,4\""
	}
	c.add("  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"1\"%s/>",
		s0x, s0y, q0x, q0y, color, dash)
	c.add("  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"1\"%s/>",
		s1x, s1y, q1x, q1y, color, dash)
	c.add("  <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=%q stroke-width=\"1.2\" marker-start=\"url(#arrow)\" marker-end=\"url(#arrow)\"%s/>",
		q0x, q0y, q1x, q1y, color, dash)
	lx, ly := (q0x+q1x)*0.5, (q0y+q1y)*0.5
	c.add("  <text x=\"%.2f\" y=\"%.2f\" text-anchor=\"middle\" style=\"font-family:Arial,sans-serif;font-size:12px;fill:%s;paint-order:stroke;stroke:#ffffff;stroke-width:3px\">%s</text>",
		lx, ly-6, color, label)
}

func closestOnBoundary(pt geo.Point2D, poly geo.Polygon) geo.Point2D {
	best := poly.Vertices[0]
	bestDist := math.Inf(1)
	for i := 0; i < poly.Len(); i++ {
		a, b := poly.Edge(i)
		q := geo.ClosestPointOnSegment(pt, a, b)
		if d := pt.Distance(q); d < bestDist {
			bestDist = d
			best = q
		}
	}
	return best
}

// WriteSVG renders the annotated plan diagram: wing, atrium, courtyard and
// triangle outlines, dimensioned edges, hex-to-triangle clearances, region
// labels, and a legend panel listing areas and key elevations.
func WriteSVG(g *plan.Geometry, path string, cfg *config.Params, metrics *analytics.Metrics) error {
	includeCourtyard := !g.Courtyard.IsEmpty()

	var all []geo.Point2D
	all = append(all, g.MasterTriangle.Vertices...)
	all = append(all, g.HexVertices...)
	if includeCourtyard {
		all = append(all, g.Courtyard.Vertices...)
	}
	for _, name := range []string{plan.WingA, plan.WingB, plan.WingC} {
		all = append(all, g.Wings[name].Vertices...)
	}
	minX, minY := all[0].X, all[0].Y
	maxX, maxY := minX, minY
	for _, p := range all[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	legendW := 0.0
	if cfg.Labels {
		legendW = svgLegendWidth
	}
	c := &svgCanvas{
		minX:   minX,
		maxY:   maxY,
		width:  int((maxX-minX)*svgScale + svgMargin*2 + legendW),
		height: int((maxY-minY)*svgScale + svgMargin*2),
	}

	c.add("<?xml version=\"1.0\" encoding=\"UTF-8\"?>")
	c.add("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">",
		c.width, c.height, c.width, c.height)
	c.add("  <defs>")
	c.add("    <marker id=\"arrow\" markerWidth=\"8\" markerHeight=\"8\" refX=\"4\" refY=\"4\" orient=\"auto\">")
	c.add("      <path d=\"M0,0 L8,4 L0,8 Z\" fill=\"#2d2d2d\"/>")
	c.add("    </marker>")
	c.add("  </defs>")
	c.add("  <rect x=\"0\" y=\"0\" width=\"100%%\" height=\"100%%\" fill=\"#ffffff\"/>")

	wingColors := map[string]string{plan.WingA: "#dbe6f4", plan.WingB: "#c8dbf0", plan.WingC: "#dbe6f4"}
	for _, name := range []string{plan.WingA, plan.WingB, plan.WingC} {
		c.polygon(g.Wings[name].Vertices, wingColors[name], "#304d6d", 1.5)
	}
	c.polygon(g.HexVertices, "#f1f8ff", "#2f4f6f", 1.8)
	if includeCourtyard {
		c.polygon(g.Courtyard.Vertices, "#ececec", "#777777", 1.4)
	}
	c.polygon(g.MasterTriangle.Vertices, "none", "#214d1f", 2.2)

	atrium := g.Atrium()
	hexC := atrium.Centroid()
	for i := range g.HexVertices {
		p0 := g.HexVertices[i]
		p1 := g.HexVertices[(i+1)%len(g.HexVertices)]
		c.dimension(p0, p1, hexC, 3.0, fmt.Sprintf("%.1f ft", p0.Distance(p1)), "#4b5f72", false)
	}
	triC := g.MasterTriangle.Centroid()
	for i := 0; i < g.MasterTriangle.Len(); i++ {
		p0, p1 := g.MasterTriangle.Edge(i)
		c.dimension(p0, p1, triC, 4.0, fmt.Sprintf("%.1f ft", p0.Distance(p1)), "#2a5727", false)
	}
	for i, hv := range g.HexVertices {
		np := closestOnBoundary(hv, g.MasterTriangle)
		d := hv.Distance(np)
		if d < 1e-3 {
			continue
		}
		c.dimension(hv, np, hexC, 1.8+float64(i%2)*0.8, fmt.Sprintf("%.1f ft", d), "#7a2f2f", true)
	}

	if cfg.Labels {
		writeLabels(c, g, includeCourtyard)
		writeLegend(c, cfg, metrics, includeCourtyard, legendW)
	}

	c.add("</svg>")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(c.lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing plan diagram: %w", err)
	}
	return nil
}

func writeLabels(c *svgCanvas, g *plan.Geometry, includeCourtyard bool) {
	for _, name := range []string{plan.WingA, plan.WingB, plan.WingC} {
		x, y := c.tx(g.Wings[name].Centroid())
		c.text(x, y, svgLabelStyle, "middle", "Wing "+name)
	}

	hx, hy := c.tx(g.Atrium().Centroid())
	tx, ty := c.tx(g.MasterTriangle.Centroid())

	// Nudge the atrium and triangle labels apart when the centroids land
	// close enough to overlap on screen.
	dx, dy := tx-hx, ty-hy
	sep := math.Hypot(dx, dy)
	const minSepPx = 36.0
	if sep < minSepPx {
		shift := minSepPx * 0.6
		ux, uy := 0.0, -1.0
		if sep > 1e-6 {
			shift = (minSepPx - sep) * 0.6
			ux, uy = dx/sep, dy/sep
		}
		tx += ux * shift
		ty += uy * shift
		hx -= ux * shift * 0.5
		hy -= uy * shift * 0.5
	}
	c.text(hx, hy, svgLabelStyle, "middle", "Atrium")
	c.text(tx, ty, svgLabelStyle, "middle", "Master Triangle")

	if includeCourtyard {
		qx, qy := c.tx(g.Courtyard.Centroid())
		c.text(qx, qy, svgLabelStyle, "middle", "Courtyard")
	}
}

func writeLegend(c *svgCanvas, cfg *config.Params, m *analytics.Metrics, includeCourtyard bool, legendW float64) {
	courtyardArea := 0.0
	if includeCourtyard {
		courtyardArea = m.Areas.Courtyard
	}
	totalPlan := m.Areas.Atrium + m.Areas.WingsTotal + m.Areas.MasterTriangle

	lines := []string{
		"Legend",
		fmt.Sprintf("Atrium area: %.1f sf", m.Areas.Atrium),
		fmt.Sprintf("Wing A area: %.1f sf", m.Areas.WingA),
		fmt.Sprintf("Wing B area: %.1f sf", m.Areas.WingB),
		fmt.Sprintf("Wing C area: %.1f sf", m.Areas.WingC),
		fmt.Sprintf("Master triangle area: %.1f sf", m.Areas.MasterTriangle),
		fmt.Sprintf("Triangle room A: %.1f sf", m.TriangleRooms.RoomA),
		fmt.Sprintf("Triangle room B: %.1f sf", m.TriangleRooms.RoomB),
		fmt.Sprintf("Triangle room C: %.1f sf", m.TriangleRooms.RoomC),
		fmt.Sprintf("Total plan area: %.1f sf", totalPlan),
		fmt.Sprintf("Courtyard area: %.1f sf", courtyardArea),
		"Rotation preserves triangle area.",
		fmt.Sprintf("Ceiling height: %.1f ft", cfg.CeilingHeight),
		fmt.Sprintf("Slab thickness: %.1f ft", cfg.SlabThickness),
		fmt.Sprintf("Upper ground: %.1f ft", cfg.UpperGround),
		fmt.Sprintf("Lower ground: %.1f ft", cfg.LowerGround),
		fmt.Sprintf("Triangle level base: %.1f ft", cfg.MasterTriangleElev()),
		fmt.Sprintf("Atrium floor: %.1f ft", cfg.AtriumFloor),
		fmt.Sprintf("Atrium roof: %.1f to %.1f ft", cfg.AtriumRoofBase, cfg.AtriumRoofBase+cfg.AtriumRoofRise),
		"Dims shown:",
		"- Hex + triangle edge lengths",
		"- Atrium-to-triangle clearances",
	}

	legendX := float64(c.width) - legendW + 16
	legendY := 20.0
	const lineH = 17.0
	boxH := lineH*float64(len(lines)) + 16
	c.add("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"#f9fbff\" stroke=\"#b7c6d8\" stroke-width=\"1.2\" rx=\"6\" ry=\"6\"/>",
		legendX-8, legendY-14, legendW-24, boxH)
	for i, text := range lines {
		weight, size := "400", "13px"
		if i == 0 {
			weight, size = "700", "14px"
		}
		c.add("  <text x=\"%.2f\" y=\"%.2f\" style=\"font-family:Arial,sans-serif;font-size:%s;font-weight:%s;fill:#1f2a36\">%s</text>",
			legendX, legendY+float64(i)*lineH, size, weight, text)
	}
}
