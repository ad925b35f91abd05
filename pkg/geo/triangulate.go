package geo

import "math"

// Tri2D is a triangle in the plan plane.
type Tri2D [3]Point2D

// Centroid returns the triangle centroid.
func (t Tri2D) Centroid() Point2D {
	return Point2D{
		X: (t[0].X + t[1].X + t[2].X) / 3,
		Y: (t[0].Y + t[1].Y + t[2].Y) / 3,
	}
}

// SignedArea returns the triangle's signed area (positive when CCW).
func (t Tri2D) SignedArea() float64 {
	return 0.5 * t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
}

// EnsureCCW returns the triangle with counterclockwise winding.
func (t Tri2D) EnsureCCW() Tri2D {
	if t.SignedArea() < 0 {
		return Tri2D{t[0], t[2], t[1]}
	}
	return t
}

// Triangulate produces a triangulation of the region: a Delaunay
// triangulation of all contour vertices, keeping only triangles whose
// centroid lies inside the region. Holes and non-convex outlines fall out
// of the centroid filter. Degenerate input (fewer than 3 distinct
// vertices, zero-area outlines) yields an empty slice, not an error.
func Triangulate(r Region) []Tri2D {
	pts := collectVertices(r)
	if len(pts) < 3 {
		return nil
	}

	tris := delaunay(pts)

	out := make([]Tri2D, 0, len(tris))
	for _, t := range tris {
		tri := Tri2D{pts[t[0]], pts[t[1]], pts[t[2]]}
		if math.Abs(tri.SignedArea()) < 1e-12 {
			continue
		}
		if r.Contains(tri.Centroid()) {
			out = append(out, tri.EnsureCCW())
		}
	}
	return out
}

// collectVertices gathers distinct vertices from all contours.
func collectVertices(r Region) []Point2D {
	var pts []Point2D
	for _, c := range r.contours {
		for _, v := range c.Vertices {
			dup := false
			for _, p := range pts {
				if p.Distance(v) < 1e-9 {
					dup = true
					break
				}
			}
			if !dup {
				pts = append(pts, v)
			}
		}
	}
	return pts
}

type indexTri [3]int

// delaunay runs Bowyer-Watson over the point set, returning index triples.
func delaunay(pts []Point2D) []indexTri {
	n := len(pts)

	// Super-triangle comfortably containing every point.
	minP, maxP := pts[0], pts[0]
	for _, p := range pts[1:] {
		minP.X = math.Min(minP.X, p.X)
		minP.Y = math.Min(minP.Y, p.Y)
		maxP.X = math.Max(maxP.X, p.X)
		maxP.Y = math.Max(maxP.Y, p.Y)
	}
	span := math.Max(maxP.X-minP.X, maxP.Y-minP.Y)
	if span < 1e-12 {
		return nil
	}
	mid := MidPoint(minP, maxP)
	all := make([]Point2D, n, n+3)
	copy(all, pts)
	all = append(all,
		Pt(mid.X-20*span, mid.Y-span),
		Pt(mid.X+20*span, mid.Y-span),
		Pt(mid.X, mid.Y+20*span),
	)

	tris := []indexTri{{n, n + 1, n + 2}}

	for i := 0; i < n; i++ {
		p := all[i]

		var bad []indexTri
		var keep []indexTri
		for _, t := range tris {
			if inCircumcircle(all[t[0]], all[t[1]], all[t[2]], p) {
				bad = append(bad, t)
			} else {
				keep = append(keep, t)
			}
		}

		// Boundary of the cavity: edges belonging to exactly one bad triangle.
		edgeCount := make(map[[2]int]int)
		for _, t := range bad {
			for e := 0; e < 3; e++ {
				a, b := t[e], t[(e+1)%3]
				if a > b {
					a, b = b, a
				}
				edgeCount[[2]int{a, b}]++
			}
		}
		tris = keep
		for edge, count := range edgeCount {
			if count == 1 {
				tris = append(tris, indexTri{edge[0], edge[1], i})
			}
		}
	}

	out := tris[:0]
	for _, t := range tris {
		if t[0] < n && t[1] < n && t[2] < n {
			out = append(out, t)
		}
	}
	return out
}

// inCircumcircle reports whether p lies strictly inside the circumcircle
// of triangle (a, b, c).
func inCircumcircle(a, b, c, p Point2D) bool {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return false
	}
	aSq := a.X*a.X + a.Y*a.Y
	bSq := b.X*b.X + b.Y*b.Y
	cSq := c.X*c.X + c.Y*c.Y
	ux := (aSq*(b.Y-c.Y) + bSq*(c.Y-a.Y) + cSq*(a.Y-b.Y)) / d
	uy := (aSq*(c.X-b.X) + bSq*(a.X-c.X) + cSq*(b.X-a.X)) / d
	center := Pt(ux, uy)
	rSq := center.Sub(a).Dot(center.Sub(a))
	dSq := center.Sub(p).Dot(center.Sub(p))
	return dSq < rSq-1e-12
}
