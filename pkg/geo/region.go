package geo

import (
	polyclip "github.com/ctessum/polyclip-go"
)

// Region is a plane region that may consist of several contours, including
// holes. It is the result type of all polygon boolean operations. Point
// membership uses the even-odd rule, so hole contours need no particular
// orientation.
type Region struct {
	contours []Polygon
}

// RegionFrom builds a region from one or more simple polygons. Polygons
// contained inside another act as holes (even-odd).
func RegionFrom(polys ...Polygon) Region {
	r := Region{}
	for _, p := range polys {
		if !p.IsEmpty() {
			r.contours = append(r.contours, p)
		}
	}
	return r
}

// Contours returns the region's contours. The slice must not be mutated.
func (r Region) Contours() []Polygon {
	return r.contours
}

// IsEmpty returns true if the region has no contours.
func (r Region) IsEmpty() bool {
	return len(r.contours) == 0
}

// Contains reports whether pt is inside the region under the even-odd rule.
func (r Region) Contains(pt Point2D) bool {
	crossings := 0
	for _, c := range r.contours {
		if c.Contains(pt) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// Area returns the total enclosed area: each contour contributes its
// unsigned area, negated when it lies inside an odd number of other
// contours (i.e. is a hole).
func (r Region) Area() float64 {
	total := 0.0
	for i, c := range r.contours {
		if c.IsEmpty() {
			continue
		}
		depth := 0
		probe := c.Vertices[0]
		for j, other := range r.contours {
			if i != j && other.Contains(probe) {
				depth++
			}
		}
		a := c.Area()
		if depth%2 == 1 {
			a = -a
		}
		total += a
	}
	return total
}

// BoundingBox returns the axis-aligned bounds over all contours.
func (r Region) BoundingBox() (Point2D, Point2D) {
	if len(r.contours) == 0 {
		return Point2D{}, Point2D{}
	}
	minP, maxP := r.contours[0].BoundingBox()
	for _, c := range r.contours[1:] {
		lo, hi := c.BoundingBox()
		if lo.X < minP.X {
			minP.X = lo.X
		}
		if lo.Y < minP.Y {
			minP.Y = lo.Y
		}
		if hi.X > maxP.X {
			maxP.X = hi.X
		}
		if hi.Y > maxP.Y {
			maxP.Y = hi.Y
		}
	}
	return minP, maxP
}

// Union returns r ∪ other.
func (r Region) Union(other Region) Region {
	return construct(polyclip.UNION, r, other)
}

// Difference returns r minus other.
func (r Region) Difference(other Region) Region {
	return construct(polyclip.DIFFERENCE, r, other)
}

// Intersect returns r ∩ other.
func (r Region) Intersect(other Region) Region {
	return construct(polyclip.INTERSECTION, r, other)
}

func construct(op polyclip.Op, a, b Region) Region {
	result := toClip(a).Construct(op, toClip(b))
	out := Region{}
	for _, c := range result {
		if len(c) < 3 {
			continue
		}
		verts := make([]Point2D, len(c))
		for i, pt := range c {
			verts[i] = Point2D{pt.X, pt.Y}
		}
		out.contours = append(out.contours, Polygon{Vertices: verts})
	}
	return out
}

func toClip(r Region) polyclip.Polygon {
	poly := make(polyclip.Polygon, 0, len(r.contours))
	for _, c := range r.contours {
		contour := make(polyclip.Contour, len(c.Vertices))
		for i, v := range c.Vertices {
			contour[i] = polyclip.Point{X: v.X, Y: v.Y}
		}
		poly = append(poly, contour)
	}
	return poly
}
