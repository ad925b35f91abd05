package geo

import (
	"errors"
	"math"
)

// ErrParallelLines is returned when two lines have no unique intersection.
var ErrParallelLines = errors.New("geo: parallel lines have no intersection")

// LineIntersection returns the intersection of the infinite lines through
// (a0,a1) and (b0,b1). Returns ErrParallelLines when the determinant is
// near zero.
func LineIntersection(a0, a1, b0, b1 Point2D) (Point2D, error) {
	den := (a0.X-a1.X)*(b0.Y-b1.Y) - (a0.Y-a1.Y)*(b0.X-b1.X)
	if math.Abs(den) < 1e-12 {
		return Point2D{}, ErrParallelLines
	}
	detA := a0.X*a1.Y - a0.Y*a1.X
	detB := b0.X*b1.Y - b0.Y*b1.X
	return Point2D{
		X: (detA*(b0.X-b1.X) - (a0.X-a1.X)*detB) / den,
		Y: (detA*(b0.Y-b1.Y) - (a0.Y-a1.Y)*detB) / den,
	}, nil
}

// PointLineDistance returns the perpendicular distance from pt to the
// infinite line through a and b.
func PointLineDistance(pt, a, b Point2D) float64 {
	u := b.Sub(a)
	v := pt.Sub(a)
	den := math.Max(u.Length(), 1e-12)
	return math.Abs(u.Cross(v)) / den
}

// PointSegmentDistance returns the distance from pt to the closest point on
// the segment from a to b.
func PointSegmentDistance(pt, a, b Point2D) float64 {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq < 1e-12 {
		return pt.Distance(a)
	}
	t := math.Max(0, math.Min(1, pt.Sub(a).Dot(d)/lenSq))
	return pt.Distance(a.Lerp(b, t))
}

// ClosestPointOnSegment returns the point on segment a-b nearest to pt.
func ClosestPointOnSegment(pt, a, b Point2D) Point2D {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq < 1e-12 {
		return a
	}
	t := math.Max(0, math.Min(1, pt.Sub(a).Dot(d)/lenSq))
	return a.Lerp(b, t)
}

// OffsetEdgeOutward translates the edge (p0,p1) perpendicular to itself by
// dist, away from the interior reference point. The outward perpendicular
// is the one whose dot product with the midpoint-from-interior vector is
// larger.
func OffsetEdgeOutward(p0, p1, interior Point2D, dist float64) (Point2D, Point2D) {
	e := p1.Sub(p0)
	toMid := MidPoint(p0, p1).Sub(interior)

	n1 := Point2D{e.Y, -e.X}.Normalize()
	n2 := Point2D{-e.Y, e.X}.Normalize()
	n := n1
	if n2.Dot(toMid) > n1.Dot(toMid) {
		n = n2
	}
	off := n.Scale(dist)
	return p0.Add(off), p1.Add(off)
}

// CubicBezier evaluates the cubic Bezier curve with control points p0..p3
// at parameter t in [0,1].
func CubicBezier(p0, p1, p2, p3 Point2D, t float64) Point2D {
	s := 1.0 - t
	a := s * s * s
	b := 3 * s * s * t
	c := 3 * s * t * t
	d := t * t * t
	return Point2D{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
