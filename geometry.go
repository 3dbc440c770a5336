package ganvas

import "math"

// Point is a 2D coordinate pair.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle (x, y, width, height). Width and
// height are non-negative.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap. Adjacent rectangles
// (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return r.X <= other.X && r.Y <= other.Y &&
		r.X+r.Width >= other.X+other.Width &&
		r.Y+r.Height >= other.Y+other.Height
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x, Y: y, Width: x1 - x, Height: y1 - y}
}

// DistancePointPoint returns the Euclidean distance between a and b.
func DistancePointPoint(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceRectanglePoint returns the distance from p to the nearest edge
// of r; 0 if p lies inside r.
func DistanceRectanglePoint(r Rect, p Point) float64 {
	x1 := r.X + r.Width
	y1 := r.Y + r.Height

	if r.X < p.X && p.X < x1 && r.Y < p.Y && p.Y < y1 {
		return 0
	}

	var dx, dy float64
	switch {
	case p.X < r.X:
		dx = r.X - p.X
	case p.X > x1:
		dx = p.X - x1
	}
	switch {
	case p.Y < r.Y:
		dy = r.Y - p.Y
	case p.Y > y1:
		dy = p.Y - y1
	}
	d := math.Abs(dx) + math.Abs(dy)
	if d < 0 {
		return 0
	}
	return d
}

// DistanceLinePoint returns the distance from p to the closest point on
// segment a-b, and that closest point.
func DistanceLinePoint(a, b, p Point) (float64, Point) {
	trueEnd := b

	end := Point{b.X - a.X, b.Y - a.Y}
	pt := Point{p.X - a.X, p.Y - a.Y}

	lenSqr := end.X*end.X + end.Y*end.Y
	if lenSqr < 0.0001 {
		return DistancePointPoint(pt, Point{}), a
	}

	proj := (end.X*pt.X + end.Y*pt.Y) / lenSqr

	switch {
	case proj < 0.0:
		return DistancePointPoint(pt, Point{}), a
	case proj > 1.0:
		return DistancePointPoint(pt, end), trueEnd
	default:
		onLine := Point{end.X * proj, end.Y * proj}
		return DistancePointPoint(Point{onLine.X - pt.X, onLine.Y - pt.Y}, Point{}),
			Point{a.X + onLine.X, a.Y + onLine.Y}
	}
}

// IntersectLineLine finds the point where segments a1-a2 and b1-b2
// intersect. Returns ok=false if the segments don't intersect or are
// collinear.
func IntersectLineLine(a1, a2, b1, b2 Point) (Point, bool) {
	x1, y1 := a1.X, a1.Y
	x2, y2 := a2.X, a2.Y
	x3, y3 := b1.X, b1.Y
	x4, y4 := b2.X, b2.Y

	la := y2 - y1
	lb := x1 - x2
	lc := x2*y1 - x1*y2

	r3 := la*x3 + lb*y3 + lc
	r4 := la*x4 + lb*y4 + lc
	if r3 != 0 && r4 != 0 && r3*r4 >= 0 {
		return Point{}, false
	}

	la2 := y4 - y3
	lb2 := x3 - x4
	lc2 := x4*y3 - x3*y4

	r1 := la2*x1 + lb2*y1 + lc2
	r2 := la2*x2 + lb2*y2 + lc2
	if r1 != 0 && r2 != 0 && r1*r2 >= 0 {
		return Point{}, false
	}

	denom := la*lb2 - la2*lb
	if denom == 0 {
		return Point{}, false
	}
	xNum := lb*lc2 - lb2*lc
	yNum := la2*lc - la*lc2

	return Point{X: xNum / denom, Y: yNum / denom}, true
}

// RectangleContains reports whether inner lies entirely inside outer.
func RectangleContains(inner, outer Rect) bool {
	return outer.X <= inner.X && outer.Y <= inner.Y &&
		outer.X+outer.Width >= inner.X+inner.Width &&
		outer.Y+outer.Height >= inner.Y+inner.Height
}

// RectangleIntersects reports whether a and b overlap, treating shared
// edges as intersecting.
func RectangleIntersects(a, b Rect) bool {
	return a.X <= b.X+b.Width && a.X+a.Width >= b.X &&
		a.Y <= b.Y+b.Height && a.Y+a.Height >= b.Y
}
