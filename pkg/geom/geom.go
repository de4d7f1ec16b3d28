package geom

import (
	"fmt"
	"math"
	"sort"
)

// Epsilon is the absolute tolerance used by every comparison in this package.
// It is not scale invariant: very large or very small coordinates may be
// misclassified near ties.
const Epsilon = 1e-9

type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Dot product.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross is the z component of p x q.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - q.X*p.Y }

// Equal reports whether both coordinates are within eps of each other.
func (p Point) Equal(q Point, eps float64) bool {
	return Compare(p.X, q.X, eps) == 0 && Compare(p.Y, q.Y, eps) == 0
}

func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Compare returns -1 if a < b, 0 if |a-b| <= eps and 1 if a > b.
func Compare(a, b, eps float64) int {
	if math.Abs(a-b) <= eps {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

type Turn int

const (
	Clockwise        Turn = -1
	Colinear         Turn = 0
	CounterClockwise Turn = 1
)

func (t Turn) String() string {
	switch t {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return "colinear"
	}
}

// Orientation is the sign of (q-p) x (r-p), zero within eps.
func Orientation(p, q, r Point, eps float64) Turn {
	return Turn(Compare(q.Sub(p).Cross(r.Sub(p)), 0, eps))
}

// SignedArea is positive for counter-clockwise triangles.
func SignedArea(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

type Circle struct {
	Center Point
	Radius float64
}

// Circumcircle returns the circle through a, b and c. ok is false when the
// doubled signed area of the triangle is within eps of zero, in which case
// the circle is undefined and the returned value must not be used.
func Circumcircle(a, b, c Point, eps float64) (circle Circle, ok bool) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	if Compare(d, 0, eps) == 0 {
		return Circle{}, false
	}
	hb := bx*bx + by*by
	hc := cx*cx + cy*cy
	center := Point{(cy*hb-by*hc)/d + a.X, (bx*hc-cx*hb)/d + a.Y}
	if !center.IsFinite() {
		return Circle{}, false
	}
	return Circle{Center: center, Radius: Distance(center, a)}, true
}

// PointInCircle reports whether p lies inside or on c, within eps.
func PointInCircle(c Circle, p Point, eps float64) bool {
	return Compare(Distance(c.Center, p), c.Radius, eps) <= 0
}

// ConvexHull returns the strict convex hull of points in counter-clockwise
// order, starting from the lowest-x (then lowest-y) point. Colinear points
// on hull edges are dropped.
func ConvexHull(points []Point, eps float64) []Point {
	if len(points) < 3 {
		return append([]Point(nil), points...)
	}
	sorted := append([]Point(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	hull := make([]Point, 0, 2*len(sorted))
	// lower chain
	for _, p := range sorted {
		for len(hull) >= 2 && Orientation(hull[len(hull)-2], hull[len(hull)-1], p, eps) != CounterClockwise {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper chain
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && Orientation(hull[len(hull)-2], hull[len(hull)-1], p, eps) != CounterClockwise {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// PolygonArea is the absolute shoelace area of a simple polygon.
func PolygonArea(poly []Point) float64 {
	var sum float64
	for i := range poly {
		sum += poly[i].Cross(poly[(i+1)%len(poly)])
	}
	return math.Abs(sum) / 2
}
