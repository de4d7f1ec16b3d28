package voronoi

import (
	"math"

	"github.com/0x0FACED/go-delaunay/pkg/geom"
)

// Bounding Box. Yt is the smaller y, Yb the larger one.
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

// BoundingBoxOf returns the box around points grown by margin on each side.
func BoundingBoxOf(points []geom.Point, margin float64) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	b := BoundingBox{points[0].X, points[0].X, points[0].Y, points[0].Y}
	for _, p := range points[1:] {
		b.Xl = math.Min(b.Xl, p.X)
		b.Xr = math.Max(b.Xr, p.X)
		b.Yt = math.Min(b.Yt, p.Y)
		b.Yb = math.Max(b.Yb, p.Y)
	}
	return BoundingBox{b.Xl - margin, b.Xr + margin, b.Yt - margin, b.Yb + margin}
}

func (b BoundingBox) center() geom.Point {
	return geom.Point{X: (b.Xl + b.Xr) / 2, Y: (b.Yt + b.Yb) / 2}
}

func (b BoundingBox) diagonal() float64 {
	return math.Hypot(b.Xr-b.Xl, b.Yb-b.Yt)
}

// Edge separates the cells of two sites. Sites are indices into the
// triangulated points.
type Edge struct {
	Sites [2]int
	Va    geom.Point
	Vb    geom.Point
}

// clipEdge cuts the segment to bbox (Liang-Barsky). It returns false when
// nothing of the segment is left inside.
func clipEdge(edge *Edge, bbox BoundingBox) bool {
	ax := edge.Va.X
	ay := edge.Va.Y
	bx := edge.Vb.X
	by := edge.Vb.Y
	t0 := float64(0)
	t1 := float64(1)
	dx := bx - ax
	dy := by - ay

	// p*t <= q for each side
	sides := [4][2]float64{
		{-dx, ax - bbox.Xl}, // left
		{dx, bbox.Xr - ax},  // right
		{-dy, ay - bbox.Yt}, // top
		{dy, bbox.Yb - ay},  // bottom
	}
	for _, s := range sides {
		p, q := s[0], s[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			} else if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			} else if r < t1 {
				t1 = r
			}
		}
	}

	if t0 > 0 {
		edge.Va = geom.Point{X: ax + t0*dx, Y: ay + t0*dy}
	}
	if t1 < 1 {
		edge.Vb = geom.Point{X: ax + t1*dx, Y: ay + t1*dy}
	}
	return true
}

func equalWithEpsilon(a, b float64) bool {
	return math.Abs(a-b) < geom.Epsilon
}
