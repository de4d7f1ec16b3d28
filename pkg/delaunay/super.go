package delaunay

import (
	"math"

	"github.com/0x0FACED/go-delaunay/pkg/geom"
)

// superDirections point from the bounding-box center to the super-triangle
// vertices, counter-clockwise. The predicates treat super vertices as points
// at infinity along these directions.
var superDirections = [3]geom.Point{{X: -1, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}}

// superTriangle vertices, counter-clockwise.
type superTriangle [3]geom.Point

// newSuperTriangle builds a triangle strictly enclosing every point. The
// vertices sit scale*side away from the bounding-box center along
// superDirections, where side is the larger box dimension.
func newSuperTriangle(points []geom.Point, scale, eps float64) (superTriangle, error) {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	side := math.Max(maxX-minX, maxY-minY)
	if geom.Compare(side, 0, eps) == 0 {
		return superTriangle{}, &DegenerateError{
			Reason:  "bounding box has zero extent",
			Points:  []geom.Point{points[0]},
			Indices: []int{0},
		}
	}

	mid := geom.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
	d := scale * side
	var st superTriangle
	for i, u := range superDirections {
		st[i] = mid.Add(u.Scale(d))
	}

	for i, p := range points {
		if !st.strictlyContains(p, eps) {
			return superTriangle{}, &DegenerateError{
				Reason:  "point is not strictly inside the super-triangle",
				Points:  []geom.Point{p},
				Indices: []int{i},
			}
		}
	}
	return st, nil
}

func (st superTriangle) strictlyContains(p geom.Point, eps float64) bool {
	for i := range st {
		if geom.Orientation(st[i], st[(i+1)%3], p, eps) != geom.CounterClockwise {
			return false
		}
	}
	return true
}

// center is the bounding-box center the vertices were pushed away from.
func (st superTriangle) center() geom.Point {
	return geom.Point{X: st[2].X, Y: st[1].Y}
}
