package delaunay

import (
	"sort"

	"github.com/0x0FACED/go-delaunay/pkg/geom"
)

// indexMapper resolves a point back to its position in the caller's slice
// using epsilon equality.
type indexMapper struct {
	points []geom.Point
	// indices sorted by X, then Y
	byX []int
	eps float64
}

// newIndexMapper fails with *DuplicatePointError when two points are equal
// within eps. Of all conflicting pairs the one whose later index is
// smallest is reported.
func newIndexMapper(points []geom.Point, eps float64) (*indexMapper, error) {
	m := &indexMapper{
		points: points,
		byX:    make([]int, len(points)),
		eps:    eps,
	}
	for i := range m.byX {
		m.byX[i] = i
	}
	sort.SliceStable(m.byX, func(i, j int) bool {
		a, b := points[m.byX[i]], points[m.byX[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	var dup *DuplicatePointError
	for i, a := range m.byX {
		pa := points[a]
		for _, b := range m.byX[i+1:] {
			pb := points[b]
			if pb.X-pa.X > eps {
				break
			}
			if !pa.Equal(pb, eps) {
				continue
			}
			later, earlier := max(a, b), min(a, b)
			if dup == nil || later < dup.Index || (later == dup.Index && earlier < dup.Conflict) {
				dup = &DuplicatePointError{Index: later, Conflict: earlier, Point: points[later]}
			}
		}
	}
	if dup != nil {
		return nil, dup
	}
	return m, nil
}

// indexOf returns the position of the input point epsilon-equal to p.
func (m *indexMapper) indexOf(p geom.Point) (int, bool) {
	lo := sort.Search(len(m.byX), func(i int) bool {
		return m.points[m.byX[i]].X >= p.X-m.eps
	})
	for _, idx := range m.byX[lo:] {
		q := m.points[idx]
		if q.X-p.X > m.eps {
			break
		}
		if q.Equal(p, m.eps) {
			return idx, true
		}
	}
	return -1, false
}
