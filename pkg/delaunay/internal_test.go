package delaunay

import (
	"testing"

	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeSet(t *testing.T) {
	s := newEdgeSet()

	t.Run("shared edge cancels", func(t *testing.T) {
		// two counter-clockwise triangles 0-1-2 and 0-2-3 share 0-2
		for _, tri := range [][3]int{{0, 1, 2}, {0, 2, 3}} {
			s.toggle(tri[0], tri[1])
			s.toggle(tri[1], tri[2])
			s.toggle(tri[2], tri[0])
		}
		assert.NotContains(t, s.boundary(), edge{0, 2})
		assert.NotContains(t, s.boundary(), edge{2, 0})
		assert.Equal(t, []edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, s.boundary())
	})

	t.Run("reset", func(t *testing.T) {
		s.reset()
		assert.Empty(t, s.boundary())
		s.toggle(5, 4)
		assert.Equal(t, []edge{{5, 4}}, s.boundary())
	})

	t.Run("readd keeps latest direction", func(t *testing.T) {
		s.reset()
		s.toggle(1, 2)
		s.toggle(2, 1)
		s.toggle(2, 1)
		assert.Equal(t, []edge{{2, 1}}, s.boundary())
	})
}

func TestMakeEdgeKey(t *testing.T) {
	assert.Equal(t, makeEdgeKey(3, 1), makeEdgeKey(1, 3))
	assert.Equal(t, edgeKey{1, 3}, makeEdgeKey(3, 1))
}

func TestSuperTriangle(t *testing.T) {
	points := []geom.Point{{X: -5, Y: 2}, {X: 3, Y: 7}, {X: 10, Y: -1}, {X: 0, Y: 0}}
	st, err := newSuperTriangle(points, MinScale, geom.Epsilon)
	require.NoError(t, err)

	assert.Equal(t, geom.CounterClockwise, geom.Orientation(st[0], st[1], st[2], geom.Epsilon))
	for _, p := range points {
		assert.True(t, st.strictlyContains(p, geom.Epsilon), "%s", p)
	}
	// the bounding box corners with margin
	for _, p := range []geom.Point{{X: -6, Y: -2}, {X: -6, Y: 8}, {X: 11, Y: -2}, {X: 11, Y: 8}} {
		assert.True(t, st.strictlyContains(p, geom.Epsilon), "%s", p)
	}

	_, err = newSuperTriangle([]geom.Point{{X: 1, Y: 1}, {X: 1, Y: 1}}, MinScale, geom.Epsilon)
	assert.True(t, errors.Is(err, ErrDegenerateGeometry))
}

func TestMeshPredicates(t *testing.T) {
	points := []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	st, err := newSuperTriangle(points, MinScale, geom.Epsilon)
	require.NoError(t, err)
	m := newMesh(points, []int{0, 1, 2}, st, newOptions())
	require.Equal(t, 3, m.n)
	require.Equal(t, geom.Point{X: 2, Y: 2}, m.mid)
	s0, s1, s2 := 3, 4, 5

	t.Run("orientation", func(t *testing.T) {
		assert.Equal(t, geom.CounterClockwise, m.orient(0, 1, 2))
		assert.Equal(t, geom.CounterClockwise, m.orient(0, 1, s2))
		assert.Equal(t, geom.Clockwise, m.orient(1, 0, s2))
		assert.Equal(t, geom.CounterClockwise, m.orient(s2, 0, 1))
		// 0->1 runs along the direction of s1, the finite vertex decides
		assert.Equal(t, geom.CounterClockwise, m.orient(0, 1, s1))
		assert.Equal(t, geom.CounterClockwise, m.orient(0, s1, s2))
		assert.Equal(t, geom.Clockwise, m.orient(0, s2, s1))
		assert.Equal(t, geom.CounterClockwise, m.orient(s0, s1, s2))
	})

	t.Run("one super vertex", func(t *testing.T) {
		for _, v := range [][3]int{{0, 1, s2}, {s2, 0, 1}, {1, s2, 0}} {
			tri := &triangle{v: v}
			assert.True(t, m.inCircle(tri, geom.Point{X: 2, Y: 100}))
			assert.True(t, m.inCircle(tri, geom.Point{X: 1e6, Y: 1e-3}))
			assert.False(t, m.inCircle(tri, geom.Point{X: 2, Y: -0.1}))
			// on the line: only the open segment counts
			assert.True(t, m.inCircle(tri, geom.Point{X: 2, Y: 0}))
			assert.False(t, m.inCircle(tri, geom.Point{X: 5, Y: 0}))
			assert.False(t, m.inCircle(tri, geom.Point{X: -1, Y: 0}))
		}
	})

	t.Run("two super vertices", func(t *testing.T) {
		tri := &triangle{v: [3]int{0, s1, s2}}
		assert.True(t, m.inCircle(tri, geom.Point{X: 1, Y: 0}))
		assert.False(t, m.inCircle(tri, geom.Point{X: -1, Y: 0}))
		// on the boundary line through vertex 0 the box center decides
		assert.False(t, m.inCircle(tri, geom.Point{X: 1, Y: -1}))
		assert.True(t, m.inCircle(&triangle{v: [3]int{2, s1, s2}}, geom.Point{X: 1, Y: 3}))
	})

	t.Run("three super vertices", func(t *testing.T) {
		assert.True(t, m.inCircle(&triangle{v: [3]int{s0, s1, s2}}, geom.Point{X: -1e9, Y: 1e9}))
	})
}

func TestIndexMapper(t *testing.T) {
	points := []geom.Point{{X: 2, Y: 2}, {X: 0, Y: 0}, {X: 1, Y: 5}, {X: 1, Y: 3}, {X: -4, Y: 0}}
	m, err := newIndexMapper(points, geom.Epsilon)
	require.NoError(t, err)

	for i, p := range points {
		idx, ok := m.indexOf(p)
		require.True(t, ok)
		assert.Equal(t, i, idx)

		idx, ok = m.indexOf(geom.Point{X: p.X + 1e-10, Y: p.Y - 1e-10})
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}

	_, ok := m.indexOf(geom.Point{X: 1, Y: 4})
	assert.False(t, ok)

	t.Run("duplicates", func(t *testing.T) {
		points := []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 1, Y: 1}, {X: 5, Y: 5 + 1e-11}, {X: 1 + 1e-12, Y: 1}}
		_, err := newIndexMapper(points, geom.Epsilon)
		var de *DuplicatePointError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, 3, de.Index)
		assert.Equal(t, 1, de.Conflict)
	})
}
