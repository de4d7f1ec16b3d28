package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	assert.Equal(t, 0, Compare(1, 1+1e-10, Epsilon))
	assert.Equal(t, 0, Compare(1, 1-Epsilon/2, Epsilon))
	assert.Equal(t, -1, Compare(1, 1+1e-6, Epsilon))
	assert.Equal(t, 1, Compare(2, 1, Epsilon))
	assert.Equal(t, 0, Compare(-3, -3, 0))
}

func TestPointEqual(t *testing.T) {
	p := Point{1, 2}
	assert.True(t, p.Equal(Point{1 + 1e-10, 2 - 1e-10}, Epsilon))
	assert.False(t, p.Equal(Point{1, 2 + 1e-6}, Epsilon))
}

func TestOrientation(t *testing.T) {
	a, b := Point{0, 0}, Point{1, 0}
	assert.Equal(t, CounterClockwise, Orientation(a, b, Point{0, 1}, Epsilon))
	assert.Equal(t, Clockwise, Orientation(a, b, Point{0, -1}, Epsilon))
	assert.Equal(t, Colinear, Orientation(a, b, Point{2, 0}, Epsilon))
	assert.Equal(t, Colinear, Orientation(a, b, Point{5, 1e-12}, Epsilon))
	assert.Equal(t, "colinear", Colinear.String())
}

func TestCircumcircle(t *testing.T) {
	t.Run("right triangle", func(t *testing.T) {
		c, ok := Circumcircle(Point{0, 0}, Point{2, 0}, Point{0, 2}, Epsilon)
		require.True(t, ok)
		assert.InDelta(t, 1, c.Center.X, 1e-12)
		assert.InDelta(t, 1, c.Center.Y, 1e-12)
		assert.InDelta(t, math.Sqrt2, c.Radius, 1e-12)
	})

	t.Run("winding does not matter", func(t *testing.T) {
		ccw, ok := Circumcircle(Point{3, 1}, Point{7, 2}, Point{4, 6}, Epsilon)
		require.True(t, ok)
		cw, ok := Circumcircle(Point{3, 1}, Point{4, 6}, Point{7, 2}, Epsilon)
		require.True(t, ok)
		assert.InDelta(t, ccw.Center.X, cw.Center.X, 1e-12)
		assert.InDelta(t, ccw.Center.Y, cw.Center.Y, 1e-12)
		assert.InDelta(t, ccw.Radius, cw.Radius, 1e-12)
		for _, p := range []Point{{3, 1}, {7, 2}, {4, 6}} {
			assert.InDelta(t, ccw.Radius, Distance(ccw.Center, p), 1e-9)
		}
	})

	t.Run("colinear", func(t *testing.T) {
		_, ok := Circumcircle(Point{0, 0}, Point{1, 0}, Point{2, 0}, Epsilon)
		assert.False(t, ok)
		_, ok = Circumcircle(Point{1, 1}, Point{1, 1}, Point{4, 2}, Epsilon)
		assert.False(t, ok)
	})
}

func TestPointInCircle(t *testing.T) {
	c := Circle{Center: Point{0, 0}, Radius: 1}
	assert.True(t, PointInCircle(c, Point{0.5, 0.5}, Epsilon))
	assert.True(t, PointInCircle(c, Point{1, 0}, Epsilon))
	assert.True(t, PointInCircle(c, Point{0, 1 + 1e-10}, Epsilon))
	assert.False(t, PointInCircle(c, Point{0, 1.001}, Epsilon))
}

func TestConvexHull(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0.5, 0.5}, {0.5, 0}}
	hull := ConvexHull(points, Epsilon)
	assert.Equal(t, []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, hull)
	assert.InDelta(t, 1, PolygonArea(hull), 1e-12)

	for i := range hull {
		a, b, c := hull[i], hull[(i+1)%len(hull)], hull[(i+2)%len(hull)]
		assert.Equal(t, CounterClockwise, Orientation(a, b, c, Epsilon))
	}

	assert.Len(t, ConvexHull([]Point{{0, 0}, {1, 1}}, Epsilon), 2)
}

func TestSignedArea(t *testing.T) {
	assert.InDelta(t, 0.5, SignedArea(Point{0, 0}, Point{1, 0}, Point{0, 1}), 1e-12)
	assert.InDelta(t, -0.5, SignedArea(Point{0, 0}, Point{0, 1}, Point{1, 0}), 1e-12)
}
