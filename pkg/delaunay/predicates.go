package delaunay

import "github.com/0x0FACED/go-delaunay/pkg/geom"

// Mesh predicates. Super vertices are points at infinity along
// superDirections: no finite circumcircle contains one, so hull triangles
// survive the final filter whatever their shape. The finite super-triangle
// coordinates only break ties.

func (m *mesh) isSuper(v int) bool {
	return v >= m.n
}

func (m *mesh) direction(v int) geom.Point {
	return superDirections[v-m.n]
}

// rotated returns a cyclic rotation of v with the real vertices first, and
// how many super vertices v holds. Rotation keeps the winding.
func (m *mesh) rotated(v [3]int) ([3]int, int) {
	k := 0
	for _, id := range v {
		if m.isSuper(id) {
			k++
		}
	}
	for r := range v {
		w := [3]int{v[r], v[(r+1)%3], v[(r+2)%3]}
		ok := true
		for _, id := range w[:3-k] {
			ok = ok && !m.isSuper(id)
		}
		if ok {
			return w, k
		}
	}
	return v, k
}

// orient is geom.Orientation with super vertices taken to infinity.
func (m *mesh) orient(a, b, c int) geom.Turn {
	w, k := m.rotated([3]int{a, b, c})
	switch k {
	case 0:
		return geom.Orientation(m.vertices[w[0]], m.vertices[w[1]], m.vertices[w[2]], m.eps)
	case 1:
		x, y := m.vertices[w[0]], m.vertices[w[1]]
		if t := geom.Turn(geom.Compare(y.Sub(x).Cross(m.direction(w[2])), 0, m.eps)); t != geom.Colinear {
			return t
		}
		// x->y runs parallel to the direction
		return geom.Orientation(x, y, m.vertices[w[2]], m.eps)
	case 2:
		return geom.Turn(geom.Compare(m.direction(w[1]).Cross(m.direction(w[2])), 0, m.eps))
	default:
		return geom.Orientation(m.direction(w[0]), m.direction(w[1]), m.direction(w[2]), m.eps)
	}
}

// inCircle reports whether p lies in the circumcircle of t, boundary
// included.
func (m *mesh) inCircle(t *triangle, p geom.Point) bool {
	w, k := m.rotated(t.v)
	switch k {
	case 0:
		return geom.PointInCircle(t.circle, p, m.eps)
	case 1:
		// The circle through a, b and a far point left of a->b tends to the
		// open half-plane left of a->b plus the open segment a-b.
		a, b := m.vertices[w[0]], m.vertices[w[1]]
		switch geom.Orientation(a, b, p, m.eps) {
		case geom.CounterClockwise:
			return true
		case geom.Clockwise:
			return false
		}
		return p.Sub(a).Dot(b.Sub(a)) > 0 && p.Sub(b).Dot(a.Sub(b)) > 0
	case 2:
		return m.inWedgeCircle(m.vertices[w[0]], m.direction(w[1]), m.direction(w[2]), p)
	default:
		return true
	}
}

// inWedgeCircle decides the circle through a and the super vertices along ui
// and uj. Seen from a it tends to the half-plane facing c, the circumcenter
// of 0, ui and uj. On the boundary line the next order term, which depends
// on the bounding-box center, decides.
func (m *mesh) inWedgeCircle(a, ui, uj, p geom.Point) bool {
	circle, _ := geom.Circumcircle(geom.Point{}, ui, uj, m.eps)
	c := circle.Center
	q := p.Sub(a)
	if s := geom.Compare(q.Dot(c), 0, m.eps); s != 0 {
		return s > 0
	}

	mc := m.mid.Sub(a)
	ri := mc.Dot(ui) - mc.Dot(c)
	rj := mc.Dot(uj) - mc.Dot(c)
	det := ui.Cross(uj)
	c1 := geom.Point{
		X: (ri*uj.Y - ui.Y*rj) / det,
		Y: (ui.X*rj - ri*uj.X) / det,
	}
	return geom.Compare(q.Dot(q)-2*q.Dot(c1), 0, m.eps) <= 0
}
