// Package delaunay computes the Delaunay triangulation of a planar point set
// by incremental Bowyer-Watson insertion.
//
// Every point is inserted into a running mesh seeded with a super-triangle:
// triangles whose circumcircle holds the point are removed and the hole is
// fanned around the point. Finally every triangle touching the
// super-triangle is dropped. The super vertices behave as points at
// infinity, so the hull triangles are all present however flat they are.
//
// Comparisons use an absolute epsilon (geom.Epsilon by default), so the
// result is only meaningful for coordinates of moderate magnitude. When four
// or more points are co-circular the triangulation is not unique and the
// chosen diagonal depends on insertion order.
package delaunay

import (
	"math/rand/v2"

	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Triangle holds three indices into the triangulated slice, in
// counter-clockwise order.
type Triangle [3]int

func (t Triangle) Vertices(points []geom.Point) (a, b, c geom.Point) {
	return points[t[0]], points[t[1]], points[t[2]]
}

func (t Triangle) Area(points []geom.Point) float64 {
	a, b, c := t.Vertices(points)
	return geom.SignedArea(a, b, c)
}

type triangle struct {
	v       [3]int
	circle  geom.Circle
	removed bool
}

// mesh is the live triangle collection of one Triangulate call.
type mesh struct {
	// insertion order, followed by the three super-triangle vertices
	vertices []geom.Point
	// position of every vertex in the caller's slice, -1 for synthetic ones
	source []int
	// vertices[n:] are the super vertices
	n     int
	mid   geom.Point
	tris  []triangle
	edges *edgeSet
	eps   float64
	log   *zap.Logger
}

// Triangulate returns the Delaunay triangulation of points as index triples.
//
// Fewer than three points yield an empty result. Points that are all
// colinear, or a bounding box with zero extent, yield a *DegenerateError;
// two points equal within epsilon yield a *DuplicatePointError. On error no
// triangles are returned.
func Triangulate(points []geom.Point, opts ...Option) ([]Triangle, error) {
	o := newOptions(opts...)
	if o.err != nil {
		return nil, o.err
	}
	log := o.log

	n := len(points)
	if n == 0 {
		log.Debug("empty input")
		return []Triangle{}, nil
	}
	for i, p := range points {
		if !p.IsFinite() {
			return nil, &DegenerateError{
				Reason:  "non-finite coordinate",
				Points:  []geom.Point{p},
				Indices: []int{i},
			}
		}
	}

	var st superTriangle
	if n >= 3 {
		var err error
		if st, err = newSuperTriangle(points, o.scale, o.eps); err != nil {
			return nil, err
		}
	}

	mapper, err := newIndexMapper(points, o.eps)
	if err != nil {
		return nil, err
	}
	if n < 3 {
		log.Debug("fewer than three points, nothing to triangulate", zap.Int("points", n))
		return []Triangle{}, nil
	}
	if err := checkColinear(points, o.eps); err != nil {
		return nil, err
	}

	order := insertionOrder(n, o)
	m := newMesh(points, order, st, o)
	log.Info("super-triangle built",
		zap.Stringer("a", st[0]), zap.Stringer("b", st[1]), zap.Stringer("c", st[2]),
		zap.Bool("shuffled", o.shuffle))

	for id := 0; id < n; id++ {
		if err := m.insert(id); err != nil {
			return nil, err
		}
	}

	tris := m.filter()
	if len(tris) == 0 {
		return nil, &DegenerateError{Reason: "no triangle survived removal of the super-triangle"}
	}
	out, err := m.triples(tris, mapper)
	if err != nil {
		return nil, err
	}
	log.Info("triangulation finished", zap.Int("points", n), zap.Int("triangles", len(out)))
	return out, nil
}

// checkColinear reports a *DegenerateError when every point lies on the
// line through points[0] and the point farthest from it.
func checkColinear(points []geom.Point, eps float64) error {
	p0 := points[0]
	far := 0
	for i, p := range points {
		if geom.Distance(p0, p) > geom.Distance(p0, points[far]) {
			far = i
		}
	}
	for _, r := range points {
		if geom.Orientation(p0, points[far], r, eps) != geom.Colinear {
			return nil
		}
	}
	return &DegenerateError{
		Reason:  "all points are colinear",
		Points:  []geom.Point{p0, points[far]},
		Indices: []int{0, far},
	}
}

func insertionOrder(n int, o *options) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if o.shuffle {
		r := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
		r.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	return order
}

func newMesh(points []geom.Point, order []int, st superTriangle, o *options) *mesh {
	n := len(points)
	m := &mesh{
		vertices: make([]geom.Point, n, n+3),
		source:   make([]int, n, n+3),
		n:        n,
		mid:      st.center(),
		tris:     make([]triangle, 0, 2*n+1),
		edges:    newEdgeSet(),
		eps:      o.eps,
		log:      o.log,
	}
	for id, idx := range order {
		m.vertices[id] = points[idx]
		m.source[id] = idx
	}
	m.vertices = append(m.vertices, st[:]...)
	m.source = append(m.source, -1, -1, -1)

	m.tris = append(m.tris, triangle{v: [3]int{n, n + 1, n + 2}})
	return m
}

// insert adds vertex id to the mesh: scan, collect the cavity boundary,
// compact and rebuild.
func (m *mesh) insert(id int) error {
	p := m.vertices[id]
	m.edges.reset()

	cavity := 0
	for i := range m.tris {
		t := &m.tris[i]
		if !m.inCircle(t, p) {
			continue
		}
		t.removed = true
		cavity++
		m.edges.toggle(t.v[0], t.v[1])
		m.edges.toggle(t.v[1], t.v[2])
		m.edges.toggle(t.v[2], t.v[0])
	}
	if cavity == 0 {
		return m.degenerate("point lies in no circumcircle", id)
	}

	boundary := m.edges.boundary()
	m.compact()

	for _, e := range boundary {
		if err := m.add(e.from, e.to, id); err != nil {
			return err
		}
	}

	if ce := m.log.Check(zap.DebugLevel, "point inserted"); ce != nil {
		ce.Write(
			zap.Int("index", m.source[id]),
			zap.Stringer("point", p),
			zap.Int("cavity", cavity),
			zap.Int("boundary", len(boundary)),
			zap.Int("live", len(m.tris)),
		)
	}
	return nil
}

func (m *mesh) compact() {
	live := m.tris[:0]
	for _, t := range m.tris {
		if !t.removed {
			live = append(live, t)
		}
	}
	m.tris = live
}

// add creates the triangle a, b, c. The cavity lies left of a->b, so a valid
// triangle is counter-clockwise. Only real triangles carry a circumcircle;
// a flat triangle on a super vertex is accepted.
func (m *mesh) add(a, b, c int) error {
	finite := !m.isSuper(a) && !m.isSuper(b) && !m.isSuper(c)
	turn := m.orient(a, b, c)
	if turn == geom.Clockwise || (finite && turn != geom.CounterClockwise) {
		return m.degenerate("cavity is not star-shaped around the inserted point", a, b, c)
	}
	t := triangle{v: [3]int{a, b, c}}
	if finite {
		circle, ok := geom.Circumcircle(m.vertices[a], m.vertices[b], m.vertices[c], m.eps)
		if !ok {
			return m.degenerate("circumcenter of colinear points", a, b, c)
		}
		t.circle = circle
	}
	m.tris = append(m.tris, t)
	return nil
}

// filter drops every triangle that uses a super-triangle vertex.
func (m *mesh) filter() []triangle {
	out := m.tris[:0]
	for _, t := range m.tris {
		if !m.isSuper(t.v[0]) && !m.isSuper(t.v[1]) && !m.isSuper(t.v[2]) {
			out = append(out, t)
		}
	}
	m.log.Debug("super-triangle removed",
		zap.Int("kept", len(out)), zap.Int("dropped", len(m.tris)-len(out)))
	m.tris = out
	return out
}

// triples maps mesh triangles back to positions in the caller's slice.
func (m *mesh) triples(tris []triangle, mapper *indexMapper) ([]Triangle, error) {
	out := make([]Triangle, len(tris))
	for i, t := range tris {
		for j, v := range t.v {
			idx, ok := mapper.indexOf(m.vertices[v])
			if !ok {
				return nil, errors.Errorf("delaunay: vertex %s has no input index", m.vertices[v])
			}
			out[i][j] = idx
		}
	}
	return out, nil
}

func (m *mesh) degenerate(reason string, ids ...int) error {
	e := &DegenerateError{Reason: reason}
	for _, id := range ids {
		e.Points = append(e.Points, m.vertices[id])
		e.Indices = append(e.Indices, m.source[id])
	}
	return e
}
