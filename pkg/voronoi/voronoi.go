// Package voronoi derives the Voronoi diagram of a point set from its
// Delaunay triangulation: every triangle contributes its circumcenter as a
// Voronoi vertex, every shared triangle edge becomes a Voronoi edge and every
// hull edge becomes a ray. Everything is clipped to a bounding box.
package voronoi

import (
	"github.com/0x0FACED/go-delaunay/pkg/delaunay"
	"github.com/0x0FACED/go-delaunay/pkg/geom"
	"github.com/pkg/errors"
)

type Diagram struct {
	Edges []*Edge
}

type halfEdge struct {
	tri      int
	from, to int
}

// FromTriangulation expects counter-clockwise triangles, as returned by
// delaunay.Triangulate.
func FromTriangulation(points []geom.Point, tris []delaunay.Triangle, bbox BoundingBox) (*Diagram, error) {
	centers := make([]geom.Point, len(tris))
	for i, tri := range tris {
		for _, v := range tri {
			if v < 0 || v >= len(points) {
				return nil, errors.Errorf("voronoi: triangle %d references point %d of %d", i, v, len(points))
			}
		}
		a, b, c := tri.Vertices(points)
		circle, ok := geom.Circumcircle(a, b, c, geom.Epsilon)
		if !ok {
			return nil, errors.Errorf("voronoi: triangle %d %v is degenerate", i, tri)
		}
		centers[i] = circle.Center
	}

	type key struct{ u, v int }
	open := make(map[key]halfEdge)
	// first-seen order, for deterministic output
	var order []key
	d := &Diagram{}

	for i, tri := range tris {
		for j := range tri {
			from, to := tri[j], tri[(j+1)%3]
			k := key{min(from, to), max(from, to)}
			if twin, ok := open[k]; ok {
				delete(open, k)
				d.add(&Edge{Sites: [2]int{from, to}, Va: centers[twin.tri], Vb: centers[i]}, bbox)
				continue
			}
			open[k] = halfEdge{tri: i, from: from, to: to}
			order = append(order, k)
		}
	}

	// what is left are hull edges; their Voronoi edge leaves the triangle's
	// circumcenter along the outward normal
	for _, k := range order {
		h, ok := open[k]
		if !ok {
			continue
		}
		dir := points[h.to].Sub(points[h.from])
		normal := geom.Point{X: dir.Y, Y: -dir.X}
		length := geom.Distance(normal, geom.Point{})
		start := centers[h.tri]
		far := start.Add(normal.Scale((bbox.diagonal() + geom.Distance(start, bbox.center())) / length))
		d.add(&Edge{Sites: [2]int{h.from, h.to}, Va: start, Vb: far}, bbox)
	}
	return d, nil
}

// add keeps the edge when some of it is inside bbox and it is not reduced
// to a point.
func (d *Diagram) add(edge *Edge, bbox BoundingBox) {
	if !clipEdge(edge, bbox) {
		return
	}
	if equalWithEpsilon(edge.Va.X, edge.Vb.X) && equalWithEpsilon(edge.Va.Y, edge.Vb.Y) {
		return
	}
	d.Edges = append(d.Edges, edge)
}
