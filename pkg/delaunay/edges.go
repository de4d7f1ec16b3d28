package delaunay

// edgeKey is an undirected edge between two mesh vertices, u < v. Mesh
// vertices are epsilon-distinct, so id equality is point equality.
type edgeKey struct {
	u, v int
}

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// edge is a boundary edge directed so that the cavity lies on its left.
type edge struct {
	from, to int
}

type edgeState struct {
	present bool
	dir     edge
}

// edgeSet accumulates edges with symmetric-difference semantics: adding an
// edge that is present removes it. After feeding it every edge of every
// cavity triangle only the cavity boundary is left.
type edgeSet struct {
	state map[edgeKey]edgeState
	// first-seen order, for deterministic output
	order []edgeKey
}

func newEdgeSet() *edgeSet {
	return &edgeSet{state: make(map[edgeKey]edgeState)}
}

// toggle feeds the directed edge from->to taken from a counter-clockwise
// triangle.
func (s *edgeSet) toggle(from, to int) {
	k := makeEdgeKey(from, to)
	st, seen := s.state[k]
	if !seen {
		s.order = append(s.order, k)
	}
	if st.present {
		s.state[k] = edgeState{}
		return
	}
	s.state[k] = edgeState{present: true, dir: edge{from, to}}
}

func (s *edgeSet) boundary() []edge {
	out := make([]edge, 0, len(s.order))
	for _, k := range s.order {
		if st := s.state[k]; st.present {
			out = append(out, st.dir)
		}
	}
	return out
}

func (s *edgeSet) reset() {
	clear(s.state)
	s.order = s.order[:0]
}
