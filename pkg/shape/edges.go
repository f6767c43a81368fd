package shape

// EdgeSet collects undirected wireframe segments. A pair is stored under its
// smaller endpoint so (a,b) and (b,a) name the same segment. Segments keep
// the order of their first insertion.
type EdgeSet struct {
	seen    []map[uint32]struct{}
	indices []uint32
}

// NewEdgeSet returns an EdgeSet sized for n vertices. Larger indices are
// still accepted; the table grows on demand.
func NewEdgeSet(n int) *EdgeSet {
	return &EdgeSet{seen: make([]map[uint32]struct{}, n)}
}

// Add records the segment (a,b) and reports whether it was new.
// Self-loops are never recorded.
func (s *EdgeSet) Add(a, b uint32) bool {
	if a == b {
		return false
	}
	if a > b {
		a, b = b, a
	}
	if int(a) >= len(s.seen) {
		grown := make([]map[uint32]struct{}, int(a)+1)
		copy(grown, s.seen)
		s.seen = grown
	}
	bucket := s.seen[a]
	if bucket == nil {
		bucket = make(map[uint32]struct{}, 4)
		s.seen[a] = bucket
	}
	if _, ok := bucket[b]; ok {
		return false
	}
	bucket[b] = struct{}{}
	s.indices = append(s.indices, a, b)
	return true
}

// Has reports whether the segment (a,b) was recorded in either order.
func (s *EdgeSet) Has(a, b uint32) bool {
	if a > b {
		a, b = b, a
	}
	if int(a) >= len(s.seen) || s.seen[a] == nil {
		return false
	}
	_, ok := s.seen[a][b]
	return ok
}

// Len returns the number of distinct segments.
func (s *EdgeSet) Len() int {
	return len(s.indices) / 2
}

// Indices returns the flat pair list, smaller endpoint first.
func (s *EdgeSet) Indices() []uint32 {
	out := make([]uint32, len(s.indices))
	copy(out, s.indices)
	return out
}
