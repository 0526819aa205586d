package cycle

import (
	"github.com/kamstrup/intmap"
	"github.com/zeebo/xxh3"
)

// State is what the simulator looks like right after a piece settles: the
// next jet, the next shape and every settled row above the compaction
// offset. Two equal states evolve identically from then on.
type State struct {
	Jet     int
	Piece   int
	Surface []byte
}

// Digest is a short fingerprint of the surface for log lines. Matching
// always compares the full surface.
func (s State) Digest() uint64 { return xxh3.Hash(s.Surface) }

func (s State) bucket() uint64 { return uint64(s.Jet)<<8 | uint64(s.Piece) }

// mark is the stack height and drop count seen with a state.
type mark struct {
	height int64
	drops  int64
}

// seenStates maps states to the first mark observed for them. States are
// grouped by (jet, piece) in an intmap and compared by exact surface bytes
// within a group.
type seenStates struct {
	buckets *intmap.Map[uint64, map[string]mark]
	size    int
}

func newSeenStates() *seenStates {
	return &seenStates{buckets: intmap.New[uint64, map[string]mark](1024)}
}

func (s *seenStates) lookup(st State) (mark, bool) {
	group, ok := s.buckets.Get(st.bucket())
	if !ok {
		return mark{}, false
	}
	m, ok := group[string(st.Surface)]
	return m, ok
}

func (s *seenStates) insert(st State, m mark) {
	key := st.bucket()
	group, ok := s.buckets.Get(key)
	if !ok {
		group = make(map[string]mark)
		s.buckets.Put(key, group)
	}
	if _, dup := group[string(st.Surface)]; dup {
		return
	}
	group[string(st.Surface)] = m
	s.size++
}

func (s *seenStates) Len() int { return s.size }
