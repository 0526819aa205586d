package cycle

import "github.com/kamstrup/intmap"

// History records the stack height after each drop count it is told about.
type History struct {
	heights *intmap.Map[int64, int64]
	last    int64
}

// NewHistory allocates a history sized for roughly capacity drops.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 64
	}
	return &History{heights: intmap.New[int64, int64](capacity)}
}

// Record stores the height reached after drops pieces.
func (h *History) Record(drops, height int64) {
	h.heights.Put(drops, height)
	if drops > h.last {
		h.last = drops
	}
}

// At returns the height recorded for drops.
func (h *History) At(drops int64) (int64, bool) {
	return h.heights.Get(drops)
}

// Len is the number of recorded drop counts.
func (h *History) Len() int { return h.heights.Len() }

// Last is the largest recorded drop count.
func (h *History) Last() int64 { return h.last }
