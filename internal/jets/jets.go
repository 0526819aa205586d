// Package jets parses the cyclic sequence of horizontal pushes applied to
// falling pieces.
package jets

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// Sample is the 40-symbol reference sequence used throughout the tests.
const Sample = ">>><<><>><<<>><>>><<<>>><<<><<<>><>><<>>"

var (
	// ErrEmpty is returned when the input holds no jet symbols.
	ErrEmpty = errors.New("jets: empty sequence")
	// ErrInvalidSymbol is returned for any byte other than '<' or '>'.
	ErrInvalidSymbol = errors.New("jets: invalid symbol")
)

// Direction is a single horizontal push.
type Direction int8

const (
	// Left pushes a piece one column towards column 0.
	Left Direction = -1
	// Right pushes a piece one column towards the last column.
	Right Direction = 1
)

// FromSymbol maps '<' and '>' to a Direction.
func FromSymbol(b byte) (Direction, bool) {
	switch b {
	case '<':
		return Left, true
	case '>':
		return Right, true
	}
	return 0, false
}

// Symbol returns the input byte for d.
func (d Direction) Symbol() byte {
	switch d {
	case Left:
		return '<'
	case Right:
		return '>'
	}
	return '?'
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int8(d))
}

// Sequence is an ordered, non-empty list of pushes that repeats forever.
type Sequence []Direction

// Parse reads the first line of data. Surrounding whitespace is ignored; any
// other byte that is not a jet symbol fails the whole parse.
func Parse(data []byte) (Sequence, error) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	seq := make(Sequence, len(data))
	for i, b := range data {
		d, ok := FromSymbol(b)
		if !ok {
			return nil, fmt.Errorf("%w %q at position %d", ErrInvalidSymbol, b, i)
		}
		seq[i] = d
	}
	return seq, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(s string) Sequence {
	seq, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return seq
}

// Load reads and parses the jet file at path.
func Load(path string) (Sequence, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	seq, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seq, nil
}

// Cursor walks a Sequence cyclically.
type Cursor struct {
	seq Sequence
	idx int
}

// NewCursor positions a cursor on the first symbol of seq.
func NewCursor(seq Sequence) *Cursor {
	return &Cursor{seq: seq}
}

// Next returns the current push and advances, wrapping after the last one.
func (c *Cursor) Next() Direction {
	d := c.seq[c.idx]
	c.idx++
	if c.idx == len(c.seq) {
		c.idx = 0
	}
	return d
}

// Index is the position of the push Next will return.
func (c *Cursor) Index() int { return c.idx }

// Len is the period of the underlying sequence.
func (c *Cursor) Len() int { return len(c.seq) }

// Reset rewinds the cursor to the first symbol.
func (c *Cursor) Reset() { c.idx = 0 }
