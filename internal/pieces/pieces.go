// Package pieces defines the five rock shapes and the order they fall in.
//
// A shape is a stack of row masks listed from its bottom row upwards. Bit
// Width-1 of a mask is the leftmost column of the shaft and bit 0 the
// rightmost, so the masks read left to right when printed in binary.
package pieces

import (
	"rockfall/internal/invariant"
	"rockfall/internal/jets"
)

const (
	// Width is the number of columns in the shaft.
	Width = 7
	// MaxHeight is the row count of the tallest shape.
	MaxHeight = 4
	// FullRow has every column of the shaft set.
	FullRow uint8 = 1<<Width - 1

	leftWall  uint8 = 1 << (Width - 1)
	rightWall uint8 = 1
)

// Piece is a shape at a horizontal position. The zero value is an empty piece.
type Piece struct {
	rows   [MaxHeight]uint8
	height int
}

func newPiece(rows ...uint8) Piece {
	var p Piece
	p.height = copy(p.rows[:], rows)
	return p
}

// Height is the number of rows the piece occupies.
func (p Piece) Height() int { return p.height }

// Row returns the mask of row i, counted from the bottom of the piece.
func (p Piece) Row(i int) uint8 { return p.rows[i] }

// Rows returns a copy of the row masks, bottom first.
func (p Piece) Rows() []uint8 {
	return append([]uint8(nil), p.rows[:p.height]...)
}

// Shift returns the piece moved one column in dir. It reports false and
// returns p unchanged if any cell would leave the shaft.
func (p Piece) Shift(dir jets.Direction) (Piece, bool) {
	switch dir {
	case jets.Left:
		for i := 0; i < p.height; i++ {
			if p.rows[i]&leftWall != 0 {
				return p, false
			}
		}
		for i := 0; i < p.height; i++ {
			p.rows[i] <<= 1
		}
	case jets.Right:
		for i := 0; i < p.height; i++ {
			if p.rows[i]&rightWall != 0 {
				return p, false
			}
		}
		for i := 0; i < p.height; i++ {
			p.rows[i] >>= 1
		}
	default:
		invariant.Unreachable("unknown jet direction %d", int8(dir))
	}
	return p, true
}

var shapes = [...]Piece{
	newPiece(0b0011110),
	newPiece(0b0001000, 0b0011100, 0b0001000),
	newPiece(0b0011100, 0b0000100, 0b0000100),
	newPiece(0b0010000, 0b0010000, 0b0010000, 0b0010000),
	newPiece(0b0011000, 0b0011000),
}

// Count is the number of shapes in the catalog.
const Count = len(shapes)

// Shapes returns the catalog shapes at their spawn positions, in drop order.
func Shapes() []Piece {
	return append([]Piece(nil), shapes[:]...)
}

// Catalog hands out shapes in their fixed cyclic order.
type Catalog struct {
	idx int
}

// CatalogAt returns a catalog whose next shape is shape i (mod Count).
func CatalogAt(i int) Catalog {
	return Catalog{idx: ((i % Count) + Count) % Count}
}

// Next returns the current shape and advances to the following one.
func (c *Catalog) Next() Piece {
	p := shapes[c.idx]
	c.idx = (c.idx + 1) % Count
	return p
}

// Index is the position of the shape Next will return.
func (c Catalog) Index() int { return c.idx }
