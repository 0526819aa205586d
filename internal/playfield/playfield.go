// Package playfield simulates rocks falling into a fixed-width shaft.
//
// Settled cells are kept as one bitmask per row in a growable buffer. Rows
// below a fully covered seam can never be reached again, so they are cut
// from the front of the buffer and counted in offset instead. Absolute
// heights therefore keep growing while the buffer stays a few dozen rows tall.
package playfield

import (
	"rockfall/internal/invariant"
	"rockfall/internal/jets"
	"rockfall/internal/pieces"
)

const (
	// SpawnGap is the number of empty rows between the stack and a new piece.
	SpawnGap = 3
	// seamMargin is how many rows below a sealed seam survive compaction.
	seamMargin = 2
)

// MoveResult is the outcome of one jet move.
type MoveResult int

const (
	// Completed means the piece moved down one row and is still falling.
	Completed MoveResult = iota
	// Dropped means the piece came to rest and the next piece was spawned.
	Dropped
)

func (r MoveResult) String() string {
	switch r {
	case Completed:
		return "completed"
	case Dropped:
		return "dropped"
	}
	return "unknown"
}

// Option configures a Playfield.
type Option func(*Playfield)

// WithoutCompaction keeps every row ever placed. The result is slower and
// unbounded but otherwise behaves identically.
func WithoutCompaction() Option {
	return func(p *Playfield) { p.compact = false }
}

// WithCatalog starts drawing shapes from c instead of the first shape.
func WithCatalog(c pieces.Catalog) Option {
	return func(p *Playfield) { p.catalog = c }
}

// Playfield is the shaft, its settled stack and the piece currently falling.
type Playfield struct {
	// rows[i] is absolute row offset+i. Row 0 is the synthetic floor.
	rows   []uint8
	offset int
	// firstEmpty is the lowest absolute row above every settled cell.
	firstEmpty int

	catalog pieces.Catalog
	piece   pieces.Piece
	pieceAt int

	compact bool
}

// New returns a shaft with only the floor and the first piece spawned.
func New(opts ...Option) *Playfield {
	p := &Playfield{
		rows:       []uint8{pieces.FullRow},
		firstEmpty: 1,
		compact:    true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.extend()
	p.spawn()
	invariant.True(p.CanExistAt(p.pieceAt), "first piece does not fit at height %d", p.pieceAt)
	return p
}

// CanExistAt reports whether the falling piece fits with its bottom row at
// the absolute height. It does not change any state.
func (p *Playfield) CanExistAt(height int) bool {
	invariant.True(height >= p.offset, "probe at height %d below offset %d", height, p.offset)
	base := height - p.offset
	invariant.True(base+p.piece.Height() < len(p.rows),
		"probe at height %d needs more than the %d buffered rows", height, len(p.rows))
	for i := 0; i < p.piece.Height(); i++ {
		if p.rows[base+i]&p.piece.Row(i) != 0 {
			return false
		}
	}
	return true
}

// ProcessMove pushes the falling piece once in dir and then lets it fall one
// row. A piece that cannot fall is fused into the stack and replaced.
func (p *Playfield) ProcessMove(dir jets.Direction) MoveResult {
	if shifted, ok := p.piece.Shift(dir); ok {
		prev := p.piece
		p.piece = shifted
		if !p.CanExistAt(p.pieceAt) {
			p.piece = prev
		}
	}
	if p.CanExistAt(p.pieceAt - 1) {
		p.pieceAt--
		return Completed
	}
	p.settle()
	return Dropped
}

func (p *Playfield) settle() {
	height := p.pieceAt
	base := height - p.offset
	for i := 0; i < p.piece.Height(); i++ {
		p.rows[base+i] |= p.piece.Row(i)
	}
	p.firstEmpty = max(p.firstEmpty, height+p.piece.Height())
	if p.compact {
		p.compactFrom(height)
	}
	p.extend()
	p.spawn()
}

// compactFrom looks for the lowest seam at or above height where two
// adjacent rows together cover every column. No cell can fall through such a
// seam, so everything more than seamMargin rows below it is dropped.
func (p *Playfield) compactFrom(height int) {
	for i := height; i < p.firstEmpty-1; i++ {
		rel := i - p.offset
		if rel < seamMargin {
			continue
		}
		if p.rows[rel]|p.rows[rel+1] != pieces.FullRow {
			continue
		}
		cut := rel - seamMargin
		if cut > 0 {
			n := copy(p.rows, p.rows[cut:])
			p.rows = p.rows[:n]
			p.offset += cut
		}
		return
	}
}

// extend pads the buffer so a piece spawned above firstEmpty can be probed.
func (p *Playfield) extend() {
	need := p.firstEmpty + SpawnGap + pieces.MaxHeight + 1 - p.offset
	if missing := need - len(p.rows); missing > 0 {
		p.rows = append(p.rows, make([]uint8, missing)...)
	}
}

func (p *Playfield) spawn() {
	p.piece = p.catalog.Next()
	p.pieceAt = p.firstEmpty + SpawnGap
}

// Height is the height of the settled stack, not counting the floor.
func (p *Playfield) Height() int { return p.firstEmpty - 1 }

// FirstEmpty is the lowest absolute row with no settled cell above the stack.
func (p *Playfield) FirstEmpty() int { return p.firstEmpty }

// Offset is the number of rows compacted away from the bottom.
func (p *Playfield) Offset() int { return p.offset }

// Buffered is the number of rows currently held in memory.
func (p *Playfield) Buffered() int { return len(p.rows) }

// Piece returns the falling piece.
func (p *Playfield) Piece() pieces.Piece { return p.piece }

// PieceAt is the absolute height of the falling piece's bottom row.
func (p *Playfield) PieceAt() int { return p.pieceAt }

// CatalogIndex is the catalog position of the piece that spawns next.
func (p *Playfield) CatalogIndex() int { return p.catalog.Index() }

// RowAt returns the settled mask of an absolute row. Compacted rows report
// ok=false; rows above the buffer are empty.
func (p *Playfield) RowAt(abs int) (uint8, bool) {
	if abs < p.offset {
		return 0, false
	}
	if rel := abs - p.offset; rel < len(p.rows) {
		return p.rows[rel], true
	}
	return 0, true
}

// AppendSurface appends every settled row from the compaction offset up to
// and including the top of the stack. Together with the jet and catalog
// positions this determines all future moves.
func (p *Playfield) AppendSurface(dst []byte) []byte {
	return append(dst, p.rows[:p.firstEmpty-p.offset]...)
}
