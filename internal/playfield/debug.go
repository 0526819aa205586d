package playfield

import (
	"fmt"
	"io"

	"rockfall/internal/core"
	"rockfall/internal/pieces"
)

// Cell values written by Project.
const (
	CellEmpty uint8 = iota
	CellSettled
	CellFalling
	CellFloor
)

// Dump writes the buffered rows top-down, one line per absolute row, with
// the falling piece overlaid. It is meant for eyeballing, not parsing.
func (p *Playfield) Dump(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "-------------"); err != nil {
		return err
	}
	for rel := len(p.rows) - 1; rel >= 0; rel-- {
		abs := rel + p.offset
		mask := p.rows[rel] | p.fallingMask(abs)
		var err error
		switch abs {
		case p.pieceAt:
			_, err = fmt.Fprintf(w, "%8d %08b --- cur\n", abs, mask)
		case p.firstEmpty:
			_, err = fmt.Fprintf(w, "%8d %08b --- empty\n", abs, mask)
		default:
			_, err = fmt.Fprintf(w, "%8d %08b\n", abs, mask)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Playfield) fallingMask(abs int) uint8 {
	if i := abs - p.pieceAt; i >= 0 && i < p.piece.Height() {
		return p.piece.Row(i)
	}
	return 0
}

// Project paints the top grid.H rows of the buffer into grid, highest row
// first. Columns beyond the shaft width are left empty.
func (p *Playfield) Project(grid *core.ByteGrid) {
	grid.Clear()
	top := p.offset + len(p.rows) - 1
	for y := 0; y < grid.H; y++ {
		abs := top - y
		if abs < p.offset {
			break
		}
		settled, _ := p.RowAt(abs)
		falling := p.fallingMask(abs)
		for x := 0; x < pieces.Width; x++ {
			bit := uint8(1) << (pieces.Width - 1 - x)
			switch {
			case abs == 0:
				grid.Set(x, y, CellFloor)
			case falling&bit != 0:
				grid.Set(x, y, CellFalling)
			case settled&bit != 0:
				grid.Set(x, y, CellSettled)
			}
		}
	}
}
