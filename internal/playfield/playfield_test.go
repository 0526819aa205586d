package playfield

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockfall/internal/core"
	"rockfall/internal/invariant"
	"rockfall/internal/jets"
	"rockfall/internal/pieces"
)

// dropOne feeds dirs until the falling piece settles and returns the
// results of every move.
func dropOne(t *testing.T, p *Playfield, dirs ...jets.Direction) []MoveResult {
	t.Helper()
	var got []MoveResult
	for i := 0; ; i++ {
		require.Less(t, i, 64, "piece never settled")
		r := p.ProcessMove(dirs[i%len(dirs)])
		got = append(got, r)
		if r == Dropped {
			return got
		}
	}
}

func settledRows(p *Playfield) []uint8 {
	var rows []uint8
	for abs := 1; abs < p.FirstEmpty(); abs++ {
		mask, ok := p.RowAt(abs)
		if !ok {
			continue
		}
		rows = append(rows, mask)
	}
	return rows
}

func TestNewSpawnsAboveFloor(t *testing.T) {
	p := New()
	assert.Equal(t, 0, p.Height())
	assert.Equal(t, 1, p.FirstEmpty())
	assert.Equal(t, 4, p.PieceAt())
	assert.Equal(t, 1, p.CatalogIndex())
	floor, ok := p.RowAt(0)
	require.True(t, ok)
	assert.Equal(t, pieces.FullRow, floor)
	assert.GreaterOrEqual(t, p.Buffered(), 1+SpawnGap+pieces.MaxHeight+1)
}

func TestShapesSettleOnEmptyFloor(t *testing.T) {
	cases := []struct {
		name  string
		shape int
		dir   jets.Direction
		rows  []uint8
	}{
		{"bar right", 0, jets.Right, []uint8{0b0001111}},
		{"bar left", 0, jets.Left, []uint8{0b1111000}},
		{"plus right", 1, jets.Right, []uint8{0b0000010, 0b0000111, 0b0000010}},
		{"plus left", 1, jets.Left, []uint8{0b0100000, 0b1110000, 0b0100000}},
		{"corner right", 2, jets.Right, []uint8{0b0000111, 0b0000001, 0b0000001}},
		{"corner left", 2, jets.Left, []uint8{0b1110000, 0b0010000, 0b0010000}},
		{"column right", 3, jets.Right, []uint8{0b0000001, 0b0000001, 0b0000001, 0b0000001}},
		{"column left", 3, jets.Left, []uint8{0b1000000, 0b1000000, 0b1000000, 0b1000000}},
		{"square right", 4, jets.Right, []uint8{0b0000011, 0b0000011}},
		{"square left", 4, jets.Left, []uint8{0b1100000, 0b1100000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(WithCatalog(pieces.CatalogAt(tc.shape)))
			results := dropOne(t, p, tc.dir)

			// Three rows of free fall, then the floor stops it.
			assert.Equal(t, []MoveResult{Completed, Completed, Completed, Dropped}, results)
			assert.Equal(t, len(tc.rows), p.Height())
			assert.Equal(t, tc.rows, settledRows(p))
			assert.Equal(t, p.FirstEmpty()+SpawnGap, p.PieceAt())
			assert.Equal(t, (tc.shape+2)%pieces.Count, p.CatalogIndex())
		})
	}
}

func TestShiftIntoWallLeavesPiece(t *testing.T) {
	p := New()
	want := [][]uint8{{0b0111100}, {0b1111000}, {0b1111000}}
	for i, rows := range want {
		before := p.PieceAt()
		require.Equal(t, Completed, p.ProcessMove(jets.Left))
		assert.Equal(t, rows, p.Piece().Rows(), "move %d", i)
		assert.Equal(t, before-1, p.PieceAt())
	}
}

func TestShiftIntoStackIsReverted(t *testing.T) {
	p := New(WithCatalog(pieces.CatalogAt(3)))
	dropOne(t, p, jets.Left)
	require.Equal(t, []uint8{0b1000000, 0b1000000, 0b1000000, 0b1000000}, settledRows(p))
	require.Equal(t, 8, p.PieceAt())

	for _, d := range []jets.Direction{jets.Left, jets.Left, jets.Right, jets.Right, jets.Left} {
		require.Equal(t, Completed, p.ProcessMove(d))
	}
	require.Equal(t, 3, p.PieceAt())

	// Moving left again would overlap the column at row 3.
	require.Equal(t, Completed, p.ProcessMove(jets.Left))
	assert.Equal(t, []uint8{0b0110000, 0b0110000}, p.Piece().Rows())
	assert.Equal(t, 2, p.PieceAt())
}

func TestCanExistAtIsPure(t *testing.T) {
	p := New()
	seq := jets.MustParse(jets.Sample)
	c := jets.NewCursor(seq)
	for n := 0; n < 200; n++ {
		p.ProcessMove(c.Next())
	}
	var surface []byte
	surface = p.AppendSurface(surface)
	for h := p.Offset(); h <= p.PieceAt(); h++ {
		first := p.CanExistAt(h)
		for m := 0; m < 3; m++ {
			assert.Equal(t, first, p.CanExistAt(h), "height %d", h)
		}
	}
	assert.True(t, p.CanExistAt(p.PieceAt()))
	assert.Equal(t, surface, p.AppendSurface(nil))
}

func TestCompactionIsInvisible(t *testing.T) {
	compacting := New()
	reference := New(WithoutCompaction())
	seq := jets.MustParse(jets.Sample)
	a, b := jets.NewCursor(seq), jets.NewCursor(seq)

	for drops := 0; drops < 2022; {
		d := a.Next()
		require.Equal(t, d, b.Next())
		ra, rb := compacting.ProcessMove(d), reference.ProcessMove(d)
		require.Equal(t, rb, ra)
		require.Equal(t, reference.PieceAt(), compacting.PieceAt())
		if ra == Dropped {
			drops++
			require.Equal(t, reference.Height(), compacting.Height(), "after %d drops", drops)
		}
	}

	assert.Equal(t, 3068, compacting.Height())
	assert.Zero(t, reference.Offset())
	assert.Positive(t, compacting.Offset())
	assert.Less(t, compacting.Buffered(), reference.Buffered()/4)

	for abs := compacting.Offset(); abs < compacting.FirstEmpty(); abs++ {
		got, ok := compacting.RowAt(abs)
		require.True(t, ok)
		want, _ := reference.RowAt(abs)
		assert.Equal(t, want, got, "row %d", abs)
	}
	_, ok := compacting.RowAt(compacting.Offset() - 1)
	assert.False(t, ok)
}

func TestProbeOutsideBufferPanics(t *testing.T) {
	p := New()
	seq := jets.MustParse(jets.Sample)
	c := jets.NewCursor(seq)
	for p.Offset() == 0 {
		p.ProcessMove(c.Next())
	}

	below := func() { p.CanExistAt(p.Offset() - 1) }
	above := func() { p.CanExistAt(p.Offset() + p.Buffered()) }
	for _, probe := range []func(){below, above} {
		func() {
			defer func() {
				_, ok := recover().(*invariant.Violation)
				assert.True(t, ok)
			}()
			probe()
			t.Error("expected panic")
		}()
	}
}

func TestDump(t *testing.T) {
	p := New(WithCatalog(pieces.CatalogAt(0)))
	dropOne(t, p, jets.Right)

	var buf bytes.Buffer
	require.NoError(t, p.Dump(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, p.Buffered()+1)
	assert.Equal(t, "-------------", lines[0])
	assert.Contains(t, buf.String(), "       5 00001000 --- cur")
	assert.Contains(t, buf.String(), "       2 00000000 --- empty")
	assert.Contains(t, buf.String(), "       1 00001111\n")
	assert.Equal(t, "       0 01111111", lines[len(lines)-1])
}

func TestProject(t *testing.T) {
	p := New(WithCatalog(pieces.CatalogAt(0)))
	dropOne(t, p, jets.Right)

	grid := core.NewByteGrid(pieces.Width, p.Buffered())
	p.Project(grid)
	top := p.Offset() + p.Buffered() - 1

	assert.Equal(t, []uint8{3, 3, 3, 3, 3, 3, 3}, grid.Row(top))
	assert.Equal(t, []uint8{0, 0, 0, 1, 1, 1, 1}, grid.Row(top-1))
	assert.Equal(t, CellFalling, grid.At(3, top-5))
	assert.Equal(t, CellFalling, grid.At(2, top-6))
	assert.Equal(t, CellEmpty, grid.At(0, top-6))

	// A short window only shows the top of the buffer.
	small := core.NewByteGrid(pieces.Width, 2)
	p.Project(small)
	assert.Equal(t, make([]uint8, 2*pieces.Width), small.Cells())
}

func TestMoveResultString(t *testing.T) {
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "dropped", Dropped.String())
	assert.Equal(t, "unknown", MoveResult(9).String())
}
