// Package rockfall exposes the falling-rock shaft as a core.Sim so the
// viewer can animate it one jet move per step.
package rockfall

import (
	"image/color"
	"strconv"

	"rockfall/internal/config"
	"rockfall/internal/core"
	"rockfall/internal/jets"
	"rockfall/internal/pieces"
	"rockfall/internal/playfield"
)

// Config holds parameters for the animated shaft.
type Config struct {
	// Rows is how many rows of the shaft are visible.
	Rows    int
	Compact bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Rows: 48, Compact: true}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Compact = config.FromMap(cfg).Compact
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	return c
}

// Rockfall drives a playfield with a jet sequence.
type Rockfall struct {
	cfg    Config
	seq    jets.Sequence
	cursor *jets.Cursor
	field  *playfield.Playfield
	grid   *core.ByteGrid

	moves int64
	drops int64
}

// New creates a shaft driven by seq.
func New(seq jets.Sequence, cfg Config) *Rockfall {
	if cfg.Rows <= 0 {
		cfg.Rows = DefaultConfig().Rows
	}
	r := &Rockfall{
		cfg:  cfg,
		seq:  seq,
		grid: core.NewByteGrid(pieces.Width, cfg.Rows),
	}
	r.Reset()
	return r
}

// Name returns the simulation identifier.
func (r *Rockfall) Name() string { return "rockfall" }

// Size returns the visible window dimensions.
func (r *Rockfall) Size() core.Size { return core.Size{W: r.grid.W, H: r.grid.H} }

// Reset empties the shaft and rewinds the jets.
func (r *Rockfall) Reset() {
	var opts []playfield.Option
	if !r.cfg.Compact {
		opts = append(opts, playfield.WithoutCompaction())
	}
	r.field = playfield.New(opts...)
	if r.cursor == nil {
		r.cursor = jets.NewCursor(r.seq)
	} else {
		r.cursor.Reset()
	}
	r.moves, r.drops = 0, 0
}

// Step applies a single jet move.
func (r *Rockfall) Step() {
	r.moves++
	if r.field.ProcessMove(r.cursor.Next()) == playfield.Dropped {
		r.drops++
	}
}

// StepToDrop moves until the falling piece settles.
func (r *Rockfall) StepToDrop() {
	for drops := r.drops; r.drops == drops; {
		r.Step()
	}
}

// Cells projects the top of the shaft into the render buffer.
func (r *Rockfall) Cells() []uint8 {
	r.field.Project(r.grid)
	return r.grid.Cells()
}

// Drops is the number of settled pieces.
func (r *Rockfall) Drops() int64 { return r.drops }

// Playfield exposes the underlying shaft.
func (r *Rockfall) Playfield() *playfield.Playfield { return r.field }

// Stats reports live counters for the HUD.
func (r *Rockfall) Stats() []core.Stat {
	itoa := func(v int) string { return strconv.Itoa(v) }
	return []core.Stat{
		{Label: "moves", Value: strconv.FormatInt(r.moves, 10)},
		{Label: "drops", Value: strconv.FormatInt(r.drops, 10)},
		{Label: "height", Value: itoa(r.field.Height())},
		{Label: "offset", Value: itoa(r.field.Offset())},
		{Label: "buffered", Value: itoa(r.field.Buffered())},
		{Label: "piece at", Value: itoa(r.field.PieceAt())},
		{Label: "jet", Value: itoa(r.cursor.Index()) + "/" + itoa(r.cursor.Len())},
		{Label: "next jet", Value: string(r.seq[r.cursor.Index()].Symbol())},
		{Label: "next shape", Value: itoa(r.field.CatalogIndex())},
	}
}

var palette = []color.RGBA{
	playfield.CellEmpty:   {R: 12, G: 12, B: 16, A: 255},
	playfield.CellSettled: {R: 150, G: 140, B: 130, A: 255},
	playfield.CellFalling: {R: 240, G: 170, B: 60, A: 255},
	playfield.CellFloor:   {R: 70, G: 60, B: 90, A: 255},
}

// Palette maps cell values to colours.
func (r *Rockfall) Palette() []color.RGBA { return palette }

func init() {
	core.Register("rockfall", func(cfg map[string]string) (core.Sim, error) {
		seq := jets.MustParse(jets.Sample)
		if path, ok := cfg["input"]; ok && path != "" {
			loaded, err := jets.Load(path)
			if err != nil {
				return nil, err
			}
			seq = loaded
		}
		return New(seq, FromMap(cfg)), nil
	})
}
