// Package cycle drives a playfield through a jet sequence and answers how
// tall the stack is after a number of drops, skipping over whole periods
// once the simulation starts repeating itself.
package cycle

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"rockfall/internal/jets"
	"rockfall/internal/playfield"
)

// ErrTargetOrder is returned when the second target lies before the first.
var ErrTargetOrder = errors.New("cycle: part 2 target is below part 1 target")

// Info describes the first repeated state and the jump it allowed.
type Info struct {
	FirstDrops   int64
	FirstHeight  int64
	RepeatDrops  int64
	RepeatHeight int64
	// DropDelta pieces raise the stack by HeightDelta rows in every period.
	DropDelta   int64
	HeightDelta int64
	// Skipped is the number of whole periods jumped over.
	Skipped int64
	// States is the number of distinct states stored before the repeat.
	States int
	Digest uint64
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sends progress and cycle reports to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Simulator) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHistory records the height after every drop into h.
func WithHistory(h *History) Option {
	return func(s *Simulator) { s.history = h }
}

// WithPlayfield passes options to the underlying playfield.
func WithPlayfield(opts ...playfield.Option) Option {
	return func(s *Simulator) { s.fieldOpts = append(s.fieldOpts, opts...) }
}

// Simulator owns a playfield, the jet cursor and the drop counter.
type Simulator struct {
	field     *playfield.Playfield
	fieldOpts []playfield.Option
	jets      *jets.Cursor

	drops   int64
	pending int64

	seen    *seenStates
	cycle   *Info
	surface []byte

	history *History
	log     logrus.FieldLogger
}

// New prepares a simulator at drop zero.
func New(seq jets.Sequence, opts ...Option) (*Simulator, error) {
	if len(seq) == 0 {
		return nil, jets.ErrEmpty
	}
	s := &Simulator{
		jets: jets.NewCursor(seq),
		seen: newSeenStates(),
		log:  discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.field = playfield.New(s.fieldOpts...)
	return s, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// step applies one jet move and reports whether a piece settled.
func (s *Simulator) step() bool {
	if s.field.ProcessMove(s.jets.Next()) != playfield.Dropped {
		return false
	}
	s.drops++
	if s.history != nil {
		s.history.Record(s.drops, s.Height())
	}
	return true
}

// RunTo simulates every move until target pieces have settled and returns
// the stack height.
func (s *Simulator) RunTo(target int64) int64 {
	for s.drops < target {
		s.step()
	}
	return s.Height()
}

// Extrapolate simulates until target pieces have settled, jumping over whole
// periods once a settled state repeats. Only the first repeat is acted on;
// the leftover drops are simulated normally.
func (s *Simulator) Extrapolate(target int64) int64 {
	for s.drops < target {
		if s.step() && s.cycle == nil {
			s.observe(target)
		}
	}
	return s.Height()
}

func (s *Simulator) observe(target int64) {
	st := s.State()
	height := int64(s.field.Height())
	prev, ok := s.seen.lookup(st)
	if !ok {
		s.seen.insert(st, mark{height: height, drops: s.drops})
		return
	}

	info := &Info{
		FirstDrops:   prev.drops,
		FirstHeight:  prev.height,
		RepeatDrops:  s.drops,
		RepeatHeight: height,
		DropDelta:    s.drops - prev.drops,
		HeightDelta:  height - prev.height,
		States:       s.seen.Len(),
		Digest:       st.Digest(),
	}
	info.Skipped = (target - s.drops) / info.DropDelta
	s.drops += info.DropDelta * info.Skipped
	s.pending = info.HeightDelta * info.Skipped
	s.cycle = info
	if s.history != nil {
		s.history.Record(s.drops, s.Height())
	}
	// The table is only ever consulted until the first repeat.
	s.seen = nil

	s.log.WithFields(logrus.Fields{
		"first_drop":   info.FirstDrops,
		"repeat_drop":  info.RepeatDrops,
		"drop_delta":   info.DropDelta,
		"height_delta": info.HeightDelta,
		"skipped":      info.Skipped,
		"states":       info.States,
		"digest":       info.Digest,
	}).Info("cycle found")
}

// State captures the current settled state. The surface slice is reused by
// the next call.
func (s *Simulator) State() State {
	s.surface = s.field.AppendSurface(s.surface[:0])
	return State{
		Jet:     s.jets.Index(),
		Piece:   s.field.CatalogIndex(),
		Surface: s.surface,
	}
}

// Height is the stack height including any periods skipped over.
func (s *Simulator) Height() int64 { return int64(s.field.Height()) + s.pending }

// Drops is the number of pieces settled so far, including skipped periods.
func (s *Simulator) Drops() int64 { return s.drops }

// Cycle returns the repeat that was used for extrapolation, if any.
func (s *Simulator) Cycle() *Info { return s.cycle }

// Playfield exposes the live playfield for dumps and inspection.
func (s *Simulator) Playfield() *playfield.Playfield { return s.field }

// Result holds the answers to both questions.
type Result struct {
	Part1 int64
	Part2 int64
	Cycle *Info
	// Field is the playfield as the part 2 run left it.
	Field *playfield.Playfield
}

// Solve runs one simulation to part1 drops directly and then on to part2
// drops with extrapolation.
func Solve(seq jets.Sequence, part1, part2 int64, opts ...Option) (Result, error) {
	if part2 < part1 {
		return Result{}, ErrTargetOrder
	}
	s, err := New(seq, opts...)
	if err != nil {
		return Result{}, err
	}
	var r Result
	r.Part1 = s.RunTo(part1)
	s.log.WithFields(logrus.Fields{
		"drops":    s.Drops(),
		"height":   r.Part1,
		"offset":   s.field.Offset(),
		"buffered": s.field.Buffered(),
	}).Debug("part 1 done")

	r.Part2 = s.Extrapolate(part2)
	r.Cycle = s.Cycle()
	r.Field = s.field
	s.log.WithFields(logrus.Fields{
		"drops":  s.Drops(),
		"height": r.Part2,
	}).Debug("part 2 done")
	return r, nil
}

// HeightAfter simulates a fresh shaft for n drops, with or without
// extrapolation. The returned Info is nil unless a repeat was used.
func HeightAfter(seq jets.Sequence, n int64, extrapolate bool, opts ...Option) (int64, *Info, error) {
	s, err := New(seq, opts...)
	if err != nil {
		return 0, nil, err
	}
	if extrapolate {
		h := s.Extrapolate(n)
		return h, s.Cycle(), nil
	}
	return s.RunTo(n), nil, nil
}
