// Command rockfall prints the stack height after the part 1 and part 2 drop
// targets for the jet sequence in -input.
package main

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"rockfall/internal/config"
	"rockfall/internal/cycle"
	"rockfall/internal/jets"
	"rockfall/internal/playfield"
	"rockfall/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logrus.WithError(err).Fatal("rockfall failed")
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet("rockfall", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := cfg.Parse(fs, args); err != nil {
		return err
	}
	log, err := cfg.NewLogger(stderr)
	if err != nil {
		return err
	}

	seq, err := jets.Load(cfg.Input)
	if err != nil {
		return err
	}

	opts := []cycle.Option{cycle.WithLogger(log)}
	if !cfg.Compact {
		opts = append(opts, cycle.WithPlayfield(playfield.WithoutCompaction()))
	}

	start := time.Now()
	res, err := cycle.Solve(seq, cfg.Part1, cfg.Part2, opts...)
	if err != nil {
		return err
	}
	fields := logrus.Fields{
		"jets":     len(seq),
		"offset":   res.Field.Offset(),
		"buffered": res.Field.Buffered(),
		"elapsed":  time.Since(start),
	}
	if c := res.Cycle; c != nil {
		fields["period"] = c.DropDelta
		fields["growth"] = c.HeightDelta
	}
	log.WithFields(fields).Info("simulation finished")

	if cfg.Dump {
		if err := res.Field.Dump(stderr); err != nil {
			return err
		}
	}

	rep := report.New()
	rep.Set("part1", res.Part1)
	rep.Set("part2", res.Part2)
	if cfg.Labels {
		return rep.WriteLines(stdout)
	}
	return rep.WriteValues(stdout)
}
