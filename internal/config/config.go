// Package config holds the solver settings and their file, flag and map
// sources.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config controls a solver run.
type Config struct {
	// File is the YAML file the rest was loaded from, if any.
	File string `yaml:"-"`

	Input     string `yaml:"input"`
	Part1     int64  `yaml:"part1_drops"`
	Part2     int64  `yaml:"part2_drops"`
	Compact   bool   `yaml:"compact"`
	Dump      bool   `yaml:"dump"`
	Labels    bool   `yaml:"labels"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Input:     "input.txt",
		Part1:     2022,
		Part2:     1_000_000_000_000,
		Compact:   true,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	c.File = path
	return c, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.File, "config", c.File, "optional YAML config file; flags override it")
	fs.StringVar(&c.Input, "input", c.Input, "file holding the jet sequence")
	fs.Int64Var(&c.Part1, "part1", c.Part1, "drops simulated directly")
	fs.Int64Var(&c.Part2, "part2", c.Part2, "drops reached with cycle extrapolation")
	fs.BoolVar(&c.Compact, "compact", c.Compact, "discard sealed rows below the surface")
	fs.BoolVar(&c.Dump, "dump", c.Dump, "print the shaft to stderr when done")
	fs.BoolVar(&c.Labels, "labels", c.Labels, "prefix each answer with its name")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "panic, fatal, error, warn, info, debug or trace")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "text or json")
}

// Parse binds c to fs and parses args. When -config names a file it is
// loaded first and only the flags given explicitly override it.
func (c *Config) Parse(fs *flag.FlagSet, args []string) error {
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if c.File == "" {
		return c.Validate()
	}

	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

	loaded, err := Load(c.File)
	if err != nil {
		return err
	}
	*c = loaded
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return err
		}
	}
	return c.Validate()
}

// FromMap populates a Config from a string map keyed like the YAML file
// (input, part1, part2, compact, dump, labels, log_level, log_format).
// Unparsable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["input"]; ok && v != "" {
		c.Input = v
	}
	if v, ok := cfg["part1"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			c.Part1 = parsed
		}
	}
	if v, ok := cfg["part2"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			c.Part2 = parsed
		}
	}
	for key, dst := range map[string]*bool{"compact": &c.Compact, "dump": &c.Dump, "labels": &c.Labels} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseBool(v); err == nil {
				*dst = parsed
			}
		}
	}
	if v, ok := cfg["log_level"]; ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := cfg["log_format"]; ok && v != "" {
		c.LogFormat = v
	}
	return c
}

// Validate checks that the targets and logging settings make sense.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalid)
	}
	if c.Part1 <= 0 {
		return fmt.Errorf("%w: part1 must be positive, got %d", ErrInvalid, c.Part1)
	}
	if c.Part2 < c.Part1 {
		return fmt.Errorf("%w: part2 (%d) is below part1 (%d)", ErrInvalid, c.Part2, c.Part1)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.LogFormat)
	}
	return nil
}

// NewLogger builds the logger described by c, writing to w.
func (c Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	lg := logrus.New()
	lg.SetOutput(w)
	lg.SetLevel(level)
	switch c.LogFormat {
	case "json":
		lg.Formatter = &logrus.JSONFormatter{}
	default:
		lg.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	}
	return lg, nil
}
