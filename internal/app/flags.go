package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim        string
	Input      string
	Rows       int
	Scale      int
	Rate       int
	PanelWidth int
	Paused     bool
	Compact    bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "rockfall", Rows: 48, Scale: 14, Rate: 30, PanelWidth: 180, Compact: true}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.Input, "input", c.Input, "jet file; empty uses the built-in sample")
	fs.IntVar(&c.Rows, "rows", c.Rows, "visible shaft rows")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.Rate, "rate", c.Rate, "jet moves per second")
	fs.IntVar(&c.PanelWidth, "panel", c.PanelWidth, "stats panel width in pixels")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start paused")
	fs.BoolVar(&c.Compact, "compact", c.Compact, "discard sealed rows below the surface")
}

// SimConfig converts the flags into the registry's key/value form.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"input":   c.Input,
		"rows":    strconv.Itoa(c.Rows),
		"compact": strconv.FormatBool(c.Compact),
	}
}
