package app

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockfall/internal/core"
	_ "rockfall/internal/sims/rockfall"
)

func TestConfigBindAndSimConfig(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-rows", "30", "-compact=false", "-rate", "5"}))

	assert.Equal(t, 5, cfg.Rate)
	assert.Equal(t, map[string]string{"input": "", "rows": "30", "compact": "false"}, cfg.SimConfig())

	sim, err := core.New(cfg.Sim, cfg.SimConfig())
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 7, H: 30}, sim.Size())
}
