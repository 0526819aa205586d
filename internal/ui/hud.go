//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"rockfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 8
	hudLineHeight = 16
)

// HUD renders live counters in a panel to the right of the simulation view.
type HUD struct {
	sim    core.Sim
	width  int
	panel  *ebiten.Image
	lines  []string
	footer []string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{
		sim:   sim,
		width: width,
		footer: []string{
			"space  pause",
			"n      one move",
			"d      next drop",
			"+/-    speed",
			"r      reset",
			"q      quit",
		},
	}
}

// Width is the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the text lines from the simulation.
func (h *HUD) Update(extra ...core.Stat) {
	if h == nil {
		return
	}
	h.lines = h.lines[:0]
	h.lines = append(h.lines, strings.ToUpper(h.sim.Name()))
	if provider, ok := h.sim.(core.StatsProvider); ok {
		for _, s := range provider.Stats() {
			h.lines = append(h.lines, fmt.Sprintf("%-10s %s", s.Label, s.Value))
		}
	}
	for _, s := range extra {
		h.lines = append(h.lines, fmt.Sprintf("%-10s %s", s.Label, s.Value))
	}
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := hudPadding + hudLineHeight
	for _, line := range h.lines {
		text.Draw(h.panel, line, face, hudPadding, y, color.White)
		y += hudLineHeight
	}
	y = height - hudPadding - hudLineHeight*(len(h.footer)-1)
	for _, line := range h.footer {
		text.Draw(h.panel, line, face, hudPadding, y, color.Gray{Y: 150})
		y += hudLineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
