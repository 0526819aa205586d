//go:build !ebiten

package ui

import "rockfall/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int) *HUD { return nil }

// Width is always zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(...core.Stat) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
