package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{
		{R: 1, G: 2, B: 3, A: 255},
		{R: 10, G: 20, B: 30, A: 255},
	}
	buf := make([]byte, 3*4)
	fillPaletteRGBA(buf, []uint8{0, 1, 9}, palette)
	assert.Equal(t, []byte{1, 2, 3, 255, 10, 20, 30, 255, 10, 20, 30, 255}, buf)

	fillPaletteRGBA(buf, []uint8{0, 1, 9}, nil)
	assert.Equal(t, make([]byte, 12), buf)
}

func TestBinaryPalette(t *testing.T) {
	p := binaryPalette(color.White, color.Black)
	assert.Equal(t, []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}, p)
}
