package render

import (
	"image/color"

	"deep-miner/internal/world"
)

// Palette indices beyond the tile types.
const (
	FogIndex = uint8(world.Gas) + 1 + iota
	SkyIndex
	paletteSize
)

var (
	fogColor = color.RGBA{R: 6, G: 5, B: 8, A: 255}
	skyColor = color.RGBA{R: 120, G: 170, B: 220, A: 255}
)

// Palette maps every raster value to a colour: tile types first, then fog
// and sky.
func Palette() []color.RGBA {
	p := make([]color.RGBA, paletteSize)
	for t := world.Empty; t <= world.Gas; t++ {
		p[t] = t.Props().Color
	}
	p[FogIndex] = fogColor
	p[SkyIndex] = skyColor
	return p
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
