// Package tui is a terminal frontend drawing the world one character per
// tile.
package tui

import (
	"image/color"
	"time"

	"deep-miner/internal/kinematics"
	"deep-miner/internal/render"
	"deep-miner/internal/world"
)

// Glyph is how one raster value is drawn in a terminal cell.
type Glyph struct {
	Rune rune
	FG   color.RGBA
	BG   color.RGBA
}

var runes = map[uint8]rune{
	uint8(world.Empty):    ' ',
	uint8(world.Dirt):     '░',
	uint8(world.Clay):     '▒',
	uint8(world.Stone):    '▓',
	uint8(world.Iron):     '*',
	uint8(world.Copper):   '*',
	uint8(world.Silver):   '*',
	uint8(world.Gold):     '$',
	uint8(world.Bedrock):  '█',
	uint8(world.Border):   '#',
	uint8(world.Elevator): 'H',
	uint8(world.Water):    '~',
	uint8(world.Gas):      ':',
	render.FogIndex:       ' ',
	render.SkyIndex:       ' ',
}

// GlyphFor maps a raster value to its glyph. Ores are drawn in their own
// colour on a dark background; everything else is a solid block of colour.
func GlyphFor(v uint8) Glyph {
	palette := render.Palette()
	if int(v) >= len(palette) {
		v = render.FogIndex
	}
	c := palette[v]
	dark := color.RGBA{R: 20, G: 18, B: 16, A: 255}
	r, ok := runes[v]
	if !ok {
		r = '?'
	}
	if v <= uint8(world.Gas) && world.TileType(v).Props().Ore {
		return Glyph{Rune: r, FG: c, BG: dark}
	}
	switch r {
	case ' ':
		return Glyph{Rune: r, FG: c, BG: c}
	case '~', ':', 'H', '#':
		return Glyph{Rune: r, FG: color.RGBA{R: 230, G: 230, B: 230, A: 255}, BG: c}
	}
	return Glyph{Rune: r, FG: c, BG: dark}
}

// BuildingRune labels a hub building on the surface row.
func BuildingRune(k world.BuildingKind) rune {
	switch k {
	case world.ElevatorBuilding:
		return 'E'
	case world.StoreBuilding:
		return 'S'
	case world.AssayerBuilding:
		return 'A'
	case world.MedicalBuilding:
		return 'M'
	}
	return '?'
}

// Terminals report key presses but not releases, so a pressed direction is
// treated as held for a short window, refreshed by key repeat.
type holdInput struct {
	window   time.Duration
	left     time.Time
	right    time.Time
	up       time.Time
	down     time.Time
	interact bool
}

type direction uint8

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
)

func newHoldInput(window time.Duration) *holdInput {
	return &holdInput{window: window}
}

func (h *holdInput) press(d direction, now time.Time) {
	until := now.Add(h.window)
	switch d {
	case dirLeft:
		h.left, h.right = until, time.Time{}
	case dirRight:
		h.right, h.left = until, time.Time{}
	case dirUp:
		h.up, h.down = until, time.Time{}
	case dirDown:
		h.down, h.up = until, time.Time{}
	}
}

func (h *holdInput) pressInteract() { h.interact = true }

func (h *holdInput) release() { *h = holdInput{window: h.window} }

// snapshot returns the controls held at now and consumes a pending interact.
func (h *holdInput) snapshot(now time.Time) kinematics.Input {
	in := kinematics.Input{
		Left:     now.Before(h.left),
		Right:    now.Before(h.right),
		Up:       now.Before(h.up),
		Down:     now.Before(h.down),
		Interact: h.interact,
	}
	h.interact = false
	return in
}
