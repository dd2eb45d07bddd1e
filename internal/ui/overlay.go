//go:build ebiten

package ui

import (
	"image/color"

	"deep-miner/internal/core"
	"deep-miner/internal/feedback"
	"deep-miner/internal/kinematics"
	"deep-miner/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var buildingColors = map[world.BuildingKind]color.RGBA{
	world.ElevatorBuilding: {R: 140, G: 140, B: 90, A: 255},
	world.StoreBuilding:    {R: 70, G: 130, B: 180, A: 255},
	world.AssayerBuilding:  {R: 200, G: 160, B: 60, A: 255},
	world.MedicalBuilding:  {R: 200, G: 70, B: 70, A: 255},
}

// Overlay draws the hub buildings, the player and impact flashes on top of
// the rasterised world.
type Overlay struct {
	pixel      *ebiten.Image
	tile       float64
	surfaceRow int
}

// NewOverlay constructs an overlay for a world with the given tile size (in
// world units) and surface row.
func NewOverlay(tile float64, surfaceRow int) *Overlay {
	o := &Overlay{tile: tile, surfaceRow: surfaceRow}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Draw renders the overlay. view is the visible window in cells and scale
// the screen pixels per cell.
func (o *Overlay) Draw(screen *ebiten.Image, view core.Rect, scale int, buildings []world.Building,
	p kinematics.Player, params kinematics.Params, impact feedback.Impact, hasImpact bool) {
	s := float64(scale)
	for _, b := range buildings {
		if !view.Contains(b.Column, o.surfaceRow) {
			continue
		}
		x := float64(b.Column-view.X-1) * s
		y := float64(o.surfaceRow-view.Y-1) * s
		o.fillRect(screen, x, y, 3*s, 2*s, buildingColors[b.Kind])
		text.Draw(screen, b.Kind.String(), basicfont.Face7x13, int(x)+2, int(y)+13, color.White)
	}

	// The player box in screen pixels.
	k := s / o.tile
	w := params.BoxWidthRatio * params.PlayerHeight * k
	h := params.PlayerHeight * k
	px := (p.X-float64(view.X)*o.tile)*k - w/2
	py := (p.Y-float64(view.Y)*o.tile)*k - h
	o.fillRect(screen, px, py, w, h, color.RGBA{R: 250, G: 200, B: 40, A: 255})

	if hasImpact {
		alpha := map[feedback.ImpactKind]uint8{
			feedback.LightImpact:  40,
			feedback.MediumImpact: 80,
			feedback.HeavyImpact:  130,
		}[impact.Kind]
		if alpha > 0 {
			b := screen.Bounds()
			o.fillRect(screen, 0, 0, float64(view.W)*s, float64(b.Dy()), color.RGBA{R: alpha, A: alpha})
		}
	}
}

func (o *Overlay) fillRect(dst *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(o.pixel, op)
}
