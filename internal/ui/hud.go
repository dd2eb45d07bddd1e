//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"deep-miner/internal/commerce"
	"deep-miner/internal/core"
	"deep-miner/internal/feedback"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the status panel to the right of the world view and the open
// menu, if any, on top of it.
type HUD struct {
	source     parameterProvider
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	menu         commerce.Menu
	options      []menuButton
	panelOffsetX int

	pixel *ebiten.Image
}

type menuButton struct {
	option commerce.Option
	rect   image.Rectangle
}

// NewHUD constructs a HUD reading from source with the given panel width.
func NewHUD(source parameterProvider, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{source: source, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Update refreshes the cached snapshot and the open menu. It returns the
// index of a menu option clicked this frame, or -1.
func (h *HUD) Update(panelOffsetX int, menu commerce.Menu) int {
	if h == nil {
		return -1
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.source.Parameters()
	h.menu = menu
	h.layoutMenu()
	return h.handleInput()
}

// Draw paints the panel anchored at offsetX with the given height, then the
// current feedback message.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int, msg feedback.Message, hasMsg bool) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	y := h.drawGroups()
	if hasMsg {
		y += lineHeight
		for _, line := range wrap(msg.Text, (h.width-2*panelPadding)/charWidth) {
			text.Draw(h.panel, line, basicfont.Face7x13, panelPadding, y, msg.Color)
			y += lineHeight
		}
	}
	h.drawMenu()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawGroups() int {
	face := basicfont.Face7x13
	label := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	y := panelPadding + headerBaseline
	for _, group := range h.snapshot.Groups {
		header := group.Name
		if group.Summary != "" {
			header += "  " + group.Summary
		}
		text.Draw(h.panel, header, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 110, A: 255})
		y += lineHeight
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y, label)
			value := p.Value
			if p.Description != "" {
				value += " " + p.Description
			}
			bounds := text.BoundString(face, value)
			text.Draw(h.panel, value, face, h.width-panelPadding-bounds.Dx(), y, dim)
			y += lineHeight
		}
		y += groupGap
	}
	return y
}

func (h *HUD) layoutMenu() {
	h.options = h.options[:0]
	if h.menu == nil {
		return
	}
	opts := h.menu.Options()
	top := h.lastHeight - panelPadding - len(opts)*(buttonHeight+buttonGap)
	for i, opt := range opts {
		y := top + i*(buttonHeight+buttonGap)
		h.options = append(h.options, menuButton{
			option: opt,
			rect:   image.Rect(panelPadding, y, h.width-panelPadding, y+buttonHeight),
		})
	}
}

func (h *HUD) handleInput() int {
	if len(h.options) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return -1
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return -1
	}
	px := mx - h.panelOffsetX
	for i, b := range h.options {
		if b.option.Enabled && pointInRect(px, my, b.rect) {
			return i
		}
	}
	return -1
}

func (h *HUD) drawMenu() {
	if h.menu == nil || len(h.options) == 0 {
		return
	}
	titleY := h.options[0].rect.Min.Y - buttonGap
	text.Draw(h.panel, h.menu.Title(), basicfont.Face7x13, panelPadding, titleY, color.RGBA{R: 255, G: 215, B: 0, A: 255})
	for _, b := range h.options {
		h.drawButton(b.rect, b.option.Label, b.option.Enabled)
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + buttonGap
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 16
	groupGap       = 8
	buttonHeight   = 22
	buttonGap      = 6
	headerBaseline = 14
	charWidth      = 7
)
