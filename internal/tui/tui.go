//go:build tui

package tui

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"deep-miner/internal/core"
	"deep-miner/internal/game"
	"deep-miner/internal/render"

	"github.com/gdamore/tcell/v2"
)

const (
	hudWidth   = 34
	holdWindow = 250 * time.Millisecond
	maxCatchUp = 4
)

type frontend struct {
	screen tcell.Screen
	game   *game.Game
	cells  *core.ByteGrid
	hold   *holdInput
	width  int
	height int
}

// Run drives g in the terminal at tps ticks per second until the player
// quits. The game is saved on exit.
func Run(g *game.Game, tps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	f := &frontend{
		screen: screen,
		game:   g,
		cells:  core.NewByteGrid(1, 1),
		hold:   newHoldInput(holdWindow),
	}
	f.width, f.height = screen.Size()

	timer := core.NewFixedStep(tps)
	ticker := time.NewTicker(timer.Step())
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !f.handle(ev) {
				if err := g.Save(context.Background()); err != nil {
					log.Printf("save: %v", err)
				}
				return nil
			}
		case <-ticker.C:
			// Catch up on ticks lost to a slow terminal, within a bound.
			for n := 0; n < maxCatchUp && timer.ShouldStep(); n++ {
				g.Tick(timer.Seconds(), f.hold.snapshot(time.Now()))
			}
			f.draw()
		}
	}
}

func (f *frontend) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := time.Now()
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			if _, open := f.game.Menu(); !open {
				return false
			}
			f.game.CloseMenu()
		case tcell.KeyLeft:
			f.hold.press(dirLeft, now)
		case tcell.KeyRight:
			f.hold.press(dirRight, now)
		case tcell.KeyUp:
			f.hold.press(dirUp, now)
		case tcell.KeyDown:
			f.hold.press(dirDown, now)
		case tcell.KeyEnter:
			f.hold.pressInteract()
		case tcell.KeyF5:
			if err := f.game.Save(context.Background()); err != nil {
				log.Printf("save: %v", err)
			}
		case tcell.KeyRune:
			return f.handleRune(ev.Rune(), now)
		}
	case *tcell.EventResize:
		f.width, f.height = f.screen.Size()
		f.screen.Sync()
	}
	return true
}

func (f *frontend) handleRune(r rune, now time.Time) bool {
	if r >= '1' && r <= '9' {
		if _, open := f.game.Menu(); open {
			f.game.Choose(int(r - '1'))
		}
		return true
	}
	switch r {
	case 'q':
		return false
	case 'a', 'h':
		f.hold.press(dirLeft, now)
	case 'd', 'l':
		f.hold.press(dirRight, now)
	case 'w', 'k':
		f.hold.press(dirUp, now)
	case 's', 'j':
		f.hold.press(dirDown, now)
	case ' ':
		f.hold.release()
	case 'e':
		f.hold.pressInteract()
	}
	return true
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (f *frontend) draw() {
	f.screen.Clear()
	cfg := f.game.Config()
	grid := f.game.Grid()
	viewW := f.width - hudWidth
	if viewW > grid.Width() {
		viewW = grid.Width()
	}
	viewH := f.height - 1
	if viewW <= 0 || viewH <= 0 {
		f.screen.Show()
		return
	}

	p := f.game.Player()
	tile := cfg.Kinematics.TileSize
	cam := render.Camera{View: core.Size{W: viewW, H: viewH}, World: core.Size{W: grid.Width(), H: grid.Height()}}
	view := cam.Frame(p.X, p.Y-cfg.Kinematics.PlayerHeight/2, tile)
	render.Rasterize(f.cells, grid, view, cfg.World.SurfaceRow)
	for y := 0; y < view.H; y++ {
		for x := 0; x < view.W; x++ {
			g := GlyphFor(f.cells.At(x, y))
			style := tcell.StyleDefault.Foreground(toColor(g.FG)).Background(toColor(g.BG))
			f.screen.SetContent(x, y, g.Rune, nil, style)
		}
	}

	label := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	for _, b := range f.game.Buildings() {
		if view.Contains(b.Column, cfg.World.SurfaceRow) {
			f.screen.SetContent(b.Column-view.X, cfg.World.SurfaceRow-view.Y, BuildingRune(b.Kind), nil, label)
		}
	}
	cell := f.game.Engine().Cell()
	if view.Contains(cell.X, cell.Y) {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
		if impact, ok := f.game.Board().Impact(); ok && impact.Remaining > 0 {
			style = style.Background(tcell.ColorDarkRed)
		}
		f.screen.SetContent(cell.X-view.X, cell.Y-view.Y, '@', nil, style)
	}

	f.drawHUD(viewW + 1)
	if msg, ok := f.game.Board().Current(); ok {
		f.text(0, f.height-1, msg.Text, tcell.StyleDefault.Foreground(toColor(msg.Color)))
	}
	f.screen.Show()
}

func (f *frontend) drawHUD(x int) {
	y := 0
	header := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	plain := tcell.StyleDefault
	for _, group := range f.game.Parameters().Groups {
		f.text(x, y, fmt.Sprintf("%s  %s", group.Name, group.Summary), header)
		y++
		for _, p := range group.Params {
			f.text(x, y, fmt.Sprintf(" %-14s %s", p.Label, p.Value), plain)
			y++
		}
		y++
	}
	menu, open := f.game.Menu()
	if !open {
		f.text(x, y, "arrows move, e interact, q quit", plain.Dim(true))
		return
	}
	f.text(x, y, menu.Title(), header)
	y++
	for i, opt := range menu.Options() {
		style := plain
		if !opt.Enabled {
			style = style.Dim(true)
		}
		f.text(x, y, fmt.Sprintf("%d) %s", i+1, opt.Label), style)
		y++
	}
}

func (f *frontend) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= f.width {
			return
		}
		f.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
