//go:build ebiten

package app

import (
	"context"
	"log"

	"deep-miner/internal/core"
	"deep-miner/internal/game"
	"deep-miner/internal/kinematics"
	"deep-miner/internal/render"
	"deep-miner/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 280

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Game adapts a mining session to the ebiten.Game interface.
type Game struct {
	game    *game.Game
	painter *render.GridPainter
	cells   *core.ByteGrid
	camera  render.Camera
	overlay *ui.Overlay
	hud     *ui.HUD

	scale int
	timer *core.FixedStep
}

// New constructs a Game showing viewRows rows of g at scale pixels per tile.
func New(g *game.Game, scale, viewRows, tps int) *Game {
	if scale <= 0 {
		scale = 24
	}
	grid := g.Grid()
	view := core.Size{W: grid.Width(), H: viewRows}
	if view.H <= 0 || view.H > grid.Height() {
		view.H = grid.Height()
	}
	cfg := g.Config()
	return &Game{
		game:    g,
		painter: render.NewGridPainter(view.W, view.H),
		cells:   core.NewByteGrid(view.W, view.H),
		camera:  render.Camera{View: view, World: core.Size{W: grid.Width(), H: grid.Height()}},
		overlay: ui.NewOverlay(cfg.Kinematics.TileSize, cfg.World.SurfaceRow),
		hud:     ui.NewHUD(g, hudWidth),
		scale:   scale,
		timer:   core.NewFixedStep(tps),
	}
}

// Update handles per-frame input and advances the session by one fixed step.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if _, open := g.game.Menu(); open {
			g.game.CloseMenu()
		} else {
			g.save()
			return ebiten.Termination
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.save()
	}
	if menu, open := g.game.Menu(); open {
		for i, k := range digitKeys {
			if i < len(menu.Options()) && inpututil.IsKeyJustPressed(k) {
				g.game.Choose(i)
			}
		}
	}
	menu, _ := g.game.Menu()
	if i := g.hud.Update(g.viewWidth(), menu); i >= 0 {
		g.game.Choose(i)
	}

	in := kinematics.Input{
		Left:     ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:    ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:       ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:     ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Interact: inpututil.IsKeyJustPressed(ebiten.KeyE) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
	}
	g.game.Tick(g.timer.Seconds(), in)
	return nil
}

func (g *Game) save() {
	if err := g.game.Save(context.Background()); err != nil {
		log.Printf("save: %v", err)
	}
}

// Draw renders the visible window, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	cfg := g.game.Config()
	p := g.game.Player()
	view := g.camera.Frame(p.X, p.Y-cfg.Kinematics.PlayerHeight/2, cfg.Kinematics.TileSize)
	render.Rasterize(g.cells, g.game.Grid(), view, cfg.World.SurfaceRow)
	g.painter.Blit(screen, g.cells.Cells(), g.scale)

	board := g.game.Board()
	impact, hasImpact := board.Impact()
	g.overlay.Draw(screen, view, g.scale, g.game.Buildings(), p, g.game.Engine().Params(), impact, hasImpact)

	msg, hasMsg := board.Current()
	_, h := g.Layout(0, 0)
	g.hud.Draw(screen, g.viewWidth(), h, msg, hasMsg)
}

func (g *Game) viewWidth() int { return g.camera.View.W * g.scale }

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewWidth() + hudWidth, g.camera.View.H * g.scale
}
