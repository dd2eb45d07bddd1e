package game

import (
	"context"
	"log"
	"math"

	"deep-miner/internal/commerce"
	"deep-miner/internal/feedback"
	"deep-miner/internal/world"
)

// BuildingAt returns the hub building within one column of world x.
func (g *Game) BuildingAt(x float64) (world.Building, bool) {
	T := g.cfg.Kinematics.TileSize
	best, found := world.Building{}, false
	bestDist := math.Inf(1)
	for _, b := range g.Buildings() {
		d := math.Abs(x - (float64(b.Column)+0.5)*T)
		if d <= 1.5*T && d < bestDist {
			best, bestDist, found = b, d, true
		}
	}
	return best, found
}

// Interact toggles the menu of the building next to the player. Callers
// trigger it on the key press edge.
func (g *Game) Interact() {
	if g.menu != nil {
		g.menu = nil
		return
	}
	p := g.engine.Player()
	if p.Underground {
		if g.emergency.Needed(true) {
			g.menu = g.emergency
		}
		return
	}
	b, ok := g.BuildingAt(p.X)
	if !ok {
		return
	}
	switch b.Kind {
	case world.ElevatorBuilding:
		g.board.Info("Hold down at the shaft to ride the elevator.")
		return
	case world.AssayerBuilding:
		if g.ledger.Carried() == 0 {
			g.board.Info("The assayer has nothing to appraise.")
		}
	}
	if m, ok := g.MenuFor(b.Kind); ok {
		g.OpenMenu(m)
	}
}

// MenuFor returns the menu behind a hub building.
func (g *Game) MenuFor(kind world.BuildingKind) (commerce.Menu, bool) {
	switch kind {
	case world.StoreBuilding:
		return g.store, true
	case world.AssayerBuilding:
		return g.assayer, true
	case world.MedicalBuilding:
		return g.medical, true
	default:
		return nil, false
	}
}

// OpenMenu shows m, replacing any open menu.
func (g *Game) OpenMenu(m commerce.Menu) { g.menu = m }

// CloseMenu hides the open menu.
func (g *Game) CloseMenu() { g.menu = nil }

// Choose runs option i of the open menu, posts its outcome and saves after
// a successful transaction.
func (g *Game) Choose(i int) bool {
	if g.menu == nil {
		return false
	}
	text, ok := g.menu.Choose(i)
	if !ok {
		g.board.Post("You can't do that right now.", feedback.Regular, feedback.ColorWarning, g.board.Durations().Regular)
		return false
	}
	g.board.Post(text, feedback.Regular, feedback.ColorRegular, g.board.Durations().Ore)
	if g.saves != nil {
		if err := g.Save(context.Background()); err != nil {
			log.Printf("save after purchase: %v", err)
		}
	}
	return true
}
