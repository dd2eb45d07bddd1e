// Package game is the coordinator: it owns the grid, the ledger and the
// kinematics engine, applies hazards after each tick and routes surface
// interactions to the commerce menus.
package game

import (
	"context"
	"fmt"
	"log"
	"math"

	"deep-miner/internal/commerce"
	"deep-miner/internal/config"
	"deep-miner/internal/core"
	"deep-miner/internal/event"
	"deep-miner/internal/feedback"
	"deep-miner/internal/hazard"
	"deep-miner/internal/kinematics"
	"deep-miner/internal/ledger"
	"deep-miner/internal/save"
	"deep-miner/internal/world"
)

// HazardEvent is the payload of HazardTriggered events.
type HazardEvent struct {
	Kind    world.Hazard
	At      world.Coord
	Cells   []world.Coord
	Damage  int
	OreLost int
	Died    bool
}

type pendingHazard struct {
	kind world.Hazard
	at   world.Coord
}

// Game wires the simulation components together.
type Game struct {
	cfg  config.Config
	seed int64

	grid   *world.Grid
	ledger *ledger.Ledger
	board  *feedback.Board
	events *event.Dispatcher
	engine *kinematics.Engine

	store     *commerce.Store
	assayer   *commerce.Assayer
	medical   *commerce.Medical
	emergency *commerce.Emergency
	menu      commerce.Menu

	saves     *save.Manager
	sinceSave float64

	pending          []pendingHazard
	gasDamage        float64
	emergencyOffered bool
}

// New builds a fresh game from cfg. saves may be nil to disable persistence.
func New(cfg config.Config, saves *save.Manager) *Game {
	cfg.Validate()
	g := &Game{
		cfg:    cfg,
		seed:   cfg.Seed,
		ledger: ledger.New(cfg.Ledger),
		board:  feedback.NewBoard(cfg.Feedback),
		events: event.NewDispatcher(),
		saves:  saves,
	}
	rng := core.NewRNG(cfg.Seed)
	g.grid = world.Generate(cfg.World, rng)
	g.engine = kinematics.NewEngine(cfg.Kinematics, cfg.World, g.grid, g.ledger, g.board, g.events, rng)

	g.store = commerce.NewStore(g.ledger, cfg.Prices, g.events)
	g.assayer = commerce.NewAssayer(g.ledger, g.events)
	g.medical = commerce.NewMedical(g.ledger, cfg.Prices, g, g.events)
	g.emergency = commerce.NewEmergency(g.ledger, cfg.Prices, g, g.events)

	g.events.SubscribeFunc(g.onTileMined, event.TileMined)
	return g
}

func (g *Game) Config() config.Config { return g.cfg }
func (g *Game) Seed() int64 { return g.seed }
func (g *Game) Grid() *world.Grid { return g.grid }
func (g *Game) Ledger() *ledger.Ledger { return g.ledger }
func (g *Game) Board() *feedback.Board { return g.board }
func (g *Game) Events() *event.Dispatcher { return g.events }
func (g *Game) Engine() *kinematics.Engine { return g.engine }
func (g *Game) Player() kinematics.Player { return g.engine.Player() }
func (g *Game) Buildings() []world.Building { return world.Buildings(g.cfg.World) }
func (g *Game) Menu() (commerce.Menu, bool) { return g.menu, g.menu != nil }
func (g *Game) Emergency() *commerce.Emergency { return g.emergency }

// Tick advances the world by dt seconds. in.Interact is edge-triggered and
// toggles the nearby building's menu. Movement is ignored while a menu is
// open; timers keep running.
func (g *Game) Tick(dt float64, in kinematics.Input) {
	if dt <= 0 {
		return
	}
	if in.Interact {
		g.Interact()
	}
	if g.menu != nil {
		in = kinematics.Input{}
	}
	g.engine.Update(dt, in)
	g.applyHazards()
	g.applyGas(dt)
	g.offerEmergency()
	g.autosave(dt)
}

func (g *Game) onTileMined(e event.Event) {
	m, ok := e.Data.(kinematics.MineEvent)
	if !ok || m.Tile.Hazard == world.NoHazard {
		return
	}
	g.pending = append(g.pending, pendingHazard{kind: m.Tile.Hazard, at: m.At})
}

func (g *Game) applyHazards() {
	queue := g.pending
	g.pending = nil
	for _, h := range queue {
		g.applyHazard(h)
	}
}

func (g *Game) applyHazard(h pendingHazard) {
	impact := g.cfg.Hazard.ImpactOf(h.kind)
	lost := g.ledger.LoseOre(impact.OreLoss)
	dealt, died := g.ledger.TakeDamage(impact.Damage)

	occupied := make(map[world.Coord]bool)
	for _, c := range g.engine.OccupiedCells() {
		occupied[c] = true
	}
	area := hazard.Area{
		MinRow: g.cfg.World.SurfaceRow,
		Spare:  func(c world.Coord) bool { return occupied[c] },
	}
	res := hazard.Trigger(g.grid, h.kind, h.at, area, g.cfg.Hazard)
	for _, c := range res.Cells {
		g.grid.Reveal(c.X, c.Y)
	}

	g.board.Flash(feedback.MediumImpact)
	g.events.Dispatch(event.Event{Type: event.HazardTriggered, Data: HazardEvent{
		Kind: h.kind, At: h.at, Cells: res.Cells, Damage: dealt, OreLost: lost, Died: died,
	}})
	if died {
		g.engine.Die(hazardDeath(h.kind))
		return
	}
	g.board.Post(hazardNotice(h.kind, dealt, lost), feedback.Regular, feedback.ColorHazard, g.board.Durations().Ore)
}

func hazardNotice(kind world.Hazard, dealt, lost int) string {
	var msg string
	switch kind {
	case world.WaterSpring:
		msg = "You hit a water spring! The tunnel floods."
	case world.CaveCollapse:
		msg = "Cave-in! Rocks fall around you."
	case world.GasPocket:
		msg = "You released a gas pocket! Get out of the fumes."
	default:
		msg = "Something gave way."
	}
	if dealt > 0 {
		msg += fmt.Sprintf(" -%d HP", dealt)
	}
	if lost > 0 {
		msg += fmt.Sprintf(", lost %d ore", lost)
	}
	return msg
}

func hazardDeath(kind world.Hazard) string {
	switch kind {
	case world.WaterSpring:
		return "You drowned!"
	case world.CaveCollapse:
		return "You were crushed by a cave-in!"
	default:
		return "You died!"
	}
}

// applyGas deals damage per second while any occupied cell holds gas.
// Fractions accumulate across ticks.
func (g *Game) applyGas(dt float64) {
	inGas := false
	for _, c := range g.engine.OccupiedCells() {
		if t, ok := g.grid.Tile(c.X, c.Y); ok && t.Type == world.Gas {
			inGas = true
			break
		}
	}
	if !inGas {
		g.gasDamage = 0
		return
	}
	g.gasDamage += g.cfg.Hazard.GasDamagePerSecond * dt
	whole := math.Floor(g.gasDamage)
	if whole < 1 {
		return
	}
	g.gasDamage -= whole
	if _, died := g.ledger.TakeDamage(int(whole)); died {
		g.gasDamage = 0
		g.engine.Die("You choked on gas!")
	}
}

// offerEmergency opens the emergency menu once each time energy drops below
// the threshold underground.
func (g *Game) offerEmergency() {
	p := g.engine.Player()
	if !g.emergency.Needed(p.Underground) {
		g.emergencyOffered = false
		return
	}
	if g.emergencyOffered || g.menu != nil {
		return
	}
	g.emergencyOffered = true
	g.menu = g.emergency
}

func (g *Game) autosave(dt float64) {
	if g.saves == nil || g.cfg.Save.Autosave <= 0 {
		return
	}
	g.sinceSave += dt
	if g.sinceSave < g.cfg.Save.Autosave {
		return
	}
	if err := g.Save(context.Background()); err != nil {
		log.Printf("autosave: %v", err)
	}
}

// Rescue returns the player to the surface. The emergency menu strips the
// cargo before calling it.
func (g *Game) Rescue() {
	g.engine.Respawn()
	g.gasDamage = 0
	g.menu = nil
	g.board.Post("The rescue team hauls you back to the surface.", feedback.Regular, feedback.ColorWarning,
		g.board.Durations().Ore)
}

// ResetDiscoveryAttempts lets every cell be rolled for discovery again.
func (g *Game) ResetDiscoveryAttempts() { g.grid.ResetDiscoveryAttempts() }
