package game

import (
	"context"
	"log"

	"deep-miner/internal/core"
	"deep-miner/internal/event"
	"deep-miner/internal/kinematics"
	"deep-miner/internal/ledger"
	"deep-miner/internal/save"
	"deep-miner/internal/world"
)

// Snapshot captures the current game.
func (g *Game) Snapshot() *save.Snapshot {
	return save.Capture(g.seed, g.engine.Player(), g.ledger.State(), g.grid)
}

// defaultSnapshot is a fresh game on the current seed.
func (g *Game) defaultSnapshot() *save.Snapshot {
	l := ledger.New(g.cfg.Ledger)
	spawn := kinematics.Player{
		X:      (float64(g.cfg.World.SpawnColumn) + 0.5) * g.cfg.Kinematics.TileSize,
		Y:      float64(g.cfg.World.SurfaceRow+1) * g.cfg.Kinematics.TileSize,
		State:  kinematics.OnSurface,
		Facing: 1,
	}
	return save.Capture(g.seed, spawn, l.DefaultState(), nil)
}

// Restore replaces the game state with s, regenerating the world when the
// seed differs and replaying the recorded edits.
func (g *Game) Restore(s *save.Snapshot) {
	g.rebuild(s.Seed)
	edits, revealed := s.WorldChanges()
	g.grid.Apply(edits, revealed)
	g.ledger.Restore(s.LedgerState())
	g.engine.SetPlayer(s.PlayerState())
	g.menu = nil
	g.pending = nil
	g.gasDamage = 0
	g.sinceSave = 0
}

// Reset starts a new game on seed.
func (g *Game) Reset(seed int64) {
	g.rebuild(seed)
	g.ledger.Reset()
	g.engine.Respawn()
	g.board.Clear()
	g.menu = nil
	g.pending = nil
	g.gasDamage = 0
	g.emergencyOffered = false
}

// rebuild regenerates the world so generation always starts from a fresh
// source for seed.
func (g *Game) rebuild(seed int64) {
	g.seed = seed
	g.grid = world.Generate(g.cfg.World, core.NewRNG(seed))
	g.engine.SetGrid(g.grid)
}

// Save writes the snapshot through the save manager.
func (g *Game) Save(ctx context.Context) error {
	g.sinceSave = 0
	if g.saves == nil {
		return nil
	}
	if err := g.saves.Save(ctx, g.Snapshot()); err != nil {
		return err
	}
	g.events.Dispatch(event.Event{Type: event.GameSaved, Data: g.saves.Key()})
	return nil
}

// Load restores the stored game, merged onto a fresh default state. It
// reports false when no usable save existed; the game then starts fresh.
func (g *Game) Load(ctx context.Context) bool {
	if g.saves == nil {
		return false
	}
	s, ok := g.saves.Load(ctx, g.defaultSnapshot)
	g.Restore(s)
	if ok {
		log.Printf("loaded save %s (seed %d)", g.saves.Key(), s.Seed)
	}
	return ok
}

// Close releases the save store.
func (g *Game) Close() error {
	if g.saves == nil {
		return nil
	}
	return g.saves.Close()
}
