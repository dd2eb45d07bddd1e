package kinematics

import (
	"fmt"
	"math"

	"deep-miner/internal/core"
	"deep-miner/internal/event"
	"deep-miner/internal/feedback"
	"deep-miner/internal/world"
)

// BlockReason explains why a mining attempt did not happen.
type BlockReason uint8

const (
	NotBlocked BlockReason = iota
	NoTile
	Indestructible
	DepthLimit
	InsufficientEnergy
)

// String returns a short description of the reason.
func (r BlockReason) String() string {
	switch r {
	case NoTile:
		return "no tile"
	case Indestructible:
		return "indestructible"
	case DepthLimit:
		return "depth limit"
	case InsufficientEnergy:
		return "insufficient energy"
	default:
		return "ok"
	}
}

// MineResult reports the outcome of AttemptMine.
type MineResult struct {
	Mined    bool
	Reason   BlockReason
	Tile     world.Tile
	Cost     float64
	Quantity int
	Stored   int
}

// MineEvent is the payload of TileMined and OreCollected events.
type MineEvent struct {
	At       world.Coord
	Tile     world.Tile
	Quantity int
	Stored   int
}

// BlockedEvent is the payload of MiningBlocked events.
type BlockedEvent struct {
	At     world.Coord
	Reason BlockReason
}

// LandedEvent is the payload of PlayerLanded events.
type LandedEvent struct {
	Cells  int
	Damage int
	Died   bool
}

// RollQuantity draws how many ore units a mined ore tile yields: 1 (60%),
// 2 (30%), 5 (7%) or 10 (3%).
func RollQuantity(rng core.Source) int {
	r := rng.Float64() * 100
	switch {
	case r < 60:
		return 1
	case r < 90:
		return 2
	case r < 97:
		return 5
	default:
		return 10
	}
}

// FallDamage returns the impact damage for a fall of cells whole tiles.
func FallDamage(cells, maxHealth int) int {
	switch {
	case cells <= 1:
		return 0
	case cells == 2:
		return int(math.Floor(float64(maxHealth) * 0.2))
	case cells == 3:
		return int(math.Floor(float64(maxHealth) * 0.5))
	default:
		return maxHealth
	}
}

func impactFor(cells int) feedback.ImpactKind {
	switch {
	case cells >= 4:
		return feedback.HeavyImpact
	case cells == 3:
		return feedback.MediumImpact
	case cells == 2:
		return feedback.LightImpact
	default:
		return feedback.NoImpact
	}
}

// AttemptMine tries to dig out the tile at (x, y). Blocked attempts leave the
// grid and ledger untouched.
func (e *Engine) AttemptMine(x, y int) MineResult {
	at := world.Coord{X: x, Y: y}
	tile, ok := e.grid.Tile(x, y)
	if !ok || (!tile.Type.IsSolid() && !tile.Type.IsIndestructible()) {
		return MineResult{Reason: NoTile}
	}
	if tile.Type.IsIndestructible() {
		return e.blocked(at, MineResult{Reason: Indestructible, Tile: tile})
	}
	if depth := y - e.layout.SurfaceRow; depth > e.ledger.MaxDepth() {
		e.notifyBlocked(at, DepthLimit, func() {
			e.board.Post(fmt.Sprintf("Depth limit reached! Buy a licence to dig below %d.", e.ledger.MaxDepth()),
				feedback.Regular, feedback.ColorWarning, e.board.Durations().DepthLimit)
		})
		return MineResult{Reason: DepthLimit, Tile: tile}
	}
	cost := e.ledger.MiningCost(tile.ResourceCost)
	if !e.ledger.SpendEnergy(cost) {
		e.notifyBlocked(at, InsufficientEnergy, func() {
			e.board.Post("Not enough energy!", feedback.Regular, feedback.ColorWarning, e.board.Durations().NoEnergy)
		})
		return MineResult{Reason: InsufficientEnergy, Tile: tile, Cost: cost}
	}

	removed, _ := e.grid.Remove(x, y)
	e.ledger.RecordMined()
	e.lastBlock = blockKey{}
	res := MineResult{Mined: true, Tile: removed, Cost: cost}
	if removed.Type.IsOre() {
		res.Quantity = RollQuantity(e.rng)
		res.Stored = e.ledger.AddOre(removed.Type, res.Quantity)
		e.postOre(removed.Type, res.Quantity, res.Stored)
	} else if msg, visible := e.board.Current(); !visible || msg.Category == feedback.Regular {
		e.board.Post("Mined "+removed.Type.String(), feedback.Regular, feedback.ColorRegular, e.board.Durations().Regular)
	}

	payload := MineEvent{At: at, Tile: removed, Quantity: res.Quantity, Stored: res.Stored}
	e.events.Dispatch(event.Event{Type: event.TileMined, Data: payload})
	if res.Stored > 0 {
		e.events.Dispatch(event.Event{Type: event.OreCollected, Data: payload})
	}
	return res
}

func (e *Engine) postOre(t world.TileType, qty, stored int) {
	d := e.board.Durations().Ore
	switch {
	case stored == 0:
		e.board.Post(fmt.Sprintf("Cargo hold full! Lost %d %s.", qty, t), feedback.Regular, feedback.ColorWarning, d)
	case stored < qty:
		e.board.Post(fmt.Sprintf("Found %d %s! Only %d fit in the cargo hold.", qty, t, stored), feedback.Ore, feedback.ColorOre, d)
	default:
		e.board.Post(fmt.Sprintf("Found %d %s!", qty, t), feedback.Ore, feedback.ColorOre, d)
	}
}

func (e *Engine) blocked(at world.Coord, res MineResult) MineResult {
	e.notifyBlocked(at, res.Reason, nil)
	return res
}

// notifyBlocked emits feedback once per distinct blocked target so holding a
// direction against a wall does not repeat it every tick.
func (e *Engine) notifyBlocked(at world.Coord, reason BlockReason, post func()) {
	key := blockKey{at: at, reason: reason, set: true}
	if e.lastBlock == key {
		if post != nil {
			if _, visible := e.board.Current(); !visible {
				post()
			}
		}
		return
	}
	e.lastBlock = key
	if post != nil {
		post()
	}
	e.events.Dispatch(event.Event{Type: event.MiningBlocked, Data: BlockedEvent{At: at, Reason: reason}})
}

type blockKey struct {
	at     world.Coord
	reason BlockReason
	set    bool
}
