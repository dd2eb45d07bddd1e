// Package save persists game snapshots. A snapshot is a plain record of the
// player, the ledger and the world edits made since generation; loading
// decodes it on top of a default snapshot so missing fields keep their
// defaults.
package save

import (
	"deep-miner/internal/kinematics"
	"deep-miner/internal/ledger"
	"deep-miner/internal/world"
)

// CurrentVersion is written into every snapshot.
const CurrentVersion = 1

// DefaultKey is the fixed identifier the game state is stored under.
const DefaultKey = "deep_miner_game_state"

// Snapshot is the persisted game state.
type Snapshot struct {
	Version int          `json:"version" msgpack:"version"`
	SavedAt int64        `json:"saved_at" msgpack:"saved_at"`
	Seed    int64        `json:"seed" msgpack:"seed"`
	Player  PlayerRecord `json:"player" msgpack:"player"`
	Ledger  LedgerRecord `json:"ledger" msgpack:"ledger"`
	World   WorldRecord  `json:"world" msgpack:"world"`
}

// PlayerRecord holds the kinematic state.
type PlayerRecord struct {
	X          float64 `json:"x" msgpack:"x"`
	Y          float64 `json:"y" msgpack:"y"`
	VX         float64 `json:"vx" msgpack:"vx"`
	VY         float64 `json:"vy" msgpack:"vy"`
	State      string  `json:"state" msgpack:"state"`
	FallStartY float64 `json:"fall_start_y" msgpack:"fall_start_y"`
	Facing     int     `json:"facing" msgpack:"facing"`
}

// LedgerRecord holds the resource counters.
type LedgerRecord struct {
	Health    int            `json:"health" msgpack:"health"`
	MaxHealth int            `json:"max_health" msgpack:"max_health"`
	Energy    float64        `json:"energy" msgpack:"energy"`
	MaxEnergy float64        `json:"max_energy" msgpack:"max_energy"`
	Cash      int            `json:"cash" msgpack:"cash"`
	Inventory map[string]int `json:"inventory" msgpack:"inventory"`
	Upgrades  UpgradeRecord  `json:"upgrades" msgpack:"upgrades"`
	Licenses  int            `json:"licenses" msgpack:"licenses"`
	Stats     StatsRecord    `json:"stats" msgpack:"stats"`
}

// UpgradeRecord mirrors ledger.Upgrades.
type UpgradeRecord struct {
	Pickaxe    bool `json:"pickaxe" msgpack:"pickaxe"`
	EnergyTank int  `json:"energy_tank" msgpack:"energy_tank"`
	Cargo      int  `json:"cargo" msgpack:"cargo"`
	Armor      int  `json:"armor" msgpack:"armor"`
}

// StatsRecord mirrors ledger.Stats.
type StatsRecord struct {
	TotalEarnings int            `json:"total_earnings" msgpack:"total_earnings"`
	BlocksMined   int            `json:"blocks_mined" msgpack:"blocks_mined"`
	OreCollected  map[string]int `json:"ore_collected" msgpack:"ore_collected"`
	DeepestDepth  int            `json:"deepest_depth" msgpack:"deepest_depth"`
	Deaths        int            `json:"deaths" msgpack:"deaths"`
	TimePlayed    float64        `json:"time_played" msgpack:"time_played"`
}

// WorldRecord lists cells changed after generation and the revealed cells.
type WorldRecord struct {
	Edits    []EditRecord `json:"edits" msgpack:"edits"`
	Revealed [][2]int     `json:"revealed" msgpack:"revealed"`
}

// EditRecord is one changed cell.
type EditRecord struct {
	X    int    `json:"x" msgpack:"x"`
	Y    int    `json:"y" msgpack:"y"`
	Type string `json:"type" msgpack:"type"`
}

// Capture builds a snapshot from live state.
func Capture(seed int64, p kinematics.Player, st ledger.State, g *world.Grid) *Snapshot {
	s := &Snapshot{
		Version: CurrentVersion,
		Seed:    seed,
		Player: PlayerRecord{
			X:          p.X,
			Y:          p.Y,
			VX:         p.VX,
			VY:         p.VY,
			State:      p.State.String(),
			FallStartY: p.FallStartY,
			Facing:     p.Facing,
		},
		Ledger: LedgerRecord{
			Health:    st.Health,
			MaxHealth: st.MaxHealth,
			Energy:    st.Energy,
			MaxEnergy: st.MaxEnergy,
			Cash:      st.Cash,
			Inventory: namedCounts(st.Inventory),
			Upgrades: UpgradeRecord{
				Pickaxe:    st.Upgrades.Pickaxe,
				EnergyTank: st.Upgrades.EnergyTank,
				Cargo:      st.Upgrades.Cargo,
				Armor:      st.Upgrades.Armor,
			},
			Licenses: st.Licenses,
			Stats: StatsRecord{
				TotalEarnings: st.Stats.TotalEarnings,
				BlocksMined:   st.Stats.BlocksMined,
				OreCollected:  namedCounts(st.Stats.OreCollected),
				DeepestDepth:  st.Stats.DeepestDepth,
				Deaths:        st.Stats.Deaths,
				TimePlayed:    st.Stats.TimePlayed,
			},
		},
	}
	if g != nil {
		for _, e := range g.Edits() {
			s.World.Edits = append(s.World.Edits, EditRecord{X: e.At.X, Y: e.At.Y, Type: e.Type.String()})
		}
		for _, c := range g.RevealedCoords() {
			s.World.Revealed = append(s.World.Revealed, [2]int{c.X, c.Y})
		}
	}
	return s
}

// LedgerState converts the ledger record. Unknown ore names are dropped.
func (s *Snapshot) LedgerState() ledger.State {
	r := s.Ledger
	return ledger.State{
		Health:    r.Health,
		MaxHealth: r.MaxHealth,
		Energy:    r.Energy,
		MaxEnergy: r.MaxEnergy,
		Cash:      r.Cash,
		Inventory: typedCounts(r.Inventory),
		Upgrades: ledger.Upgrades{
			Pickaxe:    r.Upgrades.Pickaxe,
			EnergyTank: r.Upgrades.EnergyTank,
			Cargo:      r.Upgrades.Cargo,
			Armor:      r.Upgrades.Armor,
		},
		Licenses: r.Licenses,
		Stats: ledger.Stats{
			TotalEarnings: r.Stats.TotalEarnings,
			BlocksMined:   r.Stats.BlocksMined,
			OreCollected:  typedCounts(r.Stats.OreCollected),
			DeepestDepth:  r.Stats.DeepestDepth,
			Deaths:        r.Stats.Deaths,
			TimePlayed:    r.Stats.TimePlayed,
		},
	}
}

// PlayerState converts the player record.
func (s *Snapshot) PlayerState() kinematics.Player {
	r := s.Player
	return kinematics.Player{
		X:          r.X,
		Y:          r.Y,
		VX:         r.VX,
		VY:         r.VY,
		State:      parseState(r.State),
		FallStartY: r.FallStartY,
		Facing:     r.Facing,
	}
}

// WorldChanges converts the world record. Unknown tile names are skipped.
func (s *Snapshot) WorldChanges() ([]world.Edit, []world.Coord) {
	var edits []world.Edit
	for _, e := range s.World.Edits {
		t, ok := world.ParseTileType(e.Type)
		if !ok {
			continue
		}
		edits = append(edits, world.Edit{At: world.Coord{X: e.X, Y: e.Y}, Type: t})
	}
	revealed := make([]world.Coord, 0, len(s.World.Revealed))
	for _, c := range s.World.Revealed {
		revealed = append(revealed, world.Coord{X: c[0], Y: c[1]})
	}
	return edits, revealed
}

func parseState(name string) kinematics.State {
	for st := kinematics.OnSurface; st <= kinematics.InElevatorShaft; st++ {
		if st.String() == name {
			return st
		}
	}
	return kinematics.OnSurface
}

func namedCounts(in map[world.TileType]int) map[string]int {
	out := make(map[string]int, len(in))
	for t, n := range in {
		out[t.String()] = n
	}
	return out
}

func typedCounts(in map[string]int) map[world.TileType]int {
	out := make(map[world.TileType]int, len(in))
	for name, n := range in {
		if t, ok := world.ParseTileType(name); ok {
			out[t] = n
		}
	}
	return out
}
