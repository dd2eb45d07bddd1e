package game

import (
	"fmt"
	"strconv"

	"deep-miner/internal/core"
	"deep-miner/internal/world"
)

// Parameters reports the values the HUD shows each frame.
func (g *Game) Parameters() core.ParameterSnapshot {
	l := g.ledger
	p := g.engine.Player()

	player := core.ParameterGroup{
		Name: "Miner",
		Params: []core.Parameter{
			intParam("health", "Health", l.Health(), fmt.Sprintf("of %d", l.MaxHealth())),
			{Key: "energy", Label: "Energy", Type: core.ParamTypeFloat,
				Value: strconv.FormatFloat(l.Energy(), 'f', 0, 64), Description: fmt.Sprintf("of %.0f", l.MaxEnergy())},
			intParam("cash", "Cash", l.Cash(), ""),
			intParam("depth", "Depth", p.Depth, fmt.Sprintf("licensed to %d", l.MaxDepth())),
			{Key: "state", Label: "State", Type: core.ParamTypeText, Value: p.State.String()},
		},
	}

	cargo := core.ParameterGroup{
		Name:    "Cargo",
		Summary: fmt.Sprintf("%d/%d", l.Carried(), l.Capacity()),
	}
	for _, t := range world.OreTypes() {
		cargo.Params = append(cargo.Params, intParam(oreKey(t), t.String(), l.Count(t), ""))
	}

	st := l.Stats()
	progress := core.ParameterGroup{
		Name: "Progress",
		Params: []core.Parameter{
			intParam("licenses", "Licences", l.OwnedLicenses(), ""),
			intParam("blocks_mined", "Blocks mined", st.BlocksMined, ""),
			intParam("deepest", "Deepest", st.DeepestDepth, ""),
			intParam("earnings", "Earnings", st.TotalEarnings, ""),
			intParam("deaths", "Deaths", st.Deaths, ""),
		},
	}
	if next, ok := l.NextLicense(); ok {
		progress.Summary = fmt.Sprintf("next: %s ($%d)", next.Name, next.Cost)
	}

	return core.ParameterSnapshot{Groups: []core.ParameterGroup{player, cargo, progress}}
}

func intParam(key, label string, v int, desc string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v), Description: desc}
}

func oreKey(t world.TileType) string { return "ore_" + t.String() }
