// Package hazard implements the area effects released by hazard-tagged tiles.
// Every routine only touches cells that are already open; it never reaches
// outside the generated grid or above the surface.
package hazard

import (
	"deep-miner/internal/world"

	"github.com/zyedidia/generic/mapset"
)

// Params holds the damage and reach of each hazard kind.
type Params struct {
	WaterDamage        int     `yaml:"water_damage"`
	WaterOreLoss       float64 `yaml:"water_ore_loss"`
	CollapseDamage     int     `yaml:"collapse_damage"`
	CollapseOreLoss    float64 `yaml:"collapse_ore_loss"`
	CollapseRadius     int     `yaml:"collapse_radius"`
	GasRadius          int     `yaml:"gas_radius"`
	GasDamagePerSecond float64 `yaml:"gas_damage_per_second"`
}

// DefaultParams returns the standard hazard tuning.
func DefaultParams() Params {
	return Params{
		WaterDamage:        20,
		WaterOreLoss:       0.3,
		CollapseDamage:     15,
		CollapseOreLoss:    0.2,
		CollapseRadius:     3,
		GasRadius:          4,
		GasDamagePerSecond: 5,
	}
}

// Validate clamps out-of-range values.
func (p *Params) Validate() {
	if p.WaterDamage < 0 {
		p.WaterDamage = 0
	}
	if p.CollapseDamage < 0 {
		p.CollapseDamage = 0
	}
	p.WaterOreLoss = clamp01(p.WaterOreLoss)
	p.CollapseOreLoss = clamp01(p.CollapseOreLoss)
	if p.CollapseRadius < 0 {
		p.CollapseRadius = 0
	}
	if p.GasRadius < 0 {
		p.GasRadius = 0
	}
	if p.GasDamagePerSecond < 0 {
		p.GasDamagePerSecond = 0
	}
}

// Impact is the immediate cost of a hazard to the player.
type Impact struct {
	Damage  int
	OreLoss float64
}

// ImpactOf returns the immediate damage and ore loss for kind.
func (p Params) ImpactOf(kind world.Hazard) Impact {
	switch kind {
	case world.WaterSpring:
		return Impact{Damage: p.WaterDamage, OreLoss: p.WaterOreLoss}
	case world.CaveCollapse:
		return Impact{Damage: p.CollapseDamage, OreLoss: p.CollapseOreLoss}
	default:
		return Impact{}
	}
}

// Area limits propagation. Rows at or above MinRow are never touched.
type Area struct {
	MinRow int
	// Spare reports cells a collapse must leave open, typically the cells the
	// player currently occupies.
	Spare func(world.Coord) bool
}

func (a Area) allows(g *world.Grid, c world.Coord) bool {
	return g.InBounds(c.X, c.Y) && c.Y > a.MinRow
}

// Result lists the cells converted by one hazard.
type Result struct {
	Kind  world.Hazard
	Cells []world.Coord
}

// Trigger runs the propagation routine for kind centred on at.
func Trigger(g *world.Grid, kind world.Hazard, at world.Coord, area Area, p Params) Result {
	res := Result{Kind: kind}
	switch kind {
	case world.WaterSpring:
		res.Cells = Flood(g, at, area)
	case world.CaveCollapse:
		res.Cells = Collapse(g, at, p.CollapseRadius, area)
	case world.GasPocket:
		res.Cells = ReleaseGas(g, at, p.GasRadius, area)
	}
	return res
}

// Flood converts the 4-connected region of empty cells containing start into
// water. Cells holding any tile stop the fill.
func Flood(g *world.Grid, start world.Coord, area Area) []world.Coord {
	if !area.allows(g, start) || g.Has(start.X, start.Y) {
		return nil
	}
	visited := mapset.New[world.Coord]()
	visited.Put(start)
	queue := []world.Coord{start}
	var filled []world.Coord
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		g.Set(c.X, c.Y, world.NewTile(world.Water))
		filled = append(filled, c)
		for _, n := range [4]world.Coord{{X: c.X, Y: c.Y - 1}, {X: c.X + 1, Y: c.Y}, {X: c.X, Y: c.Y + 1}, {X: c.X - 1, Y: c.Y}} {
			if visited.Has(n) || !area.allows(g, n) || g.Has(n.X, n.Y) {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}
	return filled
}

// Collapse refills open cells within radius of center with dirt. Water and gas
// are buried as well.
func Collapse(g *world.Grid, center world.Coord, radius int, area Area) []world.Coord {
	var filled []world.Coord
	eachInRadius(center, radius, func(c world.Coord) {
		if !area.allows(g, c) {
			return
		}
		if area.Spare != nil && area.Spare(c) {
			return
		}
		if t, ok := g.Tile(c.X, c.Y); ok && t.Type != world.Water && t.Type != world.Gas {
			return
		}
		g.Set(c.X, c.Y, world.NewTile(world.Dirt))
		filled = append(filled, c)
	})
	return filled
}

// ReleaseGas fills empty cells within radius of center with gas.
func ReleaseGas(g *world.Grid, center world.Coord, radius int, area Area) []world.Coord {
	var filled []world.Coord
	eachInRadius(center, radius, func(c world.Coord) {
		if !area.allows(g, c) || g.Has(c.X, c.Y) {
			return
		}
		g.Set(c.X, c.Y, world.NewTile(world.Gas))
		filled = append(filled, c)
	})
	return filled
}

func eachInRadius(center world.Coord, radius int, fn func(world.Coord)) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			fn(world.Coord{X: center.X + dx, Y: center.Y + dy})
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
