package world

import (
	"math"

	"deep-miner/internal/core"
)

// Entry is one bucket of a probability table.
type Entry struct {
	Type    TileType
	Percent float64
}

// Table is the generation distribution at a single depth. Entries are kept in
// draw order, rarest ore first, and Filler holds the residual Dirt mass.
type Table struct {
	Entries []Entry
	Filler  float64
}

// Total returns the summed mass of every bucket including the filler.
func (t Table) Total() float64 {
	sum := t.Filler
	for _, e := range t.Entries {
		sum += e.Percent
	}
	return sum
}

// Percent returns the mass assigned to typ.
func (t Table) Percent(typ TileType) float64 {
	if typ == Dirt {
		return t.Filler
	}
	for _, e := range t.Entries {
		if e.Type == typ {
			return e.Percent
		}
	}
	return 0
}

// Draw maps a roll in [0, 100) onto a tile type by subtracting bucket masses
// in order. Rolls past every bucket fall through to Dirt.
func (t Table) Draw(roll float64) TileType {
	for _, e := range t.Entries {
		if roll < e.Percent {
			return e.Type
		}
		roll -= e.Percent
	}
	return Dirt
}

// DepthMultiplier returns the saturating ore multiplier for depth d.
func DepthMultiplier(p Params, d int) float64 {
	if d < 0 {
		d = 0
	}
	m := 1 + float64(d)*float64(d)*p.OreGrowth
	return math.Min(p.OreCap, m)
}

// ProbabilityTable computes the distribution used at depth d. Ore tiers scale
// with depth; clay and stone do not. When the scaled ore mass would exceed the
// room left by clay and stone, every tier is scaled down by the same factor so
// the total stays at 100.
func ProbabilityTable(p Params, d int) Table {
	m := DepthMultiplier(p, d)
	ores := []Entry{
		{Type: Gold, Percent: p.GoldPercent * m},
		{Type: Silver, Percent: p.SilverPercent * m},
		{Type: Copper, Percent: p.CopperPercent * m},
		{Type: Iron, Percent: p.IronPercent * m},
	}
	fixed := p.ClayPercent + p.StonePercent
	budget := math.Max(0, 100-fixed)
	oreMass := 0.0
	for _, e := range ores {
		oreMass += e.Percent
	}
	if oreMass > budget && oreMass > 0 {
		scale := budget / oreMass
		for i := range ores {
			ores[i].Percent *= scale
		}
		oreMass = budget
	}
	entries := append(ores,
		Entry{Type: Clay, Percent: p.ClayPercent},
		Entry{Type: Stone, Percent: p.StonePercent},
	)
	return Table{Entries: entries, Filler: math.Max(0, 100-oreMass-fixed)}
}

// HazardChance returns the probability that a tile at depth d carries a hazard.
func HazardChance(p Params, d int) float64 {
	return math.Min(p.HazardMax, p.HazardBase+float64(d)*p.HazardGrowth)
}

// eligibleHazards lists the hazard kinds that may spawn at depth d.
func eligibleHazards(p Params, d int) []Hazard {
	var out []Hazard
	if d >= p.WaterMinDepth && d <= p.WaterMaxDepth {
		out = append(out, WaterSpring)
	}
	if d >= p.CollapseMinDepth {
		out = append(out, CaveCollapse)
	}
	if d >= p.GasMinDepth {
		out = append(out, GasPocket)
	}
	return out
}

// Safe-zone chamber rows, counted from the surface. The first ground row
// stays solid so the surface around the elevator has no holes, and the
// chamber is two rows tall so leaving the shaft never drops more than one
// cell onto its flat floor.
const (
	safeZoneTop    = 2
	safeZoneBottom = 3
)

// InSafeZone reports whether (x, y) falls inside the cleared chamber beside
// the elevator shaft. SafeZoneRadius is the chamber's half-width; zero
// disables it.
func InSafeZone(p Params, x, y int) bool {
	r := p.SafeZoneRadius
	if r <= 0 {
		return false
	}
	d := y - p.SurfaceRow
	if d < safeZoneTop || d > safeZoneBottom {
		return false
	}
	dx := x - p.ElevatorColumn
	return dx >= -r && dx <= r
}

// Generate builds a world column by column from rng.
func Generate(p Params, rng core.Source) *Grid {
	p.Validate()
	g := NewGrid(p.Width, p.Rows(), rng)
	g.SetDiscovery(p.DiscoveryChance, p.DiagonalDiscovery)

	bottom := p.SurfaceRow + p.Depth + 1
	for x := 0; x < p.Width; x++ {
		border := x == 0 || x == p.Width-1
		if border {
			for y := p.SurfaceRow; y <= bottom; y++ {
				g.place(x, y, NewTile(Border))
			}
			continue
		}
		for y := p.SurfaceRow + 1; y < bottom; y++ {
			if t, ok := generateCell(p, rng, x, y); ok {
				g.place(x, y, t)
			}
		}
		g.place(x, bottom, NewTile(Border))
	}

	// The surface row is always visible.
	for x := 0; x < p.Width; x++ {
		g.Reveal(x, p.SurfaceRow)
		g.Reveal(x, p.SurfaceRow+1)
	}
	for y := p.SurfaceRow + 1; y < bottom; y++ {
		for x := 0; x < p.Width; x++ {
			if InSafeZone(p, x, y) {
				g.Reveal(x, y)
			}
		}
	}
	return g
}

func generateCell(p Params, rng core.Source, x, y int) (Tile, bool) {
	if x == p.ElevatorColumn {
		return NewTile(Elevator), true
	}
	if InSafeZone(p, x, y) {
		return Tile{}, false
	}
	d := y - p.SurfaceRow
	if d >= p.BedrockMinDepth && p.BedrockPercent > 0 && rng.Float64()*100 < p.BedrockPercent {
		return NewTile(Bedrock), true
	}
	t := NewTile(ProbabilityTable(p, d).Draw(rng.Float64() * 100))
	if rng.Float64() < HazardChance(p, d) {
		if kinds := eligibleHazards(p, d); len(kinds) > 0 {
			t.Hazard = kinds[rng.IntN(len(kinds))]
		}
	}
	return t, true
}

// Building is a surface structure the player can interact with.
type Building struct {
	Kind   BuildingKind
	Column int
}

// BuildingKind enumerates the surface hub structures.
type BuildingKind uint8

const (
	ElevatorBuilding BuildingKind = iota
	StoreBuilding
	AssayerBuilding
	MedicalBuilding
)

// String returns the display name of the building.
func (k BuildingKind) String() string {
	switch k {
	case ElevatorBuilding:
		return "Elevator"
	case StoreBuilding:
		return "Store"
	case AssayerBuilding:
		return "Assayer"
	case MedicalBuilding:
		return "Medical"
	default:
		return "Building"
	}
}

// Buildings returns the surface hub layout.
func Buildings(p Params) []Building {
	return []Building{
		{Kind: ElevatorBuilding, Column: p.ElevatorColumn},
		{Kind: StoreBuilding, Column: p.StoreColumn},
		{Kind: AssayerBuilding, Column: p.AssayerColumn},
		{Kind: MedicalBuilding, Column: p.MedicalColumn},
	}
}
