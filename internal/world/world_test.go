package world

import (
	"math"
	"testing"

	"deep-miner/internal/core"
)

func TestProbabilityTableSumsToHundred(t *testing.T) {
	params := DefaultParams()
	for d := 0; d <= 1000; d += 7 {
		table := ProbabilityTable(params, d)
		if total := table.Total(); math.Abs(total-100) > 1e-9 {
			t.Fatalf("depth %d: expected total 100, got %v", d, total)
		}
	}
}

func TestProbabilityTableMonotonic(t *testing.T) {
	params := DefaultParams()
	// Tight clay/stone budget forces the clamp path as well.
	tight := DefaultParams()
	tight.ClayPercent = 45
	tight.StonePercent = 45
	tight.OreCap = 20

	for _, p := range []Params{params, tight} {
		prev := ProbabilityTable(p, 0)
		for d := 1; d <= 2000; d++ {
			table := ProbabilityTable(p, d)
			if math.Abs(table.Total()-100) > 1e-9 {
				t.Fatalf("depth %d: total %v", d, table.Total())
			}
			for _, ore := range OreTypes() {
				if table.Percent(ore)+1e-12 < prev.Percent(ore) {
					t.Fatalf("depth %d: %s decreased from %v to %v", d, ore, prev.Percent(ore), table.Percent(ore))
				}
			}
			if table.Percent(Clay) != p.ClayPercent || table.Percent(Stone) != p.StonePercent {
				t.Fatalf("depth %d: clay/stone must not scale with depth", d)
			}
			prev = table
		}
	}
}

func TestProbabilityTableClampsOreMass(t *testing.T) {
	p := DefaultParams()
	p.ClayPercent = 45
	p.StonePercent = 45
	p.OreCap = 50
	table := ProbabilityTable(p, 10000)
	ore := 0.0
	for _, typ := range OreTypes() {
		ore += table.Percent(typ)
	}
	if math.Abs(ore-10) > 1e-9 {
		t.Fatalf("expected ore mass clamped to 10, got %v", ore)
	}
	if table.Filler != 0 {
		t.Fatalf("expected no filler left, got %v", table.Filler)
	}
}

func TestDrawOrderRarestFirst(t *testing.T) {
	table := Table{
		Entries: []Entry{{Gold, 1}, {Silver, 2}, {Copper, 3}, {Iron, 4}, {Clay, 10}, {Stone, 20}},
		Filler:  60,
	}
	cases := []struct {
		roll float64
		want TileType
	}{
		{0, Gold},
		{0.99, Gold},
		{1, Silver},
		{2.99, Silver},
		{3, Copper},
		{6, Iron},
		{10, Clay},
		{20, Stone},
		{40, Dirt},
		{99.99, Dirt},
	}
	for _, tc := range cases {
		if got := table.Draw(tc.roll); got != tc.want {
			t.Fatalf("roll %v: expected %s, got %s", tc.roll, tc.want, got)
		}
	}
}

func TestRemoveThenTileIsAbsent(t *testing.T) {
	g := NewGrid(8, 8, core.NewSequence(0.5))
	g.Set(3, 4, NewTile(Gold))
	removed, ok := g.Remove(3, 4)
	if !ok || removed.Type != Gold {
		t.Fatalf("expected to remove gold, got %+v ok=%v", removed, ok)
	}
	if _, ok := g.Tile(3, 4); ok {
		t.Fatal("tile should be absent after removal")
	}
	if g.Has(3, 4) {
		t.Fatal("Has should be false after removal")
	}
	if !g.IsRevealed(3, 4) {
		t.Fatal("removal should reveal the cell")
	}
	if _, ok := g.Remove(3, 4); ok {
		t.Fatal("second removal should report no tile")
	}
}

func TestOutOfBoundsIsAir(t *testing.T) {
	g := NewGrid(4, 4, nil)
	if _, ok := g.Tile(-1, 2); ok {
		t.Fatal("out of bounds must read as air")
	}
	g.Set(10, 10, NewTile(Stone))
	if g.Has(10, 10) {
		t.Fatal("Set outside the grid must be ignored")
	}
}

func TestRevealIsMonotonic(t *testing.T) {
	g := NewGrid(4, 4, nil)
	g.Set(1, 1, NewTile(Dirt))
	g.Reveal(1, 1)
	g.Reveal(1, 1)
	tile, _ := g.Tile(1, 1)
	if !tile.Revealed || !g.IsRevealed(1, 1) {
		t.Fatal("tile should be revealed")
	}
	g.ResetDiscoveryAttempts()
	if !g.IsRevealed(1, 1) {
		t.Fatal("reset must not un-reveal")
	}
}

func TestDetectAdjacentRollsOncePerCell(t *testing.T) {
	// Every roll misses, so nothing is revealed, but each neighbour consumes
	// exactly one roll.
	seq := core.NewSequence(0.99)
	g := NewGrid(10, 10, seq)
	g.DetectAdjacent(5, 5)
	if seq.Consumed() != 4 {
		t.Fatalf("expected 4 rolls, got %d", seq.Consumed())
	}
	g.DetectAdjacent(5, 5)
	if seq.Consumed() != 4 {
		t.Fatalf("repeated detection must not roll again, got %d rolls", seq.Consumed())
	}
	// A diagonal origin shares two cells; only the other two are rolled.
	g.DetectAdjacent(6, 6)
	if seq.Consumed() != 6 {
		t.Fatalf("expected 2 additional rolls, got %d", seq.Consumed()-4)
	}
	g.ResetDiscoveryAttempts()
	g.DetectAdjacent(5, 5)
	if seq.Consumed() != 10 {
		t.Fatalf("reset should re-enable rolls, got %d", seq.Consumed())
	}
}

func TestDetectAdjacentReveals(t *testing.T) {
	g := NewGrid(10, 10, core.NewSequence(0.1, 0.9, 0.1, 0.9))
	found := g.DetectAdjacent(5, 5)
	if len(found) != 2 {
		t.Fatalf("expected 2 reveals, got %v", found)
	}
	if !g.IsRevealed(5, 4) || g.IsRevealed(6, 5) || !g.IsRevealed(5, 6) || g.IsRevealed(4, 5) {
		t.Fatal("unexpected reveal pattern")
	}
}

func TestDetectAdjacentDiagonal(t *testing.T) {
	seq := core.NewSequence(0.99)
	g := NewGrid(10, 10, seq)
	g.SetDiscovery(0.2, true)
	g.DetectAdjacent(5, 5)
	if seq.Consumed() != 8 {
		t.Fatalf("expected 8 rolls with diagonal discovery, got %d", seq.Consumed())
	}
}

func TestGenerateLayout(t *testing.T) {
	p := DefaultParams()
	p.Width = 24
	p.Depth = 60
	p.ElevatorColumn = 12
	g := Generate(p, core.NewRNG(3))

	if g.Width() != 24 || g.Height() != p.Rows() {
		t.Fatalf("unexpected size %dx%d", g.Width(), g.Height())
	}
	bottom := p.SurfaceRow + p.Depth + 1
	for y := p.SurfaceRow; y <= bottom; y++ {
		for _, x := range []int{0, p.Width - 1} {
			tile, ok := g.Tile(x, y)
			if !ok || tile.Type != Border {
				t.Fatalf("expected border at (%d,%d), got %+v", x, y, tile)
			}
		}
	}
	for x := 0; x < p.Width; x++ {
		tile, ok := g.Tile(x, bottom)
		if !ok || !tile.Type.IsIndestructible() {
			t.Fatalf("expected indestructible floor at column %d", x)
		}
	}
	for y := 0; y < p.SurfaceRow; y++ {
		for x := 0; x < p.Width; x++ {
			if g.Has(x, y) {
				t.Fatalf("sky must be empty at (%d,%d)", x, y)
			}
		}
	}
	for y := p.SurfaceRow + 1; y < bottom; y++ {
		tile, ok := g.Tile(p.ElevatorColumn, y)
		if !ok || tile.Type != Elevator {
			t.Fatalf("expected elevator shaft at row %d", y)
		}
	}
	for y := p.SurfaceRow + 1; y < bottom; y++ {
		for x := 1; x < p.Width-1; x++ {
			if x == p.ElevatorColumn {
				continue
			}
			_, ok := g.Tile(x, y)
			if InSafeZone(p, x, y) {
				if ok {
					t.Fatalf("safe zone cell (%d,%d) must be empty", x, y)
				}
				if !g.IsRevealed(x, y) {
					t.Fatalf("safe zone cell (%d,%d) should start revealed", x, y)
				}
				continue
			}
			if !ok {
				t.Fatalf("ground cell (%d,%d) must be filled", x, y)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultParams()
	p.Depth = 40
	a := Generate(p, core.NewRNG(11))
	b := Generate(p, core.NewRNG(11))
	if a.TileCount() != b.TileCount() {
		t.Fatalf("tile counts differ: %d vs %d", a.TileCount(), b.TileCount())
	}
	a.Each(func(c Coord, ta Tile) {
		tb, ok := b.Tile(c.X, c.Y)
		if !ok || ta != tb {
			t.Fatalf("tile at %v differs: %+v vs %+v", c, ta, tb)
		}
	})
}

func TestHazardsRespectDepthBands(t *testing.T) {
	p := DefaultParams()
	p.HazardBase = 1
	p.HazardMax = 1
	g := Generate(p, core.NewRNG(5))
	g.Each(func(c Coord, tile Tile) {
		d := c.Y - p.SurfaceRow
		switch tile.Hazard {
		case WaterSpring:
			if d < p.WaterMinDepth || d > p.WaterMaxDepth {
				t.Fatalf("water spring at depth %d", d)
			}
		case CaveCollapse:
			if d < p.CollapseMinDepth {
				t.Fatalf("collapse at depth %d", d)
			}
		case GasPocket:
			if d < p.GasMinDepth {
				t.Fatalf("gas at depth %d", d)
			}
		}
	})
}

func TestEditsReplayOntoRegeneratedGrid(t *testing.T) {
	p := DefaultParams()
	p.Depth = 30
	g := Generate(p, core.NewRNG(9))
	g.Remove(3, p.SurfaceRow+2)
	g.Set(4, p.SurfaceRow+3, NewTile(Water))
	g.Reveal(7, p.SurfaceRow+9)

	h := Generate(p, core.NewRNG(9))
	h.Apply(g.Edits(), g.RevealedCoords())
	if h.Has(3, p.SurfaceRow+2) {
		t.Fatal("removed tile should stay removed after replay")
	}
	if tile, ok := h.Tile(4, p.SurfaceRow+3); !ok || tile.Type != Water {
		t.Fatalf("expected replayed water, got %+v", tile)
	}
	if !h.IsRevealed(7, p.SurfaceRow+9) {
		t.Fatal("revealed set should be restored")
	}
}

func TestParseTileType(t *testing.T) {
	for _, typ := range OreTypes() {
		got, ok := ParseTileType(typ.String())
		if !ok || got != typ {
			t.Fatalf("ParseTileType(%q) = %v, %v", typ.String(), got, ok)
		}
	}
	if _, ok := ParseTileType("Mithril"); ok {
		t.Fatal("unknown names must not parse")
	}
}

func TestSurveyCountsEveryInteriorCell(t *testing.T) {
	p := DefaultParams()
	p.Width = 16
	p.Depth = 45
	p.ElevatorColumn = 8
	p.SpawnColumn = 5
	p.StoreColumn = 2
	p.AssayerColumn = 4
	p.MedicalColumn = 12
	seeds := []int64{1, 2, 3}

	bands := Survey(p, seeds, 10, 2)
	if len(bands) != 5 {
		t.Fatalf("expected 5 bands, got %d", len(bands))
	}
	if bands[0].MinDepth != 1 || bands[4].MaxDepth != 45 {
		t.Fatalf("bands cover %d..%d", bands[0].MinDepth, bands[4].MaxDepth)
	}
	for i, b := range bands {
		rows := b.MaxDepth - b.MinDepth + 1
		if want := rows * (p.Width - 2) * len(seeds); b.Cells != want {
			t.Fatalf("band %d: %d cells, want %d", i, b.Cells, want)
		}
		sum := 0
		for _, c := range b.Counts {
			sum += c
		}
		if sum != b.Cells {
			t.Fatalf("band %d: counts sum to %d of %d", i, sum, b.Cells)
		}
		if b.Counts[Elevator] != rows*len(seeds) {
			t.Fatalf("band %d: elevator shaft has %d cells", i, b.Counts[Elevator])
		}
	}
}

func TestSurveyIndependentOfWorkers(t *testing.T) {
	p := DefaultParams()
	p.Depth = 30
	seeds := []int64{11, 12, 13, 14}
	a := Survey(p, seeds, 7, 1)
	b := Survey(p, seeds, 7, 4)
	if len(a) != len(b) {
		t.Fatalf("band counts differ")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("band %d differs between worker counts", i)
		}
	}
	if got := a[0].Percent(Dirt) + a[0].Percent(Stone); got <= 0 || got > 100 {
		t.Fatalf("implausible percentages: %v", got)
	}
}

func TestSafeZoneHasCeilingAndFlatFloor(t *testing.T) {
	p := DefaultParams()
	p.Depth = 20
	g := Generate(p, core.NewRNG(7))
	e, r := p.ElevatorColumn, p.SafeZoneRadius
	for x := e - r; x <= e+r; x++ {
		if x == e {
			continue
		}
		if !g.Solid(x, p.SurfaceRow+1) {
			t.Fatalf("surface ground above the chamber at column %d must stay solid", x)
		}
		for d := 2; d <= 3; d++ {
			if !InSafeZone(p, x, p.SurfaceRow+d) || g.Has(x, p.SurfaceRow+d) {
				t.Fatalf("chamber cell (%d, depth %d) should be cleared", x, d)
			}
		}
		if !g.Solid(x, p.SurfaceRow+4) {
			t.Fatalf("chamber floor at column %d must be solid", x)
		}
	}
	if InSafeZone(p, e+r+1, p.SurfaceRow+2) || InSafeZone(p, e, p.SurfaceRow+1) {
		t.Fatalf("safe zone leaks outside the chamber")
	}
	p.SafeZoneRadius = 0
	if InSafeZone(p, e+1, p.SurfaceRow+2) {
		t.Fatalf("radius 0 should disable the chamber")
	}
}
