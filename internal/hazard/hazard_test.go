package hazard

import (
	"testing"

	"deep-miner/internal/world"
)

// boxed builds a grid filled with stone except for the listed open cells.
func boxed(w, h int, open ...world.Coord) *world.Grid {
	g := world.NewGrid(w, h, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, world.NewTile(world.Stone))
		}
	}
	for _, c := range open {
		g.Remove(c.X, c.Y)
	}
	return g
}

func TestFloodFillsConnectedRegionOnly(t *testing.T) {
	region := []world.Coord{{2, 2}, {3, 2}, {4, 2}, {4, 3}, {4, 4}, {3, 4}, {2, 4}, {2, 3}}
	isolated := world.Coord{X: 7, Y: 7}
	g := boxed(10, 10, append(region, isolated)...)

	filled := Flood(g, world.Coord{X: 2, Y: 2}, Area{MinRow: -1})
	if len(filled) != len(region) {
		t.Fatalf("expected %d cells flooded, got %d", len(region), len(filled))
	}
	for _, c := range region {
		tile, ok := g.Tile(c.X, c.Y)
		if !ok || tile.Type != world.Water {
			t.Fatalf("expected water at %v", c)
		}
	}
	if g.Has(isolated.X, isolated.Y) {
		t.Fatal("flood leaked into a disconnected cell")
	}
	if tile, _ := g.Tile(3, 3); tile.Type != world.Stone {
		t.Fatal("solid tile inside the loop must not change")
	}
}

func TestFloodIsIdempotent(t *testing.T) {
	g := boxed(6, 6, world.Coord{X: 2, Y: 2}, world.Coord{X: 3, Y: 2})
	Flood(g, world.Coord{X: 2, Y: 2}, Area{MinRow: -1})
	if again := Flood(g, world.Coord{X: 2, Y: 2}, Area{MinRow: -1}); len(again) != 0 {
		t.Fatalf("second flood should be a no-op, converted %v", again)
	}
}

func TestFloodTerminatesOnOpenGrid(t *testing.T) {
	g := world.NewGrid(30, 30, nil)
	filled := Flood(g, world.Coord{X: 15, Y: 15}, Area{MinRow: 9})
	if want := 30 * 20; len(filled) != want {
		t.Fatalf("expected %d cells below row 9, got %d", want, len(filled))
	}
	if g.Has(15, 9) {
		t.Fatal("flood must not rise above the minimum row")
	}
}

func TestCollapseFillsOpenCellsInRadius(t *testing.T) {
	g := world.NewGrid(12, 12, nil)
	g.Set(6, 6, world.NewTile(world.Gold))
	g.Set(7, 6, world.NewTile(world.Gas))
	player := world.Coord{X: 5, Y: 5}
	filled := Collapse(g, world.Coord{X: 6, Y: 6}, 2, Area{MinRow: -1, Spare: func(c world.Coord) bool { return c == player }})

	// 13 cells in a radius-2 disc; the gold is kept and the player cell spared.
	if len(filled) != 11 {
		t.Fatalf("expected 11 cells filled, got %d", len(filled))
	}
	if tile, _ := g.Tile(6, 6); tile.Type != world.Gold {
		t.Fatal("existing solid tiles must be untouched")
	}
	if tile, _ := g.Tile(7, 6); tile.Type != world.Dirt {
		t.Fatal("gas inside the radius should be buried")
	}
	if g.Has(player.X, player.Y) {
		t.Fatal("spared cell must stay open")
	}
	if g.Has(8, 8) {
		t.Fatal("corner outside the euclidean radius must stay open")
	}
	if again := Collapse(g, world.Coord{X: 6, Y: 6}, 2, Area{MinRow: -1}); len(again) != 1 {
		t.Fatalf("only the previously spared cell should fill on reapply, got %d", len(again))
	}
}

func TestReleaseGasOnlyTouchesEmptyCells(t *testing.T) {
	g := world.NewGrid(12, 12, nil)
	g.Set(5, 6, world.NewTile(world.Stone))
	filled := ReleaseGas(g, world.Coord{X: 5, Y: 5}, 1, Area{MinRow: -1})
	if len(filled) != 4 {
		t.Fatalf("expected 4 gas cells, got %d", len(filled))
	}
	if tile, _ := g.Tile(5, 6); tile.Type != world.Stone {
		t.Fatal("stone must not turn into gas")
	}
	if again := ReleaseGas(g, world.Coord{X: 5, Y: 5}, 1, Area{MinRow: -1}); len(again) != 0 {
		t.Fatal("reapplying gas release should be a no-op")
	}
}

func TestTriggerDispatchesByKind(t *testing.T) {
	p := DefaultParams()
	g := boxed(8, 8, world.Coord{X: 3, Y: 3})
	res := Trigger(g, world.WaterSpring, world.Coord{X: 3, Y: 3}, Area{MinRow: -1}, p)
	if res.Kind != world.WaterSpring || len(res.Cells) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if imp := p.ImpactOf(world.CaveCollapse); imp.Damage != 15 || imp.OreLoss != 0.2 {
		t.Fatalf("unexpected collapse impact %+v", imp)
	}
	if imp := p.ImpactOf(world.GasPocket); imp.Damage != 0 {
		t.Fatal("gas deals damage over time, not on release")
	}
}
