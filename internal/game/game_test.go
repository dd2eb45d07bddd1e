package game

import (
	"context"
	"strings"
	"testing"

	"deep-miner/internal/config"
	"deep-miner/internal/event"
	"deep-miner/internal/feedback"
	"deep-miner/internal/kinematics"
	"deep-miner/internal/save"
	"deep-miner/internal/world"
)

const (
	tile = 24.0
	tick = 1.0 / 60
)

func testConfig() config.Config {
	c := config.DefaultConfig()
	c.Seed = 42
	c.World.Width = 12
	c.World.Depth = 10
	c.World.SurfaceRow = 2
	c.World.ElevatorColumn = 9
	c.World.SpawnColumn = 3
	c.World.StoreColumn = 1
	c.World.AssayerColumn = 5
	c.World.MedicalColumn = 7
	c.World.SafeZoneRadius = 0
	c.Save.Autosave = 0
	return c
}

// stoneWorld replaces the generated world with solid stone below the surface.
func stoneWorld(g *Game) *world.Grid {
	p := g.cfg.World
	grid := world.NewGrid(p.Width, p.Rows(), nil)
	bottom := p.SurfaceRow + p.Depth + 1
	for y := p.SurfaceRow + 1; y <= bottom; y++ {
		for x := 0; x < p.Width; x++ {
			typ := world.Stone
			if x == 0 || x == p.Width-1 || y == bottom {
				typ = world.Border
			}
			grid.Set(x, y, world.NewTile(typ))
		}
	}
	g.grid = grid
	g.engine.SetGrid(grid)
	return grid
}

func hazardTile(kind world.Hazard) world.Tile {
	t := world.NewTile(world.Dirt)
	t.Hazard = kind
	return t
}

// standAt places the player on the floor of row y-1 in column x.
func standAt(g *Game, x, y int) {
	g.engine.SetPlayer(kinematics.Player{X: (float64(x) + 0.5) * tile, Y: float64(y) * tile, State: kinematics.Grounded, Facing: 1})
}

func TestNewGameStartsOnSurface(t *testing.T) {
	g := New(testConfig(), nil)
	p := g.Player()
	if p.State != kinematics.OnSurface || p.Depth != 0 {
		t.Fatalf("expected surface spawn, got %+v", p)
	}
	if tl, ok := g.Grid().Tile(9, 5); !ok || tl.Type != world.Elevator {
		t.Fatalf("expected elevator shaft at column 9, got %+v", tl)
	}
	params := g.Parameters()
	if cash, ok := params.Lookup("cash"); !ok || cash.Value != "100" {
		t.Fatalf("expected cash 100 on the HUD, got %+v", cash)
	}
	if len(g.Buildings()) != 4 {
		t.Fatalf("expected four hub buildings")
	}
}

func TestWaterSpringFloodsPocket(t *testing.T) {
	g := New(testConfig(), nil)
	grid := stoneWorld(g)
	grid.Set(3, 3, hazardTile(world.WaterSpring))
	grid.Remove(3, 4)
	grid.Remove(4, 4)
	g.ledger.AddOre(world.Iron, 10)

	var hits []HazardEvent
	g.events.SubscribeFunc(func(e event.Event) { hits = append(hits, e.Data.(HazardEvent)) }, event.HazardTriggered)

	g.Tick(tick, kinematics.Input{Down: true})

	if len(hits) != 1 || hits[0].Kind != world.WaterSpring {
		t.Fatalf("expected one water spring, got %+v", hits)
	}
	for _, c := range []world.Coord{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 4, Y: 4}} {
		if tl, ok := grid.Tile(c.X, c.Y); !ok || tl.Type != world.Water {
			t.Fatalf("expected water at %v, got %+v", c, tl)
		}
	}
	if tl, _ := grid.Tile(5, 4); tl.Type != world.Stone {
		t.Fatalf("flood leaked into stone at (5,4)")
	}
	if grid.Has(3, 2) {
		t.Fatalf("flood must stay below the surface")
	}
	if g.ledger.Health() != 80 || g.ledger.Count(world.Iron) != 7 {
		t.Fatalf("expected health 80 and 7 iron, got %d and %d", g.ledger.Health(), g.ledger.Count(world.Iron))
	}
	if msg, ok := g.board.Current(); !ok || !strings.Contains(msg.Text, "water spring") {
		t.Fatalf("expected hazard notice, got %+v", msg)
	}
}

func TestCollapseSparesPlayer(t *testing.T) {
	g := New(testConfig(), nil)
	grid := stoneWorld(g)
	for _, c := range []world.Coord{{X: 4, Y: 7}, {X: 5, Y: 7}, {X: 6, Y: 7}, {X: 5, Y: 6}} {
		grid.Remove(c.X, c.Y)
	}
	standAt(g, 5, 8)

	g.pending = append(g.pending, pendingHazard{kind: world.CaveCollapse, at: world.Coord{X: 5, Y: 6}})
	g.applyHazards()

	if grid.Has(5, 7) {
		t.Fatalf("collapse filled the player's cell")
	}
	for _, c := range []world.Coord{{X: 4, Y: 7}, {X: 6, Y: 7}, {X: 5, Y: 6}} {
		if tl, ok := grid.Tile(c.X, c.Y); !ok || tl.Type != world.Dirt {
			t.Fatalf("expected dirt at %v, got %+v", c, tl)
		}
	}
	if g.ledger.Health() != 85 {
		t.Fatalf("expected collapse damage 15, health %d", g.ledger.Health())
	}
}

func TestLethalHazardRespawns(t *testing.T) {
	g := New(testConfig(), nil)
	stoneWorld(g)
	st := g.ledger.State()
	st.Health = 10
	st.Cash = 200
	g.ledger.Restore(st)
	standAt(g, 5, 8)

	g.pending = append(g.pending, pendingHazard{kind: world.WaterSpring, at: world.Coord{X: 5, Y: 7}})
	g.applyHazards()

	p := g.Player()
	if p.State != kinematics.OnSurface || p.X != 3.5*tile {
		t.Fatalf("expected respawn at the surface, got %+v", p)
	}
	if g.ledger.Cash() != 40 || g.ledger.Health() != 100 || g.ledger.Stats().Deaths != 1 {
		t.Fatalf("death penalty not applied: cash=%d health=%d", g.ledger.Cash(), g.ledger.Health())
	}
	if msg, ok := g.board.Current(); !ok || msg.Category != feedback.Death {
		t.Fatalf("expected death message, got %+v", msg)
	}
}

func TestGasDamageAccumulates(t *testing.T) {
	g := New(testConfig(), nil)
	grid := stoneWorld(g)
	grid.Set(5, 7, world.NewTile(world.Gas))
	standAt(g, 5, 8)

	for i := 0; i < 4; i++ {
		g.applyGas(0.25)
	}
	if g.ledger.Health() != 95 {
		t.Fatalf("expected 5 gas damage after one second, health %d", g.ledger.Health())
	}

	grid.Remove(5, 7)
	g.applyGas(0.1)
	if g.gasDamage != 0 {
		t.Fatalf("leaving the gas should reset the accumulator")
	}
}

func TestEmergencyOfferAndRescue(t *testing.T) {
	g := New(testConfig(), nil)
	grid := stoneWorld(g)
	grid.Remove(5, 7)
	standAt(g, 5, 8)
	g.ledger.AddOre(world.Gold, 4)
	st := g.ledger.State()
	st.Energy = 50
	g.ledger.Restore(st)

	g.Tick(tick, kinematics.Input{})
	m, ok := g.Menu()
	if !ok || m.Title() != "Emergency" {
		t.Fatalf("expected emergency menu, got %v", m)
	}
	if !g.Choose(1) {
		t.Fatalf("rescue should be available")
	}
	if _, open := g.Menu(); open {
		t.Fatalf("rescue should close the menu")
	}
	if p := g.Player(); p.State != kinematics.OnSurface {
		t.Fatalf("expected surface after rescue, got %+v", p)
	}
	if g.ledger.Carried() != 0 {
		t.Fatalf("rescue must drop the cargo")
	}
}

func TestMenuForBuildings(t *testing.T) {
	g := New(testConfig(), nil)
	want := map[world.BuildingKind]string{
		world.StoreBuilding:   "Store",
		world.AssayerBuilding: "Assayer",
		world.MedicalBuilding: "Medical",
	}
	for _, b := range g.Buildings() {
		m, ok := g.MenuFor(b.Kind)
		if b.Kind == world.ElevatorBuilding {
			if ok {
				t.Fatalf("the elevator has no menu")
			}
			continue
		}
		if !ok || m.Title() != want[b.Kind] {
			t.Fatalf("%s: got menu %v", b.Kind, m)
		}
	}

	surface := float64(g.cfg.World.SurfaceRow+1) * tile
	g.engine.SetPlayer(kinematics.Player{X: 5.5 * tile, Y: surface, State: kinematics.OnSurface})
	g.Interact()
	if m, ok := g.Menu(); !ok || m != g.assayer {
		t.Fatalf("interact at the assayer should open its menu, got %v", m)
	}
}

func TestInteractOpensBuildingMenus(t *testing.T) {
	g := New(testConfig(), nil)
	surface := float64(g.cfg.World.SurfaceRow+1) * tile

	g.engine.SetPlayer(kinematics.Player{X: 1.5 * tile, Y: surface, State: kinematics.OnSurface})
	g.Interact()
	m, ok := g.Menu()
	if !ok || m.Title() != "Store" {
		t.Fatalf("expected store menu, got %v", m)
	}

	st := g.ledger.State()
	st.Energy = 500
	g.ledger.Restore(st)
	if !g.Choose(0) {
		t.Fatalf("expected energy pack purchase")
	}
	if g.ledger.Cash() != 50 || g.ledger.Energy() != 600 {
		t.Fatalf("purchase not applied: cash=%d energy=%v", g.ledger.Cash(), g.ledger.Energy())
	}

	g.Interact()
	if _, open := g.Menu(); open {
		t.Fatalf("second interact should close the menu")
	}

	g.engine.SetPlayer(kinematics.Player{X: 9.5 * tile, Y: surface, State: kinematics.OnSurface})
	g.Interact()
	if _, open := g.Menu(); open {
		t.Fatalf("the elevator has no menu")
	}

	g.engine.SetPlayer(kinematics.Player{X: 3.5 * tile, Y: surface, State: kinematics.OnSurface})
	if _, ok := g.BuildingAt(3.5 * tile); ok {
		t.Fatalf("spawn column should be clear of buildings")
	}
	if g.Choose(0) {
		t.Fatalf("choose without a menu must fail")
	}
}

func TestMenuIgnoresMovement(t *testing.T) {
	g := New(testConfig(), nil)
	g.OpenMenu(g.store)
	before := g.Player().X
	g.Tick(tick, kinematics.Input{Right: true})
	if g.Player().X != before {
		t.Fatalf("player moved while a menu was open")
	}
}

func TestTickInteractTogglesMenu(t *testing.T) {
	g := New(testConfig(), nil)
	surface := float64(g.cfg.World.SurfaceRow+1) * tile
	g.engine.SetPlayer(kinematics.Player{X: 7.5 * tile, Y: surface, State: kinematics.OnSurface})

	g.Tick(tick, kinematics.Input{Interact: true})
	m, ok := g.Menu()
	if !ok || m.Title() != "Medical" {
		t.Fatalf("expected medical menu, got %v", m)
	}
	g.Tick(tick, kinematics.Input{})
	if _, ok := g.Menu(); !ok {
		t.Fatalf("menu should stay open without a new interact")
	}
	g.Tick(tick, kinematics.Input{Interact: true})
	if _, ok := g.Menu(); ok {
		t.Fatalf("second interact should close the menu")
	}
}

func TestLeavingShaftIntoSafeZoneIsHarmless(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	cfg.Save.Autosave = 0
	p := cfg.World
	depths := 0
	for d := 1; d <= p.Depth; d++ {
		if !world.InSafeZone(p, p.ElevatorColumn+1, p.SurfaceRow+d) {
			continue
		}
		depths++
		for _, dir := range []kinematics.Input{{Right: true}, {Left: true}} {
			g := New(cfg, nil)
			g.engine.SetPlayer(kinematics.Player{
				X:           (float64(p.ElevatorColumn) + 0.5) * tile,
				Y:           float64(p.SurfaceRow+1+d) * tile,
				State:       kinematics.InElevatorShaft,
				Underground: true,
			})
			before := g.ledger.Health()
			for i := 0; i < 120; i++ {
				g.Tick(tick, dir)
			}
			for i := 0; i < 60; i++ {
				g.Tick(tick, kinematics.Input{})
			}
			if got := g.ledger.Health(); got != before {
				t.Fatalf("leaving the shaft at depth %d (%+v): health %d -> %d", d, dir, before, got)
			}
			if st := g.Player().State; st == kinematics.Falling {
				t.Fatalf("player still falling after leaving at depth %d", d)
			}
		}
	}
	if depths == 0 {
		t.Fatalf("default layout has no safe zone beside the shaft")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	mgr := save.NewManager(save.NewMemoryStore(), save.JSONCodec{}, "")

	g := New(testConfig(), mgr)
	if _, ok := g.grid.Remove(1, 3); !ok {
		t.Fatalf("expected a generated tile at (1,3)")
	}
	st := g.ledger.State()
	st.Cash = 237
	st.Energy = 450
	st.Inventory = map[world.TileType]int{world.Iron: 3, world.Gold: 1}
	g.ledger.Restore(st)
	if err := g.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg := testConfig()
	cfg.Seed = 7
	g2 := New(cfg, mgr)
	if !g2.Load(ctx) {
		t.Fatalf("expected stored game")
	}
	if g2.Seed() != 42 {
		t.Fatalf("seed = %d, want 42", g2.Seed())
	}
	if g2.Grid().Has(1, 3) {
		t.Fatalf("mined tile reappeared after load")
	}
	for x := 0; x < cfg.World.Width; x++ {
		a, _ := g.Grid().Tile(x, 6)
		b, _ := g2.Grid().Tile(x, 6)
		if a.Type != b.Type {
			t.Fatalf("regenerated world differs at (%d,6): %v vs %v", x, a.Type, b.Type)
		}
	}
	l := g2.Ledger()
	if l.Cash() != 237 || l.Energy() != 450 || l.MaxEnergy() != 1000 {
		t.Fatalf("ledger mismatch: cash=%d energy=%v/%v", l.Cash(), l.Energy(), l.MaxEnergy())
	}
	if l.Count(world.Iron) != 3 || l.Count(world.Gold) != 1 || l.Carried() != 4 {
		t.Fatalf("inventory mismatch: %v", l.Inventory())
	}
}

func TestLoadWithoutSaveStartsFresh(t *testing.T) {
	g := New(testConfig(), save.NewManager(save.NewMemoryStore(), save.MsgpackCodec{}, ""))
	if g.Load(context.Background()) {
		t.Fatalf("empty store should not report a save")
	}
	if g.ledger.Cash() != 100 || g.Player().State != kinematics.OnSurface {
		t.Fatalf("expected default state")
	}
}

func TestAutosave(t *testing.T) {
	cfg := testConfig()
	cfg.Save.Autosave = 1
	store := save.NewMemoryStore()
	g := New(cfg, save.NewManager(store, save.JSONCodec{}, ""))
	saves := 0
	g.events.SubscribeFunc(func(event.Event) { saves++ }, event.GameSaved)

	g.Tick(0.5, kinematics.Input{})
	if saves != 0 {
		t.Fatalf("saved too early")
	}
	g.Tick(0.5, kinematics.Input{})
	g.Tick(0.5, kinematics.Input{})
	if saves != 1 {
		t.Fatalf("expected one autosave, got %d", saves)
	}
	if _, err := store.Get(context.Background(), save.DefaultKey); err != nil {
		t.Fatalf("autosave not stored: %v", err)
	}
}

func TestResetDiscoveryAttempts(t *testing.T) {
	g := New(testConfig(), nil)
	c := g.engine.Cell()
	g.grid.DetectAdjacent(c.X, c.Y)
	if !g.grid.Attempted(c.X+1, c.Y) {
		t.Fatalf("expected neighbour to be attempted")
	}
	g.ResetDiscoveryAttempts()
	if g.grid.Attempted(c.X+1, c.Y) {
		t.Fatalf("reset should clear attempts")
	}
}

func TestReset(t *testing.T) {
	g := New(testConfig(), nil)
	g.ledger.Spend(60)
	g.Reset(99)
	if g.Seed() != 99 || g.ledger.Cash() != 100 {
		t.Fatalf("reset did not restore defaults")
	}
}
