package ledger

import (
	"testing"

	"deep-miner/internal/world"
)

func TestSpendEnergyRefusesWhenShort(t *testing.T) {
	l := New(DefaultParams())
	st := l.State()
	st.Energy = 5
	l.Restore(st)
	if l.SpendEnergy(8) {
		t.Fatal("spending more than the balance must fail")
	}
	if l.Energy() != 5 {
		t.Fatalf("balance must be unchanged, got %v", l.Energy())
	}
	if !l.SpendEnergy(5) || l.Energy() != 0 {
		t.Fatalf("exact spend should succeed and reach zero, got %v", l.Energy())
	}
}

func TestRefuelCapsAtMaximum(t *testing.T) {
	l := New(DefaultParams())
	l.SpendEnergy(100)
	if added := l.Refuel(500); added != 100 {
		t.Fatalf("expected 100 added, got %v", added)
	}
	if l.Energy() != l.MaxEnergy() {
		t.Fatal("energy should be capped at max")
	}
}

func TestHealCapsAtMaximum(t *testing.T) {
	l := New(DefaultParams())
	l.TakeDamage(30)
	if healed := l.Heal(100); healed != 30 {
		t.Fatalf("expected 30 healed, got %d", healed)
	}
	if l.Health() != 100 {
		t.Fatalf("expected full health, got %d", l.Health())
	}
}

func TestArmorReducesDamage(t *testing.T) {
	l := New(DefaultParams())
	l.ApplyUpgrade(ArmorUpgrade)
	l.ApplyUpgrade(ArmorUpgrade)
	dealt, died := l.TakeDamage(25)
	if died || dealt != 20 {
		t.Fatalf("expected 20 damage after 20%% reduction, got %d (died=%v)", dealt, died)
	}
}

func TestDeathAppliesPenalty(t *testing.T) {
	l := New(DefaultParams())
	st := l.State()
	st.Health = 15
	st.Cash = 237
	st.Energy = 450
	st.Inventory = map[world.TileType]int{world.Iron: 3, world.Gold: 1, world.Silver: 10}
	l.Restore(st)

	dealt, died := l.TakeDamage(50)
	if !died || dealt != 50 {
		t.Fatalf("expected lethal damage, got dealt=%d died=%v", dealt, died)
	}
	if l.Cash() != 237-189 {
		t.Fatalf("expected cash 48, got %d", l.Cash())
	}
	if l.Count(world.Iron) != 1 || l.Count(world.Gold) != 1 || l.Count(world.Silver) != 2 {
		t.Fatalf("unexpected inventory after penalty: %v", l.Inventory())
	}
	if l.Energy() != 450 {
		t.Fatalf("energy must be preserved, got %v", l.Energy())
	}
	if l.Health() != l.MaxHealth() {
		t.Fatalf("health should be restored on respawn, got %d", l.Health())
	}
	if l.Stats().Deaths != 1 {
		t.Fatal("death should be counted")
	}
}

func TestInventoryCapacity(t *testing.T) {
	p := DefaultParams()
	p.Capacity = 5
	p.CargoPerLevel = 3
	l := New(p)
	if got := l.AddOre(world.Iron, 4); got != 4 {
		t.Fatalf("expected 4 stored, got %d", got)
	}
	if got := l.AddOre(world.Gold, 10); got != 1 {
		t.Fatalf("expected 1 stored at capacity, got %d", got)
	}
	if got := l.AddOre(world.Gold, 1); got != 0 {
		t.Fatal("full inventory must refuse ore")
	}
	l.ApplyUpgrade(CargoUpgrade)
	if l.Capacity() != 8 {
		t.Fatalf("expected capacity 8, got %d", l.Capacity())
	}
	if got := l.AddOre(world.Dirt, 1); got != 0 {
		t.Fatal("non-ore types must not be stored")
	}
	if got := l.RemoveOre(world.Iron, 10); got != 4 || l.Count(world.Iron) != 0 {
		t.Fatalf("expected all iron removed, got %d", got)
	}
}

func TestLoseOreFraction(t *testing.T) {
	l := New(DefaultParams())
	l.AddOre(world.Copper, 10)
	l.AddOre(world.Gold, 1)
	if lost := l.LoseOre(0.3); lost != 3 {
		t.Fatalf("expected 3 lost, got %d", lost)
	}
	if l.Count(world.Copper) != 7 || l.Count(world.Gold) != 1 {
		t.Fatalf("unexpected inventory %v", l.Inventory())
	}
}

func TestCashFloor(t *testing.T) {
	l := New(DefaultParams())
	if l.Spend(l.Cash() + 1) {
		t.Fatal("overspending must fail")
	}
	l.Earn(50)
	if l.Cash() != 150 || l.Stats().TotalEarnings != 50 {
		t.Fatalf("unexpected cash %d earnings %d", l.Cash(), l.Stats().TotalEarnings)
	}
}

func TestLicenses(t *testing.T) {
	l := New(DefaultParams())
	if l.MaxDepth() != 10 {
		t.Fatalf("starter licence should allow depth 10, got %d", l.MaxDepth())
	}
	next, ok := l.NextLicense()
	if !ok || next.Name != "Shallow" {
		t.Fatalf("unexpected next licence %+v", next)
	}
	for l.GrantNextLicense() {
	}
	if l.MaxDepth() != 190 {
		t.Fatalf("expected final depth 190, got %d", l.MaxDepth())
	}
	if _, ok := l.NextLicense(); ok {
		t.Fatal("no licence should remain")
	}
}

func TestMiningCostWithPickaxe(t *testing.T) {
	l := New(DefaultParams())
	if l.MiningCost(10) != 10 {
		t.Fatal("no discount without the pickaxe")
	}
	l.GrantPickaxe()
	if got := l.MiningCost(10); got != 9 {
		t.Fatalf("expected 9, got %v", got)
	}
}

func TestRestoreClampsValues(t *testing.T) {
	l := New(DefaultParams())
	l.Restore(State{
		Health:    500,
		MaxHealth: 100,
		Energy:    5000,
		Cash:      -3,
		Inventory: map[world.TileType]int{world.Dirt: 4, world.Iron: -2, world.Gold: 2},
		Licenses:  99,
	})
	st := l.State()
	if st.Health != 100 || st.Energy != 1000 || st.Cash != 0 {
		t.Fatalf("unexpected clamped state %+v", st)
	}
	if len(st.Inventory) != 1 || st.Inventory[world.Gold] != 2 {
		t.Fatalf("unexpected inventory %v", st.Inventory)
	}
	if st.Licenses != len(DefaultParams().Licenses) {
		t.Fatalf("licences should clamp to ladder length, got %d", st.Licenses)
	}
}

func TestEnergyTankRaisesMaximum(t *testing.T) {
	l := New(DefaultParams())
	l.ApplyUpgrade(EnergyTankUpgrade)
	if l.MaxEnergy() != 1250 {
		t.Fatalf("expected 1250, got %v", l.MaxEnergy())
	}
}
