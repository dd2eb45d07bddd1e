// Package ledger tracks the player's health, energy, cash, ore inventory,
// upgrades and depth licences.
package ledger

import (
	"math"

	"deep-miner/internal/world"
)

// License is a purchasable unlock that raises the maximum mining depth.
type License struct {
	Name  string `yaml:"name"`
	Depth int    `yaml:"depth"`
	Cost  int    `yaml:"cost"`
}

// Params configures starting values and upgrade effects.
type Params struct {
	MaxHealth          int       `yaml:"max_health"`
	MaxEnergy          float64   `yaml:"max_energy"`
	StartEnergy        float64   `yaml:"start_energy"`
	StartCash          int       `yaml:"start_cash"`
	Capacity           int       `yaml:"capacity"`
	DeathPenalty       float64   `yaml:"death_penalty"`
	ArmorPerLevel      float64   `yaml:"armor_per_level"`
	EnergyTankPerLevel float64   `yaml:"energy_tank_per_level"`
	CargoPerLevel      int       `yaml:"cargo_per_level"`
	PickaxeDiscount    float64   `yaml:"pickaxe_discount"`
	Licenses           []License `yaml:"licenses"`
}

// DefaultParams returns the standard starting ledger.
func DefaultParams() Params {
	return Params{
		MaxHealth:          100,
		MaxEnergy:          1000,
		StartEnergy:        1000,
		StartCash:          100,
		Capacity:           50,
		DeathPenalty:       0.8,
		ArmorPerLevel:      0.1,
		EnergyTankPerLevel: 250,
		CargoPerLevel:      25,
		PickaxeDiscount:    0.1,
		Licenses: []License{
			{Name: "Starter", Depth: 10, Cost: 0},
			{Name: "Shallow", Depth: 25, Cost: 500},
			{Name: "Medium", Depth: 50, Cost: 1500},
			{Name: "Deep", Depth: 100, Cost: 5000},
			{Name: "Core", Depth: 190, Cost: 20000},
		},
	}
}

// Validate clamps inconsistent values.
func (p *Params) Validate() {
	def := DefaultParams()
	if p.MaxHealth <= 0 {
		p.MaxHealth = def.MaxHealth
	}
	if p.MaxEnergy <= 0 {
		p.MaxEnergy = def.MaxEnergy
	}
	if p.StartEnergy < 0 || p.StartEnergy > p.MaxEnergy {
		p.StartEnergy = p.MaxEnergy
	}
	if p.StartCash < 0 {
		p.StartCash = 0
	}
	if p.Capacity < 0 {
		p.Capacity = 0
	}
	if p.DeathPenalty < 0 || p.DeathPenalty > 1 {
		p.DeathPenalty = def.DeathPenalty
	}
	if p.PickaxeDiscount < 0 || p.PickaxeDiscount >= 1 {
		p.PickaxeDiscount = def.PickaxeDiscount
	}
	if len(p.Licenses) == 0 {
		p.Licenses = def.Licenses
	}
}

// Upgrades records purchased equipment.
type Upgrades struct {
	Pickaxe    bool
	EnergyTank int
	Cargo      int
	Armor      int
}

// Stats accumulates lifetime statistics.
type Stats struct {
	TotalEarnings int
	BlocksMined   int
	OreCollected  map[world.TileType]int
	DeepestDepth  int
	Deaths        int
	TimePlayed    float64
}

// State is the full mutable ledger content.
type State struct {
	Health    int
	MaxHealth int
	Energy    float64
	MaxEnergy float64
	Cash      int
	Inventory map[world.TileType]int
	Upgrades  Upgrades
	Licenses  int
	Stats     Stats
}

// Ledger owns the player's counters. Mutators keep every value inside its
// floor and ceiling.
type Ledger struct {
	params Params
	s      State
}

// New returns a ledger initialised from params.
func New(params Params) *Ledger {
	params.Validate()
	l := &Ledger{params: params}
	l.s = l.DefaultState()
	return l
}

// Params returns the configuration the ledger was built with.
func (l *Ledger) Params() Params { return l.params }

// DefaultState returns the starting state for a new game.
func (l *Ledger) DefaultState() State {
	return State{
		Health:    l.params.MaxHealth,
		MaxHealth: l.params.MaxHealth,
		Energy:    l.params.StartEnergy,
		MaxEnergy: l.params.MaxEnergy,
		Cash:      l.params.StartCash,
		Inventory: make(map[world.TileType]int),
		Licenses:  1,
		Stats:     Stats{OreCollected: make(map[world.TileType]int)},
	}
}

// State returns a deep copy of the current state.
func (l *Ledger) State() State {
	out := l.s
	out.Inventory = copyCounts(l.s.Inventory)
	out.Stats.OreCollected = copyCounts(l.s.Stats.OreCollected)
	return out
}

// Restore replaces the current state, clamping values that violate the
// ledger's bounds.
func (l *Ledger) Restore(s State) {
	s.Inventory = copyCounts(s.Inventory)
	s.Stats.OreCollected = copyCounts(s.Stats.OreCollected)
	if s.Upgrades.EnergyTank < 0 {
		s.Upgrades.EnergyTank = 0
	}
	if s.Upgrades.Cargo < 0 {
		s.Upgrades.Cargo = 0
	}
	if s.Upgrades.Armor < 0 {
		s.Upgrades.Armor = 0
	}
	if s.MaxHealth <= 0 {
		s.MaxHealth = l.params.MaxHealth
	}
	if s.Health <= 0 || s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	if floor := l.params.MaxEnergy + float64(s.Upgrades.EnergyTank)*l.params.EnergyTankPerLevel; s.MaxEnergy < floor {
		s.MaxEnergy = floor
	}
	s.Energy = math.Max(0, math.Min(s.Energy, s.MaxEnergy))
	if s.Cash < 0 {
		s.Cash = 0
	}
	if s.Licenses < 1 {
		s.Licenses = 1
	}
	if s.Licenses > len(l.params.Licenses) {
		s.Licenses = len(l.params.Licenses)
	}
	for t, n := range s.Inventory {
		if n <= 0 || !t.IsOre() {
			delete(s.Inventory, t)
		}
	}
	l.s = s
}

// Reset restores the starting state.
func (l *Ledger) Reset() { l.s = l.DefaultState() }

func (l *Ledger) Health() int        { return l.s.Health }
func (l *Ledger) MaxHealth() int     { return l.s.MaxHealth }
func (l *Ledger) Energy() float64    { return l.s.Energy }
func (l *Ledger) MaxEnergy() float64 { return l.s.MaxEnergy }
func (l *Ledger) Cash() int          { return l.s.Cash }
func (l *Ledger) Upgrades() Upgrades { return l.s.Upgrades }
func (l *Ledger) Stats() Stats       { return l.State().Stats }

// TakeDamage applies amount reduced by armour. When health reaches zero the
// death penalty is applied and health is restored; died reports that case.
func (l *Ledger) TakeDamage(amount int) (dealt int, died bool) {
	if amount <= 0 {
		return 0, false
	}
	reduction := math.Min(0.9, float64(l.s.Upgrades.Armor)*l.params.ArmorPerLevel)
	dealt = amount - int(math.Floor(float64(amount)*reduction))
	l.s.Health -= dealt
	if l.s.Health > 0 {
		return dealt, false
	}
	l.s.Health = 0
	l.die()
	return dealt, true
}

func (l *Ledger) die() {
	frac := l.params.DeathPenalty
	l.s.Cash -= int(math.Floor(float64(l.s.Cash) * frac))
	for t, n := range l.s.Inventory {
		n -= int(math.Floor(float64(n) * frac))
		if n <= 0 {
			delete(l.s.Inventory, t)
			continue
		}
		l.s.Inventory[t] = n
	}
	l.s.Health = l.s.MaxHealth
	l.s.Stats.Deaths++
}

// Heal restores up to amount health and returns the amount restored.
func (l *Ledger) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := l.s.Health
	l.s.Health = min(l.s.MaxHealth, l.s.Health+amount)
	return l.s.Health - before
}

// MissingHealth returns how much health a full heal would restore.
func (l *Ledger) MissingHealth() int { return l.s.MaxHealth - l.s.Health }

// MiningCost applies the pickaxe discount to a tile's base cost.
func (l *Ledger) MiningCost(base float64) float64 {
	if l.s.Upgrades.Pickaxe {
		return base * (1 - l.params.PickaxeDiscount)
	}
	return base
}

// SpendEnergy deducts cost when affordable. It leaves the balance unchanged
// and reports false otherwise.
func (l *Ledger) SpendEnergy(cost float64) bool {
	if cost < 0 || l.s.Energy+1e-9 < cost {
		return false
	}
	l.s.Energy = math.Max(0, l.s.Energy-cost)
	return true
}

// Refuel adds up to amount energy and returns the amount added.
func (l *Ledger) Refuel(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := l.s.Energy
	l.s.Energy = math.Min(l.s.MaxEnergy, l.s.Energy+amount)
	return l.s.Energy - before
}

// EnergySpace returns the room left in the tank.
func (l *Ledger) EnergySpace() float64 { return l.s.MaxEnergy - l.s.Energy }

// Spend deducts cash when affordable.
func (l *Ledger) Spend(amount int) bool {
	if amount < 0 || l.s.Cash < amount {
		return false
	}
	l.s.Cash -= amount
	return true
}

// Earn credits cash and lifetime earnings.
func (l *Ledger) Earn(amount int) {
	if amount <= 0 {
		return
	}
	l.s.Cash += amount
	l.s.Stats.TotalEarnings += amount
}

// Capacity returns the inventory ceiling including cargo upgrades.
func (l *Ledger) Capacity() int {
	return l.params.Capacity + l.s.Upgrades.Cargo*l.params.CargoPerLevel
}

// Count returns the stored quantity of ore t.
func (l *Ledger) Count(t world.TileType) int { return l.s.Inventory[t] }

// Inventory returns a copy of the ore counts.
func (l *Ledger) Inventory() map[world.TileType]int { return copyCounts(l.s.Inventory) }

// Carried returns the total number of ore units held.
func (l *Ledger) Carried() int {
	total := 0
	for _, n := range l.s.Inventory {
		total += n
	}
	return total
}

// AddOre credits up to qty units of t, limited by free capacity, and returns
// the amount stored.
func (l *Ledger) AddOre(t world.TileType, qty int) int {
	if qty <= 0 || !t.IsOre() {
		return 0
	}
	free := l.Capacity() - l.Carried()
	if free <= 0 {
		return 0
	}
	added := min(qty, free)
	l.s.Inventory[t] += added
	l.s.Stats.OreCollected[t] += added
	return added
}

// RemoveOre takes up to qty units of t and returns the amount removed.
func (l *Ledger) RemoveOre(t world.TileType, qty int) int {
	have := l.s.Inventory[t]
	if qty <= 0 || have == 0 {
		return 0
	}
	removed := min(qty, have)
	if have-removed == 0 {
		delete(l.s.Inventory, t)
	} else {
		l.s.Inventory[t] = have - removed
	}
	return removed
}

// LoseOre removes floor(count*frac) of every ore type and returns the total
// number of units lost.
func (l *Ledger) LoseOre(frac float64) int {
	if frac <= 0 {
		return 0
	}
	lost := 0
	for t, n := range l.s.Inventory {
		lost += l.RemoveOre(t, int(math.Floor(float64(n)*math.Min(1, frac))))
	}
	return lost
}

// ClearOre empties the inventory and returns the number of units dropped.
func (l *Ledger) ClearOre() int {
	n := l.Carried()
	l.s.Inventory = make(map[world.TileType]int)
	return n
}

// Licenses returns the configured licence ladder.
func (l *Ledger) Licenses() []License { return l.params.Licenses }

// OwnedLicenses returns how many licences from the ladder are owned.
func (l *Ledger) OwnedLicenses() int { return l.s.Licenses }

// MaxDepth returns the deepest row the player may mine, from the highest
// owned licence.
func (l *Ledger) MaxDepth() int {
	return l.params.Licenses[l.s.Licenses-1].Depth
}

// NextLicense returns the next licence to buy.
func (l *Ledger) NextLicense() (License, bool) {
	if l.s.Licenses >= len(l.params.Licenses) {
		return License{}, false
	}
	return l.params.Licenses[l.s.Licenses], true
}

// GrantNextLicense marks the next licence as owned.
func (l *Ledger) GrantNextLicense() bool {
	if l.s.Licenses >= len(l.params.Licenses) {
		return false
	}
	l.s.Licenses++
	return true
}

// UpgradeKind names a levelled upgrade.
type UpgradeKind uint8

const (
	EnergyTankUpgrade UpgradeKind = iota
	CargoUpgrade
	ArmorUpgrade
)

// Level returns the current level of kind.
func (l *Ledger) Level(kind UpgradeKind) int {
	switch kind {
	case EnergyTankUpgrade:
		return l.s.Upgrades.EnergyTank
	case CargoUpgrade:
		return l.s.Upgrades.Cargo
	case ArmorUpgrade:
		return l.s.Upgrades.Armor
	}
	return 0
}

// ApplyUpgrade raises kind by one level and applies its effect.
func (l *Ledger) ApplyUpgrade(kind UpgradeKind) {
	switch kind {
	case EnergyTankUpgrade:
		l.s.Upgrades.EnergyTank++
		l.s.MaxEnergy += l.params.EnergyTankPerLevel
	case CargoUpgrade:
		l.s.Upgrades.Cargo++
	case ArmorUpgrade:
		l.s.Upgrades.Armor++
	}
}

// GrantPickaxe equips the improved pickaxe.
func (l *Ledger) GrantPickaxe() { l.s.Upgrades.Pickaxe = true }

// RecordMined counts a mined block.
func (l *Ledger) RecordMined() { l.s.Stats.BlocksMined++ }

// RecordDepth tracks the deepest depth reached.
func (l *Ledger) RecordDepth(d int) {
	if d > l.s.Stats.DeepestDepth {
		l.s.Stats.DeepestDepth = d
	}
}

// AddPlayTime accumulates elapsed seconds.
func (l *Ledger) AddPlayTime(dt float64) {
	if dt > 0 {
		l.s.Stats.TimePlayed += dt
	}
}

func copyCounts(in map[world.TileType]int) map[world.TileType]int {
	out := make(map[world.TileType]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
