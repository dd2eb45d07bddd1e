package commerce

import (
	"fmt"
	"math"

	"deep-miner/internal/event"
	"deep-miner/internal/ledger"
)

// Store sells energy, equipment upgrades and depth licences.
type Store struct {
	ledger *ledger.Ledger
	prices Prices
	events *event.Dispatcher
}

// NewStore creates a store backed by l.
func NewStore(l *ledger.Ledger, prices Prices, events *event.Dispatcher) *Store {
	prices.Validate()
	return &Store{ledger: l, prices: prices, events: events}
}

// Title implements Menu.
func (s *Store) Title() string { return "Store" }

// Options implements Menu.
func (s *Store) Options() []Option { return options(s.actions()) }

// Choose implements Menu.
func (s *Store) Choose(i int) (string, bool) { return choose(s.actions(), i) }

func (s *Store) actions() []action {
	l := s.ledger
	var out []action
	for _, pack := range s.prices.EnergyPacks {
		amount := float64(pack)
		cost := s.prices.EnergyCost(amount)
		out = append(out, action{
			label:   fmt.Sprintf("Buy %d energy ($%d)", pack, cost),
			enabled: l.Cash() >= cost && l.EnergySpace() >= amount,
			run: func() string {
				l.Spend(cost)
				l.Refuel(amount)
				notify(s.events, s.Title(), "energy", cost)
				return fmt.Sprintf("Bought %d energy.", int(amount))
			},
		})
	}

	space := l.EnergySpace()
	fill := s.prices.EnergyCost(space)
	out = append(out, action{
		label:   fmt.Sprintf("Fill tank ($%d)", fill),
		enabled: space > 0 && l.Cash() >= fill,
		run: func() string {
			l.Spend(fill)
			l.Refuel(space)
			notify(s.events, s.Title(), "energy", fill)
			return "Energy tank filled."
		},
	})

	if !l.Upgrades().Pickaxe {
		cost := s.prices.PickaxeCost
		out = append(out, action{
			label:   fmt.Sprintf("Improved pickaxe, %d%% less energy ($%d)", int(math.Round(l.Params().PickaxeDiscount*100)), cost),
			enabled: l.Cash() >= cost,
			run: func() string {
				l.Spend(cost)
				l.GrantPickaxe()
				notify(s.events, s.Title(), "pickaxe", cost)
				return "Improved pickaxe equipped."
			},
		})
	}

	out = append(out,
		s.upgrade("Energy tank", ledger.EnergyTankUpgrade, s.prices.EnergyTank),
		s.upgrade("Cargo hold", ledger.CargoUpgrade, s.prices.Cargo),
		s.upgrade("Armor", ledger.ArmorUpgrade, s.prices.Armor),
	)

	if next, ok := l.NextLicense(); ok {
		out = append(out, action{
			label:   fmt.Sprintf("%s licence, depth %d ($%d)", next.Name, next.Depth, next.Cost),
			enabled: l.Cash() >= next.Cost,
			run: func() string {
				l.Spend(next.Cost)
				l.GrantNextLicense()
				notify(s.events, s.Title(), "licence", next.Cost)
				return fmt.Sprintf("%s licence bought. You may now dig to depth %d.", next.Name, next.Depth)
			},
		})
	}
	return out
}

func (s *Store) upgrade(name string, kind ledger.UpgradeKind, price UpgradePrice) action {
	l := s.ledger
	level := l.Level(kind)
	if level >= price.MaxLevel {
		return action{label: fmt.Sprintf("%s (max level)", name)}
	}
	cost := price.Cost(level)
	return action{
		label:   fmt.Sprintf("%s level %d ($%d)", name, level+1, cost),
		enabled: l.Cash() >= cost,
		run: func() string {
			l.Spend(cost)
			l.ApplyUpgrade(kind)
			notify(s.events, s.Title(), name, cost)
			return fmt.Sprintf("%s upgraded to level %d.", name, level+1)
		},
	}
}
