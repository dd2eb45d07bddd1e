// Package commerce implements the surface shops. Each menu is independent of
// any frontend: it lists options and executes the chosen one against the
// ledger it was constructed with.
package commerce

import (
	"math"

	"deep-miner/internal/event"
)

// Option is one selectable line of a menu.
type Option struct {
	Label   string
	Enabled bool
}

// Menu is implemented by every shop.
type Menu interface {
	Title() string
	Options() []Option
	// Choose runs option i and returns a message for the player. ok is false
	// when the option does not exist or is not available.
	Choose(i int) (msg string, ok bool)
}

// UpgradePrice describes a levelled upgrade: cost = floor(Base * Mult^level).
type UpgradePrice struct {
	Base     int     `yaml:"base"`
	Mult     float64 `yaml:"mult"`
	MaxLevel int     `yaml:"max_level"`
}

// Cost returns the price of going from level to level+1.
func (u UpgradePrice) Cost(level int) int {
	return int(math.Floor(float64(u.Base) * math.Pow(u.Mult, float64(level))))
}

// Prices configures every shop.
type Prices struct {
	EnergyPrice        float64      `yaml:"energy_price"`
	EnergyPacks        []int        `yaml:"energy_packs"`
	PickaxeCost        int          `yaml:"pickaxe_cost"`
	EnergyTank         UpgradePrice `yaml:"energy_tank"`
	Cargo              UpgradePrice `yaml:"cargo"`
	Armor              UpgradePrice `yaml:"armor"`
	HealPrice          int          `yaml:"heal_price"`
	RestFee            int          `yaml:"rest_fee"`
	TrollMultiplier    float64      `yaml:"troll_multiplier"`
	TrollEnergy        int          `yaml:"troll_energy"`
	EmergencyThreshold float64      `yaml:"emergency_threshold"`
}

// DefaultPrices returns the standard price list.
func DefaultPrices() Prices {
	return Prices{
		EnergyPrice:        0.5,
		EnergyPacks:        []int{100, 500, 1000},
		PickaxeCost:        500,
		EnergyTank:         UpgradePrice{Base: 300, Mult: 1.5, MaxLevel: 5},
		Cargo:              UpgradePrice{Base: 200, Mult: 1.6, MaxLevel: 5},
		Armor:              UpgradePrice{Base: 400, Mult: 1.7, MaxLevel: 5},
		HealPrice:          2,
		RestFee:            25,
		TrollMultiplier:    10,
		TrollEnergy:        100,
		EmergencyThreshold: 100,
	}
}

// Validate replaces unusable values with defaults.
func (p *Prices) Validate() {
	def := DefaultPrices()
	if p.EnergyPrice <= 0 {
		p.EnergyPrice = def.EnergyPrice
	}
	if len(p.EnergyPacks) == 0 {
		p.EnergyPacks = def.EnergyPacks
	}
	for _, u := range []*UpgradePrice{&p.EnergyTank, &p.Cargo, &p.Armor} {
		if u.Mult < 1 {
			u.Mult = 1
		}
		if u.Base < 0 {
			u.Base = 0
		}
	}
	if p.TrollMultiplier < 1 {
		p.TrollMultiplier = def.TrollMultiplier
	}
	if p.TrollEnergy <= 0 {
		p.TrollEnergy = def.TrollEnergy
	}
	if p.PickaxeCost < 0 {
		p.PickaxeCost = def.PickaxeCost
	}
	if p.HealPrice < 0 {
		p.HealPrice = def.HealPrice
	}
	if p.RestFee < 0 {
		p.RestFee = def.RestFee
	}
}

// EnergyCost returns the cash price of amount energy units.
func (p Prices) EnergyCost(amount float64) int {
	return int(math.Ceil(amount*p.EnergyPrice - 1e-9))
}

// PurchaseEvent is the payload of event.Purchase.
type PurchaseEvent struct {
	Menu string
	Item string
	Cost int
}

// action is a resolved menu line.
type action struct {
	label   string
	enabled bool
	run     func() string
}

func options(actions []action) []Option {
	out := make([]Option, len(actions))
	for i, a := range actions {
		out[i] = Option{Label: a.label, Enabled: a.enabled}
	}
	return out
}

func choose(actions []action, i int) (string, bool) {
	if i < 0 || i >= len(actions) || !actions[i].enabled {
		return "", false
	}
	return actions[i].run(), true
}

func notify(events *event.Dispatcher, menu, item string, cost int) {
	events.Dispatch(event.Event{Type: event.Purchase, Data: PurchaseEvent{Menu: menu, Item: item, Cost: cost}})
}
