package commerce

import (
	"fmt"

	"deep-miner/internal/event"
	"deep-miner/internal/ledger"
)

// Rescuer returns a stranded player to the surface.
type Rescuer interface {
	Rescue()
}

// Emergency is offered underground when energy runs low: overpriced energy
// from the trolls, or a rescue that costs the whole cargo.
type Emergency struct {
	ledger  *ledger.Ledger
	prices  Prices
	rescuer Rescuer
	events  *event.Dispatcher
}

// NewEmergency creates the emergency menu.
func NewEmergency(l *ledger.Ledger, prices Prices, r Rescuer, events *event.Dispatcher) *Emergency {
	prices.Validate()
	return &Emergency{ledger: l, prices: prices, rescuer: r, events: events}
}

// Title implements Menu.
func (e *Emergency) Title() string { return "Emergency" }

// Needed reports whether a player at the given depth should be offered help.
func (e *Emergency) Needed(underground bool) bool {
	return underground && e.ledger.Energy() < e.prices.EmergencyThreshold
}

// Options implements Menu.
func (e *Emergency) Options() []Option { return options(e.actions()) }

// Choose implements Menu.
func (e *Emergency) Choose(i int) (string, bool) { return choose(e.actions(), i) }

func (e *Emergency) actions() []action {
	l := e.ledger
	amount := float64(e.prices.TrollEnergy)
	cost := e.prices.EnergyCost(amount * e.prices.TrollMultiplier)
	return []action{
		{
			label:   fmt.Sprintf("Buy %d energy from the trolls ($%d)", e.prices.TrollEnergy, cost),
			enabled: l.Cash() >= cost && l.EnergySpace() >= amount,
			run: func() string {
				l.Spend(cost)
				l.Refuel(amount)
				notify(e.events, e.Title(), "troll energy", cost)
				return "The trolls grin as they hand over the energy."
			},
		},
		{
			label:   "Call rescue (lose all ore)",
			enabled: e.rescuer != nil,
			run: func() string {
				lost := l.ClearOre()
				e.rescuer.Rescue()
				notify(e.events, e.Title(), "rescue", 0)
				return fmt.Sprintf("Rescued! %d ore left behind.", lost)
			},
		},
	}
}
