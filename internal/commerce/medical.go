package commerce

import (
	"fmt"

	"deep-miner/internal/event"
	"deep-miner/internal/ledger"
)

// DiscoveryResetter forgets previous fog-of-war discovery rolls.
type DiscoveryResetter interface {
	ResetDiscoveryAttempts()
}

// Medical heals the player. Resting also re-enables discovery rolls.
type Medical struct {
	ledger *ledger.Ledger
	prices Prices
	world  DiscoveryResetter
	events *event.Dispatcher
}

// NewMedical creates a medical bay backed by l.
func NewMedical(l *ledger.Ledger, prices Prices, w DiscoveryResetter, events *event.Dispatcher) *Medical {
	prices.Validate()
	return &Medical{ledger: l, prices: prices, world: w, events: events}
}

// Title implements Menu.
func (m *Medical) Title() string { return "Medical" }

// Options implements Menu.
func (m *Medical) Options() []Option { return options(m.actions()) }

// Choose implements Menu.
func (m *Medical) Choose(i int) (string, bool) { return choose(m.actions(), i) }

func (m *Medical) actions() []action {
	l := m.ledger
	missing := l.MissingHealth()
	heal := missing * m.prices.HealPrice
	rest := heal + m.prices.RestFee
	return []action{
		{
			label:   fmt.Sprintf("Heal %d HP ($%d)", missing, heal),
			enabled: missing > 0 && l.Cash() >= heal,
			run: func() string {
				l.Spend(heal)
				l.Heal(missing)
				notify(m.events, m.Title(), "heal", heal)
				return "You feel much better."
			},
		},
		{
			label:   fmt.Sprintf("Rest and recover ($%d)", rest),
			enabled: l.Cash() >= rest,
			run: func() string {
				l.Spend(rest)
				l.Heal(missing)
				if m.world != nil {
					m.world.ResetDiscoveryAttempts()
				}
				notify(m.events, m.Title(), "rest", rest)
				return "Well rested. Your senses are sharp again."
			},
		},
	}
}
