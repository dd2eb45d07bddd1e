package commerce

import (
	"fmt"

	"deep-miner/internal/event"
	"deep-miner/internal/ledger"
	"deep-miner/internal/world"
)

// Assayer buys ore at each type's market value.
type Assayer struct {
	ledger *ledger.Ledger
	events *event.Dispatcher
}

// NewAssayer creates an assayer backed by l.
func NewAssayer(l *ledger.Ledger, events *event.Dispatcher) *Assayer {
	return &Assayer{ledger: l, events: events}
}

// Title implements Menu.
func (a *Assayer) Title() string { return "Assayer" }

// Options implements Menu.
func (a *Assayer) Options() []Option { return options(a.actions()) }

// Choose implements Menu.
func (a *Assayer) Choose(i int) (string, bool) { return choose(a.actions(), i) }

// Appraise returns the sale value of the whole inventory.
func (a *Assayer) Appraise() int {
	total := 0
	for _, t := range world.OreTypes() {
		total += a.ledger.Count(t) * t.Props().Value
	}
	return total
}

func (a *Assayer) actions() []action {
	l := a.ledger
	var out []action
	for _, t := range world.OreTypes() {
		n := l.Count(t)
		price := t.Props().Value
		out = append(out, action{
			label:   fmt.Sprintf("Sell %d %s at $%d ($%d)", n, t, price, n*price),
			enabled: n > 0,
			run: func() string {
				earned := a.sell(t)
				return fmt.Sprintf("Sold %d %s for $%d.", n, t, earned)
			},
		})
	}
	total := a.Appraise()
	out = append(out, action{
		label:   fmt.Sprintf("Sell all ($%d)", total),
		enabled: total > 0,
		run: func() string {
			earned := 0
			for _, t := range world.OreTypes() {
				earned += a.sell(t)
			}
			return fmt.Sprintf("Sold everything for $%d.", earned)
		},
	})
	return out
}

func (a *Assayer) sell(t world.TileType) int {
	n := a.ledger.RemoveOre(t, a.ledger.Count(t))
	earned := n * t.Props().Value
	a.ledger.Earn(earned)
	if earned > 0 {
		notify(a.events, a.Title(), t.String(), -earned)
	}
	return earned
}
