// Package feedback holds the transient on-screen messages and impact effects
// produced by the simulation.
package feedback

import "image/color"

// Category classifies a message for presentation.
type Category uint8

const (
	Regular Category = iota
	Ore
	Death
)

// String returns a lower-case category name.
func (c Category) String() string {
	switch c {
	case Ore:
		return "ore"
	case Death:
		return "death"
	default:
		return "regular"
	}
}

var (
	ColorRegular = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	ColorOre     = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	ColorWarning = color.RGBA{R: 255, G: 140, B: 60, A: 255}
	ColorDeath   = color.RGBA{R: 230, G: 40, B: 40, A: 255}
	ColorHazard  = color.RGBA{R: 90, G: 170, B: 255, A: 255}
)

// Durations are message lifetimes in seconds.
type Durations struct {
	Regular    float64 `yaml:"regular"`
	Ore        float64 `yaml:"ore"`
	DepthLimit float64 `yaml:"depth_limit"`
	NoEnergy   float64 `yaml:"no_energy"`
	Death      float64 `yaml:"death"`
	Impact     float64 `yaml:"impact"`
}

// DefaultDurations returns the standard message lifetimes.
func DefaultDurations() Durations {
	return Durations{
		Regular:    1,
		Ore:        3,
		DepthLimit: 3,
		NoEnergy:   2,
		Death:      4,
		Impact:     0.5,
	}
}

// Validate replaces non-positive lifetimes with the defaults.
func (d *Durations) Validate() {
	def := DefaultDurations()
	for _, pair := range [][2]*float64{
		{&d.Regular, &def.Regular},
		{&d.Ore, &def.Ore},
		{&d.DepthLimit, &def.DepthLimit},
		{&d.NoEnergy, &def.NoEnergy},
		{&d.Death, &def.Death},
		{&d.Impact, &def.Impact},
	} {
		if *pair[0] <= 0 {
			*pair[0] = *pair[1]
		}
	}
}

// Message is a single on-screen notice.
type Message struct {
	Text      string
	Category  Category
	Color     color.RGBA
	Duration  float64
	Remaining float64
}

// ImpactKind grades a landing or hazard hit.
type ImpactKind uint8

const (
	NoImpact ImpactKind = iota
	LightImpact
	MediumImpact
	HeavyImpact
)

// Impact is a short-lived effect the presentation layer may flash or shake.
type Impact struct {
	Kind      ImpactKind
	Remaining float64
}

// Board keeps the most recent message and impact effect. A new message
// replaces the current one.
type Board struct {
	d       Durations
	msg     Message
	visible bool
	impact  Impact
}

// NewBoard creates a board using d for default lifetimes.
func NewBoard(d Durations) *Board {
	return &Board{d: d}
}

// Durations returns the configured lifetimes.
func (b *Board) Durations() Durations { return b.d }

// Post shows text for duration seconds.
func (b *Board) Post(text string, cat Category, c color.RGBA, duration float64) {
	if duration <= 0 {
		duration = b.d.Regular
	}
	b.msg = Message{Text: text, Category: cat, Color: c, Duration: duration, Remaining: duration}
	b.visible = true
}

// Info posts a regular message with the default lifetime.
func (b *Board) Info(text string) {
	b.Post(text, Regular, ColorRegular, b.d.Regular)
}

// Current returns the visible message, if any.
func (b *Board) Current() (Message, bool) {
	return b.msg, b.visible
}

// Flash starts an impact effect.
func (b *Board) Flash(kind ImpactKind) {
	if kind == NoImpact {
		return
	}
	b.impact = Impact{Kind: kind, Remaining: b.d.Impact}
}

// Impact returns the active impact effect, if any.
func (b *Board) Impact() (Impact, bool) {
	return b.impact, b.impact.Kind != NoImpact
}

// Tick counts down message and impact lifetimes.
func (b *Board) Tick(dt float64) {
	if b.visible {
		b.msg.Remaining -= dt
		if b.msg.Remaining <= 0 {
			b.visible = false
			b.msg = Message{}
		}
	}
	if b.impact.Kind != NoImpact {
		b.impact.Remaining -= dt
		if b.impact.Remaining <= 0 {
			b.impact = Impact{}
		}
	}
}

// Clear hides any message and effect.
func (b *Board) Clear() {
	b.visible = false
	b.msg = Message{}
	b.impact = Impact{}
}
