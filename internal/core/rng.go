package core

import "math/rand/v2"

// Source is the random stream consumed by world generation and mining rolls.
// Float64 returns values in [0, 1); IntN returns values in [0, n).
type Source interface {
	Float64() float64
	IntN(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r    *rand.Rand
	seed int64
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0)), seed: seed}
}

// Seed reports the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a uniform value in [0, n). Non-positive n yields 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Sequence replays a fixed list of Float64 values, cycling when exhausted.
// Tests use it to script generation and mining outcomes.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence returns a Sequence over the provided values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value, or 0 when the sequence is empty.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// IntN scales the next scripted value into [0, n).
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(s.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Consumed reports how many values have been drawn.
func (s *Sequence) Consumed() int { return s.pos }
