// Package audio synthesises short feedback tones for game events.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const sampleRate = beep.SampleRate(48000)

// Options configures sound output.
type Options struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// DefaultOptions returns audio enabled at a moderate level.
func DefaultOptions() Options {
	return Options{Enabled: true, Volume: 0.5}
}

// Validate clamps the volume to [0, 1].
func (o *Options) Validate() {
	if o.Volume < 0 {
		o.Volume = 0
	}
	if o.Volume > 1 {
		o.Volume = 1
	}
}

// Sound identifies one feedback effect.
type Sound uint8

const (
	SoundNone Sound = iota
	SoundDig
	SoundOre
	SoundBlocked
	SoundThud
	SoundHazard
	SoundDeath
	SoundCoin
)

func (s Sound) String() string {
	switch s {
	case SoundDig:
		return "dig"
	case SoundOre:
		return "ore"
	case SoundBlocked:
		return "blocked"
	case SoundThud:
		return "thud"
	case SoundHazard:
		return "hazard"
	case SoundDeath:
		return "death"
	case SoundCoin:
		return "coin"
	default:
		return "none"
	}
}

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a streamer producing duration of a single wave.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{freq: freq, duration: rate.N(duration), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total, att, rel := rate.N(duration), rate.N(attack), rate.N(release)
	start := total - rel
	if start < att {
		start = att
	}
	return &envelope{streamer: s, attack: att, release: rel, releaseStart: start, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. Zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, sampleRate), d, 5*time.Millisecond, d/2, sampleRate)
}

// Synth builds the streamer for s at the given volume. It returns nil for
// SoundNone. Every streamer ends after a fixed length.
func Synth(s Sound, vol float64) beep.Streamer {
	var (
		st beep.Streamer
		d  time.Duration
	)
	switch s {
	case SoundDig:
		d = 60 * time.Millisecond
		st = tone(0, d, WaveNoise)
	case SoundOre:
		d = 180 * time.Millisecond
		st = beep.Mix(
			newVolume(tone(880, d, WaveSine), 0.7),
			newVolume(tone(1760, 120*time.Millisecond, WaveSine), 0.3),
		)
	case SoundBlocked:
		d = 120 * time.Millisecond
		st = tone(110, d, WaveSaw)
	case SoundThud:
		d = 150 * time.Millisecond
		st = tone(70, d, WaveSine)
	case SoundHazard:
		d = 400 * time.Millisecond
		st = beep.Mix(
			newVolume(tone(0, d, WaveNoise), 0.6),
			newVolume(tone(55, d, WaveSquare), 0.4),
		)
	case SoundDeath:
		d = 600 * time.Millisecond
		st = beep.Seq(
			tone(392, 150*time.Millisecond, WaveSquare),
			tone(294, 150*time.Millisecond, WaveSquare),
			tone(196, 300*time.Millisecond, WaveSquare),
		)
	case SoundCoin:
		d = 240 * time.Millisecond
		st = beep.Seq(
			tone(987.77, 80*time.Millisecond, WaveSquare),
			tone(1318.51, 160*time.Millisecond, WaveSquare),
		)
	default:
		return nil
	}
	return beep.Take(sampleRate.N(d), newVolume(st, vol))
}
