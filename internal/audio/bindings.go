package audio

import (
	"deep-miner/internal/event"
	"deep-miner/internal/kinematics"
)

// Player plays synthesised sounds.
type Player interface {
	Play(Sound)
}

// SoundFor maps a game event to its feedback sound.
func SoundFor(e event.Event) Sound {
	switch e.Type {
	case event.TileMined:
		return SoundDig
	case event.OreCollected:
		return SoundOre
	case event.MiningBlocked:
		return SoundBlocked
	case event.PlayerLanded:
		if l, ok := e.Data.(kinematics.LandedEvent); ok && l.Damage > 0 && !l.Died {
			return SoundThud
		}
	case event.HazardTriggered:
		return SoundHazard
	case event.PlayerDied:
		return SoundDeath
	case event.Purchase:
		return SoundCoin
	}
	return SoundNone
}

// Attach subscribes p to every event that has a sound. The returned listener
// can be passed to Dispatcher.Unsubscribe.
func Attach(d *event.Dispatcher, p Player) event.Listener {
	return d.SubscribeFunc(func(e event.Event) {
		if s := SoundFor(e); s != SoundNone {
			p.Play(s)
		}
	},
		event.TileMined, event.OreCollected, event.MiningBlocked, event.PlayerLanded,
		event.HazardTriggered, event.PlayerDied, event.Purchase,
	)
}
