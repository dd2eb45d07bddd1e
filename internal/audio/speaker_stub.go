//go:build !ebiten && !tui

package audio

// SoundManager discards sounds in headless builds.
type SoundManager struct{}

func NewSoundManager(Options) *SoundManager { return &SoundManager{} }

func (sm *SoundManager) Initialize() error { return nil }

func (sm *SoundManager) Play(Sound) {}

func (sm *SoundManager) Cleanup() {}
