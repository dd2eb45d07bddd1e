//go:build !tui

package tui

import (
	"errors"

	"deep-miner/internal/game"
)

// Run reports that the terminal frontend was not compiled in.
func Run(*game.Game, int) error {
	return errors.New("tui.Run requires building with the 'tui' tag")
}
