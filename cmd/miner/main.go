//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"deep-miner/internal/app"
	"deep-miner/internal/audio"
	"deep-miner/internal/game"
	"deep-miner/internal/save"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	saves, err := save.OpenManager(cfg.Save)
	if err != nil {
		log.Fatal(err)
	}

	g := game.New(cfg, saves)
	defer g.Close()
	if !flags.Fresh {
		g.Load(context.Background())
	}

	sounds := audio.NewSoundManager(cfg.Audio)
	if err := sounds.Initialize(); err != nil {
		log.Printf("audio disabled: %v", err)
	}
	defer sounds.Cleanup()
	audio.Attach(g.Events(), sounds)

	frontend := app.New(g, flags.Scale, flags.ViewRows, flags.TPS)
	w, h := frontend.Layout(0, 0)

	ebiten.SetWindowTitle("deep-miner")
	ebiten.SetTPS(flags.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(frontend); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
