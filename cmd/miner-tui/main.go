//go:build tui

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"deep-miner/internal/app"
	"deep-miner/internal/audio"
	"deep-miner/internal/game"
	"deep-miner/internal/save"
	"deep-miner/internal/tui"
)

func main() {
	flags := app.NewFlags()
	flags.Bind(flag.CommandLine)
	logPath := flag.String("log", "deep-miner.log", "file receiving log output while the terminal is in use")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)

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

	if err := tui.Run(g, flags.TPS); err != nil {
		log.Fatal(err)
	}
}
