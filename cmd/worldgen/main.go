package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strings"

	"deep-miner/internal/config"
	"deep-miner/internal/world"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

var oreTypes = []world.TileType{world.Iron, world.Copper, world.Silver, world.Gold}

func main() {
	configPath := flag.String("config", "", "YAML tuning file")
	seed := flag.Int64("seed", 1337, "first seed to generate")
	count := flag.Int("worlds", 8, "number of consecutive seeds to survey")
	band := flag.Int("band", 20, "depth rows per report band")
	step := flag.Int("table-step", 25, "depth interval between probability table rows")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel world generations")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}
	kv, err := config.ParsePairs(overrides)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Apply(kv); err != nil {
		log.Fatal(err)
	}
	p := cfg.World

	fmt.Printf("Probability table (width %d, depth %d)\n", p.Width, p.Depth)
	fmt.Printf("%6s %7s", "depth", "mult")
	for _, t := range oreTypes {
		fmt.Printf(" %7s", t)
	}
	fmt.Printf(" %7s %7s %7s %7s\n", "Clay", "Stone", "Dirt", "hazard")
	for d := 0; d <= p.Depth; d += max(*step, 1) {
		table := world.ProbabilityTable(p, d)
		fmt.Printf("%6d %7.3f", d, world.DepthMultiplier(p, d))
		for _, t := range oreTypes {
			fmt.Printf(" %7.3f", table.Percent(t))
		}
		fmt.Printf(" %7.3f %7.3f %7.3f %7.4f\n",
			table.Percent(world.Clay), table.Percent(world.Stone), table.Percent(world.Dirt), world.HazardChance(p, d))
	}

	seeds := make([]int64, max(*count, 1))
	for i := range seeds {
		seeds[i] = *seed + int64(i)
	}
	bands := world.Survey(p, seeds, *band, *workers)

	fmt.Printf("\nObserved tiles over %d worlds from seed %d\n", len(seeds), *seed)
	fmt.Printf("%9s", "depths")
	for _, t := range oreTypes {
		fmt.Printf(" %7s", t)
	}
	fmt.Printf(" %7s %7s %7s %7s\n", "Bedrock", "water", "cave-in", "gas")
	for _, b := range bands {
		fmt.Printf("%4d-%-4d", b.MinDepth, b.MaxDepth)
		for _, t := range oreTypes {
			fmt.Printf(" %7d", b.Counts[t])
		}
		fmt.Printf(" %7d %7d %7d %7d\n", b.Counts[world.Bedrock],
			b.Hazards[world.WaterSpring], b.Hazards[world.CaveCollapse], b.Hazards[world.GasPocket])
	}
}
