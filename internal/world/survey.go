package world

import (
	"sync"

	"deep-miner/internal/core"
)

// BandStats counts generated tiles over a range of depths.
type BandStats struct {
	MinDepth, MaxDepth int
	Cells              int
	Counts             [tileTypeCount]int
	Hazards            [GasPocket + 1]int
}

// Percent returns the share of cells in the band holding typ. Empty counts
// air, which only the safe zone produces.
func (b BandStats) Percent(typ TileType) float64 {
	if b.Cells == 0 || int(typ) >= len(b.Counts) {
		return 0
	}
	return 100 * float64(b.Counts[typ]) / float64(b.Cells)
}

func (b *BandStats) add(o BandStats) {
	b.Cells += o.Cells
	for i := range b.Counts {
		b.Counts[i] += o.Counts[i]
	}
	for i := range b.Hazards {
		b.Hazards[i] += o.Hazards[i]
	}
}

// Survey generates one world per seed and tallies the interior columns in
// bands of band depths. Worlds are generated on up to workers goroutines; the
// result does not depend on the worker count.
func Survey(p Params, seeds []int64, band, workers int) []BandStats {
	p.Validate()
	if band <= 0 {
		band = 10
	}
	if workers <= 0 {
		workers = 1
	}
	n := (p.Depth + band - 1) / band

	perSeed := make([][]BandStats, len(seeds))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for idx, seed := range seeds {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, s int64) {
			defer wg.Done()
			perSeed[i] = surveyGrid(p, Generate(p, core.NewRNG(s)), band, n)
			<-sem
		}(idx, seed)
	}
	wg.Wait()

	out := make([]BandStats, n)
	for i := range out {
		out[i].MinDepth = i*band + 1
		out[i].MaxDepth = min((i+1)*band, p.Depth)
	}
	for _, bands := range perSeed {
		for i := range bands {
			out[i].add(bands[i])
		}
	}
	return out
}

func surveyGrid(p Params, g *Grid, band, n int) []BandStats {
	out := make([]BandStats, n)
	for d := 1; d <= p.Depth; d++ {
		b := &out[(d-1)/band]
		y := p.SurfaceRow + d
		for x := 1; x < p.Width-1; x++ {
			b.Cells++
			t, ok := g.Tile(x, y)
			if !ok {
				b.Counts[Empty]++
				continue
			}
			b.Counts[t.Type]++
			b.Hazards[t.Hazard]++
		}
	}
	return out
}
