package render

import (
	"math"

	"deep-miner/internal/core"
	"deep-miner/internal/world"
)

// Rasterize writes one palette index per cell of view into dst. Unrevealed
// cells become fog and open air above the surface row becomes sky.
func Rasterize(dst *core.ByteGrid, g *world.Grid, view core.Rect, surfaceRow int) {
	dst.Resize(view.W, view.H)
	for y := 0; y < view.H; y++ {
		wy := view.Y + y
		for x := 0; x < view.W; x++ {
			wx := view.X + x
			dst.Set(x, y, cellIndex(g, wx, wy, surfaceRow))
		}
	}
}

func cellIndex(g *world.Grid, x, y, surfaceRow int) uint8 {
	t, ok := g.Tile(x, y)
	if y <= surfaceRow && !ok {
		return SkyIndex
	}
	if !g.IsRevealed(x, y) {
		return FogIndex
	}
	if !ok {
		return uint8(world.Empty)
	}
	return uint8(t.Type)
}

// Camera frames a fixed-size window of cells around the player.
type Camera struct {
	View  core.Size
	World core.Size
}

// Frame returns the window centred on world position (x, y), clamped so it
// never leaves the world. tile is the world size of one cell.
func (c Camera) Frame(x, y, tile float64) core.Rect {
	cx := int(math.Floor(x / tile))
	cy := int(math.Floor(y / tile))
	r := core.Rect{Size: c.View}
	r.X = clampOrigin(cx-c.View.W/2, c.View.W, c.World.W)
	r.Y = clampOrigin(cy-c.View.H/2, c.View.H, c.World.H)
	return r
}

func clampOrigin(origin, view, world int) int {
	if view >= world {
		return 0
	}
	if origin < 0 {
		return 0
	}
	if origin+view > world {
		return world - view
	}
	return origin
}
