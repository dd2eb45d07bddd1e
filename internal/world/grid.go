package world

import (
	"sort"

	"deep-miner/internal/core"

	"github.com/zyedidia/generic/mapset"
)

var (
	orthogonal = []Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	moore      = []Coord{{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}}
)

// Grid is the sparse tile store of a generated world. Absent coordinates are
// air. It also tracks which cells have been revealed and which cells have
// already had their discovery roll.
type Grid struct {
	width, height int

	tiles     map[Coord]Tile
	revealed  mapset.Set[Coord]
	attempted mapset.Set[Coord]
	edits     map[Coord]TileType

	rng             core.Source
	discoveryChance float64
	neighbors       []Coord
}

// NewGrid allocates an empty grid. rng drives discovery rolls.
func NewGrid(width, height int, rng core.Source) *Grid {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Grid{
		width:           width,
		height:          height,
		tiles:           make(map[Coord]Tile),
		revealed:        mapset.New[Coord](),
		attempted:       mapset.New[Coord](),
		edits:           make(map[Coord]TileType),
		rng:             rng,
		discoveryChance: 0.2,
		neighbors:       orthogonal,
	}
}

// SetDiscovery configures the reveal probability of a discovery roll and
// whether diagonal neighbours are rolled as well.
func (g *Grid) SetDiscovery(chance float64, diagonal bool) {
	if chance < 0 {
		chance = 0
	}
	if chance > 1 {
		chance = 1
	}
	g.discoveryChance = chance
	if diagonal {
		g.neighbors = moore
	} else {
		g.neighbors = orthogonal
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside the generated area.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Tile returns the tile at (x, y). The boolean is false for air and for
// coordinates outside the grid.
func (g *Grid) Tile(x, y int) (Tile, bool) {
	t, ok := g.tiles[Coord{x, y}]
	return t, ok
}

// Has reports whether a tile exists at (x, y).
func (g *Grid) Has(x, y int) bool {
	_, ok := g.tiles[Coord{x, y}]
	return ok
}

// Solid reports whether (x, y) holds a tile that blocks movement.
func (g *Grid) Solid(x, y int) bool {
	t, ok := g.tiles[Coord{x, y}]
	return ok && t.Type.IsSolid()
}

// Remove deletes the tile at (x, y), reveals the cell and returns the removed
// tile. It reports false when the cell was already empty.
func (g *Grid) Remove(x, y int) (Tile, bool) {
	c := Coord{x, y}
	t, ok := g.tiles[c]
	if !ok {
		return Tile{}, false
	}
	delete(g.tiles, c)
	g.edits[c] = Empty
	g.Reveal(x, y)
	t.Revealed = true
	return t, true
}

// Set stores t at (x, y), recording the change for persistence. Setting an
// Empty tile removes the cell. Coordinates outside the grid are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	c := Coord{x, y}
	g.edits[c] = t.Type
	if t.Type == Empty {
		delete(g.tiles, c)
		return
	}
	t.Revealed = g.revealed.Has(c)
	g.tiles[c] = t
}

// place stores a generated tile without recording an edit.
func (g *Grid) place(x, y int, t Tile) {
	if t.Type == Empty || !g.InBounds(x, y) {
		return
	}
	g.tiles[Coord{x, y}] = t
}

// Reveal marks (x, y) as seen. Revealing is idempotent and never undone.
func (g *Grid) Reveal(x, y int) {
	c := Coord{x, y}
	if g.revealed.Has(c) {
		return
	}
	g.revealed.Put(c)
	if t, ok := g.tiles[c]; ok {
		t.Revealed = true
		g.tiles[c] = t
	}
}

// IsRevealed reports whether (x, y) has been seen.
func (g *Grid) IsRevealed(x, y int) bool {
	return g.revealed.Has(Coord{x, y})
}

// Attempted reports whether (x, y) already had its discovery roll.
func (g *Grid) Attempted(x, y int) bool {
	return g.attempted.Has(Coord{x, y})
}

// DetectAdjacent rolls discovery for each neighbour of (cx, cy) that has not
// been rolled before. Every cell gets at most one roll until
// ResetDiscoveryAttempts is called. It returns the cells revealed by this call.
func (g *Grid) DetectAdjacent(cx, cy int) []Coord {
	var found []Coord
	for _, off := range g.neighbors {
		c := Coord{cx + off.X, cy + off.Y}
		if !g.InBounds(c.X, c.Y) || g.attempted.Has(c) {
			continue
		}
		g.attempted.Put(c)
		if g.revealed.Has(c) {
			continue
		}
		if g.rng != nil && g.rng.Float64() < g.discoveryChance {
			g.Reveal(c.X, c.Y)
			found = append(found, c)
		}
	}
	return found
}

// ResetDiscoveryAttempts forgets previous discovery rolls. Revealed cells stay
// revealed.
func (g *Grid) ResetDiscoveryAttempts() {
	g.attempted = mapset.New[Coord]()
}

// TileCount returns the number of stored tiles.
func (g *Grid) TileCount() int { return len(g.tiles) }

// Each calls fn for every stored tile in unspecified order.
func (g *Grid) Each(fn func(c Coord, t Tile)) {
	for c, t := range g.tiles {
		fn(c, t)
	}
}

// RevealedCoords returns the revealed set in row-major order.
func (g *Grid) RevealedCoords() []Coord {
	out := make([]Coord, 0, g.revealed.Size())
	g.revealed.Each(func(c Coord) {
		out = append(out, c)
	})
	sortCoords(out)
	return out
}

// Edit is a post-generation change to a single cell.
type Edit struct {
	At   Coord
	Type TileType
}

// Edits returns every cell changed since generation in row-major order.
func (g *Grid) Edits() []Edit {
	coords := make([]Coord, 0, len(g.edits))
	for c := range g.edits {
		coords = append(coords, c)
	}
	sortCoords(coords)
	out := make([]Edit, len(coords))
	for i, c := range coords {
		out[i] = Edit{At: c, Type: g.edits[c]}
	}
	return out
}

// Apply replays saved edits and reveals on top of a freshly generated grid.
func (g *Grid) Apply(edits []Edit, revealed []Coord) {
	for _, c := range revealed {
		g.Reveal(c.X, c.Y)
	}
	for _, e := range edits {
		g.Set(e.At.X, e.At.Y, NewTile(e.Type))
	}
}

func sortCoords(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}
