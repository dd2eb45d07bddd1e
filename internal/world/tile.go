package world

import "image/color"

// TileType enumerates the materials a grid cell can hold.
type TileType uint8

const (
	Empty TileType = iota
	Dirt
	Clay
	Stone
	Iron
	Copper
	Silver
	Gold
	Bedrock
	Border
	Elevator
	Water
	Gas

	tileTypeCount
)

// Hazard tags a generated tile with an effect released when it is mined.
type Hazard uint8

const (
	NoHazard Hazard = iota
	WaterSpring
	CaveCollapse
	GasPocket
)

// String returns the display name of the hazard.
func (h Hazard) String() string {
	switch h {
	case WaterSpring:
		return "water spring"
	case CaveCollapse:
		return "cave collapse"
	case GasPocket:
		return "gas pocket"
	default:
		return "none"
	}
}

// Properties holds the static attributes shared by every tile of a type.
type Properties struct {
	Name           string
	Cost           float64
	Value          int
	Color          color.RGBA
	Ore            bool
	Indestructible bool
	Solid          bool
}

var properties = [tileTypeCount]Properties{
	Empty:    {Name: "Empty", Color: color.RGBA{R: 10, G: 8, B: 8, A: 255}},
	Dirt:     {Name: "Dirt", Cost: 1, Color: color.RGBA{R: 121, G: 85, B: 58, A: 255}, Solid: true},
	Clay:     {Name: "Clay", Cost: 2, Color: color.RGBA{R: 161, G: 98, B: 72, A: 255}, Solid: true},
	Stone:    {Name: "Stone", Cost: 3, Color: color.RGBA{R: 112, G: 112, B: 118, A: 255}, Solid: true},
	Iron:     {Name: "Iron", Cost: 4, Value: 15, Color: color.RGBA{R: 170, G: 120, B: 100, A: 255}, Ore: true, Solid: true},
	Copper:   {Name: "Copper", Cost: 5, Value: 25, Color: color.RGBA{R: 200, G: 117, B: 51, A: 255}, Ore: true, Solid: true},
	Silver:   {Name: "Silver", Cost: 6, Value: 60, Color: color.RGBA{R: 200, G: 205, B: 215, A: 255}, Ore: true, Solid: true},
	Gold:     {Name: "Gold", Cost: 8, Value: 120, Color: color.RGBA{R: 240, G: 200, B: 40, A: 255}, Ore: true, Solid: true},
	Bedrock:  {Name: "Bedrock", Color: color.RGBA{R: 40, G: 40, B: 48, A: 255}, Indestructible: true, Solid: true},
	Border:   {Name: "Border", Color: color.RGBA{R: 24, G: 24, B: 30, A: 255}, Indestructible: true, Solid: true},
	Elevator: {Name: "Elevator", Color: color.RGBA{R: 90, G: 90, B: 60, A: 255}, Indestructible: true},
	Water:    {Name: "Water", Color: color.RGBA{R: 40, G: 90, B: 200, A: 255}},
	Gas:      {Name: "Gas", Color: color.RGBA{R: 110, G: 170, B: 60, A: 255}},
}

// Props returns the static properties for t. Unknown types report Empty.
func (t TileType) Props() Properties {
	if t >= tileTypeCount {
		return properties[Empty]
	}
	return properties[t]
}

// String returns the display name of the type.
func (t TileType) String() string { return t.Props().Name }

// IsOre reports whether mining t credits inventory.
func (t TileType) IsOre() bool { return t.Props().Ore }

// IsIndestructible reports whether t can never be mined.
func (t TileType) IsIndestructible() bool { return t.Props().Indestructible }

// IsSolid reports whether t blocks movement and supports the player.
func (t TileType) IsSolid() bool { return t.Props().Solid }

// OreTypes lists the ore-bearing types from most common to rarest.
func OreTypes() []TileType {
	return []TileType{Iron, Copper, Silver, Gold}
}

// ParseTileType resolves a display name to a type.
func ParseTileType(name string) (TileType, bool) {
	for t := TileType(0); t < tileTypeCount; t++ {
		if properties[t].Name == name {
			return t, true
		}
	}
	return Empty, false
}

// Coord addresses a single grid cell.
type Coord struct {
	X, Y int
}

// Tile is the state of a non-empty grid cell.
type Tile struct {
	Type         TileType
	ResourceCost float64
	Value        int
	Revealed     bool
	Hazard       Hazard
}

// NewTile returns a tile initialised from the static properties of t.
func NewTile(t TileType) Tile {
	p := t.Props()
	return Tile{Type: t, ResourceCost: p.Cost, Value: p.Value}
}
