package core

// Size describes the dimensions of a grid in cells.
type Size struct {
	W int
	H int
}

// Rect is a cell-aligned window into the world.
type Rect struct {
	X, Y int
	Size
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}
