// Package kinematics resolves player movement against the tile grid each
// tick: walking, auto-mining on contact, column alignment before digging
// down, gravity and fall damage, and riding the elevator shaft.
package kinematics

import (
	"fmt"
	"math"

	"deep-miner/internal/core"
	"deep-miner/internal/event"
	"deep-miner/internal/feedback"
	"deep-miner/internal/ledger"
	"deep-miner/internal/world"
)

const eps = 1e-6

// State is the movement state of the player.
type State uint8

const (
	OnSurface State = iota
	Grounded
	Falling
	AligningToColumn
	InElevatorShaft
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case OnSurface:
		return "on surface"
	case Grounded:
		return "grounded"
	case Falling:
		return "falling"
	case AligningToColumn:
		return "aligning"
	case InElevatorShaft:
		return "elevator"
	default:
		return "unknown"
	}
}

// Input is the per-tick snapshot of held controls.
type Input struct {
	Left, Right, Up, Down bool
	Interact              bool
}

func (in Input) dir() int {
	d := 0
	if in.Left {
		d--
	}
	if in.Right {
		d++
	}
	return d
}

// Player is the kinematic state. X is the horizontal centre of the collision
// box and Y the bottom edge (feet), both in world units.
type Player struct {
	X, Y        float64
	VX, VY      float64
	State       State
	Depth       int
	Underground bool
	FallStartY  float64
	AlignX      float64
	Facing      int
}

// Engine owns the player and mutates the grid and ledger it was given.
type Engine struct {
	params Params
	layout world.Params

	grid   *world.Grid
	ledger *ledger.Ledger
	board  *feedback.Board
	events *event.Dispatcher
	rng    core.Source

	p         Player
	cell      world.Coord
	hasCell   bool
	lastBlock blockKey
	atLimit   bool
}

// NewEngine creates an engine with the player standing at the spawn point.
func NewEngine(params Params, layout world.Params, grid *world.Grid, l *ledger.Ledger,
	board *feedback.Board, events *event.Dispatcher, rng core.Source) *Engine {
	params.Validate()
	layout.Validate()
	if events == nil {
		events = event.NewDispatcher()
	}
	if board == nil {
		board = feedback.NewBoard(feedback.DefaultDurations())
	}
	e := &Engine{
		params: params,
		layout: layout,
		grid:   grid,
		ledger: l,
		board:  board,
		events: events,
		rng:    rng,
	}
	e.Respawn()
	return e
}

// Params returns the movement constants.
func (e *Engine) Params() Params { return e.params }

// Player returns a copy of the player state.
func (e *Engine) Player() Player { return e.p }

// SetGrid swaps the grid the engine collides against.
func (e *Engine) SetGrid(g *world.Grid) {
	e.grid = g
	e.hasCell = false
}

// SetPlayer replaces the player state, clamping it to the world and
// recomputing the derived depth.
func (e *Engine) SetPlayer(p Player) {
	e.p = p
	e.clamp()
	if e.p.State == AligningToColumn {
		e.p.State = Grounded
	}
	e.recompute()
}

// SurfaceY is the feet position of a player standing on the surface.
func (e *Engine) SurfaceY() float64 {
	return float64(e.layout.SurfaceRow+1) * e.params.TileSize
}

// Respawn moves the player to the fixed spawn point on the surface.
func (e *Engine) Respawn() {
	e.p = Player{
		X:      (float64(e.layout.SpawnColumn) + 0.5) * e.params.TileSize,
		Y:      e.SurfaceY(),
		State:  OnSurface,
		Facing: 1,
	}
	e.hasCell = false
	e.lastBlock = blockKey{}
	e.recompute()
}

// CellRow returns the row containing the player's feet.
func (e *Engine) CellRow(y float64) int {
	return int(math.Floor((y - eps) / e.params.TileSize))
}

// Cell returns the grid cell the player occupies.
func (e *Engine) Cell() world.Coord {
	return world.Coord{X: e.column(e.p.X), Y: e.CellRow(e.p.Y)}
}

// OccupiedCells lists every cell overlapped by the collision box.
func (e *Engine) OccupiedCells() []world.Coord {
	c0, c1 := e.colRange(e.p.X)
	r0, r1 := e.rowRange(e.p.Y)
	var out []world.Coord
	for y := r0; y <= r1; y++ {
		for x := c0; x <= c1; x++ {
			out = append(out, world.Coord{X: x, Y: y})
		}
	}
	return out
}

// AtElevator reports whether the player is within reach of the shaft column.
func (e *Engine) AtElevator() bool {
	center := (float64(e.layout.ElevatorColumn) + 0.5) * e.params.TileSize
	return math.Abs(e.p.X-center) <= e.params.ElevatorProximity
}

// Update advances the player by dt seconds: horizontal resolution, vertical
// resolution, derived state, timers and finally the world clamp.
func (e *Engine) Update(dt float64, in Input) {
	if dt <= 0 {
		return
	}
	aligned := false

	if e.p.State != InElevatorShaft && e.AtElevator() &&
		(e.p.Underground || (e.p.State == OnSurface && in.Down && in.dir() == 0)) {
		e.enterShaft()
	}

	switch e.p.State {
	case Falling:
		e.moveFalling(dt)
	case AligningToColumn:
		aligned = e.align(dt, in)
		if e.p.State != AligningToColumn && !aligned {
			e.walk(dt, in)
		}
	case InElevatorShaft:
		if in.dir() != 0 {
			e.snapToRow()
		}
		e.walk(dt, in)
		if !e.AtElevator() {
			e.p.State = Grounded
		}
	default:
		e.walk(dt, in)
	}

	switch e.p.State {
	case InElevatorShaft:
		e.ride(dt, in)
	case Falling:
		e.fall(dt)
	case AligningToColumn:
	default:
		e.settle(in, aligned)
	}

	e.recompute()
	e.board.Tick(dt)
	e.ledger.AddPlayTime(dt)
	e.clamp()
}

func (e *Engine) enterShaft() {
	e.p.State = InElevatorShaft
	e.p.X = (float64(e.layout.ElevatorColumn) + 0.5) * e.params.TileSize
	e.p.VX, e.p.VY = 0, 0
	e.atLimit = false
}

// walk handles horizontal intent for every grounded-like state.
func (e *Engine) walk(dt float64, in Input) {
	dir := in.dir()
	if dir == 0 {
		e.p.VX = 0
		return
	}
	e.p.Facing = dir
	e.p.VX = float64(dir) * e.params.MoveSpeed
	e.moveHorizontal(e.p.VX*dt, true)
}

// moveFalling keeps the velocity frozen from before the fall and never mines.
func (e *Engine) moveFalling(dt float64) {
	if e.p.VX == 0 {
		return
	}
	e.moveHorizontal(e.p.VX*dt, false)
}

// moveHorizontal tries to shift X by dx. Tiles on the leading edge block the
// move; when mining is allowed they are dug out and the move is cancelled for
// this tick, otherwise the player stops flush against the wall.
func (e *Engine) moveHorizontal(dx float64, canMine bool) {
	if dx == 0 {
		return
	}
	T := e.params.TileSize
	hw := e.halfWidth()
	cand := e.p.X + dx
	var lead int
	if dx > 0 {
		lead = int(math.Floor((cand + hw - eps) / T))
	} else {
		lead = int(math.Floor((cand - hw) / T))
	}
	r0, r1 := e.rowRange(e.p.Y)
	var blocking []world.Coord
	for y := r0; y <= r1; y++ {
		if e.grid.Solid(lead, y) {
			blocking = append(blocking, world.Coord{X: lead, Y: y})
		}
	}
	if len(blocking) == 0 {
		e.p.X = cand
		return
	}
	if canMine {
		mined := false
		for _, c := range blocking {
			if !e.AttemptMine(c.X, c.Y).Mined {
				break
			}
			mined = true
		}
		if mined {
			return
		}
	}
	if dx > 0 {
		e.p.X = math.Max(e.p.X, float64(lead)*T-hw)
	} else {
		e.p.X = math.Min(e.p.X, float64(lead+1)*T+hw)
	}
	if !canMine {
		e.p.VX = 0
	}
}

// align slides toward the column centre chosen when the dig started. It
// returns true on the tick the target is reached.
func (e *Engine) align(dt float64, in Input) bool {
	if !in.Down || in.dir() != 0 {
		e.p.State = Grounded
		return false
	}
	diff := e.p.AlignX - e.p.X
	step := e.params.AlignSpeed * dt
	if math.Abs(diff) <= math.Max(step, e.params.AlignEpsilon) {
		e.p.X = e.p.AlignX
		e.p.VX = 0
		e.p.State = Grounded
		return true
	}
	if diff > 0 {
		e.p.VX = e.params.AlignSpeed
		e.p.X += step
	} else {
		e.p.VX = -e.params.AlignSpeed
		e.p.X -= step
	}
	return false
}

// settle resolves the vertical phase for a player that is not falling or
// riding: digging down, starting to align, or starting to fall.
func (e *Engine) settle(in Input, justAligned bool) {
	if in.Down && in.dir() == 0 && e.supported() {
		T := e.params.TileSize
		col := e.column(e.p.X)
		center := (float64(col) + 0.5) * T
		if !justAligned && math.Abs(e.p.X-center) > e.params.AlignEpsilon {
			e.p.State = AligningToColumn
			e.p.AlignX = center
			return
		}
		e.p.X = center
		below := int(math.Round(e.p.Y / T))
		if e.grid.Solid(col, below) {
			e.AttemptMine(col, below)
		}
	}
	if e.supported() {
		e.p.VY = 0
		return
	}
	e.p.State = Falling
	e.p.FallStartY = e.p.Y
	e.p.VY = 0
}

// fall integrates gravity in sub-steps no longer than a quarter tile so the
// player cannot tunnel through a floor.
func (e *Engine) fall(dt float64) {
	T := e.params.TileSize
	e.p.VY = math.Min(e.p.VY+e.params.Gravity*dt, e.params.MaxFallSpeed)
	remaining := e.p.VY * dt
	maxStep := T / 4
	for remaining > 0 {
		step := math.Min(remaining, maxStep)
		remaining -= step
		next := e.p.Y + step
		k := int(math.Floor((next + eps) / T))
		boundary := float64(k) * T
		if boundary > e.p.Y+eps && boundary <= next+eps && e.rowSupports(k) {
			e.p.Y = boundary
			e.land()
			return
		}
		e.p.Y = next
	}
}

func (e *Engine) land() {
	cells := int(math.Floor((e.p.Y-e.p.FallStartY)/e.params.TileSize + eps))
	e.p.VX, e.p.VY = 0, 0
	e.p.State = Grounded
	e.board.Flash(impactFor(cells))
	damage := FallDamage(cells, e.ledger.MaxHealth())
	landed := LandedEvent{Cells: cells}
	if damage > 0 {
		dealt, died := e.ledger.TakeDamage(damage)
		landed.Damage, landed.Died = dealt, died
		if died {
			e.events.Dispatch(event.Event{Type: event.PlayerLanded, Data: landed})
			e.Die(fmt.Sprintf("You fell %d blocks and died!", cells))
			return
		}
		e.board.Post(fmt.Sprintf("Hard landing! -%d HP", dealt), feedback.Regular, feedback.ColorWarning, e.board.Durations().Regular)
	}
	e.events.Dispatch(event.Event{Type: event.PlayerLanded, Data: landed})
}

// Die completes a death transition the ledger already applied: it posts the
// death notice and moves the player back to the spawn point.
func (e *Engine) Die(reason string) {
	pct := int(math.Round(e.ledger.Params().DeathPenalty * 100))
	e.board.Post(fmt.Sprintf("%s Lost %d%% of your cash and ore.", reason, pct),
		feedback.Death, feedback.ColorDeath, e.board.Durations().Death)
	e.events.Dispatch(event.Event{Type: event.PlayerDied, Data: reason})
	e.Respawn()
}

// ride moves the player along the shaft, bounded by the surface and the
// deepest licensed (and generated) depth.
func (e *Engine) ride(dt float64, in Input) {
	T := e.params.TileSize
	top := e.SurfaceY()
	maxDepth := min(e.ledger.MaxDepth(), e.layout.Depth)
	bottom := top + float64(maxDepth)*T
	e.p.VY = 0
	switch {
	case in.Up && !in.Down:
		e.p.Y = math.Max(top, e.p.Y-e.params.ElevatorSpeed*dt)
		e.p.VY = -e.params.ElevatorSpeed
		e.atLimit = false
	case in.Down && !in.Up:
		if e.p.Y >= bottom-eps {
			if !e.atLimit && maxDepth < e.layout.Depth {
				e.board.Post(fmt.Sprintf("The elevator stops at depth %d. Buy a licence to go deeper.", maxDepth),
					feedback.Regular, feedback.ColorWarning, e.board.Durations().DepthLimit)
			}
			e.atLimit = true
		}
		e.p.Y = math.Min(bottom, e.p.Y+e.params.ElevatorSpeed*dt)
		e.p.VY = e.params.ElevatorSpeed
	}
	if e.p.Y <= top+eps {
		e.p.Y = top
		if !in.Down {
			e.p.State = OnSurface
		}
	}
}

func (e *Engine) snapToRow() {
	T := e.params.TileSize
	top := e.SurfaceY()
	e.p.Y = top + math.Round((e.p.Y-top)/T)*T
}

// recompute derives depth from Y, reveals the occupied cell and rolls
// discovery when the player enters a new cell.
func (e *Engine) recompute() {
	e.p.Depth = max(0, e.CellRow(e.p.Y)-e.layout.SurfaceRow)
	e.p.Underground = e.p.Depth > 0
	if e.p.State == Grounded && !e.p.Underground {
		e.p.State = OnSurface
	} else if e.p.State == OnSurface && e.p.Underground {
		e.p.State = Grounded
	}
	e.ledger.RecordDepth(e.p.Depth)
	if e.grid == nil {
		return
	}
	c := e.Cell()
	e.grid.Reveal(c.X, c.Y)
	if !e.hasCell || c != e.cell {
		e.cell = c
		e.hasCell = true
		e.grid.DetectAdjacent(c.X, c.Y)
	}
}

func (e *Engine) clamp() {
	T := e.params.TileSize
	hw := e.halfWidth()
	maxX := float64(e.layout.Width)*T - hw
	e.p.X = math.Max(hw, math.Min(maxX, e.p.X))
	maxY := float64(e.layout.Rows()-1) * T
	e.p.Y = math.Max(e.SurfaceY(), math.Min(maxY, e.p.Y))
}

// supported reports whether the player stands exactly on a row boundary with
// solid ground under the box.
func (e *Engine) supported() bool {
	T := e.params.TileSize
	k := math.Round(e.p.Y / T)
	if math.Abs(e.p.Y-k*T) > eps {
		return false
	}
	return e.rowSupports(int(k))
}

// rowSupports reports whether row y holds ground under the box. The top of
// the elevator shaft acts as a platform on the surface.
func (e *Engine) rowSupports(y int) bool {
	c0, c1 := e.colRange(e.p.X)
	for x := c0; x <= c1; x++ {
		if e.grid.Solid(x, y) {
			return true
		}
		if y == e.layout.SurfaceRow+1 {
			if t, ok := e.grid.Tile(x, y); ok && t.Type == world.Elevator {
				return true
			}
		}
	}
	return false
}

func (e *Engine) halfWidth() float64 {
	return e.params.BoxWidthRatio * e.params.PlayerHeight / 2
}

func (e *Engine) column(x float64) int {
	return int(math.Floor(x / e.params.TileSize))
}

func (e *Engine) colRange(x float64) (int, int) {
	T := e.params.TileSize
	hw := e.halfWidth()
	return int(math.Floor((x - hw) / T)), int(math.Floor((x + hw - eps) / T))
}

func (e *Engine) rowRange(y float64) (int, int) {
	T := e.params.TileSize
	return int(math.Floor((y - e.params.PlayerHeight) / T)), int(math.Floor((y - eps) / T))
}
