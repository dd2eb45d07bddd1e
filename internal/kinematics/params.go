package kinematics

// Params holds the movement constants in world units and seconds.
type Params struct {
	TileSize          float64 `yaml:"tile_size"`
	PlayerHeight      float64 `yaml:"player_height"`
	BoxWidthRatio     float64 `yaml:"box_width_ratio"`
	MoveSpeed         float64 `yaml:"move_speed"`
	Gravity           float64 `yaml:"gravity"`
	MaxFallSpeed      float64 `yaml:"max_fall_speed"`
	AlignSpeed        float64 `yaml:"align_speed"`
	AlignEpsilon      float64 `yaml:"align_epsilon"`
	ElevatorSpeed     float64 `yaml:"elevator_speed"`
	ElevatorProximity float64 `yaml:"elevator_proximity"`
}

// DefaultParams returns the standard movement tuning.
func DefaultParams() Params {
	return Params{
		TileSize:      24,
		PlayerHeight:  20,
		BoxWidthRatio: 0.8,
		MoveSpeed:     120,
		Gravity:       1800,
		MaxFallSpeed:  720,
		AlignSpeed:    300,
		AlignEpsilon:  1,
		ElevatorSpeed: 120,
	}
}

// Validate fills unusable values from the defaults.
func (p *Params) Validate() {
	def := DefaultParams()
	if p.TileSize <= 0 {
		p.TileSize = def.TileSize
	}
	if p.PlayerHeight <= 0 || p.PlayerHeight > p.TileSize {
		p.PlayerHeight = p.TileSize * def.PlayerHeight / def.TileSize
	}
	if p.BoxWidthRatio <= 0 || p.BoxWidthRatio*p.PlayerHeight >= p.TileSize {
		p.BoxWidthRatio = def.BoxWidthRatio
	}
	if p.MoveSpeed <= 0 {
		p.MoveSpeed = def.MoveSpeed
	}
	if p.Gravity <= 0 {
		p.Gravity = def.Gravity
	}
	if p.MaxFallSpeed <= 0 {
		p.MaxFallSpeed = def.MaxFallSpeed
	}
	if p.AlignSpeed <= 0 {
		p.AlignSpeed = def.AlignSpeed
	}
	if p.AlignEpsilon <= 0 {
		p.AlignEpsilon = def.AlignEpsilon
	}
	if p.ElevatorSpeed <= 0 {
		p.ElevatorSpeed = def.ElevatorSpeed
	}
	if p.ElevatorProximity <= 0 || p.ElevatorProximity > p.TileSize/2 {
		p.ElevatorProximity = p.TileSize / 2
	}
}
