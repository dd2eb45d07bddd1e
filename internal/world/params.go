package world

// Params controls world dimensions and the depth-scaled generation tables.
// Percent values are on a 0..100 scale.
type Params struct {
	Width          int `yaml:"width"`
	Depth          int `yaml:"depth"`
	SurfaceRow     int `yaml:"surface_row"`
	ElevatorColumn int `yaml:"elevator_column"`
	SpawnColumn    int `yaml:"spawn_column"`
	StoreColumn    int `yaml:"store_column"`
	AssayerColumn  int `yaml:"assayer_column"`
	MedicalColumn  int `yaml:"medical_column"`
	SafeZoneRadius int `yaml:"safe_zone_radius"`

	GoldPercent   float64 `yaml:"gold_percent"`
	SilverPercent float64 `yaml:"silver_percent"`
	CopperPercent float64 `yaml:"copper_percent"`
	IronPercent   float64 `yaml:"iron_percent"`
	OreGrowth     float64 `yaml:"ore_growth"`
	OreCap        float64 `yaml:"ore_cap"`
	ClayPercent   float64 `yaml:"clay_percent"`
	StonePercent  float64 `yaml:"stone_percent"`

	BedrockPercent  float64 `yaml:"bedrock_percent"`
	BedrockMinDepth int     `yaml:"bedrock_min_depth"`

	HazardBase       float64 `yaml:"hazard_base"`
	HazardGrowth     float64 `yaml:"hazard_growth"`
	HazardMax        float64 `yaml:"hazard_max"`
	WaterMinDepth    int     `yaml:"water_min_depth"`
	WaterMaxDepth    int     `yaml:"water_max_depth"`
	CollapseMinDepth int     `yaml:"collapse_min_depth"`
	GasMinDepth      int     `yaml:"gas_min_depth"`

	DiscoveryChance   float64 `yaml:"discovery_chance"`
	DiagonalDiscovery bool    `yaml:"diagonal_discovery"`
}

// DefaultParams returns the standard world layout.
func DefaultParams() Params {
	return Params{
		Width:          40,
		Depth:          200,
		SurfaceRow:     4,
		ElevatorColumn: 20,
		SpawnColumn:    17,
		StoreColumn:    8,
		AssayerColumn:  12,
		MedicalColumn:  30,
		SafeZoneRadius: 2,

		GoldPercent:   0.4,
		SilverPercent: 0.8,
		CopperPercent: 1.6,
		IronPercent:   3.2,
		OreGrowth:     0.0004,
		OreCap:        6,
		ClayPercent:   12,
		StonePercent:  18,

		BedrockPercent:  6,
		BedrockMinDepth: 150,

		HazardBase:       0.01,
		HazardGrowth:     0.0004,
		HazardMax:        0.06,
		WaterMinDepth:    20,
		WaterMaxDepth:    120,
		CollapseMinDepth: 40,
		GasMinDepth:      90,

		DiscoveryChance: 0.2,
	}
}

// Validate clamps inconsistent values so generation always succeeds.
func (p *Params) Validate() {
	def := DefaultParams()
	if p.Width < 5 {
		p.Width = def.Width
	}
	if p.Depth < 1 {
		p.Depth = def.Depth
	}
	if p.SurfaceRow < 0 {
		p.SurfaceRow = def.SurfaceRow
	}
	clampColumn := func(c *int) {
		if *c < 1 {
			*c = 1
		}
		if *c > p.Width-2 {
			*c = p.Width - 2
		}
	}
	clampColumn(&p.ElevatorColumn)
	clampColumn(&p.SpawnColumn)
	clampColumn(&p.StoreColumn)
	clampColumn(&p.AssayerColumn)
	clampColumn(&p.MedicalColumn)
	if p.SafeZoneRadius < 0 {
		p.SafeZoneRadius = 0
	}
	for _, v := range []*float64{&p.GoldPercent, &p.SilverPercent, &p.CopperPercent, &p.IronPercent,
		&p.ClayPercent, &p.StonePercent, &p.BedrockPercent, &p.OreGrowth} {
		if *v < 0 {
			*v = 0
		}
	}
	if p.ClayPercent+p.StonePercent > 100 {
		scale := 100 / (p.ClayPercent + p.StonePercent)
		p.ClayPercent *= scale
		p.StonePercent *= scale
	}
	if p.OreCap < 1 {
		p.OreCap = 1
	}
	if p.HazardMax < p.HazardBase {
		p.HazardMax = p.HazardBase
	}
	if p.WaterMaxDepth < p.WaterMinDepth {
		p.WaterMaxDepth = p.WaterMinDepth
	}
	if p.DiscoveryChance < 0 || p.DiscoveryChance > 1 {
		p.DiscoveryChance = def.DiscoveryChance
	}
}

// Rows returns the total grid height: sky, surface row, ground and the
// bottom border row.
func (p Params) Rows() int { return p.SurfaceRow + p.Depth + 2 }
