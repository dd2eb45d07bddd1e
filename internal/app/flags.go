package app

import (
	"flag"
	"strings"
	"time"

	"deep-miner/internal/config"
)

// Flags holds the command-line parameters shared by every frontend.
type Flags struct {
	Config      string
	Seed        int64
	Scale       int
	ViewRows    int
	TPS         int
	SaveDir     string
	SaveBackend string
	SaveCodec   string
	Fresh       bool
	Overrides   kvList
}

// NewFlags returns Flags populated with sensible defaults.
func NewFlags() *Flags {
	return &Flags{Scale: 24, ViewRows: 24, TPS: 60}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", f.Config, "YAML tuning file")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "world seed (0 picks one from the clock)")
	fs.IntVar(&f.Scale, "scale", f.Scale, "screen pixels per tile")
	fs.IntVar(&f.ViewRows, "rows", f.ViewRows, "visible rows of the world")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
	fs.StringVar(&f.SaveDir, "save-dir", f.SaveDir, "directory for save files")
	fs.StringVar(&f.SaveBackend, "save-backend", f.SaveBackend, "save backend: file, sqlite or memory")
	fs.StringVar(&f.SaveCodec, "save-codec", f.SaveCodec, "save codec: json or msgpack")
	fs.BoolVar(&f.Fresh, "fresh", f.Fresh, "ignore any existing save")
	fs.Var(&f.Overrides, "set", "parameter override in key=value form (repeatable)")
}

// Resolve builds the game configuration: the tuning file or defaults, then
// -set overrides, then the dedicated flags.
func (f *Flags) Resolve() (config.Config, error) {
	cfg := config.DefaultConfig()
	if f.Config != "" {
		loaded, err := config.Load(f.Config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	kv, err := config.ParsePairs(f.Overrides)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Apply(kv); err != nil {
		return cfg, err
	}
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if f.SaveDir != "" {
		cfg.Save.Dir = f.SaveDir
	}
	if f.SaveBackend != "" {
		cfg.Save.Backend = f.SaveBackend
	}
	if f.SaveCodec != "" {
		cfg.Save.Codec = f.SaveCodec
	}
	cfg.Validate()
	return cfg, nil
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
