package config

import "flag"

// Flags holds command-line overrides registered on a FlagSet.
type Flags struct {
	fs *flag.FlagSet

	Config    string
	Debug     bool
	GRF       string
	Format    string
	Precision int
	Ground    bool
	ReverseY  bool
	AnimTime  float64
}

// RegisterFlags adds the config override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.GRF, "grf", "", "GRF archive to read models from")
	fs.StringVar(&f.Format, "format", "", "Output format: text or yaml")
	fs.IntVar(&f.Precision, "precision", 0, "Decimal places in text output")
	fs.BoolVar(&f.Ground, "ground", false, "Rest the bounding box on Y=0")
	fs.BoolVar(&f.ReverseY, "reverse-y", false, "Flip the bounding box into map space")
	fs.Float64Var(&f.AnimTime, "anim", 0, "Animation time in milliseconds")
	return f
}

// set reports whether the named flag was given on the command line.
func (f *Flags) set(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// apply applies flags given on the command line to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.GRF != "" {
		cfg.Data.GRFPaths = []string{f.GRF}
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.set("precision") {
		cfg.Output.Precision = f.Precision
	}
	if f.set("ground") {
		cfg.Model.GroundAlign = f.Ground
	}
	if f.set("reverse-y") {
		cfg.Model.ReverseY = f.ReverseY
	}
	if f.set("anim") {
		cfg.Model.AnimTimeMs = float32(f.AnimTime)
	}
}
