package config

import "flag"

var flags = flag.NewFlagSet("trackgen", flag.ContinueOnError)

var (
	flagConfig = flags.String("config", "", "Path to config file")
	flagDebug  = flags.Bool("debug", false, "Enable debug logging")
	flagPoints = flags.Int("points", 0, "Number of track points")
	flagSeed   = flags.Uint64("seed", 0, "Random seed (0 keeps the configured seed)")
	flagWidth  = flags.Float64("width", 0, "Path width")
	flagOut    = flags.String("out", "", "Output file (default stdout)")
	flagFormat = flags.String("format", "", "Output format: obj, pb or yaml")
)

// ParseFlags parses command-line flags and returns the remaining arguments.
func ParseFlags(args []string) ([]string, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return flags.Args(), nil
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPoints > 0 {
		cfg.Track.PointCount = *flagPoints
	}
	if *flagSeed != 0 {
		cfg.Track.Seed = *flagSeed
	}
	if *flagWidth > 0 {
		cfg.Track.PathWidth = float32(*flagWidth)
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
}
