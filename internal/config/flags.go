package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile   = flag.String("log-file", "", "Write a rotating JSON log to this path")
	flagOutput    = flag.String("o", "", "Output terrain file")
	flagNoRemap   = flag.Bool("no-remap", false, "Write samples as-is instead of remapping the input range")
	flagInRange   = flag.String("in-range", "", "Remap input range as low,high (default 0,200)")
	flagAutoRange = flag.Bool("auto-range", false, "Use the height field's min/max as the input range")
	flagField     = flag.String("field", "", "Name of the volume to export (default height)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagOutput != "" {
		cfg.Export.File = *flagOutput
	}
	if *flagNoRemap {
		cfg.Export.Remap = false
	}
	if *flagInRange != "" {
		if err := cfg.Export.InRange.UnmarshalText([]byte(*flagInRange)); err != nil {
			return err
		}
	}
	if *flagAutoRange {
		cfg.Export.AutoRange = true
	}
	if *flagField != "" {
		cfg.Export.Field = *flagField
	}
	return nil
}
