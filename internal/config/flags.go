package config

import "github.com/spf13/pflag"

const (
	FlagConfig  = "config"
	FlagDebug   = "debug"
	FlagLogFile = "log-file"
)

// RegisterFlags adds the global configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "Path to config file (.yaml or .toml)")
	fs.Bool(FlagDebug, false, "Enable debug logging")
	fs.String(FlagLogFile, "", "Also write logs to this file")
}

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath(fs *pflag.FlagSet) string {
	if fs == nil {
		return ""
	}
	path, _ := fs.GetString(FlagConfig)
	return path
}

// applyFlags applies CLI flag overrides to the config.
// Only flags the user actually set override file values.
func applyFlags(cfg *Config, fs *pflag.FlagSet) {
	if fs == nil {
		return
	}
	if fs.Changed(FlagDebug) {
		if debug, _ := fs.GetBool(FlagDebug); debug {
			cfg.Logging.Level = "debug"
		}
	}
	if fs.Changed(FlagLogFile) {
		cfg.Logging.LogFile, _ = fs.GetString(FlagLogFile)
	}
}
