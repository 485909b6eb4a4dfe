package config

const (
	defaultStateDir      = "~/.local/share/playhead/state"
	defaultLogDir        = "~/.local/share/playhead/logs"
	defaultStateBackend  = "sqlite"
	defaultCapacity      = 50
	defaultListLimit     = 20
	defaultRetentionDays = 0
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		State: State{
			Backend: defaultStateBackend,
		},
		Progress: Progress{
			Capacity:      defaultCapacity,
			ListLimit:     defaultListLimit,
			RetentionDays: defaultRetentionDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
