package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/punchclock",
			SQLiteFile: "punchclock.db",
		},
		Tracking: TrackingConfig{
			InactiveTitles: DefaultInactiveTitles(),
		},
		Display: DisplayConfig{
			Pager:      "",
			TimeFormat: "2006-01-02 15:04",
		},
	}
}
