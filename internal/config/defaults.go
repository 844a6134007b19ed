package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:        "http://127.0.0.1:5000",
			WSURL:          "ws://127.0.0.1:5000/ws",
			TimeoutSeconds: 30,
		},
		Memory: MemoryConfig{
			Path: "", // empty resolves to ~/.mitosis/memory.json at startup
		},
		Reports: ReportsConfig{
			Dir: "", // empty resolves to ~/.mitosis/reports at startup
		},
		UI: UIConfig{
			Theme:        "default",
			ScrollSpeed:  3,
			ShowPageMeta: boolPtr(true),
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "", // empty resolves to ~/.mitosis/mitosis.log at startup
		},
		Init: []InitStepConfig{
			{ID: "environment", Title: "Setting up execution environment", DurationMs: 1200},
			{ID: "dependencies", Title: "Installing dependencies", DurationMs: 1800},
			{ID: "agent", Title: "Booting agent runtime", DurationMs: 900},
		},
	}
}
