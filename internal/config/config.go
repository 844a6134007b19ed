package config

type Config struct {
	Backend BackendConfig    `yaml:"backend"`
	Memory  MemoryConfig     `yaml:"memory"`
	Reports ReportsConfig    `yaml:"reports"`
	UI      UIConfig         `yaml:"ui"`
	Logging LoggingConfig    `yaml:"logging"`
	Init    []InitStepConfig `yaml:"init_steps"`
}

type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	WSURL          string `yaml:"ws_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type MemoryConfig struct {
	Path string `yaml:"path"`
}

type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

type UIConfig struct {
	Theme        string `yaml:"theme"`
	ScrollSpeed  int    `yaml:"scroll_speed"`
	ShowPageMeta *bool  `yaml:"show_page_meta"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// InitStepConfig describes one step of the boot script shown before the
// monitor goes online.
type InitStepConfig struct {
	ID         string `yaml:"id"`
	Title      string `yaml:"title"`
	DurationMs int    `yaml:"duration_ms"`
}
