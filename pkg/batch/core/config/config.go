// Package config loads the application configuration from embedded YAML,
// with environment variable expansion and overrides.
package config

// EmbeddedConfig is the raw YAML configuration embedded in the application
// binary via go:embed.
type EmbeddedConfig []byte

// Config is the root of the configuration tree.
type Config struct {
	Riptide RiptideConfig `yaml:"riptide"`
}

// RiptideConfig groups the framework settings under the `riptide:` key.
type RiptideConfig struct {
	Batch  BatchConfig  `yaml:"batch"`
	System SystemConfig `yaml:"system"`
}

// BatchConfig holds the chunk engine settings.
type BatchConfig struct {
	StepName  string      `yaml:"step_name"`
	ChunkSize int         `yaml:"chunk_size"`
	Retry     RetryConfig `yaml:"retry"`
}

// RetryConfig holds the attempt retry settings.
type RetryConfig struct {
	MaxAttempts     int `yaml:"max_attempts"`
	InitialInterval int `yaml:"initial_interval"` // milliseconds
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NewConfig returns a Config populated with defaults. Loaded values
// overwrite these.
func NewConfig() *Config {
	return &Config{
		Riptide: RiptideConfig{
			Batch: BatchConfig{
				StepName:  "default-step",
				ChunkSize: 10,
				Retry: RetryConfig{
					MaxAttempts:     3,
					InitialInterval: 1000,
				},
			},
			System: SystemConfig{
				Logging: LoggingConfig{
					Level: "INFO",
				},
			},
		},
	}
}
