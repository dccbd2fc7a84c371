package config

import (
	"go.uber.org/fx"

	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

// ConfigParams collects the inputs of the config provider.
type ConfigParams struct {
	fx.In

	EmbeddedConfig EmbeddedConfig
	EnvFilePath    string `name:"envFilePath" optional:"true"`
}

// NewConfigProvider loads the configuration and applies the configured log
// level. Intended for fx.Provide.
func NewConfigProvider(p ConfigParams) (*Config, error) {
	cfg, err := LoadConfig(p.EnvFilePath, p.EmbeddedConfig)
	if err != nil {
		return nil, err
	}
	logger.SetLogLevel(cfg.Riptide.System.Logging.Level)
	return cfg, nil
}

// Module provides the loaded configuration. The application supplies the
// EmbeddedConfig (and optionally a named envFilePath).
var Module = fx.Options(
	fx.Provide(NewConfigProvider),
)
