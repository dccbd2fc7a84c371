package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/riptidekit/riptide/pkg/batch/support/util/exception"
	"github.com/riptidekit/riptide/pkg/batch/support/util/logger"
)

const moduleConfig = "config"

// envBindings maps process environment variables to configuration paths
// (yaml tag names, dot-separated). Values found in the environment override
// both defaults and the embedded YAML.
var envBindings = map[string]string{
	"RIPTIDE_BATCH_STEP_NAME":              "batch.step_name",
	"RIPTIDE_BATCH_CHUNK_SIZE":             "batch.chunk_size",
	"RIPTIDE_BATCH_RETRY_MAX_ATTEMPTS":     "batch.retry.max_attempts",
	"RIPTIDE_BATCH_RETRY_INITIAL_INTERVAL": "batch.retry.initial_interval",
	"RIPTIDE_SYSTEM_LOGGING_LEVEL":         "system.logging.level",
}

// LoadConfig builds the configuration: defaults, then the embedded YAML
// (after environment expansion), then environment variable overrides.
// envFilePath optionally names a .env file loaded into the process
// environment first; a missing file is not an error.
func LoadConfig(envFilePath string, embedded EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			if os.IsNotExist(err) {
				logger.Debugf("No .env file at '%s'; continuing with process environment.", envFilePath)
			} else {
				return nil, exception.NewBatchError(moduleConfig, "failed to load .env file", err)
			}
		}
	}

	cfg := NewConfig()

	if len(embedded) > 0 {
		expanded := NewOsEnvironmentExpander().Expand(embedded)
		if err := yaml.Unmarshal(expanded, cfg); err != nil {
			return nil, exception.NewBatchError(moduleConfig, "failed to parse embedded YAML configuration", err)
		}
	}

	if err := applyEnvOverrides(&cfg.Riptide); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides decodes bound environment variables into the config
// tree. Decoding is weakly typed, so numeric values arrive as strings.
func applyEnvOverrides(target *RiptideConfig) error {
	overrides := make(map[string]interface{})
	for envVar, path := range envBindings {
		value, ok := os.LookupEnv(envVar)
		if !ok {
			continue
		}
		setPath(overrides, strings.Split(path, "."), value)
	}
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return exception.NewBatchError(moduleConfig, "failed to create config decoder", err)
	}
	if err := decoder.Decode(overrides); err != nil {
		return exception.NewBatchError(moduleConfig, "failed to apply environment overrides", err)
	}
	return nil
}

// setPath writes value into the nested map at the given key path.
func setPath(m map[string]interface{}, path []string, value string) {
	if len(path) == 1 {
		m[path[0]] = value
		return
	}
	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		child = make(map[string]interface{})
		m[path[0]] = child
	}
	setPath(child, path[1:], value)
}
