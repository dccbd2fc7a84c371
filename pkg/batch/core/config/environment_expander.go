package config

import "os"

// EnvironmentExpander expands environment variable references in raw
// configuration content before it is parsed.
type EnvironmentExpander interface {
	Expand(content []byte) []byte
}

// OsEnvironmentExpander expands ${VAR} and $VAR references from the process
// environment. Unset variables expand to the empty string.
type OsEnvironmentExpander struct{}

// NewOsEnvironmentExpander creates a new OsEnvironmentExpander.
func NewOsEnvironmentExpander() *OsEnvironmentExpander {
	return &OsEnvironmentExpander{}
}

// Expand replaces environment variable references in content.
func (e *OsEnvironmentExpander) Expand(content []byte) []byte {
	return []byte(os.ExpandEnv(string(content)))
}
