// Package config loads aggregator settings and dynamic-adapter bindings from
// a file. Bindings are the externally configured (kind name, method name)
// pairs the dynamic adapter resolves at subscribe time.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/next-trace/scg-event-aggregator/adapter"
)

// Config holds runtime parameters for a session.
// Zero values mean "unspecified" and fall back to defaults in the caller.
type Config struct {
	LogLevel string            `json:"log_level" yaml:"log_level" toml:"log_level"`
	Metrics  bool              `json:"metrics" yaml:"metrics" toml:"metrics"`
	Bindings []adapter.Binding `json:"bindings" yaml:"bindings" toml:"bindings"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}

	return cfg, nil
}
