// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"coursemate/cli/internal/logging"
	"coursemate/cli/internal/xdg"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "COURSEMATE_"

// envMappings maps lower-cased variable names (prefix stripped) to koanf paths.
// Explicit because several config keys contain underscores.
var envMappings = map[string]string{
	"login_url":            "login.base_url",
	"login_path":           "login.path",
	"login_probe_password": "login.probe_password",
	"recommend_url":        "recommend.base_url",
	"recommend_path":       "recommend.path",
	"login_page":           "navigation.login_page",
	"logout_delay":         "navigation.logout_delay",
	"open_browser":         "navigation.open_browser",
	"http_timeout":         "http.timeout",
	"command_timeout":      "http.command_timeout",
	"user_agent":           "http.user_agent",
	"store":                "store.backend",
	"store_allow_file":     "store.allow_file",
	"store_file_dir":       "store.file_dir",
	"store_passphrase":     "store.file_passphrase",
	"log_level":            "logging.level",
	"log_format":           "logging.format",
}

// envTransformFunc maps COURSEMATE_LOGIN_URL to login.base_url.
// Unknown variables map to "" and are ignored by koanf.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envMappings[key]
}

// DefaultPath returns $XDG_CONFIG_HOME/coursemate/config.yaml.
func DefaultPath() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load builds the configuration. An explicit path must exist; the default
// path is optional.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			logging.Debug().Err(err).Msg("no XDG config dir; using defaults")
		} else if _, statErr := os.Stat(p); statErr == nil {
			path = p
		}
	} else if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		logging.Debug().Str("path", path).Msg("loaded config file")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Dump renders cfg as YAML with secrets masked.
func Dump(cfg *Config) ([]byte, error) {
	masked := *cfg
	if masked.Login.ProbePassword != "" {
		masked.Login.ProbePassword = "***"
	}
	if masked.Store.FilePassphrase != "" {
		masked.Store.FilePassphrase = "***"
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(masked, "koanf"), nil); err != nil {
		return nil, err
	}
	return k.Marshal(yaml.Parser())
}
