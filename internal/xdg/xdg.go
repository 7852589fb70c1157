// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package xdg resolves XDG Base Directory paths for coursemate.
// The config dir holds config.yaml; the state dir holds the encrypted keyring
// file used when no OS keyring is available.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "coursemate"

// ConfigDir returns the XDG config directory for coursemate.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/coursemate when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for coursemate.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/coursemate when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(envVar, homeRel string) (string, error) {
	base := os.Getenv(envVar)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
