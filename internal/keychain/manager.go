// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides the OS-keyring implementation of session.Store.
//
// Session record entries are stored as individual secrets under the
// "coursemate" service name. macOS uses the native security binary first and
// falls back to the keyring library; Windows uses Credential Manager; Linux
// tries Secret Service, KWallet and pass before an encrypted file in the XDG
// state directory.
package keychain

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"coursemate/cli/internal/logging"
	"coursemate/cli/internal/session"
	"coursemate/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "coursemate"

// Options tunes how the keyring is opened.
type Options struct {
	// FileDir overrides the directory of the encrypted file backend.
	// Defaults to the XDG state dir.
	FileDir string
	// FilePassphrase unlocks the encrypted file backend.
	FilePassphrase string
	// AllowFile enables the encrypted file backend as a last resort.
	AllowFile bool
}

// Manager provides thread-safe access to the OS keychain.
type Manager struct {
	mu      sync.RWMutex
	ring    keyring.Keyring
	backend keychainBackend
}

// keychainBackend defines the interface for native keychain operations.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

var _ session.Store = (*Manager)(nil)

// NewManager opens the OS keyring.
func NewManager(opts Options) (*Manager, error) {
	// Try native security backend first on macOS
	if runtime.GOOS == "darwin" {
		backend, err := newSecurityBackend()
		if err == nil {
			return &Manager{backend: backend}, nil
		}
		logging.Debug().Err(err).Msg("native security backend unavailable, using keyring")
	}

	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewWithRing wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// allowedBackends returns the keyring backends tried on this OS, in order.
func allowedBackends(goos string, allowFile bool) []keyring.BackendType {
	var backends []keyring.BackendType
	switch goos {
	case "darwin":
		backends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		backends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		backends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
		}
	}
	if allowFile {
		backends = append(backends, keyring.FileBackend)
	}
	return backends
}

// openRing opens the OS keyring restricted to the backends for this platform.
func openRing(opts Options) (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: allowedBackends(runtime.GOOS, opts.AllowFile),
		PassPrefix:      ServiceName,
	}

	// Hint prefixes where supported to minimize namespace collisions
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}

	if opts.AllowFile {
		dir := opts.FileDir
		if dir == "" {
			stateDir, err := xdg.StateDir()
			if err != nil {
				return nil, fmt.Errorf("resolve keyring file dir: %w", err)
			}
			dir = stateDir
		}
		cfg.FileDir = dir
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(opts.FilePassphrase)
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. On macOS 26.0+, install 'pass': brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

// Get returns the value stored under key, or session.ErrNotFound.
// This method is thread-safe.
func (m *Manager) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.backend != nil {
		v, err := m.backend.Get(key)
		if err != nil {
			if errors.Is(err, errKeyNotFound) {
				return "", session.ErrNotFound
			}
			return "", err
		}
		return v, nil
	}

	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", session.ErrNotFound
		}
		return "", err
	}
	return string(it.Data), nil
}

// Set stores value under key.
// This method is thread-safe.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Set(key, value)
	}
	return m.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: ServiceName + " " + key,
	})
}

// Remove deletes key. Removing an absent key is not an error.
// This method is thread-safe.
func (m *Manager) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backend != nil {
		return m.backend.Delete(key)
	}
	if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
