// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build !darwin

package keychain

import "errors"

var (
	errKeyNotFound = errors.New("key not found")

	// errNoSecurityBinary is returned everywhere off macOS; NewManager then
	// falls through to the keyring library.
	errNoSecurityBinary = errors.New("macOS security binary not available on this platform")
)

// securityBackend is a stub for non-macOS platforms.
type securityBackend struct{}

func newSecurityBackend() (*securityBackend, error) {
	return nil, errNoSecurityBinary
}

func (s *securityBackend) Set(key, value string) error { return errNoSecurityBinary }
func (s *securityBackend) Get(key string) (string, error) { return "", errNoSecurityBinary }
func (s *securityBackend) Delete(key string) error { return errNoSecurityBinary }
