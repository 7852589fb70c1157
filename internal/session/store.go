// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session models the locally persisted session record of the signed-in
// student and the storage port it lives behind.
//
// The record is a flat set of string keys. Presence of student_id is the only
// signal that a student is signed in; nothing is verified against a server.
package session

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Get when the key is absent.
var ErrNotFound = errors.New("key not found")

// Store is the persistent key-value capability the client depends on.
// Implementations must return ErrNotFound (possibly wrapped) for absent keys
// and must treat Remove of an absent key as success.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryStore is an in-process Store. The zero value is ready to use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore returns a MemoryStore pre-populated with the given entries.
func NewMemoryStore(entries map[string]string) *MemoryStore {
	m := &MemoryStore{data: make(map[string]string, len(entries))}
	for k, v := range entries {
		m.data[k] = v
	}
	return m
}

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string]string)
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len reports the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
