// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"errors"
	"testing"

	apperrors "coursemate/cli/internal/errors"
)

// brokenStore fails every operation with a non-NotFound error.
type brokenStore struct{}

func (brokenStore) Get(string) (string, error) { return "", errors.New("keyring locked") }
func (brokenStore) Set(string, string) error   { return errors.New("keyring locked") }
func (brokenStore) Remove(string) error        { return errors.New("keyring locked") }

func TestCachedProfileDefaults(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		id      string
		want    Profile
	}{
		{
			name:    "empty store",
			entries: nil,
			id:      "7",
			want:    Profile{ID: "7", Name: "Student", Major: "Computer Science", GPA: "3.5", Level: "3", Source: SourceCache},
		},
		{
			name:    "name only",
			entries: map[string]string{KeyStudentID: "42", KeyName: "Aia"},
			id:      "42",
			want:    Profile{ID: "42", Name: "Aia", Major: "Computer Science", GPA: "3.5", Level: "3", Source: SourceCache},
		},
		{
			name: "full record",
			entries: map[string]string{
				KeyStudentID: "42", KeyName: "Aia", KeyMajor: "Mathematics", KeyGPA: "3.9", KeyLevel: "5",
			},
			id:   "42",
			want: Profile{ID: "42", Name: "Aia", Major: "Mathematics", GPA: "3.9", Level: "5", Source: SourceCache},
		},
		{
			name:    "empty string counts as absent",
			entries: map[string]string{KeyName: "", KeyGPA: ""},
			id:      "1",
			want:    Profile{ID: "1", Name: "Student", Major: "Computer Science", GPA: "3.5", Level: "3", Source: SourceCache},
		},
		{
			name:    "id argument wins over stored id",
			entries: map[string]string{KeyStudentID: "99"},
			id:      "1",
			want:    Profile{ID: "1", Name: "Student", Major: "Computer Science", GPA: "3.5", Level: "3", Source: SourceCache},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(NewMemoryStore(tt.entries))
			if got := s.CachedProfile(tt.id, SourceCache); got != tt.want {
				t.Errorf("CachedProfile() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStudentID(t *testing.T) {
	if got := New(NewMemoryStore(nil)).StudentID(); got != "" {
		t.Errorf("StudentID() on empty store = %q", got)
	}
	if got := New(NewMemoryStore(map[string]string{KeyStudentID: "42"})).StudentID(); got != "42" {
		t.Errorf("StudentID() = %q, want 42", got)
	}
	if got := New(brokenStore{}).StudentID(); got != "" {
		t.Errorf("StudentID() on broken store = %q, want empty", got)
	}
}

func TestClearRemovesEveryKey(t *testing.T) {
	store := NewMemoryStore(map[string]string{
		KeyStudentID: "42", KeyName: "Aia", KeyMajor: "CS", KeyGPA: "3.1", KeyLevel: "4",
		"theme": "dark",
	})
	s := New(store)

	for i := 0; i < 2; i++ {
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear() #%d error = %v", i+1, err)
		}
		for _, key := range Keys {
			if _, err := store.Get(key); !errors.Is(err, ErrNotFound) {
				t.Errorf("after Clear() #%d key %q still present", i+1, key)
			}
		}
	}
	if v, err := store.Get("theme"); err != nil || v != "dark" {
		t.Errorf("unrelated key touched: %q, %v", v, err)
	}
}

func TestClearReportsStoreFailures(t *testing.T) {
	err := New(brokenStore{}).Clear()
	if !apperrors.Is(err, apperrors.StoreFailed) {
		t.Errorf("Clear() error = %v, want store_failed", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	store := NewMemoryStore(map[string]string{KeyMajor: "stale"})
	s := New(store)

	rec := Record{StudentID: "42", Name: "Aia", GPA: "3.5", Level: "3"}
	if err := s.Save(rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := s.Record(); got != rec {
		t.Errorf("Record() = %+v, want %+v", got, rec)
	}
	if !s.Record().LoggedIn() {
		t.Errorf("LoggedIn() = false after Save")
	}
}
