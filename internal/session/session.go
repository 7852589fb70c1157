// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"errors"

	apperrors "coursemate/cli/internal/errors"
	"coursemate/cli/internal/logging"
)

// Session reads and writes the session record through a Store.
type Session struct {
	store Store
}

// New wraps store.
func New(store Store) *Session {
	return &Session{store: store}
}

// get returns the value for key, or "" when absent or unreadable.
// Read failures other than ErrNotFound are logged, never returned.
func (s *Session) get(key string) string {
	v, err := s.store.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.Warn().Err(err).Str("key", key).Msg("session store read failed")
		}
		return ""
	}
	return v
}

// StudentID returns the stored identifier, or "" when not signed in.
func (s *Session) StudentID() string {
	return s.get(KeyStudentID)
}

// Record returns a snapshot of all session keys.
func (s *Session) Record() Record {
	return Record{
		StudentID: s.get(KeyStudentID),
		Name:      s.get(KeyName),
		Major:     s.get(KeyMajor),
		GPA:       s.get(KeyGPA),
		Level:     s.get(KeyLevel),
	}
}

// CachedProfile builds the fallback profile for id from the local record.
func (s *Session) CachedProfile(id string, src Source) Profile {
	return s.Record().ProfileFor(id, src)
}

// Save writes every non-empty field of r. Empty fields are removed so the
// store never holds a stale value from a previous student.
func (s *Session) Save(r Record) error {
	values := map[string]string{
		KeyStudentID: r.StudentID,
		KeyName:      r.Name,
		KeyMajor:     r.Major,
		KeyGPA:       r.GPA,
		KeyLevel:     r.Level,
	}
	var errs []error
	for _, key := range Keys {
		v := values[key]
		var err error
		if v == "" {
			err = s.store.Remove(key)
		} else {
			err = s.store.Set(key, v)
		}
		if err != nil {
			errs = append(errs, apperrors.Wrap(apperrors.StoreFailed, "write "+key, err))
		}
	}
	return errors.Join(errs...)
}

// Clear removes every session key. All removals are attempted; failures are
// joined into the returned error.
func (s *Session) Clear() error {
	var errs []error
	for _, key := range Keys {
		if err := s.store.Remove(key); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, apperrors.Wrap(apperrors.StoreFailed, "remove "+key, err))
		}
	}
	return errors.Join(errs...)
}
