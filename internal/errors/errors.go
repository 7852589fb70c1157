// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the client can observe (missing session, unreachable backend,
// unexpected status, undecodable payload, rejected sign-in, store failure) maps
// to one machine-readable Kind so callers and logs can branch on it without
// string matching.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// SessionMissing indicates no student_id is present in the session store.
	SessionMissing Kind = "session_missing"
	// BackendUnreachable indicates the request never got an HTTP response.
	BackendUnreachable Kind = "backend_unreachable"
	// BackendStatus indicates the backend answered with a non-2xx status.
	BackendStatus Kind = "backend_status"
	// DecodeFailed indicates the response body was not the expected JSON.
	DecodeFailed Kind = "decode_failed"
	// LoginRejected indicates the login service answered success=false.
	LoginRejected Kind = "login_rejected"
	// StoreFailed indicates the session store could not be read or written.
	StoreFailed Kind = "store_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
	// Status carries the HTTP status code for BackendStatus errors.
	Status int
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Status builds a BackendStatus error for the given HTTP status code.
func Status(code int, msg string) *E {
	return &E{Kind: BackendStatus, Message: msg, Status: code}
}

// KindOf returns the Kind of the first *E in err's chain, or "" when none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
