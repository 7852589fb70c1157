// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	apperrors "coursemate/cli/internal/errors"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o wait" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{name: "nil", err: nil, want: ClassNone},
		{name: "canceled", err: fmt.Errorf("post: %w", context.Canceled), want: ClassCanceled},
		{name: "deadline", err: fmt.Errorf("post: %w", context.DeadlineExceeded), want: ClassTimeout},
		{name: "net timeout", err: timeoutErr{}, want: ClassTimeout},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "nope.invalid"}, want: ClassDNS},
		{name: "refused op error", err: refused, want: ClassRefused},
		{name: "refused wrapped", err: apperrors.Wrap(apperrors.BackendUnreachable, "login", refused), want: ClassRefused},
		{name: "tls", err: errors.New("x509: certificate signed by unknown authority"), want: ClassTLS},
		{name: "5xx status", err: apperrors.Status(503, "recommend"), want: ClassServer},
		{name: "4xx status", err: apperrors.Status(404, "recommend"), want: ClassUnknown},
		{name: "other", err: errors.New("unexpected EOF"), want: ClassUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractHostFromURL(t *testing.T) {
	tests := map[string]string{
		"http://localhost:8006/recommend": "localhost:8006",
		"https://example.edu":             "example.edu",
		"index.html":                      "server",
		"::bad":                           "server",
	}
	for in, want := range tests {
		if got := ExtractHostFromURL(in); got != want {
			t.Errorf("ExtractHostFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
