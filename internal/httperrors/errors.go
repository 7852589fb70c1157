// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors classifies HTTP/network failures and renders
// user-friendly troubleshooting hints for them.
package httperrors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperrors "coursemate/cli/internal/errors"
)

// Class is the coarse category of a network failure.
type Class string

const (
	ClassNone     Class = ""
	ClassTimeout  Class = "timeout"
	ClassDNS      Class = "dns"
	ClassRefused  Class = "refused"
	ClassTLS      Class = "tls"
	ClassServer   Class = "server"
	ClassCanceled Class = "canceled"
	ClassUnknown  Class = "unknown"
)

// Classify maps err to a Class. Order matters: a cancelled context is reported
// as such even when the transport wraps it in a timeout-looking error.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, context.Canceled):
		return ClassCanceled
	case isTimeoutError(err):
		return ClassTimeout
	case isDNSError(err):
		return ClassDNS
	case isConnectionRefusedError(err):
		return ClassRefused
	case isSSLError(err):
		return ClassTLS
	case isServerError(err):
		return ClassServer
	default:
		return ClassUnknown
	}
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks for a 5xx status carried by a backend_status error.
func isServerError(err error) bool {
	var e *apperrors.E
	if errors.As(err, &e) && e.Kind == apperrors.BackendStatus {
		return e.Status >= 500
	}
	return false
}

// Explain prints troubleshooting hints for err, raised while doing action
// against host.
func Explain(err error, action, host string) {
	switch Classify(err) {
	case ClassNone:
		return
	case ClassTimeout:
		pterm.Printf("⏱️  Connection timeout while %s\n", action)
		pterm.Println()
		pterm.Printf("%s took too long to respond. Check that the service is running and not overloaded.\n", host)
	case ClassDNS:
		pterm.Printf("🌐 Cannot resolve %s while %s\n", host, action)
		pterm.Println()
		pterm.Println("Check the base URL in your coursemate config and your DNS settings.")
	case ClassRefused:
		pterm.Printf("🚫 Connection refused while %s\n", action)
		pterm.Println()
		pterm.Printf("Nothing is listening on %s. This could mean:\n", host)
		pterm.Println("  • The service is not started")
		pterm.Println("  • Wrong server address or port in the config")
	case ClassTLS:
		pterm.Printf("🔒 Secure connection to %s failed while %s\n", host, action)
		pterm.Println()
		pterm.Println("Check the certificate and your system clock.")
	case ClassServer:
		pterm.Printf("⚠️  Server error while %s\n", action)
		pterm.Println()
		pterm.Printf("%s encountered an internal error. Try again in a moment.\n", host)
	case ClassCanceled:
		pterm.Printf("✋ Cancelled while %s\n", action)
	default:
		pterm.Printf("❌ Cannot reach %s while %s\n", host, action)
		msg := err.Error()
		if len(msg) > 100 {
			msg = msg[:100] + "..."
		}
		pterm.Debug.Printf("Technical details: %s\n", msg)
	}
	pterm.Println()
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
