// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"time"
)

// Options configures the HTTP clients.
type Options struct {
	// Timeout bounds a single request. Zero means 10s.
	Timeout time.Duration
	// UserAgent is sent with every request.
	UserAgent string
	// Client overrides the underlying *http.Client (Timeout is then ignored).
	Client *http.Client
}

// New creates HTTP clients for both services.
func New(endpoints Endpoints, opts Options) (*LoginClient, *RecommendClient) {
	endpoints = endpoints.withDefaults()
	t := newTransport(opts)
	login := &LoginClient{transport: t, baseURL: endpoints.LoginBaseURL, path: endpoints.LoginPath}
	rec := &RecommendClient{transport: t, baseURL: endpoints.RecommendBaseURL, path: endpoints.RecommendPath}
	return login, rec
}
