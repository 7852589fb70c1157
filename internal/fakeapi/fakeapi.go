// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package fakeapi provides in-process stand-ins for the login and
// recommendation services, for tests. Every request is recorded so tests can
// assert what was sent and in which order.
package fakeapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Hit is one request received by a fake service.
type Hit struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   string
}

// Server is a recording fake service.
type Server struct {
	*httptest.Server

	mu   sync.Mutex
	hits []Hit
}

// New starts a fake service whose routes are registered by routes.
// The server is closed when the test ends.
func New(t testing.TB, routes func(r chi.Router)) *Server {
	t.Helper()
	s := &Server{}
	r := chi.NewRouter()
	r.Use(s.record)
	routes(r)
	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		s.mu.Lock()
		s.hits = append(s.hits, Hit{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   string(body),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Hits returns a copy of the recorded requests.
func (s *Server) Hits() []Hit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Hit, len(s.hits))
	copy(out, s.hits)
	return out
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, h := range s.Hits() {
		if h.Method == method && h.Path == path {
			n++
		}
	}
	return n
}

// respond writes a fixed status and body.
func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

const rootBody = `{"message":"running"}`

// Recommender fakes the recommendation service: POST /recommend answers with
// status and body, GET / answers 200.
func Recommender(t testing.TB, status int, body string) *Server {
	t.Helper()
	return New(t, func(r chi.Router) {
		r.Get("/", respond(http.StatusOK, rootBody))
		r.Post("/recommend", respond(status, body))
	})
}

// LoginService fakes the login service: GET /api/login answers with status
// and body, GET / answers 200.
func LoginService(t testing.TB, status int, body string) *Server {
	t.Helper()
	return New(t, func(r chi.Router) {
		r.Get("/", respond(http.StatusOK, rootBody))
		r.Get("/api/login", respond(status, body))
	})
}

// UnreachableURL returns the URL of a server that has already been shut down,
// so connections to it are refused.
func UnreachableURL(t testing.TB) string {
	t.Helper()
	s := httptest.NewServer(http.NotFoundHandler())
	u := s.URL
	s.Close()
	return u
}
