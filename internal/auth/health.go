// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"time"

	"coursemate/cli/internal/httperrors"
	"coursemate/cli/internal/logging"
)

// HealthResult is the outcome of probing one service.
type HealthResult struct {
	Service   string           `json:"service"`
	URL       string           `json:"url"`
	Reachable bool             `json:"reachable"`
	Status    int              `json:"status,omitempty"`
	Latency   time.Duration    `json:"latency"`
	Class     httperrors.Class `json:"class,omitempty"`
	Error     string           `json:"error,omitempty"`

	// Err is the raw probe failure, for troubleshooting output.
	Err error `json:"-"`
}

type prober interface {
	Probe(ctx context.Context) (int, error)
	BaseURL() string
}

// TestServers probes the login service, then the recommendation service.
// Any HTTP status counts as reachable. Results are logged and returned.
func (s *Service) TestServers(ctx context.Context) []HealthResult {
	logging.Info().Msg("testing server connections")
	results := []HealthResult{
		probe(ctx, "login", s.login),
		probe(ctx, "recommend", s.rec),
	}
	for _, r := range results {
		if r.Reachable {
			logging.Info().Str("service", r.Service).Str("url", r.URL).Int("status", r.Status).Dur("latency", r.Latency).Msg("reachable")
		} else {
			logging.Error().Str("service", r.Service).Str("url", r.URL).Str("class", string(r.Class)).Msg("not reachable")
		}
	}
	return results
}

func probe(ctx context.Context, name string, p prober) HealthResult {
	started := time.Now()
	code, err := p.Probe(ctx)
	r := HealthResult{
		Service: name,
		URL:     p.BaseURL() + "/",
		Latency: time.Since(started),
	}
	if err != nil {
		r.Class = httperrors.Classify(err)
		r.Error = logging.Mask(err.Error())
		r.Err = err
		return r
	}
	r.Reachable = true
	r.Status = code
	return r
}
