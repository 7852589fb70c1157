// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	apperrors "coursemate/cli/internal/errors"
)

// LoginClient implements LoginAPI over HTTP.
type LoginClient struct {
	*transport
	baseURL string
	path    string
}

var _ LoginAPI = (*LoginClient)(nil)

// BaseURL returns the service root.
func (c *LoginClient) BaseURL() string { return c.baseURL }

// Login calls GET {path}?university_id=<id>&password=<pw>.
// The password travels in the query string because that is what the login
// service accepts; request URLs are masked before they are logged.
func (c *LoginClient) Login(ctx context.Context, universityID, password string) (*LoginResult, error) {
	u := joinPath(c.baseURL, c.path) +
		"?university_id=" + url.QueryEscape(universityID) +
		"&password=" + url.QueryEscape(password)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, "login")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, statusError(resp, "login")
	}

	var out LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.Wrap(apperrors.DecodeFailed, "login response", err)
	}
	return &out, nil
}

// Probe issues GET / against the login service.
func (c *LoginClient) Probe(ctx context.Context) (int, error) {
	return c.probe(ctx, c.baseURL, "login probe")
}
