// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "coursemate/cli/internal/errors"
	"coursemate/cli/internal/logging"
)

// maxErrorBodySize limits how much of a failed response is kept for the error message.
const maxErrorBodySize = 4 * 1024

// transport is the HTTP plumbing shared by both service clients.
type transport struct {
	// client is the underlying HTTP client with configured timeout
	client    *http.Client
	userAgent string
}

// newTransport configures a 10-second timeout unless told otherwise.
func newTransport(opts Options) *transport {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "coursemate-cli/1.0"
	}
	return &transport{client: client, userAgent: ua}
}

// setStandardHeaders applies the headers every request carries.
func (t *transport) setStandardHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("X-Request-ID", uuid.New().String())
}

// do sends req and converts transport failures to backend_unreachable errors.
// The caller owns resp.Body on success.
func (t *transport) do(req *http.Request, op string) (*http.Response, error) {
	t.setStandardHeaders(req)
	started := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		logging.Debug().
			Str("op", op).
			Str("url", logging.Mask(req.URL.String())).
			Dur("elapsed", time.Since(started)).
			Str("error", logging.Mask(err.Error())).
			Msg("request failed")
		return nil, apperrors.Wrap(apperrors.BackendUnreachable, op, err)
	}
	logging.Debug().
		Str("op", op).
		Str("url", logging.Mask(req.URL.String())).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request done")
	return resp, nil
}

// probe issues GET base/ and reports the status. Any status is a success.
func (t *transport) probe(ctx context.Context, base, op string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinPath(base, "/"), nil)
	if err != nil {
		return 0, err
	}
	resp, err := t.do(req, op)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
	return resp.StatusCode, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// statusError reads a bounded excerpt of the body into a backend_status error.
func statusError(resp *http.Response, op string) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	msg := fmt.Sprintf("%s failed: %d", op, resp.StatusCode)
	if excerpt := strings.TrimSpace(string(b)); excerpt != "" {
		msg += " " + excerpt
	}
	return apperrors.Status(resp.StatusCode, msg)
}
