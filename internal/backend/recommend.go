// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	apperrors "coursemate/cli/internal/errors"
)

// RecommendClient implements RecommendAPI over HTTP.
type RecommendClient struct {
	*transport
	baseURL string
	path    string
}

var _ RecommendAPI = (*RecommendClient)(nil)

// BaseURL returns the service root.
func (c *RecommendClient) BaseURL() string { return c.baseURL }

type recommendRequest struct {
	StudentID string `json:"student_id"`
}

// post sends POST {path} with {"student_id": id} and returns the 2xx response.
func (c *RecommendClient) post(ctx context.Context, studentID string) (*http.Response, error) {
	body, err := json.Marshal(recommendRequest{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinPath(c.baseURL, c.path), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "recommend")
	if err != nil {
		return nil, err
	}
	if !isSuccess(resp.StatusCode) {
		defer resp.Body.Close()
		return nil, statusError(resp, "recommend")
	}
	return resp, nil
}

// Recommend calls POST /recommend and decodes the recommendation list.
func (c *RecommendClient) Recommend(ctx context.Context, studentID string) ([]Recommendation, error) {
	resp, err := c.post(ctx, studentID)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out []Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperrors.Wrap(apperrors.DecodeFailed, "recommend response", err)
	}
	return out, nil
}

// Touch calls POST /recommend and requires a well-formed JSON body.
func (c *RecommendClient) Touch(ctx context.Context, studentID string) error {
	resp, err := c.post(ctx, studentID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return apperrors.Wrap(apperrors.DecodeFailed, "recommend response", err)
	}
	return nil
}

// Ping calls POST /recommend and only checks the status.
func (c *RecommendClient) Ping(ctx context.Context, studentID string) error {
	resp, err := c.post(ctx, studentID)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
	return resp.Body.Close()
}

// Probe issues GET / against the recommendation service.
func (c *RecommendClient) Probe(ctx context.Context) (int, error) {
	return c.probe(ctx, c.baseURL, "recommend probe")
}
