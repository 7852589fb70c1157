// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides clients for the two services the CLI talks to:
// the login service (credential lookup returning a student payload) and the
// recommendation service (course recommendations for a student).
// The package defines the API contracts as interfaces so the client layer can
// be exercised against fakes, plus HTTP implementations of both.
package backend

import "context"

// LoginAPI defines the login service operations the CLI depends on.
type LoginAPI interface {
	// Login looks up a student by university id and password.
	// A 2xx answer is decoded even when Success is false.
	Login(ctx context.Context, universityID, password string) (*LoginResult, error)
	// Probe issues GET / and returns the status code. Any status counts as reachable.
	Probe(ctx context.Context) (int, error)
	// BaseURL returns the service root, for diagnostics.
	BaseURL() string
}

// RecommendAPI defines the recommendation service operations the CLI depends on.
type RecommendAPI interface {
	// Recommend returns the decoded recommendation list for the student.
	Recommend(ctx context.Context, studentID string) ([]Recommendation, error)
	// Touch posts a recommendation request and only checks that the service
	// answered 2xx with a JSON body. The payload is discarded.
	Touch(ctx context.Context, studentID string) error
	// Ping posts a recommendation request and only checks for a 2xx status.
	Ping(ctx context.Context, studentID string) error
	// Probe issues GET / and returns the status code. Any status counts as reachable.
	Probe(ctx context.Context) (int, error)
	// BaseURL returns the service root, for diagnostics.
	BaseURL() string
}
