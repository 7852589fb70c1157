// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import "strings"

// Endpoints holds the base URLs and paths of both services.
type Endpoints struct {
	LoginBaseURL     string
	LoginPath        string // e.g. "/api/login"
	RecommendBaseURL string
	RecommendPath    string // e.g. "/recommend"
}

// withDefaults fills empty paths.
func (e Endpoints) withDefaults() Endpoints {
	if e.LoginPath == "" {
		e.LoginPath = "/api/login"
	}
	if e.RecommendPath == "" {
		e.RecommendPath = "/recommend"
	}
	e.LoginBaseURL = strings.TrimRight(e.LoginBaseURL, "/")
	e.RecommendBaseURL = strings.TrimRight(e.RecommendBaseURL, "/")
	return e
}

// joinPath appends p to base, keeping exactly one slash between them.
func joinPath(base, p string) string {
	if p == "" {
		return base + "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}
