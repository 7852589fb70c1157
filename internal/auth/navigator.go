// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import "sync"

// Navigator is how the client talks back to the user outside of return
// values: a blocking alert and a redirect to another page.
type Navigator interface {
	Alert(msg string)
	Redirect(target string)
}

// RecordingNavigator remembers alerts and redirects instead of acting on them.
type RecordingNavigator struct {
	mu        sync.Mutex
	Alerts    []string
	Redirects []string
}

func (n *RecordingNavigator) Alert(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Alerts = append(n.Alerts, msg)
}

func (n *RecordingNavigator) Redirect(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Redirects = append(n.Redirects, target)
}
