// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/pterm/pterm"

	"coursemate/cli/internal/auth"
	"coursemate/cli/internal/logging"
)

var _ auth.Navigator = (*terminalNavigator)(nil)

// terminalNavigator shows alerts as warnings and redirects as a link the
// user can follow, optionally opening it in the browser.
type terminalNavigator struct {
	w           io.Writer
	openBrowser bool
	base        string
	// open is replaced in tests.
	open func(string)
	// beforeOutput runs once before the next alert or redirect is printed.
	beforeOutput func()
}

func newNavigator(w io.Writer, openBrowser bool, base string) *terminalNavigator {
	return &terminalNavigator{w: w, openBrowser: openBrowser, base: base, open: launchBrowser}
}

func (n *terminalNavigator) flush() {
	if f := n.beforeOutput; f != nil {
		n.beforeOutput = nil
		f()
	}
}

func (n *terminalNavigator) Alert(msg string) {
	n.flush()
	pterm.Warning.WithWriter(n.w).Println(msg)
}

func (n *terminalNavigator) Redirect(target string) {
	n.flush()
	link := resolveTarget(n.base, target)
	pterm.Fprintln(n.w, pterm.NewStyle(pterm.FgLightCyan).Sprint("→ Continue at: ")+link)
	if n.openBrowser && isWebURL(link) {
		logging.Debug().Str("url", link).Msg("opening browser")
		n.open(link)
	}
}

// resolveTarget makes a relative page like index.html absolute against base.
// The target is returned unchanged when base is unusable.
func resolveTarget(base, target string) string {
	t, err := url.Parse(target)
	if err != nil || t.IsAbs() {
		return target
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return target
	}
	if b.Path == "" {
		b.Path = "/"
	}
	return b.ResolveReference(t).String()
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// launchBrowser attempts to open the provided URL in the user's default browser.
// It uses platform-specific commands to launch the default browser:
//   - Windows: rundll32 url.dll,FileProtocolHandler
//   - macOS: open command
//   - Linux: xdg-open command
//
// The function starts the browser process but does not wait for it to complete.
func launchBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
