// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyInput is returned when the user submits nothing.
var ErrEmptyInput = errors.New("no input given")

// Prompter reads answers from a terminal or, when in is not a terminal, from
// plain lines of in.
type Prompter struct {
	in  *os.File
	out io.Writer
	r   *bufio.Reader
}

// NewPrompter returns a Prompter on stdin/stderr.
func NewPrompter() *Prompter {
	return &Prompter{in: os.Stdin, out: os.Stderr, r: bufio.NewReader(os.Stdin)}
}

// IsInteractive reports whether input comes from a terminal.
func (p *Prompter) IsInteractive() bool {
	return term.IsTerminal(int(p.in.Fd()))
}

// Line asks for a visible answer.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyInput
	}
	return s, nil
}

// Password asks for a hidden answer and erases the prompt afterwards.
// Without a terminal the answer is read as a plain line.
func (p *Prompter) Password(prompt string) (string, error) {
	if !p.IsInteractive() {
		return p.Line(prompt)
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(int(p.in.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	ClearPreviousLines(p.out, len(prompt))
	if len(b) == 0 {
		return "", ErrEmptyInput
	}
	return string(b), nil
}
