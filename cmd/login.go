// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apperrors "coursemate/cli/internal/errors"
	"coursemate/cli/internal/httperrors"
	"coursemate/cli/internal/logging"
	"coursemate/cli/internal/session"
	"coursemate/cli/internal/terminal"
)

var (
	loginID    string
	loginLevel string
)

// loginCmd signs a student in against the login service.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in with your university id and password",
	Long: `The login command asks the login service to confirm your university id and
password. On success the student's id, name, major, GPA and level are stored
in the session store and used by the other commands.

The password is always read from the terminal without echo, or from a single
line of standard input when it is not a terminal. --level overrides the level
reported by the login service.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}

		// If already logged in, short-circuit
		if rec := svc.SessionRecord(cmd.Context()); rec.LoggedIn() && loginID == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Already logged in as %s\n", rec.StudentID)
			return nil
		}

		prompt := terminal.NewPrompter()
		id := loginID
		if id == "" {
			if id, err = prompt.Line("University ID: "); err != nil {
				return err
			}
		}
		password, err := prompt.Password("Password: ")
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		p, err := svc.Login(ctx, id, password, loginLevel)
		if err != nil {
			return presentLoginError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), loginGreeting(p, rand.New(rand.NewSource(time.Now().UnixNano()))))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginID, "id", "", "University id (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginLevel, "level", "", "Override the selected study level")
	rootCmd.AddCommand(loginCmd)
}

// presentLoginError tells the user why signing in failed.
func presentLoginError(err error) error {
	switch apperrors.KindOf(err) {
	case apperrors.LoginRejected:
		pterm.Error.Println("Login failed: " + err.Error())
	case apperrors.BackendUnreachable, apperrors.BackendStatus:
		httperrors.Explain(err, "signing in", httperrors.ExtractHostFromURL(cfg.Login.BaseURL))
	default:
		pterm.Error.Println(logging.PresentError("Login failed", err))
	}
	return errSilent
}

var loginGreetings = []string{
	"🎉 Welcome back, %s!",
	"✨ Great to see you, %s!",
	"🚀 You're all set, %s!",
	"🎓 Hello %s! Ready for next semester?",
	"🎯 You're in, %s!",
}

// loginGreeting returns a random greeting with the student's name or id.
func loginGreeting(p session.Profile, r *rand.Rand) string {
	who := p.Name
	if who == "" {
		who = p.ID
	}
	return fmt.Sprintf(loginGreetings[r.Intn(len(loginGreetings))], who)
}
