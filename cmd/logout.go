// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"coursemate/cli/internal/logging"
)

// logoutCmd clears the session record.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session",
	Long: `The logout command removes every session key (student id, name, major,
GPA and selected level) from the session store, then points back to the login
page. Running it while signed out is harmless.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, nav, err := wire(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		stop := startInlineSpinner(cmd.ErrOrStderr(), "Signing out", stickFrames, 120*time.Millisecond)
		// the spinner line is cleared before the login page link is shown
		nav.beforeOutput = stop
		err = svc.Logout(ctx)
		stop()
		if err != nil {
			pterm.Warning.WithWriter(cmd.ErrOrStderr()).Println("Some session keys could not be removed")
			pterm.Fprintln(cmd.ErrOrStderr(), logging.PresentError("logout", err))
			return errSilent
		}

		pterm.Fprintln(cmd.OutOrStdout(), "✅ Signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
