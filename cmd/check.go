// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd reports whether a student is signed in.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a student is signed in",
	Long: `The check command reads the stored student id. When none is stored it
alerts and points to the login page, and exits with status 1. Nothing is
verified against a server: a stored student id is the whole session.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		id, ok := svc.CheckLogin(ctx)
		if !ok {
			return errSilent
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
