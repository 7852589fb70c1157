// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"coursemate/cli/internal/session"
)

var whoamiJSON bool

// whoamiCmd dumps the stored session record without contacting any service.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session record",
	Long: `The whoami command prints every session key as stored locally. Missing
keys are shown as "(not set)". No service is contacted.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		rec := svc.SessionRecord(cmd.Context())
		if whoamiJSON {
			return writeJSON(cmd.OutOrStdout(), recordMap(rec))
		}
		if !rec.LoggedIn() {
			fmt.Fprintln(cmd.OutOrStdout(), "🔒 You're not logged in yet!")
			fmt.Fprintln(cmd.OutOrStdout(), "   Run 'coursemate login' to get started.")
		}
		writeRecord(cmd.OutOrStdout(), rec)
		return nil
	},
}

func init() {
	whoamiCmd.Flags().BoolVar(&whoamiJSON, "json", false, "Print the record as JSON")
	rootCmd.AddCommand(whoamiCmd)
}

// recordMap keys the record by its store keys; absent keys are omitted.
func recordMap(r session.Record) map[string]string {
	out := map[string]string{}
	for key, v := range recordValues(r) {
		if v != "" {
			out[key] = v
		}
	}
	return out
}

func recordValues(r session.Record) map[string]string {
	return map[string]string{
		session.KeyStudentID: r.StudentID,
		session.KeyName:      r.Name,
		session.KeyMajor:     r.Major,
		session.KeyGPA:       r.GPA,
		session.KeyLevel:     r.Level,
	}
}

func writeRecord(w io.Writer, r session.Record) {
	values := recordValues(r)
	for _, key := range session.Keys {
		v := values[key]
		if v == "" {
			v = "(not set)"
		}
		fmt.Fprintf(w, "%-15s %s\n", key+":", v)
	}
}
