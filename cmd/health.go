// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"coursemate/cli/internal/auth"
	"coursemate/cli/internal/httperrors"
)

var healthJSON bool

// healthCmd probes both backend services.
var healthCmd = &cobra.Command{
	Use:     "health",
	Aliases: []string{"test-servers"},
	Short:   "Check that the login and recommendation services are reachable",
	Long: `The health command sends GET / to the login service and then to the
recommendation service. Any HTTP answer counts as reachable. For services
that cannot be reached, troubleshooting hints are printed.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		results := svc.TestServers(ctx)
		if healthJSON {
			if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
		} else {
			if err := renderHealth(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			for _, r := range results {
				if !r.Reachable {
					pterm.Println()
					httperrors.Explain(r.Err, "contacting the "+r.Service+" service", httperrors.ExtractHostFromURL(r.URL))
				}
			}
		}

		for _, r := range results {
			if !r.Reachable {
				return errSilent
			}
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(healthCmd)
}

// healthRows is the table data, header first.
func healthRows(results []auth.HealthResult) [][]string {
	rows := [][]string{{"Service", "URL", "Status", "Latency", "Problem"}}
	for _, r := range results {
		status := pterm.Green("✓ " + strconv.Itoa(r.Status))
		problem := ""
		if !r.Reachable {
			status = pterm.Red("✗ unreachable")
			problem = string(r.Class)
		}
		rows = append(rows, []string{r.Service, r.URL, status, r.Latency.Round(time.Millisecond).String(), problem})
	}
	return rows
}

func renderHealth(w io.Writer, results []auth.HealthResult) error {
	return pterm.DefaultTable.
		WithWriter(w).
		WithHasHeader().
		WithData(healthRows(results)).
		Render()
}
