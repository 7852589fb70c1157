// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"coursemate/cli/internal/auth"
	"coursemate/cli/internal/session"
)

var (
	profileID     string
	profileStrict bool
	profileJSON   bool
)

// profileCmd shows the student profile.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the student profile",
	Long: `The profile command shows the signed-in student's profile. The
recommendation service is asked first, then the login service, and finally
the locally stored record is used with defaults for missing fields, so a
profile is always shown.

With --strict only the recommendation service is asked and the command fails
when it does not answer.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		id, ok := resolveStudentID(ctx, svc, profileID)
		if !ok {
			return errSilent
		}

		var p session.Profile
		if profileStrict {
			p, ok = svc.ProfileFromRecommender(ctx, id)
			if !ok {
				pterm.Error.WithWriter(cmd.ErrOrStderr()).Println("Cannot get student data from the recommendation service")
				return errSilent
			}
		} else {
			p = svc.StudentData(ctx, id)
		}

		if profileJSON {
			return writeJSON(cmd.OutOrStdout(), p)
		}
		renderProfile(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVar(&profileID, "id", "", "Student id (default: the signed-in student)")
	profileCmd.Flags().BoolVar(&profileStrict, "strict", false, "Only ask the recommendation service")
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the profile as JSON")
	rootCmd.AddCommand(profileCmd)
}

// resolveStudentID returns explicit when set, otherwise the signed-in id.
func resolveStudentID(ctx context.Context, svc *auth.Service, explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	return svc.CheckLogin(ctx)
}

var sourceLabels = map[session.Source]string{
	session.SourceRecommender: "recommendation service + local record",
	session.SourceLogin:       "login service",
	session.SourceCache:       "local record (offline)",
}

func renderProfile(w io.Writer, p session.Profile) {
	label := pterm.NewStyle(pterm.FgLightCyan)
	value := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	body := fmt.Sprintf("%s%s\n%s%s\n%s%s\n%s%s\n%s%s",
		label.Sprint("ID:     "), value.Sprint(p.ID),
		label.Sprint("Name:   "), value.Sprint(p.Name),
		label.Sprint("Major:  "), value.Sprint(p.Major),
		label.Sprint("GPA:    "), value.Sprint(p.GPA),
		label.Sprint("Level:  "), value.Sprint(p.Level),
	)
	pterm.DefaultBox.
		WithWriter(w).
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Student Profile")).
		Println(body)
	if src, ok := sourceLabels[p.Source]; ok {
		pterm.Fprintln(w, pterm.NewStyle(pterm.FgGray).Sprint("source: "+src))
	}
}
