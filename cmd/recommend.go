// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"coursemate/cli/internal/backend"
)

var (
	recommendID   string
	recommendJSON bool
)

// recommendCmd lists course recommendations for the student.
var recommendCmd = &cobra.Command{
	Use:     "recommend",
	Aliases: []string{"recs"},
	Short:   "Show course recommendations",
	Long: `The recommend command asks the recommendation service for the student's
course recommendations. When the service cannot be reached or answers with an
error, a single sample recommendation is shown instead.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		id, ok := resolveStudentID(ctx, svc, recommendID)
		if !ok {
			return errSilent
		}

		recs := svc.Recommendations(ctx, id)
		if recommendJSON {
			return writeJSON(cmd.OutOrStdout(), recs)
		}
		return renderRecommendations(cmd.OutOrStdout(), recs)
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendID, "id", "", "Student id (default: the signed-in student)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print recommendations as JSON")
	rootCmd.AddCommand(recommendCmd)
}

// recommendationRows is the table data, header first.
func recommendationRows(recs []backend.Recommendation) [][]string {
	rows := [][]string{{"Code", "Course", "Score", "Type", "Location", "Instructor", "Reason"}}
	for _, r := range recs {
		rows = append(rows, []string{
			r.CourseCode,
			r.CourseName,
			strconv.FormatFloat(r.Score, 'f', -1, 64),
			r.Type,
			r.Location,
			r.Instructor,
			r.Reason,
		})
	}
	return rows
}

func renderRecommendations(w io.Writer, recs []backend.Recommendation) error {
	if len(recs) == 0 {
		pterm.Info.WithWriter(w).Println("No recommendations for this student yet")
		return nil
	}
	return pterm.DefaultTable.
		WithWriter(w).
		WithHasHeader().
		WithData(recommendationRows(recs)).
		Render()
}
