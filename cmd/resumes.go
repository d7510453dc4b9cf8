package main

import (
	"fmt"
	"github.com/maxaizer/job-copilot/internal/store"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"strings"
	"text/tabwriter"
)

func newResumesCmd() *cobra.Command {
	var userID string

	resumes := &cobra.Command{
		Use:   "resumes",
		Short: "Manage a user's uploaded résumés",
	}
	requireUserFlag(resumes, &userID)

	resumes.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print résumés, the primary one marked with *",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserStore(cmd, userID, func(s *store.Store) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, resume := range s.State().Resumes {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", lo.Ternary(resume.IsPrimary, "*", " "),
						resume.ID, resume.OriginalFilename, strings.Join(resume.ExtractedSkills, ", "))
				}
				return w.Flush()
			})
		},
	})

	resumes.AddCommand(&cobra.Command{
		Use:   "primary <resume-id>",
		Short: "Make a résumé the primary one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserStore(cmd, userID, func(s *store.Store) error {
				return s.SetPrimaryResume(cmd.Context(), args[0])
			})
		},
	})

	resumes.AddCommand(&cobra.Command{
		Use:   "delete <resume-id>",
		Short: "Delete a résumé and its uploaded file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserStore(cmd, userID, func(s *store.Store) error {
				return s.DeleteResume(cmd.Context(), args[0])
			})
		},
	})

	return resumes
}
