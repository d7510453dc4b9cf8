package main

import (
	"fmt"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/store"
	"github.com/spf13/cobra"
	"text/tabwriter"
)

// withUserStore runs fn against the loaded state of one user.
func withUserStore(cmd *cobra.Command, userID string, fn func(s *store.Store) error) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	s, err := a.userStore(userID)
	if err != nil {
		return err
	}
	if err := s.Load(cmd.Context()); err != nil {
		return err
	}
	return fn(s)
}

func requireUserFlag(cmd *cobra.Command, userID *string) {
	cmd.PersistentFlags().StringVarP(userID, "user", "u", "", "user id (required)")
	_ = cmd.MarkPersistentFlagRequired("user")
}

func newPipelineCmd() *cobra.Command {
	var userID string

	pipeline := &cobra.Command{
		Use:   "pipeline",
		Short: "Inspect and move a user's job applications",
	}
	requireUserFlag(pipeline, &userID)

	pipeline.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print saved jobs grouped by application status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserStore(cmd, userID, func(s *store.Store) error {
				board := s.State().JobsByStatus()
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, status := range models.ApplicationStatuses {
					fmt.Fprintf(w, "%s (%d)\n", status, len(board[status]))
					for _, job := range board[status] {
						fmt.Fprintf(w, "  %s\t%s\t%s\n", job.ID, job.Title, job.Company)
					}
				}
				return w.Flush()
			})
		},
	})

	var listing models.JobListing
	save := &cobra.Command{
		Use:   "save <job-id> <title>",
		Short: "Bookmark a job listing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listing.ID, listing.Title = args[0], args[1]
			listing.Source = "manual"
			return withUserStore(cmd, userID, func(s *store.Store) error {
				job, err := s.SaveJob(cmd.Context(), listing)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s as %s\n", job.JobID, job.ID)
				return nil
			})
		},
	}
	save.Flags().StringVar(&listing.Company, "company", "", "company name")
	save.Flags().StringVar(&listing.Location, "location", "", "job location")
	save.Flags().StringVar(&listing.URL, "url", "", "link to the posting")
	pipeline.AddCommand(save)

	pipeline.AddCommand(&cobra.Command{
		Use:   "move <saved-job-id> <status>",
		Short: "Move a saved job to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := models.ParseApplicationStatus(args[1])
			if err != nil {
				return err
			}
			return withUserStore(cmd, userID, func(s *store.Store) error {
				if err := s.MoveJob(cmd.Context(), args[0], status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s moved to %s\n", args[0], status)
				return nil
			})
		},
	})

	pipeline.AddCommand(&cobra.Command{
		Use:   "delete <saved-job-id>",
		Short: "Remove a saved job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserStore(cmd, userID, func(s *store.Store) error {
				return s.DeleteJob(cmd.Context(), args[0])
			})
		},
	})

	return pipeline
}
