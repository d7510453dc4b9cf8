package main

import (
	"fmt"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/store"
	"github.com/spf13/cobra"
	"strings"
	"text/tabwriter"
)

func newCareerCmd() *cobra.Command {
	var userID string

	career := &cobra.Command{
		Use:   "career",
		Short: "Manage a user's career goals: roles, certifications and skills",
	}
	requireUserFlag(career, &userID)

	career.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print career items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserStore(cmd, userID, func(s *store.Store) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, item := range s.State().CareerItems {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.ID, item.Type, item.Title, item.Status)
				}
				return w.Flush()
			})
		},
	})

	career.AddCommand(&cobra.Command{
		Use:   "add <role|certification|skill> <title>",
		Short: "Add a career item unless the same one exists",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemType, err := models.ParseCareerItemType(args[0])
			if err != nil {
				return err
			}
			return withUserStore(cmd, userID, func(s *store.Store) error {
				item, err := s.AddCareerItem(cmd.Context(), itemType, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s %q as %s\n", item.Type, item.Title, item.ID)
				return nil
			})
		},
	})

	career.AddCommand(&cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a career item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserStore(cmd, userID, func(s *store.Store) error {
				return s.RemoveCareerItem(cmd.Context(), args[0])
			})
		},
	})

	return career
}
