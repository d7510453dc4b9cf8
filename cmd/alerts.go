package main

import (
	"fmt"
	"github.com/spf13/cobra"
)

func newAlertsCmd() *cobra.Command {
	alerts := &cobra.Command{
		Use:   "alerts",
		Short: "Job alert maintenance",
	}

	alerts.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run one alert dispatch pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			stats, err := a.dispatcher(a.jobSource()).RunOnce(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked: %d, sent: %d, not due: %d, no matches: %d, failed: %d\n",
				stats.Checked, stats.Sent, stats.NotDue, stats.Empty, stats.Failed)
			return nil
		},
	})

	return alerts
}
