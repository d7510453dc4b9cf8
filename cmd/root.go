package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "jobcopilot",
		Short:        "Job search copilot backend",
		Long:         "Job search copilot: Adzuna search with AI ranking, ATS scoring, document generation, application tracking and job alerts.",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newAlertsCmd(), newPipelineCmd(), newResumesCmd(), newCareerCmd(), newVersionCmd())
	return root
}
