package main

import (
	"job-match/internal/delivery/http/dto"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	var candidatePath, jobPath string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score one candidate against one job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.MatchRequest
			if err := readJSONFile(candidatePath, &req.Candidate); err != nil {
				return err
			}
			if err := readJSONFile(jobPath, &req.Job); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return validationError(err)
			}

			res, err := matcherFor(cmd).Match(cmd.Context(), req.Candidate.ToDomain(), req.Job.ToDomain())
			if err != nil {
				return err
			}
			return writeOutput(cmd, dto.FromMatchResult(res))
		},
	}

	cmd.Flags().StringVarP(&candidatePath, "candidate", "c", "", "Path to candidate JSON file (required)")
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to job JSON file (required)")
	mustMarkRequired(cmd, "candidate", "job")
	return cmd
}
