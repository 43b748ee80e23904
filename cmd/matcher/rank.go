package main

import (
	"job-match/internal/delivery/http/dto"
	"job-match/internal/domain/matching"

	"github.com/spf13/cobra"
)

func newRankJobsCmd() *cobra.Command {
	var candidatePath, jobsPath string
	var minPct int

	cmd := &cobra.Command{
		Use:   "rank-jobs",
		Short: "Rank a list of jobs for one candidate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dto.RankJobsRequest{MinPercentage: &minPct}
			if err := readJSONFile(candidatePath, &req.Candidate); err != nil {
				return err
			}
			if err := readJSONFile(jobsPath, &req.Jobs); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return validationError(err)
			}

			out, err := matcherFor(cmd).RankJobs(cmd.Context(), req.Candidate.ToDomain(), dto.JobsToDomain(req.Jobs), minPct)
			if err != nil {
				return err
			}
			return writeOutput(cmd, dto.FromMatchResults(out))
		},
	}

	cmd.Flags().StringVarP(&candidatePath, "candidate", "c", "", "Path to candidate JSON file (required)")
	cmd.Flags().StringVar(&jobsPath, "jobs", "", "Path to JSON array of jobs (required)")
	cmd.Flags().IntVar(&minPct, "min", matching.DefaultMinPercentage, "Minimum match percentage to keep")
	mustMarkRequired(cmd, "candidate", "jobs")
	return cmd
}

func newRankCandidatesCmd() *cobra.Command {
	var jobPath, candidatesPath string
	var minPct int

	cmd := &cobra.Command{
		Use:   "rank-candidates",
		Short: "Rank a list of candidates for one job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := dto.RankCandidatesRequest{MinPercentage: &minPct}
			if err := readJSONFile(jobPath, &req.Job); err != nil {
				return err
			}
			if err := readJSONFile(candidatesPath, &req.Candidates); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return validationError(err)
			}

			out, err := matcherFor(cmd).RankCandidates(cmd.Context(), req.Job.ToDomain(), dto.CandidatesToDomain(req.Candidates), minPct)
			if err != nil {
				return err
			}
			return writeOutput(cmd, dto.FromMatchResults(out))
		},
	}

	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to job JSON file (required)")
	cmd.Flags().StringVar(&candidatesPath, "candidates", "", "Path to JSON array of candidates (required)")
	cmd.Flags().IntVar(&minPct, "min", matching.DefaultMinPercentage, "Minimum match percentage to keep")
	mustMarkRequired(cmd, "job", "candidates")
	return cmd
}
