package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/observability"
	"github.com/jonathan/ats-ranker/internal/types"
	schemafiles "github.com/jonathan/ats-ranker/schemas"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score one candidate against one job",
	Long:  "Deterministically scores a CandidateProfile against a JobRequirement on skills, experience, location and education, producing a ScoreBreakdown JSON.",
	RunE:  runRank,
}

var (
	rankJob       string
	rankCandidate string
	rankWeights   string
	rankOutput    string
	rankSave      bool
	rankDBURL     string
)

func init() {
	rankCmd.Flags().StringVarP(&rankJob, "job", "j", "", "Path to JobRequirement JSON file (required)")
	rankCmd.Flags().StringVarP(&rankCandidate, "candidate", "c", "", "Path to CandidateProfile JSON file (required)")
	rankCmd.Flags().StringVarP(&rankWeights, "weights", "w", "", "Path to Weights JSON file (optional, defaults to configured weights)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output ScoreBreakdown JSON file (default stdout)")
	rankCmd.Flags().BoolVar(&rankSave, "save", false, "Store an audit copy of the result in the database")
	rankCmd.Flags().StringVar(&rankDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := rankCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg := currentConfig()

	// 1. Load inputs
	var job types.JobRequirement
	if err := readValidated(rankJob, schemafiles.JobRequirement, &job); err != nil {
		return err
	}
	var candidate types.CandidateProfile
	if err := readValidated(rankCandidate, schemafiles.CandidateProfile, &candidate); err != nil {
		return err
	}
	weights, err := loadWeights(rankWeights)
	if err != nil {
		return err
	}

	// 2. Rank
	ranker, err := newRanker(cfg)
	if err != nil {
		return err
	}
	result := ranker.Rank(&job, &candidate, weights)
	validateOutput(cmd.ErrOrStderr(), schemafiles.ScoreBreakdown, result)

	// 3. Optional audit copy
	if rankSave {
		database, err := connectDB(ctx, cfg, rankDBURL)
		if err != nil {
			return err
		}
		defer database.Close()
		id, err := database.SaveRanking(ctx, job.ID, candidate.ID, result, "")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved ranking %s\n", id)
	}

	if rootVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintScoreBreakdown(&result)
	}

	return writeJSON(cmd.OutOrStdout(), rankOutput, result)
}
