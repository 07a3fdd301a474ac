package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/observability"
	"github.com/jonathan/ats-ranker/internal/types"
	schemafiles "github.com/jonathan/ats-ranker/schemas"
)

var rankBatchCmd = &cobra.Command{
	Use:   "rank-batch",
	Short: "Rank many candidates against many jobs",
	Long:  "Scores every candidate against every job concurrently and writes, per job, the candidates sorted best first.",
	RunE:  runRankBatch,
}

var (
	rankBatchJobs        string
	rankBatchCandidates  string
	rankBatchWeights     string
	rankBatchConcurrency int
	rankBatchOutput      string
)

func init() {
	rankBatchCmd.Flags().StringVar(&rankBatchJobs, "jobs", "", "Path to JSON array of JobRequirement (required)")
	rankBatchCmd.Flags().StringVar(&rankBatchCandidates, "candidates", "", "Path to JSON array of CandidateProfile (required)")
	rankBatchCmd.Flags().StringVarP(&rankBatchWeights, "weights", "w", "", "Path to Weights JSON file (optional)")
	rankBatchCmd.Flags().IntVar(&rankBatchConcurrency, "concurrency", 0, "Maximum pairs scored in parallel (default from config)")
	rankBatchCmd.Flags().StringVarP(&rankBatchOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := rankBatchCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}
	if err := rankBatchCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}

	rootCmd.AddCommand(rankBatchCmd)
}

func runRankBatch(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg := currentConfig()

	var jobs []types.JobRequirement
	if err := readValidated(rankBatchJobs, schemafiles.JobRequirements, &jobs); err != nil {
		return err
	}
	var candidates []types.CandidateProfile
	if err := readValidated(rankBatchCandidates, schemafiles.CandidateProfiles, &candidates); err != nil {
		return err
	}
	weights, err := loadWeights(rankBatchWeights)
	if err != nil {
		return err
	}

	ranker, err := newRanker(cfg)
	if err != nil {
		return err
	}

	concurrency := cfg.BatchConcurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = rankBatchConcurrency
	}

	ranked, err := ranker.RankBatch(ctx, jobs, candidates, weights, concurrency)
	if err != nil {
		return err
	}
	validateOutput(cmd.ErrOrStderr(), schemafiles.RankedCandidates, ranked)

	if rootVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for i := range ranked {
			printer.PrintRankedCandidates(&ranked[i])
		}
	}

	return writeJSON(cmd.OutOrStdout(), rankBatchOutput, ranked)
}
