package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/db"
	"github.com/jonathan/ats-ranker/internal/observability"
	"github.com/jonathan/ats-ranker/internal/types"
)

// rankingStore reads and removes stored ranking audit rows. *db.DB implements it.
type rankingStore interface {
	GetRanking(ctx context.Context, id uuid.UUID) (*db.Ranking, error)
	ListRankingsForJob(ctx context.Context, jobID string, limit int) ([]db.Ranking, error)
	DeleteRanking(ctx context.Context, id uuid.UUID) (bool, error)
}

// rankingStoreFactory opens the ranking store; tests replace it.
var rankingStoreFactory = func(cmd *cobra.Command, cfg *config.Config) (rankingStore, func(), error) {
	database, err := connectDB(commandContext(cmd), cfg, rankingsDBURL)
	if err != nil {
		return nil, nil, err
	}
	return database, database.Close, nil
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Inspect ranking audit copies stored with rank --save or intake --save",
}

var rankingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rankings for a job, best first",
	RunE:  runRankingsList,
}

var rankingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print one stored ranking",
	RunE:  runRankingsShow,
}

var rankingsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one stored ranking",
	RunE:  runRankingsDelete,
}

var (
	rankingsDBURL  string
	rankingsJobID  string
	rankingsLimit  int
	rankingsID     string
	rankingsOutput string
)

func init() {
	rankingsCmd.PersistentFlags().StringVar(&rankingsDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rankingsListCmd.Flags().StringVar(&rankingsJobID, "job", "", "Job ID (required)")
	rankingsListCmd.Flags().IntVar(&rankingsLimit, "limit", 50, "Maximum number of rankings to return")
	rankingsListCmd.Flags().StringVarP(&rankingsOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	if err := rankingsListCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	for _, c := range []*cobra.Command{rankingsShowCmd, rankingsDeleteCmd} {
		c.Flags().StringVar(&rankingsID, "id", "", "Ranking ID (required)")
		if err := c.MarkFlagRequired("id"); err != nil {
			panic(fmt.Sprintf("failed to mark id flag as required: %v", err))
		}
	}
	rankingsShowCmd.Flags().StringVarP(&rankingsOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	rankingsCmd.AddCommand(rankingsListCmd, rankingsShowCmd, rankingsDeleteCmd)
	rootCmd.AddCommand(rankingsCmd)
}

func openRankingStore(cmd *cobra.Command) (rankingStore, func(), error) {
	return rankingStoreFactory(cmd, currentConfig())
}

func parseRankingID() (uuid.UUID, error) {
	id, err := uuid.Parse(rankingsID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid ranking id %q: %w", rankingsID, err)
	}
	return id, nil
}

func runRankingsList(cmd *cobra.Command, _ []string) error {
	store, closeStore, err := openRankingStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	rankings, err := store.ListRankingsForJob(commandContext(cmd), rankingsJobID, rankingsLimit)
	if err != nil {
		return err
	}
	if rankings == nil {
		rankings = []db.Ranking{}
	}

	if rootVerbose && len(rankings) > 0 {
		ranked := types.RankedCandidates{JobID: rankingsJobID}
		for _, r := range rankings {
			ranked.Ranked = append(ranked.Ranked, types.RankedPair{
				JobID:       r.JobID,
				CandidateID: r.CandidateID,
				Result:      r.Breakdown,
			})
		}
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRankedCandidates(&ranked)
	}

	return writeJSON(cmd.OutOrStdout(), rankingsOutput, rankings)
}

func runRankingsShow(cmd *cobra.Command, _ []string) error {
	id, err := parseRankingID()
	if err != nil {
		return err
	}
	store, closeStore, err := openRankingStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	r, err := store.GetRanking(commandContext(cmd), id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("ranking %s not found", id)
	}
	if rootVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintScoreBreakdown(&r.Breakdown)
	}
	return writeJSON(cmd.OutOrStdout(), rankingsOutput, r)
}

func runRankingsDelete(cmd *cobra.Command, _ []string) error {
	id, err := parseRankingID()
	if err != nil {
		return err
	}
	store, closeStore, err := openRankingStore(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	deleted, err := store.DeleteRanking(commandContext(cmd), id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("ranking %s not found", id)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted ranking %s\n", id)
	return nil
}
