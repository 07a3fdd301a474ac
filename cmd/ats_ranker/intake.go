package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/intake"
	"github.com/jonathan/ats-ranker/internal/observability"
	"github.com/jonathan/ats-ranker/internal/types"
	schemafiles "github.com/jonathan/ats-ranker/schemas"
)

var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Process an application: store the resume and rank the candidate",
	Long:  "Normalizes the resume to PDF, stores it privately and returns a presigned URL while ranking the candidate against the job.",
	RunE:  runIntake,
}

var (
	intakeResume    string
	intakeJob       string
	intakeCandidate string
	intakeWeights   string
	intakeOutput    string
	intakeSave      bool
	intakeDBURL     string
)

func init() {
	intakeCmd.Flags().StringVarP(&intakeResume, "resume", "r", "", "Path to resume file (pdf, doc, docx) (required)")
	intakeCmd.Flags().StringVarP(&intakeJob, "job", "j", "", "Path to JobRequirement JSON file (required)")
	intakeCmd.Flags().StringVarP(&intakeCandidate, "candidate", "c", "", "Path to CandidateProfile JSON file (required)")
	intakeCmd.Flags().StringVarP(&intakeWeights, "weights", "w", "", "Path to Weights JSON file (optional)")
	intakeCmd.Flags().StringVarP(&intakeOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	intakeCmd.Flags().BoolVar(&intakeSave, "save", false, "Store an audit copy of the ranking in the database")
	intakeCmd.Flags().StringVar(&intakeDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	for _, name := range []string{"resume", "job", "candidate"} {
		if err := intakeCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(intakeCmd)
}

func runIntake(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg := currentConfig()

	var job types.JobRequirement
	if err := readValidated(intakeJob, schemafiles.JobRequirement, &job); err != nil {
		return err
	}
	var candidate types.CandidateProfile
	if err := readValidated(intakeCandidate, schemafiles.CandidateProfile, &candidate); err != nil {
		return err
	}
	weights, err := loadWeights(intakeWeights)
	if err != nil {
		return err
	}
	resume, err := os.ReadFile(intakeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume %s: %w", intakeResume, err)
	}

	normalizer, err := newNormalizer(cfg, "", 0)
	if err != nil {
		return err
	}
	store, err := storeFactory(cfg)
	if err != nil {
		return err
	}
	ranker, err := newRanker(cfg)
	if err != nil {
		return err
	}
	ttl, err := cfg.PresignTTLDuration()
	if err != nil {
		return err
	}

	opts := []intake.Option{
		intake.WithPresignTTL(ttl),
		intake.WithLogger(appLogger),
	}
	if rootVerbose {
		opts = append(opts, intake.WithProgress(func(e intake.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s\n", e.Step, e.Message)
		}))
	}
	if intakeSave {
		database, err := connectDB(ctx, cfg, intakeDBURL)
		if err != nil {
			return err
		}
		defer database.Close()
		opts = append(opts, intake.WithAudit(database))
	}

	result, err := intake.New(normalizer, store, ranker, opts...).Process(ctx, intake.Application{
		Resume:    resume,
		Filename:  filepath.Base(intakeResume),
		Job:       &job,
		Candidate: &candidate,
		Weights:   weights,
	})
	if err != nil {
		return err
	}

	if rootVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintScoreBreakdown(&result.Breakdown)
	}
	return writeJSON(cmd.OutOrStdout(), intakeOutput, result)
}
