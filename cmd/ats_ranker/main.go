// Package main provides the entry point for the ats_ranker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ats_ranker",
	Short: "Applicant tracking ranking engine",
	Long: "ats_ranker scores candidate profiles against job requirements, normalizes uploaded resumes " +
		"to PDF, and keeps them in private object storage.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRoot,
}

var (
	rootConfigPath string
	rootLogJSON    bool
	rootLogDebug   bool
	rootVerbose    bool

	appConfig *config.Config
	appLogger = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file (values can be overridden by environment and flags)")
	rootCmd.PersistentFlags().BoolVar(&rootLogJSON, "log-json", false, "Emit JSON logs")
	rootCmd.PersistentFlags().BoolVar(&rootLogDebug, "log-debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print human-readable summaries")
}

// setupRoot loads configuration and builds the logger before any subcommand runs.
func setupRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON = rootLogJSON
	}
	if cmd.Flags().Changed("log-debug") {
		cfg.LogDebug = rootLogDebug
	}

	l, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	appConfig = cfg
	appLogger = l
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = appLogger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
