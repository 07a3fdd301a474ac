package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/documents"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text",
	Short: "Print the plain text of a PDF resume",
	RunE:  runExtractText,
}

var (
	extractTextInput  string
	extractTextOutput string
)

func init() {
	extractTextCmd.Flags().StringVarP(&extractTextInput, "in", "i", "", "Path to PDF file (required)")
	extractTextCmd.Flags().StringVarP(&extractTextOutput, "out", "o", "", "Path to output text file (default stdout)")

	if err := extractTextCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractTextCmd)
}

func runExtractText(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(extractTextInput)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", extractTextInput, err)
	}
	text, err := documents.ExtractText(data)
	if err != nil {
		return fmt.Errorf("failed to extract text: %w", err)
	}

	if extractTextOutput == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(extractTextOutput, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", extractTextOutput, err)
	}
	return nil
}
