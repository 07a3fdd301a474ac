package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ranker/internal/documents"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Convert resumes to PDF",
	Long:  "Validates resume uploads (pdf, doc, docx; size limit) and converts DOC/DOCX files to PDF with a headless office suite. Several inputs are converted in parallel.",
	RunE:  runNormalize,
}

var (
	normalizeInputs    []string
	normalizeOutput    string
	normalizeOutputDir string
	normalizeTimeout   string
	normalizeMaxSizeMB int
)

func init() {
	normalizeCmd.Flags().StringSliceVarP(&normalizeInputs, "in", "i", nil, "Path to resume file; repeat for several (required)")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Output PDF path (single input only)")
	normalizeCmd.Flags().StringVar(&normalizeOutputDir, "out-dir", "", "Directory for output PDFs (default: next to each input)")
	normalizeCmd.Flags().StringVar(&normalizeTimeout, "timeout", "", "Per-file conversion timeout, e.g. 60s (default from config)")
	normalizeCmd.Flags().IntVar(&normalizeMaxSizeMB, "max-size-mb", 0, "Maximum upload size in MB (default from config)")

	if err := normalizeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	cfg := currentConfig()

	if normalizeOutput != "" && len(normalizeInputs) != 1 {
		return fmt.Errorf("--out requires exactly one --in; use --out-dir for several inputs")
	}

	normalizer, err := newNormalizer(cfg, normalizeTimeout, normalizeMaxSizeMB)
	if err != nil {
		return err
	}
	pool, err := documents.NewPool(normalizer, cfg.ConversionWorkers)
	if err != nil {
		return err
	}
	defer pool.Release()

	uploads := make([]documents.Upload, 0, len(normalizeInputs))
	for _, path := range normalizeInputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		uploads = append(uploads, documents.Upload{Data: data, Filename: filepath.Base(path)})
	}

	var failed int
	for i, res := range pool.NormalizeAll(ctx, uploads) {
		in := normalizeInputs[i]
		if res.Err != nil {
			failed++
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", in, res.Err)
			continue
		}

		out := normalizeOutput
		if out == "" {
			dir := normalizeOutputDir
			if dir == "" {
				dir = filepath.Dir(in)
			}
			out = filepath.Join(dir, res.Document.Filename)
		}
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(out, res.Document.Data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%d pages)\n", in, out, res.Document.Pages)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to normalize", failed, len(normalizeInputs))
	}
	return nil
}
