package documents

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultConverterBinary is the LibreOffice executable looked up in PATH.
const DefaultConverterBinary = "libreoffice"

// LibreOfficeConverter converts documents with a headless LibreOffice process.
// The deadline of the context passed to Convert bounds the process lifetime.
type LibreOfficeConverter struct {
	Binary string
}

// NewLibreOfficeConverter returns a converter that runs binary, or DefaultConverterBinary
// when binary is empty.
func NewLibreOfficeConverter(binary string) *LibreOfficeConverter {
	if binary == "" {
		binary = DefaultConverterBinary
	}
	return &LibreOfficeConverter{Binary: binary}
}

// Convert writes data to a scratch directory, runs the converter and reads back the PDF.
func (c *LibreOfficeConverter) Convert(ctx context.Context, data []byte, filename string) ([]byte, error) {
	binary, err := exec.LookPath(c.Binary)
	if err != nil {
		return nil, &ConversionError{Reason: ReasonUnavailable, Cause: err}
	}

	workDir, err := os.MkdirTemp("", "resume-convert-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary working directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	inputName := filepath.Base(filename)
	inputPath := filepath.Join(workDir, inputName)
	if err := os.WriteFile(inputPath, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write input file to working directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, "--headless", "--convert-to", "pdf", "--outdir", workDir, inputPath)
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &ConversionError{Reason: ReasonTimeout, Output: stderr.String(), Cause: runErr}
		}
		return nil, &ConversionError{
			Reason: fmt.Sprintf("Conversion failed: %s", strings.TrimSpace(stderr.String())),
			Output: stdout.String() + stderr.String(),
			Cause:  runErr,
		}
	}

	outputPath := filepath.Join(workDir, pdfFilename(inputName))
	pdfData, err := os.ReadFile(outputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConversionError{Reason: ReasonMissingOutput, Output: stdout.String() + stderr.String()}
		}
		return nil, fmt.Errorf("failed to read converted file: %w", err)
	}

	return pdfData, nil
}
