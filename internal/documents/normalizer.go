// Package documents validates uploaded resumes and normalizes them to PDF.
//
// Conversion of DOC/DOCX files is delegated to a Converter so callers and tests never depend
// on an office suite being installed. LibreOfficeConverter is the production implementation.
package documents

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	// DefaultMaxSizeMB is the largest upload accepted by default.
	DefaultMaxSizeMB = 20
	// DefaultConversionTimeout bounds a single conversion. Timed out conversions are not retried.
	DefaultConversionTimeout = 60 * time.Second

	bytesPerMB = 1024 * 1024
)

// AllowedExtensions lists the accepted upload types.
var AllowedExtensions = []string{"pdf", "doc", "docx"}

// Converter turns a DOC or DOCX file into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, data []byte, filename string) ([]byte, error)
}

// Document is a normalized, PDF-formatted resume.
type Document struct {
	Data        []byte
	Filename    string // original base name with a .pdf extension
	ContentType string
	Pages       int
	Converted   bool // false when the upload already was a PDF
}

// Normalizer validates uploads and converts them to PDF.
type Normalizer struct {
	converter Converter
	maxSizeMB int
	timeout   time.Duration
	logger    *zap.Logger
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithMaxSizeMB sets the upload size limit in megabytes.
func WithMaxSizeMB(mb int) NormalizerOption {
	return func(n *Normalizer) {
		if mb > 0 {
			n.maxSizeMB = mb
		}
	}
}

// WithTimeout sets the per-conversion timeout.
func WithTimeout(d time.Duration) NormalizerOption {
	return func(n *Normalizer) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) NormalizerOption {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewNormalizer creates a Normalizer that converts through converter.
func NewNormalizer(converter Converter, opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		converter: converter,
		maxSizeMB: DefaultMaxSizeMB,
		timeout:   DefaultConversionTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize validates the upload and returns it as a PDF document.
// PDFs are returned unchanged; DOC and DOCX files are converted. Failures are
// *ValidationError or *ConversionError and never carry partial output.
func (n *Normalizer) Normalize(ctx context.Context, data []byte, filename string) (*Document, error) {
	if err := ValidateFileType(filename); err != nil {
		return nil, err
	}
	if err := ValidateFileSize(data, n.maxSizeMB); err != nil {
		return nil, err
	}

	pdfName := pdfFilename(filename)

	if FileExtension(filename) == "pdf" {
		doc := &Document{Data: data, Filename: pdfName, ContentType: detectContentType(data)}
		if pages, err := CountPages(data); err == nil {
			doc.Pages = pages
		} else {
			n.logger.Debug("could not inspect uploaded PDF", zap.String("filename", filename), zap.Error(err))
		}
		return doc, nil
	}

	if n.converter == nil {
		return nil, &ConversionError{Reason: ReasonUnavailable}
	}

	convCtx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	start := time.Now()
	out, err := n.converter.Convert(convCtx, data, filename)
	if err != nil {
		if errors.Is(convCtx.Err(), context.DeadlineExceeded) {
			err = &ConversionError{Reason: ReasonTimeout, Cause: err}
		}
		n.logger.Error("document conversion failed", zap.String("filename", filename), zap.Error(err))
		var convErr *ConversionError
		if errors.As(err, &convErr) {
			return nil, err
		}
		return nil, &ConversionError{Reason: fmt.Sprintf("Conversion error: %v", err), Cause: err}
	}
	if len(out) == 0 {
		return nil, &ConversionError{Reason: ReasonMissingOutput}
	}

	pages, err := CountPages(out)
	if err != nil {
		return nil, &ConversionError{Reason: ReasonUnreadablePDF, Cause: err}
	}

	n.logger.Info("converted document to PDF",
		zap.String("filename", filename),
		zap.Int("pages", pages),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Document{
		Data:        out,
		Filename:    pdfName,
		ContentType: detectContentType(out),
		Pages:       pages,
		Converted:   true,
	}, nil
}

// FileExtension returns the lower-cased text after the last dot of filename, or the whole
// lower-cased name when there is no dot.
func FileExtension(filename string) string {
	lower := strings.ToLower(filename)
	if idx := strings.LastIndex(lower, "."); idx >= 0 {
		return lower[idx+1:]
	}
	return lower
}

// ValidateFileType rejects files whose extension is not pdf, doc or docx.
func ValidateFileType(filename string) error {
	ext := FileExtension(filename)
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return &ValidationError{
		Message: fmt.Sprintf("File type .%s not allowed. Allowed types: %s", ext, strings.Join(AllowedExtensions, ", ")),
	}
}

// ValidateFileSize rejects payloads larger than maxSizeMB megabytes.
func ValidateFileSize(data []byte, maxSizeMB int) error {
	sizeMB := float64(len(data)) / bytesPerMB
	if sizeMB > float64(maxSizeMB) {
		return &ValidationError{
			Message: fmt.Sprintf("File size (%.2fMB) exceeds maximum allowed size (%dMB)", sizeMB, maxSizeMB),
		}
	}
	return nil
}

func pdfFilename(filename string) string {
	base := filepath.Base(filename)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base + ".pdf"
}

func detectContentType(data []byte) string {
	mt := mimetype.Detect(data)
	if mt.Is("application/pdf") {
		return "application/pdf"
	}
	return mt.String()
}
