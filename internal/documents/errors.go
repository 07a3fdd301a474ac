package documents

import "fmt"

// ValidationError reports an upload rejected before any conversion was attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConversionError reports a failed DOC/DOCX to PDF conversion. Reason is safe to show to
// end users; Output carries converter diagnostics when available.
type ConversionError struct {
	Reason string
	Output string
	Cause  error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document conversion error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("document conversion error: %s", e.Reason)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// User-facing conversion failure reasons.
const (
	ReasonTimeout       = "Conversion timeout - file too large or complex"
	ReasonUnavailable   = "Document conversion service not available"
	ReasonMissingOutput = "PDF file not created - conversion may have failed"
	ReasonUnreadablePDF = "Converted file is not a readable PDF"
)
