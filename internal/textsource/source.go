// Package textsource is the document-to-text collaborator: it turns input
// documents into a sequence of page-level text strings for the extractor.
//
// Plain-text documents are read directly. PDF documents go through Google
// Cloud Vision OCR, which requires credentials in the environment:
//   - GOOGLE_APPLICATION_CREDENTIALS: path to a service account JSON file, OR
//   - GOOGLE_CREDENTIALS: inline JSON credentials string
//
// Cloud Vision API limitations for synchronous processing:
//   - Maximum file size: 20MB
//   - Maximum pages: 5
package textsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Common document-to-text errors.
var (
	// ErrUnsupportedFormat is returned for documents that are neither
	// plain text nor PDF.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrPDFTooLarge is returned when a PDF exceeds the Vision API's 20MB
	// synchronous processing limit.
	ErrPDFTooLarge = errors.New("PDF file size exceeds the maximum limit (20MB)")

	// ErrInvalidPDF is returned when the provided data is not a valid PDF document.
	ErrInvalidPDF = errors.New("invalid or corrupted PDF document")

	// ErrOCRFailed is returned when the Vision API fails to process the document.
	ErrOCRFailed = errors.New("OCR processing failed")

	// ErrMissingCredentials is returned when no Google Cloud credentials are
	// configured in the environment.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrTooManyPages is returned when a PDF exceeds the Vision API's 5-page
	// synchronous processing limit.
	ErrTooManyPages = errors.New("PDF has too many pages (maximum 5 pages for synchronous processing)")

	// ErrEmptyDocument is returned when a document contains no readable text.
	ErrEmptyDocument = errors.New("document contains no readable text")
)

// SourceError wraps errors with context about which document failed and how.
type SourceError struct {
	Op      string // the operation that failed, e.g. "ReadPages"
	Path    string // the document path
	Err     error
	Details string
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("textsource: %s %s failed: %s: %v", e.Op, e.Path, e.Details, e.Err)
	}
	return fmt.Sprintf("textsource: %s %s failed: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *SourceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func wrapSourceError(op, path string, err error, details string) error {
	if err == nil {
		return nil
	}
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return err
	}
	return &SourceError{Op: op, Path: path, Err: err, Details: details}
}

// Source converts one document into its page texts, in reading order.
type Source interface {
	// ReadPages returns the text of every page of the document at path.
	ReadPages(ctx context.Context, path string) ([]string, error)
}

// ListDocuments returns the supported document files directly under dir, in
// sorted filename order. Sorted order is what fixes the batch order end to
// end: extraction output and validation results both follow it.
func ListDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".pdf":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// JoinPages concatenates page texts into the single blob the extractor
// consumes.
func JoinPages(pages []string) string {
	return strings.Join(pages, "\n")
}
