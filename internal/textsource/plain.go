package textsource

import (
	"context"
	"os"
	"strings"
)

// PlainTextSource reads pre-extracted text documents. Form-feed characters
// mark page boundaries; a file without them is a single page.
type PlainTextSource struct{}

// NewPlainTextSource creates a Source for .txt documents.
func NewPlainTextSource() *PlainTextSource {
	return &PlainTextSource{}
}

// ReadPages implements Source.
func (s *PlainTextSource) ReadPages(ctx context.Context, path string) ([]string, error) {
	const op = "ReadPages"

	if err := ctx.Err(); err != nil {
		return nil, wrapSourceError(op, path, err, "")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapSourceError(op, path, err, "read text file")
	}

	return strings.Split(string(data), "\f"), nil
}
