package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"invoiceqc/internal/extract"
	"invoiceqc/internal/logger"
	"invoiceqc/internal/textsource"
	"invoiceqc/pkg/models"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured invoices from documents and save to JSON",
	Long: `Scan a folder for invoice documents, convert each to text, and recover
structured invoice fields using label-based pattern heuristics.

Plain-text documents (.txt, form feed as page separator) are read directly.
PDF documents are converted through Google Cloud Vision OCR, which requires
GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS in the environment.

Extraction is best-effort and never fails on content: fields that cannot be
recovered are filled with sentinel values and flagged later by validation.`,
	Example: `  # Extract all documents in ./invoices to the default output file
  invoiceqc extract --input ./invoices

  # Choose the output path
  invoiceqc extract --input ./invoices --output batch.json`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("input", "i", "", "Folder containing invoice documents (required)")
	extractCmd.Flags().StringP("output", "o", "extracted_invoices.json", "Output JSON file path")
	_ = extractCmd.MarkFlagRequired("input")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	inputDir, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	log.Info().
		Str("input", inputDir).
		Str("output", outputPath).
		Msg("Starting extraction")

	invoices, err := extractDir(cmd.Context(), inputDir)
	if err != nil {
		return err
	}

	if err := writeJSONFile(outputPath, invoices); err != nil {
		return err
	}

	log.Info().
		Int("count", len(invoices)).
		Str("output", outputPath).
		Msg("Extraction completed")
	fmt.Printf("Extracted %d invoices -> %s\n", len(invoices), outputPath)
	return nil
}

// extractDir converts every supported document under dir to text and runs the
// field extractor over it. Output order follows sorted filename order.
func extractDir(ctx context.Context, dir string) ([]models.Invoice, error) {
	log := logger.WithComponent("extract")

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("input directory not found: %s", dir)
	}

	paths, err := textsource.ListDocuments(dir)
	if err != nil {
		return nil, err
	}

	plain := textsource.NewPlainTextSource()
	var ocr *textsource.VisionSource
	defer func() {
		if ocr != nil {
			if err := ocr.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Vision client")
			}
		}
	}()

	extractor := extract.NewDefault()
	invoices := make([]models.Invoice, 0, len(paths))
	for _, path := range paths {
		var src textsource.Source = plain
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			if ocr == nil {
				ocr, err = textsource.NewVisionSource(ctx)
				if err != nil {
					return nil, fmt.Errorf("initialize OCR for %s: %w", path, err)
				}
			}
			src = ocr
		}

		pages, err := src.ReadPages(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("convert document to text: %w", err)
		}

		inv := extractor.Extract(textsource.JoinPages(pages), filepath.Base(path))
		invoices = append(invoices, inv)

		log.Debug().
			Str("source_file", inv.SourceFile).
			Str("invoice_number", inv.InvoiceNumber).
			Int("pages", len(pages)).
			Msg("Document extracted")
	}

	return invoices, nil
}

// writeJSONFile writes v as indented JSON, creating parent directories.
func writeJSONFile(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
