package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoiceqc/internal/logger"
	"invoiceqc/internal/schema"
	"invoiceqc/internal/store"
	"invoiceqc/internal/validate"
	"invoiceqc/pkg/models"
)

// exitInvalidInvoices is the process exit code used when validation itself
// succeeded but the batch contains invalid invoices. It is deliberately
// distinct from exit code 1, which marks transport or IO failure.
const exitInvalidInvoices = 2

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate extracted invoices and save a QC report",
	Long: `Load a JSON file of extracted invoices, check every record against
completeness and business rules, detect duplicate invoices across the batch,
and write the quality-control report.

The input file is validated against a JSON schema before processing; a
malformed file is a fatal error (exit 1). A well-formed batch always produces
a report, and the command exits with code 2 when any invoice is invalid so
scripts can tell bad business data apart from tool failure.`,
	Example: `  # Validate a batch with the default rules
  invoiceqc validate --input extracted_invoices.json

  # Use a custom rule set and report path
  invoiceqc validate --input batch.json --report qc.json --rules rules.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("input", "i", "", "Input JSON file with extracted invoices (required)")
	validateCmd.Flags().StringP("report", "r", "validation_report.json", "Validation report output file")
	validateCmd.Flags().String("rules", "", "YAML file overriding tolerance, currencies and minimum year")
	_ = validateCmd.MarkFlagRequired("input")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("validate")

	inputPath, _ := cmd.Flags().GetString("input")
	reportPath, _ := cmd.Flags().GetString("report")

	invoices, err := loadInvoiceBatch(inputPath)
	if err != nil {
		return err
	}

	ruleCfg, err := ruleConfig(cmd)
	if err != nil {
		return err
	}

	log.Info().
		Str("input", inputPath).
		Int("count", len(invoices)).
		Float64("tolerance", ruleCfg.Tolerance).
		Msg("Validating invoice batch")

	report := validate.NewEngine(ruleCfg).Validate(invoices)

	if err := writeJSONFile(reportPath, report); err != nil {
		return err
	}
	persistRun(report, log)
	printSummary(report.Summary)

	if report.Summary.InvalidInvoices > 0 {
		os.Exit(exitInvalidInvoices)
	}
	return nil
}

// loadInvoiceBatch reads and schema-checks an invoice batch file.
func loadInvoiceBatch(path string) ([]models.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("input file not found: %s", path)
	}
	if err := schema.ValidateInvoiceBatch(data); err != nil {
		return nil, err
	}

	var invoices []models.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("decode invoices: %w", err)
	}
	return invoices, nil
}

// persistRun records the report in the run-history database when IQC_DB_PATH
// is configured. Persistence failures are logged, never fatal.
func persistRun(report models.Report, log zerolog.Logger) {
	if cfg == nil || cfg.DBPath == "" {
		return
	}
	db, err := store.InitDB(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Str("db", cfg.DBPath).Msg("Failed to open run-history database")
		return
	}
	defer db.Close()

	id, err := store.NewRunStore(db).SaveRun(report)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to persist validation run")
		return
	}
	log.Info().Int64("run_id", id).Msg("Validation run persisted")
}

func printSummary(summary models.Summary) {
	fmt.Println()
	fmt.Println("Validation Summary")
	fmt.Printf("  Total invoices:   %d\n", summary.TotalInvoices)
	fmt.Printf("  Valid invoices:   %d\n", summary.ValidInvoices)
	fmt.Printf("  Invalid invoices: %d\n", summary.InvalidInvoices)

	if len(summary.ErrorCounts) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Error counts")
	tags := make([]string, 0, len(summary.ErrorCounts))
	for tag := range summary.ErrorCounts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		fmt.Printf("  %-60s %d\n", tag, summary.ErrorCounts[tag])
	}
}
