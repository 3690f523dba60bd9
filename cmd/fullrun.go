package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"invoiceqc/internal/logger"
	"invoiceqc/internal/validate"
)

var fullRunCmd = &cobra.Command{
	Use:   "full-run",
	Short: "Extract from documents and validate in a single step",
	Long: `Run the whole pipeline: convert every document in the input folder to
text, extract structured invoices, validate the batch, and write the
quality-control report.

Exit codes match the validate command: 1 for IO or transport failure,
2 when the batch contains invalid invoices.`,
	Example: `  # Process a folder end to end
  invoiceqc full-run --input ./invoices --report validation_report.json`,
	RunE: runFullRun,
}

func init() {
	rootCmd.AddCommand(fullRunCmd)

	fullRunCmd.Flags().StringP("input", "i", "", "Folder containing invoice documents (required)")
	fullRunCmd.Flags().StringP("report", "r", "validation_report.json", "Validation report output file")
	fullRunCmd.Flags().String("rules", "", "YAML file overriding tolerance, currencies and minimum year")
	_ = fullRunCmd.MarkFlagRequired("input")
}

func runFullRun(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("full-run")

	inputDir, _ := cmd.Flags().GetString("input")
	reportPath, _ := cmd.Flags().GetString("report")

	invoices, err := extractDir(cmd.Context(), inputDir)
	if err != nil {
		return err
	}

	ruleCfg, err := ruleConfig(cmd)
	if err != nil {
		return err
	}

	log.Info().
		Str("input", inputDir).
		Int("count", len(invoices)).
		Msg("Extracted batch, starting validation")

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
