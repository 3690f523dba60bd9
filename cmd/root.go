// Package cmd wires the CLI surface: extraction, validation, the combined
// full run and the HTTP server.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoiceqc/internal/config"
	"invoiceqc/internal/logger"
	"invoiceqc/internal/validate"
)

var version = "1.0.0"

// cfg holds the environment-derived defaults shared by all subcommands.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoiceqc",
	Short: "Invoice extraction & quality control CLI",
	Long: `invoiceqc converts unstructured invoice documents into structured records
and checks those records against completeness, arithmetic and cross-record
consistency rules, producing a machine-readable quality report.

The pipeline has two stages: heuristic extraction of typed invoice fields
from raw document text, and batch validation that classifies each record as
valid or invalid and detects duplicates across the batch.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("invoiceqc - invoice extraction & quality control")
		fmt.Println("Use --help to see available commands and options.")
	},
}

// Execute runs the CLI with the given configuration defaults.
func Execute(c *config.Config) {
	cfg = c

	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ruleConfig resolves the validation rule set for a command: the --rules YAML
// file when given, otherwise the environment-derived defaults.
func ruleConfig(cmd *cobra.Command) (validate.Config, error) {
	rulesPath, _ := cmd.Flags().GetString("rules")
	if rulesPath != "" {
		return validate.LoadConfig(rulesPath)
	}
	return validate.Config{
		Tolerance:         cfg.Tolerance,
		AllowedCurrencies: cfg.AllowedCurrencies,
		MinInvoiceYear:    cfg.MinInvoiceYear,
	}, nil
}
