package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"invoiceqc/internal/api"
	"invoiceqc/internal/logger"
	"invoiceqc/internal/store"
	"invoiceqc/internal/validate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the validation API over HTTP",
	Long: `Start an HTTP server exposing the validation core.

Endpoints:
  GET  /health                  liveness probe
  POST /api/v1/validate-json    validate a JSON array of invoices
  GET  /api/v1/runs             list persisted validation runs
  GET  /api/v1/runs/{id}        fetch one stored report

Run history requires IQC_DB_PATH to point at a SQLite database file;
without it the runs endpoints report persistence as disabled.`,
	Example: `  # Serve on the default address
  invoiceqc serve

  # Custom bind address with run persistence
  IQC_DB_PATH=qc.db invoiceqc serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from IQC_HTTP_ADDR)")
	serveCmd.Flags().String("rules", "", "YAML file overriding tolerance, currencies and minimum year")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	ruleCfg, err := ruleConfig(cmd)
	if err != nil {
		return err
	}

	var runs *store.RunStore
	if cfg.DBPath != "" {
		db, err := store.InitDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open run-history database: %w", err)
		}
		defer db.Close()
		runs = store.NewRunStore(db)
		log.Info().Str("db", cfg.DBPath).Msg("Run persistence enabled")
	}

	router := api.NewRouter(validate.NewEngine(ruleCfg), runs)

	log.Info().
		Str("addr", addr).
		Float64("tolerance", ruleCfg.Tolerance).
		Strs("currencies", ruleCfg.AllowedCurrencies).
		Msg("Starting HTTP server")

	if err := http.ListenAndServe(addr, router); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
