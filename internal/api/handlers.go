package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"invoiceqc/internal/logger"
	"invoiceqc/internal/schema"
	"invoiceqc/internal/store"
	"invoiceqc/internal/validate"
	"invoiceqc/pkg/models"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	engine *validate.Engine
	runs   *store.RunStore
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := logger.WithComponent("api")
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ValidateJSON accepts a JSON array of invoice objects and returns the full
// quality-control report. Malformed or schema-violating payloads are a 400;
// invoices that merely fail business rules are still a 200 with the failures
// listed in the report, since invalid content is an answer, not an error.
func (h *Handlers) ValidateJSON(w http.ResponseWriter, r *http.Request) {
	log := logger.WithComponent("api")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body: "+err.Error())
		return
	}

	if err := schema.ValidateInvoiceBatch(body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var invoices []models.Invoice
	if err := json.Unmarshal(body, &invoices); err != nil {
		writeError(w, http.StatusBadRequest, "decode invoices: "+err.Error())
		return
	}

	report := h.engine.Validate(invoices)

	if h.runs != nil {
		if _, err := h.runs.SaveRun(report); err != nil {
			log.Warn().Err(err).Msg("Failed to persist validation run")
		}
	}

	log.Info().
		Int("total", report.Summary.TotalInvoices).
		Int("invalid", report.Summary.InvalidInvoices).
		Msg("Validated invoice batch over HTTP")

	writeJSON(w, http.StatusOK, report)
}

// ListRuns returns persisted run summaries, newest first.
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "run persistence is disabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	runs, err := h.runs.ListRuns(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun returns the full stored report for one run.
func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "run persistence is disabled")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	report, err := h.runs.GetRun(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}
