package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/minhngoc/ringside/internal/services"
)

// LedgerHandler serves derived ledger summaries and the audit trail.
type LedgerHandler struct {
	ledger services.LedgerService
	audits services.AuditService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledger services.LedgerService, audits services.AuditService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, audits: audits}
}

func (h *LedgerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.Get(r.Context(), mux.Vars(r)["owner"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *LedgerHandler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledger.Rebuild(r.Context(), mux.Vars(r)["owner"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *LedgerHandler) HandleAudits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	entries, err := h.audits.List(r.Context(), q.Get("owner"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
