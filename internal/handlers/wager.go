package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/minhngoc/ringside/internal/models"
	"github.com/minhngoc/ringside/internal/services"
)

// WagerHandler serves wager CRUD endpoints.
type WagerHandler struct {
	service services.WagerService
}

// NewWagerHandler creates a new wager handler
func NewWagerHandler(service services.WagerService) *WagerHandler {
	return &WagerHandler{service: service}
}

func (h *WagerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload models.WagerRecord
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	created, err := h.service.Create(r.Context(), payload.Owner, &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *WagerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &models.WagerFilter{
		Event:           q.Get("event"),
		Fight:           q.Get("fight"),
		Pick:            q.Get("pick"),
		Status:          q.Get("status"),
		IncludeArchived: q.Get("include_archived") == "true",
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	for _, raw := range strings.Split(q.Get("ids"), ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
			filter.IDs = append(filter.IDs, id)
		}
	}

	wagers, err := h.service.List(r.Context(), q.Get("owner"), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wagers)
}

func (h *WagerHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	wager, err := h.service.Get(r.Context(), r.URL.Query().Get("owner"), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if wager == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "wager not found"})
		return
	}
	writeJSON(w, http.StatusOK, wager)
}
