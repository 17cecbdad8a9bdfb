package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/minhngoc/ringside/internal/models"
	"github.com/minhngoc/ringside/internal/services"
)

// MutationHandler exposes the preview/apply capability boundary that the
// conversational layer's tool calls land on.
type MutationHandler struct {
	service services.MutationService
}

// NewMutationHandler creates a new mutation handler
func NewMutationHandler(service services.MutationService) *MutationHandler {
	return &MutationHandler{service: service}
}

type mutationPayload struct {
	Owner   string                 `json:"owner"`
	Request models.MutationRequest `json:"request"`
	Confirm bool                   `json:"confirm"`
}

func (h *MutationHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var payload mutationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	preview, err := h.service.Preview(r.Context(), payload.Owner, &payload.Request)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (h *MutationHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	var payload mutationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := h.service.Apply(r.Context(), payload.Owner, &payload.Request, payload.Confirm)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
