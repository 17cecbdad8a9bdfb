package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/minhngoc/ringside/internal/services"
)

// ChatHandler accepts one conversation turn and returns the structured
// outcome for the conversational layer to render.
type ChatHandler struct {
	service services.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	var turn services.ChatTurn
	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	turn.ConversationID = mux.Vars(r)["conversation"]

	outcome, err := h.service.Handle(r.Context(), &turn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}
