package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all handlers onto a gorilla/mux router.
func NewRouter(wagers *WagerHandler, mutations *MutationHandler, ledger *LedgerHandler, chat *ChatHandler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "ringside",
		})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/wagers", wagers.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/wagers", wagers.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/wagers/{id:[0-9]+}", wagers.HandleGet).Methods(http.MethodGet)

	api.HandleFunc("/mutations/preview", mutations.HandlePreview).Methods(http.MethodPost)
	api.HandleFunc("/mutations/apply", mutations.HandleApply).Methods(http.MethodPost)

	api.HandleFunc("/ledger/{owner}", ledger.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/ledger/{owner}/rebuild", ledger.HandleRebuild).Methods(http.MethodPost)
	api.HandleFunc("/audits", ledger.HandleAudits).Methods(http.MethodGet)

	api.HandleFunc("/chat/{conversation}", chat.HandleTurn).Methods(http.MethodPost)

	return corsMiddleware(r)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
