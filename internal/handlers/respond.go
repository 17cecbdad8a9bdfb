package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/minhngoc/ringside/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Everything
// except storage failures is a recoverable, user-facing condition.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr    *apperrors.ErrValidation
		invalidOpErr     *apperrors.ErrInvalidOperation
		invalidSettleErr *apperrors.ErrInvalidSettleResult
		confirmErr       *apperrors.ErrConfirmationRequired
		storageErr       *apperrors.ErrStorage
	)

	switch {
	case errors.Is(err, apperrors.ErrMissingOwner),
		errors.As(err, &validationErr),
		errors.As(err, &invalidOpErr),
		errors.As(err, &invalidSettleErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNoMatchingRecords):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &confirmErr):
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   confirmErr.Error(),
			"preview": confirmErr.Preview,
		})
	case errors.As(err, &storageErr):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage failure"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
