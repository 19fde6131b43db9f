package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/questforge/questforge-backend/internal/apperrors"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its status code. Business-rule failures
// surface their message verbatim; internal errors are logged and
// replaced with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		log.Printf("ERROR: %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, apperrors.HTTPStatus(err), errorResponse{
		Success: false,
		Message: apperrors.PublicMessage(err),
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.Validation("Invalid request body.")
	}
	return nil
}
