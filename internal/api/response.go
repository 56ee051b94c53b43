package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mkoren/stash/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response failed", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps the store's typed errors to HTTP statuses. Anything
// untyped is an internal error.
func storeError(w http.ResponseWriter, err error) {
	var (
		validation *store.ValidationError
		notFound   *store.NotFoundError
		conflict   *store.ConflictError
		stock      *store.InsufficientStockError
	)
	switch {
	case errors.As(err, &validation):
		jsonError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		jsonError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		jsonError(w, http.StatusConflict, conflict.Error())
	case errors.As(err, &stock):
		jsonError(w, http.StatusConflict, stock.Error())
	default:
		slog.Error("unexpected store error", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
