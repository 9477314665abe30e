package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithNotice(w, code, errorCode, models.NewNotice(models.LevelError, message))
}

func respondWithNotice(w http.ResponseWriter, code int, errorCode string, notice *models.Notice) {
	respondWithJSON(w, code, middleware.ErrorResponse{
		Error:  errorCode,
		Notice: notice,
	})
}

// respondWithServiceError turns a service error into its notice. Unknown
// errors are logged and reported as internal errors.
func respondWithServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var (
		code      int
		errorCode string
	)
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrMissingQuantity):
		code, errorCode = http.StatusBadRequest, "validation_failed"
	case errors.Is(err, services.ErrEmailExists):
		code, errorCode = http.StatusConflict, "email_exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		code, errorCode = http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, services.ErrProductNotFound):
		code, errorCode = http.StatusNotFound, "product_not_found"
	case errors.Is(err, services.ErrNotEditing):
		code, errorCode = http.StatusConflict, "not_editing"
	default:
		logger.Error().Err(err).Msg("Request failed")
		respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		return
	}
	respondWithError(w, code, errorCode, sentence(err.Error()))
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func scopeOrReject(w http.ResponseWriter, r *http.Request) (string, bool) {
	scope, ok := middleware.GetScope(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized", "Scope not found")
		return "", false
	}
	return scope, true
}

func idVar(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_product_id", "Invalid product ID")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

// confirmed reports whether a destructive request carries confirm=true. If it
// does not, the client is asked to confirm and nothing changes.
func confirmed(w http.ResponseWriter, r *http.Request, question string) bool {
	if ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); ok {
		return true
	}
	respondWithNotice(w, http.StatusConflict, "confirmation_required", models.NewNotice(models.LevelWarning, question))
	return false
}
