package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sanchitttt/qkart-backend/internal/apperror"
)

// ErrorResponse mirrors the ApiError wire shape: the status code repeated in
// the body plus a caller-facing message.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// respondAppError maps the engine's error kinds onto HTTP statuses. The kind
// decides the status; the adapter never reclassifies.
func respondAppError(w http.ResponseWriter, err error) {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		respondError(w, http.StatusNotFound, apperror.MessageOf(err))
	case apperror.KindInvalidRequest:
		respondError(w, http.StatusBadRequest, apperror.MessageOf(err))
	default:
		zap.L().Error("internal error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, apperror.MessageOf(err))
	}
}
