package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/skillswap/skillswap/internal/handler/dto"
	"github.com/skillswap/skillswap/internal/middleware"
	"github.com/skillswap/skillswap/internal/service"
)

// writeError writes the standard error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, Code: code})
}

// writeServiceError maps a service error to its HTTP response. Errors
// outside the service taxonomy are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			Error:  verr.Error(),
			Code:   "VALIDATION_ERROR",
			Fields: verr.Fields,
		})
		return
	}

	message := func(fallback string) string {
		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			return svcErr.Error()
		}
		return fallback
	}

	switch {
	case errors.Is(err, service.ErrAuthRequired):
		writeError(w, http.StatusForbidden, middleware.CodeAuthRequired, "Authentication required. Please provide a valid token.")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "FORBIDDEN", message("You do not have permission to perform this action"))
	case errors.Is(err, service.ErrRelatedNotFound):
		writeError(w, http.StatusNotFound, "RELATED_NOT_FOUND", message("Related resource not found"))
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", message("Resource not found"))
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "CONFLICT", message("Resource already exists"))
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		logger.Error("request failed",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.Method+" "+r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// writeDecodeError reports a body that could not be decoded. Bodies cut off
// by the size limit get the same 413 as oversized declared lengths.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
}

func writeInvalidID(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
}
