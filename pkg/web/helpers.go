package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// RespondValidationError writes a 400 with the first failing message and every field failure.
func RespondValidationError(w http.ResponseWriter, logger *slog.Logger, message string, fields map[string]string) {
	RespondJSON(w, logger, http.StatusBadRequest, map[string]any{
		"error":             message,
		"validation_errors": fields,
	})
}

// ParseID extracts and validates the UUID path value named name.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger, name string) (uuid.UUID, bool) {
	pathValueID := r.PathValue(name)
	if pathValueID == "" {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s is required", name))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(pathValueID)
	if err != nil {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", pathValueID))
		return uuid.Nil, false
	}
	return id, true
}

// GetOwnerID retrieves the tenant id from the request context, answering 401 when absent.
func GetOwnerID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	ownerID, ok := OwnerIDFromContext(r.Context())
	if !ok {
		RespondError(w, logger, http.StatusUnauthorized, "Unauthorized: missing owner")
		return "", false
	}
	return ownerID, true
}
