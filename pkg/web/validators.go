package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// MaxOwnerIDLength bounds tenant ids accepted from clients.
const MaxOwnerIDLength = 255

// ParseIDList collects a list query parameter given either comma separated (ids=a,b)
// or repeated (ids=a&ids=b). Blank entries are dropped.
func ParseIDList(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ParseUUIDList parses a list query parameter into UUIDs. An empty list or a malformed id answers 400.
func ParseUUIDList(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) ([]uuid.UUID, bool) {
	raw := ParseIDList(r, key)
	if len(raw) == 0 {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s url parameter is required", key))
		return nil, false
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", s))
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func validOwnerID(ownerID string) bool {
	return ownerID != "" && len(ownerID) <= MaxOwnerIDLength
}
