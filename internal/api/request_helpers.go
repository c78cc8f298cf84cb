package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskward/taskward-api/internal/api/shared"
)

// DecodeJSON decodes the request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

// getUsernameFromContext extracts the authenticated principal's username
// placed into the context by the auth middleware. When it is absent the
// request cannot be authorized and an error response is written.
func getUsernameFromContext(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return username, true
}

// getPathID extracts a numeric ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, fmt.Errorf("%s is required", paramName)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid format", paramName)
	}
	return id, nil
}

// parseDate parses a "YYYY-MM-DD" value, returning nil for an empty string.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, errors.New("date must be in YYYY-MM-DD format")
	}
	return &parsed, nil
}
