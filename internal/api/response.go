package api

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/LaurealDente/env5001/internal/estimate"
)

// errNotFound marks API-level lookups (dates, routes) that have no engine
// error of their own.
var errNotFound = errors.New("not found")

// errorType classifies an API failure in the response envelope.
type errorType string

const (
	errorNone     errorType = ""
	errorBadData  errorType = "bad_data"
	errorNotFound errorType = "not_found"
	errorInternal errorType = "internal"
)

// Response is the JSON envelope of every API endpoint.
type Response struct {
	Status    string    `json:"status"`
	Data      any       `json:"data,omitempty"`
	ErrorType errorType `json:"errorType,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// classify maps engine errors onto HTTP status codes. Engine errors are
// surfaced verbatim in the envelope; only the status code is the API's own.
func classify(err error) (errorType, int) {
	switch {
	case errors.Is(err, estimate.ErrInvalidInput),
		errors.Is(err, estimate.ErrInvalidProfile),
		errors.Is(err, estimate.ErrDivisionHazard):
		return errorBadData, http.StatusBadRequest
	case errors.Is(err, estimate.ErrUnknownRegion),
		errors.Is(err, estimate.ErrUnknownTier),
		errors.Is(err, errNotFound):
		return errorNotFound, http.StatusNotFound
	default:
		return errorInternal, http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, logger zerolog.Logger, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(Response{Status: "success", Data: data}); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	typ, code := classify(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if encErr := json.NewEncoder(w).Encode(Response{
		Status:    "error",
		ErrorType: typ,
		Error:     err.Error(),
	}); encErr != nil {
		logger.Error().Err(encErr).Msg("failed to encode error response")
	}
}
