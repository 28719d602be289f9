// Package http provides the HTTP handlers exposing the inspection
// backend as a REST API. Every response body is the uniform
// {success, data?, error?} envelope; clients are expected to read the
// envelope rather than the status code.
package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/digiprop/inspect/internal/backend"
)

// writeEnvelope encodes the envelope with the given status code.
func writeEnvelope[T any](w http.ResponseWriter, status int, resp backend.Response[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// statusFor maps an operation error to a status code: declared failures
// are client errors, anything else is internal.
func statusFor(err error) int {
	if backend.IsDeclared(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// urlID extracts the integer {id} path parameter. The bool reports
// whether parsing succeeded.
func urlID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}
