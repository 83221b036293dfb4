// Package shared holds response helpers used by every handler group.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "smartfinance/pkg/domain-errors"
)

// Envelope is the response shape every endpoint uses: a success flag plus a
// human-readable message.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WriteJSON serializes v with the given status. Encoding failures are
// unrecoverable at this point because the header is already out.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto the envelope. Internal errors get a
// generic message so storage details never reach a caller.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.ToHTTPStatus(dErrors.CodeOf(err))
	message := dErrors.MessageOf(err)
	if status == http.StatusInternalServerError {
		message = "Internal server error."
	}
	WriteJSON(w, status, Envelope{Success: false, Message: message})
}

// WriteBadRequest is the shorthand for input validation failures.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// DecodeJSON parses a request body into T. A false return means the error
// response has already been written.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		WriteBadRequest(w, "Invalid request body.")
		return v, false
	}
	return v, true
}
