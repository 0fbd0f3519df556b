package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Envelope is the uniform JSON response shape. Success responses carry Data,
// error responses carry Error; the two are mutually exclusive.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a terminal error to the client.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Respond writes a success envelope with the given status and payload.
func Respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondError writes an error envelope. HTTPError values (possibly wrapped)
// map to their status and key; anything else renders as internal_error so
// unclassified failures never leak detail to the client.
func RespondError(w http.ResponseWriter, err error) {
	respondError(w, err, nil)
}

func respondError(w http.ResponseWriter, err error, details any) {
	httpErr := ErrInternal
	var he HTTPError
	if errors.As(err, &he) {
		httpErr = he
	}

	writeJSON(w, httpErr.Code, Envelope{
		Success: false,
		Error: &ErrorBody{
			Code:    httpErr.Key,
			Message: httpErr.Message(),
			Details: details,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
