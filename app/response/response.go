// Package response writes the JSON bodies returned by the API: bare
// objects and arrays for reads, the success/message envelope for writes
// and failures.
package response

import (
	"encoding/json"
	"net/http"

	apperrors "bulletin/app/errors"
)

// Envelope wraps the outcome of a write or a failure. Message is a string,
// or a list of strings for validation failures.
type Envelope struct {
	Success bool   `json:"success"`
	Message any    `json:"message"`
	ID      string `json:"id,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 success envelope.
func OK(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// Created writes a 200 success envelope carrying the new record id.
func Created(w http.ResponseWriter, message, id string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, ID: id})
}

// Fail writes a failure envelope with an explicit status.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Message: message})
}

// Error writes the failure envelope for err. Validation failures list every
// message; internal failures only ever say apperrors.InternalMessage.
func Error(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	messages := apperrors.MessagesOf(err)

	var message any = messages[0]
	if kind == apperrors.KindValidation {
		message = messages
	}
	JSON(w, kind.Status(), Envelope{Success: false, Message: message})
}
