// Package http provides the HTTP handlers and routing for the coffee
// ledger API.
package http

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON body of every failed operation.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the JSON body of operations whose payload is a
// message constant.
type messageResponse struct {
	Message string `json:"message"`
}

// tokenResponse is the JSON body of a successful login.
type tokenResponse struct {
	Token string `json:"token"`
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
