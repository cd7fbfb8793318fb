// Package rest carries the shared response helpers for the webhook
// surface. The platform treats any 2xx as an ack; a plain-text body on
// a slash command response is shown to the user who typed it.
package rest

import (
	"encoding/json"
	"net/http"
)

func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
