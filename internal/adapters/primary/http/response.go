package http

import (
	"encoding/json"
	"net/http"
)

// DataResponse wraps a payload under "data".
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writePrivate writes a per-user payload. Shared caches must not keep it.
func writePrivate(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, status, v)
}
