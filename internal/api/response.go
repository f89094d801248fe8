// Package api holds the JSON envelope every endpoint answers with.
package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// Data is merged into the envelope next to success and message
type Data map[string]any

// JSON writes body with the given status
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// Success writes {success: true, message, ...data}. An empty message is omitted.
func Success(w http.ResponseWriter, status int, message string, data Data) {
	JSON(w, status, envelope(true, message, data))
}

// Fail writes {success: false, message}
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, envelope(false, message, nil))
}

// DecodeJSON reads a JSON request body into dst
func DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	return decoder.Decode(dst)
}

// NotFound answers unknown routes
func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Fail(w, http.StatusNotFound, "Route not found")
	})
}

// MethodNotAllowed answers known routes hit with the wrong verb
func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

func envelope(success bool, message string, data Data) map[string]any {
	body := make(map[string]any, len(data)+2)
	for key, value := range data {
		body[key] = value
	}
	body["success"] = success
	if message != "" {
		body["message"] = message
	}
	return body
}
