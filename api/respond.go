package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// envelope is the response shape the dashboard consumes: data under success,
// a message under failure.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("api: error encoding response: %v", err)
	}
}

// WriteData sends a successful response.
func WriteData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// WriteError sends a failed response with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

func WriteBadRequest(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusBadRequest, detail)
}

func WriteNotFound(w http.ResponseWriter, detail string) {
	WriteError(w, http.StatusNotFound, detail)
}

// WriteStorageError maps a store failure to a service-level error. The
// underlying cause goes to the log, not to the client.
func WriteStorageError(w http.ResponseWriter, err error) {
	log.Printf("api: storage unavailable: %v", err)
	WriteError(w, http.StatusServiceUnavailable, "storage unavailable")
}
