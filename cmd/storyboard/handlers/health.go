package handlers

import (
	"net/http"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// NewHealthHandler returns a handler reporting liveness and the configured model.
// It never contacts the generation service.
func NewHealthHandler(model string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Model: model})
	}
}
