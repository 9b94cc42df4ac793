package handlers

import (
	"net/http"
	"time"
)

// MetaHandler serves the health check and the API info endpoint.
type MetaHandler struct {
	started time.Time
	appEnv  string
}

// NewMetaHandler creates a new MetaHandler.
func NewMetaHandler(appEnv string) *MetaHandler {
	return &MetaHandler{started: time.Now(), appEnv: appEnv}
}

// Health reports process liveness and uptime in seconds.
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).Seconds(),
	})
}

// Info describes the API surface.
func (h *MetaHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "ServerUp API is running",
		"server": map[string]interface{}{
			"time":        time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(h.started).Seconds(),
			"environment": h.appEnv,
		},
		"endpoints": map[string]string{
			"health":   "/health",
			"api":      "/api",
			"messages": "/api/messages",
			"products": "/api/products",
		},
	})
}
