package handlers

import (
	"net/http"
)

// Health pings every configured logical store. Plain JSON, no envelope.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DBs.HealthCheck(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
