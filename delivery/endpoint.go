package delivery

import (
	"encoding/json"
	"net/http"
)

// healthHandler reports that the process is serving. It does not call the
// backend.
func (h *HTTPEndpoint) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		h.logger.DebugContext(r.Context(), "failed to write health response", "error", err)
	}
}
