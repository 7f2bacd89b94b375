package api

import "net/http"

// handleLLMStats exposes the rolling-window latency aggregate of the
// external capability. Empty when the fake backend is active with no
// stats attached.
func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		writeJSON(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}
