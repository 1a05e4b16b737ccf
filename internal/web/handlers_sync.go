package web

import "net/http"

// handleSyncPull replaces the directory with the remote copy.
func (s *Server) handleSyncPull(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.SyncPull(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]int{"records": n})
}

// handleSyncPush writes the directory to the remote store.
func (s *Server) handleSyncPush(w http.ResponseWriter, r *http.Request) {
	n, err := s.service.SyncPush(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]int{"records": n})
}
