package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/smitra/baithak/internal/exercise"
	"github.com/smitra/baithak/internal/session"
)

// SessionsHandler handles HTTP requests for exercise session resources.
type SessionsHandler struct {
	sessions *session.Manager
}

// NewSessionsHandler creates a new SessionsHandler with the given manager.
func NewSessionsHandler(m *session.Manager) *SessionsHandler {
	return &SessionsHandler{sessions: m}
}

type sessionResponse struct {
	ID    string         `json:"id"`
	State exercise.State `json:"state"`
}

type listSessionsResponse struct {
	Sessions []string `json:"sessions"`
}

// ServeHTTP implements the http.Handler interface and routes requests.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/sessions, /api/sessions/{id}, /api/sessions/{id}/reset
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/reset"); ok {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.reset(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// list handles GET /api/sessions and returns active session IDs.
func (h *SessionsHandler) list(w http.ResponseWriter, r *http.Request) {
	ids := h.sessions.List()
	writeJSON(w, http.StatusOK, listSessionsResponse{
		Sessions: append([]string{}, ids...),
	})
}

// create handles POST /api/sessions and starts a fresh session.
func (h *SessionsHandler) create(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:    s.ID,
		State: s.Counter.Snapshot(),
	})
}

// get handles GET /api/sessions/{id} and returns the session state.
func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	s, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		ID:    s.ID,
		State: s.Counter.Snapshot(),
	})
}

// reset handles POST /api/sessions/{id}/reset and zeroes the counter.
func (h *SessionsHandler) reset(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.sessions.Reset(id); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to reset session")
		return
	}

	s, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		ID:    s.ID,
		State: s.Counter.Snapshot(),
	})
}

// delete handles DELETE /api/sessions/{id} and discards the session.
func (h *SessionsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.sessions.Get(id); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	h.sessions.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}
