// Package server provides the HTTP server for the squat coaching dashboard.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/smitra/baithak/internal/capture"
	"github.com/smitra/baithak/internal/cloud"
	"github.com/smitra/baithak/internal/detector"
	"github.com/smitra/baithak/internal/exercise"
	"github.com/smitra/baithak/internal/server/api"
	"github.com/smitra/baithak/internal/session"
	"github.com/smitra/baithak/internal/store"
)

// StateSource exposes the live pipeline state to HTTP handlers. The app
// satisfies it; tests substitute fakes.
type StateSource interface {
	State() exercise.State
	LatestPose() *detector.PoseLandmarks
	IsEnabled() bool
	SetEnabled(enabled bool)
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	History   *store.History
	Sync      *cloud.Syncer
	Sessions  *session.Manager
	Camera    capture.Camera
	Source    StateSource
}

// Server represents the HTTP server for the dashboard and its API.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		workoutsHandler := api.NewWorkoutsHandler(s.config.Store, s.config.History, s.config.Sync)
		s.mux.Handle("/api/workouts", workoutsHandler)
		s.mux.Handle("/api/workouts/", workoutsHandler)

		settingsHandler := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings", settingsHandler)
	}

	if s.config.Sessions != nil {
		sessionsHandler := api.NewSessionsHandler(s.config.Sessions)
		s.mux.Handle("/api/sessions", sessionsHandler)
		s.mux.Handle("/api/sessions/", sessionsHandler)
	}

	if s.config.Source != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
	}

	// Camera stream with the coaching overlay burned in
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera, s.config.Source)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Live state over WebSocket for the dashboard
	if s.config.Source != nil {
		liveHandler := NewLiveHandler(s.config.Source)
		s.mux.Handle("/api/live", liveHandler)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState serves the live pipeline state and toggles tracking.
//
// GET returns {enabled, state, pose, timestamp}; pose is null when the last
// analyzed frame had no reliable landmarks. POST accepts {"enabled": bool}.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		response := map[string]interface{}{
			"enabled":   s.config.Source.IsEnabled(),
			"state":     s.config.Source.State(),
			"pose":      s.config.Source.LatestPose(),
			"timestamp": time.Now().UnixMilli(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)

	case http.MethodPost:
		var req struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		s.config.Source.SetEnabled(req.Enabled)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"enabled": req.Enabled})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
