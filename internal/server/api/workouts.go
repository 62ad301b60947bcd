// Package api provides HTTP API handlers for the squat coaching dashboard.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smitra/baithak/internal/cloud"
	"github.com/smitra/baithak/internal/store"
)

// WorkoutsHandler handles HTTP requests for workout resources. Saving a
// workout writes it to the database, appends it to the CSV history, and
// pushes it to the cloud backup when one is configured.
type WorkoutsHandler struct {
	store   *store.Store
	history *store.History
	sync    *cloud.Syncer
}

// NewWorkoutsHandler creates a new WorkoutsHandler. History and sync may be nil.
func NewWorkoutsHandler(s *store.Store, history *store.History, sync *cloud.Syncer) *WorkoutsHandler {
	return &WorkoutsHandler{store: s, history: history, sync: sync}
}

// ServeHTTP implements the http.Handler interface and routes requests.
func (h *WorkoutsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/workouts, /api/workouts/stats, /api/workouts/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/workouts")
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

	if path == "stats" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.stats(w, r)
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

type createWorkoutRequest struct {
	Exercise string `json:"exercise"`
	Reps     int    `json:"reps"`
	Accuracy int    `json:"accuracy"`
	Date     string `json:"date"`
}

type listWorkoutsResponse struct {
	Workouts []*store.Workout `json:"workouts"`
	Cloud    bool             `json:"cloud,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/workouts and returns all saved workouts.
// With ?cloud=true it merges in remote workouts not yet present locally;
// a failed fetch degrades to the local list.
func (h *WorkoutsHandler) list(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.store.Workouts().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workouts")
		return
	}

	response := listWorkoutsResponse{
		Workouts: append([]*store.Workout{}, workouts...),
	}

	if r.URL.Query().Get("cloud") == "true" && h.sync != nil && h.sync.Enabled() {
		remote, err := h.sync.Fetch(r.Context())
		if err != nil {
			log.Printf("cloud fetch failed: %v", err)
		} else {
			seen := make(map[string]bool, len(workouts))
			for _, wk := range workouts {
				seen[wk.ID] = true
			}
			for _, wk := range remote {
				if !seen[wk.ID] {
					response.Workouts = append(response.Workouts, wk)
				}
			}
			response.Cloud = true
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// stats handles GET /api/workouts/stats and returns aggregate totals.
func (h *WorkoutsHandler) stats(w http.ResponseWriter, r *http.Request) {
	totals, err := h.store.Workouts().Totals()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute totals")
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// get handles GET /api/workouts/{id}.
func (h *WorkoutsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	workout, err := h.store.Workouts().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get workout")
		return
	}

	writeJSON(w, http.StatusOK, workout)
}

// create handles POST /api/workouts and saves a completed workout.
func (h *WorkoutsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Reps < 0 {
		writeError(w, http.StatusBadRequest, "Reps must not be negative")
		return
	}
	if req.Accuracy < 0 || req.Accuracy > 100 {
		writeError(w, http.StatusBadRequest, "Accuracy must be between 0 and 100")
		return
	}

	exercise := req.Exercise
	if exercise == "" {
		exercise = h.store.Settings().GetDefault(store.SettingExercise, "Squats")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date, want RFC 3339")
			return
		}
		date = parsed
	}

	workout := &store.Workout{
		ID:       uuid.New().String(),
		Date:     date,
		Exercise: exercise,
		Reps:     req.Reps,
		Accuracy: req.Accuracy,
	}

	if err := h.store.Workouts().Create(workout); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save workout")
		return
	}

	// History and cloud are best effort: the database row is the record
	if h.history != nil {
		if err := h.history.Append(workout); err != nil {
			log.Printf("failed to append workout %s to history: %v", workout.ID, err)
		}
	}
	if h.sync != nil {
		h.sync.PushAsync(workout)
	}

	writeJSON(w, http.StatusCreated, workout)
}

// delete handles DELETE /api/workouts/{id}.
func (h *WorkoutsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Workouts().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete workout")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
