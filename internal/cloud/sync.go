// Package cloud pushes saved workouts to an optional remote backup service.
// Sync is best effort: the local database is always the source of truth, and
// a failed push never blocks or fails the save that triggered it.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/smitra/baithak/internal/store"
)

const requestTimeout = 10 * time.Second

// Syncer replicates workouts to a remote HTTP endpoint.
type Syncer struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSyncer creates a Syncer for the given base URL. An empty URL disables
// syncing entirely.
func NewSyncer(baseURL, apiKey string) *Syncer {
	return &Syncer{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// Enabled reports whether a sync endpoint is configured.
func (s *Syncer) Enabled() bool {
	return s != nil && s.baseURL != ""
}

// Push uploads one workout. Callers treat errors as advisory.
func (s *Syncer) Push(ctx context.Context, w *store.Workout) error {
	if !s.Enabled() {
		return nil
	}

	body, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal workout: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/workouts", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push workout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push workout: server returned %s", resp.Status)
	}

	return nil
}

// PushAsync uploads a workout in the background, logging failures instead of
// returning them.
func (s *Syncer) PushAsync(w *store.Workout) {
	if !s.Enabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := s.Push(ctx, w); err != nil {
			log.Printf("cloud sync failed for workout %s: %v", w.ID, err)
		}
	}()
}

// Fetch downloads all workouts stored remotely.
func (s *Syncer) Fetch(ctx context.Context) ([]*store.Workout, error) {
	if !s.Enabled() {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/workouts", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch workouts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch workouts: server returned %s", resp.Status)
	}

	var workouts []*store.Workout
	if err := json.NewDecoder(resp.Body).Decode(&workouts); err != nil {
		return nil, fmt.Errorf("decode workouts: %w", err)
	}

	return workouts, nil
}
