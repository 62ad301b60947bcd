// Package e2e exercises the full workout flow through the public HTTP API:
// start a session, perform squats via preset poses, save the workout, and
// read it back from every persistence layer.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/smitra/baithak/internal/app"
	"github.com/smitra/baithak/internal/detector"
	"github.com/smitra/baithak/internal/exercise"
	"github.com/smitra/baithak/internal/server"
	"github.com/smitra/baithak/internal/store"
)

func TestWorkoutFlow(t *testing.T) {
	tmpDir := t.TempDir()

	st, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	history := store.NewHistory(filepath.Join(tmpDir, "history.csv"))

	a := app.New(app.Config{
		Store:        st,
		CameraID:     -1,
		MotionThresh: 1.0,
		VoiceEnabled: false,
	})

	srv := httptest.NewServer(server.New(server.Config{
		Store:    st,
		History:  history,
		Sessions: a.Sessions(),
		Source:   a,
	}))
	defer srv.Close()

	// Start a session
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	var created struct {
		ID    string         `json:"id"`
		State exercise.State `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	resp.Body.Close()
	if created.State.Feedback != exercise.MsgReady {
		t.Errorf("new session Feedback = %q, want %q", created.State.Feedback, exercise.MsgReady)
	}

	// Perform three squats with preset poses
	sess, err := a.Sessions().Get(created.ID)
	if err != nil {
		t.Fatalf("session not found: %v", err)
	}
	for i := 0; i < 3; i++ {
		for _, pose := range []*detector.PoseLandmarks{
			detector.StandingPose(),
			detector.HalfSquatPose(),
			detector.DeepSquatPose(),
			detector.HalfSquatPose(),
			detector.StandingPose(),
		} {
			if _, tracked := sess.Counter.UpdateFromPose(pose); !tracked {
				t.Fatal("preset pose should be tracked")
			}
		}
	}

	// Read the session state over HTTP
	resp, err = http.Get(srv.URL + "/api/sessions/" + created.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	var current struct {
		State exercise.State `json:"state"`
	}
	json.NewDecoder(resp.Body).Decode(&current)
	resp.Body.Close()

	if current.State.Count != 3 {
		t.Fatalf("Count = %d, want 3 after three squat cycles", current.State.Count)
	}
	if current.State.Accuracy != 45 {
		t.Errorf("Accuracy = %d, want 45 (three reps at +15 each)", current.State.Accuracy)
	}

	// Save the workout
	body, _ := json.Marshal(map[string]any{
		"exercise": "Squats",
		"reps":     current.State.Count,
		"accuracy": current.State.Accuracy,
	})
	resp, err = http.Post(srv.URL+"/api/workouts", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("save workout: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save workout status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var saved store.Workout
	json.NewDecoder(resp.Body).Decode(&saved)
	resp.Body.Close()

	// Verify the database record
	stored, err := st.Workouts().GetByID(saved.ID)
	if err != nil {
		t.Fatalf("workout not in database: %v", err)
	}
	if stored.Reps != 3 {
		t.Errorf("stored Reps = %d, want 3", stored.Reps)
	}

	// Verify the aggregate stats endpoint
	resp, err = http.Get(srv.URL + "/api/workouts/stats")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	var totals store.Totals
	json.NewDecoder(resp.Body).Decode(&totals)
	resp.Body.Close()
	if totals.Workouts != 1 || totals.Reps != 3 {
		t.Errorf("totals = %+v, want 1 workout with 3 reps", totals)
	}

	// Verify the CSV history
	rows, err := history.Read()
	if err != nil {
		t.Fatalf("history.Read() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Reps != 3 {
		t.Errorf("history rows = %v, want one row with 3 reps", rows)
	}

	// Reset the session and confirm a clean slate
	resp, err = http.Post(srv.URL+"/api/sessions/"+created.ID+"/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("reset session: %v", err)
	}
	var afterReset struct {
		State exercise.State `json:"state"`
	}
	json.NewDecoder(resp.Body).Decode(&afterReset)
	resp.Body.Close()
	if afterReset.State.Count != 0 {
		t.Errorf("Count after reset = %d, want 0", afterReset.State.Count)
	}
}

func TestNoPoseHandling(t *testing.T) {
	st, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{Store: st, CameraID: -1, VoiceEnabled: false})

	counter := a.CurrentSession().Counter
	counter.Update(170, 170)
	counter.Update(80, 80)
	counter.Update(170, 170)

	// A frame with occluded legs must not disturb the counted state
	occluded := detector.StandingPose()
	occluded.Points[detector.LeftKnee].Visibility = 0.1
	occluded.Points[detector.RightKnee].Visibility = 0.1

	state, tracked := counter.UpdateFromPose(occluded)
	if tracked {
		t.Error("occluded pose should not be tracked")
	}
	if state.Feedback != exercise.MsgNoPose {
		t.Errorf("Feedback = %q, want %q", state.Feedback, exercise.MsgNoPose)
	}
	if state.Count != 1 {
		t.Errorf("display Count = %d, want 1 preserved", state.Count)
	}
	if got := counter.Snapshot(); got.Count != 1 || got.Feedback == exercise.MsgNoPose {
		t.Errorf("persisted state mutated by no-pose frame: %+v", got)
	}
}
