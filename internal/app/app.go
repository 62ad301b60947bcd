// Package app wires the capture, detection, counting, and feedback pieces
// into the live coaching pipeline.
package app

import (
	"log"
	"sync"

	"github.com/smitra/baithak/internal/capture"
	"github.com/smitra/baithak/internal/detector"
	"github.com/smitra/baithak/internal/exercise"
	"github.com/smitra/baithak/internal/feedback"
	"github.com/smitra/baithak/internal/session"
	"github.com/smitra/baithak/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while nobody is moving in front of the camera.
	IdleFPS = 5
	// ActiveFPS is the frame rate during an active workout.
	ActiveFPS = 15
	// IdleTimeoutMs is how long motion must be absent before dropping back to idle.
	IdleTimeoutMs = 2000
	// FeedbackRepeatInterval repeats unchanged spoken feedback every Nth
	// analyzed frame so a lifter holding a bad position keeps hearing about it.
	FeedbackRepeatInterval = 30
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	VoiceEnabled bool
}

// App runs the squat coaching pipeline: camera frames in, counted reps and
// spoken feedback out.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	sessions *session.Manager
	current  *session.Session
	speaker  *feedback.Speaker

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	latestPose  *detector.PoseLandmarks
	latestState exercise.State
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	// A saved dashboard setting wins over the config file
	voice := config.VoiceEnabled
	if config.Store != nil {
		switch config.Store.Settings().GetDefault(store.SettingVoiceEnabled, "") {
		case "true":
			voice = true
		case "false":
			voice = false
		}
	}

	sessions := session.NewManager()

	a := &App{
		config:      config,
		camera:      capture.NewCamera(config.CameraID),
		motion:      capture.NewMotionDetector(motionThreshold),
		sessions:    sessions,
		current:     sessions.Create(),
		enabled:     false,
		stopCh:      nil,
		latestState: exercise.NewSquatCounter().Snapshot(),
	}

	if voice {
		a.speaker = feedback.NewSpeaker(nil)
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables rep tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether rep tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the pose detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Start begins the coaching pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Coaching pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.speaker != nil {
		a.speaker.Close()
	}

	log.Println("Coaching pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Sessions returns the session manager.
func (a *App) Sessions() *session.Manager {
	return a.sessions
}

// CurrentSession returns the session the live pipeline feeds.
func (a *App) CurrentSession() *session.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// Detector returns the pose detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// LatestPose returns the most recently detected pose, or nil when the last
// analyzed frame had no reliable landmarks.
func (a *App) LatestPose() *detector.PoseLandmarks {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latestPose
}

// State returns the exercise state of the last analyzed frame.
func (a *App) State() exercise.State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latestState
}

func (a *App) setLatest(pose *detector.PoseLandmarks, state exercise.State) {
	a.mu.Lock()
	a.latestPose = pose
	a.latestState = state
	a.mu.Unlock()
}
