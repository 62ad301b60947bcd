package detector

import "gocv.io/x/gocv"

// Detector defines the interface for body pose detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected pose landmarks.
	// Returns nil if no person is detected.
	Detect(frame *gocv.Mat) (*PoseLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// ModelComplexity selects the pose model (0 fastest, 2 most accurate).
	ModelComplexity int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
// The light model with a high detection threshold keeps per-frame latency
// low enough for live coaching.
func DefaultConfig() Config {
	return Config{
		ModelComplexity: 0,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
	}
}
