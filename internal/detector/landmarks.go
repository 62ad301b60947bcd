// Package detector provides body pose detection interfaces and types for
// exercise tracking.
package detector

// Body landmark indices following the MediaPipe Pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// MinVisibility is the per-landmark visibility score below which a joint is
// treated as not reliably detected.
const MinVisibility = 0.5

// Point3D represents a detected landmark position with a visibility score.
// X and Y are normalized image coordinates; Z is depth relative to the hips.
type Point3D struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// PoseLandmarks represents the 33 body landmarks detected by MediaPipe Pose
// for a single frame.
type PoseLandmarks struct {
	Points [NumLandmarks]Point3D `json:"points"`
	Score  float64               `json:"score"`
}

// Visible reports whether every landmark at the given indices has a
// visibility score of at least MinVisibility.
func (p *PoseLandmarks) Visible(indices ...int) bool {
	if p == nil {
		return false
	}
	for _, i := range indices {
		if i < 0 || i >= NumLandmarks {
			return false
		}
		if p.Points[i].Visibility < MinVisibility {
			return false
		}
	}
	return true
}
