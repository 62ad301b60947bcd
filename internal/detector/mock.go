package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	pose *PoseLandmarks
	err  error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPose sets the pose that will be returned by Detect.
// Pass nil to simulate "no person detected".
func (m *MockDetector) SetPose(pose *PoseLandmarks) {
	m.pose = pose
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured pose or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*PoseLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pose, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// basePose returns a full-body pose facing the camera with every landmark
// visible. Leg joints are overwritten by the specific presets below.
func basePose() *PoseLandmarks {
	pose := &PoseLandmarks{Score: 0.95}

	positions := map[int]Point3D{
		Nose:          {X: 0.50, Y: 0.10},
		LeftEyeInner:  {X: 0.48, Y: 0.09},
		LeftEye:       {X: 0.47, Y: 0.09},
		LeftEyeOuter:  {X: 0.46, Y: 0.09},
		RightEyeInner: {X: 0.52, Y: 0.09},
		RightEye:      {X: 0.53, Y: 0.09},
		RightEyeOuter: {X: 0.54, Y: 0.09},
		LeftEar:       {X: 0.45, Y: 0.10},
		RightEar:      {X: 0.55, Y: 0.10},
		MouthLeft:     {X: 0.48, Y: 0.12},
		MouthRight:    {X: 0.52, Y: 0.12},
		LeftShoulder:  {X: 0.42, Y: 0.22},
		RightShoulder: {X: 0.58, Y: 0.22},
		LeftElbow:     {X: 0.40, Y: 0.34},
		RightElbow:    {X: 0.60, Y: 0.34},
		LeftWrist:     {X: 0.39, Y: 0.45},
		RightWrist:    {X: 0.61, Y: 0.45},
		LeftPinky:     {X: 0.38, Y: 0.48},
		RightPinky:    {X: 0.62, Y: 0.48},
		LeftIndex:     {X: 0.38, Y: 0.47},
		RightIndex:    {X: 0.62, Y: 0.47},
		LeftThumb:     {X: 0.39, Y: 0.47},
		RightThumb:    {X: 0.61, Y: 0.47},
		LeftHip:       {X: 0.45, Y: 0.50},
		RightHip:      {X: 0.55, Y: 0.50},
		LeftKnee:      {X: 0.45, Y: 0.70},
		RightKnee:     {X: 0.55, Y: 0.70},
		LeftAnkle:     {X: 0.45, Y: 0.90},
		RightAnkle:    {X: 0.55, Y: 0.90},
		LeftHeel:      {X: 0.44, Y: 0.92},
		RightHeel:     {X: 0.56, Y: 0.92},
		LeftFootIndex: {X: 0.46, Y: 0.94},
		RightFootIndex: {X: 0.54, Y: 0.94},
	}

	for i := 0; i < NumLandmarks; i++ {
		p := positions[i]
		p.Visibility = 0.95
		pose.Points[i] = p
	}

	return pose
}

// StandingPose returns a preset pose with the legs fully extended.
// Hip, knee, and ankle are collinear on each side, so both knee angles
// are 180 degrees.
func StandingPose() *PoseLandmarks {
	return basePose()
}

// DeepSquatPose returns a preset pose at full squat depth: hips dropped
// just below knee level. Both knee angles are well under 90 degrees.
func DeepSquatPose() *PoseLandmarks {
	pose := basePose()

	pose.Points[LeftHip] = Point3D{X: 0.57, Y: 0.74, Visibility: 0.95}
	pose.Points[LeftKnee] = Point3D{X: 0.45, Y: 0.70, Visibility: 0.95}
	pose.Points[LeftAnkle] = Point3D{X: 0.47, Y: 0.90, Visibility: 0.95}

	pose.Points[RightHip] = Point3D{X: 0.43, Y: 0.74, Visibility: 0.95}
	pose.Points[RightKnee] = Point3D{X: 0.55, Y: 0.70, Visibility: 0.95}
	pose.Points[RightAnkle] = Point3D{X: 0.53, Y: 0.90, Visibility: 0.95}

	return pose
}

// HalfSquatPose returns a preset pose in the transition zone with both
// knee angles at 120 degrees.
func HalfSquatPose() *PoseLandmarks {
	pose := basePose()

	// Shin vertical, thigh rotated 120 degrees from it
	pose.Points[LeftHip] = Point3D{X: 0.623, Y: 0.60, Visibility: 0.95}
	pose.Points[LeftKnee] = Point3D{X: 0.45, Y: 0.70, Visibility: 0.95}
	pose.Points[LeftAnkle] = Point3D{X: 0.45, Y: 0.90, Visibility: 0.95}

	pose.Points[RightHip] = Point3D{X: 0.377, Y: 0.60, Visibility: 0.95}
	pose.Points[RightKnee] = Point3D{X: 0.55, Y: 0.70, Visibility: 0.95}
	pose.Points[RightAnkle] = Point3D{X: 0.55, Y: 0.90, Visibility: 0.95}

	return pose
}
