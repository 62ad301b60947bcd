package detector

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ModelComplexity != 0 {
		t.Errorf("ModelComplexity = %d, want 0", cfg.ModelComplexity)
	}
	if cfg.MinConfidence != 0.7 {
		t.Errorf("MinConfidence = %f, want 0.7", cfg.MinConfidence)
	}
	if cfg.MinTrackingConf != 0.5 {
		t.Errorf("MinTrackingConf = %f, want 0.5", cfg.MinTrackingConf)
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMockDetector()

	// No pose configured: nil, nil means "no person detected"
	pose, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if pose != nil {
		t.Error("expected nil pose when none configured")
	}

	m.SetPose(StandingPose())
	pose, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if pose == nil {
		t.Fatal("expected configured pose")
	}
	if pose.Score != 0.95 {
		t.Errorf("Score = %f, want 0.95", pose.Score)
	}

	wantErr := errors.New("camera unplugged")
	m.SetError(wantErr)
	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}
}

func TestPoseLandmarks_Visible(t *testing.T) {
	pose := StandingPose()

	if !pose.Visible(LeftHip, LeftKnee, LeftAnkle, RightHip, RightKnee, RightAnkle) {
		t.Error("preset pose should have all leg joints visible")
	}

	pose.Points[LeftKnee].Visibility = 0.2
	if pose.Visible(LeftHip, LeftKnee, LeftAnkle) {
		t.Error("occluded knee should fail the visibility check")
	}

	// Other joints still pass
	if !pose.Visible(RightHip, RightKnee, RightAnkle) {
		t.Error("right leg should still be visible")
	}

	if pose.Visible(-1) || pose.Visible(NumLandmarks) {
		t.Error("out-of-range index should fail the visibility check")
	}

	var nilPose *PoseLandmarks
	if nilPose.Visible(Nose) {
		t.Error("nil pose should never report visible joints")
	}
}

func TestPresetPoses_LegGeometry(t *testing.T) {
	// The presets encode known knee angles; verify the ordering that the
	// squat analysis relies on: standing legs are straight, the half squat
	// is bent, the deep squat is bent past parallel.
	standing := StandingPose()
	if standing.Points[LeftHip].X != standing.Points[LeftKnee].X ||
		standing.Points[LeftKnee].X != standing.Points[LeftAnkle].X {
		t.Error("standing pose left leg should be vertical (collinear joints)")
	}

	deep := DeepSquatPose()
	if deep.Points[LeftHip].Y <= deep.Points[LeftKnee].Y {
		t.Error("deep squat should place the hip below the knee")
	}

	half := HalfSquatPose()
	if half.Points[LeftHip].Y >= half.Points[LeftKnee].Y {
		t.Error("half squat should keep the hip above the knee")
	}
}
