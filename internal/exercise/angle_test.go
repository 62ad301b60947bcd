package exercise

import (
	"math"
	"testing"
)

func TestAngle_Collinear(t *testing.T) {
	// Vertex between two collinear points gives a straight angle
	got := Angle(Point{X: 0, Y: 0}, Point{X: 0.5, Y: 0}, Point{X: 1, Y: 0})
	if math.Abs(got-180) > 1e-6 {
		t.Errorf("Angle() = %f, want 180", got)
	}
}

func TestAngle_RightAngle(t *testing.T) {
	got := Angle(Point{X: 1, Y: 0}, Point{X: 0, Y: 0}, Point{X: 0, Y: 1})
	if math.Abs(got-90) > 1e-6 {
		t.Errorf("Angle() = %f, want 90", got)
	}
}

func TestAngle_ZeroWhenFolded(t *testing.T) {
	// Both segments point the same way
	got := Angle(Point{X: 1, Y: 1}, Point{X: 0, Y: 0}, Point{X: 2, Y: 2})
	if math.Abs(got) > 1e-6 {
		t.Errorf("Angle() = %f, want 0", got)
	}
}

func TestAngle_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
	}{
		{"a equals vertex", Point{X: 0.3, Y: 0.3}, Point{X: 0.3, Y: 0.3}, Point{X: 1, Y: 1}},
		{"c equals vertex", Point{X: 1, Y: 1}, Point{X: 0.3, Y: 0.3}, Point{X: 0.3, Y: 0.3}},
		{"all coincident", Point{}, Point{}, Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Angle(tt.a, tt.b, tt.c)
			if math.IsNaN(got) {
				t.Fatal("Angle() returned NaN for degenerate input")
			}
			if got != NeutralAngle {
				t.Errorf("Angle() = %f, want neutral %f", got, NeutralAngle)
			}
		})
	}
}

func TestAngle_ClampsCosine(t *testing.T) {
	// Nearly collinear points can push the computed cosine past 1.0 through
	// rounding; the result must stay a valid angle, never NaN.
	a := Point{X: 0.1000000001, Y: 0.2000000002}
	b := Point{X: 0.2, Y: 0.4}
	c := Point{X: 0.3, Y: 0.6}

	got := Angle(a, b, c)
	if math.IsNaN(got) {
		t.Fatal("Angle() returned NaN near the arccosine domain boundary")
	}
	if got < 0 || got > 180 {
		t.Errorf("Angle() = %f, want within [0, 180]", got)
	}
}

func TestAngle_Deterministic(t *testing.T) {
	a := Point{X: 0.31, Y: 0.52}
	b := Point{X: 0.33, Y: 0.71}
	c := Point{X: 0.30, Y: 0.90}

	first := Angle(a, b, c)
	for i := 0; i < 10; i++ {
		if got := Angle(a, b, c); got != first {
			t.Fatalf("Angle() not deterministic: %f != %f", got, first)
		}
	}
}
