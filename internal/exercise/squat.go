package exercise

import (
	"math"
	"sync"

	"github.com/smitra/baithak/internal/detector"
)

// Stage is the coarse exercise phase derived from the knee angle.
type Stage string

const (
	// StageUp means the legs are extended (standing).
	StageUp Stage = "up"
	// StageDown means the legs are flexed past squat depth.
	StageDown Stage = "down"
)

// Hysteresis thresholds for the squat state machine, in degrees.
// A rep requires a full excursion from above UpThreshold through below
// DownThreshold and back, so per-frame noise near a single crossover point
// cannot double-count or flap the stage.
const (
	// UpThreshold is the standing zone boundary (strictly greater than).
	UpThreshold = 160.0
	// DownThreshold is the deep-squat zone boundary (strictly less than).
	DownThreshold = 90.0
	// DescendPrompt is the angle below which a standing lifter is told to
	// keep descending.
	DescendPrompt = 140.0
	// RisePrompt is the angle above which a squatting lifter is told to
	// push back up.
	RisePrompt = 120.0
	// ShallowLoiter is the angle above which holding the down stage costs
	// accuracy.
	ShallowLoiter = 140.0
)

// Coaching messages.
const (
	MsgReady      = "Ready to start!"
	MsgRepDone    = "Great squat!"
	MsgGoodDepth  = "Perfect depth! Now stand up!"
	MsgDescend    = "Keep going down!"
	MsgRise       = "Push up!"
	MsgTooShallow = "Squat deeper for better results!"
	MsgNoPose     = "Position yourself in camera view"
)

// State is a snapshot of the exercise state after one analyzed frame.
type State struct {
	Count    int     `json:"count"`
	Stage    Stage   `json:"stage"`
	Angle    float64 `json:"angle"`
	Feedback string  `json:"feedback"`
	Accuracy int     `json:"accuracy"`
}

// SquatCounter tracks squat repetitions across a stream of per-frame knee
// angle measurements. One instance owns the state for one camera session;
// frames for that session must be fed serially. All methods are safe for a
// concurrent snapshot reader: a reader never observes a half-applied update.
type SquatCounter struct {
	mu       sync.Mutex
	stage    Stage
	count    int
	accuracy int
	feedback string
	angle    float64
}

// NewSquatCounter creates a counter in the initial standing state.
func NewSquatCounter() *SquatCounter {
	return &SquatCounter{
		stage:    StageUp,
		feedback: MsgReady,
		angle:    NeutralAngle,
	}
}

// Update consumes one frame's left and right knee angles and advances the
// state machine. It returns the resulting state snapshot.
//
// Transition policy on the averaged angle:
//   - above UpThreshold: standing. If the previous stage was down the rep is
//     complete: count it, reward accuracy.
//   - below DownThreshold: deep squat. First entry from up rewards depth.
//   - in between: stage unchanged; feedback prompts descent below
//     DescendPrompt (while up) or rising above RisePrompt (while down).
//
// After the stage logic, loitering above ShallowLoiter while the stage is
// still down overwrites the feedback and decrements accuracy. The override
// affects feedback and accuracy only, never the stage.
func (c *SquatCounter) Update(left, right float64) State {
	avg := (left + right) / 2

	c.mu.Lock()
	defer c.mu.Unlock()

	c.angle = avg

	switch {
	case avg > UpThreshold:
		if c.stage == StageDown {
			c.count++
			c.feedback = MsgRepDone
			c.accuracy = min(100, c.accuracy+10)
		}
		c.stage = StageUp

	case avg < DownThreshold:
		if c.stage == StageUp {
			c.feedback = MsgGoodDepth
			c.accuracy = min(100, c.accuracy+5)
		}
		c.stage = StageDown

	default:
		if c.stage == StageUp && avg < DescendPrompt {
			c.feedback = MsgDescend
		} else if c.stage == StageDown && avg > RisePrompt {
			c.feedback = MsgRise
		}
	}

	if avg > ShallowLoiter && c.stage == StageDown {
		c.feedback = MsgTooShallow
		c.accuracy = max(0, c.accuracy-1)
	}

	return c.stateLocked()
}

// UpdateFromPose extracts the hip, knee, and ankle joints from a detected
// pose, computes both knee angles, and feeds them to Update. If any required
// joint is missing or below the visibility threshold it returns the no-pose
// display state and false, leaving the counter untouched.
func (c *SquatCounter) UpdateFromPose(p *detector.PoseLandmarks) (State, bool) {
	if !p.Visible(
		detector.LeftHip, detector.LeftKnee, detector.LeftAnkle,
		detector.RightHip, detector.RightKnee, detector.RightAnkle,
	) {
		return c.NoPose(), false
	}

	left := Angle(joint(p, detector.LeftHip), joint(p, detector.LeftKnee), joint(p, detector.LeftAnkle))
	right := Angle(joint(p, detector.RightHip), joint(p, detector.RightKnee), joint(p, detector.RightAnkle))

	return c.Update(left, right), true
}

// NoPose returns the last-known state with the feedback replaced by a
// repositioning prompt and accuracy reported as zero. It is a display-only
// override for frames without reliable landmarks; the persisted count,
// stage, and accuracy are not mutated.
func (c *SquatCounter) NoPose() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stateLocked()
	s.Angle = NeutralAngle
	s.Feedback = MsgNoPose
	s.Accuracy = 0
	return s
}

// Snapshot returns the current state without mutating it.
func (c *SquatCounter) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Reset reinitializes the counter. Explicit user action only.
func (c *SquatCounter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count = 0
	c.stage = StageUp
	c.accuracy = 0
	c.feedback = MsgReady
	c.angle = NeutralAngle
}

// stateLocked builds a snapshot. Caller must hold c.mu.
func (c *SquatCounter) stateLocked() State {
	return State{
		Count:    c.count,
		Stage:    c.stage,
		Angle:    math.Round(c.angle*10) / 10,
		Feedback: c.feedback,
		Accuracy: min(100, max(0, c.accuracy)),
	}
}

func joint(p *detector.PoseLandmarks, i int) Point {
	return Point{X: p.Points[i].X, Y: p.Points[i].Y}
}
