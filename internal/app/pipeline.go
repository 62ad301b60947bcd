package app

import (
	"log"
	"time"
)

// runPipeline is the main loop that processes frames from the camera.
// It manages the transitions between idle and active modes based on motion.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. In active mode, run pose detection on every second frame
// 4. Feed knee angles to the current session's squat counter
// 5. Speak feedback when it changes, repeating every 30th frame
// 6. After 2s without motion, switch back to idle mode
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	// Alternating skip halves detector load in active mode
	skipFrame := false

	// Spoken feedback gating
	lastSpoken := ""
	frameCount := 0

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion gating
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode || a.Detector() == nil {
				frame.Close()
				continue
			}

			// Step 2: Skip every second active frame
			skipFrame = !skipFrame
			if skipFrame {
				frame.Close()
				continue
			}

			// Step 3: Pose detection
			pose, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting pose: %v", err)
				continue
			}

			// Step 4: Rep counting
			counter := a.CurrentSession().Counter
			var state = counter.NoPose()
			tracked := false
			if pose != nil {
				state, tracked = counter.UpdateFromPose(pose)
			}
			if !tracked {
				pose = nil
			}
			a.setLatest(pose, state)

			// Step 5: Spoken feedback, gated so the speech queue only sees
			// changes or a periodic reminder
			frameCount++
			if a.speaker != nil && state.Feedback != "" {
				if state.Feedback != lastSpoken || frameCount%FeedbackRepeatInterval == 0 {
					a.speaker.Say(state.Feedback)
					lastSpoken = state.Feedback
				}
			}
		}
	}
}
