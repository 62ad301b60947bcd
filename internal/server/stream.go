package server

import (
	"fmt"
	"image"
	"image/color"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/smitra/baithak/internal/capture"
	"github.com/smitra/baithak/internal/exercise"
)

// StreamHandler serves MJPEG frames from the camera with the rep counter
// and feedback drawn on top.
type StreamHandler struct {
	camera capture.Camera
	source StateSource
}

// NewStreamHandler creates a StreamHandler. A nil source disables the overlay.
func NewStreamHandler(camera capture.Camera, source StateSource) *StreamHandler {
	return &StreamHandler{camera: camera, source: source}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		frame, err := h.camera.ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		if h.source != nil {
			drawOverlay(frame, h.source.State())
		}

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		// Write MJPEG frame
		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}

// drawOverlay burns the rep count, stage, knee angle, and feedback into the
// frame so any MJPEG viewer shows the coaching state.
func drawOverlay(frame *gocv.Mat, state exercise.State) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 0}
	green := color.RGBA{G: 255, A: 0}

	counter := fmt.Sprintf("Reps: %d  Stage: %s  Angle: %.1f", state.Count, state.Stage, state.Angle)
	gocv.PutText(frame, counter, image.Point{X: 10, Y: 30},
		gocv.FontHersheySimplex, 0.8, white, 2)

	if state.Feedback != "" {
		gocv.PutText(frame, state.Feedback, image.Point{X: 10, Y: 60},
			gocv.FontHersheySimplex, 0.7, green, 2)
	}

	accuracy := fmt.Sprintf("Accuracy: %d%%", state.Accuracy)
	gocv.PutText(frame, accuracy, image.Point{X: 10, Y: 90},
		gocv.FontHersheySimplex, 0.7, white, 2)
}
