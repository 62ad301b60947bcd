// Package feedback speaks coaching messages without ever blocking the
// frame analysis loop.
package feedback

import (
	"context"
	"log"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// QueueSize bounds the number of pending messages. Under load the newest
// message is dropped rather than stalling the producer.
const QueueSize = 8

// speakTimeout caps a single synthesis invocation.
const speakTimeout = 10 * time.Second

// Engine synthesizes one utterance. Implementations may block.
type Engine interface {
	Speak(ctx context.Context, text string) error
}

// Speaker delivers feedback text to a speech engine through a bounded,
// non-blocking queue consumed by a single background worker.
type Speaker struct {
	engine  Engine
	queue   chan string
	stopCh  chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

// NewSpeaker creates a Speaker and starts its worker goroutine.
// A nil engine selects the platform speech command.
func NewSpeaker(engine Engine) *Speaker {
	if engine == nil {
		engine = commandEngine{}
	}

	s := &Speaker{
		engine: engine,
		queue:  make(chan string, QueueSize),
		stopCh: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.run()

	return s
}

// Say enqueues a message for speech. It never blocks: when the queue is
// full the message is silently dropped.
func (s *Speaker) Say(text string) {
	text = sanitize(text)
	if text == "" {
		return
	}

	select {
	case s.queue <- text:
	default:
		// Queue full: drop the newest message
	}
}

// Close stops the worker. Pending messages are not flushed; delivery is
// best-effort by design.
func (s *Speaker) Close() {
	s.stopped.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
}

func (s *Speaker) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopCh:
			return
		case text := <-s.queue:
			ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
			if err := s.engine.Speak(ctx, text); err != nil {
				log.Printf("speech synthesis failed: %v", err)
			}
			cancel()
		}
	}
}

// sanitize strips everything but letters, digits, and spaces so shell-level
// speech commands receive plain text.
func sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r == ' ' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// commandEngine shells out to the platform text-to-speech command:
// "say" on macOS, "espeak" elsewhere.
type commandEngine struct{}

func (commandEngine) Speak(ctx context.Context, text string) error {
	name := "espeak"
	if runtime.GOOS == "darwin" {
		name = "say"
	}

	cmd := exec.CommandContext(ctx, name, text)
	return cmd.Run()
}
