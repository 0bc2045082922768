// Package telemetry provides the tournament engine's logging primitives:
// a leveled structured logger plus a non-blocking background writer for the
// high-frequency per-line engine trace used by protocol adapters.
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the coordinator's structured logger. verbose raises the
// level to Debug; otherwise only Info and above are emitted.
func NewLogger(w io.Writer, verbose bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// LineEvent is a single line of subprocess I/O captured for tracing.
type LineEvent struct {
	Timestamp time.Time
	Worker    int
	Player    string
	Direction string // "send" or "recv"
	Line      string
}

// LineTracer asynchronously logs subprocess I/O lines without blocking the
// protocol adapter that produced them: a buffered queue drained by a single
// background goroutine, dropping entries rather than blocking the engine
// when the queue is full.
type LineTracer struct {
	log   zerolog.Logger
	queue chan LineEvent
	done  chan struct{}
}

// NewLineTracer starts the background writer goroutine. Capacity bounds how
// many in-flight lines may be queued before new ones are dropped.
func NewLineTracer(log zerolog.Logger, capacity int) *LineTracer {
	if capacity <= 0 {
		capacity = 256
	}
	t := &LineTracer{
		log:   log,
		queue: make(chan LineEvent, capacity),
		done:  make(chan struct{}),
	}
	go t.writer()
	return t
}

// Trace queues a line for logging. Safe to call from any goroutine; never
// blocks the caller.
func (t *LineTracer) Trace(ev LineEvent) {
	if t == nil {
		return
	}
	select {
	case t.queue <- ev:
	default:
		t.log.Warn().Msg("trace queue full, dropping line")
	}
}

// Close drains the queue and stops the writer goroutine.
func (t *LineTracer) Close() {
	if t == nil {
		return
	}
	close(t.queue)
	<-t.done
}

func (t *LineTracer) writer() {
	for ev := range t.queue {
		t.log.Trace().
			Int("worker", ev.Worker).
			Str("player", ev.Player).
			Str("dir", ev.Direction).
			Str("line", ev.Line).
			Time("ts", ev.Timestamp).
			Msg("engine io")
	}
	close(t.done)
}
