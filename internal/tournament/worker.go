package tournament

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/kz04px/cutergames/internal/ataxx"
	"github.com/kz04px/cutergames/internal/protocol"
	"github.com/kz04px/cutergames/internal/telemetry"
	"github.com/rs/zerolog"
)

// Worker pulls Work from a shared Generator, spawns two engine
// subprocesses per game, drives the game, and posts events back to the
// coordinator. Workers never read or mutate statistics directly — they
// only send events.
type Worker struct {
	id       int
	settings Settings
	gen      *Generator
	stop     *atomic.Bool
	events   chan<- Event
	log      zerolog.Logger
}

// NewWorker builds a worker. events is the coordinator's shared sender;
// stop is the coordinator's write-once stop flag.
func NewWorker(id int, settings Settings, gen *Generator, stop *atomic.Bool, events chan<- Event, log zerolog.Logger) *Worker {
	return &Worker{id: id, settings: settings, gen: gen, stop: stop, events: events, log: log.With().Int("worker", id).Logger()}
}

// Run executes the worker loop until the stop flag is set or the
// generator is exhausted, then emits ThreadFinish.
func (w *Worker) Run() {
	w.events <- Event{Kind: EventThreadStart, WorkerID: w.id}

	for {
		if w.stop.Load() {
			break
		}

		work, ok := w.gen.Next()
		if !ok {
			break
		}

		p1, tr1, err := w.spawn(work.FirstPlayerIdx)
		if err != nil {
			w.log.Error().Err(err).Int("player", work.FirstPlayerIdx).Msg("spawn failed")
			continue
		}
		w.events <- Event{Kind: EventPlayerCreate, WorkerID: w.id}

		p2, tr2, err := w.spawn(work.SecondPlayerIdx)
		if err != nil {
			w.log.Error().Err(err).Int("player", work.SecondPlayerIdx).Msg("spawn failed")
			_ = p1.Close()
			tr1.Close()
			w.events <- Event{Kind: EventPlayerDestroy, WorkerID: w.id}
			continue
		}
		w.events <- Event{Kind: EventPlayerCreate, WorkerID: w.id}

		if err := w.initEngine(p1); err != nil {
			w.log.Error().Err(err).Msg("player1 init failed")
		}
		if err := w.initEngine(p2); err != nil {
			w.log.Error().Err(err).Msg("player2 init failed")
		}

		*p1.ClockMut() = w.settings.Clock
		*p2.ClockMut() = w.settings.Clock

		w.events <- Event{Kind: EventGameStart, GameID: work.GameID, OpeningIdx: work.OpeningIdx}
		opening := "startpos"
		if work.OpeningIdx < len(w.settings.Openings) {
			opening = w.settings.Openings[work.OpeningIdx]
		}

		gd := Play(work.GameID, work.FirstPlayerIdx, work.SecondPlayerIdx, opening, p1, p2)
		w.events <- Event{Kind: EventGameFinish, GameData: gd}

		_ = p1.Close()
		tr1.Close()
		w.events <- Event{Kind: EventPlayerDestroy, WorkerID: w.id}
		_ = p2.Close()
		tr2.Close()
		w.events <- Event{Kind: EventPlayerDestroy, WorkerID: w.id}
	}

	w.events <- Event{Kind: EventThreadFinish, WorkerID: w.id}
}

func (w *Worker) initEngine(p protocol.Player) error {
	if err := p.Init(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := p.ReadySync(); err != nil {
		return fmt.Errorf("ready: %w", err)
	}
	return nil
}

// spawn starts one engine subprocess behind a protocol.Player. When the
// player is configured for debug tracing, a LineTracer is started alongside
// it so per-line I/O logging never blocks the adapter's send/read path; the
// caller must Close the returned tracer once the adapter itself is closed.
// The returned tracer is nil when the player isn't configured for tracing;
// LineTracer.Close is nil-safe so callers never need to check.
func (w *Worker) spawn(idx int) (protocol.Player, *telemetry.LineTracer, error) {
	ps := w.settings.Players[idx]

	var tracer *telemetry.LineTracer
	trace := protocol.TraceFunc(nil)
	if ps.Debug {
		tracer = telemetry.NewLineTracer(w.log, 256)
		trace = func(dir, line string) {
			tracer.Trace(telemetry.LineEvent{
				Timestamp: time.Now(),
				Worker:    w.id,
				Player:    ps.Name,
				Direction: dir,
				Line:      line,
			})
		}
	}

	// Every engine is launched with "--game ataxx", then the player's own
	// extra parameters.
	args := append([]string{"--game", ataxx.Rules{}.Name()}, ps.ExtraParameters...)

	var (
		p   protocol.Player
		err error
	)
	switch ps.Protocol {
	case UGI:
		p, err = protocol.NewUGI(ps.ExecutablePath, args, trace)
	case UAI:
		p, err = protocol.NewUAI(ps.ExecutablePath, args, ataxx.Rules{}, trace)
	case UCI:
		// No chess rules oracle ships in this module; UCI falls back to
		// wire queries exactly like UGI.
		p, err = protocol.NewUCI(ps.ExecutablePath, args, nil, trace)
	default:
		return nil, tracer, fmt.Errorf("tournament: unknown protocol for player %q", ps.Name)
	}
	return p, tracer, err
}
