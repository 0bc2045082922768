package tournament

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Run wires the generator, worker pool, and coordinator together for one
// tournament and blocks until it finishes. It returns the coordinator so
// callers can inspect final statistics.
//
// The coordinator's Run loop (not a closed events channel) is what ends
// the tournament: it exits once threads_running returns to zero after at
// least one ThreadStart, so this function never closes the shared events
// channel itself — doing so while the best-effort keypress watcher might
// still be mid-send would risk a send-on-closed-channel panic for no
// benefit, since the coordinator doesn't need channel closure to know
// it's done.
func Run(settings Settings, out io.Writer, log zerolog.Logger) (*Coordinator, error) {
	if len(settings.Players) != 2 {
		return nil, fmt.Errorf("tournament: duel mode requires exactly 2 players, got %d", len(settings.Players))
	}

	numThreads := settings.NumThreads
	if numThreads < 1 {
		numThreads = 1
	}

	gen := NewGenerator(len(settings.Openings), settings.MaxGames)
	events := make(chan Event, 4*numThreads)
	coord := NewCoordinator(settings, out, log)

	var g errgroup.Group
	for i := 0; i < numThreads; i++ {
		id := i
		g.Go(func() error {
			NewWorker(id, settings, gen, coord.StopFlag(), events, log).Run()
			return nil
		})
	}

	go watchKeypress(events)

	coord.Run(events)

	return coord, g.Wait()
}

// watchKeypress is the auxiliary input-watcher task: it blocks on stdin
// line reads and posts KeyPress, a reserved hook that currently only logs.
// It is never joined — it simply outlives the tournament and is abandoned
// when the process exits, an accepted limitation rather than a leak worth
// engineering around.
func watchKeypress(events chan<- Event) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		events <- Event{Kind: EventKeyPress}
	}
}
