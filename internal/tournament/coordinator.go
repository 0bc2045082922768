package tournament

import (
	"io"
	"sync/atomic"

	"github.com/kz04px/cutergames/internal/protocol"
	"github.com/kz04px/cutergames/internal/stats"
	"github.com/rs/zerolog"
)

// PlayerStats is the per-player statistics record the coordinator owns
// exclusively.
type PlayerStats struct {
	Name         string
	Played       int
	Crashes      int
	Timeouts     int
	IllegalMoves int
	WLD          stats.WLD
	WLDPairs     stats.WLDPairs
}

// TournamentStats is the run-wide statistics record.
type TournamentStats struct {
	GamesCompleted   int
	PlayersCreated   int
	PlayersDestroyed int
}

// Coordinator is the single-threaded event reducer: the sole writer of
// PlayerStats, TournamentStats, the pair store, and the stop flag.
// Re-architecting this must preserve that invariant.
type Coordinator struct {
	settings Settings
	stats    []PlayerStats
	tstats   TournamentStats

	// pairStore holds the first game of a pair, keyed by game_id, until
	// its partner (id XOR 1) completes.
	pairStore map[int]GameData

	stop           *atomic.Bool
	threadsRunning int
	anyThreadSeen  bool

	out io.Writer
	log zerolog.Logger
}

// NewCoordinator builds a coordinator over settings, reporting to out and
// logging to log. Player stats are seeded once, at construction.
func NewCoordinator(settings Settings, out io.Writer, log zerolog.Logger) *Coordinator {
	st := make([]PlayerStats, len(settings.Players))
	for i, p := range settings.Players {
		st[i].Name = p.Name
	}
	return &Coordinator{
		settings:  settings,
		stats:     st,
		pairStore: make(map[int]GameData),
		stop:      new(atomic.Bool),
		out:       out,
		log:       log,
	}
}

// StopFlag returns the shared, write-once-by-the-coordinator stop flag
// workers observe on every loop iteration.
func (c *Coordinator) StopFlag() *atomic.Bool { return c.stop }

// Stats returns the coordinator's own per-player statistics slice (not a
// copy), for callers (e.g. tests) that need to inspect final state.
func (c *Coordinator) Stats() []PlayerStats { return c.stats }

// Tournament returns a snapshot of the run-wide counters.
func (c *Coordinator) Tournament() TournamentStats { return c.tstats }

// Run consumes events until threads_running returns to zero after at
// least one ThreadStart, or the channel closes. It prints the final
// report before returning.
func (c *Coordinator) Run(events <-chan Event) {
loop:
	for ev := range events {
		switch ev.Kind {
		case EventGameStart:
			c.log.Debug().Int("game_id", ev.GameID).Int("opening", ev.OpeningIdx).Msg("game start")
		case EventGameFinish:
			c.onGameFinish(ev.GameData)
		case EventPlayerCreate:
			c.tstats.PlayersCreated++
		case EventPlayerDestroy:
			c.tstats.PlayersDestroyed++
		case EventThreadStart:
			c.anyThreadSeen = true
			c.threadsRunning++
		case EventThreadFinish:
			c.threadsRunning--
			if c.anyThreadSeen && c.threadsRunning == 0 {
				break loop
			}
		case EventTournamentFinish:
			c.stop.Store(true)
		case EventKeyPress:
			// Reserved hook for interactive stop; currently logs only.
			c.log.Info().Msg("keypress received (no action bound)")
		}
	}
	c.printFinal()
}

// onGameFinish is the GameFinish reducer step: it updates WLD/pair/illegal
// move/timeout bookkeeping, evaluates SPRT autostop and the game cap, and
// decides whether a periodic report is due. Pair bookkeeping and the
// periodic print decision are invoked as direct method calls rather than
// re-posted onto the event channel: the coordinator is the only producer
// and only consumer of both, so routing them through the channel would add
// a self-send with no concurrency benefit (recorded in DESIGN.md).
func (c *Coordinator) onGameFinish(gd GameData) {
	if gd.FirstPlayerIdx == gd.SecondPlayerIdx {
		c.log.Error().Int("game_id", gd.GameID).Msg("game finished with identical player indices, dropping")
		return
	}
	if _, dup := c.pairStore[gd.GameID]; dup {
		c.log.Error().Int("game_id", gd.GameID).Msg("game_id already present in pair store, dropping")
		return
	}

	p1, p2 := gd.FirstPlayerIdx, gd.SecondPlayerIdx
	c.stats[p1].Played++
	c.stats[p2].Played++

	switch gd.Outcome {
	case protocol.OutcomeP1Win:
		c.stats[p1].WLD.W++
		c.stats[p2].WLD.L++
	case protocol.OutcomeP2Win:
		c.stats[p1].WLD.L++
		c.stats[p2].WLD.W++
	case protocol.OutcomeDraw:
		c.stats[p1].WLD.D++
		c.stats[p2].WLD.D++
	case protocol.OutcomeNone:
		c.log.Debug().Int("game_id", gd.GameID).Msg("outcome none, excluded from WLD")
	}

	switch gd.Abort {
	case AbortIllegalMove:
		// The forfeiting side is whichever player did NOT win.
		if gd.Outcome == protocol.OutcomeP1Win {
			c.stats[p2].IllegalMoves++
		} else {
			c.stats[p1].IllegalMoves++
		}
	case AbortTimeout:
		if gd.Outcome == protocol.OutcomeP1Win {
			c.stats[p2].Timeouts++
		} else {
			c.stats[p1].Timeouts++
		}
	}

	c.tstats.GamesCompleted++

	shouldStop := c.evaluateSPRT()
	if c.settings.MaxGames > 0 && c.tstats.GamesCompleted >= c.settings.MaxGames {
		shouldStop = true
	}

	c.foldPair(gd)

	freq := c.settings.UpdateFrequency
	if freq <= 0 {
		freq = 1
	}
	if c.tstats.GamesCompleted <= freq || c.tstats.GamesCompleted%freq == 0 || shouldStop {
		c.printUpdate()
	}

	if shouldStop {
		c.stop.Store(true)
	}
}

// evaluateSPRT runs the trinomial autostop check against player 0's WLD.
// Pentanomial autostop is never evaluated here — the pentanomial
// SPRTSettings exist for reporting only.
func (c *Coordinator) evaluateSPRT() bool {
	if c.settings.SPRTTrinomial == nil || !c.settings.SPRTTrinomial.Autostop {
		return false
	}
	if len(c.stats) == 0 {
		return false
	}
	stop, _ := stats.ShouldStop(c.stats[0].WLD, sprtParams(*c.settings.SPRTTrinomial))
	return stop
}

func sprtParams(s SPRTSettings) stats.SPRTParams {
	return stats.SPRTParams{Elo0: s.Elo0, Elo1: s.Elo1, Alpha: s.Alpha, Beta: s.Beta}
}

// pairResult is one game's outcome reduced to a pair-table symbol, from
// player idx's perspective.
type pairResult int

const (
	pairNone pairResult = iota
	pairWin
	pairLoss
	pairDraw
)

// resultFor translates a single game's raw Outcome (which is always
// relative to *that game's own* first/second player, and so flips meaning
// between the two colour-reversed games of a pair) into player idx's
// actual result in that game.
func resultFor(idx int, gd GameData) pairResult {
	var fromIdxPerspective protocol.Outcome
	if idx == gd.FirstPlayerIdx {
		fromIdxPerspective = gd.Outcome
	} else {
		switch gd.Outcome {
		case protocol.OutcomeP1Win:
			fromIdxPerspective = protocol.OutcomeP2Win
		case protocol.OutcomeP2Win:
			fromIdxPerspective = protocol.OutcomeP1Win
		default:
			fromIdxPerspective = gd.Outcome
		}
	}
	switch fromIdxPerspective {
	case protocol.OutcomeP1Win:
		return pairWin
	case protocol.OutcomeP2Win:
		return pairLoss
	case protocol.OutcomeDraw:
		return pairDraw
	default:
		return pairNone
	}
}

// opposite returns the other duelist's result in the same game: wins and
// losses swap, draws stay draws.
func opposite(r pairResult) pairResult {
	switch r {
	case pairWin:
		return pairLoss
	case pairLoss:
		return pairWin
	default:
		return r
	}
}

// foldPair implements the pair store bookkeeping, extended to cover pair
// outcomes involving a draw.
func (c *Coordinator) foldPair(gd GameData) {
	partnerID := gd.GameID ^ 1
	partner, ok := c.pairStore[partnerID]
	if !ok {
		c.pairStore[gd.GameID] = gd
		return
	}
	delete(c.pairStore, partnerID)

	first, second := gd, partner
	if partnerID < gd.GameID {
		first, second = partner, gd
	}

	// The duel's two identities are always global indices 0 and 1. r1/r2
	// are already player-0's actual per-game results (resultFor handles
	// the raw-outcome flip between the two colour-reversed games), so
	// they index WLDPairs directly.
	r1, r2 := resultFor(0, first), resultFor(0, second)
	if r1 == pairNone || r2 == pairNone {
		c.log.Debug().Int("game_id", gd.GameID).Msg("pair includes a None outcome, pentanomial update skipped")
		return
	}
	c.applyPairTable(0, 1, r1, r2)
}

// applyPairTable updates p1idx's and p2idx's WLDPairs for one completed
// pair, across a 3x3 table of win/loss/draw outcomes for each of the
// pair's two games. r1/r2 are p1idx's actual results in the pair's two
// games; p2idx's results are the opposite in each game (wins and losses
// swap, draws don't).
func (c *Coordinator) applyPairTable(p1idx, p2idx int, r1, r2 pairResult) {
	bumpPair(&c.stats[p1idx].WLDPairs, r1, r2)
	bumpPair(&c.stats[p2idx].WLDPairs, opposite(r1), opposite(r2))
}

func bumpPair(wp *stats.WLDPairs, r1, r2 pairResult) {
	switch {
	case r1 == pairWin && r2 == pairWin:
		wp.WW++
	case r1 == pairWin && r2 == pairLoss:
		wp.WL++
	case r1 == pairWin && r2 == pairDraw:
		wp.WD++
	case r1 == pairLoss && r2 == pairWin:
		wp.LW++
	case r1 == pairLoss && r2 == pairLoss:
		wp.LL++
	case r1 == pairLoss && r2 == pairDraw:
		wp.LD++
	case r1 == pairDraw && r2 == pairWin:
		wp.DW++
	case r1 == pairDraw && r2 == pairLoss:
		wp.DL++
	case r1 == pairDraw && r2 == pairDraw:
		wp.DD++
	}
}
