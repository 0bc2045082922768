// Package tournament is the concurrent tournament engine: the work
// generator, game driver, worker pool, and single-threaded event reducer
// that aggregate statistics and apply the SPRT stopping rule.
package tournament

import (
	"fmt"
	"strings"

	"github.com/kz04px/cutergames/internal/protocol"
)

// Protocol selects which wire dialect a player's engine speaks.
type Protocol int

const (
	UGI Protocol = iota
	UAI
	UCI
)

// ParseProtocol parses a protocol name, case-insensitively.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "ugi":
		return UGI, nil
	case "uai":
		return UAI, nil
	case "uci":
		return UCI, nil
	default:
		return 0, fmt.Errorf("tournament: unknown protocol %q", s)
	}
}

func (p Protocol) String() string {
	switch p {
	case UGI:
		return "ugi"
	case UAI:
		return "uai"
	case UCI:
		return "uci"
	default:
		return "unknown"
	}
}

// PlayerSettings is one engine's immutable configuration for the run.
type PlayerSettings struct {
	Name            string
	ExecutablePath  string
	Protocol        Protocol
	ExtraParameters []string
	Debug           bool
}

// SPRTSettings configures one SPRT instance. Two independent instances,
// trinomial and pentanomial, may be active simultaneously; the pentanomial
// instance is report-only here and never drives Autostop (see
// coordinator.go's evaluateSPRT).
type SPRTSettings struct {
	Alpha, Beta float64
	Elo0, Elo1  float64
	Autostop    bool
}

// Settings is the single settled configuration record the CLI layer
// builds and the tournament engine consumes.
type Settings struct {
	Players         []PlayerSettings
	Openings        []string
	NumThreads      int
	MaxGames        int // <= 0 means unbounded
	UpdateFrequency int
	SPRTTrinomial   *SPRTSettings
	SPRTPentanomial *SPRTSettings
	Verbose         bool

	// Clock is the per-move time policy applied to both players at the
	// start of every game. One tournament-wide clock policy, set by the
	// CLI's --movetime/--depth flags (see DESIGN.md for the per-player
	// alternative considered and rejected).
	Clock protocol.ClockType
}

// Work is one scheduled game.
type Work struct {
	GameID          int
	FirstPlayerIdx  int
	SecondPlayerIdx int
	OpeningIdx      int
}

// AbortKind taxonomizes why a game ended other than a natural terminal
// position.
type AbortKind int

const (
	AbortNone AbortKind = iota
	AbortNoTurn
	AbortMaxGameLength
	AbortIllegalMove
	AbortTimeout
)

func (k AbortKind) String() string {
	switch k {
	case AbortNoTurn:
		return "no_turn"
	case AbortMaxGameLength:
		return "max_game_length"
	case AbortIllegalMove:
		return "illegal_move"
	case AbortTimeout:
		return "timeout"
	default:
		return "none"
	}
}

// GameData is the output of one game. FirstPlayerIdx and SecondPlayerIdx
// are always the real global player indices threaded from Work, including
// on every abort path.
type GameData struct {
	GameID          int
	Outcome         protocol.Outcome
	FirstPlayerIdx  int
	SecondPlayerIdx int
	PlyCount        int
	Abort           AbortKind
}
