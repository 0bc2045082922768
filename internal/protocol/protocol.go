// Package protocol implements the line-based engine wire protocols the
// tournament engine drives a subprocess through: UGI, UAI, and UCI. All
// three share one framing; they differ only in their handshake token and
// in whether the adapter keeps a local rules.Position to answer
// legality/terminal/turn queries without an engine round-trip.
package protocol

// Outcome is a game's result, from the perspective of the player the
// tournament engine designates "player 1" for that particular game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeP1Win
	OutcomeP2Win
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeP1Win:
		return "p1win"
	case OutcomeP2Win:
		return "p2win"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}

// Player is the capability set the game driver needs from an engine,
// independent of which wire dialect backs it.
type Player interface {
	Init() error
	ReadySync() error
	SetPosition(fen string) error
	// RequestMove asks the engine for a move. ok is false only when the
	// engine failed to produce one (protocol failure, EOF); a pass move is
	// still a move and returns ok == true.
	RequestMove() (move string, ok bool, err error)
	ApplyMove(move string) error
	IsGameOver() (bool, error)
	IsLegal(move string) (bool, error)
	SideToMove() (int, error)
	QueryResult() (Outcome, error)
	// ClockMut exposes the adapter's clock state for the driver to enforce
	// and mutate in place.
	ClockMut() *ClockType
	// Close sends the shutdown sequence (stop, quit) and reaps the child.
	Close() error
}

// TraceFunc observes every line sent to or read from an engine subprocess.
// Attached once at adapter construction; typically wired to a debug-level
// logger.
type TraceFunc func(direction, line string)
