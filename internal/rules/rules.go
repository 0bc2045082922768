// Package rules defines the narrow contract the tournament engine needs
// from a game-rules library: legality checking, side-to-move, and terminal
// detection. Protocol adapters and the game driver depend only on this
// interface, never on a concrete game implementation.
package rules

// Result is the outcome of a position, from player 1's perspective.
type Result int

const (
	Ongoing Result = iota
	P1Win
	P2Win
	Draw
)

// Move is an opaque, game-specific move string. Adapters pass the exact
// token an engine sent over the wire; a Position is responsible for
// parsing and validating it.
type Move string

// Position is a mutable game state. Implementations must be safe to use
// from a single goroutine at a time; the driver and adapters never share
// one Position across goroutines.
type Position interface {
	// MakeMove applies a legal move, advancing side to move. Behaviour is
	// undefined if the move is not legal; callers must check IsLegal first.
	MakeMove(m Move) error

	// IsLegal reports whether m is a legal move in the current position.
	IsLegal(m Move) bool

	// IsTerminal reports whether the game has ended (win, loss, draw, or no
	// legal moves for the side to move).
	IsTerminal() bool

	// SideToMove returns 0 for the first side, 1 for the second.
	SideToMove() int

	// Result returns the game's outcome. Only meaningful once IsTerminal
	// reports true; returns Ongoing otherwise.
	Result() Result

	// FEN renders the position back to the same string format FromFEN
	// accepts, used for adapters that need to resend the current position.
	FEN() string
}

// GameRules constructs positions for one game. The string "startpos" is
// the canonical initial position every implementation must accept.
type GameRules interface {
	// FromFEN parses a position description. "startpos" must always be
	// accepted as the canonical initial position.
	FromFEN(fen string) (Position, error)

	// Name identifies the game, used as the bundled demo engine's
	// launch-argument convention (e.g. "--game ataxx").
	Name() string
}
