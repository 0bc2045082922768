package tournament

import (
	"testing"
	"time"

	"github.com/kz04px/cutergames/internal/protocol"
	"github.com/stretchr/testify/assert"
)

// fakePlayer is a scripted protocol.Player for exercising Play without a
// real subprocess. It keeps no position: Play asks only the judge (local
// index 0) IsGameOver, SideToMove, IsLegal and QueryResult, so those are
// driven by the judge's scripted fields.
type fakePlayer struct {
	moves      []string // moves this player serves in turn order, one per RequestMove call
	moveIdx    int
	legal      bool
	overAfter  int // IsGameOver returns true once this many ApplyMove calls have landed
	applied    int
	result     protocol.Outcome
	sideToMove int
	clock      protocol.ClockType
	delay      time.Duration // simulated thinking time for RequestMove
}

func (f *fakePlayer) Init() error              { return nil }
func (f *fakePlayer) ReadySync() error         { return nil }
func (f *fakePlayer) SetPosition(string) error { return nil }

func (f *fakePlayer) RequestMove() (string, bool, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.moveIdx >= len(f.moves) {
		return "", false, nil
	}
	mv := f.moves[f.moveIdx]
	f.moveIdx++
	return mv, true, nil
}

func (f *fakePlayer) ApplyMove(string) error {
	f.applied++
	return nil
}

func (f *fakePlayer) IsGameOver() (bool, error) {
	return f.applied >= f.overAfter, nil
}

func (f *fakePlayer) IsLegal(string) (bool, error) { return f.legal, nil }

func (f *fakePlayer) SideToMove() (int, error) {
	turn := f.sideToMove
	f.sideToMove = 1 - f.sideToMove
	return turn, nil
}

func (f *fakePlayer) QueryResult() (protocol.Outcome, error) { return f.result, nil }
func (f *fakePlayer) ClockMut() *protocol.ClockType          { return &f.clock }
func (f *fakePlayer) Close() error                           { return nil }

func TestPlayNaturalTermination(t *testing.T) {
	p1 := &fakePlayer{moves: []string{"a1a2", "a2a3"}, legal: true, overAfter: 2, result: protocol.OutcomeP1Win}
	p2 := &fakePlayer{moves: []string{"b1b2", "b2b3"}, legal: true, overAfter: 2, result: protocol.OutcomeP1Win}

	gd := Play(5, 3, 7, "startpos", p1, p2)

	assert.Equal(t, 5, gd.GameID)
	assert.Equal(t, 3, gd.FirstPlayerIdx)
	assert.Equal(t, 7, gd.SecondPlayerIdx)
	assert.Equal(t, protocol.OutcomeP1Win, gd.Outcome)
	assert.Equal(t, AbortNone, gd.Abort)
	assert.Equal(t, 2, gd.PlyCount)
}

func TestPlayIllegalMoveForfeits(t *testing.T) {
	p1 := &fakePlayer{moves: []string{"z9z9"}, legal: false, overAfter: 1000}
	p2 := &fakePlayer{moves: []string{"b1b2"}, legal: false, overAfter: 1000}

	gd := Play(1, 0, 1, "startpos", p1, p2)

	assert.Equal(t, protocol.OutcomeP2Win, gd.Outcome)
	assert.Equal(t, AbortIllegalMove, gd.Abort)
}

func TestPlayTimeoutForfeits(t *testing.T) {
	p1 := &fakePlayer{
		moves:     []string{"a1a2"},
		legal:     true,
		overAfter: 1000,
		clock:     protocol.Movetime(1),
		delay:     20 * time.Millisecond,
	}
	p2 := &fakePlayer{moves: []string{"b1b2"}, legal: true, overAfter: 1000, clock: protocol.Movetime(1000)}

	gd := Play(2, 0, 1, "startpos", p1, p2)

	assert.Equal(t, protocol.OutcomeP2Win, gd.Outcome)
	assert.Equal(t, AbortTimeout, gd.Abort)
}

func TestPlayMaxGameLengthDraws(t *testing.T) {
	p1 := &fakePlayer{legal: true, overAfter: 1 << 20}
	p2 := &fakePlayer{legal: true, overAfter: 1 << 20}
	// Give each side maxPly+2 copies of one move: each side is asked for at
	// most maxPly/2+1 moves before the cap, so RequestMove never runs dry.
	p1.moves = make([]string, maxPly+2)
	p2.moves = make([]string, maxPly+2)
	for i := range p1.moves {
		p1.moves[i] = "a1a2"
		p2.moves[i] = "b1b2"
	}

	gd := Play(3, 0, 1, "startpos", p1, p2)

	assert.Equal(t, protocol.OutcomeDraw, gd.Outcome)
	assert.Equal(t, AbortMaxGameLength, gd.Abort)
	assert.Equal(t, maxPly, gd.PlyCount)
}
