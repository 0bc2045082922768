package ataxx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kz04px/cutergames/internal/rules"
)

func mustStartpos(t *testing.T) *Position {
	t.Helper()
	pos, err := Rules{}.FromFEN("startpos")
	require.NoError(t, err)
	return pos.(*Position)
}

func TestStartposParsesAndRoundTrips(t *testing.T) {
	pos := mustStartpos(t)
	assert.Equal(t, 0, pos.SideToMove())
	assert.False(t, pos.IsTerminal())
	assert.Equal(t, startFEN, pos.FEN())
}

func TestRulesName(t *testing.T) {
	assert.Equal(t, "ataxx", Rules{}.Name())
}

func TestCloneMoveKeepsSourcePiece(t *testing.T) {
	pos := mustStartpos(t)
	// a7 -> a6 is a clone (chebyshev distance 1).
	require.True(t, pos.IsLegal(rules.Move("a7a6")))
	require.NoError(t, pos.MakeMove(rules.Move("a7a6")))
	assert.True(t, pos.p1.isSet(mustSquare(t, "a7")))
	assert.True(t, pos.p1.isSet(mustSquare(t, "a6")))
	assert.Equal(t, 1, pos.SideToMove())
}

func TestJumpMoveVacatesSource(t *testing.T) {
	pos := mustStartpos(t)
	// a7 -> a5 is a jump (chebyshev distance 2).
	require.True(t, pos.IsLegal(rules.Move("a7a5")))
	require.NoError(t, pos.MakeMove(rules.Move("a7a5")))
	assert.False(t, pos.p1.isSet(mustSquare(t, "a7")))
	assert.True(t, pos.p1.isSet(mustSquare(t, "a5")))
}

func TestMoveFlipsAdjacentEnemyPieces(t *testing.T) {
	pos := mustStartpos(t)
	require.NoError(t, pos.MakeMove(rules.Move("a7a6"))) // x clones to a6
	require.NoError(t, pos.MakeMove(rules.Move("g7g6"))) // o clones to g6, no adjacency to a6

	// x at a3, o at b4: cloning a3 -> a4 lands adjacent to b4 and flips it.
	pos2, err := parseFEN("7/7/7/1o5/x6/7/7 x")
	require.NoError(t, err)
	require.NoError(t, pos2.MakeMove(rules.Move("a3a4")))
	assert.True(t, pos2.p1.isSet(mustSquare(t, "a4")))
	assert.True(t, pos2.p1.isSet(mustSquare(t, "b4")))
	assert.Equal(t, 0, pos2.p2.count(), "adjacent enemy piece should have flipped to player 1")
}

func TestIllegalMoveRejected(t *testing.T) {
	pos := mustStartpos(t)
	assert.False(t, pos.IsLegal(rules.Move("a1a2")), "a1 holds o's piece and x is to move")
	assert.Error(t, pos.MakeMove(rules.Move("a1a2")))
}

func TestIllegalDistanceRejected(t *testing.T) {
	pos := mustStartpos(t)
	assert.False(t, pos.IsLegal(rules.Move("a7a4")), "chebyshev distance 3 is not a legal move")
}

func TestTerminalWhenOneSideWiped(t *testing.T) {
	pos, err := parseFEN("7/7/7/7/7/7/x5o x")
	require.NoError(t, err)
	assert.False(t, pos.IsTerminal())

	wiped, err := parseFEN("7/7/7/7/7/7/x6 x")
	require.NoError(t, err)
	assert.True(t, wiped.IsTerminal())
	assert.Equal(t, rules.P1Win, wiped.Result())
}

func TestResultCountsPiecesOnFullBoard(t *testing.T) {
	full, err := parseFEN("xxxoooo/oooxxxx/xxxoooo/oooxxxx/xxxoooo/oooxxxx/xxxoooo x")
	require.NoError(t, err)
	require.True(t, full.IsTerminal())
	assert.Equal(t, rules.P2Win, full.Result(), "24 x pieces against 25 o pieces")
}

func mustSquare(t *testing.T, s string) int {
	t.Helper()
	sq, err := squareFromName(s)
	require.NoError(t, err)
	return sq
}
