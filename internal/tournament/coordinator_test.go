package tournament

import (
	"bytes"
	"testing"

	"github.com/kz04px/cutergames/internal/protocol"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator() (*Coordinator, *bytes.Buffer) {
	settings := Settings{
		Players: []PlayerSettings{
			{Name: "alice"},
			{Name: "bob"},
		},
		UpdateFrequency: 1000,
	}
	var out bytes.Buffer
	return NewCoordinator(settings, &out, zerolog.Nop()), &out
}

// TestCoordinatorScriptedDuel plays a colour-reversed four-game sequence
// (ids 0..3, openings 0 and 1) where player 0 wins every game, both as first
// and as second player, and checks the resulting WLD and pair tables.
func TestCoordinatorScriptedDuel(t *testing.T) {
	c, _ := newTestCoordinator()

	games := []GameData{
		{GameID: 0, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeP1Win},
		{GameID: 1, FirstPlayerIdx: 1, SecondPlayerIdx: 0, Outcome: protocol.OutcomeP2Win},
		{GameID: 2, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeP1Win},
		{GameID: 3, FirstPlayerIdx: 1, SecondPlayerIdx: 0, Outcome: protocol.OutcomeP2Win},
	}
	for _, gd := range games {
		c.onGameFinish(gd)
	}

	p0, p1 := c.stats[0], c.stats[1]
	assert.Equal(t, 4, p0.Played)
	assert.Equal(t, 4, p0.WLD.W)
	assert.Equal(t, 0, p0.WLD.L)
	assert.Equal(t, 4, p1.WLD.L)
	assert.Equal(t, 0, p1.WLD.W)

	// Both pairs are (win, win) from player 0's perspective.
	assert.Equal(t, 2, p0.WLDPairs.WW)
	assert.Equal(t, 2, p1.WLDPairs.LL)
	assert.Equal(t, 4, c.tstats.GamesCompleted)
	assert.Empty(t, c.pairStore)
}

func TestCoordinatorPairDrawExtension(t *testing.T) {
	c, _ := newTestCoordinator()

	// Game 0: player 0 is first and draws. Game 1: player 0 is second and
	// the raw outcome favours the (local) first player, i.e. player 1 wins
	// locally as P1 -> player 0 loses. So player 0's pair is (draw, loss).
	c.onGameFinish(GameData{GameID: 0, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeDraw})
	c.onGameFinish(GameData{GameID: 1, FirstPlayerIdx: 1, SecondPlayerIdx: 0, Outcome: protocol.OutcomeP1Win})

	assert.Equal(t, 1, c.stats[0].WLDPairs.DL)
	assert.Equal(t, 1, c.stats[1].WLDPairs.DW)
}

func TestCoordinatorDropsDuplicateGameID(t *testing.T) {
	c, _ := newTestCoordinator()
	c.onGameFinish(GameData{GameID: 0, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeP1Win})
	c.onGameFinish(GameData{GameID: 0, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeP2Win})

	assert.Equal(t, 1, c.stats[0].Played)
	assert.Equal(t, 1, c.tstats.GamesCompleted)
}

func TestCoordinatorDropsIdenticalPlayerIndices(t *testing.T) {
	c, _ := newTestCoordinator()
	c.onGameFinish(GameData{GameID: 0, FirstPlayerIdx: 0, SecondPlayerIdx: 0, Outcome: protocol.OutcomeP1Win})

	assert.Equal(t, 0, c.tstats.GamesCompleted)
}

func TestCoordinatorIllegalMoveAndTimeoutCounters(t *testing.T) {
	c, _ := newTestCoordinator()
	c.onGameFinish(GameData{GameID: 0, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeP2Win, Abort: AbortIllegalMove})
	c.onGameFinish(GameData{GameID: 1, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeP1Win, Abort: AbortTimeout})

	assert.Equal(t, 1, c.stats[0].IllegalMoves)
	assert.Equal(t, 1, c.stats[1].Timeouts)
}

func TestCoordinatorSPRTAutostop(t *testing.T) {
	c, _ := newTestCoordinator()
	c.settings.SPRTTrinomial = &SPRTSettings{Elo0: -5, Elo1: 5, Alpha: 0.05, Beta: 0.05, Autostop: true}

	for i := 0; i < 500; i++ {
		c.onGameFinish(GameData{GameID: i, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeP1Win})
		if c.stop.Load() {
			break
		}
	}

	require.True(t, c.stop.Load(), "SPRT should have triggered autostop on a lopsided run")
}

func TestCoordinatorMaxGamesStops(t *testing.T) {
	c, _ := newTestCoordinator()
	c.settings.MaxGames = 2

	c.onGameFinish(GameData{GameID: 0, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeDraw})
	assert.False(t, c.stop.Load())
	c.onGameFinish(GameData{GameID: 1, FirstPlayerIdx: 1, SecondPlayerIdx: 0, Outcome: protocol.OutcomeDraw})
	assert.True(t, c.stop.Load())
}

func TestCoordinatorRunEndsWhenThreadsDrain(t *testing.T) {
	c, out := newTestCoordinator()
	events := make(chan Event, 8)

	events <- Event{Kind: EventThreadStart}
	events <- Event{Kind: EventPlayerCreate}
	events <- Event{Kind: EventPlayerCreate}
	events <- Event{Kind: EventGameFinish, GameData: GameData{GameID: 0, FirstPlayerIdx: 0, SecondPlayerIdx: 1, Outcome: protocol.OutcomeP1Win}}
	events <- Event{Kind: EventThreadFinish}

	c.Run(events)

	assert.Equal(t, 2, c.tstats.PlayersCreated)
	assert.Equal(t, 1, c.tstats.GamesCompleted)
	assert.NotEmpty(t, out.String(), "printFinal should have written a report")
}
