package tournament

import (
	"time"

	"github.com/kz04px/cutergames/internal/protocol"
)

// maxPly is the fixed game-length cap: any game reaching it is ruled a
// draw rather than played out indefinitely against a non-terminating or
// looping pair of engines.
const maxPly = 1024

// Play drives two already-initialised engines through one game from
// openingFEN, alternating plies until either a natural terminal position
// or an abort. The player at local index 0 is always the judge for
// legality, terminal, and result queries, independent of which global
// player index p1Idx/p2Idx record. p1Idx and p2Idx are always the real
// global indices threaded into the returned GameData on every path.
func Play(gameID, p1Idx, p2Idx int, openingFEN string, p1, p2 protocol.Player) GameData {
	players := [2]protocol.Player{p1, p2}
	judge := players[0]

	gd := GameData{GameID: gameID, FirstPlayerIdx: p1Idx, SecondPlayerIdx: p2Idx}

	if err := p1.SetPosition(openingFEN); err != nil {
		gd.Outcome, gd.Abort = protocol.OutcomeNone, AbortNoTurn
		return gd
	}
	if err := p2.SetPosition(openingFEN); err != nil {
		gd.Outcome, gd.Abort = protocol.OutcomeNone, AbortNoTurn
		return gd
	}

	plyCount := 0
	for {
		over, err := judge.IsGameOver()
		if err != nil {
			gd.Outcome, gd.Abort = protocol.OutcomeNone, AbortNoTurn
			gd.PlyCount = plyCount
			return gd
		}
		if over {
			result, err := judge.QueryResult()
			if err != nil {
				result = protocol.OutcomeNone
			}
			gd.Outcome = result
			gd.PlyCount = plyCount
			return gd
		}

		turn, err := judge.SideToMove()
		if err != nil {
			gd.Outcome, gd.Abort = protocol.OutcomeNone, AbortNoTurn
			gd.PlyCount = plyCount
			return gd
		}
		active := players[turn]

		if err := active.ReadySync(); err != nil {
			gd.Outcome, gd.Abort = protocol.OutcomeNone, AbortNoTurn
			gd.PlyCount = plyCount
			return gd
		}

		start := time.Now()
		mv, ok, err := active.RequestMove()
		elapsed := time.Since(start)
		if err != nil || !ok {
			gd.Outcome, gd.Abort = protocol.OutcomeNone, AbortNoTurn
			gd.PlyCount = plyCount
			return gd
		}

		if legal, _ := judge.IsLegal(mv); !legal {
			gd.Outcome, gd.Abort = otherWins(turn), AbortIllegalMove
			gd.PlyCount = plyCount
			return gd
		}

		if active.ClockMut().Tick(elapsed) {
			gd.Outcome, gd.Abort = otherWins(turn), AbortTimeout
			gd.PlyCount = plyCount
			return gd
		}

		if plyCount >= maxPly {
			gd.Outcome, gd.Abort = protocol.OutcomeDraw, AbortMaxGameLength
			gd.PlyCount = plyCount
			return gd
		}

		if err := p1.ApplyMove(mv); err != nil {
			gd.Outcome, gd.Abort = protocol.OutcomeNone, AbortNoTurn
			gd.PlyCount = plyCount
			return gd
		}
		if err := p2.ApplyMove(mv); err != nil {
			gd.Outcome, gd.Abort = protocol.OutcomeNone, AbortNoTurn
			gd.PlyCount = plyCount
			return gd
		}
		plyCount++
	}
}

// otherWins reports the outcome when the side at local index turn forfeits
// (illegal move or timeout): the other local side wins.
func otherWins(turn int) protocol.Outcome {
	if turn == 0 {
		return protocol.OutcomeP2Win
	}
	return protocol.OutcomeP1Win
}
