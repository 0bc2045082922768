// Command demoengine is a bundled, intentionally weak Ataxx reference
// engine: just enough to exercise the tournament engine's UGI/UAI
// adapters end to end. Not a competition-grade Ataxx engine — it always
// plays the first legal move it finds.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kz04px/cutergames/internal/ataxx"
	"github.com/kz04px/cutergames/internal/rules"
)

func main() {
	rulesLib := ataxx.Rules{}
	pos, _ := rulesLib.FromFEN("startpos")

	scanner := bufio.NewScanner(os.Stdin)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	respond := func(line string) {
		fmt.Fprint(w, line)
		w.Flush()
	}

	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "ugi":
			respond("ugiok\n")
		case "uai":
			respond("uaiok\n")
		case "uci":
			respond("uciok\n")
		case "isready":
			respond("readyok\n")
		case "position":
			pos = applyPosition(rulesLib, fields[1:])
		case "moves":
			if len(fields) >= 2 {
				_ = pos.MakeMove(rules.Move(fields[1]))
			}
		case "go":
			mv := firstLegalMove(pos)
			respond(fmt.Sprintf("bestmove %s\n", mv))
		case "query":
			if len(fields) < 2 {
				continue
			}
			respond(queryResponse(pos, fields[1]))
		case "stop":
			// No search in flight; nothing to abort.
		case "quit":
			return
		}
	}
}

// applyPosition rebuilds the local position from a "position startpos
// [moves ...]" or "position fen <fen> [moves ...]" command.
func applyPosition(rulesLib ataxx.Rules, args []string) rules.Position {
	if len(args) == 0 {
		pos, _ := rulesLib.FromFEN("startpos")
		return pos
	}

	var pos rules.Position
	rest := args
	switch args[0] {
	case "startpos":
		pos, _ = rulesLib.FromFEN("startpos")
		rest = args[1:]
	case "fen":
		// FEN is two space-separated fields: board and side-to-move.
		if len(args) < 3 {
			pos, _ = rulesLib.FromFEN("startpos")
			return pos
		}
		pos, _ = rulesLib.FromFEN(args[1] + " " + args[2])
		rest = args[3:]
	default:
		pos, _ = rulesLib.FromFEN("startpos")
	}

	if len(rest) > 0 && rest[0] == "moves" {
		for _, mv := range rest[1:] {
			_ = pos.MakeMove(rules.Move(mv))
		}
	}
	return pos
}

// firstLegalMove performs a brute-force scan of every from/to square pair
// plus the pass move, returning the first one the position accepts. Good
// enough for a bundled integration-test engine; not a search.
func firstLegalMove(pos rules.Position) string {
	for from := 0; from < ataxx.Squares; from++ {
		for to := 0; to < ataxx.Squares; to++ {
			mv := squareMove(from, to)
			if pos.IsLegal(rules.Move(mv)) {
				return mv
			}
		}
	}
	if pos.IsLegal(rules.Move(ataxx.NullMove)) {
		return ataxx.NullMove
	}
	return ataxx.NullMove
}

func squareMove(from, to int) string {
	return fmt.Sprintf("%c%d%c%d",
		'a'+from%ataxx.Files, from/ataxx.Files+1,
		'a'+to%ataxx.Files, to/ataxx.Files+1)
}

func queryResponse(pos rules.Position, query string) string {
	switch query {
	case "gameover":
		return fmt.Sprintf("response %t\n", pos.IsTerminal())
	case "p1turn":
		return fmt.Sprintf("response %t\n", pos.SideToMove() == 0)
	case "result":
		switch pos.Result() {
		case rules.P1Win:
			return "response p1win\n"
		case rules.P2Win:
			return "response p2win\n"
		case rules.Draw:
			return "response draw\n"
		default:
			return "response none\n"
		}
	default:
		return "response none\n"
	}
}
