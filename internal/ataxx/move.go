package ataxx

import (
	"fmt"

	"github.com/kz04px/cutergames/internal/rules"
)

// NullMove is the pass token, sent when the side to move has no legal
// clone or jump available.
const NullMove = "0000"

type move struct {
	from, to int
	isPass   bool
}

func parseMove(m rules.Move) (move, error) {
	s := string(m)
	if s == NullMove {
		return move{isPass: true}, nil
	}
	if len(s) != 4 {
		return move{}, fmt.Errorf("malformed move %q", s)
	}
	from, err := squareFromName(s[0:2])
	if err != nil {
		return move{}, fmt.Errorf("malformed move %q: %w", s, err)
	}
	to, err := squareFromName(s[2:4])
	if err != nil {
		return move{}, fmt.Errorf("malformed move %q: %w", s, err)
	}
	return move{from: from, to: to}, nil
}

func (m move) String() string {
	if m.isPass {
		return NullMove
	}
	return squareName(m.from) + squareName(m.to)
}
