package ataxx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kz04px/cutergames/internal/rules"
)

// startFEN is the canonical Ataxx starting position: two pieces per side in
// opposite corners, side-to-move x (player 0).
const startFEN = "x5o/7/7/7/7/7/o5x x"

// Position is a mutable 7x7 Ataxx board. It implements rules.Position.
type Position struct {
	p1, p2 Bitboard
	toMove int // 0 = x, 1 = o
}

// Rules implements rules.GameRules for Ataxx.
type Rules struct{}

func (Rules) Name() string { return "ataxx" }

func (Rules) FromFEN(fen string) (rules.Position, error) {
	if fen == "startpos" || fen == "" {
		fen = startFEN
	}
	return parseFEN(fen)
}

func parseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 2 {
		return nil, fmt.Errorf("ataxx: malformed fen %q", fen)
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != Ranks {
		return nil, fmt.Errorf("ataxx: expected %d ranks, got %d", Ranks, len(rows))
	}

	pos := &Position{}
	for i, row := range rows {
		rank := Ranks - 1 - i
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '9':
				n, _ := strconv.Atoi(string(c))
				file += n
			case c == 'x' || c == 'X':
				pos.p1.set(squareIndex(file, rank))
				file++
			case c == 'o' || c == 'O':
				pos.p2.set(squareIndex(file, rank))
				file++
			case c == '-':
				file++
			default:
				return nil, fmt.Errorf("ataxx: unexpected fen rune %q", c)
			}
		}
		if file != Files {
			return nil, fmt.Errorf("ataxx: rank %d has %d files, want %d", rank+1, file, Files)
		}
	}

	switch fields[1] {
	case "x":
		pos.toMove = 0
	case "o":
		pos.toMove = 1
	default:
		return nil, fmt.Errorf("ataxx: unexpected side to move %q", fields[1])
	}
	return pos, nil
}

func (p *Position) occupied() Bitboard {
	return p.p1 | p.p2
}

func (p *Position) mine() *Bitboard {
	if p.toMove == 0 {
		return &p.p1
	}
	return &p.p2
}

func (p *Position) theirs() *Bitboard {
	if p.toMove == 0 {
		return &p.p2
	}
	return &p.p1
}

// legal reports whether m is playable in the current position. The pass
// move is playable only when the side to move has no clone or jump.
func (p *Position) legal(m move) bool {
	occ := p.occupied()
	if m.isPass {
		return !p.hasAnyMove()
	}
	if !p.mine().isSet(m.from) {
		return false
	}
	if occ.isSet(m.to) {
		return false
	}
	d := chebyshev(m.from, m.to)
	return d == 1 || d == 2
}

func (p *Position) hasAnyMove() bool {
	mine := *p.mine()
	occ := p.occupied()
	for sq := 0; sq < Squares; sq++ {
		if !mine.isSet(sq) {
			continue
		}
		for dest := 0; dest < Squares; dest++ {
			if occ.isSet(dest) {
				continue
			}
			d := chebyshev(sq, dest)
			if d == 1 || d == 2 {
				return true
			}
		}
	}
	return false
}

func (p *Position) IsLegal(m rules.Move) bool {
	mv, err := parseMove(m)
	if err != nil {
		return false
	}
	return p.legal(mv)
}

func (p *Position) MakeMove(m rules.Move) error {
	mv, err := parseMove(m)
	if err != nil {
		return err
	}
	if !p.legal(mv) {
		return fmt.Errorf("ataxx: illegal move %q", string(m))
	}
	if mv.isPass {
		p.toMove = 1 - p.toMove
		return nil
	}

	mine := p.mine()
	theirs := p.theirs()
	if chebyshev(mv.from, mv.to) == 2 {
		mine.clear(mv.from)
	}
	mine.set(mv.to)

	for dest := 0; dest < Squares; dest++ {
		if chebyshev(mv.to, dest) == 1 && theirs.isSet(dest) {
			theirs.clear(dest)
			mine.set(dest)
		}
	}

	p.toMove = 1 - p.toMove
	return nil
}

func (p *Position) SideToMove() int {
	return p.toMove
}

func (p *Position) IsTerminal() bool {
	if p.p1.count() == 0 || p.p2.count() == 0 {
		return true
	}
	if p.occupied().count() == Squares {
		return true
	}
	if p.hasAnyMove() {
		return false
	}
	other := *p
	other.toMove = 1 - other.toMove
	return !other.hasAnyMove()
}

func (p *Position) Result() rules.Result {
	if !p.IsTerminal() {
		return rules.Ongoing
	}
	n1, n2 := p.p1.count(), p.p2.count()
	switch {
	case n1 > n2:
		return rules.P1Win
	case n2 > n1:
		return rules.P2Win
	default:
		return rules.Draw
	}
}

func (p *Position) FEN() string {
	var sb strings.Builder
	for i := 0; i < Ranks; i++ {
		rank := Ranks - 1 - i
		empty := 0
		for file := 0; file < Files; file++ {
			sq := squareIndex(file, rank)
			switch {
			case p.p1.isSet(sq):
				if empty > 0 {
					fmt.Fprintf(&sb, "%d", empty)
					empty = 0
				}
				sb.WriteByte('x')
			case p.p2.isSet(sq):
				if empty > 0 {
					fmt.Fprintf(&sb, "%d", empty)
					empty = 0
				}
				sb.WriteByte('o')
			default:
				empty++
			}
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if i != Ranks-1 {
			sb.WriteByte('/')
		}
	}
	if p.toMove == 0 {
		sb.WriteString(" x")
	} else {
		sb.WriteString(" o")
	}
	return sb.String()
}
