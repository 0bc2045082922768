// Package ataxx implements a minimal, intentionally non-competition-grade
// Ataxx rules engine: just enough legality, terminal, and side-to-move
// logic to back the UAI adapter's local checks and the bundled demo engine.
//
// Board layout, 7x7, squares numbered file-major from a1:
//
//	42 43 44 45 46 47 48   (rank 7)
//	35 36 37 38 39 40 41
//	28 29 30 31 32 33 34
//	21 22 23 24 25 26 27
//	14 15 16 17 18 19 20
//	07 08 09 10 11 12 13
//	00 01 02 03 04 05 06   (rank 1)
package ataxx

import (
	"fmt"
	"math/bits"
)

const (
	Files   = 7
	Ranks   = 7
	Squares = Files * Ranks
)

// Bitboard is a 49-bit occupancy mask over the Ataxx board.
type Bitboard uint64

func squareIndex(file, rank int) int {
	return rank*Files + file
}

func fileOf(sq int) int { return sq % Files }
func rankOf(sq int) int { return sq / Files }

func (b *Bitboard) isSet(sq int) bool {
	return (*b)&(1<<uint(sq)) != 0
}

func (b *Bitboard) set(sq int) {
	*b |= 1 << uint(sq)
}

func (b *Bitboard) clear(sq int) {
	*b &^= 1 << uint(sq)
}

func (b Bitboard) count() int {
	return bits.OnesCount64(uint64(b))
}

func squareName(sq int) string {
	return fmt.Sprintf("%c%d", 'a'+fileOf(sq), rankOf(sq)+1)
}

func squareFromName(s string) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file >= Files || rank < 0 || rank >= Ranks {
		return 0, fmt.Errorf("square out of range %q", s)
	}
	return squareIndex(file, rank), nil
}

func chebyshev(a, b int) int {
	df := fileOf(a) - fileOf(b)
	if df < 0 {
		df = -df
	}
	dr := rankOf(a) - rankOf(b)
	if dr < 0 {
		dr = -dr
	}
	if df > dr {
		return df
	}
	return dr
}
