// Package stats holds the trinomial and pentanomial counters the
// tournament coordinator aggregates, plus the Elo and SPRT inference built
// on top of them.
package stats

// WLD is a win/loss/draw counter from player 1's perspective.
type WLD struct {
	W, L, D int
}

// Played returns the total number of games counted.
func (w WLD) Played() int {
	return w.W + w.L + w.D
}

// Winrate returns the fractional score per game. Undefined (NaN-free zero)
// when no games have been played; callers must guard Played() == 0
// themselves, since winrate is meaningless at zero games.
func (w WLD) Winrate() float64 {
	played := w.Played()
	if played == 0 {
		return 0
	}
	return float64(2*w.W+w.D) / (2 * float64(played))
}

// WLDPairs counts pentanomial outcomes for colour-reversed game pairs,
// indexed by the ordered pair of single-game outcomes (first, second) from
// player 1's perspective.
type WLDPairs struct {
	WW, WL, WD int
	LW, LL, LD int
	DW, DL, DD int
}

// PlayedPairs returns the number of completed pairs (each pair is 2 games).
func (p WLDPairs) PlayedPairs() int {
	return p.WW + p.WL + p.WD + p.LW + p.LL + p.LD + p.DW + p.DL + p.DD
}

// Winrate returns the fractional pair score, scaled so a perfect record is
// 1.0: WW scores 2, WD/DW score 1.5, WL/LW/DD score 1, LD/DL score 0.5, LL
// scores 0, each normalised by the maximum of 2 points per pair.
func (p WLDPairs) Winrate() float64 {
	played := p.PlayedPairs()
	if played == 0 {
		return 0
	}
	return float64(4*p.WW+3*(p.WD+p.DW)+2*(p.WL+p.LW+p.DD)+(p.DL+p.LD)) / (4.0 * float64(played))
}

// ScoreBuckets returns the five-cell +2/+1/+0/-1/-2 pair-score breakdown
// used by the final report.
func (p WLDPairs) ScoreBuckets() (farAhead, ahead, even, behind, farBehind int) {
	farAhead = p.WW
	ahead = p.WD + p.DW
	even = p.WL + p.LW + p.DD
	behind = p.LD + p.DL
	farBehind = p.LL
	return
}
