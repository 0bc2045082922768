package tournament

import (
	"fmt"

	"github.com/kz04px/cutergames/internal/stats"
)

// printUpdate chooses between the short and long report forms: short form
// below 10 games, long form (Elo + SPRT lines) after.
func (c *Coordinator) printUpdate() {
	if len(c.stats) < 2 {
		return
	}
	if c.tstats.GamesCompleted < 10 {
		c.printShort()
		return
	}
	c.printLong()
}

func (c *Coordinator) printShort() {
	p1, p2 := c.stats[0], c.stats[1]
	wld := p1.WLD
	fmt.Fprintf(c.out, "%s vs %s: %d - %d - %d [%.3f] %d\n",
		p1.Name, p2.Name, wld.W, wld.L, wld.D, wld.Winrate(), wld.Played())
}

func (c *Coordinator) printLong() {
	c.printShort()

	p1 := c.stats[0]
	elo, err := stats.TrinomialEloErr(p1.WLD)
	fmt.Fprintf(c.out, "Elo: %+.1f +/- %.1f\n", elo, err)

	if c.settings.SPRTTrinomial != nil {
		c.printSPRTLine("trinomial", *c.settings.SPRTTrinomial, p1.WLD)
	}
	if c.settings.SPRTPentanomial != nil {
		// Report-only: the pentanomial SPRTSettings never drive Autostop,
		// and the LLR printed here is still the trinomial-WLD-derived
		// figure, clearly labeled rather than silently misleading.
		fmt.Fprint(c.out, "SPRT (pentanomial, report-only, trinomial-derived): ")
		c.printSPRTLine("pentanomial", *c.settings.SPRTPentanomial, p1.WLD)
	}
}

func (c *Coordinator) printSPRTLine(label string, s SPRTSettings, wld stats.WLD) {
	p := sprtParams(s)
	llr := stats.LLR(wld, p)
	fmt.Fprintf(c.out, "SPRT (%s) [%.1f, %.1f]: llr=%.3f lbound=%.3f ubound=%.3f\n",
		label, s.Elo0, s.Elo1, llr, stats.LBound(p), stats.UBound(p))
}

// printFinal prints the long report plus the nine-cell pentanomial matrix,
// the five-cell score summary, and a trailing Match Statistics/Debug block.
func (c *Coordinator) printFinal() {
	if len(c.stats) < 2 {
		return
	}
	c.printLong()

	p1 := c.stats[0]
	wp := p1.WLDPairs

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Pair matrix (rows=game1 result, cols=game2 result):")
	fmt.Fprintln(c.out, "      W     D     L")
	fmt.Fprintf(c.out, "  W %5d %5d %5d\n", wp.WW, wp.WD, wp.WL)
	fmt.Fprintf(c.out, "  D %5d %5d %5d\n", wp.DW, wp.DD, wp.DL)
	fmt.Fprintf(c.out, "  L %5d %5d %5d\n", wp.LW, wp.LD, wp.LL)

	farAhead, ahead, even, behind, farBehind := wp.ScoreBuckets()
	fmt.Fprintf(c.out, "+2 %d  +1 %d  +0 %d  -1 %d  -2 %d\n", farAhead, ahead, even, behind, farBehind)

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Match Statistics:")
	fmt.Fprintf(c.out, "  games_completed=%d players_created=%d players_destroyed=%d\n",
		c.tstats.GamesCompleted, c.tstats.PlayersCreated, c.tstats.PlayersDestroyed)
	for _, ps := range c.stats {
		fmt.Fprintf(c.out, "  %s: played=%d crashes=%d timeouts=%d illegal_moves=%d\n",
			ps.Name, ps.Played, ps.Crashes, ps.Timeouts, ps.IllegalMoves)
	}
	fmt.Fprintf(c.out, "Debug: pair store size=%d\n", len(c.pairStore))
}
