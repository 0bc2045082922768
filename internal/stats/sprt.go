package stats

import "math"

// SPRTParams holds the two Elo hypotheses and the Type I/II error rates a
// sequential probability ratio test is evaluated against.
type SPRTParams struct {
	Elo0, Elo1  float64
	Alpha, Beta float64
}

// hypothesis returns the trinomial outcome probabilities implied by an Elo
// difference elo, a fixed draw-elo, and the symmetry-correction scale s.
func hypothesis(elo, drawelo, s float64) (pwin, ploss, pdraw float64) {
	pwin = 1 / (1 + math.Pow(10, (drawelo-elo/s)/400))
	ploss = 1 / (1 + math.Pow(10, (drawelo+elo/s)/400))
	pdraw = 1 - pwin - ploss
	return
}

// LLR computes the SPRT log-likelihood ratio for a WLD record under
// SPRTParams, following the Laplace-smoothed draw-elo model: the observed
// frequencies (with 0.5 added to each count to keep every probability
// strictly in (0,1)) fix a draw-elo and a symmetry scale s, then each
// hypothesis's win/loss/draw probabilities at that draw-elo are compared
// via the log-likelihood ratio. Returns 0 for an empty record.
func LLR(w WLD, p SPRTParams) float64 {
	if w.Played() == 0 {
		return 0
	}
	wf, lf, df := float64(w.W), float64(w.L), float64(w.D)
	n := wf + lf + df + 1.5
	pw := (wf + 0.5) / n
	pl := (lf + 0.5) / n

	drawelo := 200 * math.Log10((1-pl)/pl*(1-pw)/pw)
	x := math.Pow(10, -drawelo/400)
	s := 4 * x / ((1 + x) * (1 + x))

	pwin0, ploss0, pdraw0 := hypothesis(p.Elo0, drawelo, s)
	pwin1, ploss1, pdraw1 := hypothesis(p.Elo1, drawelo, s)

	llr := wf*math.Log(pwin1/pwin0) + lf*math.Log(ploss1/ploss0)
	if df > 0 {
		llr += df * math.Log(pdraw1/pdraw0)
	}
	return llr
}

// LBound and UBound are the Wald decision boundaries for the log-likelihood
// ratio: crossing LBound accepts the null (H0, "not stronger than Elo0"),
// crossing UBound accepts the alternative (H1, "at least as strong as
// Elo1").
func LBound(p SPRTParams) float64 {
	return math.Log(p.Beta / (1 - p.Alpha))
}

func UBound(p SPRTParams) float64 {
	return math.Log((1 - p.Beta) / p.Alpha)
}

// ShouldStop evaluates a WLD record against the SPRT boundaries. stop
// reports whether either bound has been crossed; accept reports, when
// stop is true, whether H1 was accepted (true) or H0 was accepted (false).
func ShouldStop(w WLD, p SPRTParams) (stop, accept bool) {
	llr := LLR(w, p)
	switch {
	case llr >= UBound(p):
		return true, true
	case llr <= LBound(p):
		return true, false
	default:
		return false, false
	}
}
