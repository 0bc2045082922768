package stats

import "math"

// winitzkiA is the constant from the Winitzki approximation to the inverse
// error function, a = 8(pi-3) / (3*pi*(4-pi)).
const winitzkiA = 8 * (math.Pi - 3) / (3 * math.Pi * (4 - math.Pi))

// erfInv approximates the inverse error function via Winitzki's
// closed-form rational approximation, accurate to within a tenth of an
// Elo point across the trinomial Elo ranges this package is used for.
func erfInv(x float64) float64 {
	y := math.Log(1 - x*x)
	z := 2/(math.Pi*winitzkiA) + y/2
	ret := math.Sqrt(math.Sqrt(z*z-y/winitzkiA) - z)
	if x >= 0 {
		return ret
	}
	return -ret
}

// phiInv is the standard normal quantile function (inverse CDF), built on
// erfInv: Phi^-1(p) = sqrt(2) * erfinv(2p - 1).
func phiInv(p float64) float64 {
	return math.Sqrt2 * erfInv(2*p-1)
}

// diff converts a win probability to an Elo difference:
// diff(p) = -400 * log10(1/p - 1), with the conventional infinities at the
// extremes and a normalised +0 at p == 0.5.
func diff(p float64) float64 {
	switch {
	case p >= 1:
		return math.Inf(1)
	case p <= 0:
		return math.Inf(-1)
	}
	n := -400 * math.Log10(1/p-1)
	if n == 0 {
		return 0 // normalise -0 to +0
	}
	return n
}

// TrinomialElo returns the Elo point estimate for a WLD record. NaN when no
// games have been played.
func TrinomialElo(w WLD) float64 {
	if w.Played() == 0 {
		return math.NaN()
	}
	mu := (float64(w.W) + float64(w.D)/2) / float64(w.Played())
	return diff(mu)
}

// TrinomialErr returns the 95% confidence half-width (in Elo) for a WLD
// record, via a three-valued-outcome normal approximation to the sampling
// distribution of the win-rate estimate. NaN when no games have been
// played.
func TrinomialErr(w WLD) float64 {
	if w.Played() == 0 {
		return math.NaN()
	}
	n := float64(w.Played())
	mu := w.Winrate()

	devW := (float64(w.W) / n) * (1 - mu) * (1 - mu)
	devL := (float64(w.L) / n) * (0 - mu) * (0 - mu)
	devD := (float64(w.D) / n) * (0.5 - mu) * (0.5 - mu)
	sigmaMean := math.Sqrt(devW+devL+devD) / math.Sqrt(n)

	muLo := mu + phiInv(0.025)*sigmaMean
	muHi := mu + phiInv(0.975)*sigmaMean
	return (diff(muHi) - diff(muLo)) / 2
}

// TrinomialEloErr returns both TrinomialElo and TrinomialErr in one call.
func TrinomialEloErr(w WLD) (elo, err float64) {
	return TrinomialElo(w), TrinomialErr(w)
}

// PentanomialEloErr is an intentional stub: a pentanomial Elo model (one
// that reasons about the WLDPairs distribution directly rather than via the
// trinomial proxy) is future work. Kept so callers have a single,
// clearly-labeled place to plug a real model in later rather than silently
// omitting the field from reports.
func PentanomialEloErr(_ WLDPairs) (elo, err float64) {
	return 0, 0
}
