package numeric

import "math"

// ParabolicCentroid fits a parabola through (i-1, i, i+1) and returns the
// sub-bin m/z of the apex, clamping the fractional offset to [-1, 1].
// Degenerate denominators or boundary indices fall back to mz[i], per spec
// §4.A.
func ParabolicCentroid(mz, intensity []float64, i int) float64 {
	n := len(mz)
	if i <= 0 || i >= n-1 {
		return mz[i]
	}
	y0, y1, y2 := intensity[i-1], intensity[i], intensity[i+1]
	denom := y0 - 2*y1 + y2
	if math.Abs(denom) < 1e-10 {
		return mz[i]
	}
	delta := (y0 - y2) / (2 * denom)
	if delta < -1 {
		delta = -1
	}
	if delta > 1 {
		delta = 1
	}
	return mz[i] + delta*(mz[i+1]-mz[i-1])/2
}
