// Package numeric holds the small array-math primitives the deconvolution
// engine is built on: Gaussian smoothing, simple-maxima peak finding,
// parabolic centroiding, trapezoidal integration, and the robust statistics
// (median, MAD, quadratic least squares) the candidate generator and mass
// estimator depend on. Kept separate from gonum/stat and gonum/floats where
// those packages don't directly offer the operation (median, MAD); wraps
// them where they do (weighted mean, standard deviation).
package numeric

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Median returns the median of x. x is not modified.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MedianDiff returns the median of the first differences of x, used
// throughout the engine as the spectrum's effective resolution in Da/bin.
func MedianDiff(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	diffs := make([]float64, len(x)-1)
	for i := range diffs {
		diffs[i] = x[i+1] - x[i]
	}
	return Median(diffs)
}

// MAD returns the median absolute deviation of x about med.
func MAD(x []float64, med float64) float64 {
	if len(x) == 0 {
		return 0
	}
	dev := make([]float64, len(x))
	for i, v := range x {
		dev[i] = math.Abs(v - med)
	}
	return Median(dev)
}

// WeightedMean returns sum(x[i]*w[i]) / sum(w). Falls back to an unweighted
// mean when the weights sum to zero.
func WeightedMean(x, w []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	wsum := floats.Sum(w)
	if wsum == 0 {
		return floats.Sum(x) / float64(len(x))
	}
	var num float64
	for i, v := range x {
		num += v * w[i]
	}
	return num / wsum
}

// StdDev returns the population standard deviation of x.
func StdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	mean := floats.Sum(x) / float64(len(x))
	var ss float64
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(x)))
}

// QuadraticFit fits y = a*x^2 + b*x + c by ordinary least squares and
// returns the coefficients plus the coefficient of determination R²,
// clamped to [0, 1]. Used to score envelope Gaussianity in log-intensity
// space (spec §4.D). Returns zero coefficients and r2=0 for fewer than
// three points.
func QuadraticFit(x, y []float64) (a, b, c, r2 float64) {
	n := len(x)
	if n < 3 {
		return 0, 0, 0, 0
	}
	// Normal equations for y = a*x^2 + b*x + c.
	var s0, s1, s2, s3, s4, t0, t1, t2 float64
	s0 = float64(n)
	for i := 0; i < n; i++ {
		xi := x[i]
		x2 := xi * xi
		s1 += xi
		s2 += x2
		s3 += x2 * xi
		s4 += x2 * x2
		t0 += y[i]
		t1 += xi * y[i]
		t2 += x2 * y[i]
	}
	// Solve the 3x3 symmetric system:
	// [s4 s3 s2][a]   [t2]
	// [s3 s2 s1][b] = [t1]
	// [s2 s1 s0][c]   [t0]
	det := s4*(s2*s0-s1*s1) - s3*(s3*s0-s1*s2) + s2*(s3*s1-s2*s2)
	if math.Abs(det) < 1e-12 {
		return 0, 0, 0, 0
	}
	aNum := t2*(s2*s0-s1*s1) - s3*(t1*s0-s1*t0) + s2*(t1*s1-s2*t0)
	bNum := s4*(t1*s0-t0*s1) - t2*(s3*s0-s1*s2) + s2*(s3*t0-t1*s2)
	cNum := s4*(s2*t0-s1*t1) - s3*(s3*t0-t1*s2) + t2*(s3*s1-s2*s2)
	a = aNum / det
	b = bNum / det
	c = cNum / det

	var ssRes, ssTot float64
	meanY := t0 / s0
	for i := 0; i < n; i++ {
		pred := a*x[i]*x[i] + b*x[i] + c
		ssRes += (y[i] - pred) * (y[i] - pred)
		d := y[i] - meanY
		ssTot += d * d
	}
	if ssTot <= 0 {
		r2 = 0
	} else {
		r2 = 1 - ssRes/ssTot
	}
	if r2 < 0 {
		r2 = 0
	}
	if r2 > 1 {
		r2 = 1
	}
	return a, b, c, r2
}
