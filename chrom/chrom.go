package chrom

import (
	"errors"
	"math"
)

// ErrInvalidRange is returned by SumSpectraInRange when t_end <= t_start
// (spec §7); InvalidRange is the one error kind of spec §7 that is a caller
// bug and is surfaced rather than absorbed.
var ErrInvalidRange = errors.New("chrom: invalid range")

// TIC returns the sample's total-ion-chromatogram: the precomputed vector
// when present, otherwise the per-scan intensity sum (spec §4.B). A
// malformed scan contributes 0.
func TIC(sample Sample) []float64 {
	if sample.TIC != nil {
		return sample.TIC
	}
	out := make([]float64, len(sample.Scans))
	for i, scan := range sample.Scans {
		if scan.Malformed {
			continue
		}
		var sum float64
		for _, v := range scan.Intensity {
			sum += v
		}
		out[i] = sum
	}
	return out
}

// EIC returns the extracted-ion-chromatogram for a target m/z and half-
// window: for each scan, the sum of intensities whose m/z falls in
// [target-window, target+window] (spec §4.B). When the sample shares a
// global m/z axis, the mask is computed once and reused across every scan.
func EIC(sample Sample, target, window float64) []float64 {
	out := make([]float64, len(sample.Scans))

	if sample.MZAxis != nil {
		lo, hi := target-window, target+window
		mask := make([]bool, len(sample.MZAxis))
		for i, mz := range sample.MZAxis {
			mask[i] = mz >= lo && mz <= hi
		}
		for i, scan := range sample.Scans {
			if scan.Malformed {
				continue
			}
			var sum float64
			for j, v := range scan.Intensity {
				if j < len(mask) && mask[j] {
					sum += v
				}
			}
			out[i] = sum
		}
		return out
	}

	lo, hi := target-window, target+window
	for i, scan := range sample.Scans {
		if scan.Malformed || scan.MZ == nil {
			continue
		}
		var sum float64
		for j, mz := range scan.MZ {
			if mz >= lo && mz <= hi {
				sum += scan.Intensity[j]
			}
		}
		out[i] = sum
	}
	return out
}

// rebinWidth is the fixed bin width, in Da, used to re-bin concatenated
// private-axis scans into a uniform spectrum (spec §4.B, §6).
const rebinWidth = 0.01

// SumSpectraInRange selects every scan with time in [tStart, tEnd] and sums
// them into a single spectrum (spec §4.B). When the sample shares a global
// m/z axis, scan vectors are summed elementwise on that axis; otherwise
// every selected scan's (mz, intensity) pairs are concatenated and re-binned
// into uniform 0.01 Da bins over the observed range. Returns empty slices,
// no error, when no scans fall in range.
func SumSpectraInRange(sample Sample, tStart, tEnd float64) ([]float64, []float64, error) {
	if tEnd <= tStart {
		return nil, nil, ErrInvalidRange
	}

	var selected []int
	for i, t := range sample.Times {
		if t >= tStart && t <= tEnd {
			selected = append(selected, i)
		}
	}
	if len(selected) == 0 {
		return []float64{}, []float64{}, nil
	}

	if sample.MZAxis != nil {
		sum := make([]float64, len(sample.MZAxis))
		for _, i := range selected {
			scan := sample.Scans[i]
			if scan.Malformed {
				continue
			}
			for j, v := range scan.Intensity {
				if j < len(sum) {
					sum[j] += v
				}
			}
		}
		axis := make([]float64, len(sample.MZAxis))
		copy(axis, sample.MZAxis)
		return axis, sum, nil
	}

	var allMZ, allIntensity []float64
	for _, i := range selected {
		scan := sample.Scans[i]
		if scan.Malformed || scan.MZ == nil {
			continue
		}
		allMZ = append(allMZ, scan.MZ...)
		allIntensity = append(allIntensity, scan.Intensity...)
	}
	if len(allMZ) == 0 {
		return []float64{}, []float64{}, nil
	}
	return rebin(allMZ, allIntensity, rebinWidth)
}

// rebin bins (mz, intensity) pairs into uniform-width bins spanning the
// observed m/z range and returns the bin-center axis and summed intensity.
func rebin(mz, intensity []float64, width float64) ([]float64, []float64, error) {
	lo, hi := mz[0], mz[0]
	for _, v := range mz {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	nBins := int(math.Floor((hi-lo)/width)) + 1
	if nBins < 1 {
		nBins = 1
	}
	sums := make([]float64, nBins)
	for i, v := range mz {
		bin := int((v - lo) / width)
		if bin < 0 {
			bin = 0
		}
		if bin >= nBins {
			bin = nBins - 1
		}
		sums[bin] += intensity[i]
	}
	axis := make([]float64, nBins)
	for i := range axis {
		axis[i] = lo + (float64(i)+0.5)*width
	}
	return axis, sums, nil
}
