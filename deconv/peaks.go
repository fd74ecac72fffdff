package deconv

import (
	"math"
	"sort"

	"github.com/spelveris/lcms-go/internal/numeric"
)

// PickPeaks smooths the spectrum with FWHM cfg.PWHH, detects local maxima
// above cfg.NoiseCutoff, centroids each by parabolic interpolation, and
// returns the peaks sorted by descending intensity (spec §4.C). Returns an
// empty slice (no error) when the spectrum is empty or fewer than
// cfg.MinPeaks survive — per spec §7, InsufficientPeaks never propagates
// out of a public operation.
func PickPeaks(spec Spectrum, cfg Config) []RawPeak {
	if len(spec.MZ) == 0 || len(spec.Intensity) != len(spec.MZ) {
		return nil
	}

	smoothed := numeric.GaussianSmooth(spec.MZ, spec.Intensity, cfg.PWHH)

	res := numeric.MedianDiff(spec.MZ)
	minDistance := 2
	if res > 0 {
		d := int(math.Round(cfg.PWHH / res))
		if d > minDistance {
			minDistance = d
		}
	}

	indices := numeric.FindSimpleMaxima(smoothed, minDistance)

	peaks := make([]RawPeak, 0, len(indices))
	for _, i := range indices {
		if smoothed[i] < cfg.NoiseCutoff {
			continue
		}
		mz := numeric.ParabolicCentroid(spec.MZ, spec.Intensity, i)
		peaks = append(peaks, RawPeak{Index: i, MZ: mz, Intensity: spec.Intensity[i]})
	}

	if len(peaks) < cfg.MinPeaks {
		return nil
	}

	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Intensity > peaks[j].Intensity
	})
	return peaks
}
