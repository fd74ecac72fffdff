package deconv

import (
	"math"
	"sort"

	"github.com/spelveris/lcms-go/internal/numeric"
)

// ExclusionRange is an [Low, High] m/z window the singly-charged detector
// must skip, typically derived from an already-assigned multi-charge
// envelope (spec §4.G step 3).
type ExclusionRange struct {
	Low  float64
	High float64
}

// ExclusionRangesFor derives the exclusion ranges for an already-selected
// set of multi-charge components: [min(ion_mzs)-2, max(ion_mzs)+2] for
// each, per spec §4.G.
func ExclusionRangesFor(components []Component) []ExclusionRange {
	ranges := make([]ExclusionRange, 0, len(components))
	for _, c := range components {
		if len(c.IonMZs) == 0 {
			continue
		}
		lo, hi := c.IonMZs[0], c.IonMZs[0]
		for _, mz := range c.IonMZs {
			if mz < lo {
				lo = mz
			}
			if mz > hi {
				hi = mz
			}
		}
		ranges = append(ranges, ExclusionRange{Low: lo - 2, High: hi + 2})
	}
	return ranges
}

func inExclusionRange(mz float64, ranges []ExclusionRange) bool {
	for _, r := range ranges {
		if mz >= r.Low && mz <= r.High {
			return true
		}
	}
	return false
}

// DetectSinglyCharged finds [M+H]+ peaks in spec outside the supplied
// exclusion ranges (spec §4.G). The ladder-contiguity gate does not apply
// here — a single isolated peak is a valid result — so this runs its own
// smoothing and maxima-finding pass rather than reusing PickPeaks' min-peaks
// gate.
func DetectSinglyCharged(spec Spectrum, cfg Config, excludeRanges []ExclusionRange) []Component {
	if len(spec.MZ) == 0 || len(spec.Intensity) != len(spec.MZ) {
		return nil
	}

	peaks := pickAllPeaks(spec, cfg)
	if len(peaks) == 0 {
		return nil
	}

	maxIntensity := 0.0
	for _, p := range peaks {
		if p.Intensity > maxIntensity {
			maxIntensity = p.Intensity
		}
	}
	threshold := cfg.MinIntensityPct / 100 * maxIntensity
	proton := cfg.ProtonMass()

	var out []Component
	for _, p := range peaks {
		if p.Intensity < threshold {
			continue
		}
		// cfg.NoiseCutoff is an absolute noise floor applied everywhere
		// else in the engine; §4.G's own percentile filter is relative to
		// the local spectrum and would otherwise let a pure-noise
		// spectrum still emit a "peak".
		if p.Intensity < cfg.NoiseCutoff {
			continue
		}
		mass := p.MZ - proton
		if mass < cfg.SinglyLowMW || mass > cfg.SinglyHighMW {
			continue
		}
		if inExclusionRange(p.MZ, excludeRanges) {
			continue
		}
		out = append(out, Component{
			Mass:           mass,
			MassStd:        0,
			ChargeStates:   []uint16{1},
			NumCharges:     1,
			Intensity:      p.Intensity,
			PeaksFound:     1,
			R2:             1.0,
			IonMZs:         []float64{p.MZ},
			IonCharges:     []uint16{1},
			IonIntensities: []float64{p.Intensity},
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Intensity > out[j].Intensity })
	return out
}

// pickAllPeaks smooths and centroids every local maximum of spec without
// applying a noise floor or a minimum peak count — the filters §4.G applies
// are its own (intensity percentile, mass bounds, exclusion ranges).
func pickAllPeaks(spec Spectrum, cfg Config) []RawPeak {
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
		mz := numeric.ParabolicCentroid(spec.MZ, spec.Intensity, i)
		peaks = append(peaks, RawPeak{Index: i, MZ: mz, Intensity: spec.Intensity[i]})
	}
	sort.SliceStable(peaks, func(i, j int) bool { return peaks[i].Intensity > peaks[j].Intensity })
	return peaks
}
