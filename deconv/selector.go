package deconv

import "sort"

// primaryDupTolerance and residualDupTolerance are the two duplicate-mass
// thresholds named in spec §4.E and defended in §9: the primary pass uses a
// 50 ppm relative tolerance; the residual pass is deliberately looser at
// 0.1%. Tightening the residual value risks emitting near-duplicate weak
// components, so the two are kept distinct.
const (
	primaryDupTolerance  = 5e-5
	residualDupTolerance = 1e-3
)

// selectComponents performs the deferred exclusive assignment of spec §4.E:
// candidates are ranked once, globally, then greedily accepted if they
// don't overlap already-claimed peaks beyond cfg.MaxOverlap and aren't a
// duplicate mass of an already-selected component. used and selected are
// mutated in place so a residual pass can continue from where the primary
// pass left off.
func selectComponents(candidates []*candidate, cfg Config, used map[int]bool, selected []Component, dupTolerance float64, secondPass bool) []Component {
	ranked := make([]*candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].numCharges != ranked[j].numCharges {
			return ranked[i].numCharges > ranked[j].numCharges
		}
		return ranked[i].totalInten > ranked[j].totalInten
	})

	for _, cand := range ranked {
		if len(cand.ions) == 0 {
			continue
		}
		overlapCount := 0
		for _, ion := range cand.ions {
			if used[ion.PeakIndex] {
				overlapCount++
			}
		}
		overlap := float64(overlapCount) / float64(len(cand.ions))
		if overlap > cfg.MaxOverlap {
			continue
		}

		if isDuplicateMass(selected, cand, dupTolerance) {
			continue
		}

		mass, massStd := EstimateMass(cand.ions)
		comp := buildComponent(cand, mass, massStd, secondPass)
		selected = append(selected, comp)
		for _, ion := range cand.ions {
			used[ion.PeakIndex] = true
		}
	}
	return selected
}

func isDuplicateMass(selected []Component, cand *candidate, tolerance float64) bool {
	for _, s := range selected {
		if s.Mass == 0 {
			continue
		}
		relDiff := cand.mass - s.Mass
		if relDiff < 0 {
			relDiff = -relDiff
		}
		if relDiff/cand.mass >= tolerance {
			continue
		}
		if chargeSetsIntersect(s.ChargeStates, cand.chargeStates) {
			return true
		}
	}
	return false
}

func chargeSetsIntersect(a, b []uint16) bool {
	set := make(map[uint16]bool, len(a))
	for _, z := range a {
		set[z] = true
	}
	for _, z := range b {
		if set[z] {
			return true
		}
	}
	return false
}

func buildComponent(cand *candidate, mass, massStd float64, secondPass bool) Component {
	n := len(cand.ions)
	ionMZs := make([]float64, n)
	ionCharges := make([]uint16, n)
	ionIntensities := make([]float64, n)
	var total float64
	for i, ion := range cand.ions {
		ionMZs[i] = ion.MZ
		ionCharges[i] = ion.Charge
		ionIntensities[i] = ion.Intensity
		total += ion.Intensity
	}
	return Component{
		Mass:           mass,
		MassStd:        massStd,
		ChargeStates:   cand.chargeStates,
		NumCharges:     cand.numCharges,
		Intensity:      total,
		PeaksFound:     n,
		R2:             cand.r2,
		IonMZs:         ionMZs,
		IonCharges:     ionCharges,
		IonIntensities: ionIntensities,
		SecondPass:     secondPass,
	}
}

// residualPeaks returns the peaks from all whose index is not yet claimed
// in used, preserving all's original (intensity-descending) order.
func residualPeaks(all []RawPeak, used map[int]bool) []RawPeak {
	var out []RawPeak
	for _, p := range all {
		if !used[p.Index] {
			out = append(out, p)
		}
	}
	return out
}
