package deconv

import (
	"math"

	"github.com/spelveris/lcms-go/internal/numeric"
	"gonum.org/v1/gonum/mat"
)

// maxAnchors bounds the number of top-intensity peaks tried as envelope
// anchors. Spec §4.D calls this bound "a detail-limited heuristic" — larger
// values only increase cost, never correctness.
const maxAnchors = 30

// massMatrix holds M[p, z] = (mz[p] - proton) * z for every peak p and
// trial charge z, precomputed once per generateCandidates call (once for
// the primary pass, once for the residual pass) and reused across every
// anchor (spec §4.D, §5).
type massMatrix struct {
	m       *mat.Dense
	minZ    int
	maxZ    int
	zWidth  int
}

func buildMassMatrix(peaks []RawPeak, minZ, maxZ int, proton float64) massMatrix {
	zWidth := maxZ - minZ + 1
	m := mat.NewDense(len(peaks), zWidth, nil)
	for p, peak := range peaks {
		for zi := 0; zi < zWidth; zi++ {
			z := float64(minZ + zi)
			m.Set(p, zi, (peak.MZ-proton)*z)
		}
	}
	return massMatrix{m: m, minZ: minZ, maxZ: maxZ, zWidth: zWidth}
}

func (mm massMatrix) at(p, z int) float64 {
	return mm.m.At(p, z-mm.minZ)
}

// generateCandidates runs the charge-ladder candidate generator (spec §4.D)
// over every (anchor, trial charge) pair and returns every candidate that
// survives the size, mass-bound, and contiguity filters. contigOverride, if
// non-zero, relaxes the contiguity-ladder minimum for the residual pass
// (spec §4.E: "L >= 2 suffices").
func generateCandidates(peaks []RawPeak, cfg Config, contigOverride int) []*candidate {
	if len(peaks) == 0 {
		return nil
	}
	proton := cfg.ProtonMass()
	mm := buildMassMatrix(peaks, cfg.MinCharge, cfg.MaxCharge, proton)

	numAnchors := len(peaks)
	if numAnchors > maxAnchors {
		numAnchors = maxAnchors
	}

	contigMin := cfg.ContigMin
	if contigOverride > 0 {
		contigMin = contigOverride
	}

	var out []*candidate
	for a := 0; a < numAnchors; a++ {
		for z0 := cfg.MinCharge; z0 <= cfg.MaxCharge; z0++ {
			cand := assembleCandidate(peaks, mm, a, z0, cfg, proton, contigMin)
			if cand != nil {
				out = append(out, cand)
			}
		}
	}
	return out
}

func assembleCandidate(peaks []RawPeak, mm massMatrix, a, z0 int, cfg Config, proton float64, contigMin int) *candidate {
	anchor := peaks[a]
	m0 := (anchor.MZ - proton) * float64(z0)
	if m0 < cfg.LowMW || m0 > cfg.HighMW {
		return nil
	}

	intensityFloor := cfg.NoiseCutoff
	if f := anchor.Intensity * cfg.AbundanceCutoff; f > intensityFloor {
		intensityFloor = f
	}

	var ions []Ion
	for p, peak := range peaks {
		if peak.Intensity < intensityFloor {
			continue
		}
		bestZ := 0
		bestErr := math.Inf(1)
		for z := cfg.MinCharge; z <= cfg.MaxCharge; z++ {
			mass := mm.at(p, z)
			err := math.Abs(mass-m0) / m0
			if err < bestErr {
				bestErr = err
				bestZ = z
			}
		}
		if bestErr > cfg.MWAgreement {
			continue
		}
		if cfg.UseMZAgreement {
			predMZ := (m0 + float64(bestZ)*proton) / float64(bestZ)
			if math.Abs(peak.MZ-predMZ)/predMZ > cfg.MWAgreement {
				continue
			}
		}
		ions = append(ions, Ion{
			MZ:        peak.MZ,
			Intensity: peak.Intensity,
			Charge:    uint16(bestZ),
			Mass:      mm.at(p, bestZ),
			PeakIndex: peak.Index,
		})
	}

	if len(ions) < cfg.MinPeaks {
		return nil
	}

	chargeStates := uniqueSortedCharges(ions)
	l := longestContiguousRun(chargeStates)
	k := len(chargeStates)
	if !passesContiguity(l, k, contigMin) {
		return nil
	}

	r2 := envelopeR2(ions)

	mass, _ := EstimateMass(ions)

	var totalInten float64
	for _, ion := range ions {
		totalInten += ion.Intensity
	}

	return &candidate{
		mass:         mass,
		chargeStates: chargeStates,
		ions:         ions,
		r2:           r2,
		numCharges:   k,
		totalInten:   totalInten,
	}
}

// longestContiguousRun returns the length of the longest run of consecutive
// integers within the sorted, unique charge states.
func longestContiguousRun(charges []uint16) int {
	if len(charges) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(charges); i++ {
		if charges[i] == charges[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// passesContiguity applies the tiered contiguity-ladder gate of spec §4.D.
func passesContiguity(l, k, contigMin int) bool {
	switch {
	case k >= 8:
		min := contigMin
		if min < 6 {
			min = 6
		}
		return l >= min && float64(l)/float64(k) >= 0.60
	case k >= 4:
		return l >= 4 && float64(l)/float64(k) >= 0.60
	default:
		return l >= contigMin
	}
}

// envelopeR2 fits ln(intensity) = a*z^2 + b*z + c across the candidate's
// ions and returns the coefficient of determination. Informational only —
// spec §4.D and §9 are explicit that this gate is reported, never enforced.
func envelopeR2(ions []Ion) float64 {
	if len(ions) < 3 {
		return 0
	}
	z := make([]float64, len(ions))
	logInten := make([]float64, len(ions))
	for i, ion := range ions {
		z[i] = float64(ion.Charge)
		v := ion.Intensity
		if v <= 0 {
			v = 1e-12
		}
		logInten[i] = math.Log(v)
	}
	_, _, _, r2 := numeric.QuadraticFit(z, logInten)
	return r2
}
