package deconv

import (
	"sort"

	"github.com/spelveris/lcms-go/internal/numeric"
)

// EstimateMass computes a robust neutral mass from a set of assigned ions
// (spec §4.F): median-absolute-deviation outlier rejection, a narrow-
// envelope median estimate, and a broad-envelope per-charge-deduplicated,
// intensity-weighted core average. massStd is the population standard
// deviation of the full, pre-rejection ion-set masses.
func EstimateMass(ions []Ion) (mass, massStd float64) {
	if len(ions) == 0 {
		return 0, 0
	}

	masses := make([]float64, len(ions))
	intensities := make([]float64, len(ions))
	for i, ion := range ions {
		masses[i] = ion.Mass
		intensities[i] = ion.Intensity
	}
	massStd = numeric.StdDev(masses)

	cleanedMasses, cleanedIons := rejectOutliers(masses, ions)
	massMedian := numeric.Median(cleanedMasses)

	uniqueCharges := uniqueSortedCharges(cleanedIons)
	if len(uniqueCharges) < 20 {
		return massMedian, massStd
	}

	// Broad envelope: keep the single most intense ion per charge state.
	dedup := dedupeByCharge(cleanedIons)
	dedupMasses := make([]float64, len(dedup))
	for i, ion := range dedup {
		dedupMasses[i] = ion.Mass
	}
	reducedMasses, reducedIons := rejectOutliers(dedupMasses, dedup)
	if len(reducedIons) < 3 {
		return massMedian, massStd
	}

	maxInt := 0.0
	for _, ion := range reducedIons {
		if ion.Intensity > maxInt {
			maxInt = ion.Intensity
		}
	}

	var core []Ion
	for _, ion := range reducedIons {
		if ion.Intensity >= 0.35*maxInt {
			core = append(core, ion)
		}
	}
	final := reducedIons
	if len(core) >= 3 {
		final = core
	}

	finalMasses := make([]float64, len(final))
	finalInten := make([]float64, len(final))
	for i, ion := range final {
		finalMasses[i] = ion.Mass
		finalInten[i] = ion.Intensity
	}
	return numeric.WeightedMean(finalMasses, finalInten), massStd
}

// rejectOutliers removes ions whose mass deviates from the median by more
// than the MAD-derived threshold of spec §4.F, falling back to the
// original arrays when fewer than three ions would survive.
func rejectOutliers(masses []float64, ions []Ion) ([]float64, []Ion) {
	med := numeric.Median(masses)
	mad := numeric.MAD(masses, med)

	threshold := 3 * mad
	useAbsolute := mad < 0.1
	if useAbsolute {
		threshold = 5.0
	}

	var keptMasses []float64
	var keptIons []Ion
	for i, m := range masses {
		dev := m - med
		if dev < 0 {
			dev = -dev
		}
		if dev >= threshold {
			continue
		}
		keptMasses = append(keptMasses, m)
		keptIons = append(keptIons, ions[i])
	}

	if len(keptIons) < 3 {
		return masses, ions
	}
	return keptMasses, keptIons
}

// dedupeByCharge keeps only the most intense ion at each unique charge
// state.
func dedupeByCharge(ions []Ion) []Ion {
	best := make(map[uint16]Ion, len(ions))
	for _, ion := range ions {
		if cur, ok := best[ion.Charge]; !ok || ion.Intensity > cur.Intensity {
			best[ion.Charge] = ion
		}
	}
	charges := make([]uint16, 0, len(best))
	for z := range best {
		charges = append(charges, z)
	}
	sort.Slice(charges, func(i, j int) bool { return charges[i] < charges[j] })

	out := make([]Ion, 0, len(best))
	for _, z := range charges {
		out = append(out, best[z])
	}
	return out
}
