package chrom

import "github.com/spelveris/lcms-go/internal/numeric"

// ChromPeak is one detected chromatographic peak (spec §4.I).
type ChromPeak struct {
	ApexTime   float64
	Intensity  float64
	LeftIndex  int
	RightIndex int
	Area       float64
}

// FindPeaks detects peaks in a (times, intensities) trace: height and
// prominence are both relative to max(intensities), defaulting to 10% and
// 5% respectively (spec §4.I). heightRel or prominenceRel of 0 selects the
// default for that parameter.
func FindPeaks(times, intensities []float64, heightRel, prominenceRel float64) []ChromPeak {
	if len(times) == 0 || len(times) != len(intensities) {
		return nil
	}
	if heightRel <= 0 {
		heightRel = 0.1
	}
	if prominenceRel <= 0 {
		prominenceRel = 0.05
	}

	maxI := 0.0
	for _, v := range intensities {
		if v > maxI {
			maxI = v
		}
	}
	if maxI <= 0 {
		return nil
	}
	minHeight := heightRel * maxI
	minProminence := prominenceRel * maxI

	apexIdx := numeric.FindSimpleMaxima(intensities, 1)

	var peaks []ChromPeak
	for _, apex := range apexIdx {
		if intensities[apex] < minHeight {
			continue
		}
		left, right := peakBounds(intensities, apex)
		prominence := prominenceOf(intensities, apex, left, right)
		if prominence < minProminence {
			continue
		}
		area := numeric.TrapezoidalIntegrate(times[left:right+1], intensities[left:right+1])
		peaks = append(peaks, ChromPeak{
			ApexTime:   times[apex],
			Intensity:  intensities[apex],
			LeftIndex:  left,
			RightIndex: right,
			Area:       area,
		})
	}
	return peaks
}

// peakBounds walks outward from apex to the nearest local minima on each
// side, bounding the region used for prominence and area calculations.
func peakBounds(y []float64, apex int) (left, right int) {
	left = apex
	for left > 0 && y[left-1] <= y[left] {
		left--
	}
	right = apex
	for right < len(y)-1 && y[right+1] <= y[right] {
		right++
	}
	return left, right
}

// prominenceOf returns the apex's height above the higher of its two
// flanking valley floors within [left, right].
func prominenceOf(y []float64, apex, left, right int) float64 {
	leftMin, rightMin := y[apex], y[apex]
	for i := left; i <= apex; i++ {
		if y[i] < leftMin {
			leftMin = y[i]
		}
	}
	for i := apex; i <= right; i++ {
		if y[i] < rightMin {
			rightMin = y[i]
		}
	}
	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return y[apex] - base
}
