package deconv

// residualContigMin relaxes the contiguity-ladder minimum for the residual
// pass, per spec §4.E ("L >= 2 suffices").
const residualContigMin = 2

// Deconvolute is the engine's single public entry point (spec §4.H): peak
// picking, charge-ladder candidate generation, exclusive selection with a
// residual second pass, and a singly-charged scan, merged and sorted by
// (num_charges desc, intensity desc). Never returns an error — EmptyInput,
// InsufficientPeaks, and NoMatch all collapse to an empty slice, per spec
// §7.
//
// The singly-charged pass only runs when cfg.MinCharge <= 1, mirroring the
// original's "if include_singly_charged and min_charge <= 1" gate; the
// multi-charge passes always clamp their own charge floor to 2, since a
// z=1 "envelope" is exactly what the singly-charged detector covers.
func Deconvolute(spec Spectrum, cfg Config) []Component {
	peaks := PickPeaks(spec, cfg)

	multiCfg := cfg
	if multiCfg.MinCharge < 2 {
		multiCfg.MinCharge = 2
	}

	var components []Component
	used := make(map[int]bool)

	if len(peaks) > 0 {
		primary := generateCandidates(peaks, multiCfg, 0)
		components = selectComponents(primary, multiCfg, used, nil, primaryDupTolerance, false)

		residual := residualPeaks(peaks, used)
		if len(residual) >= multiCfg.MinPeaks {
			residualCandidates := generateCandidates(residual, multiCfg, residualContigMin)
			components = selectComponents(residualCandidates, multiCfg, used, components, residualDupTolerance, true)
		}
	}

	if cfg.MinCharge <= 1 {
		excludeRanges := ExclusionRangesFor(components)
		singly := DetectSinglyCharged(spec, cfg, excludeRanges)
		components = append(components, singly...)
	}

	sortComponents(components)
	return components
}
