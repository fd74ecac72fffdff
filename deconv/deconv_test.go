package deconv

import (
	"math"
	"testing"
)

// buildEnvelope returns a synthetic spectrum containing one Gaussian peak
// window (sigma in Da) per charge state, centered exactly at the
// theoretical m/z for neutral mass M at that charge, with the given
// relative amplitudes. Each charge's window is generated independently and
// concatenated, since the envelope's charge-implied m/z values are always
// far enough apart (relative to sigma) that the windows never overlap —
// this keeps the synthetic spectrum compact regardless of how wide the
// overall charge range is.
func buildEnvelope(mass float64, charges []int, amplitudes []float64, sigma, proton float64) Spectrum {
	const step = 0.02
	var mz, intensity []float64
	for i, z := range charges {
		center := (mass + float64(z)*proton) / float64(z)
		lo := center - 5*sigma
		n := int(10*sigma/step) + 1
		for j := 0; j < n; j++ {
			x := lo + float64(j)*step
			d := x - center
			mz = append(mz, x)
			intensity = append(intensity, amplitudes[i]*math.Exp(-d*d/(2*sigma*sigma)))
		}
	}
	return sortSpectrum(Spectrum{MZ: mz, Intensity: intensity})
}

// sortSpectrum orders a spectrum's points by ascending m/z, required since
// buildEnvelope emits one window per charge state in charge order, not m/z
// order.
func sortSpectrum(s Spectrum) Spectrum {
	type point struct{ mz, inten float64 }
	pts := make([]point, len(s.MZ))
	for i := range s.MZ {
		pts[i] = point{s.MZ[i], s.Intensity[i]}
	}
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j-1].mz > pts[j].mz; j-- {
			pts[j-1], pts[j] = pts[j], pts[j-1]
		}
	}
	mz := make([]float64, len(pts))
	inten := make([]float64, len(pts))
	for i, p := range pts {
		mz[i] = p.mz
		inten[i] = p.inten
	}
	return Spectrum{MZ: mz, Intensity: inten}
}

func mergeSpectra(specs ...Spectrum) Spectrum {
	var mz, intensity []float64
	for _, s := range specs {
		mz = append(mz, s.MZ...)
		intensity = append(intensity, s.Intensity...)
	}
	return sortSpectrum(Spectrum{MZ: mz, Intensity: intensity})
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NoiseCutoff = 0.05
	cfg.UseMonoisotopicProton = false // average proton, matches spec scenarios
	return cfg
}

// S1: myoglobin-like envelope, narrow (K<20).
func TestScenarioS1NarrowEnvelope(t *testing.T) {
	const mass = 16951.50
	charges := []int{10, 11, 12, 13, 14, 15, 16, 17, 18}
	amps := []float64{1.0, 1.1, 1.2, 1.0, 0.8, 0.6, 0.4, 0.3, 0.2}
	cfg := testConfig()
	spec := buildEnvelope(mass, charges, amps, 0.3, cfg.ProtonMass())

	components := Deconvolute(spec, cfg)
	multi := filterMultiCharge(components)
	if len(multi) != 1 {
		t.Fatalf("expected 1 multi-charge component, got %d (all: %+v)", len(multi), components)
	}
	c := multi[0]
	if c.Mass < 16951.49 || c.Mass > 16951.51 {
		t.Errorf("mass = %v, want within [16951.49, 16951.51]", c.Mass)
	}
	if c.NumCharges != 9 {
		t.Errorf("num_charges = %v, want 9", c.NumCharges)
	}
	for i, z := range c.ChargeStates {
		if int(z) != 10+i {
			t.Errorf("charge_states = %v, want 10..18", c.ChargeStates)
			break
		}
	}
}

// S2: broad envelope (K>=20), intensity-weighted core average.
func TestScenarioS2BroadEnvelope(t *testing.T) {
	const mass = 66430.30
	var charges []int
	var amps []float64
	for z := 8; z <= 29; z++ {
		charges = append(charges, z)
		amps = append(amps, 1.0)
	}
	cfg := testConfig()
	cfg.HighMW = 100000
	spec := buildEnvelope(mass, charges, amps, 0.3, cfg.ProtonMass())

	components := Deconvolute(spec, cfg)
	multi := filterMultiCharge(components)
	if len(multi) != 1 {
		t.Fatalf("expected 1 multi-charge component, got %d", len(multi))
	}
	c := multi[0]
	if c.Mass < 66430.0 || c.Mass > 66430.6 {
		t.Errorf("mass = %v, want within [66430.0, 66430.6]", c.Mass)
	}
	if c.NumCharges != 22 {
		t.Errorf("num_charges = %v, want 22", c.NumCharges)
	}
}

// S3: two co-eluting species with a 1-peak overlap. Species B's charge
// z=14 hypothesis happens to land exactly on species A's own z=13 peak
// (engineered below), so A's candidate generator and B's candidate
// generator both want to claim it. The primary pass selects A (the larger
// ladder) first, which claims that peak; B's primary candidate is then
// rejected outright for overlapping a used peak (cfg.MaxOverlap defaults to
// 0, so any overlap rejects the whole candidate), but the residual pass
// regenerates B's candidate from the peaks A didn't claim, where it stands
// on its own five peaks. Exercises the selector's exclusive-assignment and
// residual-pass machinery directly (spec §4.E, §8 S3).
func TestScenarioS3OverlappingSpecies(t *testing.T) {
	cfg := testConfig()
	const (
		massA = 14305.00
		zA    = 13
		zB    = 14
	)
	proton := cfg.ProtonMass()
	massB := massA * float64(zB) / float64(zA)

	chargesA := []int{10, 11, 12, 13, 14, 15, 16}
	ampsA := []float64{1, 1, 1, 1, 1, 1, 1}

	var chargesB []int
	var ampsB []float64
	for _, z := range []int{10, 11, 12, 13, 15} { // zB=14 deliberately omitted: A's z=13 peak stands in for it
		chargesB = append(chargesB, z)
		ampsB = append(ampsB, 1)
	}

	specA := buildEnvelope(massA, chargesA, ampsA, 0.3, proton)
	specB := buildEnvelope(massB, chargesB, ampsB, 0.3, proton)
	spec := mergeSpectra(specA, specB)

	components := Deconvolute(spec, cfg)
	multi := filterMultiCharge(components)
	if len(multi) != 2 {
		t.Fatalf("expected 2 multi-charge components (the overlap must not merge or drop one), got %d: %+v", len(multi), multi)
	}

	seen := make(map[float64]int)
	for _, c := range multi {
		for _, mz := range c.IonMZs {
			seen[mz]++
		}
	}
	for mz, n := range seen {
		if n > 1 {
			t.Errorf("peak at mz %v claimed by %d components, want at most 1", mz, n)
		}
	}

	var gotA, gotB bool
	for _, c := range multi {
		switch {
		case math.Abs(c.Mass-massA) < 1.0:
			gotA = true
		case math.Abs(c.Mass-massB) < 1.0:
			gotB = true
		}
	}
	if !gotA {
		t.Errorf("no component recovered species A's mass %v; got %+v", massA, multi)
	}
	if !gotB {
		t.Errorf("no component recovered species B's mass %v; got %+v", massB, multi)
	}
}

// S4: small molecule only.
func TestScenarioS4SmallMoleculeOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoiseCutoff = 1000
	cfg.MinCharge = 1 // opt into the singly-charged pass, matching server.py's min_charge<=1 gate
	proton := cfg.ProtonMass()
	spec := buildEnvelope(524.27-proton, []int{1}, []float64{5e4}, 0.05, proton)

	components := Deconvolute(spec, cfg)
	if len(components) != 1 {
		t.Fatalf("expected 1 component, got %d", len(components))
	}
	c := components[0]
	if c.Mass < 523.26 || c.Mass > 523.27 {
		t.Errorf("mass = %v, want within [523.26, 523.27]", c.Mass)
	}
	if len(c.ChargeStates) != 1 || c.ChargeStates[0] != 1 {
		t.Errorf("charge_states = %v, want [1]", c.ChargeStates)
	}
}

// S5: mixed protein envelope + small molecule, far apart.
func TestScenarioS5Mixed(t *testing.T) {
	cfg := testConfig()
	cfg.MinCharge = 1 // opt into the singly-charged pass; the multi-charge z-range still clamps to >=2
	const mass = 23456.78
	var charges []int
	var amps []float64
	for z := 10; z <= 20; z++ {
		charges = append(charges, z)
		amps = append(amps, 1.0)
	}
	protein := buildEnvelope(mass, charges, amps, 0.3, cfg.ProtonMass())
	smallMol := buildEnvelope(350.20-cfg.ProtonMass(), []int{1}, []float64{2e4}, 0.05, cfg.ProtonMass())
	spec := mergeSpectra(protein, smallMol)
	cfg.NoiseCutoff = 0.05

	components := Deconvolute(spec, cfg)
	multi := filterMultiCharge(components)
	single := filterSingleCharge(components)
	if len(multi) != 1 {
		t.Fatalf("expected 1 multi-charge component, got %d", len(multi))
	}
	if len(single) != 1 {
		t.Fatalf("expected 1 singly-charged component, got %d", len(single))
	}
	ranges := ExclusionRangesFor(multi)
	if inExclusionRange(single[0].IonMZs[0], ranges) {
		t.Errorf("singly-charged peak %v falls inside a multi-charge exclusion range", single[0].IonMZs[0])
	}
}

// S6: pseudo-ladder with non-contiguous charges. The contiguity gate
// rejects the multi-charge ladder, and cfg.MinCharge stays at its default
// (>1), so the singly-charged pass never runs over the five leftover peaks
// even though each one's z=1 mass happens to fall inside
// [SinglyLowMW, SinglyHighMW]. Expect a fully empty result (spec §8).
func TestScenarioS6PseudoLadderRejected(t *testing.T) {
	cfg := testConfig()
	const mass = 9000.0
	charges := []int{5, 10, 15, 20, 25}
	amps := []float64{1, 1, 1, 1, 1}
	spec := buildEnvelope(mass, charges, amps, 0.3, cfg.ProtonMass())

	components := Deconvolute(spec, cfg)
	if len(components) != 0 {
		t.Errorf("expected an empty result from a non-contiguous pseudo-ladder, got %d components: %+v", len(components), components)
	}
}

func filterMultiCharge(cs []Component) []Component {
	var out []Component
	for _, c := range cs {
		if c.NumCharges > 1 {
			out = append(out, c)
		}
	}
	return out
}

func filterSingleCharge(cs []Component) []Component {
	var out []Component
	for _, c := range cs {
		if c.NumCharges == 1 {
			out = append(out, c)
		}
	}
	return out
}

// Boundary property 9: len(mz) < min_peaks yields an empty result, no error.
func TestTooFewPointsYieldsEmpty(t *testing.T) {
	cfg := DefaultConfig()
	spec := Spectrum{MZ: []float64{100, 100.1}, Intensity: []float64{5000, 4000}}
	components := Deconvolute(spec, cfg)
	if len(components) != 0 {
		t.Errorf("expected empty result for a too-short spectrum, got %d components", len(components))
	}
}

// Boundary property 10: all intensities below noise_cutoff yields empty.
func TestAllBelowNoiseCutoffYieldsEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoiseCutoff = 1e6
	spec := buildEnvelope(16951.5, []int{10, 11, 12, 13}, []float64{1, 1, 1, 1}, 0.3, cfg.ProtonMass())
	components := Deconvolute(spec, cfg)
	if len(components) != 0 {
		t.Errorf("expected empty result when all intensities are below noise_cutoff, got %d", len(components))
	}
}

// Boundary property 12: two peaks at the same charge-implied mass and
// nothing else never produces a multi-charge component (min_peaks=3 fails).
func TestTwoPeaksNeverMultiCharge(t *testing.T) {
	cfg := testConfig()
	spec := buildEnvelope(16951.5, []int{10, 11}, []float64{1, 1}, 0.3, cfg.ProtonMass())
	components := Deconvolute(spec, cfg)
	for _, c := range components {
		if c.NumCharges > 1 {
			t.Errorf("expected no multi-charge component from only two peaks, got %+v", c)
		}
	}
}

// Invariants 1-4 over the S1 result.
func TestInvariantsHoldOnEnvelope(t *testing.T) {
	cfg := testConfig()
	charges := []int{10, 11, 12, 13, 14, 15, 16, 17, 18}
	amps := []float64{1.0, 1.1, 1.2, 1.0, 0.8, 0.6, 0.4, 0.3, 0.2}
	spec := buildEnvelope(16951.50, charges, amps, 0.3, cfg.ProtonMass())
	components := Deconvolute(spec, cfg)

	// All ions in this result trace back to one PickPeaks call on one
	// spectrum, so two components sharing a peak show up as an exact m/z
	// match — a direct check of property 2's pairwise-disjoint peak sets.
	seenPeaks := make(map[float64]bool)
	for _, c := range components {
		if len(c.IonMZs) != c.PeaksFound || len(c.IonCharges) != c.PeaksFound || len(c.IonIntensities) != c.PeaksFound {
			t.Errorf("ion array lengths disagree with peaks_found for component %+v", c)
		}
		uniqueCharges := map[uint16]bool{}
		for _, z := range c.IonCharges {
			uniqueCharges[z] = true
		}
		if len(uniqueCharges) != c.NumCharges || len(uniqueCharges) != len(c.ChargeStates) {
			t.Errorf("num_charges inconsistent for component %+v", c)
		}
		for i, mzVal := range c.IonMZs {
			z := float64(c.IonCharges[i])
			proton := cfg.ProtonMass()
			relErr := math.Abs(mzVal*z-z*proton-c.Mass) / c.Mass
			if relErr > cfg.MWAgreement+1e-9 {
				t.Errorf("ion mass error %v exceeds mw_agreement %v", relErr, cfg.MWAgreement)
			}
			if seenPeaks[mzVal] {
				t.Errorf("peak at mz %v claimed by more than one component", mzVal)
			}
			seenPeaks[mzVal] = true
		}
	}
}

// Property 5/8: repeated calls on identical inputs are bit-identical.
func TestDeterministicRepeat(t *testing.T) {
	cfg := testConfig()
	charges := []int{10, 11, 12, 13, 14, 15, 16, 17, 18}
	amps := []float64{1.0, 1.1, 1.2, 1.0, 0.8, 0.6, 0.4, 0.3, 0.2}
	spec := buildEnvelope(16951.50, charges, amps, 0.3, cfg.ProtonMass())

	a := Deconvolute(spec, cfg)
	b := Deconvolute(spec, cfg)
	if len(a) != len(b) {
		t.Fatalf("component count differs across repeated calls: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Mass != b[i].Mass || a[i].NumCharges != b[i].NumCharges || a[i].Intensity != b[i].Intensity {
			t.Errorf("component %d differs across repeated calls: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// Property 6: theoretical_mz round-trips back to the input mass.
func TestTheoreticalMZRoundTrip(t *testing.T) {
	mass := 16951.50
	results := TheoreticalMZ(mass, []uint16{10, 15, 20}, false)
	for _, r := range results {
		back := r.MZ*float64(r.Charge) - float64(r.Charge)*ProtonMassAverage
		if math.Abs(back-mass) > 1e-6 {
			t.Errorf("round trip for z=%d: got mass %v, want %v", r.Charge, back, mass)
		}
	}
}
