// Package chrom implements the chromatogram extractor (spec §4.B): TIC and
// EIC computation over a series of scans, spectrum summation over a
// retention-time window, and the adjunct chromatogram peak finder of
// spec §4.I.
package chrom

// Scan is one MS acquisition at a retention time. Exactly one of the two
// shapes applies: a shared-axis scan carries only Intensity (against the
// Sample's MZAxis); a private-axis scan carries both MZ and Intensity.
// Spec §3's duck-typed "any of several attribute names" container becomes
// this tagged representation.
type Scan struct {
	// MZ is nil for a shared-axis scan.
	MZ        []float64
	Intensity []float64
	// Malformed marks a scan that failed to parse upstream (spec §7,
	// MalformedScan); it contributes zero to every aggregate and is
	// otherwise ignored.
	Malformed bool
}

// SharedAxis reports whether s shares the sample's global m/z axis.
func (s Scan) SharedAxis() bool { return s.MZ == nil }

// Sample is an ordered sequence of scans plus parallel retention times
// (spec §3). MZAxis is non-nil only when scans use the shared-axis shape.
type Sample struct {
	Times []float64
	Scans []Scan
	MZAxis []float64
	// TIC is an optional precomputed total-ion-chromatogram; when present,
	// TIC() returns it directly instead of summing scans.
	TIC []float64

	AcqMethod string
	AcqInfo   map[string]string
}
