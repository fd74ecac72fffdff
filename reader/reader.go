// Package reader defines the narrow contract an acquisition-format adapter
// must satisfy to feed the chromatogram extractor and deconvolution engine
// (spec §1, §6): "no specific vendor format is mandated. Any adapter that
// yields valid Sample values satisfies the contract." Vendor-format parsing
// itself stays out of scope; this package only holds the contract and a
// minimal CSV-backed adapter (reader/csvreader) for running the repo
// end to end without a real instrument file.
package reader

import (
	"fmt"

	"github.com/spelveris/lcms-go/chrom"
)

// Reader produces a chrom.Sample from some underlying acquisition source.
type Reader interface {
	ReadSample() (chrom.Sample, error)
}

// Validate checks the invariants spec §3 places on a Sample: equal-length
// times/scans, strictly increasing retention times, and (for each scan)
// equal-length m/z and intensity, strictly increasing m/z, and
// non-negative intensity.
func Validate(s chrom.Sample) error {
	if len(s.Times) != len(s.Scans) {
		return fmt.Errorf("reader: len(times)=%d != len(scans)=%d", len(s.Times), len(s.Scans))
	}
	for i := 1; i < len(s.Times); i++ {
		if s.Times[i] <= s.Times[i-1] {
			return fmt.Errorf("reader: times not strictly increasing at index %d", i)
		}
	}
	for i, scan := range s.Scans {
		if scan.Malformed {
			continue
		}
		mz := scan.MZ
		if mz == nil {
			mz = s.MZAxis
		}
		if len(mz) != len(scan.Intensity) {
			return fmt.Errorf("reader: scan %d: len(mz)=%d != len(intensity)=%d", i, len(mz), len(scan.Intensity))
		}
		for j := 1; j < len(mz); j++ {
			if mz[j] <= mz[j-1] {
				return fmt.Errorf("reader: scan %d: m/z not strictly increasing at index %d", i, j)
			}
		}
		for _, v := range scan.Intensity {
			if v < 0 {
				return fmt.Errorf("reader: scan %d: negative intensity", i)
			}
		}
	}
	return nil
}
