// Package csvreader adapts a flat CSV dump of scan rows into a
// chrom.Sample, standing in for the vendor-format parser spec.md
// deliberately keeps out of the core's scope (spec §1). The format is a
// private-axis dump: one row per (scan_index, time, mz, intensity) point,
// sorted by scan_index then mz.
package csvreader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spelveris/lcms-go/chrom"
)

type point struct {
	mz, intensity float64
}

// Read parses r into a chrom.Sample. Rows are expected as
// "scan_index,time,mz,intensity" with an optional header line beginning
// with '#'.
func Read(r io.Reader) (chrom.Sample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 4

	var order []int
	times := map[int]float64{}
	points := map[int][]point{}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return chrom.Sample{}, fmt.Errorf("csvreader: %w", err)
		}

		scanIdx, err := strconv.Atoi(rec[0])
		if err != nil {
			return chrom.Sample{}, fmt.Errorf("csvreader: scan_index %q: %w", rec[0], err)
		}
		t, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return chrom.Sample{}, fmt.Errorf("csvreader: time %q: %w", rec[1], err)
		}
		mz, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return chrom.Sample{}, fmt.Errorf("csvreader: mz %q: %w", rec[2], err)
		}
		intensity, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return chrom.Sample{}, fmt.Errorf("csvreader: intensity %q: %w", rec[3], err)
		}

		if _, seen := times[scanIdx]; !seen {
			order = append(order, scanIdx)
		}
		times[scanIdx] = t
		points[scanIdx] = append(points[scanIdx], point{mz, intensity})
	}

	sortInts(order)

	sample := chrom.Sample{
		Times: make([]float64, len(order)),
		Scans: make([]chrom.Scan, len(order)),
	}
	for i, idx := range order {
		sample.Times[i] = times[idx]
		pts := points[idx]
		sortPointsByMZ(pts)
		mz := make([]float64, len(pts))
		intensity := make([]float64, len(pts))
		malformed := len(pts) == 0
		for j, p := range pts {
			mz[j] = p.mz
			intensity[j] = p.intensity
		}
		sample.Scans[i] = chrom.Scan{MZ: mz, Intensity: intensity, Malformed: malformed}
	}
	return sample, nil
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func sortPointsByMZ(pts []point) {
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j-1].mz > pts[j].mz; j-- {
			pts[j-1], pts[j] = pts[j], pts[j-1]
		}
	}
}
