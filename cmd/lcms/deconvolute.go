package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spelveris/lcms-go/deconv"
)

var deconvoluteCmd = &cobra.Command{
	Use:   "deconvolute <spectrum.csv>",
	Short: "Deconvolute a charge-state envelope spectrum into neutral masses.",
	Long: `deconvolute reads a two-column CSV file of "mz,intensity" rows and
prints the recovered components (mass, mass standard deviation, number
of charge states, intensity, peak count, R²) to standard output.`,
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := readSpectrumCSV(args[0])
		if err != nil {
			return err
		}
		components := deconv.Deconvolute(spec, deconvConfig())
		printComponents(cmd, components)
		return nil
	},
}

func readSpectrumCSV(path string) (deconv.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return deconv.Spectrum{}, fmt.Errorf("lcms: opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = 2

	var spec deconv.Spectrum
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return deconv.Spectrum{}, fmt.Errorf("lcms: reading %s: %w", path, err)
		}
		mz, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return deconv.Spectrum{}, fmt.Errorf("lcms: mz %q: %w", rec[0], err)
		}
		intensity, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return deconv.Spectrum{}, fmt.Errorf("lcms: intensity %q: %w", rec[1], err)
		}
		spec.MZ = append(spec.MZ, mz)
		spec.Intensity = append(spec.Intensity, intensity)
	}
	return spec, nil
}

func printComponents(cmd *cobra.Command, components []deconv.Component) {
	cmd.Printf("%-14s %-14s %-8s %-12s %-6s %s\n", "mass", "mass_std", "charges", "intensity", "peaks", "r2")
	for _, c := range components {
		cmd.Printf("%-14.4f %-14.4f %-8d %-12.1f %-6d %.3f\n",
			c.Mass, c.MassStd, c.NumCharges, c.Intensity, c.PeaksFound, c.R2)
	}
}
