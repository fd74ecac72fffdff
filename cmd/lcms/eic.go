package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spelveris/lcms-go/chrom"
	"github.com/spelveris/lcms-go/samplestore"
)

var eicCmd = &cobra.Command{
	Use:   "eic <sample-dir> <sample-name> <mz> <window>",
	Short: "Extract an ion chromatogram for a target m/z from a stored sample.",
	Args:              cobra.ExactArgs(4),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := samplestore.New(args[0])
		sample, err := store.Load(args[1])
		if err != nil {
			return err
		}
		target, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return err
		}
		window, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return err
		}
		trace := chrom.EIC(sample, target, window)
		for i, t := range sample.Times {
			cmd.Printf("%.4f\t%.4f\n", t, trace[i])
		}
		return nil
	},
}
