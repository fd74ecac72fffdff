// Package viperconfig binds deconv.Config to a *viper.Viper instance, the
// way inmaputil.Cfg wraps viper around inmap.VarGridConfig: defaults are
// registered up front, a config file is optionally merged in, and the
// result is converted once into the engine's plain, dependency-free
// Config value.
package viperconfig

import (
	"fmt"

	"github.com/lnashier/viper"

	"github.com/spelveris/lcms-go/deconv"
)

// New returns a *viper.Viper pre-populated with every spec §6 default.
func New() *viper.Viper {
	v := viper.New()
	d := deconv.DefaultConfig()
	v.SetDefault("min_charge", d.MinCharge)
	v.SetDefault("max_charge", d.MaxCharge)
	v.SetDefault("min_peaks", d.MinPeaks)
	v.SetDefault("noise_cutoff", d.NoiseCutoff)
	v.SetDefault("abundance_cutoff", d.AbundanceCutoff)
	v.SetDefault("mw_agreement", d.MWAgreement)
	v.SetDefault("mw_assign_cutoff", d.MWAssignCutoff)
	v.SetDefault("envelope_cutoff", d.EnvelopeCutoff)
	v.SetDefault("pwhh", d.PWHH)
	v.SetDefault("low_mw", d.LowMW)
	v.SetDefault("high_mw", d.HighMW)
	v.SetDefault("contig_min", d.ContigMin)
	v.SetDefault("use_mz_agreement", d.UseMZAgreement)
	v.SetDefault("use_monoisotopic_proton", d.UseMonoisotopicProton)
	v.SetDefault("max_overlap", d.MaxOverlap)
	v.SetDefault("min_intensity_pct", d.MinIntensityPct)
	v.SetDefault("singly_low_mw", d.SinglyLowMW)
	v.SetDefault("singly_high_mw", d.SinglyHighMW)
	return v
}

// Load reads a TOML configuration file at path (if non-empty) on top of
// New()'s defaults and returns the resulting deconv.Config.
func Load(path string) (deconv.Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return deconv.Config{}, fmt.Errorf("viperconfig: read config file: %w", err)
		}
	}
	return FromViper(v), nil
}

// FromViper converts a populated *viper.Viper into a deconv.Config.
func FromViper(v *viper.Viper) deconv.Config {
	return deconv.Config{
		MinCharge:             v.GetInt("min_charge"),
		MaxCharge:             v.GetInt("max_charge"),
		MinPeaks:              v.GetInt("min_peaks"),
		NoiseCutoff:           v.GetFloat64("noise_cutoff"),
		AbundanceCutoff:       v.GetFloat64("abundance_cutoff"),
		MWAgreement:           v.GetFloat64("mw_agreement"),
		MWAssignCutoff:        v.GetFloat64("mw_assign_cutoff"),
		EnvelopeCutoff:        v.GetFloat64("envelope_cutoff"),
		PWHH:                  v.GetFloat64("pwhh"),
		LowMW:                 v.GetFloat64("low_mw"),
		HighMW:                v.GetFloat64("high_mw"),
		ContigMin:             v.GetInt("contig_min"),
		UseMZAgreement:        v.GetBool("use_mz_agreement"),
		UseMonoisotopicProton: v.GetBool("use_monoisotopic_proton"),
		MaxOverlap:            v.GetFloat64("max_overlap"),
		MinIntensityPct:       v.GetFloat64("min_intensity_pct"),
		SinglyLowMW:           v.GetFloat64("singly_low_mw"),
		SinglyHighMW:          v.GetFloat64("singly_high_mw"),
	}
}
