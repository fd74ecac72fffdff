package main

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"

	"github.com/spelveris/lcms-go/config/viperconfig"
	"github.com/spelveris/lcms-go/deconv"
)

// cfg holds the configuration shared across subcommands, the same role
// inmaputil.Cfg plays for InMAP's CLI: a *viper.Viper holding the defaults,
// into which PersistentPreRunE merges the --config file, if any.
type cfg struct {
	*viper.Viper
}

var cliCfg = &cfg{Viper: viperconfig.New()}

// Root is the lcms command-line entry point.
var Root = &cobra.Command{
	Use:   "lcms",
	Short: "An LC-MS intact-protein and small-molecule deconvolution engine.",
	Long: `lcms deconvolutes charge-state envelopes in LC-MS spectra into
neutral masses, extracts ion and total-ion chromatograms, and finds
chromatographic peaks.

Configuration can be supplied via a TOML file (--config); the engine
settings have no individual command-line flags.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if path := cliCfg.GetString("config"); path != "" {
			cliCfg.SetConfigFile(path)
			if err := cliCfg.ReadInConfig(); err != nil {
				return fmt.Errorf("lcms: reading config file: %w", err)
			}
		}
		return nil
	},
}

func deconvConfig() deconv.Config {
	return viperconfig.FromViper(cliCfg.Viper)
}

func init() {
	Root.PersistentFlags().String("config", "", "path to a TOML configuration file")
	cliCfg.BindPFlag("config", Root.PersistentFlags().Lookup("config"))

	Root.AddCommand(deconvoluteCmd)
	Root.AddCommand(eicCmd)
	Root.AddCommand(serveCmd)
}
