package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spelveris/lcms-go/httpapi"
	"github.com/spelveris/lcms-go/samplestore"
)

var serveCmd = &cobra.Command{
	Use:               "serve <sample-dir>",
	Short:             "Start the HTTP API, serving samples from the given directory.",
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cliCfg.GetString("serve.addr")
		if addr == "" {
			addr = "localhost:8090"
		}
		store := samplestore.New(args[0])
		srv := httpapi.NewServer(store, deconvConfig(), logrus.StandardLogger())
		logrus.WithField("addr", addr).Info("lcms: starting http api")
		return http.ListenAndServe(addr, srv.Handler())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "address to listen on (default localhost:8090)")
	cliCfg.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}
