package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lhcompare/api"
	"lhcompare/compare"
	"lhcompare/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve comparisons over HTTP",
	Long: `Serve the comparison engine over HTTP.

  POST /api/compare          {"runs": [...], "ancestorRuns": [...]} -> results JSON
  POST /api/report?format=   same body, plus optional "links" -> rendered report
  GET  /healthz`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := compare.New(compare.WithLogger(log))
		srv := api.NewServer(api.NewRouter(engine, log), cfg.Listen)
		log.Info().Str("address", cfg.Listen).Msg("serving")

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		select {
		case s := <-interrupt:
			log.Info().Str("signal", s.String()).Msg("shutting down")
			return srv.Shutdown()
		case err := <-srv.Err():
			return err
		}
	},
}

func init() {
	serveCmd.Flags().String("listen", config.DefaultListen, "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
