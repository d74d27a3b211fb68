package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/carteira/internal/api"
	"github.com/wonny/carteira/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	Long: `Starts the HTTP API server. Every request builds a fresh report.

Endpoints:
  GET  /health                     - Health check
  GET  /api/reports/{kind}         - Report for ?symbols=A,B or the list file
  GET  /api/reports/{kind}/{symbol} - Single record
  GET  /api/rules                  - Valuation rules in effect

{kind} is acoes/stock or fiis/fund.

Example:
  go run ./cmd/carteira serve
  go run ./cmd/carteira serve --port 9000`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (default: $PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if servePort != "" {
		a.cfg.Port = servePort
	}

	reportHandler := handlers.NewReportHandler(a.builder, a.loadSymbols, a.log)
	router := api.NewRouter(reportHandler, a.log)
	server := api.New(a.cfg, a.log, router)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s", a.cfg.Port))
	PrintInfo(out, "Press Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return err
	}

	a.log.Info("Server stopped")
	return nil
}
