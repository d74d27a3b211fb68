package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/report"
)

var (
	listFile   string
	jsonOutput bool
	noColor    bool
)

// addReportFlags registers the flags shared by the report commands
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&listFile, "file", "f", "", "symbol list file (one per line)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
}

// runReport returns the RunE of a report command for one kind
func runReport(kind contracts.Kind) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		symbols := report.SplitSymbols(strings.Join(args, ","))
		if len(symbols) == 0 {
			path := listFile
			if path == "" {
				path = a.symbolFile(kind)
			}
			symbols, err = report.LoadSymbols(path)
			if err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rep, err := a.builder.Build(ctx, kind, symbols)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}

		if rep.Degraded {
			PrintWarning(out, "Cookies inválidos/ausentes ou carteira não acessível: usando scraping público onde necessário.")
		}

		style := Style{Color: !noColor && isTerminal(out)}
		RenderTable(out, rep, style)
		if rep.Summary != nil {
			fmt.Fprintln(out)
			RenderSummary(out, rep.Summary)
		}

		return nil
	}
}

// isTerminal reports whether w is a character device
func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
