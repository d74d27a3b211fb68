package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/carteira/internal/contracts"
)

// acoesCmd represents the acoes command
var acoesCmd = &cobra.Command{
	Use:     "acoes [TICKER...]",
	Aliases: []string{"stocks"},
	Short:   "Value stocks with the Graham number",
	Long: `Values each stock by comparing its price with √(22.5 × LPA × VPA).

Within 2% of the fair value is "justo", below is "barato", above is "caro".
Symbols come from the arguments or, when none are given, from the list file
(TICKERS_FILE, default tickers.txt).

Example:
  go run ./cmd/carteira acoes
  go run ./cmd/carteira acoes PETR4 VALE3 --json`,
	RunE: runReport(contracts.KindStock),
}

func init() {
	rootCmd.AddCommand(acoesCmd)
	addReportFlags(acoesCmd)
}
