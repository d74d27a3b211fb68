package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/carteira/internal/contracts"
)

// fiisCmd represents the fiis command
var fiisCmd = &cobra.Command{
	Use:     "fiis [FII...]",
	Aliases: []string{"funds"},
	Short:   "Value real-estate funds by P/VP",
	Long: `Values each fund by comparing its P/VP with the threshold of its category:
papel, outro and fundos at 1.02, tijolo and misto at 1.20.

The summary projects monthly income over every wallet holding that reports
a position value and a dividend yield.
Symbols come from the arguments or, when none are given, from the list file
(FIIS_FILE, default fiis.txt).

Example:
  go run ./cmd/carteira fiis
  go run ./cmd/carteira fiis HGLG11 KNRI11 --no-color`,
	RunE: runReport(contracts.KindFund),
}

func init() {
	rootCmd.AddCommand(fiisCmd)
	addReportFlags(fiisCmd)
}
