package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile   string
	rulesFile string
	workers   int
	verbose   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carteira",
	Short: "Valuation scanner for Brazilian stocks and real-estate funds",
	Long: `carteira reads your investidor10 wallet, completes missing data from the
public instrument pages and classifies every symbol as barato, justo or caro.

Stocks (ações) are valued with the Graham number √(22.5 × LPA × VPA).
Funds (FIIs) are valued by P/VP against a per-category threshold.

Without INVESTIDOR10_COOKIE and CARTEIRA_ID the wallet is skipped and every
symbol is scraped from its public page.

Usage:
  go run ./cmd/carteira [command]

Examples:
  go run ./cmd/carteira acoes
  go run ./cmd/carteira fiis HGLG11 KNRI11
  go run ./cmd/carteira serve --port 8089
  go run ./cmd/carteira watch`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env discovery)")
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "valuation rules override file, .toml or .yaml (default: $VALUATION_RULES)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "concurrent page fetches (default: $WORKERS)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
