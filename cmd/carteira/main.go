package main

import (
	"os"

	"github.com/wonny/carteira/cmd/carteira/commands"
)

// main is the entry point for the carteira CLI
// ⭐ Single CLI entry point: go run ./cmd/carteira [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
