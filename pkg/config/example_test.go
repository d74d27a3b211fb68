package config_test

import (
	"fmt"

	"github.com/wonny/carteira/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	if !cfg.HasCredentials() {
		fmt.Println("Running in scrape-only mode")
	}
	fmt.Printf("Base URL: %s\n", cfg.Investidor10.BaseURL)
	fmt.Printf("Timeout: %s\n", cfg.Investidor10.Timeout)
}
