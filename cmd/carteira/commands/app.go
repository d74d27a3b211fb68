package commands

import (
	"fmt"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/external/investidor10"
	"github.com/wonny/carteira/internal/report"
	"github.com/wonny/carteira/internal/valuation"
	"github.com/wonny/carteira/pkg/config"
	"github.com/wonny/carteira/pkg/httputil"
	"github.com/wonny/carteira/pkg/logger"
)

// app holds the wiring shared by every command
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	builder *report.Builder
}

// newApp loads configuration and wires the report builder
// ⭐ SSOT: dependency wiring happens only here
func newApp() (*app, error) {
	// 1. Load config
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if rulesFile != "" {
		cfg.RulesFile = rulesFile
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Valuation rules
	rules, err := valuation.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load valuation rules: %w", err)
	}

	// 4. HTTP + investidor10 client
	httpClient := httputil.New(cfg, log)
	client := investidor10.NewClient(httpClient, cfg.Investidor10, log)

	log.WithFields(map[string]interface{}{
		"wallet":  cfg.HasCredentials(),
		"workers": cfg.Workers,
		"rules":   cfg.RulesFile,
	}).Debug("Initialized")

	return &app{
		cfg:     cfg,
		log:     log,
		builder: report.NewBuilder(client, client, rules, cfg.Workers, log),
	}, nil
}

// symbolFile returns the configured list file of a kind
func (a *app) symbolFile(kind contracts.Kind) string {
	if kind == contracts.KindFund {
		return a.cfg.FIIsFile
	}
	return a.cfg.TickersFile
}

// loadSymbols reads the configured list file of a kind
func (a *app) loadSymbols(kind contracts.Kind) ([]string, error) {
	return report.LoadSymbols(a.symbolFile(kind))
}
