package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/extract"
	"github.com/wonny/carteira/internal/portfolio"
	"github.com/wonny/carteira/internal/valuation"
	"github.com/wonny/carteira/pkg/logger"
)

// Builder produces reports from the wallet and the public pages
// ⭐ SSOT: the only place records are assembled
type Builder struct {
	holdings  contracts.HoldingsSource
	pages     contracts.PageSource
	rules     valuation.Rules
	rulesHash string
	logger    *logger.Logger
	workers   int
}

// NewBuilder creates a Builder. holdings may be nil (scrape-only).
// workers below 1 means sequential processing.
func NewBuilder(holdings contracts.HoldingsSource, pages contracts.PageSource, rules valuation.Rules, workers int, log *logger.Logger) *Builder {
	if workers < 1 {
		workers = 1
	}
	hash, err := valuation.Hash(rules)
	if err != nil {
		log.WithError(err).Warn("Failed to hash valuation rules")
	}

	return &Builder{
		holdings:  holdings,
		pages:     pages,
		rules:     rules,
		rulesHash: hash,
		logger:    log.WithField("module", "report"),
		workers:   workers,
	}
}

// Rules returns the rule set records are valued with
func (b *Builder) Rules() valuation.Rules {
	return b.rules
}

// job is one input symbol and its position in the output
type job struct {
	index  int
	symbol string
}

// Build fetches the wallet once, then scrapes and values every symbol.
// Records follow input order; blank symbols are skipped. Source failures
// degrade to missing data; only context cancellation is returned as an error.
func (b *Builder) Build(ctx context.Context, kind contracts.Kind, symbols []string) (*contracts.Report, error) {
	started := time.Now()
	report := &contracts.Report{
		RunID:       uuid.NewString(),
		Kind:        kind,
		GeneratedAt: started,
		RulesHash:   b.rulesHash,
	}
	log := b.logger.WithFields(map[string]interface{}{
		"run_id": report.RunID,
		"kind":   kind,
	})

	// 1. Wallet
	holdings, err := b.fetchHoldings(ctx, kind)
	if err != nil {
		report.Degraded = true
		log.WithError(err).Warn("Wallet unavailable, using public pages only")
	}
	byKey := make(map[string]*contracts.Holding, len(holdings))
	for i := range holdings {
		key := holdings[i].Key()
		if _, dup := byKey[key]; !dup {
			byKey[key] = &holdings[i]
		}
	}

	// 2. Records
	jobs := normalize(symbols)
	report.Records = make([]contracts.InstrumentRecord, len(jobs))

	log.WithFields(map[string]interface{}{
		"symbols":  len(jobs),
		"holdings": len(holdings),
		"workers":  b.workers,
	}).Info("Starting report")

	if b.workers == 1 || len(jobs) <= 1 {
		for _, j := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("build report: %w", err)
			}
			report.Records[j.index] = b.record(ctx, kind, j.symbol, byKey[j.symbol])
		}
	} else {
		b.runPool(ctx, kind, jobs, byKey, report.Records)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}

	// 3. Summary over the whole wallet
	report.Summary = portfolio.Summarize(holdings)

	counts := report.CountByStatus()
	log.WithFields(map[string]interface{}{
		"records":   len(report.Records),
		"cheap":     counts[contracts.Cheap],
		"fair":      counts[contracts.Fair],
		"expensive": counts[contracts.Expensive],
		"unknown":   counts[contracts.Unknown],
		"degraded":  report.Degraded,
		"duration":  time.Since(started),
	}).Info("Report completed")

	return report, nil
}

func (b *Builder) fetchHoldings(ctx context.Context, kind contracts.Kind) ([]contracts.Holding, error) {
	if b.holdings == nil {
		return nil, fmt.Errorf("no wallet source configured")
	}
	return b.holdings.FetchHoldings(ctx, kind)
}

// runPool processes jobs with a fixed number of workers. Each result is
// written to its own index, so no two goroutines touch the same element.
func (b *Builder) runPool(ctx context.Context, kind contracts.Kind, jobs []job, byKey map[string]*contracts.Holding, out []contracts.InstrumentRecord) {
	type result struct {
		index  int
		record contracts.InstrumentRecord
	}

	jobCh := make(chan job, len(jobs))
	resultCh := make(chan result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < b.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				if ctx.Err() != nil {
					return
				}
				resultCh <- result{index: j.index, record: b.record(ctx, kind, j.symbol, byKey[j.symbol])}
			}
		}()
	}

	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for r := range resultCh {
		out[r.index] = r.record
	}
}

// record builds the record of one symbol, scraping only when the wallet
// leaves a field empty
func (b *Builder) record(ctx context.Context, kind contracts.Kind, symbol string, h *contracts.Holding) contracts.InstrumentRecord {
	var scraped *contracts.ScrapedRecord

	if NeedsScrape(kind, h) && b.pages != nil {
		body, err := b.pages.FetchPage(ctx, kind, symbol)
		if err != nil {
			b.logger.WithError(err).WithField("symbol", symbol).Warn("Public page unavailable")
		} else {
			rec := extract.Scrape(body, symbol, b.profile(kind), b.logger)
			scraped = &rec
		}
	}

	return Assemble(kind, symbol, h, scraped, b.rules)
}

func (b *Builder) profile(kind contracts.Kind) extract.Profile {
	if kind == contracts.KindFund {
		return extract.FundProfile(b.rules.KeywordList())
	}
	return extract.StockProfile()
}

// normalize upper-cases symbols and drops blanks, keeping input order
func normalize(symbols []string) []job {
	jobs := make([]job, 0, len(symbols))
	for _, s := range symbols {
		s = contracts.NormalizeSymbol(s)
		if s == "" {
			continue
		}
		jobs = append(jobs, job{index: len(jobs), symbol: s})
	}
	return jobs
}
