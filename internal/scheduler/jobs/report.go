// Package jobs holds the scheduled jobs.
package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/scheduler"
	"github.com/wonny/carteira/pkg/logger"
)

// Builder builds a report for a list of symbols
type Builder interface {
	Build(ctx context.Context, kind contracts.Kind, symbols []string) (*contracts.Report, error)
}

// SymbolLoader returns the symbols to watch; it is called on every run so
// that edits to the list file apply without a restart
type SymbolLoader func() ([]string, error)

// Change is a classification that moved between two runs
type Change struct {
	Symbol string                   `json:"symbol"`
	From   contracts.Classification `json:"from"`
	To     contracts.Classification `json:"to"`
}

// ReportJob re-runs a report and logs classification changes
// ⭐ State lives in memory only; a restart starts from an empty baseline
type ReportJob struct {
	kind     contracts.Kind
	schedule string
	builder  Builder
	symbols  SymbolLoader
	logger   *logger.Logger

	mu      sync.Mutex
	last    map[string]contracts.Classification
	report  *contracts.Report
	changes []Change
}

// NewReportJob creates a watch job for one instrument kind
func NewReportJob(kind contracts.Kind, schedule string, builder Builder, symbols SymbolLoader, log *logger.Logger) *ReportJob {
	return &ReportJob{
		kind:     kind,
		schedule: schedule,
		builder:  builder,
		symbols:  symbols,
		logger:   log.WithField("job", "report_"+string(kind)),
	}
}

// Name returns the job name
func (j *ReportJob) Name() string {
	return "report_" + string(j.kind)
}

// Schedule returns the cron schedule
func (j *ReportJob) Schedule() string {
	return j.schedule
}

// Run builds the report and diffs it against the previous run
func (j *ReportJob) Run(ctx context.Context) (scheduler.RunSummary, error) {
	symbols, err := j.symbols()
	if err != nil {
		return scheduler.RunSummary{}, fmt.Errorf("load symbols: %w", err)
	}

	rep, err := j.builder.Build(ctx, j.kind, symbols)
	if err != nil {
		return scheduler.RunSummary{}, fmt.Errorf("build report: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	current := make(map[string]contracts.Classification, len(rep.Records))
	var changes []Change
	for _, rec := range rep.Records {
		current[rec.Symbol] = rec.Status
		if j.last == nil {
			continue
		}
		prev, seen := j.last[rec.Symbol]
		if seen && prev != rec.Status {
			changes = append(changes, Change{Symbol: rec.Symbol, From: prev, To: rec.Status})
		}
	}

	for _, c := range changes {
		j.logger.WithFields(map[string]interface{}{
			"symbol": c.Symbol,
			"from":   c.From,
			"to":     c.To,
		}).Info("Classification changed")
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":   rep.RunID,
		"records":  len(rep.Records),
		"changes":  len(changes),
		"degraded": rep.Degraded,
	}).Info("Watch run completed")

	j.last = current
	j.report = rep
	j.changes = changes

	return scheduler.RunSummary{
		RunID:    rep.RunID,
		Records:  len(rep.Records),
		Changes:  len(changes),
		Degraded: rep.Degraded,
	}, nil
}

// LastReport returns the report of the latest successful run, nil before the first
func (j *ReportJob) LastReport() *contracts.Report {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report
}

// LastChanges returns the changes detected by the latest successful run
func (j *ReportJob) LastChanges() []Change {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Change(nil), j.changes...)
}
