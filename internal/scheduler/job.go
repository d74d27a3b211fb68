package scheduler

import (
	"context"
	"time"
)

// Job is a scheduled report run
// ⭐ SSOT: the job interface is defined only here
type Job interface {
	Name() string

	// Run builds one report and describes it
	Run(ctx context.Context) (RunSummary, error)

	// Schedule returns the cron expression, seconds first
	// Examples: "0 0 19 * * 1-5" (weekdays at 7 PM)
	//           "@daily", "@every 30m"
	Schedule() string
}

// RunSummary is what a report run produced
type RunSummary struct {
	RunID    string `json:"run_id,omitempty"`
	Records  int    `json:"records"`
	Changes  int    `json:"changes"`  // classifications that moved since the previous run
	Degraded bool   `json:"degraded"` // wallet unavailable, scrape-only
}

// JobResult is one recorded execution
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	RunSummary
}

// MaxHistory is the number of results kept per job
const MaxHistory = 100

// JobHistory is the in-memory execution log of one job
type JobHistory struct {
	Results []JobResult
}

// AddResult appends a result, dropping the oldest past MaxHistory
func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)

	if len(h.Results) > MaxHistory {
		h.Results = h.Results[len(h.Results)-MaxHistory:]
	}
}

// Latest returns the most recent result
func (h *JobHistory) Latest() (JobResult, bool) {
	if len(h.Results) == 0 {
		return JobResult{}, false
	}
	return h.Results[len(h.Results)-1], true
}

// LastOutcome returns the most recent result with the given success flag
func (h *JobHistory) LastOutcome(success bool) (JobResult, bool) {
	for i := len(h.Results) - 1; i >= 0; i-- {
		if h.Results[i].Success == success {
			return h.Results[i], true
		}
	}
	return JobResult{}, false
}

// Tally counts failed runs, degraded runs and detected changes
func (h *JobHistory) Tally() (failed, degraded, changes int) {
	for _, r := range h.Results {
		if !r.Success {
			failed++
			continue
		}
		if r.Degraded {
			degraded++
		}
		changes += r.Changes
	}
	return failed, degraded, changes
}
