package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/carteira/internal/contracts"
	"github.com/wonny/carteira/internal/scheduler"
	"github.com/wonny/carteira/internal/scheduler/jobs"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run reports on a schedule and log classification changes",
	Long: `Runs the stock and fund reports on a cron schedule and logs every symbol
whose classification changed since the previous run. The baseline lives in
memory; nothing is persisted.

The schedule has six fields, seconds first (WATCH_SCHEDULE, default
"0 0 19 * * 1-5": weekdays at 19:00).

Example:
  go run ./cmd/carteira watch
  go run ./cmd/carteira watch --schedule "@every 30m" --now`,
	RunE: runWatch,
}

var (
	watchSchedule string
	watchNow      bool
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "cron schedule (default: $WATCH_SCHEDULE)")
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "run every job once before waiting for the schedule")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	schedule := a.cfg.WatchSchedule
	if watchSchedule != "" {
		schedule = watchSchedule
	}

	sched := scheduler.New(a.log)
	for _, kind := range []contracts.Kind{contracts.KindStock, contracts.KindFund} {
		loader := func() ([]string, error) { return a.loadSymbols(kind) }
		if err := sched.AddJob(jobs.NewReportJob(kind, schedule, a.builder, loader, a.log)); err != nil {
			return fmt.Errorf("add watch job: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if watchNow {
		for _, name := range sched.GetAllJobs() {
			result, err := sched.RunJob(name)
			if err != nil {
				return err
			}
			if !result.Success {
				PrintWarning(out, fmt.Sprintf("%s failed: %s", name, result.Error))
				continue
			}
			PrintSuccess(out, fmt.Sprintf("%s: %d records, %d changes", name, result.Records, result.Changes))
		}
	}

	sched.Start()
	defer sched.Stop()

	for _, name := range sched.GetAllJobs() {
		if next, err := sched.NextRun(name); err == nil {
			PrintInfo(out, fmt.Sprintf("%s next run at %s", name, next.Format("2006-01-02 15:04:05")))
		}
	}
	PrintInfo(out, "Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return nil
}
