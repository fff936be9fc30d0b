package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/ui"
	"github.com/rileyhilliard/vitals/internal/util"
	"github.com/rileyhilliard/vitals/pkg/sshutil"
)

// Alerter delivers a notification for a server with issues.
// Implementations report delivery problems themselves and never fail the run.
type Alerter interface {
	SendAlert(ctx context.Context, serverName string, issues []Result)
}

// Summary counts what a run did.
type Summary struct {
	Checked     int
	WithIssues  int
	Alerts      int
	Interrupted bool
}

// Runner checks every configured server in order.
type Runner struct {
	servers []config.Server
	checker *Checker
	alerter Alerter
	out     io.Writer
	log     logger.Logger
	now     func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput sets where status lines are written. Defaults to stdout.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = l }
}

// WithClock overrides the time source used for the run header.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner builds a Runner for cfg. alerter may be nil, in which case
// issues are printed but never dispatched.
func NewRunner(cfg *config.Config, exec sshutil.Executor, alerter Alerter, opts ...RunnerOption) *Runner {
	r := &Runner{
		servers: cfg.Servers,
		alerter: alerter,
		out:     os.Stdout,
		log:     logger.Noop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.checker = NewChecker(exec, cfg.Thresholds, r.log)
	return r
}

// Run checks all servers sequentially. A server's failure never stops the
// run; cancelling ctx does, before the next server starts.
func (r *Runner) Run(ctx context.Context) Summary {
	var summary Summary

	fmt.Fprint(r.out, ui.RenderRunHeader(r.now().Format(ui.TimestampLayout)))

	for i, server := range r.servers {
		if ctx.Err() != nil {
			summary.Interrupted = true
			remaining := len(r.servers) - i
			fmt.Fprintln(r.out, ui.RenderWarning(fmt.Sprintf("Run interrupted, %s not checked", util.CountOf(remaining, "server", "servers"))))
			break
		}

		report := r.checkServer(ctx, server)
		summary.Checked++

		if issues := report.Issues(); len(issues) > 0 {
			summary.WithIssues++
			if r.alerter != nil {
				summary.Alerts++
				r.alerter.SendAlert(ctx, server.Name, issues)
			}
		}

		fmt.Fprintln(r.out)
	}

	r.log.Debug("run finished: %d checked, %d with issues, %d alerts", summary.Checked, summary.WithIssues, summary.Alerts)
	return summary
}

func (r *Runner) checkServer(ctx context.Context, server config.Server) Report {
	fmt.Fprintf(r.out, "Checking %s (%s)...\n", server.Name, server.Host)

	report := r.checker.CheckServer(ctx, server)

	if report.Failure != nil {
		fmt.Fprintln(r.out, ui.RenderError(report.Failure.Display()))
	}
	for _, res := range report.Results() {
		line := fmt.Sprintf("%s: %s", res.Metric(), res.Display())
		fmt.Fprintln(r.out, ui.RenderCheckLine(res.Status() == StatusOK, line))
	}

	return report
}
