package monitor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/pkg/sshutil"
)

// Report is the outcome of checking one server.
type Report struct {
	Server   config.Server
	Readings []Reading
	// Failure is set when the pipeline stopped early.
	Failure *ConnectionFailure
	// Pending lists metrics that were never attempted because of Failure.
	Pending []Metric
}

// Results returns the readings in check order, followed by the failure
// if there was one.
func (r Report) Results() []Result {
	results := make([]Result, 0, len(r.Readings)+1)
	for _, reading := range r.Readings {
		results = append(results, reading)
	}
	if r.Failure != nil {
		results = append(results, *r.Failure)
	}
	return results
}

// Issues returns the results that are CRITICAL or ERROR.
func (r Report) Issues() []Result {
	var issues []Result
	for _, res := range r.Results() {
		if IsIssue(res) {
			issues = append(issues, res)
		}
	}
	return issues
}

// Failed reports whether the server's checks stopped early.
func (r Report) Failed() bool {
	return r.Failure != nil
}

// Checker runs the metric checks against a single server.
type Checker struct {
	exec       sshutil.Executor
	thresholds config.Thresholds
	checks     []Check
	log        logger.Logger
}

// NewChecker creates a Checker running DefaultChecks through exec.
func NewChecker(exec sshutil.Executor, thresholds config.Thresholds, log logger.Logger) *Checker {
	if log == nil {
		log = logger.Noop()
	}
	return &Checker{
		exec:       exec,
		thresholds: thresholds,
		checks:     DefaultChecks(),
		log:        log,
	}
}

// CheckServer runs each check in order. The first error of any kind
// (connect, auth, exec, parse) ends the pipeline; the report then holds the
// readings gathered so far, one ConnectionFailure, and the skipped metrics.
func (c *Checker) CheckServer(ctx context.Context, server config.Server) Report {
	report := Report{Server: server}
	target := sshutil.Target{
		Host:    server.Host,
		User:    server.Username,
		KeyPath: server.KeyPath,
	}

	for i, check := range c.checks {
		raw, err := c.exec.Execute(ctx, target, check.Command)
		if err != nil {
			return c.stop(report, i, err)
		}
		c.log.Debug("%s %s raw output: %q", server.Name, check.Metric, raw)

		reading, err := check.Evaluate(raw, c.thresholds)
		if err != nil {
			return c.stop(report, i, errors.WrapWithCode(err, errors.ErrParse,
				fmt.Sprintf("Couldn't read %s usage on '%s'", check.Metric, server.Name),
				"The server must provide df, awk, free, nproc, and /proc/loadavg."))
		}
		report.Readings = append(report.Readings, reading)
	}

	return report
}

func (c *Checker) stop(report Report, failedAt int, err error) Report {
	report.Failure = &ConnectionFailure{Err: err}
	for _, check := range c.checks[failedAt:] {
		report.Pending = append(report.Pending, check.Metric)
	}
	c.log.Debug("%s: stopped at %s: %s", report.Server.Name, c.checks[failedAt].Metric, errors.Brief(err))
	return report
}
