package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/vitals/internal/alert"
	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/monitor"
	"github.com/rileyhilliard/vitals/internal/ui"
	"github.com/rileyhilliard/vitals/pkg/sshutil"
)

// checkCommand loads the config and checks every server once.
func checkCommand(ctx context.Context, out io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if strictHostKeysFlag {
		cfg.SSH.StrictHostKeyChecking = true
	}

	log := logger.Default()
	exec := sshutil.NewSessionExecutor(sshOptions(cfg, log))

	runChecks(ctx, out, cfg, exec, log)
	return nil
}

// sshOptions maps the ssh section of the config onto dial options.
func sshOptions(cfg *config.Config, log logger.Logger) sshutil.Options {
	return sshutil.Options{
		ConnectTimeout:        cfg.SSH.ConnectTimeout,
		StrictHostKeyChecking: cfg.SSH.StrictHostKeyChecking,
		KnownHostsPath:        cfg.SSH.KnownHosts,
		Logger:                log,
	}
}

// runChecks wires the run loop to exec and prints the closing summary.
func runChecks(ctx context.Context, out io.Writer, cfg *config.Config, exec sshutil.Executor, log logger.Logger) monitor.Summary {
	dispatcher := alert.NewDispatcher(cfg.Email,
		alert.WithOutput(out),
		alert.WithLogger(log),
	)
	runner := monitor.NewRunner(cfg, exec, dispatcher,
		monitor.WithOutput(out),
		monitor.WithLogger(log),
	)

	summary := runner.Run(ctx)
	fmt.Fprintln(out, ui.RenderSummary(summary.Checked, summary.WithIssues, summary.Alerts))
	return summary
}
