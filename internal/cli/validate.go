package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/host"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/ui"
	"github.com/rileyhilliard/vitals/internal/util"
)

var (
	validateShow  bool
	validateProbe bool
)

// validateCmd checks a config file, optionally dialing each server
var validateCmd = &cobra.Command{
	Use:   "validate <config.json>",
	Short: "Check a config file without running any checks",
	Long: `Load and validate a config file, then list the servers it defines.

With --show, the effective configuration is printed as YAML after defaults
are applied. The SMTP password is masked.

With --probe, each server is dialed once to confirm the SSH login works.
No commands are run.

Examples:
  vitals validate servers.json
  vitals validate servers.json --show
  vitals validate servers.json --probe`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateCommand(cmd.Context(), cmd.OutOrStdout(), args[0], validateShow, validateProbe)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateShow, "show", false, "print the effective configuration as YAML")
	validateCmd.Flags().BoolVar(&validateProbe, "probe", false, "dial each server to check the SSH login")
}

func validateCommand(ctx context.Context, out io.Writer, path string, show, probe bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if strictHostKeysFlag {
		cfg.SSH.StrictHostKeyChecking = true
	}

	fmt.Fprintln(out, ui.SuccessStyle().Render(fmt.Sprintf("%s %s is valid", ui.SymbolSuccess, path)))
	fmt.Fprintln(out)

	rows := make([]ui.ServerTableRow, len(cfg.Servers))
	for i, s := range cfg.Servers {
		rows[i] = ui.ServerTableRow{Name: s.Name, Host: s.Host, User: s.Username, KeyPath: s.KeyPath}
	}
	fmt.Fprint(out, ui.RenderServerTable(rows))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Thresholds: disk %d%%, cpu %d%%, memory %d%%\n",
		cfg.Thresholds.Disk, cfg.Thresholds.CPU, cfg.Thresholds.Memory)
	if cfg.Email == nil {
		fmt.Fprintln(out, ui.MutedStyle().Render("Alerts: disabled (no email section)"))
	} else {
		fmt.Fprintf(out, "Alerts: %s via %s:%d\n",
			util.JoinOrDefault(cfg.Email.Recipients(), "(none)"), cfg.Email.SMTPServer, cfg.Email.SMTPPort)
	}

	if probe {
		fmt.Fprintln(out)
		printProbeResults(out, host.ProbeAll(ctx, cfg.Servers, sshOptions(cfg, logger.Default())))
	}

	if !show {
		return nil
	}

	data, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't render the configuration", "")
	}
	fmt.Fprintln(out)
	_, err = out.Write(data)
	return err
}

func printProbeResults(out io.Writer, results []host.ProbeResult) {
	for _, r := range results {
		if r.Success {
			fmt.Fprintln(out, ui.RenderCheckLine(true, fmt.Sprintf("%s reachable (%s)", r.Server, r.Latency.Round(time.Millisecond))))
			continue
		}
		fmt.Fprintln(out, ui.RenderCheckLine(false, fmt.Sprintf("%s: %s", r.Server, probeReason(r.Error))))
	}
}

func probeReason(err error) string {
	var probeErr *host.ProbeError
	if stderrors.As(err, &probeErr) {
		return fmt.Sprintf("%s (%s)", probeErr.Reason, errors.Brief(probeErr.Cause))
	}
	return errors.Brief(err)
}
