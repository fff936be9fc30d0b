package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"github.com/rileyhilliard/vitals/internal/ui"
)

// UsageLine is printed when the root command gets the wrong number of arguments.
const UsageLine = "Usage: vitals <config.json>"

// Global flags
var (
	noColorFlag        bool
	verboseFlag        bool
	strictHostKeysFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "vitals <config.json>",
	Short: "Check disk, CPU, and memory on remote servers",
	Long: `vitals connects to each server in the config file over SSH, reads disk,
CPU load, and memory usage, and flags anything at or above its threshold.
Servers with issues trigger an email alert when an email section is configured.

Examples:
  vitals servers.json
  vitals --verbose servers.json
  vitals validate servers.json --show`,
	Args:              configArg,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupOutput,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkCommand(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print debug diagnostics")
	rootCmd.PersistentFlags().BoolVar(&strictHostKeysFlag, "strict-host-keys", false, "verify host keys against known_hosts")
}

// usageError means the command line itself was wrong.
type usageError struct{}

func (usageError) Error() string { return UsageLine }

func configArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageError{}
	}
	return nil
}

func setupOutput(_ *cobra.Command, _ []string) error {
	ui.ConfigureColors(noColorFlag, os.Stdout)
	log := logger.NewEnvLogger("[vitals]", logger.ForceDebug(verboseFlag))
	logger.SetDefault(log)
	log.Debug("vitals %s", GetVersion())
	return nil
}

// Execute runs the root command and exits non-zero on failure.
// SIGINT and SIGTERM cancel the run's context so a hung host can be abandoned.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(handleError(err, os.Stdout, os.Stderr))
	}
}

// handleError prints err and returns the exit code for it.
func handleError(err error, stdout, stderr io.Writer) int {
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	var ue usageError
	if stderrors.As(err, &ue) {
		fmt.Fprintln(stdout, UsageLine)
		return 1
	}

	var structured *errors.Error
	if stderrors.As(err, &structured) {
		fmt.Fprintln(stderr, structured.Error())
		return 1
	}

	fmt.Fprintf(stderr, "Error: %s\n", err)
	return 1
}
