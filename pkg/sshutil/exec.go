package sshutil

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rileyhilliard/vitals/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Output runs cmd in a new session and returns its stdout.
// A non-zero exit status is an ErrExec error carrying stderr.
// Cancelling ctx closes the session and returns the context error.
func (c *Client) Output(ctx context.Context, cmd string) (string, error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"The server may limit concurrent sessions (MaxSessions).")
	}
	defer session.Close()

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	done := make(chan error, 1)
	go func() {
		done <- session.Run(cmd)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		session.Close()
		<-done
		return "", errors.WrapWithCode(ctx.Err(), errors.ErrExec,
			fmt.Sprintf("Interrupted while running command on '%s'", c.Host), "")
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if stderrors.As(err, &exitErr) {
			detail := strings.TrimSpace(stderrBuf.String())
			if detail == "" {
				detail = "no stderr output"
			}
			return "", errors.WrapWithCode(stderrors.New(detail), errors.ErrExec,
				fmt.Sprintf("Command exited with status %d on '%s'", exitErr.ExitStatus(), c.Host),
				"Check the command works over ssh: ssh <host> '<command>'")
		}
		return "", errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("Failed to execute command on '%s'", c.Host),
			"Connection may have dropped mid-command.")
	}

	return stdoutBuf.String(), nil
}

// SessionExecutor is the production Executor: a fresh connection per command.
type SessionExecutor struct {
	opts Options
}

// NewSessionExecutor creates an executor that dials with opts.
func NewSessionExecutor(opts Options) *SessionExecutor {
	return &SessionExecutor{opts: opts}
}

// Execute connects to target, runs cmd, and always closes the connection.
func (e *SessionExecutor) Execute(ctx context.Context, target Target, cmd string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("Skipped '%s': run was interrupted", target.Host), "")
	}

	client, err := Dial(ctx, target, e.opts)
	if err != nil {
		return "", err
	}
	defer client.Close()

	log := e.opts.log()
	log.Debug("%s $ %s", target, cmd)

	out, err := client.Output(ctx, cmd)
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	log.Debug("%s -> %q", target, out)
	return out, nil
}
