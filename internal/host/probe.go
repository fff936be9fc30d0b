// Package host checks whether configured servers can be reached over SSH
// without running any health checks on them.
package host

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/vitals/internal/config"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/pkg/sshutil"
)

// ProbeError represents a failed probe with categorized failure reason.
type ProbeError struct {
	Server string
	Reason ProbeFailReason
	Cause  error
}

// ProbeFailReason categorizes why a probe failed.
type ProbeFailReason int

const (
	ProbeFailUnknown ProbeFailReason = iota
	ProbeFailTimeout
	ProbeFailRefused
	ProbeFailUnreachable
	ProbeFailAuth
	ProbeFailHostKey
	ProbeFailKey
)

// String returns a human-readable description of the failure reason.
func (r ProbeFailReason) String() string {
	switch r {
	case ProbeFailTimeout:
		return "connection timed out"
	case ProbeFailRefused:
		return "connection refused"
	case ProbeFailUnreachable:
		return "host unreachable"
	case ProbeFailAuth:
		return "authentication failed"
	case ProbeFailHostKey:
		return "host key verification failed"
	case ProbeFailKey:
		return "private key unusable"
	default:
		return "unknown error"
	}
}

func (e *ProbeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("probe %s failed: %s (%s)", e.Server, e.Reason, errors.Brief(e.Cause))
	}
	return fmt.Sprintf("probe %s failed: %s", e.Server, e.Reason)
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// Probe opens an authenticated SSH connection to server and closes it again.
// Returns the time taken for the TCP connect plus handshake.
func Probe(ctx context.Context, server config.Server, opts sshutil.Options) (time.Duration, error) {
	start := time.Now()

	client, err := sshutil.Dial(ctx, targetFor(server), opts)
	if err != nil {
		return 0, categorizeProbeError(server.Name, err)
	}
	defer client.Close()

	return time.Since(start), nil
}

// ProbeResult contains the result of probing a single server.
type ProbeResult struct {
	Server  string
	Latency time.Duration
	Error   error
	Success bool
}

// ProbeAll probes servers one at a time, in order. A cancelled context
// marks the remaining servers as failed without dialing them.
func ProbeAll(ctx context.Context, servers []config.Server, opts sshutil.Options) []ProbeResult {
	results := make([]ProbeResult, len(servers))

	for i, server := range servers {
		if err := ctx.Err(); err != nil {
			results[i] = ProbeResult{Server: server.Name, Error: err}
			continue
		}

		latency, err := Probe(ctx, server, opts)
		results[i] = ProbeResult{
			Server:  server.Name,
			Latency: latency,
			Error:   err,
			Success: err == nil,
		}
	}

	return results
}

func targetFor(server config.Server) sshutil.Target {
	return sshutil.Target{Host: server.Host, User: server.Username, KeyPath: server.KeyPath}
}

// categorizeProbeError converts a dial error into a ProbeError with
// a categorized failure reason. Only the one-line form of err is inspected
// so suggestion text can't skew the category.
func categorizeProbeError(server string, err error) *ProbeError {
	if err == nil {
		return nil
	}

	probeErr := &ProbeError{
		Server: server,
		Reason: ProbeFailUnknown,
		Cause:  err,
	}

	errStr := strings.ToLower(errors.Brief(err))

	switch {
	case strings.Contains(errStr, "ssh key not found") ||
		strings.Contains(errStr, "passphrase protected") ||
		strings.Contains(errStr, "couldn't load ssh key"):
		probeErr.Reason = ProbeFailKey
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		probeErr.Reason = ProbeFailTimeout
	case strings.Contains(errStr, "connection refused"):
		probeErr.Reason = ProbeFailRefused
	case strings.Contains(errStr, "no route to host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "host is down") ||
		strings.Contains(errStr, "no such host"):
		probeErr.Reason = ProbeFailUnreachable
	case strings.Contains(errStr, "unable to authenticate") ||
		strings.Contains(errStr, "no supported methods") ||
		strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "authentication failed"):
		probeErr.Reason = ProbeFailAuth
	case strings.Contains(errStr, "host key") || strings.Contains(errStr, "known_hosts"):
		probeErr.Reason = ProbeFailHostKey
	}

	return probeErr
}
