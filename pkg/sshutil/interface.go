package sshutil

import "context"

// Target identifies one remote login: where to connect, as whom, with which key.
type Target struct {
	// Host is a hostname, an IP, host:port, or an alias from ~/.ssh/config.
	Host    string
	User    string
	KeyPath string
}

// String returns user@host for log lines.
func (t Target) String() string {
	return t.User + "@" + t.Host
}

// Executor runs a single shell command on a remote host and returns its
// standard output with surrounding whitespace trimmed.
//
// Implementations own the full session lifecycle: every call connects,
// runs exactly one command, and tears the connection down before returning,
// on success and on failure alike.
type Executor interface {
	Execute(ctx context.Context, target Target, cmd string) (string, error)
}
