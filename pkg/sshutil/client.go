package sshutil

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/rileyhilliard/vitals/internal/logger"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultConnectTimeout bounds the TCP dial plus the SSH handshake.
const DefaultConnectTimeout = 10 * time.Second

// Options controls how connections are established.
type Options struct {
	ConnectTimeout time.Duration

	// StrictHostKeyChecking verifies host keys against KnownHostsPath.
	// When false, any host key is accepted.
	StrictHostKeyChecking bool
	KnownHostsPath        string

	// SSHConfigPath is consulted for HostName/Port of aliases.
	// Empty means ~/.ssh/config.
	SSHConfigPath string

	Logger logger.Logger
}

// DefaultOptions returns options matching ssh(1) defaults except host key
// verification, which is off.
func DefaultOptions() Options {
	return Options{
		ConnectTimeout: DefaultConnectTimeout,
		KnownHostsPath: filepath.Join(homeDir(), ".ssh", "known_hosts"),
		Logger:         logger.Noop(),
	}
}

func (o Options) log() logger.Logger {
	if o.Logger == nil {
		return logger.Noop()
	}
	return o.Logger
}

func (o Options) timeout() time.Duration {
	if o.ConnectTimeout <= 0 {
		return DefaultConnectTimeout
	}
	return o.ConnectTimeout
}

func (o Options) sshConfigPath() string {
	if o.SSHConfigPath == "" {
		return defaultSSHConfigPath()
	}
	return o.SSHConfigPath
}

// Client wraps an SSH connection with additional metadata.
type Client struct {
	*ssh.Client
	Host    string // The configured host/alias
	Address string // The resolved address (host:port)
}

// Dial establishes an authenticated SSH connection to target.
// Only the key at target.KeyPath is offered for authentication.
func Dial(ctx context.Context, target Target, opts Options) (*Client, error) {
	log := opts.log()
	settings := resolveHost(target.Host, opts.sshConfigPath())
	if settings.matchLine > 0 && !settings.fromConfig {
		log.Debug("host '%s' not found before the Match block at line %d of the SSH config", target.Host, settings.matchLine)
	}

	config, err := buildSSHConfig(target, opts)
	if err != nil {
		return nil, err
	}

	address := settings.address()
	log.Debug("dialing %s as %s (key %s)", address, target.User, target.KeyPath)

	dialer := net.Dialer{Timeout: opts.timeout()}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Can't reach '%s' at %s", target.Host, address),
			suggestionForDialError(err))
	}

	// The handshake shares the connect budget; x/crypto only applies
	// ClientConfig.Timeout to its own dialer.
	_ = conn.SetDeadline(time.Now().Add(opts.timeout()))

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()

		var hostKeyErr *HostKeyMismatchError
		if stderrors.As(err, &hostKeyErr) {
			return nil, errors.New(errors.ErrSSH,
				hostKeyErr.Error(),
				hostKeyErr.Suggestion())
		}

		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", target.Host),
			suggestionForHandshakeError(err))
	}

	_ = conn.SetDeadline(time.Time{})

	return &Client{
		Client:  ssh.NewClient(sshConn, chans, reqs),
		Host:    target.Host,
		Address: address,
	}, nil
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

// buildSSHConfig creates the client config: key-file auth plus the host key policy.
func buildSSHConfig(target Target, opts Options) (*ssh.ClientConfig, error) {
	keyAuth, err := keyFileAuth(target.KeyPath)
	if err != nil {
		var encErr *EncryptedKeyError
		if stderrors.As(err, &encErr) {
			return nil, errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("SSH key for '%s' is passphrase protected", target.Host),
				fmt.Sprintf("Point key_path at an unencrypted key, or strip the passphrase: ssh-keygen -p -f %s", target.KeyPath))
		}
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrSSH,
				fmt.Sprintf("SSH key not found: %s", target.KeyPath),
				"Set key_path for this server, or create a key with: ssh-keygen -t ed25519")
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Couldn't load SSH key %s", target.KeyPath),
			"Check the file is a private key readable by you.")
	}

	var hostKeyCallback ssh.HostKeyCallback
	if opts.StrictHostKeyChecking {
		hostKeyCallback, err = createHostKeyCallback(opts.KnownHostsPath)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrSSH,
				"Failed to load known_hosts",
				"Check the known_hosts path, or turn off strict_host_key_checking.")
		}
	} else {
		hostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // unknown hosts are trusted unless strict checking is on
	}

	return &ssh.ClientConfig{
		User:            target.User,
		Auth:            []ssh.AuthMethod{keyAuth},
		HostKeyCallback: hostKeyCallback,
		Timeout:         opts.timeout(),
	}, nil
}

// keyFileAuth returns an auth method using a private key file.
// Returns EncryptedKeyError if the key requires a passphrase.
func keyFileAuth(keyPath string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if stderrors.As(err, &missing) ||
			strings.Contains(err.Error(), "encrypted") ||
			strings.Contains(err.Error(), "passphrase") {
			return nil, &EncryptedKeyError{Path: keyPath}
		}
		return nil, err
	}

	return ssh.PublicKeys(signer), nil
}

func suggestionForDialError(err error) string {
	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") {
		return "Is SSH running on that box? Try: ssh <host>"
	}
	if strings.Contains(errStr, "no route to host") || strings.Contains(errStr, "network is unreachable") {
		return "Can't route to the host. Check your network connection."
	}
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "i/o timeout") {
		return "Connection timed out. Host might be offline or blocked by a firewall."
	}
	if strings.Contains(errStr, "no such host") {
		return "The hostname didn't resolve. Check the host field or your DNS."
	}
	return "Make sure the host is reachable: ping <host>"
}

func suggestionForHandshakeError(err error) string {
	errStr := err.Error()
	if strings.Contains(errStr, "unable to authenticate") || strings.Contains(errStr, "no supported methods") {
		return "Auth failed. Check the username and that the public key is in ~/.ssh/authorized_keys on the server."
	}
	if strings.Contains(errStr, "host key") || strings.Contains(errStr, "knownhosts") {
		return "Host key issue. Try connecting manually first: ssh <host>"
	}
	return "Something went wrong during SSH setup. Try: ssh <host>"
}

// EncryptedKeyError is returned when an SSH key requires a passphrase.
type EncryptedKeyError struct {
	Path string
}

func (e *EncryptedKeyError) Error() string {
	return fmt.Sprintf("SSH key at %s is encrypted (passphrase protected)", e.Path)
}

// HostKeyMismatchError provides helpful context when known_hosts verification fails.
type HostKeyMismatchError struct {
	Hostname     string
	ReceivedType string
	KnownHosts   string
	Want         []knownhosts.KnownKey
}

func (e *HostKeyMismatchError) Error() string {
	return fmt.Sprintf("host key mismatch for %s: server sent %s key", e.Hostname, e.ReceivedType)
}

// Suggestion returns actionable steps to fix the host key mismatch.
func (e *HostKeyMismatchError) Suggestion() string {
	host := e.Hostname
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	var wantTypes []string
	for _, k := range e.Want {
		wantTypes = append(wantTypes, k.Key.Type())
	}
	wantStr := "unknown"
	if len(wantTypes) > 0 {
		wantStr = strings.Join(wantTypes, ", ")
	}

	return fmt.Sprintf(
		"The server's host key doesn't match what's in known_hosts.\n"+
			"  Known types: %s\n"+
			"  Server sent: %s\n\n"+
			"  If the server was rebuilt, remove the old entry:\n"+
			"    ssh-keygen -R %s -f %s",
		wantStr, e.ReceivedType, host, e.KnownHosts)
}

// createHostKeyCallback wraps the knownhosts callback to provide better error messages.
func createHostKeyCallback(knownHostsPath string) (ssh.HostKeyCallback, error) {
	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := callback(hostname, remote, key)
		if err != nil {
			var keyErr *knownhosts.KeyError
			if stderrors.As(err, &keyErr) && len(keyErr.Want) > 0 {
				return &HostKeyMismatchError{
					Hostname:     hostname,
					ReceivedType: key.Type(),
					KnownHosts:   knownHostsPath,
					Want:         keyErr.Want,
				}
			}
		}
		return err
	}, nil
}
