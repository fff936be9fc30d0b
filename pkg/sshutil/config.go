package sshutil

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
)

const defaultPort = "22"

// hostSettings holds the resolved dial address for a configured host.
type hostSettings struct {
	hostname string
	port     string
	// fromConfig is true when ~/.ssh/config supplied HostName or Port.
	fromConfig bool
	// matchLine is the line of the first Match block in the SSH config, 0 if none.
	matchLine int
}

// address returns the host:port string for dialing.
func (s hostSettings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

// resolveHost turns a configured host string into a dial address.
// An explicit host:port wins; otherwise HostName and Port are looked up in
// the SSH config file so aliases like "web1" work the same as with ssh(1).
func resolveHost(host, sshConfigPath string) hostSettings {
	settings := hostSettings{hostname: host, port: defaultPort}

	if h, p, err := net.SplitHostPort(host); err == nil {
		settings.hostname = h
		settings.port = p
		return settings
	}

	content, matchLine, err := preprocessSSHConfig(sshConfigPath)
	if err != nil {
		// Config doesn't exist or can't be read, that's fine
		return settings
	}
	settings.matchLine = matchLine

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return settings
	}

	if hostname, _ := cfg.Get(host, "HostName"); hostname != "" {
		settings.hostname = hostname
		settings.fromConfig = true
	}
	if port, _ := cfg.Get(host, "Port"); port != "" {
		settings.port = port
		settings.fromConfig = true
	}

	return settings
}

// preprocessSSHConfig reads the SSH config and returns content up to the first Match directive.
// kevinburke/ssh_config can't parse Match blocks, so everything after the first
// one is dropped. Also returns the 1-indexed line of that Match (0 if none).
func preprocessSSHConfig(configPath string) ([]byte, int, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	var result []string
	matchLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			matchLine = i + 1
			break
		}
		result = append(result, line)
	}

	return []byte(strings.Join(result, "\n")), matchLine, nil
}

func defaultSSHConfigPath() string {
	return filepath.Join(homeDir(), ".ssh", "config")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}
