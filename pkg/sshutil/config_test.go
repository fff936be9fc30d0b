package sshutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSSHConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestResolveHost(t *testing.T) {
	sshConfig := writeSSHConfig(t, `
Host web1
    HostName 10.0.0.5
    Port 2222

Host db1
    HostName db.internal

Match host legacy
    Port 2200

Host after-match
    HostName 10.0.0.9
`)

	tests := []struct {
		name       string
		host       string
		wantAddr   string
		fromConfig bool
	}{
		{"alias with hostname and port", "web1", "10.0.0.5:2222", true},
		{"alias with hostname only", "db1", "db.internal:22", true},
		{"unknown host defaults port", "10.1.1.1", "10.1.1.1:22", false},
		{"explicit port skips config", "web1:2022", "web1:2022", false},
		{"ipv6 with port", "[::1]:2200", "[::1]:2200", false},
		{"bare ipv6", "::1", "[::1]:22", false},
		{"hosts after Match are ignored", "after-match", "after-match:22", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := resolveHost(tt.host, sshConfig)
			assert.Equal(t, tt.wantAddr, s.address())
			assert.Equal(t, tt.fromConfig, s.fromConfig)
		})
	}
}

func TestResolveHost_MissingConfig(t *testing.T) {
	s := resolveHost("web1", filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, "web1:22", s.address())
	assert.Zero(t, s.matchLine)
}

func TestPreprocessSSHConfig(t *testing.T) {
	path := writeSSHConfig(t, "Host a\n  Port 1\nMatch all\n  Port 2\n")

	content, matchLine, err := preprocessSSHConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, matchLine)
	assert.NotContains(t, string(content), "Port 2")
	assert.Contains(t, string(content), "Port 1")
}
