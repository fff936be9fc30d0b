package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"bare tilde", "~", home},
		{"tilde path", "~/.ssh/id_rsa", filepath.Join(home, ".ssh", "id_rsa")},
		{"absolute path unchanged", "/etc/vitals/key", "/etc/vitals/key"},
		{"relative path unchanged", "keys/id_ed25519", "keys/id_ed25519"},
		{"other user not supported", "~bob/.ssh/id_rsa", "~bob/.ssh/id_rsa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTilde(tt.input))
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("VITALS_KEYS", "/srv/keys")

	assert.Equal(t, "/srv/keys/web.pem", ExpandPath("${VITALS_KEYS}/web.pem"))
	assert.Equal(t, "/srv/keys/web.pem", ExpandPath("$VITALS_KEYS/web.pem"))
	assert.Equal(t, filepath.Join(home, ".ssh", "id_rsa"), ExpandPath("~/.ssh/id_rsa"))
	assert.Equal(t, "", ExpandPath(""))
}
