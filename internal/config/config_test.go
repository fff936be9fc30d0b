package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 85, cfg.Thresholds.Disk)
	assert.Equal(t, 80, cfg.Thresholds.CPU)
	assert.Equal(t, 85, cfg.Thresholds.Memory)
	assert.Nil(t, cfg.Email)
	assert.False(t, cfg.SSH.StrictHostKeyChecking)
	assert.Equal(t, 10*time.Second, cfg.SSH.ConnectTimeout)
	assert.Empty(t, cfg.Servers)
}

func TestLoad(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeConfig(t, `{
  "thresholds": {"disk": 90, "cpu": 75, "memory": 95},
  "email": {
    "smtp_server": "smtp.example.com",
    "smtp_port": 2525,
    "username": "alerts",
    "password": "hunter2",
    "from": "vitals@example.com",
    "to": "ops@example.com"
  },
  "ssh": {"connect_timeout": "5s"},
  "servers": [
    {"name": "web1", "host": "10.0.0.5", "username": "deploy", "key_path": "~/.ssh/web"},
    {"name": "db1", "host": "db.internal:2222", "username": "root"}
  ]
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Thresholds{Disk: 90, CPU: 75, Memory: 95}, cfg.Thresholds)
	require.NotNil(t, cfg.Email)
	assert.Equal(t, "smtp.example.com", cfg.Email.SMTPServer)
	assert.Equal(t, 2525, cfg.Email.SMTPPort)
	assert.Equal(t, "hunter2", cfg.Email.Password)
	assert.Equal(t, 5*time.Second, cfg.SSH.ConnectTimeout)

	require.Len(t, cfg.Servers, 2)
	assert.Equal(t, "web1", cfg.Servers[0].Name)
	assert.Equal(t, filepath.Join(home, ".ssh", "web"), cfg.Servers[0].KeyPath)
	assert.Equal(t, "db.internal:2222", cfg.Servers[1].Host)
	assert.Equal(t, filepath.Join(home, ".ssh", "id_rsa"), cfg.Servers[1].KeyPath, "key_path should default to ~/.ssh/id_rsa")
}

func TestLoad_DefaultsWhenSectionsOmitted(t *testing.T) {
	path := writeConfig(t, `{"servers": [{"name": "web1", "host": "web1", "username": "ops"}]}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Thresholds{Disk: 85, CPU: 80, Memory: 85}, cfg.Thresholds)
	assert.Nil(t, cfg.Email, "email should stay nil when absent")
	assert.Equal(t, DefaultConnectTimeout, cfg.SSH.ConnectTimeout)
}

func TestLoad_PartialThresholds(t *testing.T) {
	path := writeConfig(t, `{
  "thresholds": {"cpu": 95},
  "servers": [{"name": "web1", "host": "web1", "username": "ops"}]
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 85, cfg.Thresholds.Disk)
	assert.Equal(t, 95, cfg.Thresholds.CPU)
	assert.Equal(t, 85, cfg.Thresholds.Memory)
}

func TestLoad_DefaultSMTPPort(t *testing.T) {
	path := writeConfig(t, `{
  "email": {"smtp_server": "smtp.example.com", "from": "a@example.com", "to": "b@example.com"},
  "servers": [{"name": "web1", "host": "web1", "username": "ops"}]
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Email)
	assert.Equal(t, DefaultSMTPPort, cfg.Email.SMTPPort)
}

func TestLoad_PasswordFromEnvironment(t *testing.T) {
	t.Setenv(EnvSMTPPassword, "from-env")

	path := writeConfig(t, `{
  "email": {"smtp_server": "smtp.example.com", "password": "in-file", "from": "a@example.com", "to": "b@example.com"},
  "servers": [{"name": "web1", "host": "web1", "username": "ops"}]
}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Email)
	assert.Equal(t, "from-env", cfg.Email.Password)
}

func TestLoad_PasswordEnvDoesNotEnableEmail(t *testing.T) {
	t.Setenv(EnvSMTPPassword, "from-env")

	path := writeConfig(t, `{"servers": [{"name": "web1", "host": "web1", "username": "ops"}]}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Email)
}

func TestLoad_DotEnvFile(t *testing.T) {
	// godotenv never overrides variables already present, so start clean.
	t.Setenv(EnvSMTPUsername, "")
	os.Unsetenv(EnvSMTPUsername)

	path := writeConfig(t, `{
  "email": {"smtp_server": "smtp.example.com", "from": "a@example.com", "to": "b@example.com"},
  "servers": [{"name": "web1", "host": "web1", "username": "ops"}]
}`)
	envPath := filepath.Join(filepath.Dir(path), EnvFileName)
	require.NoError(t, os.WriteFile(envPath, []byte(EnvSMTPUsername+"=dotenv-user\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Email)
	assert.Equal(t, "dotenv-user", cfg.Email.Username)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "invalid json",
			content: `{"servers": [`,
			wantMsg: "Failed to read config file",
		},
		{
			name:    "no servers",
			content: `{"thresholds": {"disk": 80}}`,
			wantMsg: "No servers configured",
		},
		{
			name:    "server missing host",
			content: `{"servers": [{"name": "web1", "username": "ops"}]}`,
			wantMsg: "missing a host",
		},
		{
			name:    "bad timeout",
			content: `{"ssh": {"connect_timeout": "soon"}, "servers": [{"name": "a", "host": "a", "username": "u"}]}`,
			wantMsg: "Invalid config format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "Config file not found")
}

func TestRecipients(t *testing.T) {
	tests := []struct {
		name string
		to   string
		want []string
	}{
		{"single", "ops@example.com", []string{"ops@example.com"}},
		{"multiple with spaces", "ops@example.com, oncall@example.com", []string{"ops@example.com", "oncall@example.com"}},
		{"trailing comma", "ops@example.com,", []string{"ops@example.com"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &EmailConfig{To: tt.to}
			assert.Equal(t, tt.want, e.Recipients())
		})
	}

	var nilEmail *EmailConfig
	assert.Nil(t, nilEmail.Recipients())
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Email = &EmailConfig{Password: "hunter2"}
	cfg.Servers = []Server{{Name: "web1"}}

	red := cfg.Redacted()

	assert.Equal(t, "********", red.Email.Password)
	assert.Equal(t, "hunter2", cfg.Email.Password, "original must be untouched")
	red.Servers[0].Name = "changed"
	assert.Equal(t, "web1", cfg.Servers[0].Name)

	noEmail := DefaultConfig().Redacted()
	assert.Nil(t, noEmail.Email)
}
