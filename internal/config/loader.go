package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rileyhilliard/vitals/internal/errors"
	"github.com/spf13/viper"
)

const (
	// EnvFileName is loaded from the config file's directory when present.
	EnvFileName = ".env"
	// EnvSMTPUsername overrides email.username.
	EnvSMTPUsername = "VITALS_SMTP_USERNAME"
	// EnvSMTPPassword overrides email.password.
	EnvSMTPPassword = "VITALS_SMTP_PASSWORD"
)

// Load reads, defaults, and validates the JSON config at path.
// Every failure is an *errors.Error with code ErrConfig.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Config file not found: %s", path),
				"Check the path is correct")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Cannot access config file: %s", path),
			"Check file permissions")
	}

	if err := loadEnvFile(filepath.Dir(path)); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file is valid JSON: "+path)
	}

	// Only bind credential overrides when the file has an email section,
	// so an exported password never switches alerting on by itself.
	if v.IsSet("email") {
		_ = v.BindEnv("email.username", EnvSMTPUsername)
		_ = v.BindEnv("email.password", EnvSMTPPassword)
	}

	cfg, err := parseConfig(v, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFile loads dir/.env into the process environment if it exists.
// Variables already set in the environment win.
func loadEnvFile(dir string) error {
	envPath := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(envPath); err != nil {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read "+envPath,
			"Use KEY=value lines, one per line")
	}
	return nil
}

// setDefaults registers defaults for every optional scalar.
// email has no defaults: its absence is meaningful.
func setDefaults(v *viper.Viper) {
	v.SetDefault("thresholds.disk", DefaultDiskThreshold)
	v.SetDefault("thresholds.cpu", DefaultCPUThreshold)
	v.SetDefault("thresholds.memory", DefaultMemoryThreshold)
	v.SetDefault("ssh.strict_host_key_checking", false)
	v.SetDefault("ssh.known_hosts", DefaultKnownHosts)
	v.SetDefault("ssh.connect_timeout", DefaultConnectTimeout.String())
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check field types in "+path)
	}

	if cfg.Email != nil && cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = DefaultSMTPPort
	}

	cfg.SSH.KnownHosts = ExpandPath(cfg.SSH.KnownHosts)

	for i := range cfg.Servers {
		s := &cfg.Servers[i]
		s.Name = strings.TrimSpace(s.Name)
		s.Host = strings.TrimSpace(s.Host)
		if s.KeyPath == "" {
			s.KeyPath = DefaultKeyPath
		}
		s.KeyPath = ExpandPath(s.KeyPath)
	}

	return cfg, nil
}

// Recipients splits the To field on commas and drops empty entries.
func (e *EmailConfig) Recipients() []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, addr := range strings.Split(e.To, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Redacted returns a copy safe to print: the SMTP password is masked.
func (c *Config) Redacted() *Config {
	out := *c
	out.Servers = append([]Server(nil), c.Servers...)
	if c.Email != nil {
		email := *c.Email
		if email.Password != "" {
			email.Password = "********"
		}
		out.Email = &email
	}
	return &out
}
