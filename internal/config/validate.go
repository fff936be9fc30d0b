package config

import (
	"fmt"
	"net/mail"

	"github.com/rileyhilliard/vitals/internal/errors"
)

// Validate checks a loaded config and returns the first problem found as an
// ErrConfig error with a suggestion.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if err := validateThresholds(cfg.Thresholds); err != nil {
		return err
	}

	if err := validateServers(cfg.Servers); err != nil {
		return err
	}

	if cfg.Email != nil {
		if err := validateEmail(cfg.Email); err != nil {
			return err
		}
	}

	if cfg.SSH.ConnectTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("ssh.connect_timeout must be positive, got %s", cfg.SSH.ConnectTimeout),
			"Use a duration like \"10s\" or remove the field for the default.")
	}

	return nil
}

func validateThresholds(t Thresholds) error {
	checks := []struct {
		name  string
		value int
	}{
		{"disk", t.Disk},
		{"cpu", t.CPU},
		{"memory", t.Memory},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Threshold '%s' must be a positive percentage, got %d", c.name, c.value),
				"Set thresholds as whole percentages, like {\"disk\": 85}.")
		}
	}
	return nil
}

func validateServers(servers []Server) error {
	if len(servers) == 0 {
		return errors.New(errors.ErrConfig,
			"No servers configured",
			"Add at least one entry to \"servers\" with name, host, and username.")
	}

	seen := make(map[string]int, len(servers))
	for i, s := range servers {
		label := s.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}

		if s.Name == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Server %s is missing a name", label),
				"Every server needs a \"name\" used in output and alerts.")
		}
		if s.Host == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Server '%s' is missing a host", label),
				"Set \"host\" to a hostname, IP, host:port, or ~/.ssh/config alias.")
		}
		if s.Username == "" {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Server '%s' is missing a username", label),
				"Set \"username\" to the login used for key-based SSH.")
		}
		if first, dup := seen[s.Name]; dup {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Server name '%s' is used by entries #%d and #%d", s.Name, first+1, i+1),
				"Give each server a unique name.")
		}
		seen[s.Name] = i
	}
	return nil
}

func validateEmail(e *EmailConfig) error {
	const suggestion = "Check the \"email\" section of your config, or remove it to skip alerts."

	if e.SMTPServer == "" {
		return errors.New(errors.ErrConfig, "email.smtp_server is required", suggestion)
	}
	if e.SMTPPort < 1 || e.SMTPPort > 65535 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("email.smtp_port %d is out of range", e.SMTPPort), suggestion)
	}
	if e.From == "" {
		return errors.New(errors.ErrConfig, "email.from is required", suggestion)
	}
	if _, err := mail.ParseAddress(e.From); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("email.from '%s' is not a valid address", e.From), suggestion)
	}

	recipients := e.Recipients()
	if len(recipients) == 0 {
		return errors.New(errors.ErrConfig, "email.to is required", suggestion)
	}
	for _, addr := range recipients {
		if _, err := mail.ParseAddress(addr); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("email.to entry '%s' is not a valid address", addr), suggestion)
		}
	}
	return nil
}
