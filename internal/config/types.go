package config

import "time"

// Default threshold percentages, applied per field when the config omits them.
const (
	DefaultDiskThreshold   = 85
	DefaultCPUThreshold    = 80
	DefaultMemoryThreshold = 85
)

const (
	// DefaultKeyPath is the private key used when a server omits key_path.
	DefaultKeyPath = "~/.ssh/id_rsa"
	// DefaultKnownHosts is consulted only when strict host key checking is on.
	DefaultKnownHosts = "~/.ssh/known_hosts"
	// DefaultConnectTimeout bounds the TCP dial and SSH handshake.
	DefaultConnectTimeout = 10 * time.Second
	// DefaultSMTPPort is the submission port used when smtp_port is omitted.
	DefaultSMTPPort = 587
)

// Config represents the complete JSON configuration file.
type Config struct {
	Thresholds Thresholds   `json:"thresholds" yaml:"thresholds" mapstructure:"thresholds"`
	Email      *EmailConfig `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email"`
	SSH        SSHConfig    `json:"ssh" yaml:"ssh" mapstructure:"ssh"`
	Servers    []Server     `json:"servers" yaml:"servers" mapstructure:"servers"`
}

// Thresholds are the percentages at or above which a metric is CRITICAL.
type Thresholds struct {
	Disk   int `json:"disk" yaml:"disk" mapstructure:"disk"`
	CPU    int `json:"cpu" yaml:"cpu" mapstructure:"cpu"`
	Memory int `json:"memory" yaml:"memory" mapstructure:"memory"`
}

// EmailConfig holds SMTP relay settings for alert delivery.
// A nil *EmailConfig on Config means alerts are skipped.
type EmailConfig struct {
	SMTPServer string `json:"smtp_server" yaml:"smtp_server" mapstructure:"smtp_server"`
	SMTPPort   int    `json:"smtp_port" yaml:"smtp_port" mapstructure:"smtp_port"`
	Username   string `json:"username" yaml:"username" mapstructure:"username"`
	Password   string `json:"password" yaml:"password" mapstructure:"password"`
	From       string `json:"from" yaml:"from" mapstructure:"from"`

	// To is one address or several separated by commas.
	To string `json:"to" yaml:"to" mapstructure:"to"`
}

// SSHConfig controls how remote sessions are established.
type SSHConfig struct {
	// StrictHostKeyChecking verifies host keys against KnownHosts.
	// Off by default: unknown hosts are trusted automatically.
	StrictHostKeyChecking bool `json:"strict_host_key_checking" yaml:"strict_host_key_checking" mapstructure:"strict_host_key_checking"`

	KnownHosts     string        `json:"known_hosts" yaml:"known_hosts" mapstructure:"known_hosts"`
	ConnectTimeout time.Duration `json:"connect_timeout" yaml:"connect_timeout" mapstructure:"connect_timeout"`
}

// Server is one monitored machine.
type Server struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Host is a hostname, an IP, host:port, or an alias from ~/.ssh/config.
	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Username string `json:"username" yaml:"username" mapstructure:"username"`
	KeyPath  string `json:"key_path" yaml:"key_path" mapstructure:"key_path"`
}

// DefaultConfig returns a Config with defaults and no servers.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: Thresholds{
			Disk:   DefaultDiskThreshold,
			CPU:    DefaultCPUThreshold,
			Memory: DefaultMemoryThreshold,
		},
		SSH: SSHConfig{
			StrictHostKeyChecking: false,
			KnownHosts:            DefaultKnownHosts,
			ConnectTimeout:        DefaultConnectTimeout,
		},
	}
}
