package cgpcli

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultPort is the mail server's management port.
	DefaultPort = 106

	// DefaultTimeout bounds dialing and every blocking read.
	DefaultTimeout = 30 * time.Second
)

// Config holds the connection options for a session. The core consumes it
// as-is: validation and defaulting happen in LoadConfig or in the caller.
type Config struct {
	// Host of the mail server's management socket.
	Host string

	// Port of the management socket. Zero means DefaultPort.
	Port int

	// Login is the administrator account name.
	Login string

	// Password for the administrator account.
	Password string

	// Timeout bounds dialing and each blocking read. Zero means no deadline.
	Timeout time.Duration

	// Observer, if set, receives a copy of every line crossing the wire.
	Observer Observer
}

// Addr returns the host:port address to dial.
func (c Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// LoadConfig reads connection options from a TOML file and applies defaults:
//
//	host = "mail.example.com"
//	port = 106
//	login = "postmaster"
//	password = "secret"
//	timeout = "30s"
func LoadConfig(path string) (Config, error) {
	var raw struct {
		Host     string `toml:"host"`
		Port     int    `toml:"port"`
		Login    string `toml:"login"`
		Password string `toml:"password"`
		Timeout  string `toml:"timeout"`
	}

	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return Config{}, fmt.Errorf("cgpcli: load config: %w", err)
	}
	if raw.Host == "" {
		return Config{}, fmt.Errorf("cgpcli: load config: host is required")
	}

	cfg := Config{
		Host:     raw.Host,
		Port:     raw.Port,
		Login:    raw.Login,
		Password: raw.Password,
		Timeout:  DefaultTimeout,
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("cgpcli: load config: invalid timeout: %w", err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
