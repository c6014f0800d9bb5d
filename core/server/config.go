package server

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the port where the server will listen. 0 picks a free port.
	Port int `mapstructure:"port" default:"10001"`
	// TLS enables HTTPS when a certificate and key are given.
	TLS TLSConfig `mapstructure:"tls"`
	// Open launches a browser once the server is ready.
	Open bool `mapstructure:"open" default:"false"`
	// OpenPage is appended to the server URL, or used as is when absolute.
	OpenPage string `mapstructure:"open_page" default:""`
	// Verbose prints the address once the server is ready.
	Verbose bool `mapstructure:"verbose" default:"true"`
}

// TLSConfig holds pre-supplied TLS material.
type TLSConfig struct {
	// CertFile is the PEM encoded certificate.
	CertFile string `mapstructure:"cert_file" default:""`
	// KeyFile is the PEM encoded private key.
	KeyFile string `mapstructure:"key_file" default:""`
	// CAFile holds optional PEM encoded intermediate/CA certificates.
	CAFile string `mapstructure:"ca_file" default:""`
}

// Enabled reports whether TLS material is configured.
func (c TLSConfig) Enabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// Validate checks the port range and that the TLS material is complete.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return errors.New("tls requires both cert_file and key_file")
	}
	return nil
}

// Address returns the listen address.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Scheme returns http or https.
func (c Config) Scheme() string {
	if c.TLS.Enabled() {
		return "https"
	}
	return "http"
}

// URL returns the base URL of the server for the given port.
func (c Config) URL(port int) string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	return c.Scheme() + "://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// PageURL returns the page to open in the browser for a server at base.
func (c Config) PageURL(base string) string {
	if strings.HasPrefix(c.OpenPage, "http://") || strings.HasPrefix(c.OpenPage, "https://") {
		return c.OpenPage
	}
	return base + c.OpenPage
}
