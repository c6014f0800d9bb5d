package server_test

import (
	"testing"

	"devserve/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     server.Config
		wantErr bool
	}{
		{"Default", server.Config{Host: "localhost", Port: 10001}, false},
		{"Ephemeral", server.Config{Port: 0}, false},
		{"Negative", server.Config{Port: -1}, true},
		{"TooLarge", server.Config{Port: 70000}, true},
		{"TLSComplete", server.Config{Port: 443, TLS: server.TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}}, false},
		{"TLSMissingKey", server.Config{Port: 443, TLS: server.TLSConfig{CertFile: "c.pem"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_URLs(t *testing.T) {
	cfg := server.Config{Host: "localhost", Port: 10001}
	assert.Equal(t, "localhost:10001", cfg.Address())
	assert.Equal(t, "http://localhost:10001", cfg.URL(cfg.Port))

	cfg.TLS = server.TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}
	assert.Equal(t, "https", cfg.Scheme())
	assert.Equal(t, "https://localhost:8443", cfg.URL(8443))

	assert.Equal(t, "http://[::1]:80", server.Config{Host: "::1"}.URL(80))
	assert.Equal(t, "http://localhost:80", server.Config{}.URL(80))
}

func TestConfig_PageURL(t *testing.T) {
	base := "http://localhost:10001"

	assert.Equal(t, base, server.Config{}.PageURL(base))
	assert.Equal(t, base+"/docs/", server.Config{OpenPage: "/docs/"}.PageURL(base))
	assert.Equal(t, "https://example.test/x", server.Config{OpenPage: "https://example.test/x"}.PageURL(base))
}
