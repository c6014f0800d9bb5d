package content

import (
	"strings"

	"devserve/core/utils"
)

// DefaultFallbackPath is served when the fallback is enabled with a boolean.
const DefaultFallbackPath = "/index.html"

// Config holds the content resolution settings.
type Config struct {
	// Roots are searched in order; the first root holding the file wins.
	// Entries are local directories or s3://bucket/prefix locations.
	Roots []string `mapstructure:"roots" default:"."`
	// Fallback is empty or false to disable, true to serve /index.html, or a
	// literal path served in place of missing files.
	Fallback string `mapstructure:"fallback" default:""`
	// Headers are applied to every response.
	Headers map[string]string `mapstructure:"headers"`
	// MimeTypes overrides the content type per file extension.
	MimeTypes map[string]string `mapstructure:"mime_types"`
	// DefaultType is used when the extension is unknown.
	DefaultType string `mapstructure:"default_type" default:"text/plain"`
}

// FallbackPath returns the path to resolve when a lookup misses, and whether
// the fallback is enabled at all.
func (c Config) FallbackPath() (string, bool) {
	value := strings.TrimSpace(c.Fallback)
	if value == "" {
		return "", false
	}
	if utils.ToBool(value) {
		return DefaultFallbackPath, true
	}
	switch strings.ToLower(value) {
	case "0", "false", "no":
		return "", false
	}
	return value, true
}
