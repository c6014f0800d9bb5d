package content

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Types maps file locations to Content-Type values.
type Types struct {
	overrides map[string]string
	fallback  string
}

// NewTypes creates a lookup with per-extension overrides. Keys may be given
// with or without the leading dot.
func NewTypes(overrides map[string]string, fallback string) Types {
	if fallback == "" {
		fallback = fiber.MIMETextPlain
	}
	normalized := make(map[string]string, len(overrides))
	for ext, contentType := range overrides {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[ext] = contentType
	}
	return Types{overrides: normalized, fallback: fallback}
}

// ContentType returns the type for location based on its extension.
func (t Types) ContentType(location string) string {
	ext := strings.ToLower(filepath.Ext(location))
	if ext == "" {
		return t.fallback
	}
	if contentType, ok := t.overrides[ext]; ok {
		return contentType
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	// fiber's table is wider but reports unknown extensions as octet-stream
	if contentType := utils.GetMIME(ext); contentType != "" && contentType != fiber.MIMEOctetStream {
		return contentType
	}
	return t.fallback
}
