package content_test

import (
	"testing"

	"devserve/feature/content"

	"github.com/stretchr/testify/assert"
)

func TestConfig_FallbackPath(t *testing.T) {
	tests := []struct {
		name        string
		fallback    string
		wantPath    string
		wantEnabled bool
	}{
		{"Unset", "", "", false},
		{"True", "true", "/index.html", true},
		{"One", "1", "/index.html", true},
		{"False", "false", "", false},
		{"Zero", "0", "", false},
		{"Literal", "/app.html", "/app.html", true},
		{"LiteralTrimmed", " /shell.html ", "/shell.html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, enabled := content.Config{Fallback: tt.fallback}.FallbackPath()
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantEnabled, enabled)
		})
	}
}
