package content

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Outcome classifies how a request was answered.
type Outcome int

const (
	// Found means the request path resolved under one of the roots.
	Found Outcome = iota
	// FallbackFound means the request path missed and the fallback page resolved.
	FallbackFound
	// Missing means neither the request path nor the fallback resolved.
	Missing
	// Failed means a root returned an error other than not-found.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case FallbackFound:
		return "fallback"
	case Missing:
		return "missing"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status returns the response status for a full (non-range) request.
func (o Outcome) Status() int {
	switch o {
	case Found, FallbackFound:
		return fiber.StatusOK
	case Failed:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusNotFound
	}
}

// Lookup is the result of Service.Lookup.
type Lookup struct {
	Outcome Outcome
	Resolution
}

// Service resolves request paths and applies the fallback policy.
type Service struct {
	roots    []Root
	fallback string
	enabled  bool
	logger   *zap.Logger
}

// NewService creates a content service over the ordered roots.
func NewService(roots []Root, cfg Config, logger *zap.Logger) *Service {
	fallback, enabled := cfg.FallbackPath()
	return &Service{
		roots:    roots,
		fallback: fallback,
		enabled:  enabled,
		logger:   logger,
	}
}

// Resolve searches the roots for urlPath without applying the fallback.
func (s *Service) Resolve(ctx context.Context, urlPath string) Resolution {
	return Resolve(ctx, s.roots, urlPath)
}

// Lookup resolves urlPath. Only a not-found miss is eligible for the
// fallback; any other read error is reported as Failed right away.
func (s *Service) Lookup(ctx context.Context, urlPath string) Lookup {
	res := s.Resolve(ctx, urlPath)
	if res.Err == nil {
		return Lookup{Outcome: Found, Resolution: res}
	}
	if !res.NotFound() {
		return Lookup{Outcome: Failed, Resolution: res}
	}
	if !s.enabled {
		return Lookup{Outcome: Missing, Resolution: res}
	}

	s.logger.Debug("Serving fallback",
		zap.String("path", urlPath),
		zap.String("fallback", s.fallback),
	)

	fb := s.Resolve(ctx, s.fallback)
	if fb.Err != nil {
		return Lookup{Outcome: Missing, Resolution: fb}
	}
	return Lookup{Outcome: FallbackFound, Resolution: fb}
}
