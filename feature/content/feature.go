package content

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature exposes the content handler to the feature loader.
type Feature struct {
	handler *Handler
	roots   []Root
	logger  *zap.Logger
}

// NewFeature wires the service, writer and handler for the given roots.
func NewFeature(cfg Config, roots []Root, logger *zap.Logger) *Feature {
	service := NewService(roots, cfg, logger)
	writer := NewWriter(NewTypes(cfg.MimeTypes, cfg.DefaultType))
	return &Feature{
		handler: NewHandler(service, writer, logger),
		roots:   roots,
		logger:  logger,
	}
}

func (f *Feature) Name() string {
	return "content"
}

func (f *Feature) IsEnabled() bool {
	return len(f.roots) > 0
}

func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	for i, root := range f.roots {
		f.logger.Debug("Content root registered", zap.Int("order", i), zap.Stringer("root", root))
	}
	return nil
}
