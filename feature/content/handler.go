package content

import (
	"devserve/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for static content.
type Handler struct {
	service *Service
	writer  *Writer
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, writer *Writer, logger *zap.Logger) *Handler {
	return &Handler{service: service, writer: writer, logger: logger}
}

// RegisterRoutes mounts the handler for every method and path.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Use(h.HandleContent)
}

// HandleContent serves the file matching the request path.
func (h *Handler) HandleContent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	urlPath := DecodePath(c.Path())
	result := h.service.Lookup(c.Context(), urlPath)

	l.Debug("Request resolved",
		zap.String("method", c.Method()),
		zap.String("path", urlPath),
		zap.String("outcome", result.Outcome.String()),
		zap.String("file", result.Path),
	)

	switch result.Outcome {
	case Found:
		return h.writer.Write(c, result.Path, result.Content, ParseRange(c.Get(fiber.HeaderRange)))
	case FallbackFound:
		return h.writer.Write(c, result.Path, result.Content, NoRange)
	case Failed:
		l.Error("Failed to read file", zap.String("file", result.Path), zap.Error(result.Err))
		return h.writer.Failure(c, result.Path, result.Err)
	default:
		return h.writer.NotFound(c, result.Path)
	}
}
