package content

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
)

// Writer turns resolved content into a response.
type Writer struct {
	types Types
}

// NewWriter creates a response writer using the given content types.
func NewWriter(types Types) *Writer {
	return &Writer{types: types}
}

// Write sends content with 200, or the requested range with 206.
// Content-Length is derived from the body that is actually sent.
func (w *Writer) Write(c *fiber.Ctx, location string, content []byte, rng Range) error {
	c.Set(fiber.HeaderContentType, w.types.ContentType(location))

	if !rng.Present {
		return c.Status(fiber.StatusOK).Send(content)
	}

	start, end := rng.Bounds(len(content))
	c.Set(fiber.HeaderAcceptRanges, "bytes")
	c.Set(fiber.HeaderContentRange, fmt.Sprintf("bytes %d-%d/%d", start, end, len(content)))
	return c.Status(fiber.StatusPartialContent).Send(rng.Slice(content))
}

// NotFound sends a 404 naming the path that was tried last.
func (w *Writer) NotFound(c *fiber.Ctx, location string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusNotFound).SendString(NotFoundBody(location))
}

// Failure sends a 500 with the attempted path and the error details.
func (w *Writer) Failure(c *fiber.Ctx, location string, err error) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusInternalServerError).SendString(FailureBody(location, err))
}

// NotFoundBody renders the plain-text 404 body.
func NotFoundBody(location string) string {
	return "404 Not Found\n\n" + location
}

// FailureBody renders the plain-text 500 body.
func FailureBody(location string, err error) string {
	var b strings.Builder
	b.WriteString("500 Internal Server Error\n\n")
	b.WriteString(location)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(ErrorFields(err), "\n"))
	return b.String()
}

// ErrorFields lists the fields of err, one "name: value" line each.
func ErrorFields(err error) []string {
	if err == nil {
		return nil
	}

	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		return []string{"error: " + err.Error()}
	}

	fields := []string{
		"op: " + pathErr.Op,
		"path: " + pathErr.Path,
		"error: " + pathErr.Err.Error(),
	}
	var errno syscall.Errno
	if errors.As(pathErr.Err, &errno) {
		fields = append(fields, fmt.Sprintf("errno: %d", uintptr(errno)))
	}
	return fields
}
