package cmd

import (
	"context"
	"fmt"

	"devserve/core/config"
	"devserve/core/loader"
	"devserve/core/logger"
	"devserve/core/middleware/headers"
	"devserve/core/middleware/rayid"
	"devserve/core/storage"
	"devserve/feature/content"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"host":      "server.host",
	"port":      "server.port",
	"cert":      "server.tls.cert_file",
	"key":       "server.tls.key_file",
	"ca":        "server.tls.ca_file",
	"open":      "server.open",
	"open-page": "server.open_page",
	"verbose":   "server.verbose",
	"root":      "content.roots",
	"fallback":  "content.fallback",
	"header":    "content.headers",
	"log-level": "log.level",
	"watch":     "watch.enabled",
}

// addContentFlags registers the flags shared by every command that resolves content.
func addContentFlags(flags *pflag.FlagSet) {
	flags.StringSliceP("root", "r", nil, "content root, repeatable (directory or s3://bucket/prefix)")
	flags.String("fallback", "", "page served for missing paths; bare flag serves /index.html")
	flags.Lookup("fallback").NoOptDefVal = "true"
	flags.String("log-level", "", "log level (debug, info, warn, error)")
}

// loadConfig reads the configuration and applies the command's flags.
// Positional args, when given, replace the configured roots.
func loadConfig(cmd *cobra.Command, roots []string) (*config.Config, error) {
	opts := config.Options{
		Dir:      ".",
		File:     configFile,
		Flags:    cmd.Flags(),
		FlagKeys: flagKeys,
	}
	if len(roots) > 0 {
		opts.Overrides = map[string]any{"content.roots": roots}
	}

	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openRoots builds the ordered content roots. A storage client is only
// created when a root lives in a bucket.
func openRoots(ctx context.Context, cfg *config.Config, logg *zap.Logger) ([]content.Root, error) {
	var client storage.Client
	if content.NeedsStorage(cfg.Content.Roots) {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
	}

	roots, err := content.ParseRoots(cfg.Content.Roots, client)
	if err != nil {
		return nil, err
	}

	for _, root := range roots {
		bucket, ok := root.(*content.BucketRoot)
		if !ok {
			continue
		}
		exists, err := client.BucketExists(ctx, bucket.Bucket())
		if err != nil {
			logg.Warn("Bucket check failed", zap.String("bucket", bucket.Bucket()), zap.Error(err))
			continue
		}
		if !exists {
			logg.Warn("Bucket does not exist", zap.String("bucket", bucket.Bucket()))
		}
	}
	return roots, nil
}

// newApp builds a fiber app serving roots. Each app is served at most once.
func newApp(cfg *config.Config, roots []content.Root, logg *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line can carry it
	app.Use(rayid.New())
	app.Use(requestLogger(logg))
	app.Use(headers.New(cfg.Content.Headers))

	mgr := loader.NewManager()
	mgr.Register(content.NewFeature(cfg.Content, roots, logg))
	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func requestLogger(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		l.Debug("Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
		)
		return err
	}
}
