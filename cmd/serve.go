package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"devserve/core/config"
	"devserve/core/logger"
	"devserve/core/server"
	"devserve/core/watch"
	"devserve/feature/content"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [roots...]",
	Short: "Serve the content roots",
	Long: `Starts the HTTP(S) server over the configured roots. Roots given as
arguments replace the configured ones. With --watch the server restarts when
the config file changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx := cmd.Context()
		ds := newDevServer(logg, cmd.OutOrStdout(), browser.OpenURL)
		if err := ds.apply(ctx, cfg); err != nil {
			return err
		}
		ds.buildComplete()

		if cfg.Watch.Enabled {
			stop, err := ds.watch(ctx, cfg, func() (*config.Config, error) {
				return loadConfig(cmd, args)
			})
			if err != nil {
				_ = ds.srv.Close()
				return err
			}
			defer stop()
		}

		return ds.srv.ShutdownOnSignal(ctx)
	},
}

// devServer ties the server handle to the configuration it was started with.
type devServer struct {
	mu     sync.Mutex
	cfg    *config.Config
	roots  []content.Root
	srv    *server.Server
	logger *zap.Logger
	out    io.Writer
	open   func(url string) error
}

func newDevServer(logg *zap.Logger, out io.Writer, open func(string) error) *devServer {
	ds := &devServer{logger: logg, out: out, open: open}
	ds.srv = server.New(logg, ds.ready)
	return ds
}

// apply starts a server for cfg, replacing the running one.
func (d *devServer) apply(ctx context.Context, cfg *config.Config) error {
	roots, err := openRoots(ctx, cfg, d.logger)
	if err != nil {
		return err
	}
	app, err := newApp(cfg, roots, d.logger)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.cfg = cfg
	d.roots = roots
	d.mu.Unlock()

	return d.srv.Start(cfg.Server, app)
}

func (d *devServer) buildComplete() {
	if err := d.srv.BuildComplete(); err != nil {
		d.logger.Debug("Build complete ignored", zap.Error(err))
	}
}

// ready prints the address when verbose and opens the browser when asked.
func (d *devServer) ready(url string) {
	d.mu.Lock()
	cfg, roots := d.cfg, d.roots
	d.mu.Unlock()

	if cfg == nil {
		return
	}

	if cfg.Server.Verbose {
		names := make([]string, len(roots))
		for i, root := range roots {
			names[i] = root.String()
		}
		fmt.Fprintf(d.out, "Serving %s at %s\n", strings.Join(names, ", "), url)
	}

	if cfg.Server.Open && d.open != nil {
		page := cfg.Server.PageURL(url)
		if err := d.open(page); err != nil {
			d.logger.Warn("Failed to open browser", zap.String("url", page), zap.Error(err))
		}
	}
}

// watch restarts the server when the config file changes and reports a
// finished build when a local root changes. The returned func stops watching.
func (d *devServer) watch(ctx context.Context, cfg *config.Config, reload func() (*config.Config, error)) (func(), error) {
	var watchers []*watch.Watcher
	stop := func() {
		for _, w := range watchers {
			w.Stop()
		}
	}
	opts := []watch.Option{
		watch.WithLogger(d.logger),
		watch.WithDebounce(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond),
	}

	if cfg.File != "" {
		w, err := watch.New([]string{cfg.File}, func(changed []string) {
			d.logger.Info("Config changed, restarting server", zap.Strings("files", changed))
			next, err := reload()
			if err != nil {
				d.logger.Error("Failed to reload config", zap.Error(err))
				return
			}
			if err := d.apply(ctx, next); err != nil {
				d.logger.Error("Failed to restart server", zap.Error(err))
				return
			}
			d.buildComplete()
		}, opts...)
		if err != nil {
			return nil, err
		}
		w.RunAsync()
		watchers = append(watchers, w)
	}

	d.mu.Lock()
	var dirs []string
	for _, root := range d.roots {
		dir, ok := root.(*content.DirRoot)
		if !ok {
			continue
		}
		if info, err := os.Stat(dir.Dir()); err != nil || !info.IsDir() {
			d.logger.Debug("Root not watched", zap.String("root", dir.Dir()))
			continue
		}
		dirs = append(dirs, dir.Dir())
	}
	d.mu.Unlock()

	if len(dirs) > 0 {
		w, err := watch.New(dirs, func(changed []string) {
			d.logger.Debug("Content changed", zap.Strings("files", changed))
			d.buildComplete()
		}, opts...)
		if err != nil {
			stop()
			return nil, err
		}
		w.RunAsync()
		watchers = append(watchers, w)
	}

	d.logger.Info("Watching for changes", zap.String("config", cfg.File), zap.Strings("roots", dirs))
	return stop, nil
}

func init() {
	flags := serveCmd.Flags()
	flags.String("host", "localhost", "interface to bind")
	flags.IntP("port", "p", 10001, "port to listen on (0 picks a free port)")
	flags.String("cert", "", "TLS certificate file (PEM)")
	flags.String("key", "", "TLS private key file (PEM)")
	flags.String("ca", "", "TLS CA/intermediate certificates (PEM)")
	flags.BoolP("open", "o", false, "open the browser when the server is ready")
	flags.String("open-page", "", "page to open, relative to the server URL or absolute")
	flags.BoolP("verbose", "v", true, "print the server address when ready")
	flags.StringToStringP("header", "H", nil, "extra response header NAME=VALUE, repeatable")
	flags.BoolP("watch", "w", false, "restart when the config file changes")
	addContentFlags(flags)

	RootCmd.AddCommand(serveCmd)
}
