package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds how long in-flight requests may finish.
const DefaultShutdownTimeout = 5 * time.Second

var (
	// ErrAddressInUse is returned when the port is held by another process.
	ErrAddressInUse = errors.New("address already in use")
	// ErrNotRunning is returned by operations that need a live listener.
	ErrNotRunning = errors.New("server is not running")
)

// ReadyFunc is called once per started instance with the server URL.
type ReadyFunc func(url string)

// Server owns at most one live listener. Starting it again replaces the
// running instance: the old socket is closed before the new one is bound.
// Safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	logger   *zap.Logger
	onReady  ReadyFunc
	shutdown time.Duration
	live     *instance
}

type instance struct {
	cfg   Config
	app   *fiber.App
	ln    net.Listener
	url   string
	ready sync.Once
	done  chan struct{}
}

// New creates an idle server. onReady may be nil.
func New(logger *zap.Logger, onReady ReadyFunc) *Server {
	return &Server{
		logger:   logger,
		onReady:  onReady,
		shutdown: DefaultShutdownTimeout,
	}
}

// Start binds cfg's address and serves app on it. A previously started
// instance is shut down first. The app must not have been served before.
func (s *Server) Start(cfg Config, app *fiber.App) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live != nil {
		s.logger.Info("Replacing running server", zap.String("url", s.live.url))
		if err := s.live.close(s.shutdown); err != nil {
			s.logger.Warn("Previous server did not shut down cleanly", zap.Error(err))
		}
		s.live = nil
	}

	ln, err := listen(cfg)
	if err != nil {
		return err
	}

	inst := &instance{
		cfg:  cfg,
		app:  app,
		ln:   ln,
		url:  cfg.URL(ln.Addr().(*net.TCPAddr).Port),
		done: make(chan struct{}),
	}

	go func() {
		defer close(inst.done)
		if err := app.Listener(ln); err != nil && !errors.Is(err, net.ErrClosed) {
			s.logger.Error("Server stopped with error", zap.String("url", inst.url), zap.Error(err))
		}
	}()

	s.live = inst
	s.logger.Info("Server listening",
		zap.String("url", inst.url),
		zap.Bool("tls", cfg.TLS.Enabled()),
	)
	return nil
}

// Close shuts down the live instance, if any.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil {
		return nil
	}

	s.logger.Info("Shutting down server...", zap.String("url", s.live.url))
	err := s.live.close(s.shutdown)
	s.live = nil
	return err
}

// Addr returns the bound address, or nil when nothing is running.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil {
		return nil
	}
	return s.live.ln.Addr()
}

// URL returns the base URL of the live instance.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live == nil {
		return ""
	}
	return s.live.url
}

// BuildComplete signals that a build finished. The ready hook runs on the
// first call for each started instance; later calls are ignored.
func (s *Server) BuildComplete() error {
	s.mu.Lock()
	inst := s.live
	s.mu.Unlock()

	if inst == nil {
		return ErrNotRunning
	}
	inst.ready.Do(func() {
		if s.onReady != nil {
			s.onReady(inst.url)
		}
	})
	return nil
}

// ShutdownOnSignal blocks until one of sigs arrives or ctx is done, then
// closes the server. Without sigs it waits for SIGINT and SIGTERM.
func (s *Server) ShutdownOnSignal(ctx context.Context, sigs ...os.Signal) error {
	if len(sigs) == 0 {
		sigs = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, sigs...)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		s.logger.Info("Received signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Debug("Context done", zap.Error(ctx.Err()))
	}
	return s.Close()
}

func (i *instance) close(timeout time.Duration) error {
	err := i.app.ShutdownWithTimeout(timeout)
	if cerr := i.ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}

	select {
	case <-i.done:
	case <-time.After(timeout):
		if err == nil {
			err = fmt.Errorf("server at %s did not stop within %s", i.url, timeout)
		}
	}
	return err
}

func listen(cfg Config) (net.Listener, error) {
	var tlsConfig *tls.Config
	if cfg.TLS.Enabled() {
		var err error
		if tlsConfig, err = LoadTLS(cfg.TLS); err != nil {
			return nil, err
		}
	}

	ln, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("%w: %s: %w", ErrAddressInUse, cfg.Address(), err)
		}
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.Address(), err)
	}

	if tlsConfig != nil {
		ln = tls.NewListener(ln, tlsConfig)
	}
	return ln, nil
}
