// Package server owns the listening socket of the development server.
//
// # Lifecycle
//
// A Server holds at most one live instance. Start validates the Config, shuts
// down any running instance, and only then binds the new address, so a
// reconfiguration (for example after a config file edit) never holds two
// sockets for the same logical server. Close stops the live instance and is
// safe to call repeatedly. ShutdownOnSignal ties Close to SIGINT/SIGTERM.
//
// # Transport
//
// When TLS cert and key files are configured, the listener is wrapped with
// crypto/tls; otherwise plain HTTP is served. Requests are dispatched by the
// Fiber app handed to Start.
//
// # Ready hook
//
// BuildComplete runs the ReadyFunc once per started instance. Later calls for
// the same instance are ignored, which lets a build watcher report every
// rebuild without repeating the "server ready" output.
package server
