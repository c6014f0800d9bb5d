// Package config provides configuration management for devserve.
//
// It utilizes Viper for loading configuration from environment variables,
// .env files, an optional devserve.yaml/json/toml file, and command-line
// flags. Defaults are declared next to each field with a `default:` tag.
//
// # Configuration Structure
//
//   - Server: host, port, TLS material, browser launch and verbosity
//   - Content: ordered roots, SPA fallback, extra headers, MIME overrides
//   - Storage: S3/MinIO credentials used by s3:// roots
//   - Log: logging level and format
//   - Watch: watch mode and debounce
//
// Environment variables map to nested keys with underscores, e.g.
// SERVER_PORT=8080 or CONTENT_ROOTS=dist,public.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
