package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"devserve/core/logger"
	"devserve/core/server"
	"devserve/core/storage"
	"devserve/feature/content"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the base name of the optional config file (devserve.yaml, .json, .toml).
const FileName = "devserve"

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the listener.
	Server server.Config `mapstructure:"server"`
	// Content holds the roots, fallback and response settings.
	Content content.Config `mapstructure:"content"`
	// Storage holds configuration for s3:// roots.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Watch holds configuration for watch mode.
	Watch WatchConfig `mapstructure:"watch"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Enabled reloads the server when the config file or roots change.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// DebounceMS is the quiet period before a batch of changes is handled.
	DebounceMS int `mapstructure:"debounce_ms" default:"200"`
}

// Options controls where LoadConfig looks for values.
type Options struct {
	// Dir holds the .env file and the devserve.* config file.
	Dir string
	// File is an explicit config file; it must exist when set.
	File string
	// Flags are bound to config keys through FlagKeys (flag name -> key).
	Flags    *pflag.FlagSet
	FlagKeys map[string]string
	// Overrides take precedence over every other source.
	Overrides map[string]any
}

// LoadConfig loads configuration from environment variables, .env and an
// optional config file found in path.
func LoadConfig(path string) (*Config, error) {
	return Load(Options{Dir: path})
}

// Load reads the sources in increasing precedence: struct defaults, config
// file, .env and environment variables, flags, then overrides.
func Load(opts Options) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	// Ignore error if file doesn't exist
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range opts.FlagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		if abs, err := filepath.Abs(used); err == nil {
			used = abs
		}
		config.File = used
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the parts of the configuration that cannot be defaulted.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	if len(c.Content.Roots) == 0 {
		return content.ErrNoRoots
	}
	return nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" || tag == "-" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Maps only come from config files and flags; an empty string default would not decode.
		if field.Type.Kind() == reflect.Map {
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
