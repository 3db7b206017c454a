package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GRAVEMAP_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GRAVEMAP_*). A double underscore
// separates nesting levels: GRAVEMAP_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validBackends is the set of recognized photo backends.
var validBackends = map[PhotoBackend]bool{
	PhotosFS: true,
	PhotosS3: true,
}

// validDrivers is the set of recognized database drivers.
var validDrivers = map[string]bool{
	"sqlite":     true,
	"pgx":        true,
	"postgres":   true,
	"postgresql": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Source.URL != "" && strings.Contains(c.Source.URL, "://") {
		if _, err := url.ParseRequestURI(c.Source.URL); err != nil {
			return fmt.Errorf("invalid source.url %q: %w", c.Source.URL, err)
		}
	}
	if c.Source.RefreshMinutes < 0 {
		return fmt.Errorf("source.refresh_minutes must be non-negative")
	}

	if !validDrivers[strings.ToLower(c.Database.Driver)] {
		return fmt.Errorf("invalid database.driver %q: must be one of sqlite, pgx", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if !validBackends[c.Photos.Backend] {
		return fmt.Errorf("invalid photos.backend %q: must be one of fs, s3", c.Photos.Backend)
	}
	if c.Photos.Backend == PhotosS3 && c.Photos.S3.Bucket == "" {
		return fmt.Errorf("photos.s3.bucket is required for the s3 backend")
	}

	m := c.Map
	if m.CenterLat < -90 || m.CenterLat > 90 || m.CenterLng < -180 || m.CenterLng > 180 {
		return fmt.Errorf("map center %v,%v is out of range", m.CenterLat, m.CenterLng)
	}
	if m.MinZoom < 0 || m.MinZoom > m.MaxZoom {
		return fmt.Errorf("map.min_zoom must be between 0 and map.max_zoom")
	}
	if m.Zoom < m.MinZoom || m.Zoom > m.MaxZoom {
		return fmt.Errorf("map.zoom must be between map.min_zoom and map.max_zoom")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}

	if c.AnniversaryWindowDays < 0 || c.AnniversaryWindowDays > 366 {
		return fmt.Errorf("anniversary_window_days must be between 0 and 366")
	}

	if c.PublicURL != "" {
		if _, err := url.ParseRequestURI(c.PublicURL); err != nil {
			return fmt.Errorf("invalid public_url %q: %w", c.PublicURL, err)
		}
	}

	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
