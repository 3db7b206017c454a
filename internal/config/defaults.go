package config

import "github.com/ziadkadry99/gravemap/internal/rows"

// DefaultPath is where init writes the configuration.
const DefaultPath = ".gravemap.yml"

// DefaultMap centers on the cemetery.
var DefaultMap = MapConfig{
	CenterLat:   49.496434,
	CenterLng:   19.859386,
	Zoom:        18,
	MinZoom:     18,
	MaxZoom:     23,
	FocusZoom:   23,
	TileURL:     "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
	Attribution: "&copy; OpenStreetMap contributors",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Columns: rows.DefaultColumns(),
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    ".gravemap/gravemap.db",
		},
		Photos: PhotosConfig{
			Backend: PhotosFS,
			Dir:     ".",
			S3: S3Config{
				Region: "eu-central-1",
			},
		},
		Map: DefaultMap,
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			CertDir:        ".gravemap/certs",
			AllowedOrigins: []string{"*"},
		},
		Locale:                "pl",
		AnniversaryWindowDays: 5,
	}
}
