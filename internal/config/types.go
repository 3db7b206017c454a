package config

import "github.com/ziadkadry99/gravemap/internal/rows"

// PhotoBackend selects where grave photos are read from.
type PhotoBackend string

const (
	PhotosFS PhotoBackend = "fs"
	PhotosS3 PhotoBackend = "s3"
)

// Config is the top-level gravemap configuration, corresponding to .gravemap.yml.
type Config struct {
	Source                SourceConfig   `yaml:"source" koanf:"source"`
	Database              DatabaseConfig `yaml:"database" koanf:"database"`
	Photos                PhotosConfig   `yaml:"photos" koanf:"photos"`
	Map                   MapConfig      `yaml:"map" koanf:"map"`
	Server                ServerConfig   `yaml:"server" koanf:"server"`
	Locale                string         `yaml:"locale" koanf:"locale"`
	AnniversaryWindowDays int            `yaml:"anniversary_window_days" koanf:"anniversary_window_days"`
	PublicURL             string         `yaml:"public_url" koanf:"public_url"`
	AboutFile             string         `yaml:"about_file" koanf:"about_file"`
}

// SourceConfig points at the published spreadsheet.
type SourceConfig struct {
	URL            string       `yaml:"url" koanf:"url"`
	Columns        rows.Columns `yaml:"columns" koanf:"columns"`
	RefreshMinutes int          `yaml:"refresh_minutes" koanf:"refresh_minutes"`
}

// DatabaseConfig holds the snapshot database settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver" koanf:"driver"`
	DSN    string `yaml:"dsn" koanf:"dsn"`
}

// PhotosConfig holds photo storage settings.
type PhotosConfig struct {
	Backend PhotoBackend `yaml:"backend" koanf:"backend"`
	Dir     string       `yaml:"dir" koanf:"dir"`
	S3      S3Config     `yaml:"s3" koanf:"s3"`
}

// S3Config holds S3 (or S3-compatible) bucket settings.
type S3Config struct {
	Bucket       string `yaml:"bucket" koanf:"bucket"`
	Prefix       string `yaml:"prefix" koanf:"prefix"`
	Region       string `yaml:"region" koanf:"region"`
	Endpoint     string `yaml:"endpoint" koanf:"endpoint"`
	AccessKey    string `yaml:"access_key" koanf:"access_key"`
	SecretKey    string `yaml:"secret_key" koanf:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style" koanf:"use_path_style"`
}

// MapConfig holds the map defaults handed to the page.
type MapConfig struct {
	CenterLat   float64 `yaml:"center_lat" koanf:"center_lat" json:"center_lat"`
	CenterLng   float64 `yaml:"center_lng" koanf:"center_lng" json:"center_lng"`
	Zoom        int     `yaml:"zoom" koanf:"zoom" json:"zoom"`
	MinZoom     int     `yaml:"min_zoom" koanf:"min_zoom" json:"min_zoom"`
	MaxZoom     int     `yaml:"max_zoom" koanf:"max_zoom" json:"max_zoom"`
	FocusZoom   int     `yaml:"focus_zoom" koanf:"focus_zoom" json:"focus_zoom"`
	TileURL     string  `yaml:"tile_url" koanf:"tile_url" json:"tile_url"`
	Attribution string  `yaml:"attribution" koanf:"attribution" json:"attribution"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host" koanf:"host"`
	Port           int      `yaml:"port" koanf:"port"`
	Domain         string   `yaml:"domain" koanf:"domain"`
	CertDir        string   `yaml:"cert_dir" koanf:"cert_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}
