package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to gravemap! Let's configure the cemetery map.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Spreadsheet.
	sourcePrompt := promptui.Prompt{
		Label: "Published CSV URL or file path",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("a source is required")
			}
			return nil
		},
	}
	source, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	cfg.Source.URL = strings.TrimSpace(source)

	// 2. Snapshot database.
	dbPrompt := promptui.Select{
		Label: "Select snapshot database",
		Items: []string{
			"sqlite — local file, no setup",
			"pgx    — PostgreSQL server",
		},
	}
	dbIdx, _, err := dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database selection: %w", err)
	}
	if dbIdx == 1 {
		cfg.Database.Driver = "pgx"
		dsnPrompt := promptui.Prompt{
			Label:   "PostgreSQL URL",
			Default: "postgres://gravemap@localhost:5432/gravemap",
		}
		if cfg.Database.DSN, err = dsnPrompt.Run(); err != nil {
			return nil, fmt.Errorf("database dsn: %w", err)
		}
	}

	// 3. Photos.
	photosPrompt := promptui.Select{
		Label: "Where are the grave photos stored?",
		Items: []string{
			"fs — a local directory containing images/",
			"s3 — an S3-compatible bucket",
		},
	}
	photosIdx, _, err := photosPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("photos selection: %w", err)
	}
	if photosIdx == 1 {
		cfg.Photos.Backend = PhotosS3
		bucketPrompt := promptui.Prompt{Label: "Bucket name"}
		if cfg.Photos.S3.Bucket, err = bucketPrompt.Run(); err != nil {
			return nil, fmt.Errorf("bucket: %w", err)
		}
		endpointPrompt := promptui.Prompt{
			Label:   "Custom endpoint (leave blank for AWS)",
			Default: "",
		}
		if cfg.Photos.S3.Endpoint, err = endpointPrompt.Run(); err != nil {
			return nil, fmt.Errorf("endpoint: %w", err)
		}
		cfg.Photos.S3.UsePathStyle = cfg.Photos.S3.Endpoint != ""
	} else {
		dirPrompt := promptui.Prompt{
			Label:   "Directory containing images/",
			Default: cfg.Photos.Dir,
		}
		if cfg.Photos.Dir, err = dirPrompt.Run(); err != nil {
			return nil, fmt.Errorf("photo dir: %w", err)
		}
	}

	// 4. Server.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	publicPrompt := promptui.Prompt{
		Label:   "Public URL used in plaque QR codes (optional)",
		Default: "",
	}
	if cfg.PublicURL, err = publicPrompt.Run(); err != nil {
		return nil, fmt.Errorf("public url: %w", err)
	}
	cfg.PublicURL = strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")

	originsPrompt := promptui.Prompt{
		Label:   "Allowed CORS origins (comma-separated)",
		Default: strings.Join(cfg.Server.AllowedOrigins, ","),
	}
	originsStr, err := originsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("allowed origins: %w", err)
	}
	if origins := splitAndTrim(originsStr); len(origins) > 0 {
		cfg.Server.AllowedOrigins = origins
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Run `gravemap import` to take a first snapshot, then `gravemap serve`.")
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
