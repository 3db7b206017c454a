package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/ziadkadry99/gravemap/internal/catalog"
	"github.com/ziadkadry99/gravemap/internal/config"
	"github.com/ziadkadry99/gravemap/internal/db"
	"github.com/ziadkadry99/gravemap/internal/photos"
	"github.com/ziadkadry99/gravemap/internal/rows"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `gravemap init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openDatabase opens the snapshot database named in the config.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// buildSource returns the live spreadsheet backed by the last imported
// snapshot. Without a spreadsheet URL only the snapshot is used.
func buildSource(cfg *config.Config, database *db.DB) rows.Source {
	snapshot := rows.NewSnapshotStore(database)
	if cfg.Source.URL == "" {
		return snapshot
	}
	return &rows.Fallback{
		Primary:   rows.NewCSVSource(cfg.Source.URL, cfg.Source.Columns),
		Secondary: snapshot,
	}
}

// buildPhotoStore returns the configured photo backend.
func buildPhotoStore(ctx context.Context, cfg *config.Config) (photos.Store, error) {
	switch cfg.Photos.Backend {
	case config.PhotosS3:
		s3cfg := cfg.Photos.S3
		store, err := photos.NewS3Store(ctx, photos.S3Config{
			Bucket:       s3cfg.Bucket,
			Prefix:       s3cfg.Prefix,
			Region:       s3cfg.Region,
			Endpoint:     s3cfg.Endpoint,
			AccessKey:    s3cfg.AccessKey,
			SecretKey:    s3cfg.SecretKey,
			UsePathStyle: s3cfg.UsePathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("creating S3 photo store: %w", err)
		}
		return store, nil
	default:
		return photos.NewFSStore(cfg.Photos.Dir), nil
	}
}

// loadCatalog opens the database and performs the first catalog load. A
// failed load is logged, not returned: the catalog then serves an empty
// store and reports the error in its status.
func loadCatalog(ctx context.Context, cfg *config.Config, observer catalog.Observer) (*catalog.Catalog, *db.DB, error) {
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	cat := catalog.New(buildSource(cfg, database), observer)
	if err := cat.Reload(ctx); err != nil {
		log.Printf("gravemap: initial load failed: %v", err)
		if rows.IsNoSnapshot(err) {
			log.Printf("gravemap: no snapshot stored yet; run `gravemap import` to create one")
		}
	} else if verbose {
		st := cat.Status()
		log.Printf("gravemap: loaded %d persons in %d plots from %s (%d rows skipped)", st.Persons, st.Records, st.Source, st.Skipped)
	}
	return cat, database, nil
}
