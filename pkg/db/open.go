package db

import (
	"fmt"

	"yt-digest/pkg/config"
)

// Open constructs the archive backend selected by cfg.Backend. It returns
// (nil, nil) when archiving is disabled. The caller owns Connect/Close.
func Open(cfg config.Archive) (Archive, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "mongo":
		uri := cfg.MongoURI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		return NewClient(uri, cfg.Database, cfg.Collection), nil
	case "postgres":
		return NewPostgresClient(PostgresConfig{DSN: cfg.PostgresDSN}), nil
	case "supabase":
		return NewSupabaseClient(SupabaseConfig{
			SupabaseURL: cfg.SupabaseURL,
			SupabaseKey: cfg.SupabaseKey,
			Password:    cfg.SupabasePassword,
		}), nil
	default:
		return nil, fmt.Errorf("unknown archive backend: %q", cfg.Backend)
	}
}
