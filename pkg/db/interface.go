package db

import (
	"context"
	"database/sql"
	"errors"

	"yt-digest/pkg/domain"
)

// ErrNotFound is returned when no archived transcript exists for a video.
var ErrNotFound = errors.New("transcript not found in archive")

// Archive persists acquired transcripts so repeat runs can skip
// re-acquisition. All implementations upsert by video ID.
type Archive interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error

	// SaveTranscript stores (or replaces) the transcript for its video ID.
	SaveTranscript(ctx context.Context, transcript *domain.StoredTranscript) error

	// GetTranscript returns the archived transcript for a video ID, or
	// ErrNotFound.
	GetTranscript(ctx context.Context, videoID string) (*domain.StoredTranscript, error)
}

// DBProvider is an interface for database clients that provide access to a sql.DB handle.
// This allows both PostgresClient and SupabaseClient to be used interchangeably.
type DBProvider interface {
	DB() *sql.DB
}
