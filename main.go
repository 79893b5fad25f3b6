package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"yt-digest/pkg/config"
	"yt-digest/pkg/db"
	"yt-digest/pkg/digestservice"
	"yt-digest/pkg/strategy"
	"yt-digest/pkg/summarizer"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to the YAML config file (optional)")
		language   = flag.String("language", "", "Preferred transcript language code (overrides config)")
		output     = flag.String("output", "", "Markdown output path (default <videoID>_summary.md)")
		noSummary  = flag.Bool("no-summary", false, "Acquire the transcript only, skip summarization and Markdown output")

		archiveBackend = flag.String("archive", "", "Archive backend: mongo, postgres or supabase (overrides config)")
		mongoURI       = flag.String("mongo-uri", "", "MongoDB connection string")
		dbName         = flag.String("db", "", "Archive database name (mongo)")
		collection     = flag.String("collection", "", "Archive collection name (mongo)")
		postgresDSN    = flag.String("postgres-dsn", "", "Postgres connection string")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: yt-digest [flags] <video URL>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	videoURL := flag.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *language != "" {
		cfg.Language = *language
	}
	if *archiveBackend != "" {
		cfg.Archive.Backend = *archiveBackend
	}
	if *mongoURI != "" {
		cfg.Archive.MongoURI = *mongoURI
	}
	if *dbName != "" {
		cfg.Archive.Database = *dbName
	}
	if *collection != "" {
		cfg.Archive.Collection = *collection
	}
	if *postgresDSN != "" {
		cfg.Archive.PostgresDSN = *postgresDSN
	}

	ctx := context.Background()

	archive, err := db.Open(cfg.Archive)
	if err != nil {
		log.Fatalf("Failed to configure archive: %v", err)
	}
	if archive != nil {
		if err := archive.Connect(ctx); err != nil {
			log.Fatalf("Failed to connect to archive: %v", err)
		}
		defer archive.Close(ctx)
	}

	var summ digestservice.Summarizer
	if !*noSummary {
		if cfg.OpenRouter.APIKey == "" {
			log.Printf("Warning: OPENROUTER_API_KEY not set. A fallback extractive summary will be used.")
		}
		summ = summarizer.New(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model)
	}

	service := digestservice.NewService(digestservice.Config{
		Chain:      strategy.DefaultChain(),
		Summarizer: summ,
		Archive:    archive,
	})

	result, err := service.Digest(ctx, videoURL, cfg.Language, *output)
	if err != nil {
		log.Fatalf("Failed to process %s: %v", videoURL, err)
	}

	log.Printf("Transcript acquired via %s strategy (%d chars)", result.Strategy, len(result.Transcript))
	if result.MarkdownPath != "" {
		fmt.Println(result.MarkdownPath)
	}
}
