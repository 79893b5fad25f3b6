package main

import (
	"context"
	"flag"
	"log"
	"time"

	"yt-digest/pkg/config"
	"yt-digest/pkg/db"
	"yt-digest/pkg/digestservice"
	"yt-digest/pkg/feed"
	"yt-digest/pkg/strategy"
	"yt-digest/pkg/summarizer"
)

func main() {
	var (
		channelID = flag.String("channel", "", "YouTube channel ID to process")
		feedURL   = flag.String("feed", "", "Explicit feed URL (overrides -channel)")
		max       = flag.Int("max", 10, "Max videos to process (<=0 means no limit)")

		configPath = flag.String("config", "config.yaml", "Path to the YAML config file (optional)")
		language   = flag.String("language", "", "Preferred transcript language code (overrides config)")

		archiveBackend = flag.String("archive", "", "Archive backend: mongo, postgres or supabase (overrides config)")
		mongoURI       = flag.String("mongo-uri", "", "MongoDB connection string")
	)
	flag.Parse()

	url := *feedURL
	if url == "" {
		if *channelID == "" {
			log.Fatal("Either -channel or -feed is required")
		}
		url = feed.ChannelFeedURL(*channelID)
	}

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

	service := digestservice.NewService(digestservice.Config{
		Chain:      strategy.DefaultChain(),
		Summarizer: summarizer.New(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model),
		Archive:    archive,
	})

	start := time.Now()
	log.Printf("Processing channel feed: %s (max=%d)", url, *max)
	processed, err := service.DigestFeed(ctx, url, cfg.Language, *max)
	if err != nil {
		log.Fatalf("Feed processing failed: %v", err)
	}
	log.Printf("Done. Processed %d videos in %s", processed, time.Since(start))
}
