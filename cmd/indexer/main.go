// Command indexer builds the vector index artifacts from the joined movie
// table: it embeds every overview through the configured embedding service
// and writes the index/mapping pair keyed by the model name.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/adapter"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/ingest"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/vector"
	"github.com/jayeshbankoti007/movie-graph-rag/pkg/config"
	"github.com/jayeshbankoti007/movie-graph-rag/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	if err := logger.Init(os.Getenv("ENV")); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	rows, err := ingest.Load(ingest.Sources{
		MoviesPath:   cfg.MoviesCSVPath,
		CreditsPath:  cfg.CreditsCSVPath,
		KeywordsPath: cfg.KeywordsCSVPath,
	})
	if err != nil {
		log.Fatal("Failed to load tabular sources", zap.Error(err))
	}

	docs := make([]vector.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, vector.Document{ID: row.ID, Text: row.Overview})
	}

	embedder := adapter.NewEmbeddingAdapter(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel)
	searcher := vector.NewSearcher(cfg.EmbeddingModel, cfg.IndexDir, embedder)

	log.Info("Building vector index",
		zap.Int("movies", len(docs)),
		zap.String("model", cfg.EmbeddingModel),
	)
	start := time.Now()
	if err := searcher.Build(context.Background(), docs); err != nil {
		log.Fatal("Failed to build vector index", zap.Error(err))
	}
	log.Info("Index artifacts written",
		zap.String("index", searcher.IndexPath()),
		zap.String("mapping", searcher.MappingPath()),
		zap.Duration("elapsed", time.Since(start)),
	)
}
