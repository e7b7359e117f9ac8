package vector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jayeshbankoti007/movie-graph-rag/pkg/logger"
	"go.uber.org/zap"
)

const embedBatchSize = 64

// Embedder produces fixed-dimension normalized embeddings for a batch of
// texts. The embedding model itself is external; this is its interface.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Document is one corpus entry keyed by movie id.
type Document struct {
	ID   int
	Text string
}

// Searcher wraps the flat index with the embedding client and the artifact
// pair on disk, both keyed by the embedding model name.
type Searcher struct {
	modelName string // short model name, path component after the last "/"
	dir       string
	embedder  Embedder
	index     *Index
	logger    *zap.Logger
}

func NewSearcher(model, dir string, embedder Embedder) *Searcher {
	short := model
	if i := strings.LastIndexByte(model, '/'); i >= 0 {
		short = model[i+1:]
	}
	return &Searcher{
		modelName: short,
		dir:       dir,
		embedder:  embedder,
		index:     NewIndex(),
		logger:    logger.Get(),
	}
}

// IndexPath is the vector artifact path for the configured model.
func (s *Searcher) IndexPath() string {
	return filepath.Join(s.dir, s.modelName+"_index.bin")
}

// MappingPath is the id-mapping artifact path for the configured model.
func (s *Searcher) MappingPath() string {
	return filepath.Join(s.dir, s.modelName+"_mapping.bin")
}

// Ready reports whether the index holds any vectors.
func (s *Searcher) Ready() bool {
	return s.index.Count() > 0
}

// Count returns the number of indexed movies.
func (s *Searcher) Count() int {
	return s.index.Count()
}

// Build embeds the corpus in batches and persists both artifacts,
// overwriting any prior index for this model.
func (s *Searcher) Build(ctx context.Context, docs []Document) error {
	index := NewIndex()
	for start := 0; start < len(docs); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, doc := range batch {
			texts[i] = s.framePassage(doc.Text)
		}
		embeddings, err := s.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch at %d: %w", start, err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(embeddings), len(batch))
		}
		for i, doc := range batch {
			if err := index.Add(doc.ID, embeddings[i]); err != nil {
				return err
			}
		}
		s.logger.Debug("Embedded batch",
			zap.Int("done", end),
			zap.Int("total", len(docs)),
		)
	}

	s.index = index
	if err := s.save(); err != nil {
		return err
	}
	s.logger.Info("Vector index built",
		zap.Int("vectors", index.Count()),
		zap.Int("dimension", index.Dimension()),
	)
	return nil
}

func (s *Searcher) save() error {
	indexFile, err := os.Create(s.IndexPath())
	if err != nil {
		return fmt.Errorf("failed to create index artifact: %w", err)
	}
	defer indexFile.Close()
	if err := s.index.SaveVectors(indexFile); err != nil {
		return fmt.Errorf("failed to write index artifact: %w", err)
	}

	mappingFile, err := os.Create(s.MappingPath())
	if err != nil {
		return fmt.Errorf("failed to create mapping artifact: %w", err)
	}
	defer mappingFile.Close()
	if err := s.index.SaveMapping(mappingFile); err != nil {
		return fmt.Errorf("failed to write mapping artifact: %w", err)
	}
	return nil
}

// Load reads the persisted artifacts. A missing or unreadable artifact is
// not fatal: the index stays empty, search degrades to empty results, and
// the condition is logged so the graph-only capabilities remain usable.
func (s *Searcher) Load() {
	index := NewIndex()

	indexFile, err := os.Open(s.IndexPath())
	if err != nil {
		s.logger.Warn("Vector index artifact unavailable, semantic search disabled",
			zap.String("path", s.IndexPath()),
			zap.Error(err),
		)
		return
	}
	defer indexFile.Close()

	mappingFile, err := os.Open(s.MappingPath())
	if err != nil {
		s.logger.Warn("Id mapping artifact unavailable, semantic search disabled",
			zap.String("path", s.MappingPath()),
			zap.Error(err),
		)
		return
	}
	defer mappingFile.Close()

	if err := index.LoadVectors(indexFile); err != nil {
		s.logger.Warn("Failed to load vector artifact, semantic search disabled", zap.Error(err))
		return
	}
	if err := index.LoadMapping(mappingFile); err != nil {
		s.logger.Warn("Failed to load mapping artifact, semantic search disabled", zap.Error(err))
		return
	}

	s.index = index
	s.logger.Info("Vector index loaded",
		zap.Int("vectors", index.Count()),
		zap.Int("dimension", index.Dimension()),
	)
}

// Search embeds the query with query-side framing and returns up to topK
// movie ids, nearest first. An unbuilt index returns an empty list.
func (s *Searcher) Search(ctx context.Context, query string, topK int) ([]int, error) {
	if !s.Ready() {
		return []int{}, nil
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, []string{s.frameQuery(query)})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(embeddings))
	}

	hits := s.index.Search(embeddings[0], topK)
	ids := make([]int, len(hits))
	for i, hit := range hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

// e5-family models expect asymmetric framing: "passage: " on the corpus
// side and "query: " on the query side.
func (s *Searcher) asymmetric() bool {
	return strings.Contains(s.modelName, "e5")
}

func (s *Searcher) framePassage(text string) string {
	if s.asymmetric() {
		return "passage: " + strings.TrimSpace(text)
	}
	return text
}

func (s *Searcher) frameQuery(text string) string {
	if s.asymmetric() {
		return "query: " + text
	}
	return text
}
