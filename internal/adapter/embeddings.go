package adapter

import (
	"context"
	"fmt"

	"github.com/jayeshbankoti007/movie-graph-rag/pkg/logger"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// EmbeddingAdapter wraps the embeddings endpoint of an OpenAI-compatible
// service. It satisfies the vector package's Embedder interface.
type EmbeddingAdapter struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewEmbeddingAdapter(baseURL, apiKey, model string) *EmbeddingAdapter {
	if apiKey == "" {
		apiKey = "dummy-key"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL + "/v1"

	return &EmbeddingAdapter{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger.Get(),
	}
}

// EmbedTexts returns one embedding per input text, in input order.
func (a *EmbeddingAdapter) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := a.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: openai.EmbeddingModel(a.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d texts", len(resp.Data), len(texts))
	}

	embeddings := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(embeddings) {
			return nil, fmt.Errorf("embedding service returned out-of-range index %d", item.Index)
		}
		embeddings[item.Index] = item.Embedding
	}

	a.logger.Debug("Embedded texts",
		zap.Int("count", len(texts)),
		zap.String("model", a.model),
	)
	return embeddings, nil
}
