package tools

import (
	"context"
	"fmt"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/graph"
	apperrors "github.com/jayeshbankoti007/movie-graph-rag/pkg/errors"
	"go.uber.org/zap"
)

// ============================================================================
// Semantic Search Tool Implementation
// ============================================================================

func (e *Executor) executeSemanticSearch(ctx context.Context, args map[string]interface{}) *ToolResult {
	query := stringArg(args, "query")
	if query == "" {
		return &ToolResult{Success: false, Error: "query is required"}
	}
	topK, ok := intArg(args, "top_k")
	if !ok || topK <= 0 {
		topK = e.defaultTopK
	}

	if !e.search.Ready() {
		// Graph-only capabilities stay usable with no index on disk.
		e.logger.Debug("Semantic search skipped", zap.Error(apperrors.ErrIndexUnavailable))
		return &ToolResult{
			Success: true,
			Data:    []graph.SummaryRecord{},
			Message: "Semantic search index is not available",
		}
	}

	ids, err := e.search.Search(ctx, query, topK)
	if err != nil {
		e.logger.Error("Semantic search failed", zap.Error(err))
		return &ToolResult{Success: false, Error: err.Error()}
	}

	// Join the ranked ids back against the tabular source, keeping rank
	// order. Ids missing from the table are skipped.
	records := make([]graph.SummaryRecord, 0, len(ids))
	for _, id := range ids {
		if rec, found := e.store.SummaryByID(id); found {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return &ToolResult{
			Success: true,
			Data:    records,
			Message: "No results",
		}
	}
	return &ToolResult{
		Success: true,
		Data:    records,
		Message: fmt.Sprintf("Found %d movie(s)", len(records)),
	}
}
