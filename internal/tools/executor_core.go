package tools

import (
	"context"
	"fmt"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/adapter"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/graph"
	apperrors "github.com/jayeshbankoti007/movie-graph-rag/pkg/errors"
	"github.com/jayeshbankoti007/movie-graph-rag/pkg/logger"
	"go.uber.org/zap"
)

// ToolResult represents the result of a tool execution. Absence of data is
// reported as a successful empty result with a message, never as an error;
// only genuine failures set Error.
type ToolResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// SemanticSearcher is the vector-index capability the executor consumes.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]int, error)
	Ready() bool
}

// Executor translates tool calls into graph store and vector index
// operations and shapes their results for the orchestrating agent.
type Executor struct {
	store          *graph.Store
	search         SemanticSearcher
	defaultTopK    int
	defaultMaxHops int
	logger         *zap.Logger
}

// NewExecutor creates a new tool executor
func NewExecutor(store *graph.Store, search SemanticSearcher, defaultTopK, defaultMaxHops int) *Executor {
	if defaultTopK <= 0 {
		defaultTopK = 20
	}
	if defaultMaxHops <= 0 {
		defaultMaxHops = graph.DefaultMaxHops
	}
	return &Executor{
		store:          store,
		search:         search,
		defaultTopK:    defaultTopK,
		defaultMaxHops: defaultMaxHops,
		logger:         logger.Get(),
	}
}

// Execute runs a tool call and returns the result. Unexpected panics inside
// an operation are recovered here so the orchestrator always receives a
// well-formed response shape.
func (e *Executor) Execute(ctx context.Context, toolCall adapter.ToolCall) (result *ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			err := apperrors.NewToolFailure(toolCall.Name, fmt.Errorf("%v", r))
			e.logger.Error("Tool panicked", zap.String("tool", toolCall.Name), zap.Any("panic", r))
			result = &ToolResult{Success: false, Error: err.Error()}
		}
	}()

	e.logger.Debug("Executing tool", zap.String("tool", toolCall.Name))

	switch toolCall.Name {
	case ToolQueryGraph:
		return e.executeQueryGraph(toolCall.Arguments)
	case ToolQueryMovieByID:
		return e.executeQueryMovieByID(toolCall.Arguments)
	case ToolNearestPath:
		return e.executeNearestPath(toolCall.Arguments)
	case ToolFilterMoviesByPerson:
		return e.executeFilterMoviesByPerson(toolCall.Arguments)
	case ToolSemanticSearch:
		return e.executeSemanticSearch(ctx, toolCall.Arguments)
	default:
		e.logger.Warn("Unknown tool", zap.String("tool", toolCall.Name))
		return &ToolResult{
			Success: false,
			Error:   apperrors.NewUnknownTool(toolCall.Name).Error(),
		}
	}
}

// ============================================================================
// Argument helpers: tool arguments arrive as loosely-typed JSON maps
// ============================================================================

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg accepts JSON numbers; decoded arguments carry them as float64.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func intSliceArg(args map[string]interface{}, key string) ([]int, bool) {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(raw))
	for _, item := range raw {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		out = append(out, int(f))
	}
	return out, true
}
