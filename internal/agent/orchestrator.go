// Package agent runs the question-answering loop: the model decides which
// graph and search tools to call, the executor runs them, and the results
// feed the next turn until the model produces a final answer.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/adapter"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/constants"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/tools"
	"github.com/jayeshbankoti007/movie-graph-rag/pkg/logger"
	"go.uber.org/zap"
)

var ErrMaxTurns = errors.New("maximum tool turns reached")

// Generator is the model capability the orchestrator consumes.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userMsg string, toolset []adapter.Tool) (*adapter.Response, error)
}

// Orchestrator manages the agent's reasoning and action loop.
type Orchestrator struct {
	llm      Generator
	executor *tools.Executor
	logger   *zap.Logger
}

// NewOrchestrator creates a new agent orchestrator
func NewOrchestrator(llm Generator, executor *tools.Executor) *Orchestrator {
	return &Orchestrator{
		llm:      llm,
		executor: executor,
		logger:   logger.Get(),
	}
}

// AnswerResult is the outcome of one question, with every tool call made
// across the intermediate turns.
type AnswerResult struct {
	Content   string             `json:"content"`
	ToolCalls []adapter.ToolCall `json:"tool_calls,omitempty"`
}

// AnswerQuestion runs the think/act loop for a single question.
func (o *Orchestrator) AnswerQuestion(ctx context.Context, question string) (*AnswerResult, error) {
	return o.runTurn(ctx, question, 0, nil)
}

func (o *Orchestrator) runTurn(ctx context.Context, message string, depth int, priorCalls []adapter.ToolCall) (*AnswerResult, error) {
	if depth >= constants.MaxToolTurns {
		return nil, ErrMaxTurns
	}

	o.logger.Debug("Starting agent turn", zap.Int("depth", depth))

	response, err := o.llm.Generate(ctx, buildSystemPrompt(), message, tools.GetAllTools())
	if err != nil {
		return nil, fmt.Errorf("failed to generate response: %w", err)
	}

	calls := append(priorCalls, response.ToolCalls...)
	if len(response.ToolCalls) == 0 {
		return &AnswerResult{Content: response.Content, ToolCalls: calls}, nil
	}

	var toolResults []string
	for _, toolCall := range response.ToolCalls {
		result := o.executor.Execute(ctx, toolCall)
		if result.Success {
			o.logger.Info("Tool executed",
				zap.String("tool", toolCall.Name),
				zap.String("message", result.Message),
			)
			toolResults = append(toolResults, fmt.Sprintf("[%s]: %s", toolCall.Name, renderResult(result)))
		} else {
			o.logger.Warn("Tool execution failed",
				zap.String("tool", toolCall.Name),
				zap.String("error", result.Error),
			)
			toolResults = append(toolResults, fmt.Sprintf("[%s] ERROR: %s", toolCall.Name, result.Error))
		}
	}

	// The model answered alongside its tool calls; no further turn needed.
	if response.Content != "" {
		return &AnswerResult{Content: response.Content, ToolCalls: calls}, nil
	}

	contextMessage := fmt.Sprintf(
		"%s\n\n[Tool Results]:\n%s\n\nNow answer the question using only these results.",
		message, strings.Join(toolResults, "\n"))
	result, err := o.runTurn(ctx, contextMessage, depth+1, calls)
	if errors.Is(err, ErrMaxTurns) {
		// Surface what the tools found rather than failing the question.
		return &AnswerResult{
			Content:   strings.Join(toolResults, "\n"),
			ToolCalls: calls,
		}, nil
	}
	return result, err
}

// renderResult serializes a tool result for the next model turn, message
// plus data, truncated so hub nodes cannot blow up the context.
func renderResult(result *tools.ToolResult) string {
	out := result.Message
	if result.Data != nil {
		if data, err := json.Marshal(result.Data); err == nil {
			if out != "" {
				out += " "
			}
			out += string(data)
		}
	}
	if len(out) > constants.MaxToolResultChars {
		cut := constants.MaxToolResultChars
		// Overviews are not ASCII-only; back off to a rune boundary.
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut] + "...(truncated)"
	}
	return out
}
