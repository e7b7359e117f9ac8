package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/adapter"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/constants"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/graph"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/ingest"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/tools"
)

type mockGenerator struct {
	response     *adapter.Response
	err          error
	generateFunc func(ctx context.Context, systemPrompt, userMsg string, toolset []adapter.Tool) (*adapter.Response, error)
}

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt, userMsg string, toolset []adapter.Tool) (*adapter.Response, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, systemPrompt, userMsg, toolset)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

type stubSearcher struct{}

func (stubSearcher) Ready() bool { return false }

func (stubSearcher) Search(context.Context, string, int) ([]int, error) {
	return []int{}, nil
}

func testExecutor(t *testing.T) *tools.Executor {
	t.Helper()
	store, err := graph.BuildStore([]ingest.MovieRow{{
		ID: 1, Title: "Heist Night", ReleaseDate: "1999-05-01",
		Genres: `[]`, Keywords: `[]`,
		Cast: `[{"name": "Jane Doe"}]`,
		Crew: `[]`,
	}})
	require.NoError(t, err)
	return tools.NewExecutor(store, stubSearcher{}, 5, 3)
}

func TestAnswerQuestionContentResponse(t *testing.T) {
	llm := &mockGenerator{response: &adapter.Response{Content: "Jane Doe starred in it."}}
	orch := NewOrchestrator(llm, testExecutor(t))

	result, err := orch.AnswerQuestion(context.Background(), "Who starred in Heist Night?")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe starred in it.", result.Content)
	assert.Empty(t, result.ToolCalls)
}

func TestAnswerQuestionRunsToolsThenAnswers(t *testing.T) {
	callCount := 0
	llm := &mockGenerator{
		generateFunc: func(_ context.Context, _, userMsg string, _ []adapter.Tool) (*adapter.Response, error) {
			callCount++
			if callCount == 1 {
				return &adapter.Response{ToolCalls: []adapter.ToolCall{{
					ID:        "call-1",
					Name:      tools.ToolQueryGraph,
					Arguments: map[string]interface{}{"entity": "Heist Night"},
				}}}, nil
			}
			// The second turn must carry the tool results forward.
			assert.Contains(t, userMsg, "[Tool Results]:")
			assert.Contains(t, userMsg, tools.ToolQueryGraph)
			return &adapter.Response{Content: "Heist Night stars Jane Doe."}, nil
		},
	}
	orch := NewOrchestrator(llm, testExecutor(t))

	result, err := orch.AnswerQuestion(context.Background(), "Who starred in Heist Night?")
	require.NoError(t, err)
	assert.Equal(t, 2, callCount)
	assert.Equal(t, "Heist Night stars Jane Doe.", result.Content)
	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, tools.ToolQueryGraph, result.ToolCalls[0].Name)
}

func TestAnswerQuestionKeepsContentBesideToolCalls(t *testing.T) {
	llm := &mockGenerator{response: &adapter.Response{
		Content: "Already know the answer.",
		ToolCalls: []adapter.ToolCall{{
			ID:        "call-1",
			Name:      tools.ToolQueryGraph,
			Arguments: map[string]interface{}{"entity": "Heist Night"},
		}},
	}}
	orch := NewOrchestrator(llm, testExecutor(t))

	result, err := orch.AnswerQuestion(context.Background(), "Who starred in Heist Night?")
	require.NoError(t, err)
	assert.Equal(t, "Already know the answer.", result.Content)
	assert.Len(t, result.ToolCalls, 1)
}

func TestAnswerQuestionMaxTurnsFallsBackToToolResults(t *testing.T) {
	// The model keeps calling tools without ever answering.
	llm := &mockGenerator{response: &adapter.Response{
		ToolCalls: []adapter.ToolCall{{
			ID:        "call-1",
			Name:      tools.ToolQueryGraph,
			Arguments: map[string]interface{}{"entity": "Heist Night"},
		}},
	}}
	orch := NewOrchestrator(llm, testExecutor(t))

	result, err := orch.AnswerQuestion(context.Background(), "Who starred in Heist Night?")
	require.NoError(t, err)
	assert.Contains(t, result.Content, tools.ToolQueryGraph)
}

func TestRenderResultTruncatesOnRuneBoundary(t *testing.T) {
	// The second byte of "é" sits exactly on the truncation limit.
	long := strings.Repeat("a", constants.MaxToolResultChars-1) + "étoiles"
	out := renderResult(&tools.ToolResult{Message: long})

	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "...(truncated)"))
	assert.LessOrEqual(t, len(out), constants.MaxToolResultChars+len("...(truncated)"))
}

func TestRenderResultShortMessageUntouched(t *testing.T) {
	out := renderResult(&tools.ToolResult{Message: "two movies", Data: []int{1, 2}})
	assert.Equal(t, "two movies [1,2]", out)
}

func TestAnswerQuestionGeneratorError(t *testing.T) {
	llm := &mockGenerator{err: errors.New("backend unavailable")}
	orch := NewOrchestrator(llm, testExecutor(t))

	_, err := orch.AnswerQuestion(context.Background(), "anything")
	assert.Error(t, err)
}

func TestAnswerQuestionFailedToolReportedToModel(t *testing.T) {
	callCount := 0
	llm := &mockGenerator{
		generateFunc: func(_ context.Context, _, userMsg string, _ []adapter.Tool) (*adapter.Response, error) {
			callCount++
			if callCount == 1 {
				return &adapter.Response{ToolCalls: []adapter.ToolCall{{
					ID:        "call-1",
					Name:      "no_such_tool",
					Arguments: map[string]interface{}{},
				}}}, nil
			}
			assert.Contains(t, userMsg, "ERROR")
			return &adapter.Response{Content: "That capability does not exist."}, nil
		},
	}
	orch := NewOrchestrator(llm, testExecutor(t))

	result, err := orch.AnswerQuestion(context.Background(), "do something impossible")
	require.NoError(t, err)
	assert.Equal(t, "That capability does not exist.", result.Content)
}
