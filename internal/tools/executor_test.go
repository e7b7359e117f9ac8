package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/adapter"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/graph"
	"github.com/jayeshbankoti007/movie-graph-rag/internal/ingest"
)

type fakeSearcher struct {
	ready bool
	ids   []int
	err   error
	topK  int
}

func (f *fakeSearcher) Ready() bool { return f.ready }

func (f *fakeSearcher) Search(_ context.Context, _ string, topK int) ([]int, error) {
	f.topK = topK
	return f.ids, f.err
}

func newTestExecutor(t *testing.T, search SemanticSearcher) *Executor {
	t.Helper()
	return NewExecutor(newTestStore(t), search, 5, 0)
}

func newTestStore(t *testing.T) *graph.Store {
	t.Helper()
	rows := []ingest.MovieRow{
		{
			ID: 1, Title: "Heist Night", ReleaseDate: "1999-05-01",
			Genres: `[{"name": "Action"}]`,
			Cast:   `[{"name": "Jane Doe"}]`,
			Crew:   `[{"name": "John Roe", "job": "Director"}]`,
			Keywords: `[]`,
			Overview: "One last job.", OriginalTitle: "Heist Night", OriginalLanguage: "en",
		},
		{
			ID: 2, Title: "Quiet Days", ReleaseDate: "2004-11-20",
			Genres: `[]`, Cast: `[{"name": "Ann Poe"}]`, Crew: `[]`, Keywords: `[]`,
			Overview: "A calm story.", OriginalTitle: "Quiet Days", OriginalLanguage: "en",
		},
	}
	store, err := graph.BuildStore(rows)
	require.NoError(t, err)
	return store
}

func call(name string, args map[string]interface{}) adapter.ToolCall {
	return adapter.ToolCall{ID: "t1", Name: name, Arguments: args}
}

func TestExecuteQueryGraphByTitle(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolQueryGraph, map[string]interface{}{
		"entity": "Heist Night",
	}))
	require.True(t, result.Success)
	results := result.Data.([]graph.EntityResult)
	require.Len(t, results, 1)
	assert.Equal(t, graph.MovieID(1), results[0].Node)
	assert.Equal(t, "Found 1 matching node(s)", result.Message)
}

func TestExecuteQueryGraphNumericEntityIsMovieID(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolQueryGraph, map[string]interface{}{
		"entity": float64(2),
	}))
	require.True(t, result.Success)
	results := result.Data.([]graph.EntityResult)
	require.Len(t, results, 1)
	assert.Equal(t, graph.MovieID(2), results[0].Node)
}

func TestExecuteQueryGraphYearString(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	// "1999" as a string names the year node, not movie id 1999
	result := e.Execute(context.Background(), call(ToolQueryGraph, map[string]interface{}{
		"entity": "1999",
	}))
	require.True(t, result.Success)
	results := result.Data.([]graph.EntityResult)
	require.Len(t, results, 1)
	assert.Equal(t, graph.LabelDate, results[0].Label)
}

func TestExecuteQueryGraphRelationFilter(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolQueryGraph, map[string]interface{}{
		"entity":   "jane doe",
		"relation": "ACTED_IN_MOVIES",
	}))
	require.True(t, result.Success)
	results := result.Data.([]graph.EntityResult)
	require.Len(t, results, 1)
	require.Len(t, results[0].Neighbors, 1)
	assert.Equal(t, graph.RelActedInMovies, results[0].Neighbors[0].Relation)
}

func TestExecuteQueryGraphRejectsUnknownRelation(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolQueryGraph, map[string]interface{}{
		"entity":   "jane doe",
		"relation": "MOVIE_HAS_SOUNDTRACK",
	}))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unknown relation")
}

func TestExecuteQueryGraphUnknownEntity(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolQueryGraph, map[string]interface{}{
		"entity": "nobody at all",
	}))
	require.True(t, result.Success)
	assert.Empty(t, result.Data)
	assert.Equal(t, "No matching entity found", result.Message)
}

func TestExecuteQueryGraphMissingEntity(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolQueryGraph, map[string]interface{}{}))
	assert.False(t, result.Success)
	assert.Equal(t, "entity is required", result.Error)
}

func TestExecuteQueryMovieByID(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolQueryMovieByID, map[string]interface{}{
		"movie_id": float64(1),
	}))
	require.True(t, result.Success)
	attrs := result.Data.(map[string]any)
	assert.Equal(t, "heist night", attrs["title"])

	result = e.Execute(context.Background(), call(ToolQueryMovieByID, map[string]interface{}{
		"movie_id": float64(999),
	}))
	require.True(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Equal(t, "Movie id 999 not found", result.Message)
}

func TestExecuteNearestPath(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolNearestPath, map[string]interface{}{
		"entity1": "jane doe",
		"entity2": "john roe",
	}))
	require.True(t, result.Success)
	paths := result.Data.([]graph.Path)
	require.NotEmpty(t, paths)
	assert.Equal(t, graph.NameID("jane doe"), paths[0][0].Node)
}

func TestExecuteNearestPathNoRoute(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolNearestPath, map[string]interface{}{
		"entity1": "jane doe",
		"entity2": "ann poe",
		"max_hops": float64(1),
	}))
	require.True(t, result.Success)
	assert.Empty(t, result.Data)
	assert.Equal(t, "No path found between jane doe and ann poe", result.Message)
}

func TestExecuteNearestPathUsesConfiguredDefaultHops(t *testing.T) {
	// jane doe reaches the action genre only through two hops, so an
	// executor configured with a one-hop default must find nothing when
	// the call omits max_hops.
	store := newTestStore(t)
	oneHop := NewExecutor(store, &fakeSearcher{}, 5, 1)
	twoHop := NewExecutor(store, &fakeSearcher{}, 5, 2)
	args := map[string]interface{}{"entity1": "jane doe", "entity2": "action"}

	result := oneHop.Execute(context.Background(), call(ToolNearestPath, args))
	require.True(t, result.Success)
	assert.Empty(t, result.Data)

	result = twoHop.Execute(context.Background(), call(ToolNearestPath, args))
	require.True(t, result.Success)
	assert.NotEmpty(t, result.Data)

	// An explicit max_hops still overrides the configured default.
	result = oneHop.Execute(context.Background(), call(ToolNearestPath, map[string]interface{}{
		"entity1": "jane doe", "entity2": "action", "max_hops": float64(2),
	}))
	require.True(t, result.Success)
	assert.NotEmpty(t, result.Data)
}

func TestExecuteFilterMoviesByPerson(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolFilterMoviesByPerson, map[string]interface{}{
		"person":    "Jane Doe",
		"movie_ids": []interface{}{float64(2), float64(1)},
	}))
	require.True(t, result.Success)
	assert.Equal(t, []int{1}, result.Data)
	assert.Equal(t, "1 of 2 movies are connected to jane doe", result.Message)
}

func TestExecuteFilterMoviesByPersonBadArgs(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call(ToolFilterMoviesByPerson, map[string]interface{}{
		"person":    "Jane Doe",
		"movie_ids": "not a list",
	}))
	assert.False(t, result.Success)
	assert.Equal(t, "movie_ids must be an array of integers", result.Error)
}

func TestExecuteSemanticSearchJoinsBack(t *testing.T) {
	search := &fakeSearcher{ready: true, ids: []int{2, 999, 1}}
	e := newTestExecutor(t, search)

	result := e.Execute(context.Background(), call(ToolSemanticSearch, map[string]interface{}{
		"query": "calm stories",
	}))
	require.True(t, result.Success)
	assert.Equal(t, 5, search.topK) // executor default

	records := result.Data.([]graph.SummaryRecord)
	// rank order kept, unknown id 999 skipped
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].ID)
	assert.Equal(t, "A calm story.", records[0].Overview)
	assert.Equal(t, 1, records[1].ID)
}

func TestExecuteSemanticSearchExplicitTopK(t *testing.T) {
	search := &fakeSearcher{ready: true, ids: []int{1}}
	e := newTestExecutor(t, search)

	result := e.Execute(context.Background(), call(ToolSemanticSearch, map[string]interface{}{
		"query": "heist",
		"top_k": float64(3),
	}))
	require.True(t, result.Success)
	assert.Equal(t, 3, search.topK)
}

func TestExecuteSemanticSearchUnavailableIndex(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{ready: false})

	result := e.Execute(context.Background(), call(ToolSemanticSearch, map[string]interface{}{
		"query": "anything",
	}))
	require.True(t, result.Success)
	assert.Empty(t, result.Data)
	assert.Equal(t, "Semantic search index is not available", result.Message)
}

func TestExecuteSemanticSearchError(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{ready: true, err: errors.New("embedding backend down")})

	result := e.Execute(context.Background(), call(ToolSemanticSearch, map[string]interface{}{
		"query": "anything",
	}))
	assert.False(t, result.Success)
	assert.Equal(t, "embedding backend down", result.Error)
}

func TestExecuteSemanticSearchMissingQuery(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{ready: true})

	result := e.Execute(context.Background(), call(ToolSemanticSearch, map[string]interface{}{}))
	assert.False(t, result.Success)
	assert.Equal(t, "query is required", result.Error)
}

func TestExecuteUnknownTool(t *testing.T) {
	e := newTestExecutor(t, &fakeSearcher{})

	result := e.Execute(context.Background(), call("time_travel", nil))
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unknown tool: time_travel")
}

func TestGetAllToolsCoversEveryConstant(t *testing.T) {
	names := map[string]bool{}
	for _, tool := range GetAllTools() {
		assert.Equal(t, "function", tool.Type)
		names[tool.Function.Name] = true
	}
	for _, want := range []string{
		ToolQueryGraph, ToolQueryMovieByID, ToolNearestPath,
		ToolFilterMoviesByPerson, ToolSemanticSearch,
	} {
		assert.True(t, names[want], want)
	}
	assert.Len(t, names, 5)
}
