package tools

import (
	"fmt"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/graph"
)

// ============================================================================
// Graph Tool Implementations
// ============================================================================

func (e *Executor) executeQueryGraph(args map[string]interface{}) *ToolResult {
	relation := graph.Relation(stringArg(args, "relation"))
	if relation != "" && !relation.Valid() {
		// Arbitrary relation strings would silently match nothing, so the
		// boundary rejects them instead.
		return &ToolResult{
			Success: false,
			Error:   fmt.Sprintf("unknown relation %q; valid relations include MOVIE_HAS_ACTOR, ACTED_IN_MOVIES, DIRECTED_MOVIES, ...", relation),
		}
	}

	// A numeric entity is a movie id; everything else resolves by title
	// first, then as a direct node identifier.
	var results []graph.EntityResult
	if id, ok := intArg(args, "entity"); ok {
		results = e.store.LookupEntityByID(id, relation)
	} else {
		entity := stringArg(args, "entity")
		if entity == "" {
			return &ToolResult{Success: false, Error: "entity is required"}
		}
		results = e.store.LookupEntity(entity, relation)
	}

	if len(results) == 0 {
		return &ToolResult{
			Success: true,
			Data:    results,
			Message: "No matching entity found",
		}
	}
	return &ToolResult{
		Success: true,
		Data:    results,
		Message: fmt.Sprintf("Found %d matching node(s)", len(results)),
	}
}

func (e *Executor) executeQueryMovieByID(args map[string]interface{}) *ToolResult {
	id, ok := intArg(args, "movie_id")
	if !ok {
		return &ToolResult{Success: false, Error: "movie_id is required"}
	}

	attrs, found := e.store.MovieByID(id)
	if !found {
		return &ToolResult{
			Success: true,
			Message: fmt.Sprintf("Movie id %d not found", id),
		}
	}
	return &ToolResult{Success: true, Data: attrs}
}

func (e *Executor) executeNearestPath(args map[string]interface{}) *ToolResult {
	a, ok := entityNodeID(args, "entity1")
	if !ok {
		return &ToolResult{Success: false, Error: "entity1 is required"}
	}
	b, ok := entityNodeID(args, "entity2")
	if !ok {
		return &ToolResult{Success: false, Error: "entity2 is required"}
	}

	maxHops, ok := intArg(args, "max_hops")
	if !ok || maxHops <= 0 {
		maxHops = e.defaultMaxHops
	}
	paths := e.store.AllSimplePaths(a, b, maxHops)
	if len(paths) == 0 {
		return &ToolResult{
			Success: true,
			Data:    paths,
			Message: fmt.Sprintf("No path found between %s and %s", a, b),
		}
	}
	return &ToolResult{
		Success: true,
		Data:    paths,
		Message: fmt.Sprintf("Found %d path(s)", len(paths)),
	}
}

func (e *Executor) executeFilterMoviesByPerson(args map[string]interface{}) *ToolResult {
	person := stringArg(args, "person")
	if person == "" {
		return &ToolResult{Success: false, Error: "person is required"}
	}
	candidates, ok := intSliceArg(args, "movie_ids")
	if !ok {
		return &ToolResult{Success: false, Error: "movie_ids must be an array of integers"}
	}

	filtered := e.store.FilterMoviesByPerson(person, candidates)
	return &ToolResult{
		Success: true,
		Data:    filtered,
		Message: fmt.Sprintf("%d of %d movies are connected to %s", len(filtered), len(candidates), graph.Normalize(person)),
	}
}

// entityNodeID maps a tool argument onto a node identifier: JSON numbers
// address movie nodes, strings address person/genre/date nodes by
// normalized name.
func entityNodeID(args map[string]interface{}, key string) (graph.NodeID, bool) {
	if id, ok := intArg(args, key); ok {
		return graph.MovieID(id), true
	}
	s := stringArg(args, key)
	if s == "" {
		return graph.NodeID{}, false
	}
	return graph.NameID(s), true
}
