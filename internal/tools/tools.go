package tools

import (
	"github.com/jayeshbankoti007/movie-graph-rag/internal/adapter"
)

// Tool names - Graph Tools
const (
	ToolQueryGraph           = "query_graph"
	ToolQueryMovieByID       = "query_movie_by_id"
	ToolNearestPath          = "nearest_path"
	ToolFilterMoviesByPerson = "filter_movies_by_person"
)

// Tool names - Search Tools
const (
	ToolSemanticSearch = "semantic_search"
)

// GetGraphTools returns the knowledge-graph lookup tools
func GetGraphTools() []adapter.Tool {
	return []adapter.Tool{
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name:        ToolQueryGraph,
				Description: "Find entity information and relationships in the movie graph. Entity may be a movie id, movie title, person name, genre, or release year. Returns entity details and connected nodes with relationship types. Use relation to get specific connections like 'ACTED_IN_MOVIES' or 'DIRECTED_MOVIES'. Category labels like 'directors' match nothing; always use specific entity names.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"entity": map[string]interface{}{
							"type":        "string",
							"description": "Entity to query: movie title, actor, genre, director, writer, or release year",
						},
						"relation": map[string]interface{}{
							"type":        "string",
							"description": "Optional relation filter to only return neighbors with this relation type",
						},
					},
					"required": []string{"entity"},
				},
			},
		},
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name:        ToolQueryMovieByID,
				Description: "Get complete movie metadata by movie id from the knowledge graph. Use when another tool already produced the id.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"movie_id": map[string]interface{}{
							"type":        "integer",
							"description": "Movie id to query",
						},
					},
					"required": []string{"movie_id"},
				},
			},
		},
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name:        ToolNearestPath,
				Description: "Find connection paths between two entities in the movie graph, showing how they are linked through collaborations, genres, and release years.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"entity1": map[string]interface{}{
							"type":        "string",
							"description": "First entity (person name, genre, year, or movie id)",
						},
						"entity2": map[string]interface{}{
							"type":        "string",
							"description": "Second entity (person name, genre, year, or movie id)",
						},
						"max_hops": map[string]interface{}{
							"type":        "integer",
							"description": "Maximum path length in edges (default 3; keep small for prolific people)",
						},
					},
					"required": []string{"entity1", "entity2"},
				},
			},
		},
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name:        ToolFilterMoviesByPerson,
				Description: "Filter a list of movie ids to only those connected to a specific person. Much faster than checking each movie individually.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"person": map[string]interface{}{
							"type":        "string",
							"description": "Person to filter by (actor, director, producer, or writer)",
						},
						"movie_ids": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "integer"},
							"description": "Movie ids to filter",
						},
					},
					"required": []string{"person", "movie_ids"},
				},
			},
		},
	}
}

// GetSearchTools returns the semantic search tools
func GetSearchTools() []adapter.Tool {
	return []adapter.Tool{
		{
			Type: "function",
			Function: adapter.FunctionDefinition{
				Name:        ToolSemanticSearch,
				Description: "Semantic search for movies by plot, theme, or content description. Returns matching movies with metadata, nearest first.",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"query": map[string]interface{}{
							"type":        "string",
							"description": "Search query describing plot elements, themes, or movie characteristics",
						},
						"top_k": map[string]interface{}{
							"type":        "integer",
							"description": "Number of movies to return (default 20)",
						},
					},
					"required": []string{"query"},
				},
			},
		},
	}
}

// GetAllTools returns every tool exposed to the orchestrating agent
func GetAllTools() []adapter.Tool {
	tools := GetGraphTools()
	tools = append(tools, GetSearchTools()...)
	return tools
}
