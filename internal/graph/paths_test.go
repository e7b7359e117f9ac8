package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/ingest"
)

// pathStore wires two movies that share an actor plus an isolated third
// movie, so connectivity and disconnection can both be exercised.
func pathStore(t *testing.T) *Store {
	t.Helper()
	rows := []ingest.MovieRow{
		{
			ID: 1, Title: "First", ReleaseDate: "1999-05-01",
			Genres: `[]`, Keywords: `[]`,
			Cast: `[{"name": "Jane Doe"}]`,
			Crew: `[{"name": "John Roe", "job": "Director"}]`,
		},
		{
			ID: 2, Title: "Second", ReleaseDate: "2004-11-20",
			Genres: `[]`, Keywords: `[]`,
			Cast: `[{"name": "Jane Doe"}]`,
			Crew: `[]`,
		},
		{
			ID: 3, Title: "Island", ReleaseDate: "1977-03-09",
			Genres: `[]`, Keywords: `[]`,
			Cast: `[{"name": "Lone Star"}]`,
			Crew: `[]`,
		},
	}
	store, err := BuildStore(rows)
	require.NoError(t, err)
	return store
}

func TestAllSimplePathsBetweenMovies(t *testing.T) {
	store := pathStore(t)

	paths := store.AllSimplePaths(MovieID(1), MovieID(2), 3)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		assert.Equal(t, MovieID(1), path[0].Node)
		assert.Equal(t, MovieID(2), path[len(path)-1].Node)
		assert.LessOrEqual(t, len(path)-1, 3)

		seen := map[NodeID]bool{}
		for _, pn := range path {
			assert.False(t, seen[pn.Node], "path must not repeat nodes")
			seen[pn.Node] = true
		}
		for i, pn := range path {
			if i < len(path)-1 {
				assert.NotEmpty(t, pn.RelationToNext)
			} else {
				assert.Empty(t, pn.RelationToNext)
			}
		}
	}
}

func TestAllSimplePathsHonorsMaxHops(t *testing.T) {
	store := pathStore(t)

	// 1 -> jane doe -> 2 needs two hops
	assert.Empty(t, store.AllSimplePaths(MovieID(1), MovieID(2), 1))

	two := store.AllSimplePaths(MovieID(1), MovieID(2), 2)
	require.Len(t, two, 1)
	require.Len(t, two[0], 3)
	assert.Equal(t, NameID("jane doe"), two[0][1].Node)
	assert.Equal(t, []string{"actor"}, two[0][1].Roles)
	assert.Equal(t, []Relation{RelMovieHasActor}, two[0][0].RelationToNext)
	assert.Equal(t, []Relation{RelActedInMovies}, two[0][1].RelationToNext)
}

func TestAllSimplePathsSameNode(t *testing.T) {
	store := pathStore(t)

	paths := store.AllSimplePaths(MovieID(1), MovieID(1), 3)
	require.Len(t, paths, 1)
	require.Len(t, paths[0], 1)
	assert.Equal(t, "first", paths[0][0].Title)
}

func TestAllSimplePathsAbsentEndpoint(t *testing.T) {
	store := pathStore(t)

	assert.Empty(t, store.AllSimplePaths(MovieID(999), MovieID(1), 3))
	assert.Empty(t, store.AllSimplePaths(MovieID(1), NameID("nobody"), 3))
}

func TestShortestPath(t *testing.T) {
	store := pathStore(t)

	path, ok := store.ShortestPath(MovieID(1), MovieID(2))
	require.True(t, ok)
	require.Len(t, path, 3)
	assert.Equal(t, MovieID(1), path[0].Node)
	assert.Equal(t, NameID("jane doe"), path[1].Node)
	assert.Equal(t, MovieID(2), path[2].Node)
	assert.Equal(t, "second", path[2].Title)
}

func TestShortestPathSameNode(t *testing.T) {
	store := pathStore(t)

	path, ok := store.ShortestPath(NameID("jane doe"), NameID("jane doe"))
	require.True(t, ok)
	require.Len(t, path, 1)
	assert.Equal(t, LabelPerson, path[0].Label)
}

func TestShortestPathDisconnected(t *testing.T) {
	store := pathStore(t)

	_, ok := store.ShortestPath(MovieID(1), MovieID(3))
	assert.False(t, ok)

	_, ok = store.ShortestPath(MovieID(1), MovieID(999))
	assert.False(t, ok)
}

func TestPathParallelRelationSets(t *testing.T) {
	// one person both acts in and directs the same movie
	store, err := BuildStore([]ingest.MovieRow{{
		ID: 1, Title: "Double Duty", ReleaseDate: "2010-06-18",
		Genres: `[]`, Keywords: `[]`,
		Cast: `[{"name": "Jane Doe"}]`,
		Crew: `[{"name": "Jane Doe", "job": "Director"}]`,
	}})
	require.NoError(t, err)

	path, ok := store.ShortestPath(MovieID(1), NameID("jane doe"))
	require.True(t, ok)
	require.Len(t, path, 2)
	assert.ElementsMatch(t,
		[]Relation{RelMovieHasActor, RelMovieHasDirector},
		path[0].RelationToNext)
}
