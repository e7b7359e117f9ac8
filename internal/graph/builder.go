package graph

import (
	"strings"

	"github.com/jayeshbankoti007/movie-graph-rag/internal/ingest"
	apperrors "github.com/jayeshbankoti007/movie-graph-rag/pkg/errors"
	"github.com/jayeshbankoti007/movie-graph-rag/pkg/logger"
	"go.uber.org/zap"
)

// BuildStore constructs the store from the joined table in one sequential
// pass. Construction is deterministic for identical input; the graph is
// read-only once this returns. A malformed nested column fails the whole
// build: it signals upstream data corruption, and queries assume every
// movie has consistent cast/crew edges.
func BuildStore(rows []ingest.MovieRow) (*Store, error) {
	log := logger.Get()
	g := NewGraph()

	for i := range rows {
		if err := addMovieRow(g, &rows[i]); err != nil {
			return nil, err
		}
	}

	store := newStore(g, rows)
	log.Info("Graph built",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("movies", len(rows)),
	)
	return store, nil
}

// addMovieRow emits the nodes and relation edge pairs for one movie. The
// step order matters only for attribute accumulation, not for final graph
// shape.
func addMovieRow(g *Graph, row *ingest.MovieRow) error {
	keywords, err := ingest.ParseNameList(row.Keywords)
	if err != nil {
		return apperrors.NewMalformedRow(row.ID, "keywords", err)
	}
	genres, err := ingest.ParseNameList(row.Genres)
	if err != nil {
		return apperrors.NewMalformedRow(row.ID, "genres", err)
	}
	cast, err := ingest.ParseNameList(row.Cast)
	if err != nil {
		return apperrors.NewMalformedRow(row.ID, "cast", err)
	}
	crew, err := ingest.ParseCrewList(row.Crew)
	if err != nil {
		return apperrors.NewMalformedRow(row.ID, "crew", err)
	}

	keywordNames := make([]string, 0, len(keywords))
	for _, k := range keywords {
		keywordNames = append(keywordNames, k.Name)
	}

	movieID := g.PutMovie(row.ID, MovieAttrs{
		Title:       Normalize(row.Title),
		Popularity:  row.Popularity,
		VoteAverage: row.VoteAverage,
		Overview:    row.Overview,
		LaunchYear:  launchYear(row.ReleaseDate),
		Keywords:    keywordNames,
	})

	yearID := g.EnsureDate(launchYear(row.ReleaseDate))
	g.AddEdgePair(movieID, yearID, RelMovieReleasedOn)

	for _, genre := range genres {
		genreID := g.EnsureGenre(genre.Name)
		g.AddEdgePair(movieID, genreID, RelMovieHasGenre)
	}

	actors := make([]NodeID, 0, len(cast))
	for _, member := range cast {
		person := g.EnsurePerson(member.Name)
		person.Person.Roles.Add(RoleActor)
		g.AddEdgePair(movieID, person.ID, RelMovieHasActor)
		actors = append(actors, person.ID)
	}

	var directors []NodeID
	for _, member := range crew {
		role := ClassifyJob(member.Job)
		person := g.EnsurePerson(member.Name)
		person.Person.Roles.Add(role)
		g.AddEdgePair(movieID, person.ID, role.forwardRelation())
		if role == RoleDirector {
			directors = append(directors, person.ID)
		}
	}

	// Full cross-product once per movie. Repeated collaborations across
	// movies append parallel duplicate edges; multiplicity is preserved
	// rather than collapsed into a weight.
	for _, actor := range actors {
		for _, director := range directors {
			g.AddEdgePair(actor, director, RelActorWorkedWithDir)
		}
	}
	return nil
}

// launchYear is the first segment of the release date split on "-", the
// 4-digit year for well-formed dates.
func launchYear(releaseDate string) string {
	if i := strings.IndexByte(releaseDate, '-'); i >= 0 {
		return releaseDate[:i]
	}
	return releaseDate
}
