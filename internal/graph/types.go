package graph

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ============================================================================
// Node identity
// ============================================================================

// NodeID identifies a node in the movie graph. Movie nodes are keyed by
// their numeric source id; person, genre and date nodes by a normalized
// (lowercased, trimmed) string. Two distinct people sharing a normalized
// name collapse to one node, a known upstream data-modeling gap.
type NodeID struct {
	movieID int
	key     string
	isMovie bool
}

// MovieID returns the NodeID for a movie with the given source id.
func MovieID(id int) NodeID {
	return NodeID{movieID: id, isMovie: true}
}

// NameID returns the NodeID for a named node (person, genre or year),
// normalizing the name the same way the builder does.
func NameID(name string) NodeID {
	return NodeID{key: Normalize(name)}
}

// Normalize lowercases and trims an entity name.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsMovie reports whether the id refers to a movie node.
func (id NodeID) IsMovie() bool { return id.isMovie }

// Movie returns the numeric movie id; only meaningful when IsMovie.
func (id NodeID) Movie() int { return id.movieID }

// Name returns the normalized string key; empty for movie nodes.
func (id NodeID) Name() string { return id.key }

func (id NodeID) String() string {
	if id.isMovie {
		return strconv.Itoa(id.movieID)
	}
	return id.key
}

// MarshalJSON emits a bare number for movies and a string for everything
// else, matching the shape the tool surface hands to the orchestrator.
func (id NodeID) MarshalJSON() ([]byte, error) {
	if id.isMovie {
		return json.Marshal(id.movieID)
	}
	return json.Marshal(id.key)
}

// less orders NodeIDs for deterministic query output: movies first by id,
// then named nodes lexicographically.
func (id NodeID) less(other NodeID) bool {
	if id.isMovie != other.isMovie {
		return id.isMovie
	}
	if id.isMovie {
		return id.movieID < other.movieID
	}
	return id.key < other.key
}

// ============================================================================
// Node variants
// ============================================================================

// Label identifies the node variant.
type Label string

const (
	LabelMovie  Label = "movie"
	LabelPerson Label = "person"
	LabelGenre  Label = "genre"
	LabelDate   Label = "date"
)

// MovieAttrs is the fixed attribute set of a movie node.
type MovieAttrs struct {
	Title       string   `json:"title"`
	Popularity  *float64 `json:"popularity,omitempty"`
	VoteAverage *float64 `json:"vote_average,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	LaunchYear  string   `json:"launch_year"`
	Keywords    []string `json:"keywords"`
}

// PersonAttrs is the fixed attribute set of a person node.
type PersonAttrs struct {
	Roles RoleSet `json:"roles"`
}

// Node is a tagged variant by Label. Exactly one attribute struct is set
// for the labels that carry attributes; genre and date nodes carry none.
type Node struct {
	ID     NodeID
	Label  Label
	Movie  *MovieAttrs  // set when Label == LabelMovie
	Person *PersonAttrs // set when Label == LabelPerson
}

// Attributes flattens a node into the attribute map exposed by the query
// surface.
func (n *Node) Attributes() map[string]any {
	attrs := map[string]any{"label": string(n.Label)}
	switch n.Label {
	case LabelMovie:
		attrs["title"] = n.Movie.Title
		if n.Movie.Popularity != nil {
			attrs["popularity"] = *n.Movie.Popularity
		}
		if n.Movie.VoteAverage != nil {
			attrs["vote_average"] = *n.Movie.VoteAverage
		}
		if n.Movie.Overview != "" {
			attrs["overview"] = n.Movie.Overview
		}
		attrs["launch_year"] = n.Movie.LaunchYear
		attrs["keywords"] = n.Movie.Keywords
	case LabelPerson:
		attrs["roles"] = n.Person.Roles.Slice()
	}
	return attrs
}

// ============================================================================
// Person roles
// ============================================================================

// Role is a function a person has held on at least one movie.
type Role uint8

const (
	RoleActor Role = iota
	RoleDirector
	RoleProducer
	RoleWriter
	RoleSupportingCrew
	numRoles
)

var roleNames = [numRoles]string{
	"actor",
	"director",
	"producer",
	"writer",
	"supporting_crew",
}

func (r Role) String() string {
	if r >= numRoles {
		return "unknown"
	}
	return roleNames[r]
}

// ClassifyJob maps a raw crew job title to a role. Director, producer and
// writer are kept verbatim; every other job collapses to supporting crew.
func ClassifyJob(job string) Role {
	switch Normalize(job) {
	case "director":
		return RoleDirector
	case "producer":
		return RoleProducer
	case "writer":
		return RoleWriter
	default:
		return RoleSupportingCrew
	}
}

// RoleSet is a small fixed-size set of roles. Person role sets only ever
// grow during the build pass and are never mutated afterward.
type RoleSet uint8

func (s *RoleSet) Add(r Role) {
	*s |= 1 << r
}

func (s RoleSet) Has(r Role) bool {
	return s&(1<<r) != 0
}

// Slice returns the member role names in declaration order.
func (s RoleSet) Slice() []string {
	out := make([]string, 0, numRoles)
	for r := Role(0); r < numRoles; r++ {
		if s.Has(r) {
			out = append(out, r.String())
		}
	}
	return out
}

func (s RoleSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// ============================================================================
// Relations
// ============================================================================

// Relation is the directed edge type. The enum is closed: every semantic
// relationship is materialized as a forward/inverse edge pair so traversal
// in either direction is a plain neighbor lookup.
type Relation string

const (
	RelMovieHasActor          Relation = "MOVIE_HAS_ACTOR"
	RelActedInMovies          Relation = "ACTED_IN_MOVIES"
	RelMovieHasDirector       Relation = "MOVIE_HAS_DIRECTOR"
	RelDirectedMovies         Relation = "DIRECTED_MOVIES"
	RelMovieHasProducer       Relation = "MOVIE_HAS_PRODUCER"
	RelProducedMovies         Relation = "PRODUCED_MOVIES"
	RelMovieHasWriter         Relation = "MOVIE_HAS_WRITER"
	RelWroteMovies            Relation = "WROTE_MOVIES"
	RelMovieHasSupportingCrew Relation = "MOVIE_HAS_SUPPORTING_CREW"
	RelSupportedMovies        Relation = "SUPPORTED_MOVIES"
	RelMovieHasGenre          Relation = "MOVIE_HAS_GENRE"
	RelGenreOfMovies          Relation = "GENRE_OF_MOVIES"
	RelMovieReleasedOn        Relation = "MOVIE_RELEASED_ON"
	RelYearReleasedMovies     Relation = "YEAR_RELEASED_MOVIES"
	RelActorWorkedWithDir     Relation = "ACTOR_WORKED_WITH_DIRECTOR"
	RelDirWorkedWithActor     Relation = "DIRECTOR_WORKED_WITH_ACTOR"
)

var relationInverse = map[Relation]Relation{
	RelMovieHasActor:          RelActedInMovies,
	RelActedInMovies:          RelMovieHasActor,
	RelMovieHasDirector:       RelDirectedMovies,
	RelDirectedMovies:         RelMovieHasDirector,
	RelMovieHasProducer:       RelProducedMovies,
	RelProducedMovies:         RelMovieHasProducer,
	RelMovieHasWriter:         RelWroteMovies,
	RelWroteMovies:            RelMovieHasWriter,
	RelMovieHasSupportingCrew: RelSupportedMovies,
	RelSupportedMovies:        RelMovieHasSupportingCrew,
	RelMovieHasGenre:          RelGenreOfMovies,
	RelGenreOfMovies:          RelMovieHasGenre,
	RelMovieReleasedOn:        RelYearReleasedMovies,
	RelYearReleasedMovies:     RelMovieReleasedOn,
	RelActorWorkedWithDir:     RelDirWorkedWithActor,
	RelDirWorkedWithActor:     RelActorWorkedWithDir,
}

// Valid reports whether r is a member of the closed relation enum.
func (r Relation) Valid() bool {
	_, ok := relationInverse[r]
	return ok
}

// Inverse returns the paired relation in the opposite direction.
func (r Relation) Inverse() Relation {
	return relationInverse[r]
}

// forwardRelation is the movie→person relation for a role.
func (r Role) forwardRelation() Relation {
	switch r {
	case RoleActor:
		return RelMovieHasActor
	case RoleDirector:
		return RelMovieHasDirector
	case RoleProducer:
		return RelMovieHasProducer
	case RoleWriter:
		return RelMovieHasWriter
	default:
		return RelMovieHasSupportingCrew
	}
}
