package graph

import (
	"github.com/jayeshbankoti007/movie-graph-rag/internal/ingest"
)

// Store owns the built graph together with the joined table it came from,
// plus the title index. It is constructed once and read-only afterward, so
// concurrent readers need no coordination.
type Store struct {
	graph      *Graph
	rows       []ingest.MovieRow
	rowByID    map[int]*ingest.MovieRow
	titleIndex map[string][]int // normalized title -> movie ids, in ingest order
}

func newStore(g *Graph, rows []ingest.MovieRow) *Store {
	s := &Store{
		graph:      g,
		rows:       rows,
		rowByID:    make(map[int]*ingest.MovieRow, len(rows)),
		titleIndex: make(map[string][]int),
	}
	for i := range rows {
		row := &rows[i]
		s.rowByID[row.ID] = row
		title := Normalize(row.Title)
		s.titleIndex[title] = append(s.titleIndex[title], row.ID)
	}
	return s
}

// Graph exposes the underlying multigraph, read-only by convention.
func (s *Store) Graph() *Graph { return s.graph }

// Rows returns the joined table, in ingest order.
func (s *Store) Rows() []ingest.MovieRow { return s.rows }

// ============================================================================
// Entity lookup
// ============================================================================

// Neighbor is one outgoing edge of a resolved entity.
type Neighbor struct {
	Neighbor NodeID   `json:"neighbor"`
	Relation Relation `json:"relation"`
}

// EntityResult describes one resolved node with its attributes and every
// outgoing edge, optionally filtered to a single relation.
type EntityResult struct {
	Node       NodeID         `json:"node"`
	Label      Label          `json:"label"`
	Attributes map[string]any `json:"attributes"`
	Neighbors  []Neighbor     `json:"neighbors"`
}

// LookupEntity resolves a free-text entity. An exact case-insensitive
// title match wins and returns every matching movie id (titles are not
// unique); otherwise the string is treated as a direct node identifier
// (person, genre or year). Unresolvable entities — including category
// labels like "directors", which name no node — yield an empty result,
// never an error. Pass an empty relation for all edges.
func (s *Store) LookupEntity(entity string, relation Relation) []EntityResult {
	normalized := Normalize(entity)

	var ids []NodeID
	if movieIDs, ok := s.titleIndex[normalized]; ok {
		for _, id := range movieIDs {
			ids = append(ids, MovieID(id))
		}
	} else if nid := NameID(normalized); s.graph.Has(nid) {
		ids = []NodeID{nid}
	} else {
		return []EntityResult{}
	}

	results := make([]EntityResult, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.describe(id, relation); ok {
			results = append(results, r)
		}
	}
	return results
}

// LookupEntityByID resolves a movie node directly by its numeric id.
func (s *Store) LookupEntityByID(id int, relation Relation) []EntityResult {
	r, ok := s.describe(MovieID(id), relation)
	if !ok {
		return []EntityResult{}
	}
	return []EntityResult{r}
}

func (s *Store) describe(id NodeID, relation Relation) (EntityResult, bool) {
	node, ok := s.graph.Node(id)
	if !ok {
		return EntityResult{}, false
	}

	neighbors := make([]Neighbor, 0)
	for _, nbr := range s.graph.Successors(id) {
		for _, rel := range s.graph.Edges(id, nbr) {
			if relation != "" && rel != relation {
				continue
			}
			neighbors = append(neighbors, Neighbor{Neighbor: nbr, Relation: rel})
		}
	}

	return EntityResult{
		Node:       id,
		Label:      node.Label,
		Attributes: node.Attributes(),
		Neighbors:  neighbors,
	}, true
}

// MovieByID returns a movie node's attribute map. The second return value
// distinguishes not-found from a valid movie with sparse attributes.
func (s *Store) MovieByID(id int) (map[string]any, bool) {
	node, ok := s.graph.Node(MovieID(id))
	if !ok {
		return nil, false
	}
	return node.Attributes(), true
}

// ============================================================================
// Person filter
// ============================================================================

// FilterMoviesByPerson restricts candidate movie ids to those connected to
// the named person by any outgoing edge. The person's movie set is computed
// once and reused, and the output preserves candidate order. An unknown
// person yields an empty set.
func (s *Store) FilterMoviesByPerson(person string, candidates []int) []int {
	pid := NameID(person)
	filtered := make([]int, 0, len(candidates))
	if !s.graph.Has(pid) {
		return filtered
	}

	personMovies := make(map[int]bool)
	for nbr := range s.graph.adj[pid] {
		if node, ok := s.graph.Node(nbr); ok && node.Label == LabelMovie {
			personMovies[nbr.Movie()] = true
		}
	}

	for _, id := range candidates {
		if personMovies[id] {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

// ============================================================================
// Semantic-search join-back
// ============================================================================

// SummaryRecord is the flat movie record handed back for vector hits, with
// the commerce fields passed through verbatim from the source table.
type SummaryRecord struct {
	ID               int    `json:"id"`
	Overview         string `json:"overview"`
	OriginalTitle    string `json:"original_title"`
	OriginalLanguage string `json:"original_language"`
	ReleaseDate      string `json:"release_date"`
	Budget           string `json:"budget"`
	Revenue          string `json:"revenue"`
}

// SummaryByID joins a movie id from the vector index back against the
// tabular source.
func (s *Store) SummaryByID(id int) (SummaryRecord, bool) {
	row, ok := s.rowByID[id]
	if !ok {
		return SummaryRecord{}, false
	}
	return SummaryRecord{
		ID:               row.ID,
		Overview:         row.Overview,
		OriginalTitle:    row.OriginalTitle,
		OriginalLanguage: row.OriginalLanguage,
		ReleaseDate:      row.ReleaseDate,
		Budget:           row.Budget,
		Revenue:          row.Revenue,
	}, true
}
