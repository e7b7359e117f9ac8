// Package graph holds the in-memory movie knowledge graph: a directed
// labeled multigraph over movie, person, genre and date nodes, built once
// from the joined tabular sources and read-only afterward.
package graph

import "sort"

// Graph is a directed multigraph. Parallel edges between the same ordered
// node pair are permitted and distinguished only by relation.
type Graph struct {
	nodes     map[NodeID]*Node
	adj       map[NodeID]map[NodeID][]Relation
	edgeCount int
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*Node),
		adj:   make(map[NodeID]map[NodeID][]Relation),
	}
}

// PutMovie adds or overwrites a movie node with its scalar attributes.
func (g *Graph) PutMovie(id int, attrs MovieAttrs) NodeID {
	nid := MovieID(id)
	g.nodes[nid] = &Node{ID: nid, Label: LabelMovie, Movie: &attrs}
	return nid
}

// EnsurePerson returns the person node for a normalized name, creating it
// on first encounter. Role accumulation happens on the returned node.
func (g *Graph) EnsurePerson(name string) *Node {
	nid := NameID(name)
	if n, ok := g.nodes[nid]; ok {
		return n
	}
	n := &Node{ID: nid, Label: LabelPerson, Person: &PersonAttrs{}}
	g.nodes[nid] = n
	return n
}

// EnsureGenre deduplicates genre nodes by normalized name.
func (g *Graph) EnsureGenre(name string) NodeID {
	nid := NameID(name)
	if _, ok := g.nodes[nid]; !ok {
		g.nodes[nid] = &Node{ID: nid, Label: LabelGenre}
	}
	return nid
}

// EnsureDate deduplicates date nodes by 4-digit year string.
func (g *Graph) EnsureDate(year string) NodeID {
	nid := NameID(year)
	if _, ok := g.nodes[nid]; !ok {
		g.nodes[nid] = &Node{ID: nid, Label: LabelDate}
	}
	return nid
}

// AddEdge appends one directed edge. Repeated calls for the same ordered
// pair and relation append parallel duplicates; the builder relies on that
// to preserve collaboration multiplicity.
func (g *Graph) AddEdge(from, to NodeID, rel Relation) {
	m, ok := g.adj[from]
	if !ok {
		m = make(map[NodeID][]Relation)
		g.adj[from] = m
	}
	m[to] = append(m[to], rel)
	g.edgeCount++
}

// AddEdgePair materializes a semantic relationship as its forward and
// inverse directed edges.
func (g *Graph) AddEdgePair(from, to NodeID, rel Relation) {
	g.AddEdge(from, to, rel)
	g.AddEdge(to, from, rel.Inverse())
}

// Node looks up a node by id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether a node exists.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Edges returns the relation labels of the parallel edges from one node to
// another, nil when no edge exists.
func (g *Graph) Edges(from, to NodeID) []Relation {
	return g.adj[from][to]
}

// Successors returns the targets of all outgoing edges in deterministic
// order: movies first by id, then named nodes lexicographically.
func (g *Graph) Successors(id NodeID) []NodeID {
	m := g.adj[id]
	if len(m) == 0 {
		return nil
	}
	out := make([]NodeID, 0, len(m))
	for nbr := range m {
		out = append(out, nbr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount counts directed edges including parallel duplicates.
func (g *Graph) EdgeCount() int { return g.edgeCount }
