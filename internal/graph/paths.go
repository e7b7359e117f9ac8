package graph

// DefaultMaxHops bounds path enumeration when the caller does not supply a
// limit. Enumeration is exponential in graph density, so the bound is
// structural rather than a timeout.
const DefaultMaxHops = 3

// PathNode describes one node along a path. RelationToNext carries the set
// of parallel relation names labeling the hop to the following node; it is
// empty on the final node.
type PathNode struct {
	Node           NodeID     `json:"node"`
	Label          Label      `json:"label"`
	Title          string     `json:"title,omitempty"` // movies only
	Roles          []string   `json:"roles,omitempty"` // persons only
	RelationToNext []Relation `json:"relation_to_next,omitempty"`
}

// Path is an ordered sequence of annotated nodes.
type Path []PathNode

// AllSimplePaths enumerates every simple path (no repeated nodes) from a to
// b with at most maxHops edges. Traversal follows edge direction but
// ignores relation type. Absent endpoints yield an empty result, not an
// error. maxHops <= 0 falls back to DefaultMaxHops; callers must keep it
// small on dense hubs.
func (s *Store) AllSimplePaths(a, b NodeID, maxHops int) []Path {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	if !s.graph.Has(a) || !s.graph.Has(b) {
		return []Path{}
	}

	paths := []Path{}
	onPath := map[NodeID]bool{a: true}
	current := []NodeID{a}

	var walk func(node NodeID)
	walk = func(node NodeID) {
		if node == b {
			paths = append(paths, s.annotate(current))
			return
		}
		if len(current)-1 >= maxHops {
			return
		}
		for _, nbr := range s.graph.Successors(node) {
			if onPath[nbr] {
				continue
			}
			onPath[nbr] = true
			current = append(current, nbr)
			walk(nbr)
			current = current[:len(current)-1]
			onPath[nbr] = false
		}
	}
	walk(a)
	return paths
}

// ShortestPath returns one shortest path from a to b by BFS over directed
// edges, annotated like AllSimplePaths. The boolean is false when either
// endpoint is absent or the nodes are disconnected; ShortestPath(a, a) is
// the length-0 path containing only a.
func (s *Store) ShortestPath(a, b NodeID) (Path, bool) {
	if !s.graph.Has(a) || !s.graph.Has(b) {
		return nil, false
	}
	if a == b {
		return s.annotate([]NodeID{a}), true
	}

	parent := map[NodeID]NodeID{a: a}
	queue := []NodeID{a}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, nbr := range s.graph.Successors(node) {
			if _, seen := parent[nbr]; seen {
				continue
			}
			parent[nbr] = node
			if nbr == b {
				return s.annotate(backtrack(parent, a, b)), true
			}
			queue = append(queue, nbr)
		}
	}
	return nil, false
}

func backtrack(parent map[NodeID]NodeID, a, b NodeID) []NodeID {
	var reversed []NodeID
	for node := b; node != a; node = parent[node] {
		reversed = append(reversed, node)
	}
	reversed = append(reversed, a)

	ids := make([]NodeID, len(reversed))
	for i, node := range reversed {
		ids[len(reversed)-1-i] = node
	}
	return ids
}

// annotate turns a node-id sequence into the descriptor path emitted by the
// query surface.
func (s *Store) annotate(ids []NodeID) Path {
	path := make(Path, len(ids))
	for i, id := range ids {
		node, _ := s.graph.Node(id)
		pn := PathNode{Node: id, Label: node.Label}
		switch node.Label {
		case LabelMovie:
			pn.Title = node.Movie.Title
		case LabelPerson:
			pn.Roles = node.Person.Roles.Slice()
		}
		if i < len(ids)-1 {
			pn.RelationToNext = append([]Relation(nil), s.graph.Edges(id, ids[i+1])...)
		}
		path[i] = pn
	}
	return path
}
