// Package topomap implements the topological map of §4.7: a graph over
// every (node, space) pair in a composition tree, with the directed edges
// compose.Node.Edges() exposes, and a Path query that composes the
// Mappings along the unique tree route between two such pairs.
//
// The graph substrate is katalvlaran/lvlath's core.Graph, walked and
// queried the way gotio's Composable tree is walked for
// TransformedTime-style queries, but expressed as an explicit graph
// instead of ad hoc parent pointers, so that cross-branch projections
// (sibling-to-sibling, leaf-to-root) fall out of one traversal algorithm
// rather than a family of special cases.
package topomap

import (
	"fmt"

	"github.com/katalvlaran/lvlath/algorithms"
	"github.com/katalvlaran/lvlath/core"

	"github.com/mrjoshuak/otio-topology/compose"
	"github.com/mrjoshuak/otio-topology/mapping"
	"github.com/mrjoshuak/otio-topology/projerr"
)

// vertexKey identifies one (node, space) pair as an lvlath vertex ID.
type vertexKey string

func keyFor(n compose.Node, space string) vertexKey {
	return vertexKey(fmt.Sprintf("%s:%s", n.ID(), space))
}

// VertexKey returns the stable string identity of (n, space) as used
// internally by Map, for callers (e.g. projector.Map's operator cache)
// that need a comparable cache key without duplicating this format.
func VertexKey(n compose.Node, space string) string {
	return string(keyFor(n, space))
}

// vertexInfo is everything the map remembers about one (node, space)
// vertex: its place in the tree (for the O(depth) LCA shortcut) and the
// forward Topology labeling the tree edge from its parent, if any.
type vertexInfo struct {
	node   compose.Node
	space  string
	depth  int
	parent vertexKey
	// fromParent is the forward Topology transforming the parent
	// vertex's space into this one. Zero value (nil Mappings) at the
	// root, which has no parent.
	fromParent mapping.Topology
}

// Map is the built topological map of a composition tree: an lvlath graph
// of (node, space) vertices plus the tree bookkeeping Path uses for its
// fast route.
type Map struct {
	graph    *core.Graph
	vertices map[vertexKey]*vertexInfo
	// edgeTopology mirrors the graph's forward (parent->child) edges,
	// keyed by lvlath's own edge ID, since core.Edge carries only an
	// int64 weight and has no slot for an arbitrary Mapping/Topology
	// payload.
	edgeTopology map[string]mapping.Topology
	// reverseOf maps a child->parent shadow edge's ID to the forward
	// edge ID it mirrors, so bfsPath can walk the graph in either
	// direction and know to invert the Topology when it crosses one of
	// these. Added alongside every forward edge in visit so BFS is not
	// limited to descending the tree.
	reverseOf map[string]string
	// mediaVertices is every (node, compose.SpaceMedia) vertex discovered
	// during the walk, for the Projection Operator Map's "descendant
	// media reachable" partitioning (§4.8).
	mediaVertices []vertexKey
}

// Build walks root's composition tree via Node.Edges() and returns the
// resulting topological map. Every edge Edges() reports becomes a graph
// edge; edges that share a (FromSpace, ToNode, ToSpace) triple — as a
// multi-segment Warp transform does, one Edge per mapping segment — are
// merged into a single graph edge carrying the full multi-mapping
// Topology, since they are one logical projection in different
// sub-domains, not parallel alternatives.
func Build(root compose.Node) (*Map, error) {
	m := &Map{
		graph:        core.NewGraph(core.WithDirected(true), core.WithMultiEdges()),
		vertices:     make(map[vertexKey]*vertexInfo),
		edgeTopology: make(map[string]mapping.Topology),
		reverseOf:    make(map[string]string),
	}

	rootKey := keyFor(root, compose.SpacePresentation)
	if err := m.graph.AddVertex(string(rootKey)); err != nil {
		return nil, fmt.Errorf("topomap: adding root vertex: %w", err)
	}
	m.vertices[rootKey] = &vertexInfo{node: root, space: compose.SpacePresentation, depth: 0}

	if err := m.visit(rootKey); err != nil {
		return nil, err
	}
	return m, nil
}

// visit registers the outgoing edges of the (node, space) vertex at key,
// grouping by destination, then recurses into each newly discovered
// vertex.
func (m *Map) visit(key vertexKey) error {
	info := m.vertices[key]

	grouped := make(map[vertexKey][]mapping.Mapping)
	var order []vertexKey
	var dest map[vertexKey]struct {
		node  compose.Node
		space string
	}
	dest = make(map[vertexKey]struct {
		node  compose.Node
		space string
	})

	for _, e := range info.node.Edges() {
		if e.FromSpace != info.space {
			continue
		}
		toKey := keyFor(e.ToNode, e.ToSpace)
		if _, ok := grouped[toKey]; !ok {
			order = append(order, toKey)
			dest[toKey] = struct {
				node  compose.Node
				space string
			}{e.ToNode, e.ToSpace}
		}
		grouped[toKey] = append(grouped[toKey], e.Transform)
	}

	for _, toKey := range order {
		if _, exists := m.vertices[toKey]; exists {
			// Already reached via another route; the composition
			// tree is a tree, so this should not happen, but skip
			// rather than clobber the existing parent link.
			continue
		}
		d := dest[toKey]
		if err := m.graph.AddVertex(string(toKey)); err != nil {
			return fmt.Errorf("topomap: adding vertex %s: %w", toKey, err)
		}
		edgeID, err := m.graph.AddEdge(string(key), string(toKey), 1)
		if err != nil {
			return fmt.Errorf("topomap: adding edge %s->%s: %w", key, toKey, err)
		}
		topo := mapping.Topology{Mappings: grouped[toKey]}
		m.edgeTopology[edgeID] = topo

		// A shadow edge in the opposite direction, so bfsPath can reach
		// an ancestor or sibling without being limited to Neighbors'
		// forward-only traversal; reconstruction inverts the mirrored
		// forward Topology when it crosses this edge (see bfsPath).
		revID, err := m.graph.AddEdge(string(toKey), string(key), 1)
		if err != nil {
			return fmt.Errorf("topomap: adding reverse edge %s->%s: %w", toKey, key, err)
		}
		m.reverseOf[revID] = edgeID
		m.vertices[toKey] = &vertexInfo{
			node:       d.node,
			space:      d.space,
			depth:      info.depth + 1,
			parent:     key,
			fromParent: topo,
		}
		if d.space == compose.SpaceMedia {
			m.mediaVertices = append(m.mediaVertices, toKey)
		}
		if err := m.visit(toKey); err != nil {
			return err
		}
	}
	return nil
}

// MediaNode pairs a compose.Node exposing compose.SpaceMedia with that
// space name, for MediaNodes' results.
type MediaNode struct {
	Node  compose.Node
	Space string
}

// MediaNodes returns every (node, compose.SpaceMedia) vertex discovered
// while building the map — every reachable Clip, in discovery order.
func (m *Map) MediaNodes() []MediaNode {
	out := make([]MediaNode, len(m.mediaVertices))
	for i, k := range m.mediaVertices {
		info := m.vertices[k]
		out[i] = MediaNode{Node: info.node, Space: info.space}
	}
	return out
}

// IsDescendant reports whether (node, space) is ancestorNode/ancestorSpace
// itself or a descendant of it in the tree walked by Build.
func (m *Map) IsDescendant(ancestorNode compose.Node, ancestorSpace string, node compose.Node, space string) bool {
	ancestorKey := keyFor(ancestorNode, ancestorSpace)
	cur, ok := m.vertices[keyFor(node, space)]
	if !ok {
		return false
	}
	curKey := keyFor(node, space)
	for {
		if curKey == ancestorKey {
			return true
		}
		if cur.parent == "" {
			return false
		}
		curKey = cur.parent
		cur = m.vertices[curKey]
	}
}

// Path returns the ordered list of Topologies composing the unique tree
// route from (srcNode, srcSpace) to (dstNode, dstSpace): first the
// inverse of each edge climbed from src up to the two vertices' lowest
// common ancestor, then the forward edges descending from the ancestor
// to dst. An empty, nil-error result means src and dst name the same
// vertex (the identity route).
func (m *Map) Path(srcNode compose.Node, srcSpace string, dstNode compose.Node, dstSpace string) ([]mapping.Topology, error) {
	srcKey := keyFor(srcNode, srcSpace)
	dstKey := keyFor(dstNode, dstSpace)

	srcInfo, ok := m.vertices[srcKey]
	if !ok {
		return nil, &projerr.SpaceError{Owner: srcNode.Name(), Space: srcSpace, Err: projerr.ErrNoPath}
	}
	dstInfo, ok := m.vertices[dstKey]
	if !ok {
		return nil, &projerr.SpaceError{Owner: dstNode.Name(), Space: dstSpace, Err: projerr.ErrNoPath}
	}

	if srcKey == dstKey {
		return nil, nil
	}

	up, err := m.climbPath(srcKey, srcInfo, dstKey, dstInfo)
	if err == nil {
		return up, nil
	}

	// Fallback: reconstruct via BFS over the whole graph (handles any
	// future non-tree edges the tree-code shortcut above doesn't model).
	return m.bfsPath(srcKey, dstKey)
}

// climbPath is the O(depth) tree-code shortcut: walk both vertices up to
// equal depth, then in lockstep until they meet at their lowest common
// ancestor, collecting inverted up-edges and forward down-edges along
// the way.
func (m *Map) climbPath(srcKey vertexKey, srcInfo *vertexInfo, dstKey vertexKey, dstInfo *vertexInfo) ([]mapping.Topology, error) {
	var upTopologies []mapping.Topology
	var downKeys []vertexKey

	sKey, sInfo := srcKey, srcInfo
	dKey, dInfo := dstKey, dstInfo

	for sInfo.depth > dInfo.depth {
		inv, err := invertTopology(sInfo.fromParent)
		if err != nil {
			return nil, err
		}
		upTopologies = append(upTopologies, inv)
		sKey = sInfo.parent
		sInfo = m.vertices[sKey]
	}
	for dInfo.depth > sInfo.depth {
		downKeys = append(downKeys, dKey)
		dKey = dInfo.parent
		dInfo = m.vertices[dKey]
	}

	for sKey != dKey {
		if sInfo.parent == "" || dInfo.parent == "" {
			return nil, projerr.ErrNoPath
		}
		inv, err := invertTopology(sInfo.fromParent)
		if err != nil {
			return nil, err
		}
		upTopologies = append(upTopologies, inv)
		sKey = sInfo.parent
		sInfo = m.vertices[sKey]

		downKeys = append(downKeys, dKey)
		dKey = dInfo.parent
		dInfo = m.vertices[dKey]
	}

	result := make([]mapping.Topology, 0, len(upTopologies)+len(downKeys))
	result = append(result, upTopologies...)
	for i := len(downKeys) - 1; i >= 0; i-- {
		k := downKeys[i]
		result = append(result, m.vertices[k].fromParent)
	}
	return result, nil
}

// invertTopology inverts every mapping of a parent->child Topology in
// order, for use climbing the tree against the grain of its edges. The
// mapping order is preserved (each segment inverts independently; the
// segments themselves already partition the domain monotonically).
func invertTopology(t mapping.Topology) (mapping.Topology, error) {
	inv := make([]mapping.Mapping, len(t.Mappings))
	for i, seg := range t.Mappings {
		m, err := seg.Inverse()
		if err != nil {
			return mapping.Topology{}, fmt.Errorf("topomap: inverting edge segment %d: %w", i, err)
		}
		inv[i] = m
	}
	return mapping.Topology{Mappings: inv}, nil
}

// bfsPath is the generic fallback, walking algorithms.BFS's Parent map
// from destination back to source. The graph carries a reverse shadow
// edge alongside every forward parent->child edge (see visit), so this
// BFS is not limited to descending the tree: it can reach an ancestor
// or a sibling the same way climbPath does, by inverting the Topology
// whenever the reconstructed route crosses one of those shadow edges.
// lvlath has no built-in path-reconstruction helper, so this walk is
// done by hand.
func (m *Map) bfsPath(srcKey, dstKey vertexKey) ([]mapping.Topology, error) {
	res, err := algorithms.BFS(m.graph, string(srcKey), nil)
	if err != nil {
		return nil, fmt.Errorf("topomap: bfs: %w", err)
	}
	if !res.Visited[string(dstKey)] {
		return nil, projerr.ErrNoPath
	}

	var chain []string
	cur := string(dstKey)
	for cur != string(srcKey) {
		chain = append(chain, cur)
		prev, ok := res.Parent[cur]
		if !ok {
			return nil, projerr.ErrNoPath
		}
		cur = prev
	}
	// chain is dst..src in reverse order; walk it src->dst.
	result := make([]mapping.Topology, 0, len(chain))
	from := string(srcKey)
	for i := len(chain) - 1; i >= 0; i-- {
		to := chain[i]
		edges, err := m.graph.Neighbors(from)
		if err != nil {
			return nil, fmt.Errorf("topomap: neighbors(%s): %w", from, err)
		}
		found := false
		for _, e := range edges {
			if e.To != to {
				continue
			}
			if fwdID, isReverse := m.reverseOf[e.ID]; isReverse {
				inv, err := invertTopology(m.edgeTopology[fwdID])
				if err != nil {
					return nil, fmt.Errorf("topomap: inverting reverse edge %s->%s: %w", from, to, err)
				}
				result = append(result, inv)
			} else {
				result = append(result, m.edgeTopology[e.ID])
			}
			found = true
			break
		}
		if !found {
			return nil, projerr.ErrNoPath
		}
		from = to
	}
	return result, nil
}
