package projector

import (
	"sort"
	"sync"

	"github.com/mrjoshuak/otio-topology/compose"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/topomap"
)

// opKey is the cache key for one built Operator: a pair of topomap vertex
// identities.
type opKey struct {
	src, dst string
}

// Map is the Projection Operator Map of §4.8: a cache of built Operators
// over a single topomap.Map, and the source-bounds partition-by-reachable-
// media feature. Guarded by a sync.RWMutex, the same concurrency pattern
// gotio/schema_registry.go uses for its global schema registry — reads
// (the common case, repeated scrubbing/rendering queries per §5) take the
// read lock and only escalate to the write lock on a cache miss.
type Map struct {
	topo *topomap.Map

	mu    sync.RWMutex
	cache map[opKey]*Operator
}

// NewMap constructs an empty Projection Operator Map over topo.
func NewMap(topo *topomap.Map) *Map {
	return &Map{topo: topo, cache: make(map[opKey]*Operator)}
}

// Operator returns the Operator projecting (srcNode, srcSpace) to
// (dstNode, dstSpace), building and caching it on first request.
func (pm *Map) Operator(srcNode compose.Node, srcSpace string, dstNode compose.Node, dstSpace string) (*Operator, error) {
	key := opKey{
		src: topomap.VertexKey(srcNode, srcSpace),
		dst: topomap.VertexKey(dstNode, dstSpace),
	}

	pm.mu.RLock()
	if op, ok := pm.cache[key]; ok {
		pm.mu.RUnlock()
		return op, nil
	}
	pm.mu.RUnlock()

	op, err := Build(pm.topo, srcNode, srcSpace, dstNode, dstSpace)
	if err != nil {
		return nil, err
	}

	pm.mu.Lock()
	pm.cache[key] = op
	pm.mu.Unlock()
	return op, nil
}

// PartitionEntry is one sub-interval of a source-space partition and the
// Operators active (reaching a descendant media space) over it.
type PartitionEntry struct {
	Bounds    ordinate.Interval
	Operators []*Operator
}

// Partition implements §4.8's "projection operator map": given a source
// space, it produces an ordered partition of the source's own input
// bounds, plus, for each sub-interval, the Operators to every descendant
// media (Clip) space reachable there. The partition's cut points are the
// union of every reachable Operator's own input-bounds edges, matching
// §4.8's "union of all cut points from all leaf-space projections, then
// bucketing operators by sub-interval."
func (pm *Map) Partition(srcNode compose.Node, srcSpace string) ([]PartitionEntry, error) {
	srcBounds, err := srcNode.SpaceBounds(srcSpace)
	if err != nil {
		return nil, err
	}

	var ops []*Operator
	cuts := map[ordinate.Ordinate]struct{}{srcBounds.Start: {}, srcBounds.End: {}}
	for _, mn := range pm.topo.MediaNodes() {
		if !pm.topo.IsDescendant(srcNode, srcSpace, mn.Node, mn.Space) {
			continue
		}
		op, err := pm.Operator(srcNode, srcSpace, mn.Node, mn.Space)
		if err != nil {
			// Descendant in the tree walk but no valid projection
			// (e.g. an empty sub-mapping somewhere on the path):
			// it contributes no sub-interval, not a fatal error.
			continue
		}
		ops = append(ops, op)
		b := op.Topo.InputBounds()
		cuts[b.Start] = struct{}{}
		cuts[b.End] = struct{}{}
	}

	sorted := make([]ordinate.Ordinate, 0, len(cuts))
	for c := range cuts {
		if c >= srcBounds.Start && c <= srcBounds.End {
			sorted = append(sorted, c)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	entries := make([]PartitionEntry, 0, len(sorted))
	for i := 0; i+1 < len(sorted); i++ {
		sub := ordinate.Interval{Start: sorted[i], End: sorted[i+1]}
		mid := (sub.Start + sub.End) / 2
		var active []*Operator
		for _, op := range ops {
			if op.Topo.InputBounds().Contains(mid) {
				active = append(active, op)
			}
		}
		entries = append(entries, PartitionEntry{Bounds: sub, Operators: active})
	}
	return entries, nil
}
