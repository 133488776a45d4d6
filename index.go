package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "github.com/npillmayer/spatial/geom"

// Index is a frozen, read-only R-tree produced by RTree.ToIndex. It answers
// the same queries as the mutable tree but cannot be modified, which makes
// it safe for concurrent readers.
type Index struct {
	nodes      []*node
	rootNodeID int32
	size       int
}

// ToIndex transfers all nodes of this tree into a read-only Index and leaves
// the tree empty.
//
// A tree carrying many deleted node ids transfers into a compacted arena
// with densely remapped node ids; small or hole-free trees transfer as-is.
func (t *RTree) ToIndex() *Index {
	if t.size == 0 {
		return &Index{}
	}

	deleted := t.deletedNodeIDs.Size()
	for !t.deletedNodeIDs.IsEmpty() {
		idx := t.deletedNodeIDs.Pop()
		if int(idx) < len(t.nodes) {
			t.nodes[idx] = nil
		}
	}

	var result *Index
	if t.size < 128 || deleted == 0 || deleted < t.size/10 {
		result = &Index{nodes: t.nodes, rootNodeID: t.rootNodeID, size: t.size}
	} else {
		result = compactIndex(t.nodes, t.rootNodeID, t.size)
	}
	t.nodes = nil
	t.Clear()
	return result
}

// compactIndex squeezes the holes out of an arena, remapping node ids to
// consecutive slots and rewriting all child references.
func compactIndex(nodes []*node, rootNodeID int32, size int) *Index {
	remap := make([]int32, len(nodes))
	compacted := make([]*node, 0, len(nodes))
	for id, n := range nodes {
		if n == nil {
			remap[id] = -1
			continue
		}
		remap[id] = int32(len(compacted))
		compacted = append(compacted, n)
	}
	for _, n := range compacted {
		n.nodeID = remap[n.nodeID]
		if n.isLeaf() {
			continue
		}
		for i := 0; i < n.entryCount; i++ {
			n.ids[i] = remap[n.ids[i]]
		}
	}
	T().Debugf("spatial: compacted index arena from %d to %d nodes", len(nodes), len(compacted))
	return &Index{nodes: compacted, rootNodeID: remap[rootNodeID], size: size}
}

// Size returns the number of entries in the index.
func (idx *Index) Size() int {
	return idx.size
}

// Bounds returns the MBR of all entries. ok is false iff the index is empty.
func (idx *Index) Bounds() (bounds geom.Rect, ok bool) {
	root := idx.node(idx.rootNodeID)
	if root == nil || root.entryCount == 0 {
		return geom.Rect{}, false
	}
	return root.mbr(), true
}

// Intersects calls cb for every entry whose rectangle intersects r.
func (idx *Index) Intersects(r geom.Rect, cb Callback) {
	intersectsQuery(idx, r, cb)
}

// Contains calls cb for every entry whose rectangle lies inside r.
func (idx *Index) Contains(r geom.Rect, cb Callback) {
	containsQuery(idx, r, cb)
}

// Nearest calls cb for every entry at minimal distance from p; see
// RTree.Nearest.
func (idx *Index) Nearest(p geom.Point, cb Callback, furthestDistance float32) {
	nearestQuery(idx, p, cb, furthestDistance)
}

// NearestN calls cb for the count entries nearest to p in order of
// increasing distance; see RTree.NearestN.
func (idx *Index) NearestN(p geom.Point, cb Callback, count int, furthestDistance float32) {
	nearestNQuery(idx, p, cb, count, furthestDistance, true)
}

// NearestNUnsorted is NearestN without the ordering guarantee.
func (idx *Index) NearestNUnsorted(p geom.Point, cb Callback, count int, furthestDistance float32) {
	nearestNQuery(idx, p, cb, count, furthestDistance, false)
}

func (idx *Index) node(id int32) *node {
	if id < 0 || int(id) >= len(idx.nodes) {
		return nil
	}
	return idx.nodes[id]
}

func (idx *Index) rootID() int32 {
	return idx.rootNodeID
}
