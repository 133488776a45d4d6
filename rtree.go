package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"github.com/npillmayer/spatial/geom"
	"github.com/npillmayer/spatial/prim"
)

// RTree is a mutable two-dimensional R-tree. Create one with New; the zero
// value is not usable.
//
// An RTree is not safe for concurrent use. Mutating operations reuse
// per-tree scratch buffers and must not be re-entered from within a query
// callback on the same tree; callbacks may freely query other trees or
// frozen indexes.
type RTree struct {
	maxNodeEntries int
	minNodeEntries int
	selfCheck      bool

	// nodes is the node arena, addressed by node id. A removed node keeps its
	// slot, with its id on deletedNodeIDs, until the id is handed out again.
	nodes          []*node
	deletedNodeIDs prim.IntArray

	// Scratch reused across mutating calls: the descent path as parallel
	// stacks of node ids and entry indexes, and the per-split entry state.
	parents      prim.IntArray
	parentsEntry prim.IntArray
	entryStatus  []byte

	treeHeight int // leaves are always level 1
	rootNodeID int32
	size       int
}

const (
	entryStatusAssigned   byte = 0
	entryStatusUnassigned byte = 1
)

// New creates an empty R-tree. Invalid configuration values are replaced by
// defaults, see Config.
func New(cfg Config) *RTree {
	cfg = cfg.normalized()
	t := &RTree{
		maxNodeEntries: cfg.MaxNodeEntries,
		minNodeEntries: cfg.MinNodeEntries,
		selfCheck:      cfg.SelfCheck,
		entryStatus:    make([]byte, cfg.MaxNodeEntries),
		treeHeight:     1,
	}
	t.putNode(t.rootNodeID, newNode(t.rootNodeID, 1, t.maxNodeEntries))
	T().Debugf("spatial: new R-tree with MaxNodeEntries=%d, MinNodeEntries=%d",
		t.maxNodeEntries, t.minNodeEntries)
	return t
}

// Size returns the number of entries in the tree.
func (t *RTree) Size() int {
	return t.size
}

// Bounds returns the MBR of all entries. ok is false iff the tree is empty.
func (t *RTree) Bounds() (bounds geom.Rect, ok bool) {
	root := t.node(t.rootNodeID)
	if root == nil || root.entryCount == 0 {
		return geom.Rect{}, false
	}
	return root.mbr(), true
}

// Clear removes all entries, releasing the node arena.
func (t *RTree) Clear() {
	t.nodes = nil
	t.deletedNodeIDs.Clear()
	t.parents.Clear()
	t.parentsEntry.Clear()
	t.treeHeight = 1
	t.rootNodeID = 0
	t.size = 0
	t.putNode(t.rootNodeID, newNode(t.rootNodeID, 1, t.maxNodeEntries))
}

// Add inserts rectangle r with the given id. Inserting more than one
// rectangle with the same id is undefined (Delete will remove one of them).
func (t *RTree) Add(r geom.Rect, id int) {
	T().Debugf("spatial: adding rectangle %v, id %d", r, id)
	t.addAt(r.MinX, r.MinY, r.MaxX, r.MaxY, int32(id), 1)
	t.size++
	if t.selfCheck {
		if err := t.CheckConsistency(); err != nil {
			T().Errorf("spatial: after add: %v", err)
		}
	}
}

// AddIndex re-inserts all leaf entries of a frozen index into this tree.
func (t *RTree) AddIndex(idx *Index) {
	for _, n := range idx.nodes {
		if n == nil || !n.isLeaf() {
			continue
		}
		for i := 0; i < n.entryCount; i++ {
			t.addAt(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i], n.ids[i], 1)
			t.size++
			if t.selfCheck {
				if err := t.CheckConsistency(); err != nil {
					T().Errorf("spatial: after add: %v", err)
				}
			}
		}
	}
}

// addAt inserts an entry at the given level: 1 for regular adds, higher for
// re-inserting the entries of nodes eliminated during condensation.
func (t *RTree) addAt(minX, minY, maxX, maxY float32, id int32, level int) {
	// I1: choose the node to hold the new entry, recording the descent path
	n := t.chooseNode(minX, minY, maxX, maxY, level)
	var newLeaf *node

	// I2: install the entry, splitting the node if it is full
	if n.entryCount < t.maxNodeEntries {
		n.addEntry(minX, minY, maxX, maxY, id)
	} else {
		newLeaf = t.splitNode(n, minX, minY, maxX, maxY, id)
	}

	// I3: propagate MBR changes and splits upwards
	newNode := t.adjustTree(n, newLeaf)

	// I4: if the root was split, grow the tree by a new root holding both
	if newNode != nil {
		oldRoot := t.node(t.rootNodeID)
		t.rootNodeID = t.nextNodeID()
		t.treeHeight++
		root := newNode2(t.rootNodeID, t.treeHeight, t.maxNodeEntries,
			newNode, oldRoot)
		t.putNode(t.rootNodeID, root)
	}
}

// newNode2 allocates a node holding exactly the two given children.
func newNode2(nodeID int32, level int, maxNodeEntries int, a, b *node) *node {
	n := newNode(nodeID, level, maxNodeEntries)
	n.addEntry(a.mbrMinX, a.mbrMinY, a.mbrMaxX, a.mbrMaxY, a.nodeID)
	n.addEntry(b.mbrMinX, b.mbrMinY, b.mbrMaxX, b.mbrMaxY, b.nodeID)
	return n
}

// chooseNode descends from the root to the target level, at each step picking
// the entry needing least enlargement to include the new rectangle (ties by
// smaller area). The descent path is recorded in the parents stacks for
// adjustTree.
func (t *RTree) chooseNode(minX, minY, maxX, maxY float32, level int) *node {
	n := t.node(t.rootNodeID)
	t.parents.Reset()
	t.parentsEntry.Reset()

	for {
		if n == nil {
			T().Errorf("spatial: could not get root node (%d)", t.rootNodeID)
		}
		if n.level == level {
			return n
		}

		leastArea := geom.Area(n.entriesMinX[0], n.entriesMinY[0], n.entriesMaxX[0], n.entriesMaxY[0])
		leastEnlargement := geom.Enlargement(n.entriesMinX[0], n.entriesMinY[0], n.entriesMaxX[0], n.entriesMaxY[0],
			minX, minY, maxX, maxY)
		index := 0
		for i := 1; i < n.entryCount; i++ {
			tempArea := geom.Area(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i])
			tempEnlargement := geom.Enlargement(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i],
				minX, minY, maxX, maxY)
			if tempEnlargement < leastEnlargement ||
				(tempEnlargement == leastEnlargement && tempArea < leastArea) {
				index = i
				leastArea = tempArea
				leastEnlargement = tempEnlargement
			}
		}

		t.parents.Push(n.nodeID)
		t.parentsEntry.Push(int32(index))

		n = t.node(n.ids[index])
	}
}

// adjustTree ascends the recorded descent path, refreshing parent entry MBRs
// and propagating a split sibling. Returns the sibling of the root if the
// split reached it.
func (t *RTree) adjustTree(n, nn *node) *node {
	for n.level != t.treeHeight {
		parent := t.node(t.parents.Pop())
		entry := int(t.parentsEntry.Pop())

		if parent.ids[entry] != n.nodeID {
			T().Errorf("spatial: entry %d in node %d should point to node %d; actually points to node %d",
				entry, parent.nodeID, n.nodeID, parent.ids[entry])
		}

		if parent.entriesMinX[entry] != n.mbrMinX || parent.entriesMinY[entry] != n.mbrMinY ||
			parent.entriesMaxX[entry] != n.mbrMaxX || parent.entriesMaxY[entry] != n.mbrMaxY {
			parent.entriesMinX[entry] = n.mbrMinX
			parent.entriesMinY[entry] = n.mbrMinY
			parent.entriesMaxX[entry] = n.mbrMaxX
			parent.entriesMaxY[entry] = n.mbrMaxY
			parent.recalculateMBR()
		}

		var newNode *node
		if nn != nil {
			if parent.entryCount < t.maxNodeEntries {
				parent.addEntry(nn.mbrMinX, nn.mbrMinY, nn.mbrMaxX, nn.mbrMaxY, nn.nodeID)
			} else {
				newNode = t.splitNode(parent, nn.mbrMinX, nn.mbrMinY, nn.mbrMaxX, nn.mbrMaxY, nn.nodeID)
			}
		}

		n = parent
		nn = newNode
	}
	return nn
}

// Arena bookkeeping. Node ids of removed nodes go to a free list and are
// handed out again before the arena grows.

func (t *RTree) node(id int32) *node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

func (t *RTree) rootID() int32 {
	return t.rootNodeID
}

func (t *RTree) nextNodeID() int32 {
	if t.deletedNodeIDs.IsEmpty() {
		return int32(len(t.nodes))
	}
	return t.deletedNodeIDs.Pop()
}

func (t *RTree) putNode(id int32, n *node) {
	if int(id) == len(t.nodes) {
		t.nodes = append(t.nodes, n)
	} else {
		t.nodes[id] = n
	}
}

func (t *RTree) removeNode(id int32) {
	t.deletedNodeIDs.Push(id)
}
