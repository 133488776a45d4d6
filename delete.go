package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"math"

	"github.com/npillmayer/spatial/geom"
	"github.com/npillmayer/spatial/prim"
)

// Delete removes the entry matching rectangle r (exact coordinates) and id.
// It returns false if no such entry exists, or if the rectangle was found
// with a different id.
func (t *RTree) Delete(r geom.Rect, id int) bool {
	// Find the leaf holding the entry. An entry can only live below internal
	// entries whose MBR contains it, so the descent tests containment, not
	// mere overlap. Non-recursive: the parents stacks remember where to
	// resume after backtracking, and afterwards hold the path for
	// condenseTree.
	t.parents.Reset()
	t.parents.Push(t.rootNodeID)
	t.parentsEntry.Reset()
	t.parentsEntry.Push(-1)

	var n *node
	foundIndex := -1

	for foundIndex == -1 && t.parents.Size() > 0 {
		n = t.node(t.parents.Peek())
		startIndex := int(t.parentsEntry.Peek()) + 1

		if !n.isLeaf() {
			T().Debugf("spatial: searching node %d, from index %d", n.nodeID, startIndex)
			descended := false
			for i := startIndex; i < n.entryCount; i++ {
				if geom.Contains(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i],
					r.MinX, r.MinY, r.MaxX, r.MaxY) {
					t.parents.Push(n.ids[i])
					t.parentsEntry.Pop()
					t.parentsEntry.Push(int32(i)) // resume here once the child is done
					t.parentsEntry.Push(-1)
					descended = true
					break
				}
			}
			if descended {
				continue
			}
		} else {
			foundIndex = n.findEntry(r.MinX, r.MinY, r.MaxX, r.MaxY, int32(id))
		}

		t.parents.Pop()
		t.parentsEntry.Pop()
	}

	if foundIndex != -1 && n != nil {
		n.deleteEntry(foundIndex)
		t.condenseTree(n)
		t.size--
	}

	// Shrink the tree while the root holds a single entry and is not a
	// leaf: its sole child becomes the new root.
	root := t.node(t.rootNodeID)
	for root.entryCount == 1 && t.treeHeight > 1 {
		t.removeNode(t.rootNodeID)
		root.entryCount = 0
		t.rootNodeID = root.ids[0]
		t.treeHeight--
		root = t.node(t.rootNodeID)
	}

	// An empty tree keeps its root node; restore the MBR sentinel so that
	// the next insertion initializes it.
	if t.size == 0 {
		root.mbrMinX = math.MaxFloat32
		root.mbrMinY = math.MaxFloat32
		root.mbrMaxX = -math.MaxFloat32
		root.mbrMaxY = -math.MaxFloat32
	}

	if t.selfCheck {
		if err := t.CheckConsistency(); err != nil {
			T().Errorf("spatial: after delete: %v", err)
		}
	}

	return foundIndex != -1
}

// condenseTree walks from a leaf up to the root after a deletion. Under-full
// nodes are unhooked from their parents and queued; their surviving entries
// are afterwards re-inserted at their original level and the node ids
// released for reuse. Nodes that stay tighten their parent's entry MBR.
// Expects the parents stacks to hold the path recorded by Delete.
func (t *RTree) condenseTree(l *node) {
	n := l
	var eliminatedNodeIDs prim.IntArray

	for n.level != t.treeHeight {
		parent := t.node(t.parents.Pop())
		parentEntry := int(t.parentsEntry.Pop())

		if n.entryCount < t.minNodeEntries {
			parent.deleteEntry(parentEntry)
			eliminatedNodeIDs.Push(n.nodeID)
		} else if n.mbrMinX != parent.entriesMinX[parentEntry] || n.mbrMinY != parent.entriesMinY[parentEntry] ||
			n.mbrMaxX != parent.entriesMaxX[parentEntry] || n.mbrMaxY != parent.entriesMaxY[parentEntry] {
			deletedMinX := parent.entriesMinX[parentEntry]
			deletedMinY := parent.entriesMinY[parentEntry]
			deletedMaxX := parent.entriesMaxX[parentEntry]
			deletedMaxY := parent.entriesMaxY[parentEntry]
			parent.entriesMinX[parentEntry] = n.mbrMinX
			parent.entriesMinY[parentEntry] = n.mbrMinY
			parent.entriesMaxX[parentEntry] = n.mbrMaxX
			parent.entriesMaxY[parentEntry] = n.mbrMaxY
			parent.recalculateMBRIfInfluencedBy(deletedMinX, deletedMinY, deletedMaxX, deletedMaxY)
		}
		n = parent
	}

	// Re-insert orphaned entries. Entries of eliminated leaves go back into
	// leaves; entries of higher nodes go back at their node's level, so the
	// subtrees hanging off them keep their leaves at level 1.
	for eliminatedNodeIDs.Size() > 0 {
		e := t.node(eliminatedNodeIDs.Pop())
		for j := 0; j < e.entryCount; j++ {
			t.addAt(e.entriesMinX[j], e.entriesMinY[j], e.entriesMaxX[j], e.entriesMaxY[j], e.ids[j], e.level)
			e.ids[j] = -1
		}
		e.entryCount = 0
		t.removeNode(e.nodeID)
	}
}
