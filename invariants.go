package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"

	"github.com/npillmayer/spatial/geom"
)

// CheckConsistency validates the structural invariants of the tree: node
// levels, cached MBRs against the tight MBRs of their entries, parent
// entries against child MBRs, and entry counts. It returns nil for a
// consistent tree.
//
// This checker is intentionally strict and is meant for tests and for the
// SelfCheck debug mode.
func (t *RTree) CheckConsistency() error {
	entries, err := t.checkNode(t.rootNodeID, t.treeHeight, nil)
	if err != nil {
		return err
	}
	if entries != t.size {
		return fmt.Errorf("%w: size %d does not match %d reachable leaf entries",
			ErrInconsistentTree, t.size, entries)
	}
	return nil
}

func (t *RTree) checkNode(nodeID int32, expectedLevel int, expectedMBR *geom.Rect) (entries int, err error) {
	n := t.node(nodeID)
	if n == nil {
		return 0, fmt.Errorf("%w: could not read node %d", ErrInconsistentTree, nodeID)
	}

	// an empty tree consists of exactly one node, at level 1
	if nodeID == t.rootNodeID && t.size == 0 && n.level != 1 {
		return 0, fmt.Errorf("%w: tree is empty but root node is at level %d",
			ErrInconsistentTree, n.level)
	}

	if n.level != expectedLevel {
		return 0, fmt.Errorf("%w: node %d at level %d, expected level %d",
			ErrInconsistentTree, nodeID, n.level, expectedLevel)
	}
	if n.entryCount > len(n.ids) {
		return 0, fmt.Errorf("%w: node %d entry count %d exceeds capacity %d",
			ErrInconsistentTree, nodeID, n.entryCount, len(n.ids))
	}
	if nodeID != t.rootNodeID && t.size > 0 && n.entryCount < t.minNodeEntries {
		return 0, fmt.Errorf("%w: node %d under-full with %d entries (minimum %d)",
			ErrInconsistentTree, nodeID, n.entryCount, t.minNodeEntries)
	}

	if calculated := calculateMBR(n); n.mbr() != calculated {
		return 0, fmt.Errorf("%w: node %d cached MBR %v differs from calculated MBR %v",
			ErrInconsistentTree, nodeID, n.mbr(), calculated)
	}
	if expectedMBR != nil && n.mbr() != *expectedMBR {
		return 0, fmt.Errorf("%w: node %d MBR %v differs from parent entry %v",
			ErrInconsistentTree, nodeID, n.mbr(), *expectedMBR)
	}

	for i := 0; i < n.entryCount; i++ {
		if n.ids[i] == -1 {
			return 0, fmt.Errorf("%w: node %d, entry %d is vacated", ErrInconsistentTree, nodeID, i)
		}
		if n.isLeaf() {
			entries++
			continue
		}
		childMBR := n.entryRect(i)
		childEntries, err := t.checkNode(n.ids[i], n.level-1, &childMBR)
		if err != nil {
			return 0, err
		}
		entries += childEntries
	}
	return entries, nil
}
