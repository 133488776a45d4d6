package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"math"

	"github.com/npillmayer/spatial/geom"
)

// node is one R-tree node. Entry rectangles are held in four parallel
// coordinate arrays plus an id array, all of length maxNodeEntries; valid
// entries are the slots below entryCount. For leaves (level 1) ids hold
// payload ids, for internal nodes they hold child node ids. An id of −1
// marks a slot vacated during a split.
//
// The cached MBR always equals the tight bounding rectangle of the valid
// entries, except transiently inside split bookkeeping.
type node struct {
	nodeID     int32
	level      int
	entryCount int

	entriesMinX []float32
	entriesMinY []float32
	entriesMaxX []float32
	entriesMaxY []float32
	ids         []int32

	mbrMinX, mbrMinY, mbrMaxX, mbrMaxY float32
}

func newNode(nodeID int32, level int, maxNodeEntries int) *node {
	n := &node{
		nodeID:      nodeID,
		level:       level,
		entriesMinX: make([]float32, maxNodeEntries),
		entriesMinY: make([]float32, maxNodeEntries),
		entriesMaxX: make([]float32, maxNodeEntries),
		entriesMaxY: make([]float32, maxNodeEntries),
		ids:         make([]int32, maxNodeEntries),
	}
	n.resetMBR()
	return n
}

func (n *node) isLeaf() bool {
	return n.level == 1
}

// resetMBR sets the cached MBR to the empty sentinel so that the next entry
// union initializes it.
func (n *node) resetMBR() {
	n.mbrMinX = math.MaxFloat32
	n.mbrMinY = math.MaxFloat32
	n.mbrMaxX = -math.MaxFloat32
	n.mbrMaxY = -math.MaxFloat32
}

// addEntry appends an entry and grows the cached MBR to cover it. The caller
// must guarantee room.
func (n *node) addEntry(minX, minY, maxX, maxY float32, id int32) {
	i := n.entryCount
	n.entriesMinX[i] = minX
	n.entriesMinY[i] = minY
	n.entriesMaxX[i] = maxX
	n.entriesMaxY[i] = maxY
	n.ids[i] = id
	n.entryCount++

	if minX < n.mbrMinX {
		n.mbrMinX = minX
	}
	if minY < n.mbrMinY {
		n.mbrMinY = minY
	}
	if maxX > n.mbrMaxX {
		n.mbrMaxX = maxX
	}
	if maxY > n.mbrMaxY {
		n.mbrMaxY = maxY
	}
}

// findEntry returns the index of the entry matching both the exact
// coordinates and the id, or −1.
func (n *node) findEntry(minX, minY, maxX, maxY float32, id int32) int {
	for i := 0; i < n.entryCount; i++ {
		if n.ids[i] == id &&
			n.entriesMinX[i] == minX && n.entriesMinY[i] == minY &&
			n.entriesMaxX[i] == maxX && n.entriesMaxY[i] == maxY {
			return i
		}
	}
	return -1
}

// deleteEntry removes the entry at index by moving the last entry into its
// slot, then restores the cached MBR if the removed rectangle touched it.
func (n *node) deleteEntry(index int) {
	deletedMinX := n.entriesMinX[index]
	deletedMinY := n.entriesMinY[index]
	deletedMaxX := n.entriesMaxX[index]
	deletedMaxY := n.entriesMaxY[index]

	last := n.entryCount - 1
	if index != last {
		n.entriesMinX[index] = n.entriesMinX[last]
		n.entriesMinY[index] = n.entriesMinY[last]
		n.entriesMaxX[index] = n.entriesMaxX[last]
		n.entriesMaxY[index] = n.entriesMaxY[last]
		n.ids[index] = n.ids[last]
	}
	n.entryCount--

	n.recalculateMBRIfInfluencedBy(deletedMinX, deletedMinY, deletedMaxX, deletedMaxY)
}

// recalculateMBRIfInfluencedBy recomputes the cached MBR if the given
// rectangle coincides with it on any side; only then can removing or
// shrinking that rectangle change the MBR.
func (n *node) recalculateMBRIfInfluencedBy(deletedMinX, deletedMinY, deletedMaxX, deletedMaxY float32) {
	if n.mbrMinX == deletedMinX || n.mbrMinY == deletedMinY ||
		n.mbrMaxX == deletedMaxX || n.mbrMaxY == deletedMaxY {
		n.recalculateMBR()
	}
}

// recalculateMBR recomputes the cached MBR from scratch.
func (n *node) recalculateMBR() {
	n.resetMBR()
	for i := 0; i < n.entryCount; i++ {
		if n.entriesMinX[i] < n.mbrMinX {
			n.mbrMinX = n.entriesMinX[i]
		}
		if n.entriesMinY[i] < n.mbrMinY {
			n.mbrMinY = n.entriesMinY[i]
		}
		if n.entriesMaxX[i] > n.mbrMaxX {
			n.mbrMaxX = n.entriesMaxX[i]
		}
		if n.entriesMaxY[i] > n.mbrMaxY {
			n.mbrMaxY = n.entriesMaxY[i]
		}
	}
}

// reorganize compacts the entries after a split has vacated slots (id −1),
// pulling entries down from the top of the arrays into the holes.
func (n *node) reorganize(maxNodeEntries int) {
	countdownIndex := maxNodeEntries - 1
	for index := 0; index < n.entryCount; index++ {
		if n.ids[index] == -1 {
			for n.ids[countdownIndex] == -1 && countdownIndex > index {
				countdownIndex--
			}
			n.entriesMinX[index] = n.entriesMinX[countdownIndex]
			n.entriesMinY[index] = n.entriesMinY[countdownIndex]
			n.entriesMaxX[index] = n.entriesMaxX[countdownIndex]
			n.entriesMaxY[index] = n.entriesMaxY[countdownIndex]
			n.ids[index] = n.ids[countdownIndex]
			n.ids[countdownIndex] = -1
		}
	}
}

// entryRect returns entry i as a value rectangle (not used by hot loops).
func (n *node) entryRect(i int) geom.Rect {
	return geom.Rect{
		MinX: n.entriesMinX[i],
		MinY: n.entriesMinY[i],
		MaxX: n.entriesMaxX[i],
		MaxY: n.entriesMaxY[i],
	}
}

// mbr returns the cached MBR as a value rectangle.
func (n *node) mbr() geom.Rect {
	return geom.Rect{MinX: n.mbrMinX, MinY: n.mbrMinY, MaxX: n.mbrMaxX, MaxY: n.mbrMaxY}
}
