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

// splitNode distributes the entries of a full node n plus one new entry over
// n and a freshly allocated sibling, following Guttman's quadratic algorithm
// with a linear dimension-wise seed pick. Returns the sibling.
func (t *RTree) splitNode(n *node, newRectMinX, newRectMinY, newRectMaxX, newRectMaxY float32, newID int32) *node {
	for i := range t.entryStatus {
		t.entryStatus[i] = entryStatusUnassigned
	}

	newNode := newNode(t.nextNodeID(), n.level, t.maxNodeEntries)
	t.putNode(newNode.nodeID, newNode)

	// also sets n.entryCount to 1
	t.pickSeeds(n, newRectMinX, newRectMinY, newRectMaxX, newRectMaxY, newID, newNode)

	// QS2: if one group must swallow all remaining entries to reach the
	// minimum, assign them wholesale; otherwise pick entries one by one.
	for n.entryCount+newNode.entryCount < t.maxNodeEntries+1 {
		if t.maxNodeEntries+1-newNode.entryCount == t.minNodeEntries {
			// assign all remaining entries to the original node
			for i := 0; i < t.maxNodeEntries; i++ {
				if t.entryStatus[i] == entryStatusUnassigned {
					t.entryStatus[i] = entryStatusAssigned
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
					n.entryCount++
				}
			}
			break
		}
		if t.maxNodeEntries+1-n.entryCount == t.minNodeEntries {
			// assign all remaining entries to the new node
			for i := 0; i < t.maxNodeEntries; i++ {
				if t.entryStatus[i] == entryStatusUnassigned {
					t.entryStatus[i] = entryStatusAssigned
					newNode.addEntry(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i], n.ids[i])
					n.ids[i] = -1
				}
			}
			break
		}

		t.pickNext(n, newNode)
	}

	n.reorganize(t.maxNodeEntries)

	if t.selfCheck {
		if got, want := n.mbr(), calculateMBR(n); got != want {
			T().Errorf("spatial: splitNode old node MBR wrong")
		}
		if got, want := newNode.mbr(), calculateMBR(newNode); got != want {
			T().Errorf("spatial: splitNode new node MBR wrong")
		}
	}

	return newNode
}

// pickSeeds selects the two entries anchoring the split groups: per
// dimension the entry with the highest low side and the one with the lowest
// high side, normalized by the node's span in that dimension, keeping the
// most separated pair across both dimensions. The new rectangle participates
// as candidate, denoted by index −1.
func (t *RTree) pickSeeds(n *node, newRectMinX, newRectMinY, newRectMaxX, newRectMaxY float32, newID int32, newNode *node) {
	// start at −1 so that even fully overlapping rectangles yield seeds
	maxNormalizedSeparation := float32(-1)
	highestLowIndex := -1
	lowestHighIndex := -1

	// for seed picking, the node MBR includes the new rectangle
	if newRectMinX < n.mbrMinX {
		n.mbrMinX = newRectMinX
	}
	if newRectMinY < n.mbrMinY {
		n.mbrMinY = newRectMinY
	}
	if newRectMaxX > n.mbrMaxX {
		n.mbrMaxX = newRectMaxX
	}
	if newRectMaxY > n.mbrMaxY {
		n.mbrMaxY = newRectMaxY
	}

	mbrLenX := n.mbrMaxX - n.mbrMinX
	mbrLenY := n.mbrMaxY - n.mbrMinY

	tempHighestLow := newRectMinX
	tempHighestLowIndex := -1 // −1 means the new rectangle is the seed
	tempLowestHigh := newRectMaxX
	tempLowestHighIndex := -1

	for i := 0; i < n.entryCount; i++ {
		tempLow := n.entriesMinX[i]
		if tempLow >= tempHighestLow {
			tempHighestLow = tempLow
			tempHighestLowIndex = i
		} else {
			// the same index must not become both highestLow and lowestHigh
			tempHigh := n.entriesMaxX[i]
			if tempHigh <= tempLowestHigh {
				tempLowestHigh = tempHigh
				tempLowestHighIndex = i
			}
		}

		// PS2: normalize the separation by the node's span
		normalizedSeparation := float32(1)
		if mbrLenX != 0 {
			normalizedSeparation = (tempHighestLow - tempLowestHigh) / mbrLenX
		}
		if normalizedSeparation > 1 || normalizedSeparation < -1 {
			T().Errorf("spatial: invalid normalized separation X")
		}

		// PS3: keep the most extreme pair over both dimensions; negative
		// separation means overlap, still usable if nothing better exists
		if normalizedSeparation >= maxNormalizedSeparation {
			highestLowIndex = tempHighestLowIndex
			lowestHighIndex = tempLowestHighIndex
			maxNormalizedSeparation = normalizedSeparation
		}
	}

	// repeat for the Y dimension
	tempHighestLow = newRectMinY
	tempHighestLowIndex = -1
	tempLowestHigh = newRectMaxY
	tempLowestHighIndex = -1

	for i := 0; i < n.entryCount; i++ {
		tempLow := n.entriesMinY[i]
		if tempLow >= tempHighestLow {
			tempHighestLow = tempLow
			tempHighestLowIndex = i
		} else {
			tempHigh := n.entriesMaxY[i]
			if tempHigh <= tempLowestHigh {
				tempLowestHigh = tempHigh
				tempLowestHighIndex = i
			}
		}

		normalizedSeparation := float32(1)
		if mbrLenY != 0 {
			normalizedSeparation = (tempHighestLow - tempLowestHigh) / mbrLenY
		}
		if normalizedSeparation > 1 || normalizedSeparation < -1 {
			T().Errorf("spatial: invalid normalized separation Y")
		}

		if normalizedSeparation >= maxNormalizedSeparation {
			highestLowIndex = tempHighestLowIndex
			lowestHighIndex = tempLowestHighIndex
			maxNormalizedSeparation = normalizedSeparation
		}
	}

	// Degenerate case: every rectangle overlaps the new one, so the new
	// rectangle came out as both seeds. Resolve by scanning for the lowest
	// minY and the largest maxX instead, always two different entries.
	if highestLowIndex == lowestHighIndex {
		highestLowIndex = -1
		lowestHighIndex = 0
		tempMinY := newRectMinY
		tempMaxX := n.entriesMaxX[0]

		for i := 1; i < n.entryCount; i++ {
			if n.entriesMinY[i] < tempMinY {
				tempMinY = n.entriesMinY[i]
				highestLowIndex = i
			} else if n.entriesMaxX[i] > tempMaxX {
				tempMaxX = n.entriesMaxX[i]
				lowestHighIndex = i
			}
		}
	}

	// the highestLow seed anchors the new node
	if highestLowIndex == -1 {
		newNode.addEntry(newRectMinX, newRectMinY, newRectMaxX, newRectMaxY, newID)
	} else {
		newNode.addEntry(n.entriesMinX[highestLowIndex], n.entriesMinY[highestLowIndex],
			n.entriesMaxX[highestLowIndex], n.entriesMaxY[highestLowIndex], n.ids[highestLowIndex])
		// the new rectangle takes over the vacated slot
		n.entriesMinX[highestLowIndex] = newRectMinX
		n.entriesMinY[highestLowIndex] = newRectMinY
		n.entriesMaxX[highestLowIndex] = newRectMaxX
		n.entriesMaxY[highestLowIndex] = newRectMaxY
		n.ids[highestLowIndex] = newID
	}

	// the lowestHigh seed anchors the original node
	if lowestHighIndex == -1 {
		lowestHighIndex = highestLowIndex
	}

	t.entryStatus[lowestHighIndex] = entryStatusAssigned
	n.entryCount = 1
	n.mbrMinX = n.entriesMinX[lowestHighIndex]
	n.mbrMinY = n.entriesMinY[lowestHighIndex]
	n.mbrMaxX = n.entriesMaxX[lowestHighIndex]
	n.mbrMaxY = n.entriesMaxY[lowestHighIndex]
}

// pickNext assigns one unassigned entry: the one with the greatest
// preference for either group, measured by the difference of the required
// MBR enlargements. Ties go to the smaller area, then the smaller group,
// then the new node.
func (t *RTree) pickNext(n, newNode *node) int {
	maxDifference := float32(math.Inf(-1))
	next := 0
	nextGroup := 0

	areaN := geom.Area(n.mbrMinX, n.mbrMinY, n.mbrMaxX, n.mbrMaxY)
	areaNewNode := geom.Area(newNode.mbrMinX, newNode.mbrMinY, newNode.mbrMaxX, newNode.mbrMaxY)

	for i := 0; i < t.maxNodeEntries; i++ {
		if t.entryStatus[i] != entryStatusUnassigned {
			continue
		}
		if n.ids[i] == -1 {
			T().Errorf("spatial: node %d, entry %d is null", n.nodeID, i)
		}

		nIncrease := geom.Enlargement(n.mbrMinX, n.mbrMinY, n.mbrMaxX, n.mbrMaxY,
			n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i])
		newNodeIncrease := geom.Enlargement(newNode.mbrMinX, newNode.mbrMinY, newNode.mbrMaxX, newNode.mbrMaxY,
			n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i])

		difference := nIncrease - newNodeIncrease
		if difference < 0 {
			difference = -difference
		}

		if difference > maxDifference {
			next = i
			switch {
			case nIncrease < newNodeIncrease:
				nextGroup = 0
			case newNodeIncrease < nIncrease:
				nextGroup = 1
			case areaN < areaNewNode:
				nextGroup = 0
			case areaNewNode < areaN:
				nextGroup = 1
			case n.entryCount < newNode.entryCount:
				nextGroup = 0
			default:
				nextGroup = 1
			}
			maxDifference = difference
		}
	}

	t.entryStatus[next] = entryStatusAssigned

	if nextGroup == 0 {
		// stays in n; only the MBR grows
		if n.entriesMinX[next] < n.mbrMinX {
			n.mbrMinX = n.entriesMinX[next]
		}
		if n.entriesMinY[next] < n.mbrMinY {
			n.mbrMinY = n.entriesMinY[next]
		}
		if n.entriesMaxX[next] > n.mbrMaxX {
			n.mbrMaxX = n.entriesMaxX[next]
		}
		if n.entriesMaxY[next] > n.mbrMaxY {
			n.mbrMaxY = n.entriesMaxY[next]
		}
		n.entryCount++
	} else {
		// moves to the new node, vacating its slot in n
		newNode.addEntry(n.entriesMinX[next], n.entriesMinY[next], n.entriesMaxX[next], n.entriesMaxY[next], n.ids[next])
		n.ids[next] = -1
	}

	return next
}

// calculateMBR computes a node's tight MBR from its entries; used by the
// consistency checks.
func calculateMBR(n *node) geom.Rect {
	mbr := geom.EmptyRect()
	for i := 0; i < n.entryCount; i++ {
		if n.entriesMinX[i] < mbr.MinX {
			mbr.MinX = n.entriesMinX[i]
		}
		if n.entriesMinY[i] < mbr.MinY {
			mbr.MinY = n.entriesMinY[i]
		}
		if n.entriesMaxX[i] > mbr.MaxX {
			mbr.MaxX = n.entriesMaxX[i]
		}
		if n.entriesMaxY[i] > mbr.MaxY {
			mbr.MaxY = n.entriesMaxY[i]
		}
	}
	return mbr
}
