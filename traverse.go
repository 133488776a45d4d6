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

// Callback receives one matching entry id per call. Returning false aborts
// the running traversal; results delivered up to that point stand.
type Callback func(id int) bool

// nodeSource is the capability the query algorithms run against: resolving a
// node id to a node, and naming the root. Both the mutable RTree and the
// frozen Index provide it, so one implementation serves both.
type nodeSource interface {
	node(id int32) *node
	rootID() int32
}

// Intersects calls cb for every entry whose rectangle intersects r.
func (t *RTree) Intersects(r geom.Rect, cb Callback) {
	intersectsQuery(t, r, cb)
}

// Contains calls cb for every entry whose rectangle lies inside r.
func (t *RTree) Contains(r geom.Rect, cb Callback) {
	containsQuery(t, r, cb)
}

// Nearest calls cb for every entry at minimal distance from p; multiple
// entries are reported when they are equally near. Entries beyond
// furthestDistance are ignored; pass +Inf to always find the nearest entry.
func (t *RTree) Nearest(p geom.Point, cb Callback, furthestDistance float32) {
	nearestQuery(t, p, cb, furthestDistance)
}

// NearestN calls cb for the count entries nearest to p in order of
// increasing distance. Fewer entries are reported when fewer lie within
// furthestDistance; more when the entries at the cutoff distance tie.
func (t *RTree) NearestN(p geom.Point, cb Callback, count int, furthestDistance float32) {
	nearestNQuery(t, p, cb, count, furthestDistance, true)
}

// NearestNUnsorted is NearestN without the ordering guarantee, which saves
// the final heap re-sort for large result counts.
func (t *RTree) NearestNUnsorted(p geom.Point, cb Callback, count int, furthestDistance float32) {
	nearestNQuery(t, p, cb, count, furthestDistance, false)
}

// intersectsQuery descends recursively, pruning subtrees whose MBR misses r.
func intersectsQuery(src nodeSource, r geom.Rect, cb Callback) {
	rootNode := src.node(src.rootID())
	if rootNode == nil {
		return
	}
	intersectsRec(src, r, cb, rootNode)
}

func intersectsRec(src nodeSource, r geom.Rect, cb Callback, n *node) bool {
	for i := 0; i < n.entryCount; i++ {
		if geom.Intersects(r.MinX, r.MinY, r.MaxX, r.MaxY,
			n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i]) {
			if n.isLeaf() {
				if !cb(int(n.ids[i])) {
					return false
				}
			} else {
				if !intersectsRec(src, r, cb, src.node(n.ids[i])) {
					return false
				}
			}
		}
	}
	return true
}

// containsQuery walks the tree without recursion. Two parallel stacks hold
// the path of node ids and, per node, the index of the entry descended into
// last; exhausting a node pops both. Internal entries are followed when they
// intersect r, leaf entries reported when r contains them.
func containsQuery(src nodeSource, r geom.Rect, cb Callback) {
	var parents, parentsEntry prim.IntArray
	root := src.rootID()
	if src.node(root) == nil {
		return
	}
	parents.Push(root)
	parentsEntry.Push(-1)

LOOP:
	for parents.Size() > 0 {
		n := src.node(parents.Peek())
		startIndex := int(parentsEntry.Peek()) + 1

		if !n.isLeaf() {
			for i := startIndex; i < n.entryCount; i++ {
				if geom.Intersects(r.MinX, r.MinY, r.MaxX, r.MaxY,
					n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i]) {
					parents.Push(n.ids[i])
					parentsEntry.Pop()
					parentsEntry.Push(int32(i)) // resume here once the child is done
					parentsEntry.Push(-1)
					continue LOOP
				}
			}
		} else {
			for i := 0; i < n.entryCount; i++ {
				if geom.Contains(r.MinX, r.MinY, r.MaxX, r.MaxY,
					n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i]) {
					if !cb(int(n.ids[i])) {
						return
					}
				}
			}
		}
		parents.Pop()
		parentsEntry.Pop()
	}
}

// nearestQuery collects all entry ids sharing the smallest distance to p,
// then reports them. The ids must be collected rather than streamed: a
// nearer entry found later invalidates everything gathered before.
func nearestQuery(src nodeSource, p geom.Point, cb Callback, furthestDistance float32) {
	rootNode := src.node(src.rootID())
	if rootNode == nil {
		return
	}
	furthestDistanceSq := furthestDistance * furthestDistance
	var nearestIDs prim.IntArray
	nearestRec(src, p, rootNode, furthestDistanceSq, &nearestIDs)
	nearestIDs.ForEach(func(id int32) bool {
		return cb(int(id))
	})
}

func nearestRec(src nodeSource, p geom.Point, n *node, furthestDistanceSq float32, nearestIDs *prim.IntArray) float32 {
	for i := 0; i < n.entryCount; i++ {
		tempDistanceSq := geom.DistanceSq(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i], p.X, p.Y)
		if n.isLeaf() {
			if tempDistanceSq < furthestDistanceSq {
				furthestDistanceSq = tempDistanceSq
				nearestIDs.Reset() // strictly nearer: drop all gathered ids
			}
			if tempDistanceSq <= furthestDistanceSq {
				nearestIDs.Add(n.ids[i])
			}
		} else if tempDistanceSq <= furthestDistanceSq {
			// only subtrees that could hold a nearer entry
			furthestDistanceSq = nearestRec(src, p, src.node(n.ids[i]), furthestDistanceSq, nearestIDs)
		}
	}
	return furthestDistanceSq
}

// nearestNQuery gathers the count nearest entries into a worst-first queue,
// then drains it: flipped to nearest-first for the sorted variant, as-is
// otherwise.
func nearestNQuery(src nodeSource, p geom.Point, cb Callback, count int, furthestDistance float32, sorted bool) {
	distanceQueue := prim.NewPriorityQueue(prim.SortOrderDescending)
	createNearestNDistanceQueue(src, p, count, distanceQueue, furthestDistance)
	if sorted {
		distanceQueue.SetSortOrder(prim.SortOrderAscending)
	}
	for distanceQueue.Size() > 0 {
		if !cb(int(distanceQueue.Value())) {
			return
		}
		distanceQueue.Pop()
	}
}

// createNearestNDistanceQueue fills a descending queue with the count
// entries nearest to p, keeping all entries tied at the cutoff distance (so
// the queue may exceed count). Subtrees further away than the current worst
// kept distance are pruned, and that bound shrinks as better entries arrive.
func createNearestNDistanceQueue(src nodeSource, p geom.Point, count int, distanceQueue *prim.PriorityQueue, furthestDistance float32) {
	if count <= 0 {
		return
	}
	root := src.rootID()
	if src.node(root) == nil {
		return
	}

	var parents, parentsEntry prim.IntArray
	parents.Push(root)
	parentsEntry.Push(-1)

	// Entries popped over the count limit are remembered as long as they
	// share the priority still at the top: a subsequent pop at the same
	// distance means they were ties at the cutoff and belong back in.
	var savedValues prim.IntArray
	var savedPriority float32

	furthestDistanceSq := furthestDistance * furthestDistance

LOOP:
	for parents.Size() > 0 {
		n := src.node(parents.Peek())
		startIndex := int(parentsEntry.Peek()) + 1

		if !n.isLeaf() {
			for i := startIndex; i < n.entryCount; i++ {
				if geom.DistanceSq(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i], p.X, p.Y) <= furthestDistanceSq {
					parents.Push(n.ids[i])
					parentsEntry.Pop()
					parentsEntry.Push(int32(i)) // resume here once the child is done
					parentsEntry.Push(-1)
					continue LOOP
				}
			}
		} else {
			for i := 0; i < n.entryCount; i++ {
				entryDistanceSq := geom.DistanceSq(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i], p.X, p.Y)
				entryID := n.ids[i]

				if entryDistanceSq <= furthestDistanceSq {
					distanceQueue.Insert(entryID, entryDistanceSq)

					for distanceQueue.Size() > count {
						value := distanceQueue.Value()
						distanceSq := distanceQueue.Priority()
						distanceQueue.Pop()

						if distanceSq == distanceQueue.Priority() {
							savedValues.Add(value)
							savedPriority = distanceSq
						} else {
							savedValues.Reset()
						}
					}

					// ties at the cutoff distance go back in
					if savedValues.Size() > 0 && savedPriority == distanceQueue.Priority() {
						for svi := 0; svi < savedValues.Size(); svi++ {
							distanceQueue.Insert(savedValues.Get(svi), savedPriority)
						}
						savedValues.Reset()
					}

					if distanceQueue.Priority() < furthestDistanceSq && distanceQueue.Size() >= count {
						furthestDistanceSq = distanceQueue.Priority()
					}
				}
			}
		}
		parents.Pop()
		parentsEntry.Pop()
	}
}
