package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/npillmayer/spatial/prim"
)

// Persisted state is a sequence of fixed little-endian records. Primitive
// arrays serialize as a 4-byte length followed by length × 4 bytes. A node
// serializes as level, entryCount, the four coordinate arrays, the id array,
// and the four cached MBR floats. The tree header carries maxNodeEntries,
// minNodeEntries, treeHeight, rootNodeId and size, followed by the node
// count and the packed node records. Freed nodes persist like live ones;
// the free list is rebuilt on load from the ids unreachable from the root.

// MarshalBinary encodes the full tree state.
func (t *RTree) MarshalBinary() ([]byte, error) {
	nodeBytes := 8 + 5*(4+4*t.maxNodeEntries) + 16
	out := make([]byte, 0, 24+len(t.nodes)*nodeBytes)

	putInt := func(v int32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		out = append(out, b[:]...)
	}
	putFloat := func(v float32) {
		putInt(int32(math.Float32bits(v)))
	}
	putFloatArray := func(vs []float32) {
		putInt(int32(len(vs)))
		for _, v := range vs {
			putFloat(v)
		}
	}
	putIntArray := func(vs []int32) {
		putInt(int32(len(vs)))
		for _, v := range vs {
			putInt(v)
		}
	}

	putInt(int32(t.maxNodeEntries))
	putInt(int32(t.minNodeEntries))
	putInt(int32(t.treeHeight))
	putInt(t.rootNodeID)
	putInt(int32(t.size))

	putInt(int32(len(t.nodes)))
	for _, n := range t.nodes {
		putInt(int32(n.level))
		putInt(int32(n.entryCount))
		putFloatArray(n.entriesMinX)
		putFloatArray(n.entriesMinY)
		putFloatArray(n.entriesMaxX)
		putFloatArray(n.entriesMaxY)
		putIntArray(n.ids)
		putFloat(n.mbrMinX)
		putFloat(n.mbrMinY)
		putFloat(n.mbrMaxX)
		putFloat(n.mbrMaxY)
	}
	return out, nil
}

// UnmarshalBinary restores the tree from data produced by MarshalBinary,
// replacing the receiver's contents and configuration. The SelfCheck setting
// is kept.
func (t *RTree) UnmarshalBinary(data []byte) error {
	off := 0
	fail := func(what string) error {
		return fmt.Errorf("%w: truncated %s at offset %d", ErrCorruptState, what, off)
	}
	getInt := func() (int32, bool) {
		if off+4 > len(data) {
			return 0, false
		}
		v := int32(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		return v, true
	}
	getFloat := func() (float32, bool) {
		v, ok := getInt()
		return math.Float32frombits(uint32(v)), ok
	}

	var header [5]int32
	for i := range header {
		v, ok := getInt()
		if !ok {
			return fail("header")
		}
		header[i] = v
	}
	maxNodeEntries := int(header[0])
	minNodeEntries := int(header[1])
	treeHeight := int(header[2])
	rootNodeID := header[3]
	size := int(header[4])
	if maxNodeEntries < 2 || minNodeEntries < 1 || minNodeEntries > maxNodeEntries/2 {
		return fmt.Errorf("%w: invalid node capacities %d/%d", ErrCorruptState, maxNodeEntries, minNodeEntries)
	}
	if treeHeight < 1 || size < 0 {
		return fmt.Errorf("%w: invalid tree shape height=%d size=%d", ErrCorruptState, treeHeight, size)
	}

	nodeCount, ok := getInt()
	if !ok || nodeCount < 1 || int64(nodeCount)*20 > int64(len(data)) {
		return fail("node count")
	}
	if int(rootNodeID) < 0 || int(rootNodeID) >= int(nodeCount) {
		return fmt.Errorf("%w: root node id %d outside arena of %d nodes", ErrCorruptState, rootNodeID, nodeCount)
	}

	getFloatArray := func() ([]float32, bool) {
		length, ok := getInt()
		if !ok || int(length) != maxNodeEntries {
			return nil, false
		}
		vs := make([]float32, length)
		for i := range vs {
			if vs[i], ok = getFloat(); !ok {
				return nil, false
			}
		}
		return vs, true
	}

	nodes := make([]*node, 0, nodeCount)
	for id := int32(0); id < nodeCount; id++ {
		level, ok1 := getInt()
		entryCount, ok2 := getInt()
		if !ok1 || !ok2 {
			return fail("node record")
		}
		if level < 1 || int(entryCount) < 0 || int(entryCount) > maxNodeEntries {
			return fmt.Errorf("%w: node %d has level %d, entry count %d", ErrCorruptState, id, level, entryCount)
		}
		n := &node{nodeID: id, level: int(level), entryCount: int(entryCount)}
		if n.entriesMinX, ok = getFloatArray(); !ok {
			return fail("coordinate array")
		}
		if n.entriesMinY, ok = getFloatArray(); !ok {
			return fail("coordinate array")
		}
		if n.entriesMaxX, ok = getFloatArray(); !ok {
			return fail("coordinate array")
		}
		if n.entriesMaxY, ok = getFloatArray(); !ok {
			return fail("coordinate array")
		}
		idsLen, ok := getInt()
		if !ok || int(idsLen) != maxNodeEntries {
			return fail("id array")
		}
		n.ids = make([]int32, idsLen)
		for i := range n.ids {
			if n.ids[i], ok = getInt(); !ok {
				return fail("id array")
			}
		}
		if n.mbrMinX, ok = getFloat(); !ok {
			return fail("node MBR")
		}
		if n.mbrMinY, ok = getFloat(); !ok {
			return fail("node MBR")
		}
		if n.mbrMaxX, ok = getFloat(); !ok {
			return fail("node MBR")
		}
		if n.mbrMaxY, ok = getFloat(); !ok {
			return fail("node MBR")
		}
		nodes = append(nodes, n)
	}

	t.maxNodeEntries = maxNodeEntries
	t.minNodeEntries = minNodeEntries
	t.treeHeight = treeHeight
	t.rootNodeID = rootNodeID
	t.size = size
	t.nodes = nodes
	t.entryStatus = make([]byte, maxNodeEntries)
	t.parents.Clear()
	t.parentsEntry.Clear()
	t.deletedNodeIDs = rebuildFreeList(nodes, rootNodeID)
	return nil
}

// rebuildFreeList collects the arena slots not reachable from the root; the
// free list itself is not part of the persisted state.
func rebuildFreeList(nodes []*node, rootNodeID int32) prim.IntArray {
	reachable := make([]bool, len(nodes))
	var stack prim.IntArray
	stack.Push(rootNodeID)
	for stack.Size() > 0 {
		id := stack.Pop()
		if int(id) >= len(nodes) || reachable[id] {
			continue
		}
		reachable[id] = true
		n := nodes[id]
		if n.isLeaf() {
			continue
		}
		for i := 0; i < n.entryCount; i++ {
			stack.Push(n.ids[i])
		}
	}
	var free prim.IntArray
	for id := range nodes {
		if !reachable[id] {
			free.Push(int32(id))
		}
	}
	return free
}
