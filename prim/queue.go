package prim

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

// SortOrder selects which priority sits at the top of a PriorityQueue.
type SortOrder bool

const (
	// SortOrderAscending keeps the smallest priority on top.
	SortOrderAscending SortOrder = true
	// SortOrderDescending keeps the largest priority on top.
	SortOrderDescending SortOrder = false
)

// PriorityQueue is a binary heap of int32 payloads keyed by float32
// priorities. Values and priorities live in two parallel primitive arrays;
// no per-entry records are allocated.
//
// The sort order may be switched in place, which re-heapifies the current
// contents. A descending queue bounded to the N best candidates can this way
// be flipped into an ascending queue and drained nearest-first.
type PriorityQueue struct {
	values     IntArray
	priorities FloatArray
	order      SortOrder
}

// NewPriorityQueue creates an empty queue with the given sort order.
func NewPriorityQueue(order SortOrder) *PriorityQueue {
	return &PriorityQueue{order: order}
}

// NewPriorityQueueSized creates an empty queue with initial capacity.
func NewPriorityQueueSized(order SortOrder, capacity int) *PriorityQueue {
	q := &PriorityQueue{order: order}
	if capacity > 0 {
		q.values = *NewIntArray(capacity)
		q.priorities = *NewFloatArray(capacity)
	}
	return q
}

// Size returns the number of queued entries.
func (q *PriorityQueue) Size() int { return q.values.Size() }

// Reset empties the queue and sets its sort order, keeping storage for reuse.
func (q *PriorityQueue) Reset(order SortOrder) {
	q.values.Reset()
	q.priorities.Reset()
	q.order = order
}

// sortsEarlier reports whether priority p1 belongs above p2 for the current
// sort order.
func (q *PriorityQueue) sortsEarlier(p1, p2 float32) bool {
	if q.order == SortOrderAscending {
		return p1 < p2
	}
	return p1 > p2
}

// Insert adds a value with the given priority.
func (q *PriorityQueue) Insert(value int32, priority float32) {
	q.values.Push(value)
	q.priorities.Push(priority)
	q.promote(q.values.Size()-1, value, priority)
}

func (q *PriorityQueue) promote(index int, value int32, priority float32) {
	for index > 0 {
		parent := (index - 1) / 2
		parentPriority := q.priorities.Get(parent)
		if !q.sortsEarlier(priority, parentPriority) {
			break
		}
		q.values.Set(index, q.values.Get(parent))
		q.priorities.Set(index, parentPriority)
		index = parent
	}
	q.values.Set(index, value)
	q.priorities.Set(index, priority)
}

func (q *PriorityQueue) demote(index int, value int32, priority float32) {
	size := q.values.Size()
	for {
		child := index*2 + 1
		if child >= size {
			break
		}
		if child+1 < size && q.sortsEarlier(q.priorities.Get(child+1), q.priorities.Get(child)) {
			child++
		}
		if !q.sortsEarlier(q.priorities.Get(child), priority) {
			break
		}
		q.values.Set(index, q.values.Get(child))
		q.priorities.Set(index, q.priorities.Get(child))
		index = child
	}
	q.values.Set(index, value)
	q.priorities.Set(index, priority)
}

// Value returns the payload at the top of the queue.
func (q *PriorityQueue) Value() int32 {
	return q.values.Get(0)
}

// Priority returns the priority at the top of the queue.
func (q *PriorityQueue) Priority() float32 {
	return q.priorities.Get(0)
}

// Pop removes the top entry.
func (q *PriorityQueue) Pop() {
	lastValue := q.values.Pop()
	lastPriority := q.priorities.Pop()
	if q.values.Size() > 0 {
		q.demote(0, lastValue, lastPriority)
	}
}

// SetSortOrder switches the queue's order, rebuilding the heap in place when
// the order actually changes.
func (q *PriorityQueue) SetSortOrder(order SortOrder) {
	if q.order == order {
		return
	}
	q.order = order
	for i := q.values.Size()/2 - 1; i >= 0; i-- {
		q.demote(i, q.values.Get(i), q.priorities.Get(i))
	}
}
