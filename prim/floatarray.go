package prim

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

// FloatArray is a growable sequence of float32; the counterpart of IntArray
// for coordinate and priority scratch storage. The zero value is ready for
// use.
type FloatArray struct {
	data []float32
	size int
}

// NewFloatArray creates an array with capacity for size elements.
func NewFloatArray(size int) *FloatArray {
	a := &FloatArray{}
	if size > 0 {
		a.data = make([]float32, size)
	}
	return a
}

// IsEmpty reports whether the array holds no elements.
func (a *FloatArray) IsEmpty() bool { return a.size == 0 }

// Size returns the number of elements.
func (a *FloatArray) Size() int { return a.size }

// Reset empties the array, keeping the backing storage for reuse.
func (a *FloatArray) Reset() { a.size = 0 }

// Clear empties the array and releases larger backing stores.
func (a *FloatArray) Clear() {
	if len(a.data) > clearThreshold {
		a.data = nil
	}
	a.size = 0
}

// Push appends v, growing the backing store as needed.
func (a *FloatArray) Push(v float32) {
	if a.size >= len(a.data) {
		newCap := a.size * 2
		if a.size < clearThreshold {
			newCap = clearThreshold
		}
		data := make([]float32, newCap)
		copy(data, a.data[:a.size])
		a.data = data
	}
	a.data[a.size] = v
	a.size++
}

// Add is Push under the name used by list-style call sites.
func (a *FloatArray) Add(v float32) { a.Push(v) }

// Peek returns the last element without removing it.
func (a *FloatArray) Peek() float32 {
	return a.data[a.size-1]
}

// Pop removes and returns the last element.
func (a *FloatArray) Pop() float32 {
	if a.size == 0 {
		panic("prim: pop from empty FloatArray")
	}
	a.size--
	return a.data[a.size]
}

// Get returns the element at index.
func (a *FloatArray) Get(index int) float32 {
	if index >= a.size {
		panic("prim: FloatArray index out of range")
	}
	return a.data[index]
}

// Set replaces the element at index and returns the previous value.
func (a *FloatArray) Set(index int, v float32) float32 {
	if index >= a.size {
		panic("prim: FloatArray index out of range")
	}
	old := a.data[index]
	a.data[index] = v
	return old
}

// ForEach calls visit for each element in order. A false return stops the
// iteration and is passed through as ForEach's result.
func (a *FloatArray) ForEach(visit func(v float32) bool) bool {
	for i := 0; i < a.size; i++ {
		if !visit(a.data[i]) {
			return false
		}
	}
	return true
}
