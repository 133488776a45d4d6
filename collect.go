package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "sort"

// A Collector gathers the ids delivered by query callbacks into a list.
// Pass its Visit method as the query callback:
//
//	var c spatial.Collector
//	tree.Intersects(r, c.Visit)
//	for _, id := range c.SortedIDs() { … }
type Collector struct {
	// IDs holds the collected entry ids in traversal order.
	IDs []int
}

// Visit is a Callback that collects every id and never aborts.
func (c *Collector) Visit(id int) bool {
	c.IDs = append(c.IDs, id)
	return true
}

// SortedIDs returns the collected ids sorted ascending. Queries deliver
// matches in traversal order; sorting by id gives callers a stable view for
// comparison and display.
func (c *Collector) SortedIDs() []int {
	ids := make([]int, len(c.IDs))
	copy(ids, c.IDs)
	sort.Ints(ids)
	return ids
}

// Reset empties the collector for reuse.
func (c *Collector) Reset() {
	c.IDs = c.IDs[:0]
}
