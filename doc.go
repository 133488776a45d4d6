/*
Package spatial provides an in-memory two-dimensional spatial index over
integer-identified axis-aligned rectangles.

R-tree

The index is a dynamic R-tree after Guttman: rectangles live in the leaves of
a height-balanced tree whose internal nodes carry the minimum bounding
rectangle (MBR) of their subtrees. Inserting may split nodes bottom-up,
deleting condenses under-full nodes and re-inserts their orphaned entries, so
the tree stays balanced under arbitrary workloads.

Four kinds of spatial queries are supported:

  - Nearest: all entries sharing the smallest distance to a point
  - NearestN / NearestNUnsorted: the N entries nearest to a point
  - Intersects: all entries overlapping a rectangle
  - Contains: all entries lying inside a rectangle

Queries report matches through a callback which may abort the traversal by
returning false.

A major design goal is the avoidance of per-entry heap objects. Nodes store
their entries in flat per-coordinate arrays (see package prim for the
primitive collections this builds on), and all nodes live in a single arena
addressed by small integer ids.

A tree under construction is mutable and not safe for concurrent use. Once
populated it can be frozen into an Index, a read-only snapshot sharing the
query implementations, which may be read from multiple goroutines.

Trees are configured with Config; the zero value selects defaults. Mutating
operations must not be re-entered from within a callback on the same tree,
as traversal scratch buffers are reused across calls.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package spatial

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
