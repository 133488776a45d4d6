package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "errors"

var (
	// ErrInconsistentTree signals that a consistency check found the tree's
	// internal structure violated (stale MBR, wrong level, dangling entry).
	ErrInconsistentTree = errors.New("spatial: inconsistent tree structure")
	// ErrCorruptState signals that persisted tree state could not be decoded.
	ErrCorruptState = errors.New("spatial: corrupt persisted state")
)
