package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"io"
)

// Tree2Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). Nodes, leaves included, render as circles
// labeled with their node id, level and MBR, leaf entries as boxes labeled
// with the entry id and its rectangle.
func Tree2Dot(t *RTree, w io.Writer) {
	tree2dot(t, w)
}

// Index2Dot is Tree2Dot for a frozen index.
func Index2Dot(idx *Index, w io.Writer) {
	tree2dot(idx, w)
}

func tree2dot(src nodeSource, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	root := src.node(src.rootID())
	if root != nil {
		nodelist, edgelist = node2dot(src, root, nodelist, edgelist)
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func node2dot(src nodeSource, n *node, nodelist, edgelist string) (string, string) {
	label := fmt.Sprintf("#%d @%d\\n%s", n.nodeID, n.level, rect2label(n.mbrMinX, n.mbrMinY, n.mbrMaxX, n.mbrMaxY))
	nodelist += fmt.Sprintf("\"n%d\" [label=\"%s\" %s];\n", n.nodeID, label, nodeDotStyles(false))
	for i := 0; i < n.entryCount; i++ {
		if n.isLeaf() {
			elabel := fmt.Sprintf("%d\\n%s", n.ids[i],
				rect2label(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i]))
			nodelist += fmt.Sprintf("\"n%d-e%d\" [label=\"%s\" %s];\n", n.nodeID, i, elabel, nodeDotStyles(true))
			edgelist += fmt.Sprintf("\"n%d\" -> \"n%d-e%d\";\n", n.nodeID, n.nodeID, i)
		} else {
			child := src.node(n.ids[i])
			edgelist += fmt.Sprintf("\"n%d\" -> \"n%d\";\n", n.nodeID, child.nodeID)
			nodelist, edgelist = node2dot(src, child, nodelist, edgelist)
		}
	}
	return nodelist, edgelist
}

func rect2label(minX, minY, maxX, maxY float32) string {
	return fmt.Sprintf("(%g,%g)(%g,%g)", minX, minY, maxX, maxY)
}

func nodeDotStyles(isentry bool) string {
	s := ",style=filled"
	if isentry {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
