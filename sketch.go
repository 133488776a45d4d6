package spatial

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Sketch writes an indented one-line-per-node picture of the tree to w (for
// debugging purposes). Node lines are colored by tree level, leaf entries
// printed in plain style, and long entry lists are truncated to the line
// width.
//
// Colors are produced with ANSI escape sequences and degrade to plain text
// when stdout is not a terminal, whatever w is (see package color).
func Sketch(t *RTree, w io.Writer) {
	sketch(t, w)
}

// SketchIndex is Sketch for a frozen index.
func SketchIndex(idx *Index, w io.Writer) {
	sketch(idx, w)
}

var levelPalette = [...]*color.Color{
	color.New(color.FgBlue),
	color.New(color.FgCyan),
	color.New(color.FgGreen),
	color.New(color.FgYellow),
	color.New(color.FgRed),
}

func sketch(src nodeSource, w io.Writer) {
	root := src.node(src.rootID())
	if root == nil {
		fmt.Fprintln(w, "(empty)")
		return
	}
	sketchNode(src, root, 0, lineWidthFromTerminal(), w)
}

func sketchNode(src nodeSource, n *node, depth int, linelength int, w io.Writer) {
	indent := strings.Repeat("  ", depth)
	c := levelPalette[(n.level-1)%len(levelPalette)]
	c.Fprintf(w, "%s#%d @%d %s", indent, n.nodeID, n.level,
		rect2label(n.mbrMinX, n.mbrMinY, n.mbrMaxX, n.mbrMaxY))
	fmt.Fprintln(w)
	if n.isLeaf() {
		line := indent + "  "
		for i := 0; i < n.entryCount; i++ {
			entry := fmt.Sprintf("%d%s ", n.ids[i],
				rect2label(n.entriesMinX[i], n.entriesMinY[i], n.entriesMaxX[i], n.entriesMaxY[i]))
			if len(line)+len(entry) > linelength {
				fmt.Fprintf(w, "%s…\n", line)
				return
			}
			line += entry
		}
		fmt.Fprintln(w, line)
		return
	}
	for i := 0; i < n.entryCount; i++ {
		sketchNode(src, src.node(n.ids[i]), depth+1, linelength, w)
	}
}

// lineWidthFromTerminal checks whether stdout is a terminal, and if so reads
// the terminal's width to clamp sketch lines.
func lineWidthFromTerminal() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 10 {
			return w
		}
	}
	return 100
}
