package spatial

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/spatial/geom"
)

func TestTree2Dot(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	for i := 0; i < 12; i++ {
		tree.Add(geom.NewRect(float32(i), 0, float32(i)+1, 1), i)
	}
	var buf bytes.Buffer
	Tree2Dot(tree, &buf)
	dot := buf.String()
	if !strings.HasPrefix(dot, "strict digraph {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("DOT output not well-formed:\n%s", dot)
	}
	if !strings.Contains(dot, "shape=box") {
		t.Errorf("DOT output misses leaf entries")
	}
	if !strings.Contains(dot, "->") {
		t.Errorf("DOT output misses edges")
	}
	t.Logf("\n%s", dot)
}

func TestSketch(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	for i := 0; i < 12; i++ {
		tree.Add(geom.NewRect(float32(i), 0, float32(i)+1, 1), i)
	}
	var buf bytes.Buffer
	Sketch(tree, &buf)
	out := buf.String()
	if !strings.Contains(out, "#0") {
		t.Errorf("sketch misses node lines:\n%s", out)
	}
	if len(strings.Split(out, "\n")) < 4 {
		t.Errorf("sketch too short for a split tree:\n%s", out)
	}

	idx := tree.ToIndex()
	buf.Reset()
	SketchIndex(idx, &buf)
	if !strings.Contains(buf.String(), "#") {
		t.Errorf("index sketch empty")
	}

	empty := New(Config{})
	_ = empty.ToIndex() // empty index sketches as "(empty)"
	buf.Reset()
	SketchIndex(&Index{}, &buf)
	if !strings.Contains(buf.String(), "(empty)") {
		t.Errorf("empty index sketch = %q", buf.String())
	}
}
