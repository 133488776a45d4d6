package spatial

import (
	"math"
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/spatial/geom"
)

func TestEmptyTree(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{})
	if tree.Size() != 0 {
		t.Errorf("empty tree has size %d", tree.Size())
	}
	if _, ok := tree.Bounds(); ok {
		t.Errorf("empty tree must not report bounds")
	}
	if tree.Delete(geom.NewRect(0, 0, 0, 0), 1) {
		t.Errorf("delete on empty tree must return false")
	}
	var c Collector
	tree.NearestN(geom.Point{}, c.Visit, 5, float32(math.Inf(1)))
	if len(c.IDs) != 0 {
		t.Errorf("nearestN on empty tree emitted %v", c.IDs)
	}
	if err := tree.CheckConsistency(); err != nil {
		t.Errorf("empty tree inconsistent: %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{})
	if tree.maxNodeEntries != DefaultMaxNodeEntries || tree.minNodeEntries != DefaultMinNodeEntries {
		t.Errorf("zero config gives %d/%d, want defaults %d/%d",
			tree.maxNodeEntries, tree.minNodeEntries, DefaultMaxNodeEntries, DefaultMinNodeEntries)
	}
}

func TestConfigClamping(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 1, MinNodeEntries: 0})
	if tree.maxNodeEntries != DefaultMaxNodeEntries {
		t.Errorf("MaxNodeEntries=1 must clamp to default, got %d", tree.maxNodeEntries)
	}
	if tree.minNodeEntries != DefaultMaxNodeEntries/2 {
		t.Errorf("invalid MinNodeEntries must clamp to max/2, got %d", tree.minNodeEntries)
	}
	tree = New(Config{MaxNodeEntries: 10, MinNodeEntries: 9})
	if tree.minNodeEntries != 5 {
		t.Errorf("MinNodeEntries beyond max/2 must clamp to 5, got %d", tree.minNodeEntries)
	}
}

func TestAddAndBounds(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	tree.Add(geom.NewRect(0, 0, 1, 1), 1)
	tree.Add(geom.NewRect(5, 5, 6, 8), 2)
	if tree.Size() != 2 {
		t.Fatalf("size = %d, want 2", tree.Size())
	}
	bounds, ok := tree.Bounds()
	if !ok || bounds != geom.NewRect(0, 0, 6, 8) {
		t.Errorf("bounds = %v, ok = %v", bounds, ok)
	}
}

func TestAddDeleteRoundTrip(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	for i := 0; i < 10; i++ {
		tree.Add(geom.NewRect(float32(i), 0, float32(i)+1, 1), i)
	}
	r := geom.NewRect(20, 20, 21, 21)
	tree.Add(r, 99)
	if tree.Size() != 11 {
		t.Fatalf("size = %d", tree.Size())
	}
	if !tree.Delete(r, 99) {
		t.Fatalf("delete of existing entry returned false")
	}
	if tree.Size() != 10 {
		t.Errorf("size after delete = %d, want 10", tree.Size())
	}
	if err := tree.CheckConsistency(); err != nil {
		t.Errorf("tree inconsistent after delete: %v", err)
	}
}

func TestDeleteRequiresExactMatch(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	r := geom.NewRect(1, 1, 2, 2)
	tree.Add(r, 7)
	if tree.Delete(r, 8) {
		t.Errorf("delete with wrong id must fail")
	}
	if tree.Delete(geom.NewRect(1, 1, 2, 2.5), 7) {
		t.Errorf("delete with wrong rectangle must fail")
	}
	if !tree.Delete(r, 7) {
		t.Errorf("delete with exact match must succeed")
	}
	if tree.Size() != 0 {
		t.Errorf("size = %d after deleting the only entry", tree.Size())
	}
}

func TestDeleteToEmptyRestoresSentinel(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	r := geom.NewRect(3, 3, 4, 4)
	tree.Add(r, 1)
	tree.Delete(r, 1)
	if _, ok := tree.Bounds(); ok {
		t.Errorf("emptied tree must not report bounds")
	}
	// the next add must initialize the MBR from the sentinel
	tree.Add(geom.NewRect(9, 9, 10, 10), 2)
	bounds, ok := tree.Bounds()
	if !ok || bounds != geom.NewRect(9, 9, 10, 10) {
		t.Errorf("bounds after re-add = %v", bounds)
	}
}

func TestClear(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	for i := 0; i < 50; i++ {
		tree.Add(geom.NewRect(float32(i), float32(i), float32(i)+1, float32(i)+1), i)
	}
	tree.Clear()
	if tree.Size() != 0 {
		t.Errorf("size after clear = %d", tree.Size())
	}
	if err := tree.CheckConsistency(); err != nil {
		t.Errorf("cleared tree inconsistent: %v", err)
	}
	tree.Add(geom.NewRect(0, 0, 1, 1), 1)
	if tree.Size() != 1 {
		t.Errorf("cleared tree not usable")
	}
}

func TestGrowAndShrinkHeight(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	for i := 0; i < 100; i++ {
		tree.Add(geom.NewRect(float32(i%10), float32(i/10), float32(i%10)+1, float32(i/10)+1), i)
	}
	if tree.treeHeight < 3 {
		t.Fatalf("100 entries at fanout 4 should stack at least 3 levels, height = %d", tree.treeHeight)
	}
	if err := tree.CheckConsistency(); err != nil {
		t.Fatalf("tree inconsistent after growth: %v", err)
	}
	for i := 0; i < 100; i++ {
		if !tree.Delete(geom.NewRect(float32(i%10), float32(i/10), float32(i%10)+1, float32(i/10)+1), i) {
			t.Fatalf("failed to delete entry %d", i)
		}
	}
	if tree.Size() != 0 || tree.treeHeight != 1 {
		t.Errorf("size/height after deleting everything = %d/%d", tree.Size(), tree.treeHeight)
	}
}

func TestRandomInsertDeleteConsistency(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	rng := rand.New(rand.NewSource(42))
	tree := New(Config{MaxNodeEntries: 10, MinNodeEntries: 5})
	type entry struct {
		r  geom.Rect
		id int
	}
	entries := make([]entry, 1000)
	for i := range entries {
		x := rng.Float32() * 100
		y := rng.Float32() * 100
		entries[i] = entry{r: geom.NewRect(x, y, x+rng.Float32()*5, y+rng.Float32()*5), id: i}
		tree.Add(entries[i].r, entries[i].id)
	}
	if err := tree.CheckConsistency(); err != nil {
		t.Fatalf("tree inconsistent after 1000 inserts: %v", err)
	}
	rng.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })
	for i, e := range entries {
		if !tree.Delete(e.r, e.id) {
			t.Fatalf("delete %d failed (id %d)", i, e.id)
		}
		if (i+1)%100 == 0 {
			if err := tree.CheckConsistency(); err != nil {
				t.Fatalf("tree inconsistent after %d deletions: %v", i+1, err)
			}
			if tree.Size() != len(entries)-i-1 {
				t.Fatalf("size = %d after %d deletions", tree.Size(), i+1)
			}
		}
	}
	if tree.Size() != 0 {
		t.Errorf("size = %d after deleting everything", tree.Size())
	}
}

func TestDuplicateIDsDeleteOne(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	r1 := geom.NewRect(0, 0, 1, 1)
	r2 := geom.NewRect(5, 5, 6, 6)
	tree.Add(r1, 1)
	tree.Add(r2, 1) // same id, different rectangle
	if !tree.Delete(r1, 1) {
		t.Errorf("delete of first duplicate failed")
	}
	if tree.Size() != 1 {
		t.Errorf("size = %d, want the second duplicate to survive", tree.Size())
	}
	if tree.Delete(r1, 1) {
		t.Errorf("first duplicate already deleted")
	}
	if !tree.Delete(r2, 1) {
		t.Errorf("second duplicate must still be deletable")
	}
}

func TestSelfCheckMode(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2, SelfCheck: true})
	for i := 0; i < 30; i++ {
		tree.Add(geom.NewRect(float32(i), 0, float32(i)+1, 1), i)
	}
	for i := 0; i < 30; i += 2 {
		tree.Delete(geom.NewRect(float32(i), 0, float32(i)+1, 1), i)
	}
	if tree.Size() != 15 {
		t.Errorf("size = %d, want 15", tree.Size())
	}
}

func TestZeroAreaRectangles(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree := New(Config{MaxNodeEntries: 4, MinNodeEntries: 2})
	for i := 0; i < 20; i++ {
		p := float32(i)
		tree.Add(geom.NewRect(p, p, p, p), i)
	}
	if err := tree.CheckConsistency(); err != nil {
		t.Fatalf("tree of degenerate rectangles inconsistent: %v", err)
	}
	var c Collector
	tree.Intersects(geom.NewRect(3, 3, 3, 3), c.Visit)
	if len(c.IDs) != 1 || c.IDs[0] != 3 {
		t.Errorf("point rectangle not found, got %v", c.IDs)
	}
}
