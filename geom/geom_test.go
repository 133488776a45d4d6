package geom

import (
	"math"
	"testing"
)

func TestRectNormalization(t *testing.T) {
	r := NewRect(5, 7, 1, 2)
	if r.MinX != 1 || r.MinY != 2 || r.MaxX != 5 || r.MaxY != 7 {
		t.Errorf("corners not normalized: %+v", r)
	}
}

func TestRectIntersectsItself(t *testing.T) {
	r := NewRect(0, 0, 3, 3)
	if !r.Intersects(r) {
		t.Errorf("rectangle should intersect itself")
	}
	if !r.Contains(r) {
		t.Errorf("rectangle should contain itself")
	}
}

func TestEdgeTouchCountsAsIntersection(t *testing.T) {
	a := NewRect(0, 0, 1, 1)
	b := NewRect(1, 0, 2, 1) // shares the x=1 edge
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Errorf("edge-touching rectangles must intersect")
	}
	c := NewRect(1, 1, 2, 2) // touches only at corner (1,1)
	if !a.Intersects(c) {
		t.Errorf("corner-touching rectangles must intersect")
	}
	d := NewRect(1.001, 0, 2, 1)
	if a.Intersects(d) {
		t.Errorf("disjoint rectangles must not intersect")
	}
}

func TestContainsInclusive(t *testing.T) {
	outer := NewRect(0, 0, 10, 10)
	inner := NewRect(0, 0, 10, 5) // shares three edges
	if !outer.Contains(inner) {
		t.Errorf("containment must be inclusive of shared edges")
	}
	if inner.Contains(outer) {
		t.Errorf("inner must not contain outer")
	}
	if !inner.ContainedBy(outer) {
		t.Errorf("ContainedBy should mirror Contains")
	}
}

func TestEdgeOverlaps(t *testing.T) {
	a := NewRect(0, 0, 4, 4)
	b := NewRect(0, 1, 2, 3) // shares minX
	if !a.EdgeOverlaps(b) {
		t.Errorf("rectangles share the minX edge line")
	}
	c := NewRect(1, 1, 2, 2)
	if a.EdgeOverlaps(c) {
		t.Errorf("strictly interior rectangle overlaps no edge")
	}
}

func TestDistanceSqInsideIsZero(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if d := r.DistanceSq(Point{X: 5, Y: 5}); d != 0 {
		t.Errorf("point inside rect: distanceSq = %g, want 0", d)
	}
	if d := r.DistanceSq(Point{X: 10, Y: 10}); d != 0 {
		t.Errorf("point on corner: distanceSq = %g, want 0", d)
	}
}

func TestDistanceSqOutside(t *testing.T) {
	r := NewRect(0, 0, 1, 1)
	if d := r.DistanceSq(Point{X: 4, Y: 1}); d != 9 {
		t.Errorf("distanceSq = %g, want 9", d)
	}
	if d := r.DistanceSq(Point{X: 4, Y: 5}); d != 25 {
		t.Errorf("diagonal distanceSq = %g, want 25 (3²+4²)", d)
	}
	if d := r.Distance(Point{X: 4, Y: 5}); d != 5 {
		t.Errorf("distance = %g, want 5", d)
	}
}

func TestDistanceRect(t *testing.T) {
	a := NewRect(0, 0, 1, 1)
	b := NewRect(4, 5, 6, 7)
	if d := a.DistanceRect(b); d != 5 {
		t.Errorf("rect distance = %g, want 5", d)
	}
	if d := a.DistanceRect(NewRect(0.5, 0.5, 2, 2)); d != 0 {
		t.Errorf("overlapping rects have distance %g, want 0", d)
	}
}

func TestUnionAndEmptySentinel(t *testing.T) {
	e := EmptyRect()
	r := NewRect(2, 3, 4, 5)
	if u := e.Union(r); u != r {
		t.Errorf("union with empty sentinel = %+v, want %+v", u, r)
	}
	u := r.Union(NewRect(0, 0, 1, 1))
	if u != NewRect(0, 0, 4, 5) {
		t.Errorf("union = %+v", u)
	}
}

func TestEnlargement(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	b := NewRect(0, 0, 4, 2)
	if e := a.Enlargement(b); e != 4 {
		t.Errorf("enlargement = %g, want 4", e)
	}
	if e := a.Enlargement(NewRect(1, 1, 2, 2)); e != 0 {
		t.Errorf("enlargement by contained rect = %g, want 0", e)
	}
}

func TestEnlargementInfinity(t *testing.T) {
	inf := float32(math.Inf(1))
	all := Rect{MinX: -inf, MinY: -inf, MaxX: inf, MaxY: inf}
	if e := all.Enlargement(NewRect(0, 0, 1, 1)); e != 0 {
		t.Errorf("infinite rect enlargement = %g, want 0", e)
	}
	half := Rect{MinX: 0, MinY: 0, MaxX: inf, MaxY: 1}
	if e := NewRect(0, 0, 1, 1).Enlargement(half); !math.IsInf(float64(e), 1) {
		t.Errorf("finite rect growing infinite: enlargement = %g, want +Inf", e)
	}
}

func TestZeroAreaRect(t *testing.T) {
	pt := NewRect(3, 3, 3, 3)
	if pt.Area() != 0 {
		t.Errorf("degenerate rect must have zero area")
	}
	if !pt.Intersects(pt) || !pt.Contains(pt) {
		t.Errorf("degenerate rect must intersect and contain itself")
	}
}

func TestCenterWidthHeight(t *testing.T) {
	r := NewRect(1, 2, 5, 10)
	if r.Width() != 4 || r.Height() != 8 {
		t.Errorf("width/height = %g/%g", r.Width(), r.Height())
	}
	if c := r.Center(); c.X != 3 || c.Y != 6 {
		t.Errorf("center = %+v", c)
	}
}
