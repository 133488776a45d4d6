package geom

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "math"

// Rect is an axis-aligned rectangle given by its lower-left and upper-right
// corners. A valid Rect satisfies MinX ≤ MaxX and MinY ≤ MaxY; use NewRect to
// normalize arbitrary corner pairs.
//
// Coordinates are float32 on purpose: rectangles are stored in bulk inside
// flat per-node arrays, and 32 bit per coordinate halves the footprint of an
// index without hurting the predicates computed on them.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Point is a location in the plane.
type Point struct {
	X, Y float32
}

// NewRect creates a rectangle from two opposite corners, in any order.
func NewRect(x1, y1, x2, y2 float32) Rect {
	r := Rect{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// EmptyRect returns the neutral element for Union: mins at +MaxFloat32 and
// maxes at −MaxFloat32, so that the first union with any rectangle yields
// that rectangle.
func EmptyRect() Rect {
	return Rect{
		MinX: math.MaxFloat32,
		MinY: math.MaxFloat32,
		MaxX: -math.MaxFloat32,
		MaxY: -math.MaxFloat32,
	}
}

// Intersects reports whether r and s overlap. Rectangles touching only along
// an edge or at a corner count as intersecting.
func (r Rect) Intersects(s Rect) bool {
	return r.MaxX >= s.MinX && r.MinX <= s.MaxX && r.MaxY >= s.MinY && r.MinY <= s.MaxY
}

// Contains reports whether s lies completely inside r. Every rectangle
// contains itself.
func (r Rect) Contains(s Rect) bool {
	return r.MaxX >= s.MaxX && r.MinX <= s.MinX && r.MaxY >= s.MaxY && r.MinY <= s.MinY
}

// ContainedBy reports whether r lies completely inside s.
func (r Rect) ContainedBy(s Rect) bool {
	return s.Contains(r)
}

// EdgeOverlaps reports whether an edge of r overlies the equivalent edge of s.
func (r Rect) EdgeOverlaps(s Rect) bool {
	return r.MinX == s.MinX || r.MaxX == s.MaxX || r.MinY == s.MinY || r.MaxY == s.MaxY
}

// Area returns the area of r.
func (r Rect) Area() float32 {
	return (r.MaxX - r.MinX) * (r.MaxY - r.MinY)
}

// Union returns the smallest rectangle covering both r and s.
func (r Rect) Union(s Rect) Rect {
	if s.MinX < r.MinX {
		r.MinX = s.MinX
	}
	if s.MinY < r.MinY {
		r.MinY = s.MinY
	}
	if s.MaxX > r.MaxX {
		r.MaxX = s.MaxX
	}
	if s.MaxY > r.MaxY {
		r.MaxY = s.MaxY
	}
	return r
}

// Enlargement returns the growth in area of r if it were extended to cover s.
// An infinite r cannot grow and yields 0; a finite r whose union with s is
// infinite yields +Inf.
func (r Rect) Enlargement(s Rect) float32 {
	return Enlargement(r.MinX, r.MinY, r.MaxX, r.MaxY, s.MinX, s.MinY, s.MaxX, s.MaxY)
}

// DistanceSq returns the squared Euclidean distance from p to the nearest
// point of r, or 0 if r contains p.
func (r Rect) DistanceSq(p Point) float32 {
	return DistanceSq(r.MinX, r.MinY, r.MaxX, r.MaxY, p.X, p.Y)
}

// Distance returns the Euclidean distance from p to the nearest point of r,
// or 0 if r contains p.
func (r Rect) Distance(p Point) float32 {
	return float32(math.Sqrt(float64(r.DistanceSq(p))))
}

// DistanceRect returns the distance between r and s, or 0 if they overlap.
func (r Rect) DistanceRect(s Rect) float32 {
	var distSq float32
	if gmin, lmax := max32(r.MinX, s.MinX), min32(r.MaxX, s.MaxX); gmin > lmax {
		distSq += (gmin - lmax) * (gmin - lmax)
	}
	if gmin, lmax := max32(r.MinY, s.MinY), min32(r.MaxY, s.MaxY); gmin > lmax {
		distSq += (gmin - lmax) * (gmin - lmax)
	}
	return float32(math.Sqrt(float64(distSq)))
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
