// Package vmath holds the small float32 vector and rectangle types used by the game.
package vmath

import "math"

type Vec2 struct {
	X, Y float32
}

func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v Vec2) Lerp(to Vec2, a float32) Vec2 {
	return Vec2{Lerp(v.X, to.X, a), Lerp(v.Y, to.Y, a)}
}

type Vec3 struct {
	X, Y, Z float32
}

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Lerp interpolates every axis.
func (v Vec3) Lerp(to Vec3, a float32) Vec3 {
	return Vec3{Lerp(v.X, to.X, a), Lerp(v.Y, to.Y, a), Lerp(v.Z, to.Z, a)}
}

// Lerp returns from + (to-from)*a.
func Lerp(from, to, a float32) float32 {
	return from + (to-from)*a
}

// Clamp returns v limited to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// Rect is an axis aligned rectangle with its origin at the bottom left corner.
type Rect struct {
	X, Y, W, H float32
}

func RectAt(pos Vec2, size Vec2) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}
}

// Overlaps reports whether r and o share a positive area. Rectangles that only touch
// along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}
