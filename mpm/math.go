// Package mpm implements a 2D MLS-MPM fluid simulation with APIC
// velocity transfer over a fixed background grid.
package mpm

import "math"

// Vec2 is a 2D float32 vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Mul returns the componentwise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Floor returns the componentwise floor of v.
func (v Vec2) Floor() Vec2 {
	return Vec2{floorf(v.X), floorf(v.Y)}
}

// Mat2 is a 2x2 float32 matrix stored as two column vectors.
// The zero value is the zero matrix.
type Mat2 struct {
	C0, C1 Vec2
}

// MulVec returns the matrix-vector product m * v.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		X: m.C0.X*v.X + m.C1.X*v.Y,
		Y: m.C0.Y*v.X + m.C1.Y*v.Y,
	}
}

// Add returns m + o.
func (m Mat2) Add(o Mat2) Mat2 {
	return Mat2{
		C0: m.C0.Add(o.C0),
		C1: m.C1.Add(o.C1),
	}
}

// Scale returns m scaled by s.
func (m Mat2) Scale(s float32) Mat2 {
	return Mat2{
		C0: m.C0.Scale(s),
		C1: m.C1.Scale(s),
	}
}

// outer builds the matrix whose columns are v*d.X and v*d.Y,
// i.e. the outer product v ⊗ d.
func outer(v, d Vec2) Mat2 {
	return Mat2{
		C0: v.Scale(d.X),
		C1: v.Scale(d.Y),
	}
}

// floorf returns the float32 floor of x.
func floorf(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// clampf restricts a value to [minVal, maxVal].
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
