package imgedit

import (
	"fmt"
	"image"
	"math"
)

// Point is a position in working-space coordinates.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle given by its origin and size.
// The origin is the top-left corner; Y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// R is a convenience function to create a Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectFromImage converts an integer rectangle.
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), Width: float64(r.Dx()), Height: float64(r.Dy())}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }
func (r Rect) MidX() float64 { return r.X + r.Width*0.5 }
func (r Rect) MidY() float64 { return r.Y + r.Height*0.5 }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.MidX(), Y: r.MidY()} }

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Round rounds every component to the nearest integer.
func (r Rect) Round() Rect {
	return Rect{X: math.Round(r.X), Y: math.Round(r.Y), Width: math.Round(r.Width), Height: math.Round(r.Height)}
}

// Intersect returns the overlap of r and s, or the zero Rect when
// they are disjoint.
func (r Rect) Intersect(s Rect) Rect {
	x0 := math.Max(r.MinX(), s.MinX())
	y0 := math.Max(r.MinY(), s.MinY())
	x1 := math.Min(r.MaxX(), s.MaxX())
	y1 := math.Min(r.MaxY(), s.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Denormalize maps a rect expressed in fractions of a unit square onto
// the extent e.
func (r Rect) Denormalize(e Rect) Rect {
	return Rect{
		X:      r.X*e.Width + e.X,
		Y:      r.Y*e.Height + e.Y,
		Width:  r.Width * e.Width,
		Height: r.Height * e.Height,
	}
}

// integralEpsilon absorbs floating-point noise from rotations so that an
// edge at 999.9999999 or 1000.0000001 lands on pixel 1000.
const integralEpsilon = 1e-6

// Integral returns the smallest integer rectangle containing r.
func (r Rect) Integral() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.MinX()+integralEpsilon)), int(math.Floor(r.MinY()+integralEpsilon)),
		int(math.Ceil(r.MaxX()-integralEpsilon)), int(math.Ceil(r.MaxY()-integralEpsilon)),
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
