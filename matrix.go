package imgedit

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine is a 2D affine transform stored as (a, b, c, d, tx, ty).
// It maps a point (x, y) to
//
//	x' = a*x + c*y + tx
//	y' = b*x + d*y + ty
type Affine struct {
	A, B, C, D float64
	TX, TY     float64
}

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine {
	return Affine{A: 1, D: 1}
}

// TranslateAffine creates a translation.
func TranslateAffine(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, TX: tx, TY: ty}
}

// ScaleAffine creates a scaling transform.
func ScaleAffine(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// RotateAffine creates a rotation by angle radians.
func RotateAffine(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

// Concat returns the transform that applies m first and then n.
func (m Affine) Concat(n Affine) Affine {
	return Affine{
		A:  m.A*n.A + m.B*n.C,
		B:  m.A*n.B + m.B*n.D,
		C:  m.C*n.A + m.D*n.C,
		D:  m.C*n.B + m.D*n.D,
		TX: m.TX*n.A + m.TY*n.C + n.TX,
		TY: m.TX*n.B + m.TY*n.D + n.TY,
	}
}

// TransformPoint applies the transformation to a point.
func (m Affine) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.TX,
		Y: m.B*p.X + m.D*p.Y + m.TY,
	}
}

// TransformRect returns the bounding box of r after transformation.
func (m Affine) TransformRect(r Rect) Rect {
	corners := [4]Point{
		m.TransformPoint(Point{X: r.MinX(), Y: r.MinY()}),
		m.TransformPoint(Point{X: r.MaxX(), Y: r.MinY()}),
		m.TransformPoint(Point{X: r.MinX(), Y: r.MaxY()}),
		m.TransformPoint(Point{X: r.MaxX(), Y: r.MaxY()}),
	}
	minX, minY := corners[0].X, corners[0].Y
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Invert returns the inverse transform.
// ok is false when the transform is singular.
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m.A*m.D - m.B*m.C
	if math.Abs(det) < 1e-12 {
		return IdentityAffine(), false
	}
	invDet := 1 / det
	return Affine{
		A:  m.D * invDet,
		B:  -m.B * invDet,
		C:  -m.C * invDet,
		D:  m.A * invDet,
		TX: (m.C*m.TY - m.D*m.TX) * invDet,
		TY: (m.B*m.TX - m.A*m.TY) * invDet,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Affine) IsIdentity() bool {
	return m == IdentityAffine()
}

// IsTranslation reports whether m only translates.
func (m Affine) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 && m.D == 1
}

// aff3 converts m to the row-major layout used by x/image/draw.
func (m Affine) aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.C, m.TX, m.B, m.D, m.TY}
}
