package imgedit

import "fmt"

// ImageGeometry tracks a sequence of flips and quarter turns applied to
// an input rectangle. Every edit is folded into AppliedOrientation with
// Compose, so the value is always one of the eight orientations.
type ImageGeometry struct {
	inputRect          Rect
	appliedOrientation Orientation
}

// NewImageGeometry returns a geometry for an input of the given size with
// no orientation applied.
func NewImageGeometry(size Size) *ImageGeometry {
	return NewImageGeometryWithOrientation(size, Normal)
}

// NewImageGeometryWithOrientation returns a geometry for an input of the
// given size that starts at orientation o.
func NewImageGeometryWithOrientation(size Size, o Orientation) *ImageGeometry {
	o.mustBeValid()
	return &ImageGeometry{
		inputRect:          Rect{Width: size.Width, Height: size.Height},
		appliedOrientation: o,
	}
}

// InputRect returns the untransformed input rectangle.
func (g *ImageGeometry) InputRect() Rect {
	return g.inputRect
}

// AppliedOrientation returns the accumulated orientation.
func (g *ImageGeometry) AppliedOrientation() Orientation {
	return g.appliedOrientation
}

// ApplyOrientation composes o onto the accumulated orientation.
func (g *ImageGeometry) ApplyOrientation(o Orientation) {
	g.appliedOrientation = Compose(g.appliedOrientation, o)
}

// FlipHorizontally mirrors the geometry left to right.
func (g *ImageGeometry) FlipHorizontally() { g.ApplyOrientation(FlipX) }

// FlipVertically mirrors the geometry top to bottom.
func (g *ImageGeometry) FlipVertically() { g.ApplyOrientation(FlipY) }

// RotateClockwise turns the geometry a quarter turn clockwise.
func (g *ImageGeometry) RotateClockwise() { g.ApplyOrientation(Rotate90) }

// RotateCounterClockwise turns the geometry a quarter turn counter-clockwise.
func (g *ImageGeometry) RotateCounterClockwise() { g.ApplyOrientation(Rotate270) }

// Transform returns the matrix of the accumulated orientation for the
// input size.
func (g *ImageGeometry) Transform() Affine {
	return g.appliedOrientation.Transform(g.inputRect.Size())
}

// OutputRect maps the input rectangle through the accumulated
// orientation. It is derived on every call.
func (g *ImageGeometry) OutputRect() Rect {
	return g.Transform().TransformRect(g.inputRect)
}

// Clone returns an independent copy.
func (g *ImageGeometry) Clone() *ImageGeometry {
	c := *g
	return &c
}

func (g *ImageGeometry) String() string {
	return fmt.Sprintf("ImageGeometry{input: %v, orientation: %v}", g.inputRect, g.appliedOrientation)
}
