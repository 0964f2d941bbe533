package imgedit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Orientation is one of the eight symmetries of a rectangular pixel grid.
// Values match the EXIF/TIFF orientation tag, so a decoded tag can be
// converted directly.
type Orientation int

const (
	Normal     Orientation = iota + 1 // identity
	FlipX                             // mirror across the vertical axis
	Rotate180                         // half turn
	FlipY                             // mirror across the horizontal axis
	Transpose                         // mirror across the main diagonal
	Rotate90                          // quarter turn clockwise
	Transverse                        // mirror across the anti-diagonal
	Rotate270                         // quarter turn counter-clockwise
)

// ErrInvalidOrientation is returned when parsing an unknown orientation.
var ErrInvalidOrientation = errors.New("imgedit: invalid orientation")

// Orientations lists all eight values in tag order.
var Orientations = [8]Orientation{Normal, FlipX, Rotate180, FlipY, Transpose, Rotate90, Transverse, Rotate270}

// composeTable[first-1][second-1] is the single orientation equivalent to
// applying first and then second.
var composeTable = [8][8]Orientation{
	Normal - 1:     {Normal, FlipX, Rotate180, FlipY, Transpose, Rotate90, Transverse, Rotate270},
	FlipX - 1:      {FlipX, Normal, FlipY, Rotate180, Rotate270, Transverse, Rotate90, Transpose},
	Rotate180 - 1:  {Rotate180, FlipY, Normal, FlipX, Transverse, Rotate270, Transpose, Rotate90},
	FlipY - 1:      {FlipY, Rotate180, FlipX, Normal, Rotate90, Transpose, Rotate270, Transverse},
	Transpose - 1:  {Transpose, Rotate90, Transverse, Rotate270, Normal, FlipX, Rotate180, FlipY},
	Rotate90 - 1:   {Rotate90, Transpose, Rotate270, Transverse, FlipY, Rotate180, FlipX, Normal},
	Transverse - 1: {Transverse, Rotate270, Transpose, Rotate90, Rotate180, FlipY, Normal, FlipX},
	Rotate270 - 1:  {Rotate270, Transverse, Rotate90, Transpose, FlipX, Normal, FlipY, Rotate180},
}

var orientationNames = [8]string{"Normal", "FlipX", "Rotate180", "FlipY", "Transpose", "Rotate90", "Transverse", "Rotate270"}

// Compose returns the orientation equivalent to applying first and then
// second. It panics if either argument is not one of the eight values.
func Compose(first, second Orientation) Orientation {
	first.mustBeValid()
	second.mustBeValid()
	return composeTable[first-1][second-1]
}

// IsValid reports whether o is one of the eight orientations.
func (o Orientation) IsValid() bool {
	return o >= Normal && o <= Rotate270
}

func (o Orientation) mustBeValid() {
	if !o.IsValid() {
		panic(fmt.Sprintf("imgedit: invalid orientation %d", int(o)))
	}
}

// Inverse returns the orientation that undoes o.
func (o Orientation) Inverse() Orientation {
	switch o {
	case Transpose:
		return Transverse
	case Transverse:
		return Transpose
	case Rotate90:
		return Rotate270
	case Rotate270:
		return Rotate90
	}
	o.mustBeValid()
	return o
}

// SwapsAxes reports whether o exchanges width and height.
func (o Orientation) SwapsAxes() bool {
	return o >= Transpose && o <= Rotate270
}

// IsMirrored reports whether o reverses handedness.
func (o Orientation) IsMirrored() bool {
	switch o {
	case FlipX, FlipY, Transpose, Transverse:
		return true
	}
	return false
}

// Transform returns the affine matrix mapping a rectangle of the given
// size at the origin onto its reoriented position.
func (o Orientation) Transform(s Size) Affine {
	w, h := s.Width, s.Height
	switch o {
	case FlipX:
		return Affine{A: -1, B: 0, C: 0, D: 1, TX: w, TY: 0}
	case Rotate180:
		return Affine{A: -1, B: 0, C: 0, D: -1, TX: w, TY: h}
	case FlipY:
		return Affine{A: 1, B: 0, C: 0, D: -1, TX: 0, TY: h}
	case Transpose:
		return Affine{A: 0, B: 1, C: 1, D: 0, TX: 0, TY: 0}
	case Rotate90:
		return Affine{A: 0, B: -1, C: 1, D: 0, TX: 0, TY: w}
	case Transverse:
		return Affine{A: 0, B: -1, C: -1, D: 0, TX: h, TY: w}
	case Rotate270:
		return Affine{A: 0, B: 1, C: -1, D: 0, TX: h, TY: 0}
	default:
		return IdentityAffine()
	}
}

// sourcePixel maps a destination pixel of an image reoriented by o back to
// the pixel it reads in a w×h source.
func (o Orientation) sourcePixel(x, y, w, h int) (sx, sy int) {
	switch o {
	case FlipX:
		return w - 1 - x, y
	case Rotate180:
		return w - 1 - x, h - 1 - y
	case FlipY:
		return x, h - 1 - y
	case Transpose:
		return y, x
	case Rotate90:
		return y, h - 1 - x
	case Transverse:
		return w - 1 - y, h - 1 - x
	case Rotate270:
		return w - 1 - y, x
	default:
		return x, y
	}
}

// String returns the orientation name.
func (o Orientation) String() string {
	if !o.IsValid() {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o-1]
}

// ParseOrientation parses an orientation name (case-insensitive) or its
// numeric tag value.
func ParseOrientation(s string) (Orientation, error) {
	s = strings.TrimSpace(s)
	for i, name := range orientationNames {
		if strings.EqualFold(s, name) {
			return Orientation(i + 1), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Orientation(n).IsValid() {
		return Orientation(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(text []byte) error {
	v, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
