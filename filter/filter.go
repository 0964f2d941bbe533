package filter

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
)

var (
	// ErrUnknownFilter is returned when no constructor is registered under
	// the requested name.
	ErrUnknownFilter = errors.New("filter: unknown filter")

	// ErrInvalidOption is returned when an option is missing or has the
	// wrong type or range.
	ErrInvalidOption = errors.New("filter: invalid option")
)

// Filter transforms one input image into one output image.
//
// Output computes the result on every call and returns nil when no input
// is set. A Filter is NOT safe for concurrent use.
type Filter interface {
	// Name returns the registry name the filter was created under.
	Name() string

	// SetInput sets the image to filter. Pass nil to release it.
	SetInput(img image.Image)

	// Output returns the filtered image, anchored at (0,0).
	Output() *image.RGBA
}

// Vec2 is a 2D vector in normalized image coordinates.
type Vec2 struct {
	X, Y float64
}

// Option keys understood by the built-in filters.
const (
	OptionCubeDimension = "cubeDimension" // int
	OptionCubeData      = "cubeData"      // []byte, dimension³×4 RGBA bytes
	OptionColorSpace    = "colorSpace"    // string
	OptionBrightness    = "brightness"    // float64, additive
	OptionContrast      = "contrast"      // float64, 1 is neutral
	OptionSaturation    = "saturation"    // float64, 1 is neutral
	OptionRadius        = "radius"        // float64, pixels
	OptionPoint1        = "point1"        // Vec2, normalized
	OptionPoint2        = "point2"        // Vec2, normalized
	OptionIntensity     = "intensity"     // float64 in [0,1]
	OptionBlackPoint    = "blackPoint"    // [3]float64 in [0,1]
	OptionWhitePoint    = "whitePoint"    // [3]float64 in [0,1]
)

// ColorSpaceSRGB is the working color space of LUT effects.
const ColorSpaceSRGB = "sRGB"

// Options carries named filter parameters.
type Options map[string]any

// Clone returns a shallow copy of o that can be extended without
// affecting the original.
func (o Options) Clone() Options {
	c := make(Options, len(o)+2)
	for k, v := range o {
		c[k] = v
	}
	return c
}

// Float returns the float64 stored under key, or def when absent.
// Integer values are converted.
func (o Options) Float(key string, def float64) (float64, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: %s is %T, want float64", ErrInvalidOption, key, v)
}

// Int returns the int stored under key, or def when absent.
func (o Options) Int(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %s is %T, want int", ErrInvalidOption, key, v)
	}
	return n, nil
}

// String returns the string stored under key, or def when absent.
func (o Options) String(key, def string) (string, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", ErrInvalidOption, key, v)
	}
	return s, nil
}

// Vec returns the Vec2 stored under key, or def when absent.
func (o Options) Vec(key string, def Vec2) (Vec2, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	p, ok := v.(Vec2)
	if !ok {
		return Vec2{}, fmt.Errorf("%w: %s is %T, want Vec2", ErrInvalidOption, key, v)
	}
	return p, nil
}

// Bytes returns the byte slice stored under key. It is an error for the
// key to be absent.
func (o Options) Bytes(key string) ([]byte, error) {
	v, ok := o[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidOption, key)
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %T, want []byte", ErrInvalidOption, key, v)
	}
	return b, nil
}

// base holds the name and input shared by every built-in filter.
type base struct {
	name  string
	input image.Image
}

func (b *base) Name() string { return b.name }

func (b *base) SetInput(img image.Image) { b.input = img }

// rebase returns img with its bounds moved to (0,0) without copying.
func rebase(img *image.RGBA) *image.RGBA {
	if img == nil || img.Rect.Min == (image.Point{}) {
		return img
	}
	return &image.RGBA{
		Pix:    img.Pix,
		Stride: img.Stride,
		Rect:   image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()),
	}
}

// rgbaInput returns the input as an origin-anchored *image.RGBA, sharing
// pixels when it already is one.
func rgbaInput(img image.Image) *image.RGBA {
	return rebase(clone.AsShallowRGBA(img))
}
