package filter

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// Blur and focus filter names.
const (
	NameGaussianBlur = "GaussianBlur"
	NameLinearFocus  = "LinearFocus"
	NameRadialFocus  = "RadialFocus"
)

// MinFocusRadius is the smallest blur radius that has a visible effect.
// Focus filters pass their input through below it.
const MinFocusRadius = 0.16

// focusFalloff is the length of the sharp-to-blurred transition as a
// fraction of the distance between the two control points.
const focusFalloff = 0.3

// GaussianBlur blurs the whole image.
type GaussianBlur struct {
	base
	Radius float64
}

func newGaussianBlur(opts Options) (Filter, error) {
	r, err := opts.Float(OptionRadius, 10)
	if err != nil {
		return nil, err
	}
	return &GaussianBlur{base: base{name: NameGaussianBlur}, Radius: r}, nil
}

// Output implements Filter.
func (f *GaussianBlur) Output() *image.RGBA {
	if f.input == nil {
		return nil
	}
	src := rgbaInput(f.input)
	if f.Radius <= 0 {
		return src
	}
	return rebase(blur.Gaussian(src, f.Radius))
}

// focus blends a blurred copy of the input over the original using a
// per-pixel mask in [0,1], where 1 is fully blurred.
type focus struct {
	base
	radius float64
	p1, p2 Vec2
}

func newFocus(name string, opts Options) (*focus, error) {
	r, err := opts.Float(OptionRadius, 10)
	if err != nil {
		return nil, err
	}
	p1, err := opts.Vec(OptionPoint1, Vec2{X: 0.5, Y: 0.3})
	if err != nil {
		return nil, err
	}
	p2, err := opts.Vec(OptionPoint2, Vec2{X: 0.5, Y: 0.7})
	if err != nil {
		return nil, err
	}
	return &focus{base: base{name: name}, radius: r, p1: p1, p2: p2}, nil
}

// newLinearFocus keeps the band between the two control points sharp and
// blurs beyond them, ramping up over 30% of the band width on each side.
func newLinearFocus(opts Options) (Filter, error) {
	f, err := newFocus(NameLinearFocus, opts)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// newRadialFocus keeps a disc centered on point1 and reaching point2
// sharp and blurs outside it.
func newRadialFocus(opts Options) (Filter, error) {
	f, err := newFocus(NameRadialFocus, opts)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *focus) maskFunc(w, h float64) func(x, y float64) float64 {
	ax, ay := f.p1.X*w, f.p1.Y*h
	bx, by := f.p2.X*w, f.p2.Y*h
	vx, vy := bx-ax, by-ay
	length2 := vx*vx + vy*vy

	if f.name == NameRadialFocus {
		r := math.Sqrt(length2)
		if r == 0 {
			return func(float64, float64) float64 { return 1 }
		}
		return func(x, y float64) float64 {
			d := math.Hypot(x-ax, y-ay)
			return clamp01((d - r) / (focusFalloff * r))
		}
	}

	if length2 == 0 {
		return func(float64, float64) float64 { return 1 }
	}
	return func(x, y float64) float64 {
		// t is 0 at point1 and 1 at point2 along the control vector.
		t := ((x-ax)*vx + (y-ay)*vy) / length2
		return min(clamp01(-t/focusFalloff)+clamp01((t-1)/focusFalloff), 1)
	}
}

// Output implements Filter.
func (f *focus) Output() *image.RGBA {
	if f.input == nil {
		return nil
	}
	src := rgbaInput(f.input)
	if f.radius < MinFocusRadius {
		return src
	}
	blurred := rebase(blur.Gaussian(src, f.radius))

	b := src.Bounds()
	mask := f.maskFunc(float64(b.Dx()), float64(b.Dy()))
	dst := image.NewRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		so := src.PixOffset(0, y)
		bo := blurred.PixOffset(0, y)
		do := dst.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			m := mask(float64(x)+0.5, float64(y)+0.5)
			for c := 0; c < 4; c++ {
				s := float64(src.Pix[so+x*4+c])
				bl := float64(blurred.Pix[bo+x*4+c])
				dst.Pix[do+x*4+c] = uint8(s + (bl-s)*m + 0.5)
			}
		}
	}
	return dst
}
