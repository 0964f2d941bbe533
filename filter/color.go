package filter

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
)

// Built-in filter names.
const (
	NameColorCube     = "ColorCube"
	NameColorControls = "ColorControls"
)

// Rec. 709 luma weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

// applyStraight runs fn over every pixel with un-premultiplied channels
// in [0,1]. Fully transparent pixels are left alone.
func applyStraight(img image.Image, fn func(r, g, b float64) (float64, float64, float64)) *image.RGBA {
	return rebase(adjust.Apply(rgbaInput(img), func(c color.RGBA) color.RGBA {
		if c.A == 0 {
			return c
		}
		a := float64(c.A) / 255
		r, g, b := fn(float64(c.R)/255/a, float64(c.G)/255/a, float64(c.B)/255/a)
		return color.RGBA{R: to8(clamp01(r) * a), G: to8(clamp01(g) * a), B: to8(clamp01(b) * a), A: c.A}
	}))
}

// ColorControls adjusts saturation, brightness and contrast in that
// order. Brightness is additive, contrast pivots around mid-grey and
// saturation interpolates from the pixel's luma.
type ColorControls struct {
	base
	Brightness float64
	Contrast   float64
	Saturation float64
}

func newColorControls(opts Options) (Filter, error) {
	b, err := opts.Float(OptionBrightness, 0)
	if err != nil {
		return nil, err
	}
	c, err := opts.Float(OptionContrast, 1)
	if err != nil {
		return nil, err
	}
	s, err := opts.Float(OptionSaturation, 1)
	if err != nil {
		return nil, err
	}
	return &ColorControls{base: base{name: NameColorControls}, Brightness: b, Contrast: c, Saturation: s}, nil
}

// Output implements Filter.
func (f *ColorControls) Output() *image.RGBA {
	if f.input == nil {
		return nil
	}
	return applyStraight(f.input, func(r, g, b float64) (float64, float64, float64) {
		l := lumaR*r + lumaG*g + lumaB*b
		r = l + (r-l)*f.Saturation
		g = l + (g-l)*f.Saturation
		b = l + (b-l)*f.Saturation

		r += f.Brightness
		g += f.Brightness
		b += f.Brightness

		r = (r-0.5)*f.Contrast + 0.5
		g = (g-0.5)*f.Contrast + 0.5
		b = (b-0.5)*f.Contrast + 0.5
		return r, g, b
	})
}

// ColorCube maps colors through a dimension³ lookup table using
// trilinear interpolation. The table is laid out red-fastest:
// entry (r, g, b) starts at byte ((b*n+g)*n+r)*4.
type ColorCube struct {
	base
	dimension int
	data      []byte
}

func newColorCube(opts Options) (Filter, error) {
	n, err := opts.Int(OptionCubeDimension, 64)
	if err != nil {
		return nil, err
	}
	if n < 2 || n > 128 {
		return nil, fmt.Errorf("%w: cube dimension %d", ErrInvalidOption, n)
	}
	data, err := opts.Bytes(OptionCubeData)
	if err != nil {
		return nil, err
	}
	if len(data) != n*n*n*4 {
		return nil, fmt.Errorf("%w: cube data is %d bytes, want %d", ErrInvalidOption, len(data), n*n*n*4)
	}
	space, err := opts.String(OptionColorSpace, ColorSpaceSRGB)
	if err != nil {
		return nil, err
	}
	if space != ColorSpaceSRGB {
		return nil, fmt.Errorf("%w: unsupported color space %q", ErrInvalidOption, space)
	}
	return &ColorCube{base: base{name: NameColorCube}, dimension: n, data: data}, nil
}

// Output implements Filter.
func (f *ColorCube) Output() *image.RGBA {
	if f.input == nil {
		return nil
	}
	return applyStraight(f.input, f.lookup)
}

func (f *ColorCube) entry(ri, gi, bi int) (r, g, b float64) {
	n := f.dimension
	i := ((bi*n+gi)*n + ri) * 4
	return float64(f.data[i]) / 255, float64(f.data[i+1]) / 255, float64(f.data[i+2]) / 255
}

func (f *ColorCube) lookup(r, g, b float64) (float64, float64, float64) {
	last := float64(f.dimension - 1)
	split := func(v float64) (lo, hi int, t float64) {
		p := clamp01(v) * last
		lo = int(p)
		hi = min(lo+1, f.dimension-1)
		return lo, hi, p - float64(lo)
	}
	r0, r1, tr := split(r)
	g0, g1, tg := split(g)
	b0, b1, tb := split(b)

	var out [3]float64
	for _, c := range [8]struct {
		ri, gi, bi int
		w          float64
	}{
		{r0, g0, b0, (1 - tr) * (1 - tg) * (1 - tb)},
		{r1, g0, b0, tr * (1 - tg) * (1 - tb)},
		{r0, g1, b0, (1 - tr) * tg * (1 - tb)},
		{r1, g1, b0, tr * tg * (1 - tb)},
		{r0, g0, b1, (1 - tr) * (1 - tg) * tb},
		{r1, g0, b1, tr * (1 - tg) * tb},
		{r0, g1, b1, (1 - tr) * tg * tb},
		{r1, g1, b1, tr * tg * tb},
	} {
		if c.w == 0 {
			continue
		}
		er, eg, eb := f.entry(c.ri, c.gi, c.bi)
		out[0] += er * c.w
		out[1] += eg * c.w
		out[2] += eb * c.w
	}
	return out[0], out[1], out[2]
}
