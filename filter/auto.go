package filter

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/histogram"

	"github.com/gogpu/imgedit/internal/logging"
)

// Auto-adjustment filter names.
const (
	NameAutoLevels   = "AutoLevels"
	NameAutoVibrance = "AutoVibrance"
)

// AutoAdjuster inspects an image and returns the filters that would
// enhance it, in the order they must be applied. An empty result means
// the image needs no adjustment.
type AutoAdjuster interface {
	AutoAdjustmentFilters(img image.Image) []Filter
}

// HistogramAutoAdjuster derives a levels stretch from the per-channel
// histogram and a vibrance boost from the mean saturation. Red-eye
// correction is not offered.
type HistogramAutoAdjuster struct {
	// ClipFraction is the share of pixels allowed to clip at each end of
	// a channel when stretching levels.
	ClipFraction float64

	// VibranceThreshold is the mean saturation below which vibrance is boosted.
	VibranceThreshold float64

	// VibranceAmount is passed to the AutoVibrance filter.
	VibranceAmount float64
}

// NewHistogramAutoAdjuster returns an adjuster with default thresholds.
func NewHistogramAutoAdjuster() *HistogramAutoAdjuster {
	return &HistogramAutoAdjuster{
		ClipFraction:      0.005,
		VibranceThreshold: 0.2,
		VibranceAmount:    0.4,
	}
}

// AutoAdjustmentFilters implements AutoAdjuster.
func (a *HistogramAutoAdjuster) AutoAdjustmentFilters(img image.Image) []Filter {
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	h := histogram.NewRGBAHistogram(img)
	total := img.Bounds().Dx() * img.Bounds().Dy()

	var black, white [3]float64
	stretch := false
	for i, ch := range []histogram.Histogram{h.R, h.G, h.B} {
		lo, hi := clipRange(ch.Bins, total, a.ClipFraction)
		if hi <= lo {
			lo, hi = 0, 255
		}
		black[i], white[i] = float64(lo)/255, float64(hi)/255
		if lo > 0 || hi < 255 {
			stretch = true
		}
	}

	var filters []Filter
	if stretch {
		if f, err := New(NameAutoLevels, Options{OptionBlackPoint: black, OptionWhitePoint: white}); err == nil {
			filters = append(filters, f)
		} else {
			logging.Logger().Warn("filter: auto levels unavailable", "err", err)
		}
	}
	if meanSaturation(img) < a.VibranceThreshold {
		if f, err := New(NameAutoVibrance, Options{OptionSaturation: a.VibranceAmount}); err == nil {
			filters = append(filters, f)
		} else {
			logging.Logger().Warn("filter: auto vibrance unavailable", "err", err)
		}
	}
	return filters
}

// clipRange returns the lowest and highest bins that remain after
// clipping fraction of total from each end.
func clipRange(bins []int, total int, fraction float64) (lo, hi int) {
	limit := int(float64(total) * fraction)
	sum := 0
	for lo = 0; lo < len(bins)-1; lo++ {
		sum += bins[lo]
		if sum > limit {
			break
		}
	}
	sum = 0
	for hi = len(bins) - 1; hi > 0; hi-- {
		sum += bins[hi]
		if sum > limit {
			break
		}
	}
	return lo, hi
}

// meanSaturation samples every fourth pixel on every fourth row.
func meanSaturation(img image.Image) float64 {
	src := rgbaInput(img)
	b := src.Bounds()
	var sum float64
	n := 0
	for y := 0; y < b.Dy(); y += 4 {
		for x := 0; x < b.Dx(); x += 4 {
			i := src.PixOffset(x, y)
			r, g, bl := src.Pix[i], src.Pix[i+1], src.Pix[i+2]
			hi := max(r, g, bl)
			lo := min(r, g, bl)
			sum += float64(hi-lo) / 255
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AutoLevels stretches each channel so that its black point maps to 0 and
// its white point to 1.
type AutoLevels struct {
	base
	Black, White [3]float64
}

func newAutoLevels(opts Options) (Filter, error) {
	f := &AutoLevels{base: base{name: NameAutoLevels}, White: [3]float64{1, 1, 1}}
	if v, ok := opts[OptionBlackPoint]; ok {
		p, ok := v.([3]float64)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T, want [3]float64", ErrInvalidOption, OptionBlackPoint, v)
		}
		f.Black = p
	}
	if v, ok := opts[OptionWhitePoint]; ok {
		p, ok := v.([3]float64)
		if !ok {
			return nil, fmt.Errorf("%w: %s is %T, want [3]float64", ErrInvalidOption, OptionWhitePoint, v)
		}
		f.White = p
	}
	for i := range 3 {
		if f.White[i] <= f.Black[i] {
			return nil, fmt.Errorf("%w: white point %v not above black point %v", ErrInvalidOption, f.White, f.Black)
		}
	}
	return f, nil
}

// Output implements Filter.
func (f *AutoLevels) Output() *image.RGBA {
	if f.input == nil {
		return nil
	}
	return applyStraight(f.input, func(r, g, b float64) (float64, float64, float64) {
		return (r - f.Black[0]) / (f.White[0] - f.Black[0]),
			(g - f.Black[1]) / (f.White[1] - f.Black[1]),
			(b - f.Black[2]) / (f.White[2] - f.Black[2])
	})
}

// AutoVibrance raises saturation, more strongly for muted pixels.
type AutoVibrance struct {
	base
	Amount float64
}

func newAutoVibrance(opts Options) (Filter, error) {
	amount, err := opts.Float(OptionSaturation, 0.4)
	if err != nil {
		return nil, err
	}
	return &AutoVibrance{base: base{name: NameAutoVibrance}, Amount: amount}, nil
}

// Output implements Filter.
func (f *AutoVibrance) Output() *image.RGBA {
	if f.input == nil {
		return nil
	}
	return applyStraight(f.input, func(r, g, b float64) (float64, float64, float64) {
		s := max(r, g, b) - min(r, g, b)
		k := 1 + f.Amount*(1-s)
		l := lumaR*r + lumaG*g + lumaB*b
		return l + (r-l)*k, l + (g-l)*k, l + (b-l)*k
	})
}
