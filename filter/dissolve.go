package filter

import (
	"image"

	"github.com/anthonynsimon/bild/blend"
)

// NameDissolve is the name reported by Dissolve filters.
const NameDissolve = "Dissolve"

// Dissolve mixes the output of Inner with its unfiltered input.
// Intensity 0 returns the input, 1 the output of Inner, and values in
// between blend the two linearly.
type Dissolve struct {
	base
	Inner     Filter
	Intensity float64
}

// NewDissolve wraps inner so that it applies at the given intensity.
func NewDissolve(inner Filter, intensity float64) *Dissolve {
	return &Dissolve{base: base{name: NameDissolve}, Inner: inner, Intensity: intensity}
}

// SetInput implements Filter. The input is forwarded to Inner.
func (f *Dissolve) SetInput(img image.Image) {
	f.input = img
	f.Inner.SetInput(img)
}

// Output implements Filter.
func (f *Dissolve) Output() *image.RGBA {
	if f.input == nil {
		return nil
	}
	src := rgbaInput(f.input)
	t := min(max(f.Intensity, 0), 1)
	if t == 0 {
		return src
	}
	out := f.Inner.Output()
	if out == nil {
		return src
	}
	if t == 1 {
		return out
	}
	return rebase(blend.Opacity(src, out, t))
}
