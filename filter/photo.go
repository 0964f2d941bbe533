package filter

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// Procedural photo effect names.
const (
	NamePhotoEffectMono     = "PhotoEffectMono"
	NamePhotoEffectNoir     = "PhotoEffectNoir"
	NamePhotoEffectTonal    = "PhotoEffectTonal"
	NamePhotoEffectChrome   = "PhotoEffectChrome"
	NamePhotoEffectFade     = "PhotoEffectFade"
	NamePhotoEffectInstant  = "PhotoEffectInstant"
	NamePhotoEffectProcess  = "PhotoEffectProcess"
	NamePhotoEffectTransfer = "PhotoEffectTransfer"
	NameSepiaTone           = "SepiaTone"
	NameColorInvert         = "ColorInvert"
	NameSharpen             = "Sharpen"
)

func tint(img image.Image, kr, kg, kb float64) *image.RGBA {
	return applyStraight(img, func(r, g, b float64) (float64, float64, float64) {
		return r * kr, g * kg, b * kb
	})
}

var photoEffects = map[string]func(image.Image) *image.RGBA{
	NamePhotoEffectMono: func(img image.Image) *image.RGBA {
		return effect.Grayscale(img)
	},
	NamePhotoEffectNoir: func(img image.Image) *image.RGBA {
		return adjust.Contrast(effect.GrayscaleWithWeights(img, 0.3, 0.6, 0.1), 0.35)
	},
	NamePhotoEffectTonal: func(img image.Image) *image.RGBA {
		return adjust.Gamma(effect.Grayscale(img), 1.1)
	},
	NamePhotoEffectChrome: func(img image.Image) *image.RGBA {
		return adjust.Contrast(adjust.Saturation(img, 0.25), 0.1)
	},
	NamePhotoEffectFade: func(img image.Image) *image.RGBA {
		return adjust.Saturation(adjust.Contrast(img, -0.15), -0.3)
	},
	NamePhotoEffectInstant: func(img image.Image) *image.RGBA {
		return tint(adjust.Saturation(img, -0.15), 1.05, 1.0, 0.9)
	},
	NamePhotoEffectProcess: func(img image.Image) *image.RGBA {
		return tint(adjust.Contrast(img, 0.15), 0.92, 1.0, 1.08)
	},
	NamePhotoEffectTransfer: func(img image.Image) *image.RGBA {
		return tint(adjust.Gamma(img, 1.05), 1.08, 1.0, 0.92)
	},
	NameSepiaTone: func(img image.Image) *image.RGBA {
		return effect.Sepia(img)
	},
	NameColorInvert: func(img image.Image) *image.RGBA {
		return effect.Invert(img)
	},
	NameSharpen: func(img image.Image) *image.RGBA {
		return effect.Sharpen(img)
	},
}

// photoEffect applies a fixed procedural look. It takes no options.
type photoEffect struct {
	base
	apply func(image.Image) *image.RGBA
}

func photoEffectConstructor(name string, fn func(image.Image) *image.RGBA) Constructor {
	return func(Options) (Filter, error) {
		return &photoEffect{base: base{name: name}, apply: fn}, nil
	}
}

// Output implements Filter.
func (f *photoEffect) Output() *image.RGBA {
	if f.input == nil {
		return nil
	}
	return rebase(f.apply(rgbaInput(f.input)))
}
