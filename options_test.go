package imgedit

import (
	"image/color"
	"testing"

	"github.com/gogpu/imgedit/effect"
	"github.com/gogpu/imgedit/filter"
)

// TestNewRendererDefaults tests the options a renderer starts with.
func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer()
	defer r.Close()

	if r.RenderMode() != RenderModeAll {
		t.Errorf("RenderMode() = %v, want all", r.RenderMode())
	}
	if r.opts.interpolation != InterpBilinear {
		t.Errorf("interpolation = %v, want bilinear", r.opts.interpolation)
	}
	if r.opts.clearColor != (color.RGBA{A: 0xff}) {
		t.Errorf("clearColor = %v, want opaque black", r.opts.clearColor)
	}
	if _, ok := r.opts.autoAdjuster.(*filter.HistogramAutoAdjuster); !ok {
		t.Errorf("autoAdjuster = %T, want *filter.HistogramAutoAdjuster", r.opts.autoAdjuster)
	}
	if _, ok := r.opts.lookup("K1"); !ok {
		t.Error("default lookup should use the built-in catalog")
	}
}

// TestWithRenderMode tests the initial render mode option.
func TestWithRenderMode(t *testing.T) {
	mode := RenderModeOrientationCrop | RenderModeColorAdjustments
	r := NewRenderer(WithRenderMode(mode))
	defer r.Close()

	if r.RenderMode() != mode {
		t.Errorf("RenderMode() = %v, want %v", r.RenderMode(), mode)
	}
}

// TestNilOptionsKeepDefaults tests that nil dependencies are ignored.
func TestNilOptionsKeepDefaults(t *testing.T) {
	r := NewRenderer(WithFilterFactory(nil), WithAutoAdjuster(nil))
	defer r.Close()

	if r.opts.factory == nil {
		t.Error("WithFilterFactory(nil) cleared the factory")
	}
	if r.opts.autoAdjuster == nil {
		t.Error("WithAutoAdjuster(nil) cleared the adjuster")
	}
}

// TestWithFilterFactory tests that every stage creates filters through
// the injected factory.
func TestWithFilterFactory(t *testing.T) {
	created := map[string]int{}
	counting := filter.FactoryFunc(func(name string, opts filter.Options) (filter.Filter, error) {
		created[name]++
		return filter.New(name, opts)
	})

	m := NewEditModel()
	m.Saturation = 0.5
	m.EffectIdentifier = "Mono"
	r := newTestRenderer(t, gradient(8, 8), m, WithFilterFactory(counting))
	r.OutputImage()

	if created[filter.NameColorControls] != 1 {
		t.Errorf("ColorControls created %d times, want 1", created[filter.NameColorControls])
	}
	if created[filter.NamePhotoEffectMono] != 1 {
		t.Errorf("PhotoEffectMono created %d times, want 1", created[filter.NamePhotoEffectMono])
	}
}

// TestWithCatalog tests that a custom catalog replaces the built-in one.
func TestWithCatalog(t *testing.T) {
	sepia := effect.NewEffect("Old", filter.NameSepiaTone, "Old", nil)
	r := NewRenderer(WithCatalog([]*effect.Effect{sepia}))
	defer r.Close()

	if e, ok := r.opts.lookup("Old"); !ok || e != sepia {
		t.Error("custom entry not found")
	}
	if _, ok := r.opts.lookup("K1"); ok {
		t.Error("built-in entries should not be visible")
	}
}

// TestWithInterpolationAndClearColor tests the draw options.
func TestWithInterpolationAndClearColor(t *testing.T) {
	c := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	r := NewRenderer(WithInterpolation(InterpBicubic), WithClearColor(c))
	defer r.Close()

	if r.opts.interpolation != InterpBicubic {
		t.Errorf("interpolation = %v, want bicubic", r.opts.interpolation)
	}
	if r.opts.clearColor != c {
		t.Errorf("clearColor = %v, want %v", r.opts.clearColor, c)
	}
}
