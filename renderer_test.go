package imgedit

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/imgedit/effect"
	"github.com/gogpu/imgedit/filter"
)

func newTestRenderer(t *testing.T, base *image.RGBA, m EditModel, opts ...RendererOption) *Renderer {
	t.Helper()
	r := NewRenderer(opts...)
	t.Cleanup(r.Close)
	r.SetBaseImage(NewImage(base))
	r.SetEditModel(m)
	return r
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestRendererPanicsWithoutInputs(t *testing.T) {
	r := NewRenderer()
	defer r.Close()

	mustPanic(t, "no base image", func() { r.OutputImage() })

	r.SetBaseImage(NewImage(gradient(4, 4)))
	mustPanic(t, "no edit model", func() { r.OutputImage() })
	mustPanic(t, "no edit model size", func() { r.OutputImageSize() })

	r.SetEditModel(NewEditModel())
	if r.OutputImage() == nil {
		t.Error("OutputImage() = nil with both inputs set")
	}
}

func TestRendererIdentityReturnsBase(t *testing.T) {
	r := newTestRenderer(t, gradient(16, 16), NewEditModel())
	if r.OutputImage() != r.BaseImage() {
		t.Error("an identity model should render the base image itself")
	}
}

func TestRendererCropScenario(t *testing.T) {
	src := gradient(1000, 1000)
	m := NewEditModel()
	m.NormalizedCropRect = R(0.25, 0.25, 0.5, 0.5)
	r := newTestRenderer(t, src, m)

	out := r.OutputImage()
	if got, want := out.Extent(), R(0, 0, 500, 500); got != want {
		t.Fatalf("Extent() = %v, want %v", got, want)
	}
	px := out.Raster()
	for _, p := range []image.Point{{0, 0}, {499, 499}, {123, 321}} {
		if got, want := px.RGBAAt(p.X, p.Y), src.RGBAAt(p.X+250, p.Y+250); got != want {
			t.Errorf("pixel %v = %v, want source pixel %v", p, got, want)
		}
	}
	if got := r.OutputImageSize(); got != Sz(500, 500) {
		t.Errorf("OutputImageSize() = %v, want 500x500", got)
	}
}

func TestRendererFullFrameGeometryIsNoop(t *testing.T) {
	m := NewEditModel()
	m.Brightness = 0.1
	r := newTestRenderer(t, gradient(32, 32), m, WithRenderMode(RenderModeOrientationCrop))

	if r.OutputImage() != r.BaseImage() {
		t.Error("full-frame geometry should not copy the image")
	}
}

func TestRendererMemoizes(t *testing.T) {
	m := NewEditModel()
	m.Brightness = 0.2
	r := newTestRenderer(t, gradient(16, 16), m)

	a := r.OutputImage()
	b := r.OutputImage()
	if a != b {
		t.Error("OutputImage() should return the cached image")
	}
	if got := r.RecomputeCount(); got != 1 {
		t.Errorf("RecomputeCount() = %d, want 1", got)
	}

	copied := m
	r.SetEditModel(copied)
	r.OutputImage()
	if got := r.RecomputeCount(); got != 1 {
		t.Errorf("value-equal model recomputed: RecomputeCount() = %d, want 1", got)
	}
}

func TestRendererInvalidates(t *testing.T) {
	base := solidRGBA(8, 8, color.RGBA{50, 50, 50, 255})
	r := newTestRenderer(t, base, NewEditModel())
	before := r.OutputImage().Raster().RGBAAt(4, 4)

	m := NewEditModel()
	m.Brightness = 0.3
	r.SetEditModel(m)
	after := r.OutputImage().Raster().RGBAAt(4, 4)
	if after.R <= before.R {
		t.Errorf("brightness change not reflected: before %v, after %v", before, after)
	}
	if got := r.RecomputeCount(); got != 2 {
		t.Errorf("RecomputeCount() = %d, want 2", got)
	}

	r.SetRenderMode(RenderModeAll)
	r.OutputImage()
	if got := r.RecomputeCount(); got != 2 {
		t.Errorf("unchanged render mode recomputed: %d", got)
	}

	r.SetRenderMode(RenderModeOrientationCrop)
	if got := r.OutputImage().Raster().RGBAAt(4, 4); got != before {
		t.Errorf("without color stage pixel = %v, want %v", got, before)
	}
	if got := r.RecomputeCount(); got != 3 {
		t.Errorf("RecomputeCount() = %d, want 3", got)
	}

	r.SetBaseImage(NewImage(base))
	r.OutputImage()
	if got := r.RecomputeCount(); got != 4 {
		t.Errorf("new base image: RecomputeCount() = %d, want 4", got)
	}
}

func TestRendererOutputImageSize(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EditModel)
	}{
		{"identity", func(*EditModel) {}},
		{"crop", func(m *EditModel) { m.NormalizedCropRect = R(0.1, 0.2, 0.5, 0.4) }},
		{"rotate90", func(m *EditModel) { m.AppliedOrientation = Rotate90 }},
		{"straighten", func(m *EditModel) { m.StraightenAngle = 0.1 }},
		{"straighten+flip", func(m *EditModel) {
			m.StraightenAngle = 0.1
			m.AppliedOrientation = FlipX
		}},
		{"straighten+transpose", func(m *EditModel) {
			m.StraightenAngle = -0.1
			m.AppliedOrientation = Transpose
		}},
		{"straighten+crop", func(m *EditModel) {
			m.StraightenAngle = -0.2
			m.NormalizedCropRect = R(0.25, 0.25, 0.5, 0.5)
		}},
		{"everything", func(m *EditModel) {
			m.StraightenAngle = 0.05
			m.NormalizedCropRect = R(0.2, 0.1, 0.6, 0.7)
			m.AppliedOrientation = Transverse
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewEditModel()
			tt.mutate(&m)
			r := newTestRenderer(t, gradient(101, 67), m)

			want := r.OutputImageSize()
			if r.RecomputeCount() != 0 {
				t.Error("OutputImageSize() must not render")
			}
			if got := r.OutputImage().Size(); !sizesNear(got, want) {
				t.Errorf("OutputImageSize() = %v, rendered %v", want, got)
			}
			if r.RecomputeCount() != 1 {
				t.Errorf("RecomputeCount() = %d, want 1", r.RecomputeCount())
			}
		})
	}
}

func TestRendererStraightenKeepsCropCentered(t *testing.T) {
	src := solidRGBA(200, 100, color.RGBA{255, 255, 255, 255})
	for y := 45; y < 55; y++ {
		for x := 95; x < 105; x++ {
			src.SetRGBA(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	m := NewEditModel()
	m.StraightenAngle = 0.15
	m.NormalizedCropRect = R(0.25, 0.25, 0.5, 0.5)
	r := newTestRenderer(t, src, m)

	out := r.OutputImage()
	if got := out.Size(); got != Sz(100, 50) {
		t.Fatalf("Size() = %v, want 100x50", got)
	}
	px := out.Raster()
	if c := px.RGBAAt(50, 25); c.R != 255 || c.G > 10 {
		t.Errorf("center pixel = %v, want red", c)
	}
	if c := px.RGBAAt(2, 2); c.A != 255 || c.G < 245 {
		t.Errorf("corner pixel = %v, want opaque white", c)
	}
}

func TestRendererCropOutsideIsEmpty(t *testing.T) {
	m := NewEditModel()
	m.NormalizedCropRect = R(2, 2, 0.5, 0.5)
	r := newTestRenderer(t, gradient(20, 20), m)

	if !r.OutputImage().IsEmpty() {
		t.Error("a crop outside the image should give empty output")
	}
	if r.Snapshot(nil) != nil {
		t.Error("Snapshot of empty output should be nil")
	}
	if got := r.OutputImageSize(); !got.IsEmpty() {
		t.Errorf("OutputImageSize() = %v, want empty", got)
	}
}

func TestRendererOrientation(t *testing.T) {
	src := gradient(6, 4)
	m := NewEditModel()
	m.AppliedOrientation = Rotate270
	r := newTestRenderer(t, src, m)

	want := NewImage(src).Reorient(Rotate270).Raster()
	got := r.OutputImage().Raster()
	if got.Rect != want.Rect {
		t.Fatalf("Rect = %v, want %v", got.Rect, want.Rect)
	}
	if got.RGBAAt(0, 0) != want.RGBAAt(0, 0) || got.RGBAAt(3, 5) != want.RGBAAt(3, 5) {
		t.Error("rendered orientation differs from Reorient")
	}
}

func TestRendererUnavailableFilterDegrades(t *testing.T) {
	failing := filter.FactoryFunc(func(name string, opts filter.Options) (filter.Filter, error) {
		if name == filter.NameColorControls {
			return nil, errors.New("not today")
		}
		return filter.New(name, opts)
	})
	m := NewEditModel()
	m.Brightness = 0.5
	m.EffectIdentifier = "NoSuchEffect"
	r := newTestRenderer(t, gradient(8, 8), m, WithFilterFactory(failing))

	if r.OutputImage() != r.BaseImage() {
		t.Error("stages with unavailable filters should pass the image through")
	}
}

func TestRendererEffectIntensity(t *testing.T) {
	invert := effect.NewEffect("Invert", filter.NameColorInvert, "Invert", nil)
	base := solidRGBA(4, 4, color.RGBA{200, 200, 200, 255})

	tests := []struct {
		intensity float64
		want      uint8
	}{
		{1, 55},
		{0.5, 128},
	}
	for _, tt := range tests {
		m := NewEditModel()
		m.EffectIdentifier = "Invert"
		m.EffectIntensity = tt.intensity
		r := newTestRenderer(t, base, m, WithCatalog([]*effect.Effect{invert}))

		got := r.OutputImage().Raster().RGBAAt(1, 1).R
		if d := int(got) - int(tt.want); d < -1 || d > 1 {
			t.Errorf("intensity %v: R = %d, want %d", tt.intensity, got, tt.want)
		}
	}

	m := NewEditModel()
	m.EffectIdentifier = "Invert"
	m.EffectIntensity = 0
	r := newTestRenderer(t, base, m, WithCatalog([]*effect.Effect{invert}))
	if r.OutputImage() != r.BaseImage() {
		t.Error("intensity 0 should skip the effect")
	}
}

func TestRendererCatalogEffect(t *testing.T) {
	m := NewEditModel()
	m.EffectIdentifier = "Mono"
	r := newTestRenderer(t, solidRGBA(4, 4, color.RGBA{220, 30, 60, 255}), m)

	c := r.OutputImage().Raster().RGBAAt(2, 2)
	if c.R != c.G || c.G != c.B {
		t.Errorf("Mono effect pixel = %v, want grey", c)
	}

	r.SetRenderMode(RenderModeAll &^ RenderModePhotoEffect)
	if r.OutputImage() != r.BaseImage() {
		t.Error("without the photo effect bit the effect must not run")
	}
}

type invertAdjuster struct{ calls int }

func (a *invertAdjuster) AutoAdjustmentFilters(image.Image) []filter.Filter {
	a.calls++
	f, _ := filter.New(filter.NameColorInvert, nil)
	return []filter.Filter{f}
}

func TestRendererAutoEnhancement(t *testing.T) {
	adj := &invertAdjuster{}
	m := NewEditModel()
	r := newTestRenderer(t, solidRGBA(4, 4, color.RGBA{10, 20, 30, 255}), m, WithAutoAdjuster(adj))

	r.OutputImage()
	if adj.calls != 0 {
		t.Error("auto enhancement ran while disabled")
	}

	m.AutoEnhancementEnabled = true
	r.SetEditModel(m)
	if c := r.OutputImage().Raster().RGBAAt(0, 0); c.R != 245 {
		t.Errorf("pixel = %v, want inverted", c)
	}
	if adj.calls != 1 {
		t.Errorf("adjuster calls = %d, want 1", adj.calls)
	}
}

func TestRendererFocus(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x%2 == 0 {
				src.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				src.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	m := NewEditModel()
	m.FocusType = FocusRadial
	m.FocusControlPoint1 = Pt(0.5, 0.5)
	m.FocusControlPoint2 = Pt(0.5, 0.6)
	m.FocusBlurRadius = 4
	r := newTestRenderer(t, src, m)

	out := r.OutputImage().Raster()
	if got, want := out.RGBAAt(20, 20), src.RGBAAt(20, 20); got != want {
		t.Errorf("focus center = %v, want sharp %v", got, want)
	}
	if c := out.RGBAAt(0, 0); c.R == 255 || c.R == 0 {
		t.Errorf("far corner = %v, want blurred grey", c)
	}

	r.SetRenderMode(RenderModeAll &^ RenderModeFocus)
	if r.OutputImage() != r.BaseImage() {
		t.Error("without the focus bit the focus stage must not run")
	}
}

func TestRendererFollow(t *testing.T) {
	mm := NewMutableModel()
	r := NewRenderer()
	defer r.Close()
	r.SetBaseImage(NewImage(gradient(8, 8)))

	stop := r.Follow(mm)
	if got, ok := r.EditModel(); !ok || got != mm.Snapshot() {
		t.Fatal("Follow should apply the current snapshot")
	}
	r.OutputImage()

	mm.SetContrast(1.5)
	if got, _ := r.EditModel(); got.Contrast != 1.5 {
		t.Errorf("Contrast = %v, want 1.5", got.Contrast)
	}
	r.OutputImage()
	if got := r.RecomputeCount(); got != 2 {
		t.Errorf("RecomputeCount() = %d, want 2", got)
	}

	stop()
	mm.SetContrast(2)
	if got, _ := r.EditModel(); got.Contrast != 1.5 {
		t.Error("changes after stop should not reach the renderer")
	}
}

func TestRendererColorAdjustmentsReachOutput(t *testing.T) {
	m := NewEditModel()
	m.Brightness = 0.2
	r := newTestRenderer(t, solidRGBA(4, 4, color.RGBA{100, 100, 100, 255}), m)

	got := r.OutputImage().Raster().RGBAAt(2, 2)
	if d := int(got.R) - 151; d < -1 || d > 1 {
		t.Errorf("brightened pixel = %v, want R about 151", got)
	}

	r.SetRenderMode(RenderModeAll &^ RenderModeColorAdjustments)
	if r.OutputImage() != r.BaseImage() {
		t.Error("without the color bit the adjustment must not run")
	}
}

func TestRendererOverlaysBitIsInert(t *testing.T) {
	m := NewEditModel()
	m.Brightness = 0.2
	base := solidRGBA(4, 4, color.RGBA{100, 100, 100, 255})
	all := newTestRenderer(t, base, m)
	without := newTestRenderer(t, base, m, WithRenderMode(RenderModeAll&^RenderModeOverlays))

	if got, want := without.OutputImage().Raster().RGBAAt(1, 1), all.OutputImage().Raster().RGBAAt(1, 1); got != want {
		t.Errorf("clearing the overlays bit changed the output: %v, want %v", got, want)
	}
	if without.OutputImageSize() != all.OutputImageSize() {
		t.Error("clearing the overlays bit changed the output size")
	}
}
