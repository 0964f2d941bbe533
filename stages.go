package imgedit

import (
	"errors"
	"math"

	"github.com/gogpu/imgedit/effect"
	"github.com/gogpu/imgedit/filter"
)

// geometryPlan is the geometry stage resolved against an input extent.
type geometryPlan struct {
	rotate   bool
	rotation Affine

	crop     bool
	cropRect Rect // rounded, in the space of the re-anchored rotated image

	orientation Orientation
}

// planGeometry works out the straighten rotation and the crop rectangle
// for an image covering extent.
func planGeometry(extent Rect, m EditModel) geometryPlan {
	p := geometryPlan{orientation: m.AppliedOrientation}
	crop := m.NormalizedCropRect.Denormalize(extent)

	if angle := m.StraightenAngle; angle != IdentityStraightenAngle {
		p.rotate = true
		p.rotation = RotateAffine(-angle)

		// The crop was chosen on the unrotated image. Carry its center
		// into the rotated, re-anchored image and keep its size.
		rotated := p.rotation.TransformRect(extent)
		inverse, _ := p.rotation.Invert()
		toRotated := TranslateAffine(-extent.MidX(), -extent.MidY()).
			Concat(inverse).
			Concat(TranslateAffine(rotated.Width*0.5, rotated.Height*0.5))
		c := toRotated.TransformPoint(crop.Center())
		crop.X = c.X - crop.Width*0.5
		crop.Y = c.Y - crop.Height*0.5
	}

	if m.NormalizedCropRect != IdentityNormalizedCropRect() {
		p.crop = true
		p.cropRect = crop.Round()
	}
	return p
}

// outputSize returns the size of an image covering extent after the plan.
func (p geometryPlan) outputSize(extent Rect) Size {
	e := extent
	if p.rotate {
		r := p.rotation.TransformRect(e)
		e = Rect{Width: r.Width, Height: r.Height}
		if !p.crop && p.orientation.IsValid() && p.orientation != Normal {
			// Reorient works on whole pixels of the rotated raster.
			px := r.Integral()
			e = Rect{Width: float64(px.Dx()), Height: float64(px.Dy())}
		}
	}
	if p.crop {
		t := p.cropRect.Intersect(e)
		if t.IsEmpty() {
			return Size{}
		}
		e = Rect{Width: math.Round(t.Width), Height: math.Round(t.Height)}
	}
	if p.orientation.IsValid() && p.orientation.SwapsAxes() {
		return Size{Width: e.Height, Height: e.Width}
	}
	return e.Size()
}

// applyGeometry straightens, crops and reorients img. When the model asks
// for none of these, img itself is returned.
func applyGeometry(img *Image, m EditModel, mode InterpolationMode) *Image {
	if m.HasIdentityGeometry() {
		return img
	}
	p := planGeometry(img.Extent(), m)

	if p.rotate {
		img = img.Transform(p.rotation, mode)
		e := img.Extent()
		img = img.Translate(-e.X, -e.Y)
	}
	if p.crop {
		img = img.Crop(p.cropRect)
		if img.IsEmpty() {
			Logger().Debug("imgedit: crop produced no output", "crop", p.cropRect)
			return img
		}
		e := img.Extent()
		img = img.Translate(-e.X, -e.Y)
	}
	if p.orientation != IdentityOrientation {
		if !p.orientation.IsValid() {
			Logger().Warn("imgedit: ignoring invalid orientation", "orientation", int(p.orientation))
			return img
		}
		img = img.Reorient(p.orientation)
	}
	return img
}

// newFilter creates a stage filter. Failures are logged and reported as
// ok=false so the stage can pass its input through.
func (r *Renderer) newFilter(name string, opts filter.Options) (filter.Filter, bool) {
	f, err := r.opts.factory.New(name, opts)
	if err != nil {
		Logger().Warn("imgedit: filter unavailable, stage skipped", "filter", name, "err", err)
		return nil, false
	}
	return f, true
}

func (r *Renderer) autoEnhance(img *Image, m EditModel) *Image {
	if !m.AutoEnhancementEnabled || img.IsEmpty() {
		return img
	}
	filters := r.opts.autoAdjuster.AutoAdjustmentFilters(img.Raster())
	for _, f := range filters {
		img = img.Apply(f)
	}
	Logger().Debug("imgedit: auto enhancement", "filters", len(filters))
	return img
}

func (r *Renderer) focus(img *Image, m EditModel) *Image {
	var name string
	switch m.FocusType {
	case FocusLinear:
		name = filter.NameLinearFocus
	case FocusRadial:
		name = filter.NameRadialFocus
	default:
		return img
	}
	f, ok := r.newFilter(name, filter.Options{
		filter.OptionPoint1: filter.Vec2{X: m.FocusControlPoint1.X, Y: m.FocusControlPoint1.Y},
		filter.OptionPoint2: filter.Vec2{X: m.FocusControlPoint2.X, Y: m.FocusControlPoint2.Y},
		filter.OptionRadius: m.FocusBlurRadius,
	})
	if !ok {
		return img
	}
	return img.Apply(f)
}

// photoEffect applies the model's catalog effect at the model's intensity.
func (r *Renderer) photoEffect(img *Image, m EditModel) *Image {
	id := m.EffectIdentifier
	if id == "" || id == effect.NoneIdentifier || m.EffectIntensity <= 0 {
		return img
	}
	e, ok := r.opts.lookup(id)
	if !ok {
		Logger().Warn("imgedit: unknown effect, stage skipped", "effect", id)
		return img
	}
	f, err := e.NewFilter(r.opts.factory)
	if errors.Is(err, effect.ErrNoFilter) {
		return img
	}
	if err != nil {
		Logger().Warn("imgedit: effect unavailable, stage skipped", "effect", id, "err", err)
		return img
	}
	if m.EffectIntensity < 1 {
		f = filter.NewDissolve(f, m.EffectIntensity)
	}
	return img.Apply(f)
}

func (r *Renderer) colorAdjust(img *Image, m EditModel) *Image {
	if m.HasIdentityColorControls() {
		return img
	}
	f, ok := r.newFilter(filter.NameColorControls, filter.Options{
		filter.OptionBrightness: m.Brightness,
		filter.OptionContrast:   m.Contrast,
		filter.OptionSaturation: m.Saturation,
	})
	if !ok {
		return img
	}
	return img.Apply(f)
}
