package imgedit

import (
	"image/color"

	"github.com/gogpu/imgedit/effect"
	"github.com/gogpu/imgedit/filter"
)

// RendererOption configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Geometry and color only, no effects
//	r := imgedit.NewRenderer(imgedit.WithRenderMode(
//	    imgedit.RenderModeOrientationCrop | imgedit.RenderModeColorAdjustments))
//
//	// Custom filter backend (dependency injection)
//	r := imgedit.NewRenderer(imgedit.WithFilterFactory(myFactory))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	mode          RenderMode
	autoAdjuster  filter.AutoAdjuster
	factory       filter.Factory
	lookup        func(id string) (*effect.Effect, bool)
	interpolation InterpolationMode
	clearColor    color.RGBA
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		mode:          RenderModeAll,
		autoAdjuster:  filter.NewHistogramAutoAdjuster(),
		factory:       filter.Default,
		lookup:        effect.WithIdentifier,
		interpolation: InterpBilinear,
		clearColor:    color.RGBA{A: 0xff},
	}
}

// WithRenderMode sets the initial render mode. The default is RenderModeAll.
func WithRenderMode(mode RenderMode) RendererOption {
	return func(o *rendererOptions) {
		o.mode = mode
	}
}

// WithAutoAdjuster replaces the detector used by the auto-enhancement stage.
func WithAutoAdjuster(a filter.AutoAdjuster) RendererOption {
	return func(o *rendererOptions) {
		if a != nil {
			o.autoAdjuster = a
		}
	}
}

// WithFilterFactory sets the factory every stage creates its filters with.
//
// Example:
//
//	// Count filter creation
//	counting := filter.FactoryFunc(func(name string, opts filter.Options) (filter.Filter, error) {
//	    created[name]++
//	    return filter.New(name, opts)
//	})
//	r := imgedit.NewRenderer(imgedit.WithFilterFactory(counting))
func WithFilterFactory(f filter.Factory) RendererOption {
	return func(o *rendererOptions) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithCatalog makes the effect stage resolve identifiers against entries
// instead of the built-in catalog.
func WithCatalog(entries []*effect.Effect) RendererOption {
	entries = append([]*effect.Effect(nil), entries...)
	return func(o *rendererOptions) {
		o.lookup = func(id string) (*effect.Effect, bool) {
			for _, e := range entries {
				if e.Identifier() == id {
					return e, true
				}
			}
			return nil, false
		}
	}
}

// WithInterpolation sets how the straighten rotation and the draw path
// sample pixels. Default is InterpBilinear.
func WithInterpolation(mode InterpolationMode) RendererOption {
	return func(o *rendererOptions) {
		o.interpolation = mode
	}
}

// WithClearColor sets the color DrawInto clears the viewport to.
// Default is opaque black.
func WithClearColor(c color.RGBA) RendererOption {
	return func(o *rendererOptions) {
		o.clearColor = c
	}
}
