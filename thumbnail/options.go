package thumbnail

import (
	"github.com/nfnt/resize"

	"github.com/gogpu/imgedit/filter"
)

// DefaultCacheSize is the number of finished thumbnails kept by default.
const DefaultCacheSize = 128

// Option configures a Renderer during creation.
type Option func(*options)

type options struct {
	factory   filter.Factory
	resampler resize.InterpolationFunction
	cacheSize int
}

func defaultOptions() options {
	return options{
		factory:   filter.Default,
		resampler: resize.Lanczos3,
		cacheSize: DefaultCacheSize,
	}
}

// WithFilterFactory sets the factory effect filters are created with.
// A nil factory is ignored.
func WithFilterFactory(f filter.Factory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithResampler sets the kernel used to scale the base thumbnail.
// Default is resize.Lanczos3.
func WithResampler(interp resize.InterpolationFunction) Option {
	return func(o *options) {
		o.resampler = interp
	}
}

// WithCacheSize sets how many finished thumbnails are kept for reuse by
// later Generate calls. Zero or less disables the cache.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}
