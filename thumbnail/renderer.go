package thumbnail

import (
	"image"
	"sync/atomic"
	"time"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/nfnt/resize"

	"github.com/gogpu/imgedit/effect"
	"github.com/gogpu/imgedit/internal/cache"
	"github.com/gogpu/imgedit/internal/logging"
	"github.com/gogpu/imgedit/internal/queue"
)

// thumbKey identifies a finished thumbnail.
type thumbKey struct {
	size image.Point
	id   string
}

// Renderer produces effect thumbnails for one base image.
//
// Renderer is safe for concurrent use. Generate calls are queued and run
// one after another.
type Renderer struct {
	base *image.RGBA
	opts options

	baseThumb cache.Slot[image.Point, *image.RGBA]
	thumbs    *cache.LRU[thumbKey, *image.RGBA]
	rendered  atomic.Int64

	work *queue.Serial
}

// NewRenderer creates a thumbnail renderer for base. Call Close when done.
func NewRenderer(base image.Image, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Renderer{
		opts: o,
		work: queue.NewSerial("thumbnail"),
	}
	if base != nil && !base.Bounds().Empty() {
		r.base = clone.AsRGBA(base)
	}
	if o.cacheSize > 0 {
		r.thumbs = cache.NewLRU[thumbKey, *image.RGBA](o.cacheSize)
	}
	return r
}

// Generate queues rendering of one thumbnail of the given size per
// effect and returns immediately. single is called once per entry of
// effects, in order, with the thumbnail and the entry's index. Entries
// without a filter, or whose filter cannot be built, get the plain base
// thumbnail. The thumbnail is nil only when the base image is empty or
// size has no area.
//
// After Close, Generate does nothing.
func (r *Renderer) Generate(effects []*effect.Effect, size image.Point, single func(thumb *image.RGBA, index int)) {
	effects = append([]*effect.Effect(nil), effects...)
	if !r.work.Submit(func() { r.generate(effects, size, single) }) {
		logging.Logger().Warn("thumbnail: Generate after Close", "effects", len(effects))
	}
}

func (r *Renderer) generate(effects []*effect.Effect, size image.Point, single func(*image.RGBA, int)) {
	start := time.Now()
	base := r.baseThumbnail(size)
	for i, e := range effects {
		single(r.render(e, base, size), i)
	}
	logging.Logger().Debug("thumbnail: batch complete",
		"effects", len(effects),
		"size", size,
		"elapsed", time.Since(start))
}

// baseThumbnail returns the base image scaled to fill size, reusing the
// previous one while the size stays the same.
func (r *Renderer) baseThumbnail(size image.Point) *image.RGBA {
	if r.base == nil || size.X <= 0 || size.Y <= 0 {
		return nil
	}
	thumb, cached := r.baseThumb.GetOrCreate(size, func() *image.RGBA {
		return aspectFill(r.base, size, r.opts.resampler)
	})
	if !cached && r.thumbs != nil {
		// Thumbnails of the old size are not wanted anymore.
		r.thumbs.Clear()
	}
	return thumb
}

// render applies e to base. Cached results are reused.
func (r *Renderer) render(e *effect.Effect, base *image.RGBA, size image.Point) (out *image.RGBA) {
	if base == nil || e == nil || !e.HasFilter() {
		return base
	}
	key := thumbKey{size: size, id: e.Identifier()}
	if r.thumbs != nil {
		if t, ok := r.thumbs.Get(key); ok {
			return t
		}
	}

	defer func() {
		if p := recover(); p != nil {
			logging.Logger().Warn("thumbnail: effect failed", "effect", e.Identifier(), "panic", p)
			out = base
		}
	}()

	f, err := e.NewFilter(r.opts.factory)
	if err != nil {
		logging.Logger().Warn("thumbnail: effect unavailable", "effect", e.Identifier(), "err", err)
		return base
	}
	f.SetInput(base)
	out = f.Output()
	f.SetInput(nil)
	if out == nil {
		return base
	}
	r.rendered.Add(1)
	if r.thumbs != nil {
		r.thumbs.Set(key, out)
	}
	return out
}

// Rendered returns how many filtered thumbnails have been computed.
func (r *Renderer) Rendered() int64 {
	return r.rendered.Load()
}

// Wait blocks until every queued Generate call has delivered its results.
func (r *Renderer) Wait() {
	r.work.Wait()
}

// Close finishes queued work and stops the renderer. It is safe to call
// more than once.
func (r *Renderer) Close() {
	r.work.Close()
}

// aspectFill scales src uniformly until it covers size and crops the
// overflow evenly from both sides.
func aspectFill(src *image.RGBA, size image.Point, interp resize.InterpolationFunction) *image.RGBA {
	sw, sh := float64(src.Rect.Dx()), float64(src.Rect.Dy())
	scale := max(float64(size.X)/sw, float64(size.Y)/sh)
	w := max(int(sw*scale+0.5), size.X)
	h := max(int(sh*scale+0.5), size.Y)

	scaled := resize.Resize(uint(w), uint(h), src, interp)
	b := scaled.Bounds()
	x0 := b.Min.X + (w-size.X)/2
	y0 := b.Min.Y + (h-size.Y)/2
	out := transform.Crop(scaled, image.Rect(x0, y0, x0+size.X, y0+size.Y))
	out.Rect = out.Rect.Sub(out.Rect.Min)
	return out
}
