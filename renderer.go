package imgedit

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/imgedit/internal/cache"
	"github.com/gogpu/imgedit/internal/queue"
)

// renderKey identifies one render: the base image by identity, the edit
// model and render mode by value.
type renderKey struct {
	base  *Image
	model EditModel
	mode  RenderMode
}

// Renderer turns a base image and an edit model into an output image.
//
// The last output is memoized together with the inputs it was rendered
// from. Setters drop it as soon as an input changes, and OutputImage
// recomputes only when nothing valid is cached.
//
// A Renderer serializes its own calls, but the images it returns are
// shared and must be treated as read-only.
type Renderer struct {
	opts rendererOptions

	mu       sync.Mutex
	base     *Image
	model    EditModel
	hasModel bool
	mode     RenderMode

	output     cache.Slot[renderKey, *Image]
	recomputes atomic.Int64

	// Rasterization contexts, one slot per export path.
	contexts cache.Slot[gpucontext.DeviceProvider, *Context]
	targets  cache.Slot[gpucontext.TextureDrawer, *drawTarget]

	exports *queue.Serial
	closed  atomic.Bool
	// completing counts export completions running on the export queue.
	completing atomic.Int32
}

// NewRenderer creates a renderer. Call SetBaseImage and SetEditModel
// before requesting output, and Close when done.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		opts:    o,
		mode:    o.mode,
		exports: queue.NewSerial("export"),
	}
}

// SetBaseImage sets the unedited input image.
func (r *Renderer) SetBaseImage(img *Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img == r.base {
		return
	}
	r.base = img
	r.invalidate("base image")
}

// BaseImage returns the input image, or nil.
func (r *Renderer) BaseImage() *Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.base
}

// SetEditModel sets the edit parameters. A model equal to the current one
// keeps the cached output.
func (r *Renderer) SetEditModel(m EditModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasModel && m == r.model {
		return
	}
	r.model, r.hasModel = m, true
	r.invalidate("edit model")
}

// EditModel returns the edit parameters and whether they were set.
func (r *Renderer) EditModel() (EditModel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model, r.hasModel
}

// SetRenderMode selects the stages that run.
func (r *Renderer) SetRenderMode(mode RenderMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if mode == r.mode {
		return
	}
	r.mode = mode
	r.invalidate("render mode")
}

// RenderMode returns the stages that run.
func (r *Renderer) RenderMode() RenderMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// Follow renders whatever m holds: the current snapshot is applied now and
// every later change as it is broadcast. Call stop to detach.
func (r *Renderer) Follow(m *MutableModel) (stop func()) {
	r.SetEditModel(m.Snapshot())
	return m.Observe(r.SetEditModel)
}

// invalidate drops the cached output. Caller must hold r.mu.
func (r *Renderer) invalidate(reason string) {
	r.output.Reset()
	Logger().Debug("render cache invalidated", "reason", reason)
}

// RecomputeCount returns how many times the stages have run.
func (r *Renderer) RecomputeCount() int64 {
	return r.recomputes.Load()
}

// OutputImage returns the edited image, rendering it if the cached output
// is missing or stale. The result may be empty, for instance when the
// crop misses the image.
//
// OutputImage panics if the base image or the edit model is not set.
func (r *Renderer) OutputImage() *Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outputLocked()
}

// outputLocked implements OutputImage. Caller must hold r.mu.
func (r *Renderer) outputLocked() *Image {
	r.mustHaveInputs()
	key := renderKey{base: r.base, model: r.model, mode: r.mode}
	if img, ok := r.output.Get(key); ok {
		Logger().Debug("render cache hit")
		return img
	}
	img := r.render(key)
	r.output.Set(key, img)
	return img
}

func (r *Renderer) mustHaveInputs() {
	if r.base == nil {
		panic("imgedit: base image must be set before rendering")
	}
	if !r.hasModel {
		panic("imgedit: edit model must be set before rendering")
	}
}

// render runs every enabled stage in order.
func (r *Renderer) render(key renderKey) *Image {
	r.recomputes.Add(1)
	start := time.Now()
	m := key.model

	img := key.base
	if key.mode.Has(RenderModeAutoEnhancement) {
		img = r.autoEnhance(img, m)
	}
	if key.mode.Has(RenderModeOrientationCrop) {
		img = applyGeometry(img, m, r.opts.interpolation)
	}
	if key.mode.Has(RenderModeFocus) {
		img = r.focus(img, m)
	}
	if key.mode.Has(RenderModePhotoEffect) {
		img = r.photoEffect(img, m)
	}
	if key.mode.Has(RenderModeColorAdjustments) {
		img = r.colorAdjust(img, m)
	}

	Logger().Debug("render complete",
		"mode", key.mode,
		"extent", img.Extent(),
		"elapsed", time.Since(start))
	return img
}

// OutputImageSize returns the size OutputImage would have, derived from
// the geometry alone without rendering.
//
// OutputImageSize panics if the base image or the edit model is not set.
func (r *Renderer) OutputImageSize() Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustHaveInputs()

	extent := r.base.Extent()
	if !r.mode.Has(RenderModeOrientationCrop) || r.model.HasIdentityGeometry() {
		return extent.Size()
	}
	return planGeometry(extent, r.model).outputSize(extent)
}

// Close waits for queued exports, stops the export queue and releases
// cached textures. Close is safe to call multiple times. Called from an
// export completion, Close does not wait for the export queue to drain.
func (r *Renderer) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}
	if r.completing.Load() > 0 {
		// Called from a completion: the export worker cannot wait for itself.
		r.exports.Stop()
	} else {
		r.exports.Close()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, t, ok := r.targets.Peek(); ok {
		t.destroyTexture()
	}
	r.targets.Reset()
	r.contexts.Reset()
	r.output.Reset()
}
