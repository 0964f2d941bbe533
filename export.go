package imgedit

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Export errors.
var (
	// ErrRendererClosed is returned when drawing with a closed renderer.
	ErrRendererClosed = errors.New("imgedit: renderer is closed")

	// ErrNilDrawer is returned when DrawInto is given a nil drawer.
	ErrNilDrawer = errors.New("imgedit: nil TextureDrawer")

	// ErrInvalidViewport is returned when the viewport has no area.
	ErrInvalidViewport = errors.New("imgedit: invalid viewport")

	// ErrNoTextureCreator is returned when a drawer cannot create textures.
	ErrNoTextureCreator = errors.New("imgedit: drawer has no TextureCreator")
)

// textureDestroyer is implemented by textures that hold GPU memory.
type textureDestroyer interface {
	Destroy()
}

// textureFormatter is implemented by textures that report their format.
type textureFormatter interface {
	Format() gputypes.TextureFormat
}

// drawTarget is the state kept for the drawer DrawInto last drew into.
type drawTarget struct {
	ctx     *Context
	canvas  *image.RGBA
	texture gpucontext.Texture
}

func (t *drawTarget) destroyTexture() {
	if d, ok := t.texture.(textureDestroyer); ok {
		d.Destroy()
	}
	t.texture = nil
}

// upload copies the canvas into the target texture, creating it on first
// use or when the viewport size changes.
func (t *drawTarget) upload(drawer gpucontext.TextureDrawer) error {
	w, h := t.canvas.Rect.Dx(), t.canvas.Rect.Dy()
	if t.texture != nil && (t.texture.Width() != w || t.texture.Height() != h) {
		t.destroyTexture()
	}

	if t.texture != nil {
		if u, ok := t.texture.(gpucontext.TextureUpdater); ok {
			format := gputypes.TextureFormatRGBA8Unorm
			if f, ok := t.texture.(textureFormatter); ok {
				format = f.Format()
			}
			err := u.UpdateData(pixelData(t.canvas, format))
			if err == nil {
				return nil
			}
			Logger().Warn("imgedit: texture update failed, recreating", "err", err)
		}
		t.destroyTexture()
	}

	creator := drawer.TextureCreator()
	if creator == nil {
		return ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(w, h, pixelData(t.canvas, gputypes.TextureFormatRGBA8Unorm))
	if err != nil {
		return fmt.Errorf("imgedit: create texture: %w", err)
	}
	// image.RGBA holds premultiplied alpha.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}
	t.texture = tex
	return nil
}

// contextFor returns the rasterization context for device, creating it
// when the device differs from the one last used. Device values must be
// comparable, which pointer types always are.
func (r *Renderer) contextFor(device gpucontext.DeviceProvider) *Context {
	ctx, _ := r.contexts.GetOrCreate(device, func() *Context {
		return NewContext(device)
	})
	return ctx
}

// targetFor returns the draw state for drawer. Switching to another
// drawer releases the previous drawer's texture.
func (r *Renderer) targetFor(drawer gpucontext.TextureDrawer) *drawTarget {
	if prev, t, ok := r.targets.Peek(); ok && prev != drawer {
		t.destroyTexture()
	}
	t, _ := r.targets.GetOrCreate(drawer, func() *drawTarget {
		device, _ := drawer.(gpucontext.DeviceProvider)
		return &drawTarget{ctx: NewContext(device)}
	})
	return t
}

// Snapshot renders the output and rasterizes it through the context for
// device (nil selects software rasterization). The result does not share
// memory with the renderer. It is nil when the output is empty.
//
// The pixels do not depend on device: it selects the Context whose Info
// describes the target, and the bytes are RGBA whatever the surface
// format. DrawInto is the path that converts to a texture's format.
//
// Snapshot panics if the base image or the edit model is not set.
func (r *Renderer) Snapshot(device gpucontext.DeviceProvider) *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.outputLocked()
	return r.contextFor(device).Rasterize(out)
}

// ExportSnapshot runs Snapshot on the renderer's export queue and passes
// the result to completion. Exports run one at a time in the order they
// were requested. completion is called exactly once, from the queue's
// goroutine, with nil when the output is empty or the export failed.
// completion may call Close; exports still queued then run after Close
// returns.
func (r *Renderer) ExportSnapshot(device gpucontext.DeviceProvider, completion func(*image.RGBA)) {
	if completion == nil {
		completion = func(*image.RGBA) {}
	}
	ok := r.exports.Submit(func() {
		var out *image.RGBA
		defer func() {
			if p := recover(); p != nil {
				Logger().Warn("imgedit: snapshot export failed", "panic", p)
				out = nil
			}
			r.completing.Add(1)
			defer r.completing.Add(-1)
			completion(out)
		}()
		out = r.Snapshot(device)
	})
	if !ok {
		Logger().Warn("imgedit: snapshot export after Close")
		completion(nil)
	}
}

// DrawInto clears a viewport-sized canvas, draws the output scaled into
// dst and presents the canvas through drawer at (0,0). The texture is
// kept and updated in place while the viewport size stays the same.
//
// DrawInto must not be called concurrently for the same drawer.
func (r *Renderer) DrawInto(drawer gpucontext.TextureDrawer, dst image.Rectangle, viewportWidth, viewportHeight int) error {
	if r.closed.Load() {
		return ErrRendererClosed
	}
	if drawer == nil {
		return ErrNilDrawer
	}
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, viewportWidth, viewportHeight)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Close may have run while we waited for the lock.
	if r.closed.Load() {
		return ErrRendererClosed
	}

	t := r.targetFor(drawer)
	viewport := image.Rect(0, 0, viewportWidth, viewportHeight)
	if t.canvas == nil || t.canvas.Rect != viewport {
		t.canvas = image.NewRGBA(viewport)
	}
	t.ctx.DrawScaled(t.canvas, r.opts.clearColor, r.outputLocked(), dst, r.opts.interpolation)

	if err := t.upload(drawer); err != nil {
		return err
	}
	return drawer.DrawTexture(t.texture, 0, 0)
}
