package imgedit

import (
	"image"
	"image/color"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// ContextInfo describes the target a Context rasterizes for.
type ContextInfo struct {
	// Software is true for contexts created without a device.
	Software bool
	// AdapterName is the name reported by the device adapter.
	AdapterName string
	// AdapterType is the adapter kind reported by the device.
	AdapterType gpucontext.AdapterType
	// Format is the surface format of the device.
	Format gputypes.TextureFormat
}

// Context rasterizes images into pixel buffers for one target. A nil
// device gives a software context; a device context records the adapter
// and surface format it was created for.
//
// Context is NOT safe for concurrent use.
type Context struct {
	device gpucontext.DeviceProvider
	info   ContextInfo
}

// NewContext creates a rasterization context for device.
func NewContext(device gpucontext.DeviceProvider) *Context {
	if device == nil {
		Logger().Debug("imgedit: software context created")
		return &Context{info: ContextInfo{Software: true, AdapterName: "software", Format: gputypes.TextureFormatRGBA8Unorm}}
	}
	ai := device.AdapterInfo()
	c := &Context{
		device: device,
		info: ContextInfo{
			AdapterName: ai.Name,
			AdapterType: ai.Type,
			Format:      device.SurfaceFormat(),
		},
	}
	Logger().Info("imgedit: context created", "adapter", ai.Name, "type", ai.Type, "format", c.info.Format)
	return c
}

// Info returns what the context targets.
func (c *Context) Info() ContextInfo {
	return c.info
}

// Device returns the device the context was created for, or nil.
func (c *Context) Device() gpucontext.DeviceProvider {
	return c.device
}

// Rasterize renders img into a new origin-anchored buffer that does not
// share memory with img. It returns nil for an empty image.
//
// Pixels are always computed on the CPU, so every context produces the
// same RGBA bytes. A device context only differs in the Info it reports.
func (c *Context) Rasterize(img *Image) *image.RGBA {
	if img.IsEmpty() {
		return nil
	}
	src := img.Raster()
	dst := image.NewRGBA(src.Rect)
	for y := 0; y < src.Rect.Dy(); y++ {
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[y*src.Stride:])
	}
	return dst
}

// DrawScaled clears dst to clear and draws img scaled to fill r.
func (c *Context) DrawScaled(dst *image.RGBA, clear color.RGBA, img *Image, r image.Rectangle, mode InterpolationMode) {
	draw.Draw(dst, dst.Rect, image.NewUniform(clear), image.Point{}, draw.Src)
	if img.IsEmpty() || r.Empty() {
		return
	}
	src := img.Raster()
	mode.interpolator().Scale(dst, r, src, src.Rect, draw.Over, nil)
}

// pixelData returns the bytes of img tightly packed in the channel order
// of format. RGBA data shares img's memory when it is already packed.
func pixelData(img *image.RGBA, format gputypes.TextureFormat) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	packed := img.Pix
	if img.Stride != w*4 || len(img.Pix) != w*h*4 {
		packed = make([]byte, w*h*4)
		for y := 0; y < h; y++ {
			copy(packed[y*w*4:(y+1)*w*4], img.Pix[y*img.Stride:])
		}
	}
	switch format {
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
	default:
		return packed
	}
	out := make([]byte, len(packed))
	for i := 0; i+3 < len(packed); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = packed[i+2], packed[i+1], packed[i], packed[i+3]
	}
	return out
}
