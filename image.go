package imgedit

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // registered for DecodeImage
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp" // registered for DecodeImage
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/imgedit/filter"
)

// InterpolationMode selects how pixels are sampled when an image is
// rotated or scaled.
type InterpolationMode int

const (
	// InterpBilinear blends the 4 nearest pixels. It is the default.
	InterpBilinear InterpolationMode = iota
	// InterpNearest selects the closest pixel (no interpolation).
	InterpNearest
	// InterpBicubic uses a Catmull-Rom kernel over a 4x4 neighborhood.
	InterpBicubic
)

func (m InterpolationMode) interpolator() draw.Interpolator {
	switch m {
	case InterpNearest:
		return draw.NearestNeighbor
	case InterpBicubic:
		return draw.CatmullRom
	default:
		return draw.BiLinear
	}
}

// ErrDecode is returned by DecodeImage when the data is not a supported image.
var ErrDecode = errors.New("imgedit: cannot decode image")

// Image is an immutable raster positioned in working space.
//
// The pixels live in an origin-anchored *image.RGBA whose top-left corner
// sits at origin. The extent is the part of working space the image
// covers; after a rotation it is the exact bounding box and may be
// fractional, while the raster covers it to the next whole pixel.
//
// Operations return new images and never modify their receiver. Pixel
// data may be shared between images.
type Image struct {
	raster *image.RGBA
	origin Point
	extent Rect
}

// emptyImage is the explicit "no output" image.
func emptyImage() *Image {
	return &Image{raster: image.NewRGBA(image.Rectangle{})}
}

// NewImage copies src into a new image whose extent starts at (0,0).
// A nil src gives an empty image.
func NewImage(src image.Image) *Image {
	if src == nil || src.Bounds().Empty() {
		return emptyImage()
	}
	raster := rebaseRGBA(clone.AsRGBA(src))
	return &Image{
		raster: raster,
		extent: RectFromImage(raster.Rect),
	}
}

// DecodeImage decodes an image and reads the pixel orientation from its
// EXIF data. The orientation defaults to Normal when the data carries no
// usable tag.
func DecodeImage(r io.ReadSeeker) (*Image, Orientation, error) {
	orientation := readOrientation(r)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, Normal, fmt.Errorf("imgedit: rewind: %w", err)
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, Normal, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	Logger().Debug("imgedit: decoded image", "format", format, "bounds", img.Bounds(), "orientation", orientation)
	return NewImage(img), orientation, nil
}

func readOrientation(r io.ReadSeeker) Orientation {
	x, err := exif.Decode(r)
	if err != nil {
		return Normal
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return Normal
	}
	v, err := tag.Int(0)
	if err != nil || !Orientation(v).IsValid() {
		return Normal
	}
	return Orientation(v)
}

// Extent returns the area of working space the image covers.
func (img *Image) Extent() Rect {
	return img.extent
}

// Size returns the size of the extent.
func (img *Image) Size() Size {
	return img.extent.Size()
}

// IsEmpty reports whether the image covers no area.
func (img *Image) IsEmpty() bool {
	return img == nil || img.extent.IsEmpty()
}

// pixelBounds returns the raster pixels covering the extent.
func (img *Image) pixelBounds() image.Rectangle {
	return img.extent.Offset(-img.origin.X, -img.origin.Y).Integral().Intersect(img.raster.Rect)
}

// Raster returns the pixels covering the extent, anchored at (0,0). The
// result shares memory with the image and must be treated as read-only.
func (img *Image) Raster() *image.RGBA {
	if img.IsEmpty() {
		return image.NewRGBA(image.Rectangle{})
	}
	return rebaseRGBA(img.raster.SubImage(img.pixelBounds()).(*image.RGBA))
}

// Translate moves the image by (dx, dy) without touching pixels.
func (img *Image) Translate(dx, dy float64) *Image {
	return &Image{
		raster: img.raster,
		origin: img.origin.Add(Point{X: dx, Y: dy}),
		extent: img.extent.Offset(dx, dy),
	}
}

// Transform maps the image through m. Pure translations only move the
// image; any other matrix resamples it with mode.
func (img *Image) Transform(m Affine, mode InterpolationMode) *Image {
	if m.IsTranslation() {
		return img.Translate(m.TX, m.TY)
	}
	if img.IsEmpty() {
		return emptyImage()
	}
	extent := m.TransformRect(img.extent)
	bbox := extent.Integral()
	if bbox.Empty() {
		return emptyImage()
	}

	// raster pixel -> working space -> m -> destination raster pixel
	s2d := TranslateAffine(img.origin.X, img.origin.Y).
		Concat(m).
		Concat(TranslateAffine(-float64(bbox.Min.X), -float64(bbox.Min.Y)))

	dst := image.NewRGBA(image.Rect(0, 0, bbox.Dx(), bbox.Dy()))
	mode.interpolator().Transform(dst, s2d.aff3(), img.raster, img.raster.Rect, draw.Src, nil)

	return &Image{
		raster: dst,
		origin: Point{X: float64(bbox.Min.X), Y: float64(bbox.Min.Y)},
		extent: extent,
	}
}

// Crop restricts the image to r, snapped to whole pixels. The result
// shares pixels with img. A crop that misses the image gives an empty
// image.
func (img *Image) Crop(r Rect) *Image {
	target := r.Intersect(img.extent)
	if target.IsEmpty() {
		return emptyImage()
	}
	x0 := int(math.Round(target.X - img.origin.X))
	y0 := int(math.Round(target.Y - img.origin.Y))
	px := image.Rect(x0, y0, x0+int(math.Round(target.Width)), y0+int(math.Round(target.Height)))
	px = px.Intersect(img.raster.Rect)
	if px.Empty() {
		return emptyImage()
	}

	origin := img.origin.Add(Point{X: float64(px.Min.X), Y: float64(px.Min.Y)})
	return &Image{
		raster: rebaseRGBA(img.raster.SubImage(px).(*image.RGBA)),
		origin: origin,
		extent: Rect{X: origin.X, Y: origin.Y, Width: float64(px.Dx()), Height: float64(px.Dy())},
	}
}

// Reorient returns the image with its pixel grid reoriented by o. The
// result keeps the extent's top-left corner.
func (img *Image) Reorient(o Orientation) *Image {
	o.mustBeValid()
	if o == Normal || img.IsEmpty() {
		return img
	}
	src := img.Raster()
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dw, dh := w, h
	if o.SwapsAxes() {
		dw, dh = h, w
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < dh; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < dw; x++ {
			sx, sy := o.sourcePixel(x, y, w, h)
			si := sy*src.Stride + sx*4
			copy(row[x*4:x*4+4], src.Pix[si:si+4])
		}
	}

	origin := img.extent.Origin()
	return &Image{
		raster: dst,
		origin: origin,
		extent: Rect{X: origin.X, Y: origin.Y, Width: float64(dw), Height: float64(dh)},
	}
}

// Apply runs f on the image. The filter's input is released afterwards.
// When f produces nothing the image is returned unchanged.
func (img *Image) Apply(f filter.Filter) *Image {
	if f == nil || img.IsEmpty() {
		return img
	}
	px := img.pixelBounds()
	f.SetInput(img.Raster())
	out := f.Output()
	f.SetInput(nil)
	if out == nil || out.Rect.Empty() {
		Logger().Warn("imgedit: filter produced no output", "filter", f.Name())
		return img
	}

	origin := img.origin.Add(Point{X: float64(px.Min.X), Y: float64(px.Min.Y)})
	extent := img.extent
	if out.Rect.Size() != px.Size() {
		extent = Rect{X: origin.X, Y: origin.Y, Width: float64(out.Rect.Dx()), Height: float64(out.Rect.Dy())}
	}
	return &Image{raster: rebaseRGBA(out), origin: origin, extent: extent}
}

// rebaseRGBA returns img with its bounds moved to (0,0) without copying.
func rebaseRGBA(img *image.RGBA) *image.RGBA {
	if img.Rect.Min == (image.Point{}) {
		return img
	}
	return &image.RGBA{
		Pix:    img.Pix,
		Stride: img.Stride,
		Rect:   image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()),
	}
}
