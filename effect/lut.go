package effect

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // LUT resources may be JPEG
	_ "image/png"
	"io/fs"
	"path"
	"sync/atomic"

	_ "golang.org/x/image/bmp" // LUT resources may be BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // LUT resources may be TIFF
	_ "golang.org/x/image/webp" // LUT resources may be WebP
)

const (
	lutTile    = CubeDimension // cell edge in pixels
	lutColumns = 8             // cells per row
	lutSize    = lutTile * lutColumns
)

var (
	// ErrLUTNotFound is returned when a source has no resource of that name.
	ErrLUTNotFound = errors.New("effect: LUT resource not found")

	// ErrInvalidLUT is returned when a resource is not a 512×512 cube image.
	ErrInvalidLUT = errors.New("effect: invalid LUT image")
)

// DecodeLUT converts a 512×512 LUT image into a dense 64×64×64 RGBA table
// with red varying fastest.
func DecodeLUT(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() != lutSize || b.Dy() != lutSize {
		return nil, fmt.Errorf("%w: %dx%d, want %dx%d", ErrInvalidLUT, b.Dx(), b.Dy(), lutSize, lutSize)
	}
	src := image.NewNRGBA(image.Rect(0, 0, lutSize, lutSize))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)

	n := CubeDimension
	data := make([]byte, n*n*n*4)
	for bl := 0; bl < n; bl++ {
		ox, oy := (bl%lutColumns)*lutTile, (bl/lutColumns)*lutTile
		for g := 0; g < n; g++ {
			row := src.PixOffset(ox, oy+g)
			out := ((bl*n + g) * n) * 4
			copy(data[out:out+n*4], src.Pix[row:row+n*4])
		}
	}
	return data, nil
}

// RenderLUT draws the 512×512 LUT image of the color mapping fn, which
// receives and returns channels in [0,1].
func RenderLUT(fn func(r, g, b float64) (float64, float64, float64)) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, lutSize, lutSize))
	last := float64(CubeDimension - 1)
	for bl := 0; bl < CubeDimension; bl++ {
		ox, oy := (bl%lutColumns)*lutTile, (bl/lutColumns)*lutTile
		for g := 0; g < CubeDimension; g++ {
			for r := 0; r < CubeDimension; r++ {
				cr, cg, cb := fn(float64(r)/last, float64(g)/last, float64(bl)/last)
				img.SetNRGBA(ox+r, oy+g, color.NRGBA{R: unit8(cr), G: unit8(cg), B: unit8(cb), A: 255})
			}
		}
	}
	return img
}

// IdentityLUT returns the LUT image that maps every color to itself.
func IdentityLUT() *image.NRGBA {
	return RenderLUT(func(r, g, b float64) (float64, float64, float64) { return r, g, b })
}

func unit8(v float64) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

// Source opens LUT resources by name.
type Source interface {
	OpenLUT(resource string) (image.Image, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(resource string) (image.Image, error)

// OpenLUT calls f(resource).
func (f SourceFunc) OpenLUT(resource string) (image.Image, error) { return f(resource) }

var source atomic.Pointer[Source]

// SetSource selects where LUT resources are read from. Pass nil to restore
// the built-in source. Entries that already decoded their LUT keep it.
func SetSource(s Source) {
	if s == nil {
		s = BuiltinSource()
	}
	source.Store(&s)
}

func currentSource() Source {
	if s := source.Load(); s != nil {
		return *s
	}
	return BuiltinSource()
}

// lutExtensions are tried in order when a resource name has no extension.
var lutExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp"}

// FSSource reads LUT images from fsys. A resource name without an
// extension matches the first of name.png, name.jpg, ... that exists.
func FSSource(fsys fs.FS) Source {
	return SourceFunc(func(resource string) (image.Image, error) {
		candidates := []string{resource}
		if path.Ext(resource) == "" {
			candidates = candidates[:0]
			for _, ext := range lutExtensions {
				candidates = append(candidates, resource+ext)
			}
		}
		for _, name := range candidates {
			f, err := fsys.Open(name)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			img, _, err := image.Decode(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLUT, name, err)
			}
			return img, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrLUTNotFound, resource)
	})
}

// BuiltinSource synthesizes the LUT of every look in the catalog.
func BuiltinSource() Source {
	return SourceFunc(func(resource string) (image.Image, error) {
		l, ok := looks[resource]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLUTNotFound, resource)
		}
		return RenderLUT(l.apply), nil
	})
}

// ChainSources returns a Source that tries each source in order and
// returns the first resource found.
func ChainSources(sources ...Source) Source {
	return SourceFunc(func(resource string) (image.Image, error) {
		for _, s := range sources {
			img, err := s.OpenLUT(resource)
			if err == nil {
				return img, nil
			}
			if !errors.Is(err, ErrLUTNotFound) {
				return nil, err
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrLUTNotFound, resource)
	})
}
