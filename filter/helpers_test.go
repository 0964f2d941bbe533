package filter

import (
	"image"
	"image/color"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// stripes returns alternating black and white one-pixel columns.
func stripes(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if x%2 == 0 {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// cube builds a dimension³ table by mapping each lattice color through fn.
func cube(n int, fn func(r, g, b float64) (float64, float64, float64)) []byte {
	data := make([]byte, n*n*n*4)
	for b := 0; b < n; b++ {
		for g := 0; g < n; g++ {
			for r := 0; r < n; r++ {
				i := ((b*n+g)*n + r) * 4
				last := float64(n - 1)
				cr, cg, cb := fn(float64(r)/last, float64(g)/last, float64(b)/last)
				data[i], data[i+1], data[i+2], data[i+3] = to8(cr), to8(cg), to8(cb), 255
			}
		}
	}
	return data
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
