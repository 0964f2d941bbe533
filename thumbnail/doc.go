// Package thumbnail renders a preview of every catalog effect applied to
// one small copy of the photo being edited.
//
// The base image is scaled once to fill the requested thumbnail size,
// cropping the overflow around the center. Each effect's filter then runs
// on that shared base thumbnail, and results are delivered one at a time
// as they finish:
//
//	tr := thumbnail.NewRenderer(photo)
//	defer tr.Close()
//	tr.Generate(effect.All(), image.Pt(96, 96), func(thumb *image.RGBA, i int) {
//	    cells[i].SetImage(thumb)
//	})
//
// All work runs on one private goroutine in request order. The callback
// is called from that goroutine, once per effect, in catalog order.
// Thumbnails passed to it are shared with the renderer's cache and must
// not be modified.
package thumbnail
