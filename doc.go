// Package imgedit provides a non-destructive photo edit pipeline for Go.
//
// # Overview
//
// An edit never modifies the base image. Instead an EditModel records
// every parameter (crop, straighten angle, orientation, effect, color
// controls, focus) and a Renderer derives the edited image from the base
// image and the model on demand. The last result is memoized, so asking
// for the output again without changing anything is free.
//
// # Quick Start
//
//	import "github.com/gogpu/imgedit"
//
//	f, _ := os.Open("photo.jpg")
//	base, orientation, err := imgedit.DecodeImage(f)
//
//	m := imgedit.NewEditModel()
//	m.AppliedOrientation = orientation
//	m.NormalizedCropRect = imgedit.R(0.1, 0.1, 0.8, 0.8)
//	m.EffectIdentifier = "K1"
//
//	r := imgedit.NewRenderer()
//	defer r.Close()
//	r.SetBaseImage(base)
//	r.SetEditModel(m)
//
//	out := r.Snapshot(nil) // *image.RGBA
//
// # Pipeline
//
// The stages run in a fixed order, each gated by a RenderMode bit:
//   - auto enhancement (levels and vibrance from the histogram)
//   - geometry: straighten, crop, reorient
//   - focus (linear or radial tilt-shift)
//   - photo effect from the effect catalog, blended by intensity
//   - color controls: brightness, contrast, saturation
//
// A stage whose filter cannot be created passes its input through and
// logs a warning; the rest of the pipeline still runs.
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// Normalized crop rectangles and focus points are fractions of the image
// size in the same orientation.
//
// # Export
//
// Renderer.Snapshot rasterizes synchronously, Renderer.ExportSnapshot does
// the same on a private serial queue, and Renderer.DrawInto presents the
// output through a gpucontext.TextureDrawer.
//
// # Logging
//
// imgedit is silent by default. Use SetLogger to route its log records to
// any slog handler.
package imgedit
