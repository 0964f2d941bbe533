// Package filter provides the named image filters used by the imgedit
// render pipeline and the thumbnail renderer.
//
// Filters follow a set-input / read-output protocol so a chain can drop
// each intermediate image as soon as the next filter has consumed it:
//
//	f, err := filter.New(filter.NameColorControls, filter.Options{
//	    filter.OptionContrast: 1.2,
//	})
//	f.SetInput(img)
//	out := f.Output()
//	f.SetInput(nil)
//
// Every filter is created by name through a Factory. The package-level
// registry (Register, New) is the default factory and is pre-populated
// with:
//   - ColorCube: 3D lookup table with trilinear interpolation
//   - ColorControls: brightness, contrast, saturation
//   - GaussianBlur, LinearFocus, RadialFocus: blur and tilt-shift
//   - procedural photo effects (mono, noir, tonal, sepia, chrome, fade,
//     instant, process, transfer, invert, sharpen)
//   - AutoLevels and AutoVibrance, produced by HistogramAutoAdjuster
//
// Outputs always start at (0,0) regardless of the input bounds.
package filter
