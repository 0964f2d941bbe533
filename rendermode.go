package imgedit

import "strings"

// RenderMode selects which pipeline stages run for a render request.
type RenderMode uint

const (
	// RenderModeAutoEnhancement runs the auto-adjustment filter chain when
	// the edit model enables it.
	RenderModeAutoEnhancement RenderMode = 1 << iota

	// RenderModeOrientationCrop runs the straighten, crop and orientation stage.
	RenderModeOrientationCrop

	// RenderModeFocus runs the linear or radial focus blur.
	RenderModeFocus

	// RenderModePhotoEffect runs the catalog effect at the model's intensity.
	RenderModePhotoEffect

	// RenderModeColorAdjustments runs brightness, contrast and saturation.
	RenderModeColorAdjustments

	// RenderModeOverlays is reserved for sticker and text overlays. No
	// stage reads it; it keeps the bit layout of saved modes stable.
	RenderModeOverlays
)

const (
	// RenderModeNone runs no stages; the output is the base image.
	RenderModeNone RenderMode = 0

	// RenderModeAll runs every stage.
	RenderModeAll = RenderModeAutoEnhancement | RenderModeOrientationCrop |
		RenderModeFocus | RenderModePhotoEffect | RenderModeColorAdjustments |
		RenderModeOverlays
)

// Has reports whether every bit of flag is set in m.
func (m RenderMode) Has(flag RenderMode) bool {
	return m&flag == flag
}

// String returns the set stage names joined by "|".
func (m RenderMode) String() string {
	if m == RenderModeNone {
		return "None"
	}
	if m == RenderModeAll {
		return "All"
	}
	names := []struct {
		flag RenderMode
		name string
	}{
		{RenderModeAutoEnhancement, "AutoEnhancement"},
		{RenderModeOrientationCrop, "OrientationCrop"},
		{RenderModeFocus, "Focus"},
		{RenderModePhotoEffect, "PhotoEffect"},
		{RenderModeColorAdjustments, "ColorAdjustments"},
		{RenderModeOverlays, "Overlays"},
	}
	var parts []string
	for _, n := range names {
		if m.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if rest := m &^ RenderModeAll; rest != 0 {
		parts = append(parts, "Unknown")
	}
	return strings.Join(parts, "|")
}
