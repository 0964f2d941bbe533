package imgedit

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// FocusType selects the focus (tilt-shift) blur shape.
type FocusType int

const (
	FocusOff FocusType = iota
	FocusLinear
	FocusRadial
)

var focusTypeNames = [...]string{"Off", "Linear", "Radial"}

func (f FocusType) String() string {
	if f < FocusOff || f > FocusRadial {
		return fmt.Sprintf("FocusType(%d)", int(f))
	}
	return focusTypeNames[f]
}

// MarshalText implements encoding.TextMarshaler.
func (f FocusType) MarshalText() ([]byte, error) {
	if f < FocusOff || f > FocusRadial {
		return nil, fmt.Errorf("%w: focus type %d", ErrInvalidEditModel, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FocusType) UnmarshalText(text []byte) error {
	for i, name := range focusTypeNames {
		if strings.EqualFold(string(text), name) {
			*f = FocusType(i)
			return nil
		}
	}
	return fmt.Errorf("%w: focus type %q", ErrInvalidEditModel, text)
}

// No-op values. A field equal to its identity value leaves the image
// unchanged, and stages compare against these exactly.
const (
	IdentityOrientation     = Normal
	IdentityStraightenAngle = 0.0
	IdentityBrightness      = 0.0
	IdentityContrast        = 1.0
	IdentitySaturation      = 1.0
	IdentityEffect          = "None"

	// DefaultFocusBlurRadius is the blur radius of a new model.
	DefaultFocusBlurRadius = 10.0
)

// IdentityNormalizedCropRect returns the full-frame crop (0,0,1,1).
func IdentityNormalizedCropRect() Rect {
	return Rect{X: 0, Y: 0, Width: 1, Height: 1}
}

// ErrInvalidEditModel is returned by Validate and recipe decoding.
var ErrInvalidEditModel = errors.New("imgedit: invalid edit model")

// EditModel is an immutable snapshot of every edit parameter. It is a
// comparable value: two models are equal exactly when every field is
// equal, and the renderer relies on this to key its cache.
type EditModel struct {
	AppliedOrientation     Orientation
	AutoEnhancementEnabled bool

	Brightness float64
	Contrast   float64
	Saturation float64

	EffectIdentifier string
	EffectIntensity  float64

	FocusType          FocusType
	FocusControlPoint1 Point // normalized
	FocusControlPoint2 Point // normalized
	FocusBlurRadius    float64

	NormalizedCropRect Rect
	StraightenAngle    float64 // radians
}

// NewEditModel returns a model in which every field holds its no-op value.
func NewEditModel() EditModel {
	return EditModel{
		AppliedOrientation: IdentityOrientation,
		Brightness:         IdentityBrightness,
		Contrast:           IdentityContrast,
		Saturation:         IdentitySaturation,
		EffectIdentifier:   IdentityEffect,
		EffectIntensity:    1,
		FocusType:          FocusOff,
		FocusControlPoint1: Point{X: 0.5, Y: 0.3},
		FocusControlPoint2: Point{X: 0.5, Y: 0.7},
		FocusBlurRadius:    DefaultFocusBlurRadius,
		NormalizedCropRect: IdentityNormalizedCropRect(),
		StraightenAngle:    IdentityStraightenAngle,
	}
}

// HasIdentityGeometry reports whether the geometry stage would be a no-op.
func (m EditModel) HasIdentityGeometry() bool {
	return m.StraightenAngle == IdentityStraightenAngle &&
		m.NormalizedCropRect == IdentityNormalizedCropRect() &&
		m.AppliedOrientation == IdentityOrientation
}

// HasIdentityColorControls reports whether the color stage would be a no-op.
func (m EditModel) HasIdentityColorControls() bool {
	return m.Brightness == IdentityBrightness &&
		m.Contrast == IdentityContrast &&
		m.Saturation == IdentitySaturation
}

// Validate reports the first out-of-range field.
func (m EditModel) Validate() error {
	if !m.AppliedOrientation.IsValid() {
		return fmt.Errorf("%w: orientation %d", ErrInvalidEditModel, int(m.AppliedOrientation))
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"brightness", m.Brightness},
		{"contrast", m.Contrast},
		{"saturation", m.Saturation},
		{"effect intensity", m.EffectIntensity},
		{"focus blur radius", m.FocusBlurRadius},
		{"straighten angle", m.StraightenAngle},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidEditModel, f.name, f.v)
		}
	}
	if m.EffectIntensity < 0 || m.EffectIntensity > 1 {
		return fmt.Errorf("%w: effect intensity %v outside [0,1]", ErrInvalidEditModel, m.EffectIntensity)
	}
	if m.FocusType < FocusOff || m.FocusType > FocusRadial {
		return fmt.Errorf("%w: focus type %d", ErrInvalidEditModel, int(m.FocusType))
	}
	c := m.NormalizedCropRect
	if c.Width <= 0 || c.Height <= 0 || c.X < 0 || c.Y < 0 || c.MaxX() > 1+1e-9 || c.MaxY() > 1+1e-9 {
		return fmt.Errorf("%w: crop rect %v outside the unit square", ErrInvalidEditModel, c)
	}
	return nil
}
