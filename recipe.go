package imgedit

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// recipe is the on-disk TOML layout of an EditModel. Keys that are absent
// keep their NewEditModel defaults.
type recipe struct {
	Orientation Orientation `toml:"orientation"`
	AutoEnhance bool        `toml:"auto_enhance"`
	Straighten  float64     `toml:"straighten"`

	Crop   recipeCrop   `toml:"crop"`
	Color  recipeColor  `toml:"color"`
	Effect recipeEffect `toml:"effect"`
	Focus  recipeFocus  `toml:"focus"`
}

type recipeCrop struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type recipeColor struct {
	Brightness float64 `toml:"brightness"`
	Contrast   float64 `toml:"contrast"`
	Saturation float64 `toml:"saturation"`
}

type recipeEffect struct {
	ID        string  `toml:"id"`
	Intensity float64 `toml:"intensity"`
}

type recipeFocus struct {
	Type   FocusType `toml:"type"`
	Point1 []float64 `toml:"point1"`
	Point2 []float64 `toml:"point2"`
	Radius float64   `toml:"radius"`
}

func recipeFromModel(m EditModel) recipe {
	return recipe{
		Orientation: m.AppliedOrientation,
		AutoEnhance: m.AutoEnhancementEnabled,
		Straighten:  m.StraightenAngle,
		Crop: recipeCrop{
			X: m.NormalizedCropRect.X, Y: m.NormalizedCropRect.Y,
			Width: m.NormalizedCropRect.Width, Height: m.NormalizedCropRect.Height,
		},
		Color:  recipeColor{Brightness: m.Brightness, Contrast: m.Contrast, Saturation: m.Saturation},
		Effect: recipeEffect{ID: m.EffectIdentifier, Intensity: m.EffectIntensity},
		Focus: recipeFocus{
			Type:   m.FocusType,
			Point1: []float64{m.FocusControlPoint1.X, m.FocusControlPoint1.Y},
			Point2: []float64{m.FocusControlPoint2.X, m.FocusControlPoint2.Y},
			Radius: m.FocusBlurRadius,
		},
	}
}

func (r recipe) model() (EditModel, error) {
	p1, err := recipePoint("focus.point1", r.Focus.Point1)
	if err != nil {
		return EditModel{}, err
	}
	p2, err := recipePoint("focus.point2", r.Focus.Point2)
	if err != nil {
		return EditModel{}, err
	}
	m := EditModel{
		AppliedOrientation:     r.Orientation,
		AutoEnhancementEnabled: r.AutoEnhance,
		Brightness:             r.Color.Brightness,
		Contrast:               r.Color.Contrast,
		Saturation:             r.Color.Saturation,
		EffectIdentifier:       r.Effect.ID,
		EffectIntensity:        r.Effect.Intensity,
		FocusType:              r.Focus.Type,
		FocusControlPoint1:     p1,
		FocusControlPoint2:     p2,
		FocusBlurRadius:        r.Focus.Radius,
		NormalizedCropRect:     Rect{X: r.Crop.X, Y: r.Crop.Y, Width: r.Crop.Width, Height: r.Crop.Height},
		StraightenAngle:        r.Straighten,
	}
	return m, m.Validate()
}

func recipePoint(key string, v []float64) (Point, error) {
	if len(v) != 2 {
		return Point{}, fmt.Errorf("%w: %s needs two coordinates, got %d", ErrInvalidEditModel, key, len(v))
	}
	return Point{X: v[0], Y: v[1]}, nil
}

// DecodeRecipe reads a TOML edit recipe. Missing keys keep their default
// values; unknown keys are rejected.
func DecodeRecipe(r io.Reader) (EditModel, error) {
	rec := recipeFromModel(NewEditModel())
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return EditModel{}, fmt.Errorf("imgedit: decode recipe: %w", err)
	}
	return rec.model()
}

// LoadRecipe reads a TOML edit recipe from path.
func LoadRecipe(path string) (EditModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return EditModel{}, err
	}
	defer f.Close()
	return DecodeRecipe(f)
}

// MarshalRecipe encodes m as a TOML recipe.
func (m EditModel) MarshalRecipe() ([]byte, error) {
	return toml.Marshal(recipeFromModel(m))
}
