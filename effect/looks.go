package effect

import "math"

// look is a parametric color grade used to synthesize built-in LUTs.
type look struct {
	saturation float64 // 1 keeps colors, 0 is monochrome
	contrast   float64 // 1 is neutral, pivots around mid-grey
	warmth     float64 // >0 pushes red up and blue down
	tint       float64 // >0 pushes green up
	fade       float64 // lifts blacks toward grey
	gamma      float64 // 1 is neutral, >1 brightens mid-tones
}

func (l look) apply(r, g, b float64) (float64, float64, float64) {
	luma := 0.2126*r + 0.7152*g + 0.0722*b
	r = luma + (r-luma)*l.saturation
	g = luma + (g-luma)*l.saturation
	b = luma + (b-luma)*l.saturation

	r *= 1 + l.warmth
	b *= 1 - l.warmth
	g *= 1 + l.tint

	grade := func(c float64) float64 {
		c = min(max(c, 0), 1)
		if l.gamma != 1 && c > 0 {
			c = math.Pow(c, 1/l.gamma)
		}
		c = (c-0.5)*l.contrast + 0.5
		return l.fade + (1-l.fade)*c
	}
	return grade(r), grade(g), grade(b)
}

var looks = map[string]look{
	//                  sat   con   warm   tint   fade  gamma
	"K1":          {0.85, 1.10, 0.04, 0.00, 0.03, 1.00},
	"K2":          {0.90, 1.15, 0.06, -0.02, 0.00, 1.05},
	"K6":          {0.70, 1.20, -0.02, 0.00, 0.05, 1.00},
	"KDynamic":    {1.25, 1.25, 0.02, 0.00, 0.00, 1.00},
	"Fridge":      {0.80, 1.05, -0.10, 0.02, 0.04, 1.05},
	"Breeze":      {0.75, 0.95, -0.06, 0.04, 0.06, 1.10},
	"Orchid":      {0.90, 1.05, 0.03, -0.08, 0.04, 1.05},
	"Chest":       {0.85, 1.15, 0.10, 0.00, 0.02, 0.95},
	"Front":       {1.10, 1.05, 0.05, 0.02, 0.05, 1.05},
	"Fixie":       {1.20, 1.30, 0.03, -0.02, 0.00, 0.95},
	"X400":        {0.00, 1.20, 0.00, 0.00, 0.04, 1.00},
	"BW":          {0.00, 1.00, 0.00, 0.00, 0.00, 1.00},
	"AD1920":      {0.00, 1.10, 0.12, 0.00, 0.10, 0.95},
	"Lenin":       {0.30, 1.25, 0.00, 0.00, 0.02, 0.90},
	"Quozi":       {0.70, 0.95, 0.08, 0.00, 0.12, 1.10},
	"Pola669":     {0.80, 1.10, -0.04, 0.05, 0.08, 1.05},
	"PolaSX":      {0.90, 1.00, 0.06, -0.03, 0.10, 1.05},
	"Food":        {1.30, 1.10, 0.06, 0.00, 0.00, 1.05},
	"Glam":        {0.70, 1.20, 0.05, -0.04, 0.02, 1.10},
	"Celsius":     {0.90, 1.15, 0.12, 0.00, 0.00, 1.00},
	"Texas":       {0.75, 1.05, 0.15, 0.02, 0.06, 1.05},
	"Lomo":        {1.30, 1.35, 0.02, 0.03, 0.00, 0.95},
	"Goblin":      {0.60, 1.25, -0.02, 0.08, 0.03, 0.90},
	"Sin":         {0.40, 1.40, 0.00, 0.00, 0.00, 0.85},
	"Mellow":      {0.80, 0.90, 0.05, 0.00, 0.08, 1.10},
	"Soft":        {0.85, 0.85, 0.02, 0.00, 0.06, 1.15},
	"Blues":       {0.80, 1.05, -0.12, 0.00, 0.03, 1.00},
	"Elder":       {0.55, 1.00, 0.08, 0.00, 0.12, 1.00},
	"Sunset":      {1.10, 1.05, 0.18, -0.02, 0.02, 1.05},
	"Evening":     {0.85, 1.10, 0.10, -0.04, 0.04, 0.90},
	"Steel":       {0.20, 1.15, -0.08, 0.00, 0.02, 1.00},
	"Seventies":   {0.75, 0.95, 0.14, 0.04, 0.10, 1.05},
	"Hicon":       {1.05, 1.45, 0.00, 0.00, 0.00, 1.00},
	"BlueShade":   {0.90, 1.05, -0.18, 0.00, 0.02, 1.00},
	"Carb":        {1.15, 1.20, -0.04, 0.02, 0.00, 1.00},
	"RedCarb":     {1.15, 1.20, 0.10, -0.03, 0.00, 1.00},
	"Ancient":     {0.45, 1.00, 0.14, 0.02, 0.14, 0.95},
	"Cottoncandy": {0.95, 0.90, 0.00, -0.10, 0.08, 1.15},
	"Classic":     {0.90, 1.10, 0.04, 0.00, 0.02, 1.00},
	"Colorful":    {1.40, 1.10, 0.00, 0.00, 0.00, 1.00},
	"Creamy":      {0.85, 0.95, 0.08, 0.02, 0.07, 1.10},
	"Highcarb":    {1.25, 1.30, -0.02, 0.00, 0.00, 1.00},
	"Litho":       {0.10, 1.30, 0.02, 0.00, 0.06, 1.00},
	"Nogreen":     {0.90, 1.05, 0.02, -0.15, 0.02, 1.00},
	"Neat":        {1.05, 1.05, 0.00, 0.00, 0.01, 1.05},
	"Pale":        {0.60, 0.90, 0.00, 0.00, 0.12, 1.15},
	"Pitched":     {1.10, 1.20, 0.06, 0.06, 0.00, 0.95},
	"Plate":       {0.50, 1.05, -0.05, 0.03, 0.08, 1.00},
	"Pro400":      {0.95, 1.05, -0.02, 0.03, 0.03, 1.00},
	"Summer":      {1.15, 1.05, 0.10, 0.02, 0.02, 1.10},
	"Tender":      {0.80, 0.90, 0.06, -0.02, 0.08, 1.10},
	"Twilight":    {0.85, 1.10, -0.10, -0.05, 0.04, 0.95},
	"Winter":      {0.65, 1.05, -0.14, 0.02, 0.06, 1.05},
}
