package effect

import "github.com/gogpu/imgedit/filter"

// NoneIdentifier is the identifier of the entry that applies no effect.
const NoneIdentifier = "None"

// catalog is populated once in init and never modified afterwards.
var catalog []*Effect

func init() {
	catalog = buildCatalog()
}

func buildCatalog() []*Effect {
	lut := func(id, display string) *Effect {
		return NewLUTEffect(id, id, display)
	}
	return []*Effect{
		NewEffect(NoneIdentifier, "", "None", nil),

		lut("K1", "K1"),
		lut("K2", "K2"),
		lut("K6", "K6"),
		lut("KDynamic", "Dynamic"),
		lut("Fridge", "Fridge"),
		lut("Breeze", "Breeze"),
		lut("Orchid", "Orchid"),
		lut("Chest", "Chest"),
		lut("Front", "Front"),
		lut("Fixie", "Fixie"),
		lut("X400", "X400"),
		lut("BW", "BW"),
		lut("AD1920", "1920"),
		lut("Lenin", "Lenin"),
		lut("Quozi", "Quozi"),
		lut("Pola669", "669"),
		lut("PolaSX", "SX"),
		lut("Food", "Food"),
		lut("Glam", "Glam"),
		lut("Celsius", "Celsius"),
		lut("Texas", "Texas"),
		lut("Lomo", "Lomo"),
		lut("Goblin", "Goblin"),
		lut("Sin", "Sin"),
		lut("Mellow", "Mellow"),
		lut("Soft", "Soft"),
		lut("Blues", "Blues"),
		lut("Elder", "Elder"),
		lut("Sunset", "Sunset"),
		lut("Evening", "Evening"),
		lut("Steel", "Steel"),
		lut("Seventies", "70s"),
		lut("Hicon", "Hicon"),
		lut("BlueShade", "Blue Shade"),
		lut("Carb", "Carb"),
		lut("RedCarb", "Red Carb"),
		lut("Ancient", "Ancient"),
		lut("Cottoncandy", "Cotton Candy"),
		lut("Classic", "Classic"),
		lut("Colorful", "Colorful"),
		lut("Creamy", "Creamy"),
		lut("Highcarb", "High Carb"),
		lut("Litho", "Litho"),
		lut("Nogreen", "No Green"),
		lut("Neat", "Neat"),
		lut("Pale", "Pale"),
		lut("Pitched", "Pitched"),
		lut("Plate", "Plate"),
		lut("Pro400", "Pro 400"),
		lut("Summer", "Summer"),
		lut("Tender", "Tender"),
		lut("Twilight", "Twilight"),
		lut("Winter", "Winter"),

		NewEffect("Chrome", filter.NamePhotoEffectChrome, "Chrome", nil),
		NewEffect("Fade", filter.NamePhotoEffectFade, "Fade", nil),
		NewEffect("Instant", filter.NamePhotoEffectInstant, "Instant", nil),
		NewEffect("Mono", filter.NamePhotoEffectMono, "Mono", nil),
		NewEffect("Noir", filter.NamePhotoEffectNoir, "Noir", nil),
		NewEffect("Process", filter.NamePhotoEffectProcess, "Process", nil),
		NewEffect("Tonal", filter.NamePhotoEffectTonal, "Tonal", nil),
		NewEffect("Transfer", filter.NamePhotoEffectTransfer, "Transfer", nil),
		NewEffect("Sepia", filter.NameSepiaTone, "Sepia", nil),
	}
}

// All returns the catalog in display order. The slice is a copy; the
// entries themselves are shared and immutable.
func All() []*Effect {
	return append([]*Effect(nil), catalog...)
}

// Len returns the number of catalog entries.
func Len() int {
	return len(catalog)
}

// WithIdentifier returns the first entry whose identifier is id.
func WithIdentifier(id string) (*Effect, bool) {
	for _, e := range catalog {
		if e.identifier == id {
			return e, true
		}
	}
	return nil, false
}

// Index returns the catalog position of id, or -1.
func Index(id string) int {
	for i, e := range catalog {
		if e.identifier == id {
			return i
		}
	}
	return -1
}
