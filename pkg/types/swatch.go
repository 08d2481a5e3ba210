package types

// Swatch is a saved HSL color bound to one (list, product, variant)
// combination. The ID is assigned by the storage engine; the composite
// attributes form the non-unique secondary index used for lookup,
// cascading delete, and renumbering.
type Swatch struct {
	ID           int64  `json:"id"`
	ListName     string `json:"listName"`
	ProductID    string `json:"productId"`
	VariantIndex int    `json:"variantIndex"`
	Hue          int    `json:"hue"`
	Saturation   int    `json:"saturation"`
	Lightness    int    `json:"lightness"`
	Timestamp    string `json:"timestamp"`
}

// Color returns the swatch's HSL triple.
func (s Swatch) Color() HSLColor {
	return HSLColor{Hue: s.Hue, Saturation: s.Saturation, Lightness: s.Lightness}
}
