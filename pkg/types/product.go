package types

// HSLColor is a color in HSL space. Hue is 0-360, saturation and
// lightness are 0-100.
type HSLColor struct {
	Hue        int `json:"hue"`
	Saturation int `json:"saturation"`
	Lightness  int `json:"lightness"`
}

// ColorVariant is one recolored rendering of a product image, held at a
// positional index within its product's variant slice. A variant whose
// ProcessedImage is still empty is pending: only the source URL has been
// captured and the image-processing collaborator has not run yet.
type ColorVariant struct {
	Colors           HSLColor `json:"colors"`
	OriginalImageURL string   `json:"originalImageUrl,omitempty"`
	ProcessedImage   string   `json:"processedImage,omitempty"`
	VariantImage     string   `json:"variantImage,omitempty"`
	ImageIndex       int      `json:"imageIndex"`
	Timestamp        string   `json:"timestamp"`
}

// Ready reports whether the variant's image has been processed.
func (v ColorVariant) Ready() bool {
	return v.ProcessedImage != ""
}

// SameColors reports whether two variants carry an identical HSL triple.
func (v ColorVariant) SameColors(o ColorVariant) bool {
	return v.Colors == o.Colors
}

// Note is a user annotation attached to a product entry.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// ProductEntry is a catalog item inside one list: the upstream id, the
// catalog fields the engine reads, the opaque remainder, user notes, and
// the ordered color variants. An entry with zero variants left is
// considered deleted and is dropped from its list.
type ProductEntry struct {
	ID            string         `json:"id"`
	ItemCode      string         `json:"itemCode,omitempty"`
	Fields        map[string]any `json:"fields,omitempty"`
	Notes         []Note         `json:"notes,omitempty"`
	ColorVariants []ColorVariant `json:"colorVariants"`
}

// Clone returns a deep copy of the entry. Lists state is handed out to
// callers and snapshotted for flushes, so shared backing arrays would be
// a hazard.
func (p ProductEntry) Clone() ProductEntry {
	cp := p
	if p.Fields != nil {
		cp.Fields = make(map[string]any, len(p.Fields))
		for k, v := range p.Fields {
			cp.Fields[k] = v
		}
	}
	cp.Notes = append([]Note(nil), p.Notes...)
	cp.ColorVariants = append([]ColorVariant(nil), p.ColorVariants...)
	return cp
}
