package pdf

// PageTree holds the references that make up the PDF page tree: a single
// Pages node (object 2) whose Kids array
// lists every page in document order. This module never nests the page
// tree -- one flat Pages node is enough for the page counts a converted
// EPS/PostScript job produces.
type PageTree struct {
	Ref      Reference
	Kids     []Reference
	Resource Reference
}

// AsDict renders the Pages node. MediaBox is inherited by every child
// Page that does not set its own, which lets single-page jobs (the
// common case) omit a per-page MediaBox entirely.
func (t *PageTree) AsDict(mediaBox *Rectangle) Dict {
	kids := make(Array, len(t.Kids))
	for i, k := range t.Kids {
		kids[i] = k
	}
	d := Dict{
		"Type":  Name("Pages"),
		"Kids":  kids,
		"Count": Integer(len(t.Kids)),
	}
	if mediaBox != nil {
		d["MediaBox"] = mediaBox
	}
	return d
}

// Page describes a single converted page: its content stream, its
// dimensions, and the font resource it references.
type Page struct {
	Ref      Reference
	Parent   Reference
	Contents Reference
	MediaBox *Rectangle
	Fonts    Dict
}

// AsDict renders the page object. Fonts is the Resources/Font
// sub-dictionary, e.g. Dict{"F1": fontRef}.
func (p *Page) AsDict() Dict {
	d := Dict{
		"Type":     Name("Page"),
		"Parent":   p.Parent,
		"Contents": p.Contents,
	}
	if p.MediaBox != nil {
		d["MediaBox"] = p.MediaBox
	}
	if len(p.Fonts) > 0 {
		d["Resources"] = Dict{"Font": p.Fonts}
	}
	return d
}
