package pdf

import (
	"golang.org/x/text/language"
)

// Catalog represents a PDF Document Catalog. The only required field is
// Pages, the root of the page tree. This module writes a narrow subset
// of the full Catalog dictionary: no AcroForm, no StructTreeRoot, no
// encryption-related entries -- this module never produces forms,
// tagged structure, or encrypted output.
//
// The Document Catalog is documented in section 7.7.2 of PDF 32000-1:2008.
type Catalog struct {
	// Pages is the root of the document's page tree.
	Pages Reference

	// Lang (optional, PDF 1.4) specifies the natural language for all
	// text in the document. Carried as ambient catalog metadata even
	// though tagged-PDF features are out of scope.
	Lang language.Tag
}

// AsDict renders the catalog as its PDF dictionary representation.
func (c *Catalog) AsDict() Dict {
	d := Dict{
		"Type":  Name("Catalog"),
		"Pages": c.Pages,
	}
	if !c.Lang.IsRoot() {
		d["Lang"] = String(c.Lang.String())
	}
	return d
}
