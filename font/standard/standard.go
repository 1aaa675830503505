// Package standard provides the single base font this converter ever
// references: Type1 Helvetica. Font embedding is out of scope (section
// 1), so there is no glyph program, no widths array and no encoding
// machinery here -- just the one resource dictionary every content
// stream's Tf operand names.
package standard

import "parchment.dev/ps2pdf"

// ResourceName is the name every content stream uses for the font in
// its Tf/Resources entry.
const ResourceName = pdf.Name("F1")

// Dict is the Font resource object: << /Type /Font /Subtype /Type1
// /BaseFont /Helvetica >>.
func Dict() pdf.Dict {
	return pdf.Dict{
		"Type":     pdf.Name("Font"),
		"Subtype":  pdf.Name("Type1"),
		"BaseFont": pdf.Name("Helvetica"),
	}
}
