package convert

import (
	"io"

	pdf "parchment.dev/ps2pdf"
	"parchment.dev/ps2pdf/font/standard"
	"parchment.dev/ps2pdf/ps"
)

// versionFor maps a PDF minor version (4-7) to pdf.Version.
func versionFor(minor int) pdf.Version {
	switch minor {
	case 4:
		return pdf.V1_4
	case 5:
		return pdf.V1_5
	case 6:
		return pdf.V1_6
	case 7:
		return pdf.V1_7
	default:
		return pdf.V1_7
	}
}

// assemble writes every page of every document in docs to sink as one
// PDF file, with Catalog (object 1), Pages tree (object 2), then
// per-page Page and Contents objects, then the shared Font resource.
func assemble(sink io.Writer, docs []*ps.Document, compatLevel int) error {
	w, err := pdf.NewWriter(sink, versionFor(compatLevel))
	if err != nil {
		return err
	}

	catalogRef := w.Alloc()
	pagesRef := w.Alloc()

	var kids []pdf.Reference
	type pageWork struct {
		ref      pdf.Reference
		contents pdf.Reference
		page     *ps.Page
	}
	var work []pageWork

	for _, doc := range docs {
		for _, pg := range doc.Pages {
			ref := w.Alloc()
			contentsRef := w.Alloc()
			kids = append(kids, ref)
			work = append(work, pageWork{ref: ref, contents: contentsRef, page: pg})
		}
	}

	fontRef := w.Alloc()

	for _, pw := range work {
		page := &pdf.Page{
			Ref:      pw.ref,
			Parent:   pagesRef,
			Contents: pw.contents,
			MediaBox: &pdf.Rectangle{URx: pw.page.WidthPts, URy: pw.page.HeightPts},
			Fonts:    pdf.Dict{standard.ResourceName: fontRef},
		}
		if err := w.Put(pw.ref, page.AsDict()); err != nil {
			return err
		}
		body := renderContent(pw.page)
		if err := w.PutStream(pw.contents, &pdf.Stream{Dict: pdf.Dict{}, Data: body}); err != nil {
			return err
		}
	}

	tree := &pdf.PageTree{Ref: pagesRef, Kids: kids}
	if err := w.Put(pagesRef, tree.AsDict(nil)); err != nil {
		return err
	}

	catalog := &pdf.Catalog{Pages: pagesRef}
	if err := w.Put(catalogRef, catalog.AsDict()); err != nil {
		return err
	}

	if err := w.Put(fontRef, standard.Dict()); err != nil {
		return err
	}

	return w.Close(catalogRef)
}
