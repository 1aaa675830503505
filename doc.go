// Package pdf implements the object model and the linear, single-pass
// serializer for the PDF documents this module produces.
//
// This package only writes PDF files; it never reads one back. A
// document is a handful of native PDF objects -- implementations of the
// Object interface:
//
//	Array
//	Boolean
//	Dict
//	Integer
//	Name
//	Real
//	Reference
//	Stream
//	String
//
// A Writer assigns each indirect object a Reference as it is built and
// writes it to the underlying sink immediately, recording its byte
// offset for the cross-reference table that Close emits together with
// the trailer:
//
//	w, err := pdf.NewWriter(sink, pdf.V1_7)
//	ref := w.Alloc()
//	err = w.Put(ref, pdf.Dict{"Type": pdf.Name("Catalog")})
//	err = w.Close(ref)
//
// The Catalog, PageTree and Page dictionaries are defined in this
// package. The standard Helvetica font resource lives in font/standard,
// and content streams and whole-document assembly live in convert.
package pdf
