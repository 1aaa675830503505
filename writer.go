package pdf

import (
	"fmt"
	"io"
)

// Writer serializes a PDF document to an underlying sink in a single
// linear pass: objects are written as soon as they are Put, never
// buffered or revisited, and the cross-reference table is built up from
// the offsets recorded along the way.
//
// A Writer is not safe for concurrent use; each document gets its own
// Writer.
type Writer struct {
	w       io.Writer
	version Version
	offset  int64

	// xref holds the byte offset of each object, indexed by its object
	// Number. Slot 0 is the free-list head entry written with generation
	// 65535.
	xref []int64

	next   uint32
	closed bool
	err    error
}

// NewWriter writes the PDF header and binary marker and returns a Writer
// ready to accept objects. v selects the `%PDF-1.<minor>` declared in
// the header; the binary marker always follows immediately.
func NewWriter(w io.Writer, v Version) (*Writer, error) {
	vs, err := v.ToString()
	if err != nil {
		return nil, err
	}
	pw := &Writer{w: w, version: v, xref: []int64{0}, next: 1}
	n, err := fmt.Fprintf(pw.w, "%%PDF-%s\n%%\xE2\xE3\xCF\xD3\n", vs)
	pw.offset += int64(n)
	if err != nil {
		pw.err = err
		return pw, err
	}
	return pw, nil
}

// Alloc reserves the next object number without writing anything yet,
// so that forward references (e.g. a Page's Parent, written before the
// Pages node itself) can be formed ahead of time.
func (pw *Writer) Alloc() Reference {
	ref := Reference{Number: pw.next, Generation: 0}
	pw.next++
	pw.xref = append(pw.xref, -1)
	return ref
}

// Put writes obj as the body of the indirect object ref, which must
// have been returned by Alloc and not yet written. Every object's
// offset is recorded as it is written, so objects must be written
// exactly once and in the order their offsets will be needed -- this
// writer never seeks backward.
func (pw *Writer) Put(ref Reference, obj Object) error {
	if pw.err != nil {
		return pw.err
	}
	if int(ref.Number) >= len(pw.xref) || pw.xref[ref.Number] != -1 {
		return fmt.Errorf("pdf: object %s not allocated or already written", ref)
	}
	pw.xref[ref.Number] = pw.offset

	n, err := fmt.Fprintf(pw.w, "%d %d obj\n", ref.Number, ref.Generation)
	pw.offset += int64(n)
	if err != nil {
		pw.err = err
		return err
	}
	if err := pw.writeTracked(obj); err != nil {
		pw.err = err
		return err
	}
	n, err = io.WriteString(pw.w, "\nendobj\n\n")
	pw.offset += int64(n)
	if err != nil {
		pw.err = err
	}
	return pw.err
}

// PutStream writes s as the body of the indirect object ref, computing
// and emitting an exact /Length entry rather than trusting a
// caller-supplied value.
func (pw *Writer) PutStream(ref Reference, s *Stream) error {
	if pw.err != nil {
		return pw.err
	}
	d := make(Dict, len(s.Dict)+1)
	for k, v := range s.Dict {
		d[k] = v
	}
	d["Length"] = Integer(len(s.Data))

	if int(ref.Number) >= len(pw.xref) || pw.xref[ref.Number] != -1 {
		return fmt.Errorf("pdf: object %s not allocated or already written", ref)
	}
	pw.xref[ref.Number] = pw.offset

	n, err := fmt.Fprintf(pw.w, "%d %d obj\n", ref.Number, ref.Generation)
	pw.offset += int64(n)
	if err != nil {
		pw.err = err
		return err
	}
	if err := pw.writeTracked(d); err != nil {
		pw.err = err
		return err
	}
	n, err = io.WriteString(pw.w, "\nstream\n")
	pw.offset += int64(n)
	if err != nil {
		pw.err = err
		return err
	}
	nn, err := pw.w.Write(s.Data)
	pw.offset += int64(nn)
	if err != nil {
		pw.err = err
		return err
	}
	n, err = io.WriteString(pw.w, "\nendstream\nendobj\n\n")
	pw.offset += int64(n)
	if err != nil {
		pw.err = err
	}
	return pw.err
}

func (pw *Writer) writeTracked(obj Object) error {
	cw := &countingWriter{w: pw.w}
	err := obj.PDF(cw)
	pw.offset += cw.n
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Close emits the cross-reference table and trailer and marks the
// Writer as finished. root is the Catalog's reference, always object 1
// in the documents this module produces.
func (pw *Writer) Close(root Reference) error {
	if pw.err != nil {
		return pw.err
	}
	if pw.closed {
		return fmt.Errorf("pdf: writer already closed")
	}
	for i := 1; i < len(pw.xref); i++ {
		if pw.xref[i] == -1 {
			return fmt.Errorf("pdf: object %d allocated but never written", i)
		}
	}
	pw.closed = true

	xrefOffset := pw.offset
	size := len(pw.xref)

	if err := pw.writeLine(fmt.Sprintf("xref\n0 %d\n", size)); err != nil {
		return err
	}
	if err := pw.writeLine("0000000000 65535 f \n"); err != nil {
		return err
	}
	for i := 1; i < size; i++ {
		line := fmt.Sprintf("%010d 00000 n \n", pw.xref[i])
		if len(line) != 20 {
			return fmt.Errorf("pdf: internal error: xref line %q is not 20 bytes", line)
		}
		if err := pw.writeLine(line); err != nil {
			return err
		}
	}

	trailer := Dict{
		"Size": Integer(size),
		"Root": root,
	}
	if err := pw.writeLine("trailer\n"); err != nil {
		return err
	}
	if err := pw.writeTracked(trailer); err != nil {
		pw.err = err
		return err
	}
	if err := pw.writeLine(fmt.Sprintf("\nstartxref\n%d\n%%%%EOF\n", xrefOffset)); err != nil {
		return err
	}

	if f, ok := pw.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (pw *Writer) writeLine(s string) error {
	n, err := io.WriteString(pw.w, s)
	pw.offset += int64(n)
	if err != nil {
		pw.err = err
	}
	return err
}
