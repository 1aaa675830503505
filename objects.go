// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdf

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"golang.org/x/exp/maps"
)

// Object is implemented by every native PDF data type that can appear
// as the value of a dictionary entry, an array element, or the body of
// an indirect object.
type Object interface {
	// PDF writes the object's representation, as it would appear
	// embedded in a content stream or object body, to w.
	PDF(w io.Writer) error
}

// Name is a PDF name object, stored without its leading slash.
type Name string

func (n Name) PDF(w io.Writer) error {
	_, err := io.WriteString(w, "/"+string(n))
	return err
}

// Boolean is a PDF boolean object.
type Boolean bool

func (b Boolean) PDF(w io.Writer) error {
	if b {
		_, err := io.WriteString(w, "true")
		return err
	}
	_, err := io.WriteString(w, "false")
	return err
}

// Integer is a PDF integer object.
type Integer int64

func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real is a PDF real-number object. Formatting uses the shortest decimal
// representation that round-trips exactly back to x, since the
// coordinate mapper's 1e-6 accuracy requirement leaves no room for a
// digit-capped rounding scheme tuned for font-metric display values.
type Real float64

func (x Real) PDF(w io.Writer) error {
	v := float64(x)
	if v == 0 {
		v = 0 // normalize -0 to 0
	}
	_, err := io.WriteString(w, strconv.FormatFloat(v, 'f', -1, 64))
	return err
}

// String is a PDF literal string object, stored as the raw (unescaped)
// bytes it represents.
type String []byte

// PDF writes the string as a parenthesized literal, escaping backslash
// and parentheses and representing non-printable bytes as octal escapes.
func (s String) PDF(w io.Writer) error {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '(')
	for _, c := range s {
		switch c {
		case '\\':
			buf = append(buf, '\\', '\\')
		case '(':
			buf = append(buf, '\\', '(')
		case ')':
			buf = append(buf, '\\', ')')
		default:
			if c < 0x20 || c >= 0x7f {
				buf = append(buf, '\\')
				buf = append(buf, '0'+(c>>6)&7, '0'+(c>>3)&7, '0'+c&7)
			} else {
				buf = append(buf, c)
			}
		}
	}
	buf = append(buf, ')')
	_, err := w.Write(buf)
	return err
}

// Array is a PDF array object. A nil element is written as the PDF
// keyword "null".
type Array []Object

func (a Array) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, elem := range a {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if err := writeObjectOrNull(w, elem); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// Dict is a PDF dictionary object. Entries with a nil value are omitted
// entirely -- a dictionary never serializes the PDF "null" keyword as a
// value. Keys are sorted so that the same Dict always serializes to the
// same bytes, which the object-graph tests rely on.
type Dict map[Name]Object

func (d Dict) PDF(w io.Writer) error {
	keys := maps.Keys(d)
	keys = slicesFilterNonNil(d, keys)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	if _, err := io.WriteString(w, "<<"); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := k.PDF(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := d[k].PDF(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, " >>")
	return err
}

// slicesFilterNonNil drops keys whose Dict value is nil in place, so
// that a dictionary never serializes the PDF "null" keyword as a
// value.
func slicesFilterNonNil(d Dict, keys []Name) []Name {
	out := keys[:0]
	for _, k := range keys {
		if d[k] != nil {
			out = append(out, k)
		}
	}
	return out
}

func writeObjectOrNull(w io.Writer, obj Object) error {
	if obj == nil {
		_, err := io.WriteString(w, "null")
		return err
	}
	return obj.PDF(w)
}

// Format renders obj the way it would appear embedded in an object body,
// for use in diagnostics and tests. A nil Object formats as "null".
func Format(obj Object) string {
	var b fmtBuffer
	_ = writeObjectOrNull(&b, obj)
	return string(b)
}

type fmtBuffer []byte

func (b *fmtBuffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

// Reference is an indirect reference to an object within a PDF file.
// Generation is always 0 for documents this module writes, since it
// never performs incremental updates.
type Reference struct {
	Number     uint32
	Generation uint16
}

func (r Reference) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d R", r.Number, r.Generation)
	return err
}

func (r Reference) String() string {
	return fmt.Sprintf("%d %d R", r.Number, r.Generation)
}

// Stream is a PDF stream object: a dictionary plus its raw, already
// fully-encoded byte payload. /Length is set by the Writer as the
// stream is emitted, so that it is always exact without requiring the
// caller to compute it in advance.
type Stream struct {
	Dict Dict
	Data []byte
}

// PDF is not used directly for Stream -- streams are emitted by
// Writer.PutStream, which adds the exact /Length entry itself; this
// method writes the dictionary as given, without /Length. It exists only
// so *Stream satisfies Object for callers that pass it through Dict or
// Array values (e.g. embedding a stream reference is always done via a
// Reference, never the stream body itself, but the interface must still
// be satisfied to keep the type system simple).
func (s *Stream) PDF(w io.Writer) error {
	if err := s.Dict.PDF(w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\nstream\n"); err != nil {
		return err
	}
	if _, err := w.Write(s.Data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\nendstream")
	return err
}
