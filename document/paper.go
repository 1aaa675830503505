// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
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

// Package document holds the paper-size table and processing options
// that the converter's CLI and façade share.
package document

import "parchment.dev/ps2pdf/pdferr"

// PaperSize names one of the recognized page sizes.
type PaperSize int

const (
	A4 PaperSize = iota
	Letter
	Legal
	A3
	A5
	Executive
	Custom
)

func (p PaperSize) String() string {
	switch p {
	case A4:
		return "A4"
	case Letter:
		return "Letter"
	case Legal:
		return "Legal"
	case A3:
		return "A3"
	case A5:
		return "A5"
	case Executive:
		return "Executive"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// ParsePaperSize parses the --paper-size CLI value.
func ParsePaperSize(s string) (PaperSize, error) {
	switch s {
	case "A4", "":
		return A4, nil
	case "Letter":
		return Letter, nil
	case "Legal":
		return Legal, nil
	case "A3":
		return A3, nil
	case "A5":
		return A5, nil
	case "Executive":
		return Executive, nil
	case "Custom":
		return Custom, nil
	}
	return 0, &pdferr.InvalidArgument{Message: "unknown paper size " + s}
}

// dims gives the width and height, in points, of every non-Custom size.
var dims = map[PaperSize][2]float64{
	A4:        {595.276, 841.890},
	Letter:    {612, 792},
	Legal:     {612, 1008},
	A3:        {841.890, 1190.551},
	A5:        {420.945, 595.276},
	Executive: {522, 756},
}

// Dimensions returns the width and height, in points, for size. For
// Custom it returns customW/customH unchanged; for any other size the
// custom arguments are ignored.
func Dimensions(size PaperSize, customW, customH float64) (w, h float64) {
	if size == Custom {
		return customW, customH
	}
	d := dims[size]
	return d[0], d[1]
}
