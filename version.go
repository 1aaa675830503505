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

package pdf

import "fmt"

// Version identifies a PDF file format version.
type Version int

const (
	V1_0 Version = iota
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
)

// ParseVersion parses a version string like "1.7" into a Version.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1.0":
		return V1_0, nil
	case "1.1":
		return V1_1, nil
	case "1.2":
		return V1_2, nil
	case "1.3":
		return V1_3, nil
	case "1.4":
		return V1_4, nil
	case "1.5":
		return V1_5, nil
	case "1.6":
		return V1_6, nil
	case "1.7":
		return V1_7, nil
	case "2.0":
		return V2_0, nil
	}
	return 0, fmt.Errorf("pdf: unsupported version %q", s)
}

// ToString renders the version the way it appears in a PDF header, e.g.
// "1.7".
func (v Version) ToString() (string, error) {
	switch v {
	case V1_0:
		return "1.0", nil
	case V1_1:
		return "1.1", nil
	case V1_2:
		return "1.2", nil
	case V1_3:
		return "1.3", nil
	case V1_4:
		return "1.4", nil
	case V1_5:
		return "1.5", nil
	case V1_6:
		return "1.6", nil
	case V1_7:
		return "1.7", nil
	case V2_0:
		return "2.0", nil
	}
	return "", fmt.Errorf("pdf: invalid version %d", int(v))
}

func (v Version) String() string {
	s, err := v.ToString()
	if err != nil {
		return "invalid"
	}
	return s
}
