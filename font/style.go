// seehuhn.de/go/typeset - speculative layout and pagination for PDF documents
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package font

import (
	"fmt"
	"strings"
)

// Style is the style of a face within a font family.
// Styles are bit sets, so that [Bold]|[Italic] equals [BoldItalic].
type Style uint8

// These are the styles a font family can provide.
const (
	Normal     Style = 0
	Bold       Style = 1
	Italic     Style = 2
	BoldItalic Style = Bold | Italic
)

func (s Style) String() string {
	switch s {
	case Normal:
		return "normal"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold_italic"
	default:
		return fmt.Sprintf("Style(%d)", uint8(s))
	}
}

// Has reports whether all flags of other are set in s.
func (s Style) Has(other Style) bool {
	return s&other == other
}

// ResolveStyle combines a set of styles into a single style.
// For example, the combination of [Bold] and [Italic] is [BoldItalic].
func ResolveStyle(styles ...Style) Style {
	var res Style
	for _, s := range styles {
		res |= s
	}
	return res & BoldItalic
}

// Styles splits s into its individual flags.  The result for [Normal] is
// empty.
func (s Style) Styles() []Style {
	var res []Style
	if s.Has(Bold) {
		res = append(res, Bold)
	}
	if s.Has(Italic) {
		res = append(res, Italic)
	}
	return res
}

// ParseStyle converts a style name like "bold" or "bold_italic" into a
// Style.  The empty string is the same as "normal".
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "-", "_")) {
	case "", "normal", "regular":
		return Normal, nil
	case "bold":
		return Bold, nil
	case "italic":
		return Italic, nil
	case "bold_italic", "bolditalic":
		return BoldItalic, nil
	default:
		return Normal, fmt.Errorf("unknown font style %q", name)
	}
}
