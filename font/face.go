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
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"
)

// Face is a single font face, for example the bold style of a family.
//
// Faces are immutable and can be shared between documents.
type Face struct {
	Family string
	Style  Style

	font *sfnt.Font
	data []byte

	// widths of the WinAnsi character codes, in PDF glyph space units
	widths [256]float64
}

// New reads a TrueType or OpenType font and returns the corresponding face.
func New(data []byte, family string, style Style) (*Face, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font %s %s: %w", family, style, err)
	}
	if info.UnitsPerEm == 0 {
		return nil, fmt.Errorf("font %s %s: %w", family, style, errNoUnitsPerEm)
	}
	cmap, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("font %s %s: %w", family, style, err)
	}

	f := &Face{
		Family: family,
		Style:  style,
		font:   info,
		data:   data,
	}
	for c := 0; c < 256; c++ {
		r := charmap.Windows1252.DecodeByte(byte(c))
		var gid glyph.ID
		if c >= 32 {
			gid = cmap.Lookup(r)
		}
		f.widths[c] = info.GlyphWidthPDF(gid)
	}
	return f, nil
}

var errNoUnitsPerEm = errors.New("invalid UnitsPerEm")

// PostScriptName returns the PostScript name of the font.
func (f *Face) PostScriptName() string {
	return f.font.PostScriptName()
}

// IsFixedPitch reports whether all glyphs of the font have the same width.
func (f *Face) IsFixedPitch() bool {
	return f.font.IsFixedPitch()
}

func (f *Face) scale(v float64, size float64) float64 {
	return v * f.font.FontMatrix[3] * size
}

// Ascender returns the height of the ascender at the given font size.
func (f *Face) Ascender(size float64) float64 {
	return f.scale(float64(f.font.Ascent), size)
}

// Descender returns the descender at the given font size.
// The value is negative for fonts which extend below the baseline.
func (f *Face) Descender(size float64) float64 {
	return f.scale(float64(f.font.Descent), size)
}

// LineGap returns the extra space the font designer recommends between
// consecutive lines, at the given font size.
func (f *Face) LineGap(size float64) float64 {
	return f.scale(float64(f.font.LineGap), size)
}

// CapHeight returns the height of capital letters at the given font size.
func (f *Face) CapHeight(size float64) float64 {
	return f.scale(float64(f.font.CapHeight), size)
}

// BBox returns the font bounding box in PDF glyph space units.
func (f *Face) BBox() rect.Rect {
	return f.font.FontBBoxPDF()
}

// Encode converts a string to WinAnsi encoding.  Characters which cannot
// be represented are replaced by a question mark.
func (f *Face) Encode(s string) []byte {
	res := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		res = append(res, c)
	}
	return res
}

// CodeWidth returns the width of the WinAnsi character code c at the given
// font size.
func (f *Face) CodeWidth(c byte, size float64) float64 {
	return f.widths[c] * size / 1000
}

// Width returns the advance width of s at the given font size.
func (f *Face) Width(s string, size float64) float64 {
	var w float64
	for _, c := range f.Encode(s) {
		w += f.widths[c]
	}
	return w * size / 1000
}
