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
	"math"
	"strings"

	"seehuhn.de/go/typeset/pdf"
)

// Font descriptor flags, see table 121 of ISO 32000-2:2020.
const (
	flagFixedPitch  = 1 << 0
	flagNonsymbolic = 1 << 5
	flagItalic      = 1 << 6
	flagForceBold   = 1 << 18
)

// Embed writes the face as a simple TrueType font with WinAnsiEncoding.
// The font dictionary is stored under ref, the font descriptor and the
// font program are allocated in store.
func (f *Face) Embed(store *pdf.Store, ref pdf.Reference) error {
	psName := strings.ReplaceAll(f.PostScriptName(), " ", "")
	if psName == "" {
		psName = strings.ReplaceAll(f.Family, " ", "") + "-" + f.Style.String()
	}

	q := 1000 * f.font.FontMatrix[3]
	flags := flagNonsymbolic
	if f.IsFixedPitch() {
		flags |= flagFixedPitch
	}
	if f.Style.Has(Italic) {
		flags |= flagItalic
	}
	if f.Style.Has(Bold) {
		flags |= flagForceBold
	}

	fileRef := store.Alloc()
	file := pdf.FlateStream(pdf.Dict{
		"Length1": pdf.Integer(len(f.data)),
	}, f.data)
	err := store.Put(fileRef, file)
	if err != nil {
		return err
	}

	bbox := f.BBox()
	descRef := store.Alloc()
	desc := pdf.Dict{
		"Type":        pdf.Name("FontDescriptor"),
		"FontName":    pdf.Name(psName),
		"FontFamily":  pdf.String(f.Family),
		"Flags":       pdf.Integer(flags),
		"FontBBox":    pdf.AsRectangle(bbox),
		"ItalicAngle": pdf.Number(math.Round(f.font.ItalicAngle*10) / 10),
		"Ascent":      pdf.Integer(math.Round(float64(f.font.Ascent) * q)),
		"Descent":     pdf.Integer(math.Round(float64(f.font.Descent) * q)),
		"CapHeight":   pdf.Integer(math.Round(float64(f.font.CapHeight) * q)),
		"StemV":       pdf.Integer(80),
		"FontFile2":   fileRef,
	}
	err = store.Put(descRef, desc)
	if err != nil {
		return err
	}

	const firstChar, lastChar = 32, 255
	widths := make(pdf.Array, 0, lastChar-firstChar+1)
	for c := firstChar; c <= lastChar; c++ {
		widths = append(widths, pdf.Number(math.Round(f.widths[c])))
	}

	dict := pdf.Dict{
		"Type":           pdf.Name("Font"),
		"Subtype":        pdf.Name("TrueType"),
		"BaseFont":       pdf.Name(psName),
		"FirstChar":      pdf.Integer(firstChar),
		"LastChar":       pdf.Integer(lastChar),
		"Widths":         widths,
		"FontDescriptor": descRef,
		"Encoding":       pdf.Name("WinAnsiEncoding"),
	}
	return store.Put(ref, dict)
}
