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

package document

import (
	"fmt"

	"seehuhn.de/go/typeset/font"
	"seehuhn.de/go/typeset/pdf"
)

// FontSelection identifies a font face and size.
type FontSelection struct {
	Family string
	Style  font.Style
	Size   float64
}

func (s FontSelection) String() string {
	return fmt.Sprintf("%s %s %gpt", s.Family, s.Style, s.Size)
}

type fontResource struct {
	ref  pdf.Reference
	name pdf.Name
}

// Fonts returns the font registry of the document.
func (d *Document) Fonts() *font.Registry {
	return d.fonts
}

// RegisterFont adds faces to a font family.
func (d *Document) RegisterFont(family string, faces ...*font.Face) {
	d.fonts.Register(family, faces...)
}

// FontSelection returns the current font family, style and size.
func (d *Document) FontSelection() FontSelection {
	return d.fontSel
}

// FontFamily returns the current font family.
func (d *Document) FontFamily() string {
	return d.fontSel.Family
}

// FontStyle returns the current font style.
func (d *Document) FontStyle() font.Style {
	return d.fontSel.Style
}

// FontSize returns the current font size.
func (d *Document) FontSize() float64 {
	return d.fontSel.Size
}

// SetFont changes the current font.  An empty family or a non-positive size
// keep the current value.  The style is always taken from sel.
func (d *Document) SetFont(sel FontSelection) error {
	if sel.Family == "" {
		sel.Family = d.fontSel.Family
	}
	if sel.Size <= 0 {
		sel.Size = d.fontSel.Size
	}
	if _, err := d.fonts.Lookup(sel.Family, sel.Style); err != nil {
		return err
	}
	d.fontSel = sel
	return nil
}

// WithFont runs fn with the given font selection and restores the previous
// selection afterwards.  Empty fields of sel are handled as for
// [Document.SetFont].
func (d *Document) WithFont(sel FontSelection, fn func() error) error {
	prev := d.fontSel
	err := d.SetFont(sel)
	if err != nil {
		return err
	}
	defer func() {
		d.fontSel = prev
	}()
	return fn()
}

// WithFontStyle runs fn using the given style of the current font family.
func (d *Document) WithFontStyle(style font.Style, fn func() error) error {
	return d.WithFont(FontSelection{Style: style}, fn)
}

// SetFontSize sets the font size.  Values less than 1 are taken as a
// fraction of the current size; a value of exactly 1 leaves the size
// unchanged.
func (d *Document) SetFontSize(points float64) {
	switch {
	case points <= 0 || points == 1:
		// pass
	case points < 1:
		d.fontSel.Size *= points
	default:
		d.fontSel.Size = points
	}
}

// ScaleFontSize multiplies the font size by factor, e.g. 1.2 for "1.2em".
func (d *Document) ScaleFontSize(factor float64) {
	if factor > 0 {
		d.fontSel.Size *= factor
	}
}

// Face returns the face of the current font.
func (d *Document) Face() (*font.Face, error) {
	return d.fonts.Lookup(d.fontSel.Family, d.fontSel.Style)
}

// LineMetrics returns the line spacing for the current font, where
// lineHeight is a multiple of the font size.
func (d *Document) LineMetrics(lineHeight float64) (font.LineMetrics, error) {
	face, err := d.Face()
	if err != nil {
		return font.LineMetrics{}, err
	}
	return font.CalcLineMetrics(lineHeight, face, d.fontSel.Size), nil
}

// fontResource returns the resource name of face on page p.
// The font is embedded when the document is written.
func (d *Document) fontResource(p *Page, face *font.Face) pdf.Name {
	res := d.fontRes[face]
	if res == nil {
		res = &fontResource{
			ref:  d.store.Alloc(),
			name: pdf.Name(fmt.Sprintf("F%d", len(d.fontRes)+1)),
		}
		d.fontRes[face] = res
	}
	p.resources("Font")[res.name] = res.ref
	return res.name
}
