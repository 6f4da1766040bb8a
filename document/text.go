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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"seehuhn.de/go/typeset/font"
	"seehuhn.de/go/typeset/graphics"
	"seehuhn.de/go/typeset/pdf"
)

// Transform is a case transformation applied to text before layout.
type Transform int

// These are the supported text transformations.
const (
	NoTransform Transform = iota
	Uppercase
	Lowercase
)

// TransformText applies the transformation t to s.
func TransformText(s string, t Transform) string {
	switch t {
	case Uppercase:
		return cases.Upper(language.Und).String(s)
	case Lowercase:
		return cases.Lower(language.Und).String(s)
	default:
		return s
	}
}

// TextRenderingMode determines how glyphs are painted.
type TextRenderingMode = graphics.TextRenderingMode

// These are the commonly used text rendering modes.
const (
	FillText       = graphics.TextFill
	StrokeText     = graphics.TextStroke
	FillStrokeText = graphics.TextFillStroke
	InvisibleText  = graphics.TextInvisible
)

// TextRenderingMode returns the current text rendering mode.
func (d *Document) TextRenderingMode() TextRenderingMode {
	return d.textMode
}

// WithTextRenderingMode runs fn with the given text rendering mode.
func (d *Document) WithTextRenderingMode(mode TextRenderingMode, fn func() error) error {
	prev := d.textMode
	d.textMode = mode
	defer func() {
		d.textMode = prev
	}()
	return fn()
}

// TextOptions control the layout of text.
type TextOptions struct {
	// LineHeight is the line height as a multiple of the font size.
	// The default is 1.
	LineHeight float64

	// Color, if set, is used instead of the current fill color.
	Color *Color

	Transform Transform
}

// Text sets s in the current font, wrapped to the width of the current
// bounding region, starting at the cursor.  Newlines start new paragraphs.
//
// Every line takes up the top padding, the font size and, except for the
// last line, the bottom padding of the line metrics.  If a line does not
// fit below the cursor, the text continues at the top of the next page.
func (d *Document) Text(s string, opt *TextOptions) error {
	if opt == nil {
		opt = &TextOptions{}
	}
	face, err := d.Face()
	if err != nil {
		return err
	}
	size := d.fontSel.Size
	m := font.CalcLineMetrics(opt.LineHeight, face, size)

	s = TransformText(s, opt.Transform)
	var lines []string
	for _, par := range strings.Split(s, "\n") {
		lines = append(lines, wrap(face, size, par, d.bounds.Width())...)
	}

	// position of the baseline below the top of the glyph box
	asc, desc := face.Ascender(size), face.Descender(size)
	baseline := size
	if asc-desc > 0 {
		baseline = size * asc / (asc - desc)
	}

	d.ensurePage()
	for i, line := range lines {
		if m.PaddingTop+size > d.Cursor() && !d.AtPageTop() {
			d.MovePastBottom()
		}
		d.MoveDown(m.PaddingTop)
		d.showText(face, size, d.bounds.AbsoluteLeft(), d.y-baseline, line, opt.Color)
		d.MoveDown(size)
		if i < len(lines)-1 || m.FinalGap {
			d.MoveDown(m.PaddingBottom)
		}
	}
	return nil
}

func (d *Document) showText(face *font.Face, size, x, y float64, line string, c *Color) {
	p := d.ensurePage()
	if line == "" {
		return
	}
	name := d.fontResource(p, face)
	w := p.w

	w.TextSetRenderingMode(d.textMode)
	if c != nil {
		w.PushGraphicsState()
		w.SetFillColor(graphics.RGB(*c))
	} else {
		w.SetFillColor(graphics.RGB(d.fillColor))
	}
	w.TextBegin()
	w.TextSetFont(name, size)
	w.TextFirstLine(x, y)
	w.TextShow(pdf.String(face.Encode(line)))
	w.TextEnd()
	if c != nil {
		w.PopGraphicsState()
	}
}

// TextHeight returns the vertical space Text would use for s, if no page
// break occurs.
func (d *Document) TextHeight(s string, opt *TextOptions) (float64, error) {
	if opt == nil {
		opt = &TextOptions{}
	}
	face, err := d.Face()
	if err != nil {
		return 0, err
	}
	size := d.fontSel.Size
	m := font.CalcLineMetrics(opt.LineHeight, face, size)
	n := 0
	for _, par := range strings.Split(TransformText(s, opt.Transform), "\n") {
		n += len(wrap(face, size, par, d.bounds.Width()))
	}
	if n == 0 {
		return 0, nil
	}
	h := float64(n)*(m.PaddingTop+size) + float64(n-1)*m.PaddingBottom
	if m.FinalGap {
		h += m.PaddingBottom
	}
	return h, nil
}

// wrap breaks a paragraph into lines of at most the given width.
// Words which are wider than a line are placed on a line of their own.
func wrap(face *font.Face, size float64, par string, width float64) []string {
	words := strings.Fields(par)
	if len(words) == 0 {
		return []string{""}
	}
	space := face.Width(" ", size)

	var lines []string
	cur := words[0]
	curWidth := face.Width(cur, size)
	for _, word := range words[1:] {
		ww := face.Width(word, size)
		if curWidth+space+ww <= width {
			cur += " " + word
			curWidth += space + ww
			continue
		}
		lines = append(lines, cur)
		cur, curWidth = word, ww
	}
	return append(lines, cur)
}
