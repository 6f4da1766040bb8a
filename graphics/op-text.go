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

package graphics

import (
	"bytes"
	"errors"

	"seehuhn.de/go/typeset/pdf"
)

// TextBegin starts a text object.
//
// This implements the PDF graphics operator "BT".
func (w *Writer) TextBegin() {
	if !w.isValid("TextBegin", objPage) {
		return
	}
	w.currentObject = objText
	w.nesting = append(w.nesting, pairTypeBT)
	w.writeOp("BT")
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (w *Writer) TextEnd() {
	if !w.isValid("TextEnd", objText) {
		return
	}
	if len(w.nesting) == 0 || w.nesting[len(w.nesting)-1] != pairTypeBT {
		w.Err = errors.New("TextEnd: no matching TextBegin")
		return
	}
	w.nesting = w.nesting[:len(w.nesting)-1]
	w.currentObject = objPage
	w.writeOp("ET")
}

// TextSetFont sets the font and the font size.  The font is given by its
// name in the font resource dictionary.
//
// This implements the PDF graphics operator "Tf".
func (w *Writer) TextSetFont(name pdf.Name, size float64) {
	if !w.isValid("TextSetFont", objPage|objText) {
		return
	}
	if w.isSet(StateFont) && w.Font == name && nearlyEqual(w.FontSize, size) {
		return
	}
	w.Font = name
	w.FontSize = size
	w.Set |= StateFont
	w.writeNameOp(name, "Tf", size)
}

// TextSetRenderingMode sets the text rendering mode.
//
// This implements the PDF graphics operator "Tr".
func (w *Writer) TextSetRenderingMode(mode TextRenderingMode) {
	if !w.isValid("TextSetRenderingMode", objPage|objText) {
		return
	}
	if w.isSet(StateTextRenderingMode) && w.TextRenderingMode == mode {
		return
	}
	w.TextRenderingMode = mode
	w.Set |= StateTextRenderingMode
	w.writeOp("Tr", float64(mode))
}

// TextFirstLine moves to the start of the next line, offset by (x, y) from
// the start of the current line.  At the start of a text object, this
// gives the absolute position of the first glyph.
//
// This implements the PDF graphics operator "Td".
func (w *Writer) TextFirstLine(x, y float64) {
	if !w.isValid("TextFirstLine", objText) {
		return
	}
	w.writeOp("Td", x, y)
}

// TextShow shows an encoded string.
//
// This implements the PDF graphics operator "Tj".
func (w *Writer) TextShow(s pdf.String) {
	if !w.isValid("TextShow", objText) {
		return
	}
	if !w.isSet(StateFont) {
		w.Err = errors.New("TextShow: no font set")
		return
	}
	buf := &bytes.Buffer{}
	w.Err = s.PDF(buf)
	if w.Err != nil {
		return
	}
	buf.WriteString(" Tj\n")
	_, w.Err = w.Content.Write(buf.Bytes())
}

// writeNameOp writes an operator with a name as the first operand.
func (w *Writer) writeNameOp(name pdf.Name, op string, args ...float64) {
	buf := &bytes.Buffer{}
	w.Err = name.PDF(buf)
	if w.Err != nil {
		return
	}
	buf.WriteByte(' ')
	_, w.Err = w.Content.Write(buf.Bytes())
	if w.Err != nil {
		return
	}
	w.writeOp(op, args...)
}
