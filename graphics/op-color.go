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

// SetFillColor sets the colour used for filling paths and glyphs.
//
// This implements the PDF graphics operator "rg".
func (w *Writer) SetFillColor(c RGB) {
	if !w.isValid("SetFillColor", objPage|objText) {
		return
	}
	if w.isSet(StateFillColor) && c == w.FillColor {
		return
	}
	w.FillColor = c
	w.Set |= StateFillColor
	w.writeOp("rg", c.R, c.G, c.B)
}

// SetStrokeColor sets the colour used for stroking paths.
//
// This implements the PDF graphics operator "RG".
func (w *Writer) SetStrokeColor(c RGB) {
	if !w.isValid("SetStrokeColor", objPage|objText) {
		return
	}
	if w.isSet(StateStrokeColor) && c == w.StrokeColor {
		return
	}
	w.StrokeColor = c
	w.Set |= StateStrokeColor
	w.writeOp("RG", c.R, c.G, c.B)
}
