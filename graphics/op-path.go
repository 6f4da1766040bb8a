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

// The path construction and path painting operators are defined in tables
// 58, 59 and 60 of ISO 32000-2:2020.

// MoveTo starts a new subpath at the given point.
//
// This implements the PDF graphics operator "m".
func (w *Writer) MoveTo(x, y float64) {
	if !w.isValid("MoveTo", objPage|objPath) {
		return
	}
	w.currentObject = objPath
	w.writeOp("m", x, y)
}

// LineTo appends a straight line segment to the current subpath.
//
// This implements the PDF graphics operator "l".
func (w *Writer) LineTo(x, y float64) {
	if !w.isValid("LineTo", objPath) {
		return
	}
	w.writeOp("l", x, y)
}

// CurveTo appends a cubic Bézier curve to the current subpath, starting
// at the current point.  The curve ends at (x3, y3).
//
// This implements the PDF graphics operator "c".
func (w *Writer) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !w.isValid("CurveTo", objPath) {
		return
	}
	w.writeOp("c", x1, y1, x2, y2, x3, y3)
}

// ClosePath closes the current subpath.
//
// This implements the PDF graphics operator "h".
func (w *Writer) ClosePath() {
	if !w.isValid("ClosePath", objPath) {
		return
	}
	w.writeOp("h")
}

// Rectangle appends a rectangle with lower left corner (x, y) to the
// current path, as a closed subpath.
//
// This implements the PDF graphics operator "re".
func (w *Writer) Rectangle(x, y, width, height float64) {
	if !w.isValid("Rectangle", objPage|objPath) {
		return
	}
	w.currentObject = objPath
	w.writeOp("re", x, y, width, height)
}

// Stroke strokes the current path.
//
// This implements the PDF graphics operator "S".
func (w *Writer) Stroke() {
	w.paint("Stroke", "S")
}

// Fill fills the current path, using the nonzero winding number rule.
//
// This implements the PDF graphics operator "f".
func (w *Writer) Fill() {
	w.paint("Fill", "f")
}

// FillAndStroke fills and then strokes the current path.
//
// This implements the PDF graphics operator "B".
func (w *Writer) FillAndStroke() {
	w.paint("FillAndStroke", "B")
}

func (w *Writer) paint(cmd, op string) {
	if !w.isValid(cmd, objPath) {
		return
	}
	w.currentObject = objPage
	w.writeOp(op)
}
