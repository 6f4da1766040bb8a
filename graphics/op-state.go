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
	"errors"
	"fmt"

	"seehuhn.de/go/geom/matrix"
)

// PushGraphicsState saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (w *Writer) PushGraphicsState() {
	if !w.isValid("PushGraphicsState", objPage) {
		return
	}
	w.nesting = append(w.nesting, pairTypeQ)
	w.stack = append(w.stack, w.State.Clone())
	w.writeOp("q")
}

// PopGraphicsState restores the previous graphics state.
//
// This implements the PDF graphics operator "Q".
func (w *Writer) PopGraphicsState() {
	if !w.isValid("PopGraphicsState", objPage) {
		return
	}
	if len(w.nesting) == 0 || w.nesting[len(w.nesting)-1] != pairTypeQ {
		w.Err = errors.New("PopGraphicsState: no matching PushGraphicsState")
		return
	}
	w.nesting = w.nesting[:len(w.nesting)-1]

	n := len(w.stack) - 1
	w.State = w.stack[n]
	w.stack = w.stack[:n]
	w.writeOp("Q")
}

// Transform modifies the current transformation matrix, so that m is
// applied to user coordinates first.
//
// This implements the PDF graphics operator "cm".
func (w *Writer) Transform(m matrix.Matrix) {
	if !w.isValid("Transform", objPage) {
		return
	}
	w.writeOp("cm", m[0], m[1], m[2], m[3], m[4], m[5])
}

// SetLineWidth sets the line width.
//
// This implements the PDF graphics operator "w".
func (w *Writer) SetLineWidth(width float64) {
	if !w.isValid("SetLineWidth", objPage|objText) {
		return
	}
	if width < 0 {
		w.Err = fmt.Errorf("invalid line width %g", width)
		return
	}
	if w.isSet(StateLineWidth) && nearlyEqual(width, w.LineWidth) {
		return
	}
	w.LineWidth = width
	w.Set |= StateLineWidth
	w.writeOp("w", width)
}

// SetDashPattern sets the line dash pattern.  An empty pattern gives solid
// lines.
//
// This implements the PDF graphics operator "d".
func (w *Writer) SetDashPattern(phase float64, pattern ...float64) {
	if !w.isValid("SetDashPattern", objPage|objText) {
		return
	}
	if w.isSet(StateDash) &&
		sliceNearlyEqual(pattern, w.DashPattern) &&
		nearlyEqual(phase, w.DashPhase) {
		return
	}
	w.DashPattern = pattern
	w.DashPhase = phase
	w.Set |= StateDash

	buf := []byte{'['}
	for i, x := range pattern {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, format(x)...)
	}
	buf = append(buf, "] "...)
	buf = append(buf, format(phase)...)
	buf = append(buf, " d\n"...)
	_, w.Err = w.Content.Write(buf)
}
