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
	"golang.org/x/exp/slices"

	"seehuhn.de/go/typeset/pdf"
)

// RGB is a colour in the DeviceRGB colour space, with components in the
// range 0 to 1.
type RGB struct {
	R, G, B float64
}

// TextRenderingMode determines how glyphs are painted.
type TextRenderingMode int

// The text rendering modes, as used by the "Tr" operator.
const (
	TextFill TextRenderingMode = iota
	TextStroke
	TextFillStroke
	TextInvisible
)

// State holds the graphics state parameters tracked by a [Writer].
type State struct {
	FillColor   RGB
	StrokeColor RGB
	LineWidth   float64
	DashPattern []float64
	DashPhase   float64

	Font              pdf.Name
	FontSize          float64
	TextRenderingMode TextRenderingMode

	// Set records which of the parameters have a known value.
	Set StateBits
}

// StateBits is a bit mask for the fields of [State].
type StateBits uint

// Possible values for StateBits.
const (
	StateFillColor StateBits = 1 << iota
	StateStrokeColor
	StateLineWidth
	StateDash
	StateFont
	StateTextRenderingMode
)

// NewState returns the state at the start of a content stream.  All
// parameters except the text font have well-defined initial values.
func NewState() State {
	return State{
		LineWidth: 1,
		Set: StateFillColor | StateStrokeColor | StateLineWidth |
			StateDash | StateTextRenderingMode,
	}
}

// Clone returns a copy of s which does not share the dash pattern.
func (s State) Clone() State {
	s.DashPattern = slices.Clone(s.DashPattern)
	return s
}

func (s State) isSet(bits StateBits) bool {
	return s.Set&bits == bits
}

// Forget marks the given parameters as unknown, so that the next change
// is written even if the value seems to be unchanged.  This is needed
// after content with an unknown effect on the graphics state.
func (w *Writer) Forget(bits StateBits) {
	w.Set &^= bits
}
