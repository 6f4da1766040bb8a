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

// Metrics is implemented by fonts which can report their line gap.
type Metrics interface {
	// LineGap returns the recommended extra space between lines, at the
	// given font size.
	LineGap(size float64) float64
}

// LineMetrics describes the vertical spacing of a line of text.
type LineMetrics struct {
	// Height is the distance between the baselines of consecutive lines.
	Height float64

	// Leading is the space added to the font size to obtain Height.
	Leading float64

	// PaddingTop is the space above the glyphs of a line.
	PaddingTop float64

	// PaddingBottom is the space below the glyphs of a line.
	PaddingBottom float64

	// FinalGap indicates whether PaddingBottom is also added after the
	// last line of a block.
	FinalGap bool
}

// CalcLineMetrics computes the spacing of lines set in the given font and
// size, where lineHeight is a multiple of the font size.  A lineHeight of 0
// is treated as 1.
//
// Half of the leading is placed above and half below each line, and the
// line gap of the font is added above the line.
func CalcLineMetrics(lineHeight float64, f Metrics, size float64) LineMetrics {
	if lineHeight == 0 {
		lineHeight = 1
	}
	height := lineHeight * size
	leading := height - size
	return LineMetrics{
		Height:        height,
		Leading:       leading,
		PaddingTop:    leading/2 + f.LineGap(size),
		PaddingBottom: leading / 2,
		FinalGap:      false,
	}
}
