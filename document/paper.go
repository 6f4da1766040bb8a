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

	"seehuhn.de/go/geom/rect"
)

// Default paper sizes, in portrait orientation.
var (
	A4     = rect.Rect{URx: 595.276, URy: 841.890}
	A5     = rect.Rect{URx: 420.945, URy: 595.276}
	Letter = rect.Rect{URx: 612, URy: 792}
	Legal  = rect.Rect{URx: 612, URy: 1008}
)

// Layout is the orientation of a page.
// The zero value means that the layout is inherited.
type Layout int

// These are the supported page layouts.
const (
	Portrait Layout = iota + 1
	Landscape
)

func (l Layout) String() string {
	switch l {
	case 0:
		return "inherit"
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// orient rotates the paper size by 90 degrees, if needed, to match the
// layout.
func orient(paper rect.Rect, layout Layout) rect.Rect {
	w, h := paper.Dx(), paper.Dy()
	if layout == Landscape && w < h || layout == Portrait && w > h {
		w, h = h, w
	}
	return rect.Rect{URx: w, URy: h}
}

// Margins gives the distances between the page edges and the writable
// region of a page.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// UniformMargins returns margins which are the same on all four sides.
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}
