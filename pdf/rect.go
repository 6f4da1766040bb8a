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

package pdf

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
)

// AsRectangle converts a rectangle into a PDF array of the form
// [llx lly urx ury].
func AsRectangle(r rect.Rect) Array {
	return Array{
		Number(r.LLx), Number(r.LLy), Number(r.URx), Number(r.URy),
	}
}

// Number converts a float64 into a PDF number, using an [Integer] for
// whole numbers.
func Number(x float64) Object {
	if i := Integer(x); float64(i) == x {
		return i
	}
	return Real(x)
}

// GetRectangle resolves obj and interprets it as a rectangle.
// The corners are normalized, so that LLx <= URx and LLy <= URy.
func GetRectangle(r Getter, obj Object) (rect.Rect, error) {
	a, err := GetArray(r, obj)
	if err != nil {
		return rect.Rect{}, err
	}
	if len(a) != 4 {
		return rect.Rect{}, &MalformedFileError{
			Err: fmt.Errorf("rectangle with %d elements", len(a)),
		}
	}
	var v [4]float64
	for i, elem := range a {
		v[i], err = GetNumber(r, elem)
		if err != nil {
			return rect.Rect{}, err
		}
	}
	res := rect.Rect{
		LLx: min(v[0], v[2]),
		LLy: min(v[1], v[3]),
		URx: max(v[0], v[2]),
		URy: max(v[1], v[3]),
	}
	return res, nil
}
