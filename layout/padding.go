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

package layout

import (
	"seehuhn.de/go/typeset/document"
)

// Padding gives the space around a block of content.
// Negative bottom padding moves the cursor back up after the block.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns a padding which is the same on all four sides.
func Uniform(p float64) *Padding {
	return &Padding{Top: p, Right: p, Bottom: p, Left: p}
}

// PadBox runs body inside a padded box.
//
// The cursor is moved down by the top padding, and the current bounding
// region is narrowed by the left and right padding while body runs.  The
// horizontal padding is removed again on every exit path, including errors
// and panics in body.
//
// After body returns, the bottom padding is applied.  If the remaining
// space in the current region is smaller than the bottom padding, the
// document continues at the top of the next page instead.  A negative
// bottom padding never moves the cursor above the top of the reference
// region.
//
// If p is nil, body is run without any padding.
func PadBox(doc *document.Document, p *Padding, body func() error) error {
	if p == nil {
		return body()
	}

	doc.MoveDown(p.Top)
	release := doc.Bounds().PushInset(p.Left, p.Right)
	defer release()

	err := body()
	if err != nil {
		return err
	}

	ref := doc.ReferenceBounds()
	if p.Bottom < 0 {
		if top := ref.AbsoluteTop(); doc.Y()-p.Bottom > top {
			doc.SetY(top)
		} else {
			doc.MoveDown(p.Bottom)
		}
	} else if doc.Cursor() < p.Bottom {
		ref.MovePastBottom()
	} else {
		doc.MoveDown(p.Bottom)
	}
	return nil
}
