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

// Y returns the absolute vertical position of the cursor.
func (d *Document) Y() float64 {
	return d.y
}

// SetY moves the cursor to the absolute vertical position y.
func (d *Document) SetY(y float64) {
	d.y = y
	d.bounds.noteDepth()
}

// Cursor returns the space between the cursor and the bottom of the
// current bounding region.
func (d *Document) Cursor() float64 {
	return d.y - d.bounds.AbsoluteBottom()
}

// AtPageTop reports whether the cursor is at the top of the margin box.
func (d *Document) AtPageTop() bool {
	return d.y == d.marginBox.AbsoluteTop()
}

// MoveDown moves the cursor down by n.  Negative values move the cursor up.
// Moving by zero has no effect.
func (d *Document) MoveDown(n float64) {
	if n == 0 {
		return
	}
	d.SetY(d.y - n)
}

// MoveUp moves the cursor up by n.  Moving by zero has no effect.
func (d *Document) MoveUp(n float64) {
	if n == 0 {
		return
	}
	d.SetY(d.y + n)
}

// MoveCursorTo places the cursor at the given distance above the bottom of
// the current bounding region.
func (d *Document) MoveCursorTo(cursor float64) {
	d.SetY(cursor + d.bounds.AbsoluteBottom())
}

// MovePastBottom continues on the next page: if the current page is the
// last page, a new page is started, otherwise the next page becomes the
// current page.  In both cases the cursor is placed at the top of the
// current bounding region.
func (d *Document) MovePastBottom() {
	if d.pageNumber == len(d.pages) {
		d.StartNewPage(nil)
	} else {
		d.GoToPage(d.pageNumber + 1)
	}
}

// Pad moves the cursor down by top, runs fn, and then moves the cursor
// down by bottom.  The bottom padding is skipped if fn fails.
func (d *Document) Pad(top, bottom float64, fn func() error) error {
	d.MoveDown(top)
	err := fn()
	if err != nil {
		return err
	}
	d.MoveDown(bottom)
	return nil
}
