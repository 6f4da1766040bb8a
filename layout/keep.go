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

// KeepTogether runs proc so that its content is not split across pages,
// where this is possible.
//
// The content is first measured using [DryRun].  If it does not fit below
// the cursor, a new page is started before proc is run for real.  No page
// break is inserted if the cursor already is at the top of a page, or if
// the content is taller than a page.  The measured height and the page
// break decision are passed to proc.
func KeepTogether[T any](pool *ScratchPool, doc *document.Document, proc Proc[T]) (T, error) {
	available := doc.Cursor()
	ext, err := DryRun(pool, doc, proc)
	if err != nil {
		var zero T
		return zero, err
	}

	at := Placement{Height: ext.Height}
	if ext.Height > available && !doc.AtPageTop() && ext.Height <= doc.EffectivePageHeight() {
		doc.StartNewPage(nil)
		at.NewPage = true
	}
	return proc(doc, at)
}

// KeepTogetherIf is like [KeepTogether] if verdict is true.
// Otherwise proc is run directly, with a zero Placement.
func KeepTogetherIf[T any](pool *ScratchPool, doc *document.Document, verdict bool, proc Proc[T]) (T, error) {
	if !verdict {
		return proc(doc, Placement{})
	}
	return KeepTogether(pool, doc, proc)
}

// GroupIf keeps the content drawn by fn on one page, if verdict is true.
func GroupIf(pool *ScratchPool, doc *document.Document, verdict bool, fn func(doc *document.Document) error) error {
	_, err := KeepTogetherIf(pool, doc, verdict, func(doc *document.Document, _ Placement) (struct{}, error) {
		return struct{}{}, fn(doc)
	})
	return err
}
