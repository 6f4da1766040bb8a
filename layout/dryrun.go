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

// Extent is the vertical space taken by a layout procedure.
type Extent struct {
	// Height is the total height, counting every whole page as the height
	// of the current bounding region of the real document.
	Height float64

	// WholePages is the number of page breaks which occurred.
	WholePages int

	// PartialHeight is the height used on the last page.
	PartialHeight float64
}

// Placement describes where a layout procedure is run.
// During a dry run, the zero value is passed.
type Placement struct {
	// Height is the measured height of the content.
	Height float64

	// NewPage is set if a page break was inserted before the content.
	NewPage bool
}

// Proc is a layout procedure.  It draws into doc, which may be a scratch
// document, and returns a result of type T.
type Proc[T any] func(doc *document.Document, at Placement) (T, error)

// DryRun measures the height of the content produced by proc, without
// changing doc.
//
// The procedure is run on a new page of the scratch document for doc,
// using the current font of doc.  Positive horizontal insets active in the
// current bounding region of doc are reproduced in the scratch document,
// so that text wraps in the same way.  All pages created in the scratch
// document are deleted again before DryRun returns.
func DryRun[T any](pool *ScratchPool, doc *document.Document, proc Proc[T]) (Extent, error) {
	scratch, err := pool.Get(doc)
	if err != nil {
		return Extent{}, err
	}
	defer func() {
		for scratch.PageCount() > 0 {
			scratch.GoToPage(scratch.PageCount())
			scratch.DeletePage()
		}
	}()

	var opt *document.PageOptions
	if p := doc.Page(); p != nil {
		margins := p.Margins
		opt = &document.PageOptions{
			Size:    p.Size,
			Layout:  p.Layout,
			Margins: &margins,
		}
	}
	scratch.StartNewPage(opt)
	startPage := scratch.PageNumber()
	startY := scratch.Y()

	bounds := doc.Bounds()
	if left := bounds.TotalLeftPadding(); left > 0 {
		release := scratch.Bounds().PushInset(left, 0)
		defer release()
	}
	if right := bounds.TotalRightPadding(); right > 0 {
		release := scratch.Bounds().PushInset(0, right)
		defer release()
	}

	err = scratch.WithFont(doc.FontSelection(), func() error {
		_, err := proc(scratch, Placement{})
		return err
	})
	if err != nil {
		return Extent{}, err
	}

	ext := Extent{
		WholePages:    scratch.PageNumber() - startPage,
		PartialHeight: min(doc.EffectivePageHeight(), startY-scratch.Y()),
	}
	ext.Height = float64(ext.WholePages)*bounds.Height() + ext.PartialHeight
	return ext, nil
}
