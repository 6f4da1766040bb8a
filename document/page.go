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
	"bytes"
	"fmt"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/typeset/graphics"
	"seehuhn.de/go/typeset/pdf"
)

// Page is a page of a document.
type Page struct {
	// Ref is the reference of the page dictionary.
	Ref pdf.Reference

	// ContentRef is the reference of the content stream of the page.
	ContentRef pdf.Reference

	// Dict is the page dictionary.  The same map is held in the store.
	Dict pdf.Dict

	// Size is the media box of the page.
	Size rect.Rect

	Layout  Layout
	Margins Margins

	content bytes.Buffer
	w       *graphics.Writer
}

// Width returns the width of the page.
func (p *Page) Width() float64 {
	return p.Size.Dx()
}

// Height returns the height of the page.
func (p *Page) Height() float64 {
	return p.Size.Dy()
}

// Content returns the (uncompressed) content stream of the page.
func (p *Page) Content() []byte {
	return p.content.Bytes()
}

func (p *Page) resources(category pdf.Name) pdf.Dict {
	res, _ := p.Dict["Resources"].(pdf.Dict)
	if res == nil {
		res = pdf.Dict{}
		p.Dict["Resources"] = res
	}
	dict, _ := res[category].(pdf.Dict)
	if dict == nil {
		dict = pdf.Dict{}
		res[category] = dict
	}
	return dict
}

// PageOptions control the creation of a new page.
// Unset fields are inherited from the current page, or from the document
// defaults if there is no current page.
type PageOptions struct {
	Size    rect.Rect
	Layout  Layout
	Margins *Margins
}

// StartNewPage adds a new page after the current page and makes it the
// current page.  The cursor is placed at the top of the current bounding
// region and the page-creation hook, if any, is called.
func (d *Document) StartNewPage(opt *PageOptions) *Page {
	if opt == nil {
		opt = &PageOptions{}
	}

	size, layout, margins := orient(d.pageSize, d.layout), d.layout, d.margins
	if cur := d.Page(); cur != nil {
		size, layout = cur.Size, cur.Layout
	}
	if !opt.Size.IsZero() {
		size = opt.Size
	}
	if opt.Layout != 0 {
		layout = opt.Layout
	}
	if opt.Margins != nil {
		margins = *opt.Margins
	}
	mediaBox := orient(size, layout)

	p := &Page{
		Ref:        d.store.Alloc(),
		ContentRef: d.store.Alloc(),
		Size:       mediaBox,
		Layout:     layout,
		Margins:    margins,
	}
	p.w = graphics.NewWriter(&p.content)
	d.store.Put(p.ContentRef, &pdf.Stream{
		Dict: pdf.Dict{},
		R:    bytes.NewReader(nil),
	})
	p.Dict = pdf.Dict{
		"Type":      pdf.Name("Page"),
		"Parent":    d.tree.Ref(),
		"MediaBox":  pdf.AsRectangle(mediaBox),
		"Contents":  p.ContentRef,
		"Resources": pdf.Dict{},
	}
	d.store.Put(p.Ref, p.Dict)

	pos := d.pageNumber
	d.tree.Insert(pos, p.Ref)
	d.pages = slices.Insert(d.pages, pos, p)
	d.pageNumber = pos + 1

	d.enterPage(p, true)

	if d.onPageCreate != nil {
		d.onPageCreate(d)
	}
	return p
}

// GoToPage makes page n (1-based) the current page and moves the cursor to
// the top of the current bounding region.
func (d *Document) GoToPage(n int) error {
	if n < 1 || n > len(d.pages) {
		return fmt.Errorf("page %d of %d: %w", n, len(d.pages), ErrNoPage)
	}
	d.pageNumber = n
	d.enterPage(d.pages[n-1], true)
	return nil
}

// enterPage regenerates the margin box for page p.  Stretchy regions are
// moved to the top of their parent, but not above the margin box.
func (d *Document) enterPage(p *Page, resetY bool) {
	d.updateMarginBox(p.Size, p.Margins)

	var chain []*Bounds
	for b := d.bounds; b != nil && b != d.marginBox; b = b.parent {
		chain = append(chain, b)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		b := chain[i]
		if b.stretchy {
			b.top = min(b.parent.AbsoluteTop(), d.marginBox.AbsoluteTop())
			b.depth = 0
		}
	}

	if resetY {
		d.y = d.bounds.AbsoluteTop()
	}
}

func (d *Document) updateMarginBox(mediaBox rect.Rect, m Margins) {
	b := d.marginBox
	b.x = mediaBox.LLx + m.Left
	b.top = mediaBox.URy - m.Top
	b.width = mediaBox.Dx() - m.Left - m.Right
	b.height = mediaBox.Dy() - m.Top - m.Bottom
}

// ensurePage starts a first page, if the document has no current page.
func (d *Document) ensurePage() *Page {
	if p := d.Page(); p != nil {
		return p
	}
	return d.StartNewPage(nil)
}

// Page returns the current page, or nil if there is no current page.
func (d *Document) Page() *Page {
	if d.pageNumber < 1 || d.pageNumber > len(d.pages) {
		return nil
	}
	return d.pages[d.pageNumber-1]
}

// Pages returns the pages of the document, in order.
func (d *Document) Pages() []*Page {
	return slices.Clone(d.pages)
}

// PageNumber returns the 1-based number of the current page, or 0 if the
// document has no current page.
func (d *Document) PageNumber() int {
	return d.pageNumber
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// LastPage reports whether the current page is the last page.
func (d *Document) LastPage() bool {
	return d.pageNumber == len(d.pages)
}

// EmptyPage reports whether nothing has been drawn on the current page.
// The result is false if there is no current page.
func (d *Document) EmptyPage() bool {
	p := d.Page()
	return p != nil && p.content.Len() == 0
}

// PageSide is the side a page is facing in a bound document.
type PageSide int

// These are the two sides of a sheet.
const (
	Recto PageSide = iota
	Verso
)

func (s PageSide) String() string {
	if s == Recto {
		return "recto"
	}
	return "verso"
}

// PageSide returns the side page n is facing.  Odd pages are recto pages.
// If n is 0, the current page is used.
func (d *Document) PageSide(n int) PageSide {
	if n == 0 {
		n = d.pageNumber
	}
	if n%2 == 1 {
		return Recto
	}
	return Verso
}

// IsRecto reports whether page n is a recto page.
// If n is 0, the current page is used.
func (d *Document) IsRecto(n int) bool {
	return d.PageSide(n) == Recto
}

// IsVerso reports whether page n is a verso page.
// If n is 0, the current page is used.
func (d *Document) IsVerso(n int) bool {
	return d.PageSide(n) == Verso
}

// PageWidth returns the width of the current page, or of the default page
// size if there is no current page.
func (d *Document) PageWidth() float64 {
	if p := d.Page(); p != nil {
		return p.Width()
	}
	return orient(d.pageSize, d.layout).Dx()
}

// PageHeight returns the height of the current page, or of the default
// page size if there is no current page.
func (d *Document) PageHeight() float64 {
	if p := d.Page(); p != nil {
		return p.Height()
	}
	return orient(d.pageSize, d.layout).Dy()
}

// PageMargins returns the margins of the current page, or the margins for
// new pages if there is no current page.
func (d *Document) PageMargins() Margins {
	if p := d.Page(); p != nil {
		return p.Margins
	}
	return d.margins
}

// SetPageMargins sets the margins used for subsequently created pages.
func (d *Document) SetPageMargins(m Margins) {
	d.margins = m
}

// syncContent stores the content stream of p in the object store.
func (d *Document) syncContent(p *Page) error {
	if p.w.Err != nil {
		return fmt.Errorf("page content: %w", p.w.Err)
	}
	data := bytes.Clone(p.content.Bytes())
	var stm *pdf.Stream
	if d.compress && len(data) > 0 {
		stm = pdf.FlateStream(nil, data)
	} else {
		stm = &pdf.Stream{Dict: pdf.Dict{}, R: bytes.NewReader(data)}
	}
	d.store.Put(p.ContentRef, stm)
	return nil
}
