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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/typeset/pagetree"
	"seehuhn.de/go/typeset/pdf"
)

// PerformDiscretely runs fn with the page-creation hook detached.  The hook
// is re-attached afterwards, also if fn fails or panics.
func (d *Document) PerformDiscretely(fn func() error) error {
	saved := d.onPageCreate
	d.onPageCreate = nil
	defer func() {
		d.onPageCreate = saved
	}()
	return fn()
}

// StartNewPageDiscretely starts a new page without calling the
// page-creation hook.
func (d *Document) StartNewPageDiscretely(opt *PageOptions) *Page {
	var p *Page
	d.PerformDiscretely(func() error {
		p = d.StartNewPage(opt)
		return nil
	})
	return p
}

// DeletePage removes the current page, together with its content stream,
// from the document.  Afterwards the previous page is the current page.
// If the first page was deleted, the document has no current page.
//
// Objects in the store which are no longer reachable are removed.
func (d *Document) DeletePage() error {
	return d.deletePage()
}

// deletePage removes the current page.  Objects reachable from keep are
// retained even if no page refers to them.
func (d *Document) deletePage(keep ...pdf.Reference) error {
	p := d.Page()
	if p == nil {
		return ErrNoPage
	}
	pg := d.pageNumber

	d.store.Delete(p.Ref, p.ContentRef)
	err := d.tree.Remove(p.Ref)
	if err != nil {
		return err
	}
	d.pages = slices.Delete(d.pages, pg-1, pg)

	if pg > 1 {
		d.GoToPage(pg - 1)
	} else {
		d.pageNumber = 0
		d.updateMarginBox(orient(d.pageSize, d.layout), d.margins)
		d.y = d.bounds.AbsoluteTop()
	}

	d.store.Prune(keep...)
	return nil
}

// ExternalPage identifies a page in another object container.
type ExternalPage struct {
	// Source holds the page and all objects it refers to.
	Source pdf.Getter

	// Page is the reference of the page dictionary in Source.
	Page pdf.Reference
}

// ExternalPage returns page n (1-based) of d, for import into another
// document.  Fonts used so far are embedded, so that the page is complete.
func (d *Document) ExternalPage(n int) (*ExternalPage, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("page %d of %d: %w", n, len(d.pages), ErrNoPage)
	}
	p := d.pages[n-1]
	err := d.syncContent(p)
	if err != nil {
		return nil, err
	}
	err = d.embedFonts()
	if err != nil {
		return nil, err
	}
	return &ExternalPage{Source: d.store, Page: p.Ref}, nil
}

// ExternalPageFromFile returns page n (1-based) of a PDF file, for import
// into a document.  The reader must stay open until the import is done.
func ExternalPageFromFile(r *pdf.Reader, n int) (*ExternalPage, error) {
	root, ok := r.Catalog()["Pages"].(pdf.Reference)
	if !ok {
		return nil, fmt.Errorf("page tree: %w", pdf.ErrNotFound)
	}
	pages, err := pagetree.FindPages(r, root)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(pages) {
		return nil, fmt.Errorf("page %d of %d: %w", n, len(pages), ErrNoPage)
	}
	return &ExternalPage{Source: r, Page: pages[n-1]}, nil
}

// ImportOptions control [Document.ImportPage].
type ImportOptions struct {
	// Replace deletes the current page before the import.
	Replace bool

	// NoAdvance keeps the imported page as the current page.  By default,
	// the document continues on the page after the imported one, which is
	// created if necessary.
	NoAdvance bool
}

// ImportPage inserts a copy of an external page after the current page.
// The page-creation hook is not called for the imported page.
//
// The imported page keeps its own size.  Content stream compression is
// disabled for the rest of the document.
func (d *Document) ImportPage(src *ExternalPage, opt *ImportOptions) error {
	if opt == nil {
		opt = &ImportOptions{}
	}

	prevSize, prevLayout := orient(d.pageSize, d.layout), d.layout
	if cur := d.Page(); cur != nil {
		prevSize, prevLayout = cur.Size, cur.Layout
	}

	form, mediaBox, err := d.copyPageAsForm(src)
	if err != nil {
		return err
	}
	d.compress = false

	if opt.Replace && d.Page() != nil {
		err := d.deletePage(form)
		if err != nil {
			return err
		}
	}

	layout := Portrait
	if mediaBox.Dx() > mediaBox.Dy() {
		layout = Landscape
	}
	p := d.StartNewPageDiscretely(&PageOptions{
		Size:   rect.Rect{URx: mediaBox.Dx(), URy: mediaBox.Dy()},
		Layout: layout,
	})
	d.nextForm++
	name := pdf.Name(fmt.Sprintf("Fm%d", d.nextForm))
	p.resources("XObject")[name] = form
	d.drawXObject(p, name, matrix.Translate(-mediaBox.LLx, -mediaBox.LLy))

	if opt.NoAdvance {
		return nil
	}
	if d.LastPage() {
		d.StartNewPage(&PageOptions{Size: prevSize, Layout: prevLayout})
		return nil
	}
	return d.GoToPage(d.pageNumber + 1)
}

// copyPageAsForm copies an external page into the store, as a form
// XObject.
func (d *Document) copyPageAsForm(src *ExternalPage) (pdf.Reference, rect.Rect, error) {
	r := src.Source
	pageDict, err := pdf.GetDict(r, src.Page)
	if err != nil {
		return 0, rect.Rect{}, pdf.Wrap(err, "imported page")
	}
	if pageDict == nil {
		return 0, rect.Rect{}, fmt.Errorf("imported page %s: %w", src.Page, pdf.ErrNotFound)
	}

	mbObj, err := inherited(r, pageDict, "MediaBox")
	if err != nil {
		return 0, rect.Rect{}, err
	}
	mediaBox, err := pdf.GetRectangle(r, mbObj)
	if err != nil {
		return 0, rect.Rect{}, pdf.Wrap(err, "MediaBox")
	}
	if mediaBox.IsZero() {
		mediaBox = A4
	}

	content, err := pageContent(r, pageDict["Contents"])
	if err != nil {
		return 0, rect.Rect{}, pdf.Wrap(err, "imported page contents")
	}

	resObj, err := inherited(r, pageDict, "Resources")
	if err != nil {
		return 0, rect.Rect{}, err
	}
	copier := pdf.NewCopier(d.store, r)
	formDict := pdf.Dict{
		"Type":    pdf.Name("XObject"),
		"Subtype": pdf.Name("Form"),
		"BBox":    pdf.AsRectangle(mediaBox),
	}
	if resObj != nil {
		res, err := copier.Copy(resObj)
		if err != nil {
			return 0, rect.Rect{}, pdf.Wrap(err, "imported page resources")
		}
		formDict["Resources"] = res
	}

	ref := d.store.Alloc()
	err = d.store.Put(ref, &pdf.Stream{
		Dict: formDict,
		R:    bytes.NewReader(content),
	})
	if err != nil {
		return 0, rect.Rect{}, err
	}
	return ref, mediaBox, nil
}

// inherited looks up an inheritable page attribute, following the /Parent
// links of the page tree.
func inherited(r pdf.Getter, dict pdf.Dict, key pdf.Name) (pdf.Object, error) {
	for i := 0; i < 32 && dict != nil; i++ {
		if val, ok := dict[key]; ok {
			return val, nil
		}
		parent, err := pdf.GetDict(r, dict["Parent"])
		if err != nil {
			return nil, pdf.Wrap(err, "Parent")
		}
		dict = parent
	}
	return nil, nil
}

// pageContent returns the decoded content of a page.  Multiple content
// streams are concatenated.
func pageContent(r pdf.Getter, obj pdf.Object) ([]byte, error) {
	obj, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	var streams pdf.Array
	switch x := obj.(type) {
	case nil:
		return nil, nil
	case *pdf.Stream:
		streams = pdf.Array{x}
	case pdf.Array:
		streams = x
	default:
		return nil, &pdf.MalformedFileError{
			Err: fmt.Errorf("invalid /Contents %s", pdf.Format(obj)),
		}
	}

	buf := &bytes.Buffer{}
	for _, s := range streams {
		stm, err := pdf.GetStream(r, s)
		if err != nil {
			return nil, err
		}
		data, err := pdf.DecodeStream(r, stm)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
