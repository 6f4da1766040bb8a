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
	"io"
	"strings"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/typeset/font"
	"seehuhn.de/go/typeset/pdf"
)

// SetInfo sets an entry of the document information dictionary, for
// example "Title" or "Author".
func (d *Document) SetInfo(key pdf.Name, value string) {
	d.store.Info()[key] = pdf.String(value)
}

// DestTop returns a destination which shows the top of page n, keeping
// the zoom factor of the viewer.  If n is 0, the current page is used.
func (d *Document) DestTop(n int) (pdf.Array, error) {
	if n == 0 {
		n = d.pageNumber
	}
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("page %d of %d: %w", n, len(d.pages), ErrNoPage)
	}
	p := d.pages[n-1]
	return pdf.Array{
		p.Ref, pdf.Name("XYZ"), pdf.Integer(0), pdf.Number(p.Size.URy), nil,
	}, nil
}

// Write writes the document as a PDF file.  Fonts used on the pages are
// embedded, an XMP metadata stream is generated from the document
// information dictionary, and unreachable objects are removed from the
// store.
//
// A document without pages gets a single empty page, since PDF files must
// have at least one page.
func (d *Document) Write(w io.Writer) error {
	if len(d.pages) == 0 {
		d.StartNewPageDiscretely(nil)
	}
	for _, p := range d.pages {
		err := d.syncContent(p)
		if err != nil {
			return err
		}
	}

	err := d.embedFonts()
	if err != nil {
		return err
	}
	err = d.writeMetadata()
	if err != nil {
		return err
	}
	if d.intent {
		err = d.writeOutputIntent()
		if err != nil {
			return err
		}
	}
	d.store.Prune()

	return d.store.Write(w)
}

// embedFonts embeds all fonts which are used on a page but not yet
// stored.
func (d *Document) embedFonts() error {
	type usedFont struct {
		face *font.Face
		res  *fontResource
	}
	var used []usedFont
	reachable := d.store.Reachable()
	for face, res := range d.fontRes {
		if reachable[res.ref] && !d.store.Has(res.ref) {
			used = append(used, usedFont{face, res})
		}
	}
	slices.SortFunc(used, func(a, b usedFont) int {
		return strings.Compare(string(a.res.name), string(b.res.name))
	})
	for _, u := range used {
		err := u.face.Embed(d.store, u.res.ref)
		if err != nil {
			return fmt.Errorf("embedding %s: %w", u.face.Family, err)
		}
	}
	return nil
}
