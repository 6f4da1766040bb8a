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
	"seehuhn.de/go/typeset/pdf"
)

// Prototype is an immutable snapshot of the render state of a document,
// without any pages.  New documents with the same settings, fonts and
// document information can be created from it.
type Prototype struct {
	opt  Options
	info pdf.Dict

	fillColor   Color
	strokeColor Color
	lineWidth   float64
	textMode    TextRenderingMode
}

// CapturePrototype takes a snapshot of the current render state and
// installs it as the prototype of d.
func (d *Document) CapturePrototype() (*Prototype, error) {
	info, err := pdf.Clone(d.store.Info())
	if err != nil {
		return nil, pdf.Wrap(err, "document info")
	}
	margins := d.margins
	p := &Prototype{
		opt: Options{
			PageSize:     d.pageSize,
			Layout:       d.layout,
			Margins:      &margins,
			Fonts:        d.fonts.Clone(),
			Font:         d.fontSel,
			Compress:     d.compress,
			OutputIntent: d.intent,
			Version:      d.store.Version,
			Logger:       d.log,
		},
		info:        info.(pdf.Dict),
		fillColor:   d.fillColor,
		strokeColor: d.strokeColor,
		lineWidth:   d.lineWidth,
		textMode:    d.textMode,
	}
	d.prototype = p
	return p, nil
}

// Prototype returns the prototype of d, or nil if none has been captured.
func (d *Document) Prototype() *Prototype {
	return d.prototype
}

// SetPrototype installs p as the prototype of d.
func (d *Document) SetPrototype(p *Prototype) {
	d.prototype = p
}

// Instantiate creates a new document from the snapshot.  The new document
// has no pages and does not share any mutable state with the document the
// snapshot was taken from.  The snapshot becomes the prototype of the new
// document.
func (p *Prototype) Instantiate() (*Document, error) {
	opt := p.opt
	margins := *p.opt.Margins
	opt.Margins = &margins
	opt.Fonts = p.opt.Fonts.Clone()

	d, err := New(&opt)
	if err != nil {
		return nil, err
	}
	info := d.store.Info()
	for key, val := range p.info {
		info[key], err = pdf.Clone(val)
		if err != nil {
			return nil, err
		}
	}
	d.fillColor = p.fillColor
	d.strokeColor = p.strokeColor
	d.lineWidth = p.lineWidth
	d.textMode = p.textMode
	d.prototype = p
	return d, nil
}

// MarkScratch records in the document information dictionary that d is a
// scratch document, used only to measure content.
func (d *Document) MarkScratch() {
	d.store.Info()["Scratch"] = pdf.Bool(true)
}

// IsScratch reports whether d is a scratch document.
func (d *Document) IsScratch() bool {
	scratch, _ := d.store.Info()["Scratch"].(pdf.Bool)
	return bool(scratch)
}
