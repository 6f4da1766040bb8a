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
	"errors"
	"log"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/typeset/font"
	"seehuhn.de/go/typeset/font/gofont"
	"seehuhn.de/go/typeset/pagetree"
	"seehuhn.de/go/typeset/pdf"
)

// ErrNoPage is returned by operations which need a current page, when the
// document has no pages.
var ErrNoPage = errors.New("no current page")

// Options control the creation of a new [Document].
// The zero value, as well as a nil *Options, selects the defaults.
type Options struct {
	// PageSize is the paper size of new pages.  The default is A4.
	PageSize rect.Rect

	// Layout is the orientation of new pages.  The default is Portrait.
	Layout Layout

	// Margins are the page margins.  The default is 36 points on every
	// side.
	Margins *Margins

	// Fonts is the font registry.  The default contains the Go fonts.
	Fonts *font.Registry

	// Font is the initial font selection.  Empty fields are filled in with
	// the regular "Go" font at 12 points.
	Font FontSelection

	// Compress enables FlateDecode compression of page content streams.
	Compress bool

	// OutputIntent adds an sRGB output intent to the written file.
	OutputIntent bool

	// Version is the PDF version of the output.  The default is PDF 1.7.
	Version pdf.Version

	// Logger receives warnings.  The default writes to the standard
	// logger's output, using the prefix "typeset: ".
	Logger *log.Logger
}

const defaultMargin = 36

// Document holds the render state of a PDF document.
//
// A Document is not safe for concurrent use.
type Document struct {
	store *pdf.Store
	tree  *pagetree.Tree

	pages      []*Page
	pageNumber int // 1-based, 0 if there is no current page

	y         float64 // absolute vertical position of the cursor
	marginBox *Bounds
	bounds    *Bounds

	pageSize rect.Rect
	layout   Layout
	margins  Margins

	fonts   *font.Registry
	fontSel FontSelection
	fontRes map[*font.Face]*fontResource

	onPageCreate func(*Document)

	compress    bool
	intent      bool
	textMode    TextRenderingMode
	fillColor   Color
	strokeColor Color
	lineWidth   float64

	log       *log.Logger
	prototype *Prototype
	nextImage int
	nextForm  int
}

// New creates a new document without pages.
func New(opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}

	fonts := opt.Fonts
	if fonts == nil {
		var err error
		fonts, err = gofont.Registry()
		if err != nil {
			return nil, err
		}
	}

	sel := opt.Font
	if sel.Family == "" {
		sel.Family = gofont.Go
	}
	if sel.Size <= 0 {
		sel.Size = 12
	}
	if _, err := fonts.Lookup(sel.Family, sel.Style); err != nil {
		return nil, err
	}

	pageSize := opt.PageSize
	if pageSize.IsZero() {
		pageSize = A4
	}
	layout := opt.Layout
	if layout == 0 {
		layout = Portrait
	}
	margins := UniformMargins(defaultMargin)
	if opt.Margins != nil {
		margins = *opt.Margins
	}
	version := opt.Version
	if version == 0 {
		version = pdf.V1_7
	}
	logger := opt.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "typeset: ", log.Flags())
	}

	store := pdf.NewStore(version)
	d := &Document{
		store:       store,
		tree:        pagetree.New(store),
		pageSize:    pageSize,
		layout:      layout,
		margins:     margins,
		fonts:       fonts,
		fontSel:     sel,
		fontRes:     make(map[*font.Face]*fontResource),
		compress:    opt.Compress,
		intent:      opt.OutputIntent,
		textMode:    FillText,
		fillColor:   Black,
		strokeColor: Black,
		lineWidth:   1,
		log:         logger,
	}
	d.marginBox = &Bounds{doc: d}
	d.bounds = d.marginBox
	d.updateMarginBox(orient(pageSize, layout), margins)
	d.y = d.marginBox.top
	return d, nil
}

// Store returns the object store of the document.
func (d *Document) Store() *pdf.Store {
	return d.store
}

// PageTree returns the page tree of the document.
func (d *Document) PageTree() *pagetree.Tree {
	return d.tree
}

// Logger returns the logger used for warnings.
func (d *Document) Logger() *log.Logger {
	return d.log
}

// Warnf logs a non-fatal problem.
func (d *Document) Warnf(format string, args ...any) {
	d.log.Printf("warning: "+format, args...)
}

// OnPageCreate returns the current page-creation hook.
func (d *Document) OnPageCreate() func(*Document) {
	return d.onPageCreate
}

// SetOnPageCreate installs a function which is called whenever a new page
// has been started.  Passing nil removes the hook.
func (d *Document) SetOnPageCreate(fn func(*Document)) {
	d.onPageCreate = fn
}

// Compress reports whether page content streams are compressed.
func (d *Document) Compress() bool {
	return d.compress
}

// SetCompress enables or disables compression of content streams.
func (d *Document) SetCompress(compress bool) {
	d.compress = compress
}
