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
)

// Bounds is a rectangular region of a page into which content flows.
//
// The outermost region of every page is the margin box.  Nested regions are
// created by [Document.BoundingBox] and related methods.  A region without
// a fixed height is "stretchy": it grows as content is added, and its
// bottom is the bottom of the enclosing fixed region.
//
// Each region has a stack of horizontal insets, which narrow the region
// from the left and from the right.
type Bounds struct {
	doc    *Document
	parent *Bounds

	x, top        float64 // absolute position, before insets
	width, height float64
	stretchy      bool
	depth         float64 // extent of the content of a stretchy region

	insets      []Inset
	left, right float64 // total insets
}

// Inset is a pair of horizontal insets.
type Inset struct {
	Left, Right float64
}

// PushInset narrows the region by the given amounts.  Negative values
// widen the region.
//
// The returned function removes the inset again.  Insets must be released
// in the reverse order in which they were pushed; releasing out of order
// panics.  Calling the release function more than once has no effect.
func (b *Bounds) PushInset(left, right float64) (release func()) {
	level := len(b.insets)
	b.insets = append(b.insets, Inset{Left: left, Right: right})
	b.left += left
	b.right += right

	released := false
	return func() {
		if released {
			return
		}
		if len(b.insets) != level+1 {
			panic(fmt.Sprintf("inset %d released while %d insets are active",
				level+1, len(b.insets)))
		}
		released = true
		b.insets = b.insets[:level]
		b.left -= left
		b.right -= right
	}
}

// Insets returns a copy of the active insets, innermost last.
func (b *Bounds) Insets() []Inset {
	return append([]Inset(nil), b.insets...)
}

// TotalLeftPadding returns the sum of all active left insets.
func (b *Bounds) TotalLeftPadding() float64 {
	return b.left
}

// TotalRightPadding returns the sum of all active right insets.
func (b *Bounds) TotalRightPadding() float64 {
	return b.right
}

// Stretchy reports whether the height of the region grows with its
// content.
func (b *Bounds) Stretchy() bool {
	return b.stretchy
}

// Parent returns the enclosing region, or nil for the margin box.
func (b *Bounds) Parent() *Bounds {
	return b.parent
}

// AbsoluteLeft returns the x coordinate of the left edge, inside the
// insets.
func (b *Bounds) AbsoluteLeft() float64 {
	return b.x + b.left
}

// AbsoluteRight returns the x coordinate of the right edge, inside the
// insets.
func (b *Bounds) AbsoluteRight() float64 {
	return b.x + b.width - b.right
}

// AbsoluteTop returns the y coordinate of the top edge.
func (b *Bounds) AbsoluteTop() float64 {
	return b.top
}

// AbsoluteBottom returns the y coordinate of the bottom edge.
func (b *Bounds) AbsoluteBottom() float64 {
	if b.stretchy {
		return b.ReferenceBounds().AbsoluteBottom()
	}
	return b.top - b.height
}

// Width returns the width of the region, inside the insets.
func (b *Bounds) Width() float64 {
	return b.width - b.left - b.right
}

// Height returns the height of the region.  For a stretchy region this is
// the height of the content placed so far.
func (b *Bounds) Height() float64 {
	if b.stretchy {
		return max(b.depth, b.top-b.doc.y)
	}
	return b.height
}

// ReferenceBounds returns the innermost region with a fixed height.
func (b *Bounds) ReferenceBounds() *Bounds {
	for r := b; r != nil; r = r.parent {
		if !r.stretchy {
			return r
		}
	}
	return b.doc.marginBox
}

// MovePastBottom continues on the next page: if the current page is the
// last page, a new page is started, otherwise the next page becomes the
// current page.
func (b *Bounds) MovePastBottom() {
	b.doc.MovePastBottom()
}

func (b *Bounds) noteDepth() {
	for r := b; r != nil && r.stretchy; r = r.parent {
		r.depth = max(r.depth, r.top-r.doc.y)
	}
}

// Bounds returns the current bounding region.
func (d *Document) Bounds() *Bounds {
	return d.bounds
}

// MarginBox returns the margin box of the current page.
func (d *Document) MarginBox() *Bounds {
	return d.marginBox
}

// ReferenceBounds returns the innermost fixed-height region enclosing the
// cursor.
func (d *Document) ReferenceBounds() *Bounds {
	return d.bounds.ReferenceBounds()
}

// EffectivePageHeight returns the height available for content on a page,
// i.e. the height of the reference region.
func (d *Document) EffectivePageHeight() float64 {
	return d.ReferenceBounds().Height()
}

// EffectivePageWidth returns the width of the reference region.
func (d *Document) EffectivePageWidth() float64 {
	return d.ReferenceBounds().Width()
}

// BoundsMarginLeft returns the distance between the left edge of the page
// and the left edge of the current region.
func (d *Document) BoundsMarginLeft() float64 {
	return d.bounds.AbsoluteLeft()
}

// BoundsMarginRight returns the distance between the right edge of the
// current region and the right edge of the page.
func (d *Document) BoundsMarginRight() float64 {
	return d.PageWidth() - d.bounds.AbsoluteRight()
}

// BoxOptions describe a nested bounding region.
type BoxOptions struct {
	// Left is the offset of the region from the left edge of the current
	// region.
	Left float64

	// Top, if non-nil, is the absolute y coordinate of the top edge.
	// By default the region starts at the cursor.
	Top *float64

	// Width is the width of the region.  If zero, the region extends to
	// the right edge of the current region.
	Width float64

	// Height is the height of the region.  If zero, the region is
	// stretchy.
	Height float64
}

// BoundingBox runs fn with a nested region as the current bounding region.
//
// Inside fn the cursor starts at the top of the region.  Afterwards the
// cursor is placed below a fixed-height region.  For a stretchy region it
// stays where fn left it.  If fn did not move the cursor at all, the cursor
// returns to its original position.
func (d *Document) BoundingBox(opt *BoxOptions, fn func() error) error {
	if opt == nil {
		opt = &BoxOptions{}
	}
	parent := d.bounds
	top := d.y
	if opt.Top != nil {
		top = *opt.Top
	}
	width := opt.Width
	if width == 0 {
		width = parent.Width() - opt.Left
	}
	b := &Bounds{
		doc:      d,
		parent:   parent,
		x:        parent.AbsoluteLeft() + opt.Left,
		top:      top,
		width:    width,
		height:   opt.Height,
		stretchy: opt.Height == 0,
	}
	return d.withBounds(b, false, fn)
}

// Canvas runs fn with the full page as the current bounding region.
// Inside fn the cursor starts at the top of the page.  Afterwards the
// cursor is left where fn leaves it.
func (d *Document) Canvas(fn func() error) error {
	p := d.ensurePage()
	b := &Bounds{
		doc:    d,
		parent: d.bounds,
		x:      p.Size.LLx,
		top:    p.Size.URy,
		width:  p.Width(),
		height: p.Height(),
	}
	return d.withBounds(b, true, fn)
}

func (d *Document) withBounds(b *Bounds, holdPosition bool, fn func() error) error {
	parent := d.bounds
	origY := d.y
	d.bounds = b
	d.y = b.AbsoluteTop()
	defer func() {
		if d.y == b.AbsoluteTop() {
			d.y = origY
		}
		if !holdPosition && !b.stretchy {
			d.y = b.AbsoluteBottom()
		}
		d.bounds = parent
	}()
	return fn()
}

// Indent runs fn with the current region narrowed by the given insets.
// The insets are removed when fn returns or panics.
func (d *Document) Indent(left, right float64, fn func() error) error {
	b := d.bounds
	release := b.PushInset(left, right)
	defer release()
	return fn()
}

// SpanPageWidthIf runs fn with the current region widened to the full
// width of the page, if verdict is true.  Otherwise fn is run directly.
func (d *Document) SpanPageWidthIf(verdict bool, fn func() error) error {
	if !verdict {
		return fn()
	}
	return d.Indent(-d.BoundsMarginLeft(), -d.BoundsMarginRight(), fn)
}

// FlowBoundingBox runs fn in a stretchy region which starts at the cursor,
// at the given offset from the left edge of the margin box.  If the
// content continues on another page, it starts at the top of the margin
// box.  A width of zero extends the region to the right edge of the
// margin box.
func (d *Document) FlowBoundingBox(left, width float64, fn func() error) error {
	d.ensurePage()
	origY := d.y
	return d.Canvas(func() error {
		top := d.marginBox.AbsoluteTop()
		opt := &BoxOptions{
			Left:  d.marginBox.AbsoluteLeft() + left - d.bounds.AbsoluteLeft(),
			Top:   &top,
			Width: width,
		}
		if width == 0 {
			opt.Width = d.marginBox.Width() - left
		}
		return d.BoundingBox(opt, func() error {
			d.y = origY
			return fn()
		})
	})
}
