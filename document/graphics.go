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
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/typeset/graphics"
)

// Color is an RGB color with components in the range 0 to 1.
type Color struct {
	R, G, B float64
}

// Some frequently used colors.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// ParseHexColor converts a color like "#ff8000" or "f80" to a Color.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x",
		int(math.Round(c.R*255)), int(math.Round(c.G*255)), int(math.Round(c.B*255)))
}

// gw returns the content stream writer of the current page, starting a
// page if necessary.
func (d *Document) gw() *graphics.Writer {
	return d.ensurePage().w
}

// paintState applies the colors and the line width of the document to the
// current page, which may have been started since they were last set.
func (d *Document) paintState() *graphics.Writer {
	w := d.gw()
	w.SetFillColor(graphics.RGB(d.fillColor))
	w.SetStrokeColor(graphics.RGB(d.strokeColor))
	w.SetLineWidth(d.lineWidth)
	return w
}

// FillColor returns the current fill color.
func (d *Document) FillColor() Color {
	return d.fillColor
}

// SetFillColor sets the color used for filling shapes and for text.
func (d *Document) SetFillColor(c Color) {
	d.fillColor = c
	d.gw().SetFillColor(graphics.RGB(c))
}

// StrokeColor returns the current stroke color.
func (d *Document) StrokeColor() Color {
	return d.strokeColor
}

// SetStrokeColor sets the color used for stroking lines.
func (d *Document) SetStrokeColor(c Color) {
	d.strokeColor = c
	d.gw().SetStrokeColor(graphics.RGB(c))
}

// SetLineWidth sets the line width used for stroking.
func (d *Document) SetLineWidth(w float64) {
	d.lineWidth = w
	d.gw().SetLineWidth(w)
}

// SaveGraphicsState runs fn between "q" and "Q" operators.  The colors and
// the line width are restored afterwards.
//
// If fn moves to another page, the state is restored on the page where
// fn started.
func (d *Document) SaveGraphicsState(fn func() error) error {
	fill, stroke, lw := d.fillColor, d.strokeColor, d.lineWidth
	w := d.gw()
	w.PushGraphicsState()
	defer func() {
		w.PopGraphicsState()
		d.fillColor, d.strokeColor, d.lineWidth = fill, stroke, lw
	}()
	return fn()
}

// FillRectangle fills a rectangle with the given top left corner, in
// absolute coordinates.
func (d *Document) FillRectangle(left, top, width, height float64) {
	w := d.paintState()
	w.Rectangle(left, top-height, width, height)
	w.Fill()
}

// StrokeRectangle strokes the outline of a rectangle with the given top
// left corner, in absolute coordinates.
func (d *Document) StrokeRectangle(left, top, width, height float64) {
	w := d.paintState()
	w.Rectangle(left, top-height, width, height)
	w.Stroke()
}

// roundedRectangle appends a rectangle with rounded corners to the current
// path.
func roundedRectangle(w *graphics.Writer, left, top, width, height, r float64) {
	r = min(r, width/2, height/2)
	if r <= 0 {
		w.Rectangle(left, top-height, width, height)
		return
	}
	const k = 0.5522847498 // circle approximation by cubic Bezier curves
	x0, y0 := left, top-height
	x1, y1 := left+width, top
	kr := k * r
	w.MoveTo(x0+r, y0)
	w.LineTo(x1-r, y0)
	w.CurveTo(x1-r+kr, y0, x1, y0+r-kr, x1, y0+r)
	w.LineTo(x1, y1-r)
	w.CurveTo(x1, y1-r+kr, x1-r+kr, y1, x1-r, y1)
	w.LineTo(x0+r, y1)
	w.CurveTo(x0+r-kr, y1, x0, y1-r+kr, x0, y1-r)
	w.LineTo(x0, y0+r)
	w.CurveTo(x0, y0+r-kr, x0+r-kr, y0, x0+r, y0)
	w.ClosePath()
}

// FillBounds fills the current bounding region with the given color.
// The fill color of the document is not changed.
func (d *Document) FillBounds(c Color) {
	b := d.bounds
	d.SaveGraphicsState(func() error {
		d.SetFillColor(c)
		d.FillRectangle(b.AbsoluteLeft(), b.AbsoluteTop(), b.Width(), b.Height())
		return nil
	})
}

// FillAbsoluteBounds fills the whole page with the given color.
func (d *Document) FillAbsoluteBounds(c Color) {
	d.Canvas(func() error {
		d.FillBounds(c)
		return nil
	})
}

// BorderOptions describe the outline drawn by
// [Document.FillAndStrokeBounds].
type BorderOptions struct {
	// LineWidth is the width of the border.  The default is 0.5.
	LineWidth float64

	// Radius is the corner radius.
	Radius float64
}

// FillAndStrokeBounds fills the current region and strokes its outline.
// A nil color skips the corresponding step.
func (d *Document) FillAndStrokeBounds(fill, stroke *Color, opt *BorderOptions) {
	if opt == nil {
		opt = &BorderOptions{}
	}
	lw := opt.LineWidth
	if lw == 0 {
		lw = 0.5
	}
	if lw < 0 {
		stroke = nil
	}
	if fill == nil && stroke == nil {
		return
	}

	b := d.bounds
	left, top, width, height := b.AbsoluteLeft(), b.AbsoluteTop(), b.Width(), b.Height()
	d.SaveGraphicsState(func() error {
		if fill != nil {
			d.SetFillColor(*fill)
			w := d.paintState()
			roundedRectangle(w, left, top, width, height, opt.Radius)
			w.Fill()
		}
		if stroke != nil {
			d.SetStrokeColor(*stroke)
			d.SetLineWidth(lw)
			w := d.paintState()
			roundedRectangle(w, left, top, width, height, opt.Radius)
			w.Stroke()
		}
		return nil
	})
}

// ShadeBox fills the current region, optionally strokes its outline, and
// then runs fn.
func (d *Document) ShadeBox(fill Color, line *Color, fn func() error) error {
	b := d.bounds
	left, top, width, height := b.AbsoluteLeft(), b.AbsoluteTop(), b.Width(), b.Height()
	d.SaveGraphicsState(func() error {
		d.SetFillColor(fill)
		d.FillRectangle(left, top, width, height)
		if line != nil {
			d.SetStrokeColor(*line)
			d.SetLineWidth(0.5)
			d.StrokeRectangle(left, top, width, height)
		}
		return nil
	})
	return fn()
}

// LineStyle is the style of a rule.
type LineStyle int

// These are the available rule styles.
const (
	Solid LineStyle = iota
	Dashed
	Dotted
	Double
)

// RuleOptions describe a horizontal or vertical rule.
type RuleOptions struct {
	// Width is the line width.  The default is 0.5.
	Width float64

	Style LineStyle

	// At is the horizontal offset of a vertical rule from the left edge of
	// the current region.
	At float64
}

func (opt *RuleOptions) width() float64 {
	if opt == nil || opt.Width == 0 {
		return 0.5
	}
	return opt.Width
}

func setDash(w *graphics.Writer, style LineStyle, width float64) {
	switch style {
	case Dashed:
		w.SetDashPattern(0, 4*width)
	case Dotted:
		w.SetDashPattern(0, width)
	}
}

// StrokeHorizontalRule draws a horizontal line across the current region
// at the cursor position.  The cursor is not moved.
func (d *Document) StrokeHorizontalRule(c Color, opt *RuleOptions) {
	lw := opt.width()
	style := Solid
	if opt != nil {
		style = opt.Style
	}
	b := d.bounds
	x0, x1 := b.AbsoluteLeft(), b.AbsoluteRight()
	d.SaveGraphicsState(func() error {
		d.SetLineWidth(lw)
		d.SetStrokeColor(c)
		w := d.paintState()
		setDash(w, style, lw)
		ys := []float64{d.y}
		if style == Double {
			ys = []float64{d.y + lw, d.y - lw}
		}
		for _, y := range ys {
			w.MoveTo(x0, y)
			w.LineTo(x1, y)
		}
		w.Stroke()
		return nil
	})
}

// StrokeVerticalRule draws a vertical line from the top to the bottom of
// the current region.
func (d *Document) StrokeVerticalRule(c Color, opt *RuleOptions) {
	lw := opt.width()
	style := Solid
	var at float64
	if opt != nil {
		style = opt.Style
		at = opt.At
	}
	b := d.bounds
	x := b.AbsoluteLeft() + at
	y0, y1 := b.AbsoluteTop(), b.AbsoluteBottom()
	d.SaveGraphicsState(func() error {
		d.SetLineWidth(lw)
		d.SetStrokeColor(c)
		w := d.paintState()
		setDash(w, style, lw)
		xs := []float64{x}
		if style == Double {
			xs = []float64{x - lw, x + lw}
		}
		for _, x := range xs {
			w.MoveTo(x, y0)
			w.LineTo(x, y1)
		}
		w.Stroke()
		return nil
	})
}

// Box reserves a block of the given height across the current region,
// filling it with c if c is not nil.  If the block does not fit below the
// cursor, and the cursor is not at the top of a page, the block is moved
// to the next page first.
func (d *Document) Box(height float64, c *Color) {
	d.ensurePage()
	if height > d.Cursor() && !d.AtPageTop() {
		d.MovePastBottom()
	}
	if c != nil {
		b := d.bounds
		top := d.y
		d.SaveGraphicsState(func() error {
			d.SetFillColor(*c)
			d.FillRectangle(b.AbsoluteLeft(), top, b.Width(), height)
			return nil
		})
	}
	d.MoveDown(height)
}
