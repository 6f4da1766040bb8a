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
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/typeset/pdf"
)

// Image is a raster image which can be placed on a page.
//
// Only the image header is decoded by [LoadImage].  The pixel data are
// decoded when the image is first drawn in a document which is not a
// scratch document.
type Image struct {
	// Width and Height are the dimensions in pixels.
	Width, Height int

	// Format is the name of the image format, e.g. "png".
	Format string

	data    []byte
	decoded image.Image
}

// LoadImage reads an image in one of the formats GIF, JPEG, PNG, BMP, TIFF
// or WebP.
func LoadImage(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	return &Image{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		data:   data,
	}, nil
}

// NewImage wraps an already decoded image.
func NewImage(img image.Image) *Image {
	b := img.Bounds()
	return &Image{
		Width:   b.Dx(),
		Height:  b.Dy(),
		Format:  "memory",
		decoded: img,
	}
}

// ImageOptions control the size of a placed image.
type ImageOptions struct {
	// Width and Height give the size of the image on the page.  If only
	// one of them is set, the other is chosen to preserve the aspect
	// ratio.
	Width, Height float64

	// FitWidth and FitHeight, if both set, scale the image to the largest
	// size which fits into the given box while preserving the aspect
	// ratio.  This overrides Width and Height.
	FitWidth, FitHeight float64
}

// size returns the size of img on the page.  By default one pixel is one
// point, but images wider than maxWidth are scaled down to fit.
func (opt *ImageOptions) size(img *Image, maxWidth float64) (float64, float64) {
	iw, ih := float64(img.Width), float64(img.Height)
	if iw <= 0 || ih <= 0 {
		return 0, 0
	}
	if opt == nil {
		opt = &ImageOptions{}
	}
	switch {
	case opt.FitWidth > 0 && opt.FitHeight > 0:
		scale := min(opt.FitWidth/iw, opt.FitHeight/ih)
		return iw * scale, ih * scale
	case opt.Width > 0 && opt.Height > 0:
		return opt.Width, opt.Height
	case opt.Width > 0:
		return opt.Width, ih * opt.Width / iw
	case opt.Height > 0:
		return iw * opt.Height / ih, opt.Height
	}
	if maxWidth > 0 && iw > maxWidth {
		return maxWidth, ih * maxWidth / iw
	}
	return iw, ih
}

// Image draws img at the cursor, at the left edge of the current region,
// and moves the cursor below the image.  Images never cause a page break.
//
// In scratch documents only the cursor is moved.
func (d *Document) Image(img *Image, opt *ImageOptions) error {
	p := d.ensurePage()
	w, h := opt.size(img, d.bounds.Width())
	if w == 0 || h == 0 {
		return nil
	}

	if !d.IsScratch() {
		ref, err := d.embedImage(img)
		if err != nil {
			return err
		}
		d.nextImage++
		name := pdf.Name(fmt.Sprintf("Im%d", d.nextImage))
		p.resources("XObject")[name] = ref

		m := matrix.Scale(w, h).Mul(matrix.Translate(d.bounds.AbsoluteLeft(), d.y-h))
		d.drawXObject(p, name, m)
	}

	d.MoveDown(h)
	return nil
}

func (d *Document) drawXObject(p *Page, name pdf.Name, m matrix.Matrix) {
	p.w.PushGraphicsState()
	p.w.Transform(m)
	p.w.DrawXObject(name)
	p.w.PopGraphicsState()
}

// embedImage decodes the pixel data and stores them as an image XObject.
// Transparent pixels are composed onto a white background.
func (d *Document) embedImage(img *Image) (pdf.Reference, error) {
	src := img.decoded
	if src == nil {
		var err error
		src, _, err = image.Decode(bytes.NewReader(img.data))
		if err != nil {
			return 0, fmt.Errorf("image: %w", err)
		}
	}
	b := src.Bounds()
	pix := make([]byte, 0, 3*b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			bg := 0xffff - a
			pix = append(pix,
				byte((r+bg)>>8), byte((g+bg)>>8), byte((bl+bg)>>8))
		}
	}

	ref := d.store.Alloc()
	stm := pdf.FlateStream(pdf.Dict{
		"Type":             pdf.Name("XObject"),
		"Subtype":          pdf.Name("Image"),
		"Width":            pdf.Integer(b.Dx()),
		"Height":           pdf.Integer(b.Dy()),
		"ColorSpace":       pdf.Name("DeviceRGB"),
		"BitsPerComponent": pdf.Integer(8),
	}, pix)
	err := d.store.Put(ref, stm)
	if err != nil {
		return 0, err
	}
	return ref, nil
}

// ImagePageOptions control [Document.ImagePage].
type ImagePageOptions struct {
	// Canvas stretches the image over the full page, ignoring the aspect
	// ratio.  Otherwise the image is fitted into the margin box.
	Canvas bool
}

// ImagePage adds a new page which shows img.  The page-creation hook is not
// called for the new page.
//
// Afterwards, the last page of the document is the current page, even if
// the image page was inserted before other pages.
func (d *Document) ImagePage(img *Image, opt *ImagePageOptions) error {
	if opt == nil {
		opt = &ImagePageOptions{}
	}
	d.StartNewPageDiscretely(nil)

	var err error
	if opt.Canvas {
		err = d.Canvas(func() error {
			b := d.bounds
			return d.Image(img, &ImageOptions{Width: b.Width(), Height: b.Height()})
		})
	} else {
		b := d.bounds
		err = d.Image(img, &ImageOptions{FitWidth: b.Width(), FitHeight: b.Height()})
	}
	if err != nil {
		return err
	}
	return d.GoToPage(d.PageCount())
}
