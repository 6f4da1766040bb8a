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
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/typeset/pdf"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(40 * y), B: 200, A: 255})
		}
	}
	return img
}

func xObject(t *testing.T, p *Page, name pdf.Name) pdf.Reference {
	t.Helper()
	res, _ := p.Dict["Resources"].(pdf.Dict)
	xobj, _ := res["XObject"].(pdf.Dict)
	ref, ok := xobj[name].(pdf.Reference)
	if !ok {
		t.Fatalf("no XObject %s", name)
	}
	return ref
}

func TestDeleteOnlyPage(t *testing.T) {
	d := newTestDoc(t)
	p := d.StartNewPage(nil)
	if err := d.Text("hello", nil); err != nil {
		t.Fatal(err)
	}

	err := d.DeletePage()
	if err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 0 || d.PageNumber() != 0 || d.Page() != nil {
		t.Errorf("page %d of %d", d.PageNumber(), d.PageCount())
	}
	if d.PageTree().Count() != 0 || d.PageTree().Len() != 0 {
		t.Errorf("page tree has %d kids", d.PageTree().Len())
	}
	store := d.Store()
	if store.Has(p.Ref) || store.Has(p.ContentRef) {
		t.Error("page objects left in store")
	}
	// catalog, info and the page tree root
	if n := store.Len(); n != 3 {
		t.Errorf("%d objects left in store: %v", n, store.Refs())
	}
	if !d.AtPageTop() || d.Cursor() != 700 {
		t.Errorf("cursor = %g", d.Cursor())
	}

	err = d.DeletePage()
	if !errors.Is(err, ErrNoPage) {
		t.Errorf("deleting without pages: err = %v", err)
	}
}

func TestDeleteLastPage(t *testing.T) {
	d := newTestDoc(t)
	p1 := d.StartNewPage(nil)
	p2 := d.StartNewPage(nil)
	if err := d.Image(NewImage(testImage(4, 2)), nil); err != nil {
		t.Fatal(err)
	}
	img := xObject(t, p2, "Im1")
	if !d.Store().Has(img) {
		t.Fatal("image not stored")
	}

	err := d.DeletePage()
	if err != nil {
		t.Fatal(err)
	}
	if d.PageNumber() != 1 || d.Page() != p1 {
		t.Errorf("current page = %d", d.PageNumber())
	}
	if d.Store().Has(img) {
		t.Error("image of deleted page left in store")
	}
	kids := d.PageTree().Kids()
	if diff := cmp.Diff([]pdf.Reference{p1.Ref}, kids); diff != "" {
		t.Errorf("kids (-want +got):\n%s", diff)
	}
	if d.PageTree().Count() != len(kids) {
		t.Errorf("count = %d, len(kids) = %d", d.PageTree().Count(), len(kids))
	}
}

func TestDeleteFirstPage(t *testing.T) {
	d := newTestDoc(t)
	d.StartNewPage(nil)
	p2 := d.StartNewPage(nil)
	d.GoToPage(1)

	err := d.DeletePage()
	if err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 1 || d.PageNumber() != 0 {
		t.Errorf("page %d of %d", d.PageNumber(), d.PageCount())
	}
	if d.Pages()[0] != p2 {
		t.Error("wrong page deleted")
	}
}

func newImportSource(t *testing.T, size rect.Rect) *ExternalPage {
	t.Helper()
	src, err := New(&Options{PageSize: size})
	if err != nil {
		t.Fatal(err)
	}
	src.StartNewPage(nil)
	if err := src.Text("imported", nil); err != nil {
		t.Fatal(err)
	}
	ext, err := src.ExternalPage(1)
	if err != nil {
		t.Fatal(err)
	}
	return ext
}

func TestImportPageReplace(t *testing.T) {
	ext := newImportSource(t, rect.Rect{URx: 600, URy: 800})

	for _, noAdvance := range []bool{true, false} {
		d, err := New(&Options{
			PageSize: rect.Rect{URx: 600, URy: 800},
			Compress: true,
		})
		if err != nil {
			t.Fatal(err)
		}
		d.StartNewPage(nil)
		calls := 0
		d.SetOnPageCreate(func(*Document) { calls++ })

		err = d.ImportPage(ext, &ImportOptions{Replace: true, NoAdvance: noAdvance})
		if err != nil {
			t.Fatal(err)
		}
		if d.Compress() {
			t.Error("compression still enabled")
		}

		wantPages, wantCalls := 2, 1
		if noAdvance {
			wantPages, wantCalls = 1, 0
		}
		if d.PageCount() != wantPages || d.PageNumber() != wantPages {
			t.Errorf("NoAdvance=%t: page %d of %d, want %d",
				noAdvance, d.PageNumber(), d.PageCount(), wantPages)
		}
		if calls != wantCalls {
			t.Errorf("NoAdvance=%t: hook called %d times, want %d",
				noAdvance, calls, wantCalls)
		}

		p := d.Pages()[0]
		if got := string(p.Content()); got != "q\n1 0 0 1 0 0 cm\n/Fm1 Do\nQ\n" {
			t.Errorf("content = %q", got)
		}
		form, err := pdf.GetStream(d.Store(), xObject(t, p, "Fm1"))
		if err != nil {
			t.Fatal(err)
		}
		body, err := io.ReadAll(form.R)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(body, []byte("Tj")) {
			t.Errorf("form content = %q", body)
		}
		fonts, err := pdf.GetDict(d.Store(), form.Dict["Resources"].(pdf.Dict)["Font"])
		if err != nil {
			t.Fatal(err)
		}
		fontDict, err := pdf.GetDict(d.Store(), fonts["F1"])
		if err != nil || fontDict["Subtype"] != pdf.Name("TrueType") {
			t.Errorf("imported font = %v, %v", fontDict, err)
		}
	}
}

func TestImportPageFromFile(t *testing.T) {
	src, err := New(&Options{PageSize: A5, Compress: true})
	if err != nil {
		t.Fatal(err)
	}
	src.StartNewPage(nil)
	if err := src.Text("first", nil); err != nil {
		t.Fatal(err)
	}
	src.StartNewPage(nil)
	src.FillBounds(Color{0.5, 0.5, 0.5})
	if err := src.Text("second", nil); err != nil {
		t.Fatal(err)
	}
	want := bytes.Clone(src.Page().Content())
	file := &bytes.Buffer{}
	err = src.Write(file)
	if err != nil {
		t.Fatal(err)
	}

	r, err := pdf.NewReader(bytes.NewReader(file.Bytes()), int64(file.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ExternalPageFromFile(r, 3); !errors.Is(err, ErrNoPage) {
		t.Errorf("page 3 of 2: %v", err)
	}
	ext, err := ExternalPageFromFile(r, 2)
	if err != nil {
		t.Fatal(err)
	}

	d := newTestDoc(t)
	d.StartNewPage(nil)
	err = d.ImportPage(ext, &ImportOptions{NoAdvance: true})
	if err != nil {
		t.Fatal(err)
	}
	p := d.Page()
	if p.Size.Dx() != A5.Dx() || p.Size.Dy() != A5.Dy() {
		t.Errorf("imported page size = %v", p.Size)
	}
	form, err := pdf.GetStream(d.Store(), xObject(t, p, "Fm1"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := pdf.DecodeStream(d.Store(), form)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("form content (-want +got):\n%s", diff)
	}
	fonts, err := pdf.GetDict(d.Store(), form.Dict["Resources"].(pdf.Dict)["Font"])
	if err != nil {
		t.Fatal(err)
	}
	font, err := pdf.GetDict(d.Store(), fonts["F1"])
	if err != nil || font["Subtype"] != pdf.Name("TrueType") {
		t.Errorf("imported font = %v, %v", font, err)
	}

	// the result is a complete file
	out := &bytes.Buffer{}
	err = d.Write(out)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := pdf.NewReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	if err != nil {
		t.Fatal(err)
	}
	ext, err = ExternalPageFromFile(r2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if ext.Page == 0 {
		t.Error("imported page missing from output")
	}
}

func TestImportPageSize(t *testing.T) {
	ext := newImportSource(t, A5)

	d := newTestDoc(t)
	d.StartNewPage(nil)
	err := d.ImportPage(ext, nil)
	if err != nil {
		t.Fatal(err)
	}

	pages := d.Pages()
	if len(pages) != 3 || d.PageNumber() != 3 {
		t.Fatalf("page %d of %d", d.PageNumber(), len(pages))
	}
	if pages[1].Size.Dx() != A5.Dx() || pages[1].Size.Dy() != A5.Dy() {
		t.Errorf("imported page size = %v", pages[1].Size)
	}
	if d.PageWidth() != 600 || d.PageHeight() != 800 {
		t.Errorf("page after import is %gx%g", d.PageWidth(), d.PageHeight())
	}
}

func TestImportPageMiddle(t *testing.T) {
	ext := newImportSource(t, rect.Rect{URx: 600, URy: 800})

	d := newTestDoc(t)
	d.StartNewPage(nil)
	p2 := d.StartNewPage(nil)
	d.GoToPage(1)
	calls := 0
	d.SetOnPageCreate(func(*Document) { calls++ })

	err := d.WithTextRenderingMode(StrokeText, func() error {
		err := d.ImportPage(ext, nil)
		if d.TextRenderingMode() != StrokeText {
			t.Errorf("text rendering mode = %d", d.TextRenderingMode())
		}
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 3 || d.PageNumber() != 3 || d.Page() != p2 {
		t.Errorf("page %d of %d", d.PageNumber(), d.PageCount())
	}
	if calls != 0 {
		t.Errorf("hook called %d times", calls)
	}
}

func TestImportPageErrors(t *testing.T) {
	d := newTestDoc(t)
	src := pdf.NewStore(pdf.V1_7)
	err := d.ImportPage(&ExternalPage{Source: src, Page: src.Alloc()}, nil)
	if !errors.Is(err, pdf.ErrNotFound) {
		t.Errorf("missing page: err = %v", err)
	}

	ref := src.Alloc()
	src.Put(ref, pdf.Dict{"Type": pdf.Name("Page"), "Contents": pdf.Integer(1)})
	err = d.ImportPage(&ExternalPage{Source: src, Page: ref}, nil)
	var malformed *pdf.MalformedFileError
	if !errors.As(err, &malformed) {
		t.Errorf("invalid contents: err = %v", err)
	}
	if d.PageCount() != 0 {
		t.Errorf("%d pages after failed imports", d.PageCount())
	}

	if _, err := d.ExternalPage(1); !errors.Is(err, ErrNoPage) {
		t.Errorf("ExternalPage(1): err = %v", err)
	}
}

func TestImportPageReplaceFailure(t *testing.T) {
	d, err := New(&Options{
		PageSize: rect.Rect{URx: 600, URy: 800},
		Compress: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	d.StartNewPage(nil)
	d.Text("keep me", nil)
	page := d.Page()

	src := pdf.NewStore(pdf.V1_7)
	ref := src.Alloc()
	src.Put(ref, pdf.Dict{"Type": pdf.Name("Page"), "Contents": pdf.Name("broken")})
	err = d.ImportPage(&ExternalPage{Source: src, Page: ref}, &ImportOptions{Replace: true})
	if err == nil {
		t.Fatal("broken page was imported")
	}
	if d.PageCount() != 1 || d.Page() != page {
		t.Errorf("page %d of %d after failed import", d.PageNumber(), d.PageCount())
	}
	if !d.Store().Has(page.Ref) || !d.Store().Has(page.ContentRef) {
		t.Error("current page was removed from the store")
	}
	if !d.Compress() {
		t.Error("compression was disabled by a failed import")
	}
}

func TestImagePage(t *testing.T) {
	d := newTestDoc(t)
	d.StartNewPage(nil)
	d.StartNewPage(nil)
	d.GoToPage(1)
	calls := 0
	d.SetOnPageCreate(func(*Document) { calls++ })

	img := NewImage(testImage(4, 2))
	err := d.ImagePage(img, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.PageCount() != 3 || d.PageNumber() != 3 {
		t.Errorf("page %d of %d", d.PageNumber(), d.PageCount())
	}
	if calls != 0 {
		t.Errorf("hook called %d times", calls)
	}
	got := string(d.Pages()[1].Content())
	if !strings.Contains(got, "500 0 0 250 50 500 cm\n/Im1 Do") {
		t.Errorf("content = %q", got)
	}

	err = d.ImagePage(img, &ImagePageOptions{Canvas: true})
	if err != nil {
		t.Fatal(err)
	}
	got = string(d.Pages()[3].Content())
	if !strings.Contains(got, "600 0 0 800 0 0 cm\n/Im2 Do") {
		t.Errorf("canvas content = %q", got)
	}
}

func TestLoadImage(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, testImage(3, 5)); err != nil {
		t.Fatal(err)
	}
	img, err := LoadImage(buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 3 || img.Height != 5 || img.Format != "png" {
		t.Errorf("image = %dx%d %s", img.Width, img.Height, img.Format)
	}

	d := newTestDoc(t)
	if err := d.Image(img, &ImageOptions{Height: 50}); err != nil {
		t.Fatal(err)
	}
	if d.Y() != 700 {
		t.Errorf("y = %g, want 700", d.Y())
	}
	stm, err := pdf.GetStream(d.Store(), xObject(t, d.Page(), "Im1"))
	if err != nil {
		t.Fatal(err)
	}
	if stm.Dict["Width"] != pdf.Integer(3) || stm.Dict["Height"] != pdf.Integer(5) {
		t.Errorf("image dict = %s", pdf.Format(stm.Dict))
	}
	data, err := pdf.DecodeStream(d.Store(), stm)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 3*3*5 {
		t.Errorf("%d bytes of image data", len(data))
	}

	if _, err := LoadImage(strings.NewReader("not an image")); err == nil {
		t.Error("invalid image accepted")
	}
}

func TestScratchImage(t *testing.T) {
	d := newTestDoc(t)
	d.MarkScratch()
	if !d.IsScratch() {
		t.Fatal("not a scratch document")
	}
	err := d.Image(NewImage(testImage(4, 2)), nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Y() != 748 {
		t.Errorf("y = %g, want 748", d.Y())
	}
	res, _ := d.Page().Dict["Resources"].(pdf.Dict)
	if _, ok := res["XObject"]; ok {
		t.Error("image embedded in scratch document")
	}
	if !d.EmptyPage() {
		t.Error("image drawn in scratch document")
	}
}
