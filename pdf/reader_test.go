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

package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReaderRoundTrip(t *testing.T) {
	s := NewStore(V1_7)
	page := s.Alloc()
	content := s.Alloc()
	s.Catalog()["Pages"] = page
	s.Info()["Title"] = String("A (nested) title\n")
	s.Put(page, Dict{
		"Type":     Name("Page"),
		"MediaBox": Array{Integer(0), Integer(0), Real(595.5), Integer(842)},
		"Contents": content,
		"Name":     Name("A B#"),
		"Flags":    Array{Bool(true), Bool(false), Integer(-3), Real(0.25)},
		"Binary":   String{0, 1, 2, 0xff},
	})
	s.Put(content, FlateStream(Dict{"Extra": Integer(7)}, []byte("0 0 m 10 10 l S")))

	buf := &bytes.Buffer{}
	err := s.Write(buf)
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if r.Version != V1_7 {
		t.Errorf("version = %s", r.Version)
	}
	if r.CatalogRef() != s.CatalogRef() || r.InfoRef() != s.InfoRef() {
		t.Errorf("trailer = %s", Format(r.Trailer()))
	}

	for _, ref := range []Reference{s.CatalogRef(), s.InfoRef(), page} {
		want, _ := s.Get(ref)
		got, err := r.Get(ref)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("object %s (-want +got):\n%s", ref, diff)
		}
	}

	stm, err := GetStream(r, content)
	if err != nil {
		t.Fatal(err)
	}
	if stm.Dict["Extra"] != Integer(7) {
		t.Errorf("stream dict = %s", Format(stm.Dict))
	}
	for range 2 {
		data, err := DecodeStream(r, stm)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "0 0 m 10 10 l S" {
			t.Errorf("stream data = %q", data)
		}
	}

	// missing objects are null
	obj, err := r.Get(NewReference(1000, 0))
	if obj != nil || err != nil {
		t.Errorf("missing object: %v, %v", obj, err)
	}
	obj, err = r.Get(NewReference(page.Number(), 1))
	if obj != nil || err != nil {
		t.Errorf("wrong generation: %v, %v", obj, err)
	}
}

// TestReaderUpdate checks that objects from an incremental update replace
// the original ones.
func TestReaderUpdate(t *testing.T) {
	s := NewStore(V1_4)
	s.Info()["Title"] = String("old")
	buf := &bytes.Buffer{}
	err := s.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	data := buf.String()
	prev := data[strings.LastIndex(data, "startxref")+len("startxref\n"):]
	prev = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(prev), "%%EOF"))

	info := s.InfoRef()
	objPos := buf.Len()
	fmt.Fprintf(buf, "%d 0 obj\n<</Title(new)>>\nendobj\n", info.Number())
	xrefPos := buf.Len()
	fmt.Fprintf(buf, "xref\n%d 1\n%010d 00000 n\r\n", info.Number(), objPos)
	fmt.Fprintf(buf, "trailer\n<</Size 3/Root %s/Info %s/Prev %s>>\n", s.CatalogRef(), info, prev)
	fmt.Fprintf(buf, "startxref\n%d\n%%%%EOF\n", xrefPos)

	r, err := NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	dict, err := GetDict(r, r.InfoRef())
	if err != nil {
		t.Fatal(err)
	}
	if got := string(dict["Title"].(String)); got != "new" {
		t.Errorf("title = %q", got)
	}
	if _, err := GetDict(r, r.CatalogRef()); err != nil {
		t.Error(err)
	}
}

func TestScanObject(t *testing.T) {
	cases := []struct {
		in   string
		want Object
	}{
		{"null", nil},
		{"true", Bool(true)},
		{"-12", Integer(-12)},
		{"+.5", Real(0.5)},
		{"/A#20B", Name("A B")},
		{"(a\\(b\\)c)", String("a(b)c")},
		{"(x(y)z)", String("x(y)z")},
		{"(\\101\\0610)", String("A10")},
		{"(a\\\nb)", String("ab")},
		{"(a\r\nb)", String("a\nb")},
		{"<48 65 6C6c6>", String("Hell`")},
		{"[1 2 R 3 4 5]", Array{NewReference(1, 2), Integer(3), Integer(4), Integer(5)}},
		{"<</A 1 0 R/B[/C]% comment\n/D null>>", Dict{
			"A": NewReference(1, 0),
			"B": Array{Name("C")},
		}},
	}
	for _, c := range cases {
		s := newScanner(strings.NewReader(c.in), 0, nil)
		got, err := s.readObject()
		if err != nil {
			t.Errorf("%q: %v", c.in, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", c.in, diff)
		}
	}

	for _, in := range []string{"[1 0 Rx]", "(abc", "<</A>>", "<</A 1"} {
		s := newScanner(strings.NewReader(in), 0, nil)
		if _, err := s.readObject(); err == nil {
			t.Errorf("%q: missing error", in)
		}
	}
}

func TestReaderMalformed(t *testing.T) {
	cases := []string{
		"",
		"%PDF-1.7\n",
		"not a PDF file\nstartxref\n5\n%%EOF\n",
		"%PDF-1.7\nxref\n0 1\nbad\ntrailer\n<<>>\nstartxref\n9\n%%EOF\n",
		"%PDF-3.0\nxref\n0 0\ntrailer\n<<>>\nstartxref\n9\n%%EOF\n",
	}
	for _, in := range cases {
		_, err := NewReader(strings.NewReader(in), int64(len(in)))
		if err == nil {
			t.Errorf("%q: missing error", in)
		}
	}

	in := "%PDF-1.7\n1 0 obj\n<</Type/XRef>>\nendobj\nstartxref\n9\n%%EOF\n"
	_, err := NewReader(strings.NewReader(in), int64(len(in)))
	if !errors.Is(err, errXRefStream) {
		t.Errorf("xref stream: got %v", err)
	}
}
