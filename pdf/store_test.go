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
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
)

func TestStoreAlloc(t *testing.T) {
	s := NewStore(V1_7)
	if !s.Has(s.CatalogRef()) || !s.Has(s.InfoRef()) {
		t.Fatal("catalog or info missing")
	}
	seen := map[Reference]bool{
		s.CatalogRef(): true,
		s.InfoRef():    true,
	}
	for i := 0; i < 10; i++ {
		ref := s.Alloc()
		if seen[ref] {
			t.Fatalf("reference %s allocated twice", ref)
		}
		seen[ref] = true
	}

	ref := NewReference(100, 0)
	err := s.Put(ref, Integer(1))
	if err != nil {
		t.Fatal(err)
	}
	if next := s.Alloc(); next.Number() != 101 {
		t.Errorf("expected object number 101, got %d", next.Number())
	}
}

func TestStorePutGet(t *testing.T) {
	s := NewStore(V1_7)
	ref := s.Alloc()

	obj, err := s.Get(ref)
	if err != nil {
		t.Fatal(err)
	}
	if obj != nil {
		t.Errorf("missing object resolved to %v", obj)
	}

	stm := &Stream{
		Dict: Dict{"Test": Bool(true)},
		R:    io.LimitReader(strings.NewReader("hello world"), 5),
	}
	err = s.Put(ref, stm)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		got, err := GetStream(s, ref)
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(got.R)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "hello" {
			t.Errorf("wrong stream data %q", data)
		}
	}

	err = s.Put(ref, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Has(ref) {
		t.Error("object not deleted")
	}
}

func TestPrune(t *testing.T) {
	s := NewStore(V1_7)
	a := s.Alloc()
	b := s.Alloc()
	c := s.Alloc()
	d := s.Alloc()
	s.Put(a, Dict{"Next": b})
	s.Put(b, Array{Integer(1), c})
	s.Put(c, Integer(7))
	s.Put(d, Integer(8))
	s.Catalog()["Test"] = a

	removed := s.Prune()
	if diff := cmp.Diff([]Reference{d}, removed); diff != "" {
		t.Errorf("wrong removed objects (-want +got):\n%s", diff)
	}
	for _, ref := range []Reference{a, b, c} {
		if !s.Has(ref) {
			t.Errorf("%s was removed", ref)
		}
	}

	delete(s.Catalog(), "Test")
	s.Prune(b)
	if s.Has(a) || !s.Has(b) || !s.Has(c) {
		t.Error("wrong objects after second prune")
	}
}

func TestStoreClone(t *testing.T) {
	s := NewStore(V1_7)
	ref := s.Alloc()
	s.Put(ref, Dict{"A": Array{Integer(1), String("x")}})

	c, err := s.Clone()
	if err != nil {
		t.Fatal(err)
	}
	dict, err := GetDict(c, ref)
	if err != nil {
		t.Fatal(err)
	}
	dict["A"].(Array)[0] = Integer(2)
	dict["B"] = Bool(true)
	c.Info()["Title"] = String("clone")

	orig, _ := GetDict(s, ref)
	want := Dict{"A": Array{Integer(1), String("x")}}
	if d := cmp.Diff(want, orig); d != "" {
		t.Errorf("original was modified (-want +got):\n%s", d)
	}
	if _, ok := s.Info()["Title"]; ok {
		t.Error("info dict of original was modified")
	}
	if c.Alloc() != s.Alloc() {
		t.Error("clone allocates different references")
	}
}

func TestCloneStreamError(t *testing.T) {
	errRead := errors.New("read failed")
	obj := Dict{
		"Kids": Array{&Stream{Dict: Dict{}, R: iotest.ErrReader(errRead)}},
	}
	c, err := Clone(obj)
	if !errors.Is(err, errRead) {
		t.Errorf("got %v, %v", c, err)
	}

	stm := &Stream{Dict: Dict{"A": Integer(1)}, R: strings.NewReader("data")}
	c, err = Clone(stm)
	if err != nil {
		t.Fatal(err)
	}
	data, err := ReadStream(c.(*Stream))
	if err != nil || string(data) != "data" {
		t.Errorf("cloned stream data %q, %v", data, err)
	}
}

func TestOpenStream(t *testing.T) {
	for _, compress := range []bool{false, true} {
		s := NewStore(V1_7)
		ref := s.Alloc()
		w := s.OpenStream(ref, Dict{"Type": Name("Test")}, compress)
		_, err := w.Write([]byte("0 0 m 10 10 l S\n"))
		if err != nil {
			t.Fatal(err)
		}
		err = w.Close()
		if err != nil {
			t.Fatal(err)
		}

		stm, err := GetStream(s, ref)
		if err != nil {
			t.Fatal(err)
		}
		_, hasFilter := stm.Dict["Filter"]
		if hasFilter != compress {
			t.Errorf("compress=%t: wrong filter %v", compress, stm.Dict["Filter"])
		}
		data, err := DecodeStream(s, stm)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "0 0 m 10 10 l S\n" {
			t.Errorf("compress=%t: wrong data %q", compress, data)
		}
	}
}

func TestDecodeUnsupported(t *testing.T) {
	stm := &Stream{
		Dict: Dict{"Filter": Name("LZWDecode")},
		R:    bytes.NewReader([]byte{1, 2, 3}),
	}
	_, err := DecodeStream(nil, stm)
	if !errors.Is(err, errUnsupportedFilter) {
		t.Errorf("expected unsupported filter error, got %v", err)
	}
}

func TestResolveLoop(t *testing.T) {
	s := NewStore(V1_7)
	a := s.Alloc()
	b := s.Alloc()
	s.Put(a, b)
	s.Put(b, a)

	_, err := Resolve(s, a)
	var mf *MalformedFileError
	if !errors.As(err, &mf) {
		t.Errorf("expected MalformedFileError, got %v", err)
	}
}

func TestGetWrongType(t *testing.T) {
	s := NewStore(V1_7)
	ref := s.Alloc()
	s.Put(ref, Integer(1))
	_, err := GetDict(s, ref)
	if err == nil {
		t.Error("missing type error")
	}
	x, err := GetNumber(s, ref)
	if err != nil || x != 1 {
		t.Errorf("GetNumber: %g %v", x, err)
	}
}

func TestWrite(t *testing.T) {
	s := NewStore(V1_7)
	ref := s.Alloc()
	s.Put(ref, Integer(42))
	s.Catalog()["Test"] = ref

	buf := &bytes.Buffer{}
	err := s.Write(buf)
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "%PDF-1.7\n") {
		t.Errorf("wrong header %q", out[:10])
	}
	if !strings.Contains(out, "3 0 obj\n42\nendobj\n") {
		t.Error("object 3 missing")
	}
	if !strings.Contains(out, "xref\n0 4\n0000000000 65535 f\r\n") {
		t.Error("malformed xref table")
	}
	if !strings.Contains(out, "/Root 1 0 R") || !strings.Contains(out, "/Info 2 0 R") {
		t.Error("malformed trailer")
	}
	if !strings.HasSuffix(out, "%%EOF\n") {
		t.Error("missing EOF marker")
	}
}
