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
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
)

func TestCopier(t *testing.T) {
	src := NewStore(V1_7)
	shared := src.Alloc()
	src.Put(shared, Dict{"Value": Integer(3)})
	top := src.Alloc()
	src.Put(top, Array{shared, shared, Name("x")})

	dst := NewStore(V1_7)
	c := NewCopier(dst, src)
	obj, err := c.Copy(top)
	if err != nil {
		t.Fatal(err)
	}
	newTop := obj.(Reference)

	a, err := GetArray(dst, newTop)
	if err != nil {
		t.Fatal(err)
	}
	if a[0] != a[1] {
		t.Error("shared object was copied twice")
	}
	val, err := GetDict(dst, a[0])
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(Dict{"Value": Integer(3)}, val); d != "" {
		t.Errorf("wrong copy (-want +got):\n%s", d)
	}

	// copying again reuses the translated reference
	obj2, err := c.Copy(top)
	if err != nil {
		t.Fatal(err)
	}
	if obj2 != newTop {
		t.Errorf("second copy gave %v, want %v", obj2, newTop)
	}
}

func TestRectangle(t *testing.T) {
	r := rect.Rect{LLx: 0, LLy: 0, URx: 595.5, URy: 842}
	a := AsRectangle(r)
	if d := cmp.Diff(Array{Integer(0), Integer(0), Real(595.5), Integer(842)}, a); d != "" {
		t.Errorf("wrong array (-want +got):\n%s", d)
	}

	back, err := GetRectangle(nil, Array{Integer(10), Real(842), Integer(0), Integer(0)})
	if err != nil {
		t.Fatal(err)
	}
	want := rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 842}
	if back != want {
		t.Errorf("got %v, want %v", back, want)
	}

	_, err = GetRectangle(nil, Array{Integer(1)})
	if err == nil {
		t.Error("short array accepted")
	}
}
