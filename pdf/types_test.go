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
	"math"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Object
		out string
	}{
		{nil, "null"},
		{Bool(true), "true"},
		{Integer(-12), "-12"},
		{Real(1.5), "1.5"},
		{Real(2), "2."},
		{Name("Type"), "/Type"},
		{Name("A B"), "/A#20B"},
		{String("a"), "(a)"},
		{String("a (test version)"), "(a \\(test version\\))"},
		{String("tab\there"), "(tab\\there)"},
		{String("\x01\x02x"), "<010278>"},
		{String("a\x01bc"), "(a\\001bc)"},
		{String(""), "()"},
		{String("\000"), "<00>"},
		{Array{Integer(1), nil, Integer(3)}, "[1 null 3]"},
		{NewReference(12, 0), "12 0 R"},
		{Dict{"B": Integer(2), "A": Integer(1), "C": nil}, "<<\n/A 1\n/B 2\n>>"},
		{Dict{"S": &Stream{}}, "<streams must be indirect objects>"},
		{Dict(nil), "null"},
	}
	for _, test := range cases {
		out := Format(test.in)
		if out != test.out {
			t.Errorf("wrongly formatted, expected %q but got %q",
				test.out, out)
		}
	}
}

func TestReference(t *testing.T) {
	ref := NewReference(1234, 5)
	if ref.Number() != 1234 || ref.Generation() != 5 {
		t.Errorf("wrong reference: %d %d", ref.Number(), ref.Generation())
	}
	if s := ref.String(); s != "1234 5 R" {
		t.Errorf("wrong string %q", s)
	}
}

func TestStreamLength(t *testing.T) {
	data := "\nbinary stream data\000123\n   "
	stm := &Stream{
		Dict: Dict{"Length": Integer(1)},
		R:    strings.NewReader(data),
	}
	buf := &bytes.Buffer{}
	err := stm.PDF(buf)
	if err != nil {
		t.Fatal(err)
	}
	want := "<<\n/Length 27\n>>\nstream\n" + data + "\nendstream"
	if buf.String() != want {
		t.Errorf("wrong stream:\n  %q\n  %q", buf.String(), want)
	}

	// a second write gives the same result
	buf.Reset()
	err = stm.PDF(buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != want {
		t.Errorf("stream could not be written twice")
	}
}

func TestReal(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Real(math.Pi).PDF(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "3.14159") {
		t.Errorf("wrong value %q", buf.String())
	}
}
