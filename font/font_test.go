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

package font

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/typeset/pdf"
)

type fixedGap float64

func (g fixedGap) LineGap(size float64) float64 {
	return float64(g) * size
}

func TestCalcLineMetrics(t *testing.T) {
	cases := []struct {
		lineHeight float64
		gap        fixedGap
		size       float64
		want       LineMetrics
	}{
		{1, 0, 10, LineMetrics{Height: 10}},
		{0, 0, 10, LineMetrics{Height: 10}},
		{1.5, 0, 10, LineMetrics{Height: 15, Leading: 5, PaddingTop: 2.5, PaddingBottom: 2.5}},
		{1.2, 0.1, 10, LineMetrics{Height: 12, Leading: 2, PaddingTop: 2, PaddingBottom: 1}},
		{0.5, 0, 10, LineMetrics{Height: 5, Leading: -5, PaddingTop: -2.5, PaddingBottom: -2.5}},
	}
	opt := cmp.Comparer(func(a, b float64) bool {
		return math.Abs(a-b) < 1e-9
	})
	for _, test := range cases {
		got := CalcLineMetrics(test.lineHeight, test.gap, test.size)
		if d := cmp.Diff(test.want, got, opt); d != "" {
			t.Errorf("CalcLineMetrics(%g, %g, %g) (-want +got):\n%s",
				test.lineHeight, float64(test.gap), test.size, d)
		}
	}
}

func TestLineMetricsIdentities(t *testing.T) {
	for _, lh := range []float64{0.8, 1, 1.15, 1.5, 2} {
		for _, size := range []float64{6, 10.5, 12, 24} {
			gap := fixedGap(0.07)
			m := CalcLineMetrics(lh, gap, size)
			if math.Abs(m.Height-lh*size) > 1e-9 {
				t.Errorf("height %g != %g*%g", m.Height, lh, size)
			}
			if math.Abs(m.Leading-(m.Height-size)) > 1e-9 {
				t.Errorf("leading %g", m.Leading)
			}
			if math.Abs(m.PaddingTop-m.PaddingBottom-gap.LineGap(size)) > 1e-9 {
				t.Errorf("paddings %g %g", m.PaddingTop, m.PaddingBottom)
			}
			if m.FinalGap {
				t.Error("final gap set")
			}
		}
	}
}

func TestStyle(t *testing.T) {
	if s := ResolveStyle(Bold, Italic); s != BoldItalic {
		t.Errorf("got %s", s)
	}
	if s := ResolveStyle(); s != Normal {
		t.Errorf("got %s", s)
	}
	if d := cmp.Diff([]Style{Bold, Italic}, BoldItalic.Styles()); d != "" {
		t.Errorf("wrong styles (-want +got):\n%s", d)
	}
	for _, s := range []Style{Normal, Bold, Italic, BoldItalic} {
		back, err := ParseStyle(s.String())
		if err != nil {
			t.Fatal(err)
		}
		if back != s {
			t.Errorf("%s parsed as %s", s, back)
		}
	}
	if _, err := ParseStyle("oblique"); err == nil {
		t.Error("unknown style accepted")
	}
}

func TestRegistryMissing(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("Nope", Normal)
	if !errors.Is(err, pdf.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if reg.Has("Nope") {
		t.Error("missing family reported")
	}
}
