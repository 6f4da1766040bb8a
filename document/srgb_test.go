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
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/icc"
)

func TestSRGBProfile(t *testing.T) {
	data := srgbProfile()
	p, err := icc.Decode(bytes.Clone(data))
	if err != nil {
		t.Fatal(err)
	}
	if p.Class != icc.DisplayDeviceProfile || p.ColorSpace != icc.RGBSpace || p.PCS != icc.PCSXYZSpace {
		t.Errorf("wrong header: %s %s %s", p.Class, p.ColorSpace, p.PCS)
	}
	if p.CheckSum != icc.CheckSumValid {
		t.Errorf("profile ID is %s", p.CheckSum)
	}

	for _, tag := range []icc.TagType{
		icc.ProfileDescription, icc.Copyright, icc.ChromaticAdaption,
		tagWhitePoint, tagRedXYZ, tagGreenXYZ, tagBlueXYZ,
		tagRedTRC, tagGreenTRC, tagBlueTRC,
	} {
		if _, ok := p.TagData[tag]; !ok {
			t.Errorf("missing tag %s", tag)
		}
	}

	cprt, err := p.Copyright()
	if err != nil {
		t.Fatal(err)
	}
	want := icc.MultiLocalizedUnicode{
		{Language: "en", Country: "US", Value: "No copyright, use freely"},
	}
	if d := cmp.Diff(want, cprt); d != "" {
		t.Errorf("copyright (-want +got):\n%s", d)
	}

	// the primaries add up to the D50 white point
	var sum [3]float64
	for _, tag := range []icc.TagType{tagRedXYZ, tagGreenXYZ, tagBlueXYZ} {
		xyz := p.TagData[tag]
		for i := range sum {
			sum[i] += float64(int32(getUint32(xyz[8+4*i:]))) / 65536
		}
	}
	for i, w := range []float64{0.9642, 1.0, 0.8249} {
		if math.Abs(sum[i]-w) > 1e-3 {
			t.Errorf("white point component %d: %g != %g", i, sum[i], w)
		}
	}

	if !bytes.Equal(data, srgbProfile()) {
		t.Error("profile is not reproducible")
	}
}

func TestParametricCurve(t *testing.T) {
	buf := parametricCurve(2.4, 1/1.055, 0.055/1.055, 1/12.92, 0.04045)
	if len(buf) != 32 || string(buf[:4]) != "para" {
		t.Fatalf("wrong tag %q", buf)
	}
	if buf[8] != 0 || buf[9] != 3 {
		t.Errorf("wrong function type % x", buf[8:10])
	}
	g := float64(int32(getUint32(buf[12:]))) / 65536
	if math.Abs(g-2.4) > 1e-4 {
		t.Errorf("gamma = %g", g)
	}
}

func getUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
