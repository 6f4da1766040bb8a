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
	"encoding/binary"
	"math"
	"sync"
	"time"

	"golang.org/x/text/encoding/unicode"

	"seehuhn.de/go/icc"
)

// Tags of a matrix/TRC display profile, beyond those named in package icc.
const (
	tagWhitePoint icc.TagType = 0x77747074 // "wtpt"
	tagRedXYZ     icc.TagType = 0x7258595A // "rXYZ"
	tagGreenXYZ   icc.TagType = 0x6758595A // "gXYZ"
	tagBlueXYZ    icc.TagType = 0x6258595A // "bXYZ"
	tagRedTRC     icc.TagType = 0x72545243 // "rTRC"
	tagGreenTRC   icc.TagType = 0x67545243 // "gTRC"
	tagBlueTRC    icc.TagType = 0x62545243 // "bTRC"
)

// srgbProfile returns an ICC version 4 display profile for the sRGB
// colour space (IEC 61966-2-1), with primaries adapted to D50.
var srgbProfile = sync.OnceValue(func() []byte {
	// Bradford adaptation from D65 to D50
	chad := []float64{
		1.0478, 0.0229, -0.0502,
		0.0296, 0.9905, -0.0171,
		-0.0092, 0.0151, 0.7517,
	}
	// Y = (a*X + b)^g for X >= d, Y = c*X otherwise
	trc := parametricCurve(2.4, 1/1.055, 0.055/1.055, 1/12.92, 0.04045)

	p := &icc.Profile{
		Version:         icc.Version4_3_0,
		Class:           icc.DisplayDeviceProfile,
		ColorSpace:      icc.RGBSpace,
		PCS:             icc.PCSXYZSpace,
		CreationDate:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		RenderingIntent: icc.Perceptual,
		TagData: map[icc.TagType][]byte{
			icc.ProfileDescription: mlucTag("sRGB IEC61966-2.1"),
			icc.Copyright:          mlucTag("No copyright, use freely"),
			icc.ChromaticAdaption:  s15Fixed16Tag("sf32", chad...),
			tagWhitePoint:          s15Fixed16Tag("XYZ ", 0.9642, 1.0, 0.8249),
			tagRedXYZ:              s15Fixed16Tag("XYZ ", 0.4361, 0.2225, 0.0139),
			tagGreenXYZ:            s15Fixed16Tag("XYZ ", 0.3851, 0.7169, 0.0971),
			tagBlueXYZ:             s15Fixed16Tag("XYZ ", 0.1431, 0.0606, 0.7141),
			tagRedTRC:              trc,
			tagGreenTRC:            trc,
			tagBlueTRC:             trc,
		},
	}
	return p.Encode()
})

// s15Fixed16Tag encodes a tag of the given type which holds a sequence of
// fixed point numbers (XYZType, s15Fixed16ArrayType).
func s15Fixed16Tag(typ string, values ...float64) []byte {
	buf := make([]byte, 8, 8+4*len(values))
	copy(buf, typ)
	for _, v := range values {
		buf = binary.BigEndian.AppendUint32(buf, uint32(int32(math.Round(v*65536))))
	}
	return buf
}

// parametricCurve encodes a parametricCurveType tag using function type 3.
func parametricCurve(g, a, b, c, d float64) []byte {
	buf := s15Fixed16Tag("para", 0, g, a, b, c, d)
	// the first value is replaced by the function type and a reserved field
	binary.BigEndian.PutUint16(buf[8:], 3)
	binary.BigEndian.PutUint16(buf[10:], 0)
	return buf
}

// mlucTag encodes a multiLocalizedUnicodeType tag with a single en-US
// entry.
func mlucTag(text string) []byte {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	utf16, err := enc.Bytes([]byte(text))
	if err != nil {
		panic(err)
	}
	const headerSize = 16
	const recordSize = 12
	buf := make([]byte, 0, headerSize+recordSize+len(utf16))
	buf = append(buf, "mluc\000\000\000\000"...)
	buf = binary.BigEndian.AppendUint32(buf, 1)
	buf = binary.BigEndian.AppendUint32(buf, recordSize)
	buf = append(buf, "enUS"...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(utf16)))
	buf = binary.BigEndian.AppendUint32(buf, headerSize+recordSize)
	return append(buf, utf16...)
}
