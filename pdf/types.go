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
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Object is a PDF object.
//
// The PDF object types are represented by [Bool], [Integer], [Real],
// [String], [Name], [Array], [Dict], [*Stream] and [Reference].  The null
// object is represented by a nil Object.
type Object interface {
	// PDF writes the object in PDF file syntax.
	PDF(w io.Writer) error
}

// Bool is a boolean PDF object.
type Bool bool

// PDF implements the [Object] interface.
func (x Bool) PDF(w io.Writer) error {
	return writeFormatted(w, x)
}

// Integer is an integer PDF object.
type Integer int64

// PDF implements the [Object] interface.
func (x Integer) PDF(w io.Writer) error {
	return writeFormatted(w, x)
}

// Real is a real number PDF object.
type Real float64

// PDF implements the [Object] interface.
func (x Real) PDF(w io.Writer) error {
	return writeFormatted(w, x)
}

// String is a PDF string.  The bytes are stored without interpretation;
// the text encoding, if any, depends on where the string is used.
type String []byte

// PDF implements the [Object] interface.
func (x String) PDF(w io.Writer) error {
	return writeFormatted(w, x)
}

// Name is a PDF name object, without the leading slash.
type Name string

// PDF implements the [Object] interface.
func (x Name) PDF(w io.Writer) error {
	return writeFormatted(w, x)
}

// Array is a PDF array.
type Array []Object

// PDF implements the [Object] interface.
func (x Array) PDF(w io.Writer) error {
	return writeFormatted(w, x)
}

// Dict is a PDF dictionary.  Entries with a nil value are omitted when the
// dictionary is written.
type Dict map[Name]Object

// PDF implements the [Object] interface.
func (x Dict) PDF(w io.Writer) error {
	return writeFormatted(w, x)
}

// Reference is a reference to an indirect object.  The lower 32 bits hold
// the object number, the next 16 bits the generation number.
type Reference uint64

// NewReference creates a reference from an object number and a generation
// number.
func NewReference(number uint32, generation uint16) Reference {
	return Reference(uint64(number) | uint64(generation)<<32)
}

// Number returns the object number of the reference.
func (x Reference) Number() uint32 {
	return uint32(x)
}

// Generation returns the generation number of the reference.
func (x Reference) Generation() uint16 {
	return uint16(x >> 32)
}

func (x Reference) String() string {
	return fmt.Sprintf("%d %d R", x.Number(), x.Generation())
}

// PDF implements the [Object] interface.
func (x Reference) PDF(w io.Writer) error {
	return writeFormatted(w, x)
}

// Stream is a PDF stream.  The /Length entry is computed when the stream is
// written, any value in Dict is ignored.
//
// Streams held in a [Store] always have a reader which implements
// [io.Seeker], so that the data can be read more than once.
type Stream struct {
	Dict
	R io.Reader
}

// PDF implements the [Object] interface.
func (x *Stream) PDF(w io.Writer) error {
	data, err := ReadStream(x)
	if err != nil {
		return err
	}
	dict := maps.Clone(x.Dict)
	if dict == nil {
		dict = Dict{}
	}
	dict["Length"] = Integer(len(data))

	buf, err := appendObject(nil, dict)
	if err != nil {
		return err
	}
	buf = append(buf, "\nstream\n"...)
	buf = append(buf, data...)
	buf = append(buf, "\nendstream"...)
	_, err = w.Write(buf)
	return err
}

// ReadStream returns the raw (still encoded) contents of a stream.
// Seekable readers are rewound before and after reading.
func ReadStream(x *Stream) ([]byte, error) {
	if x.R == nil {
		return nil, nil
	}
	seeker, canSeek := x.R.(io.Seeker)
	if canSeek {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}
	data, err := io.ReadAll(x.R)
	if err != nil {
		return nil, err
	}
	if canSeek {
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Format returns the PDF file representation of obj.
// Errors are shown in angle brackets.
func Format(obj Object) string {
	buf, err := appendObject(nil, obj)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(buf)
}

// writeObject writes obj, which may be nil, to w.
func writeObject(w io.Writer, obj Object) error {
	if obj == nil {
		_, err := w.Write([]byte("null"))
		return err
	}
	return obj.PDF(w)
}

func writeFormatted(w io.Writer, obj Object) error {
	buf, err := appendObject(nil, obj)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// appendObject appends the PDF representation of obj to b.
func appendObject(b []byte, obj Object) ([]byte, error) {
	switch x := obj.(type) {
	case nil:
		return append(b, "null"...), nil
	case Bool:
		return strconv.AppendBool(b, bool(x)), nil
	case Integer:
		return strconv.AppendInt(b, int64(x), 10), nil
	case Real:
		return appendReal(b, float64(x)), nil
	case String:
		return appendString(b, x), nil
	case Name:
		return appendName(b, x), nil
	case Reference:
		if x>>48 != 0 {
			return b, fmt.Errorf("invalid reference 0x%016x", uint64(x))
		}
		b = strconv.AppendUint(b, uint64(x.Number()), 10)
		b = append(b, ' ')
		b = strconv.AppendUint(b, uint64(x.Generation()), 10)
		return append(b, " R"...), nil
	case Array:
		b = append(b, '[')
		for i, elem := range x {
			if i > 0 {
				b = append(b, ' ')
			}
			var err error
			b, err = appendObject(b, elem)
			if err != nil {
				return b, err
			}
		}
		return append(b, ']'), nil
	case Dict:
		if x == nil {
			return append(b, "null"...), nil
		}
		keys := make([]Name, 0, len(x))
		for key, val := range x {
			if val != nil {
				keys = append(keys, key)
			}
		}
		slices.Sort(keys)
		b = append(b, "<<"...)
		for _, key := range keys {
			b = append(b, '\n')
			b = appendName(b, key)
			b = append(b, ' ')
			var err error
			b, err = appendObject(b, x[key])
			if err != nil {
				return b, err
			}
		}
		return append(b, "\n>>"...), nil
	case *Stream:
		return b, errDirectStream
	default:
		buf := &byteWriter{b}
		err := obj.PDF(buf)
		return buf.b, err
	}
}

// appendReal formats x without exponent.  Whole numbers get a trailing
// period, so that they are read back as reals.
func appendReal(b []byte, x float64) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, x, 'f', -1, 64)
	if !slices.Contains(b[start:], '.') {
		b = append(b, '.')
	}
	return b
}

// appendString uses the literal form, unless the string consists mostly
// of control characters and non-ASCII bytes.
func appendString(b []byte, s String) []byte {
	special := 0
	for _, c := range s {
		if c < 0x20 || c >= 0x7f {
			special++
		}
	}
	if 3*special > len(s) {
		b = append(b, '<')
		for _, c := range s {
			b = append(b, hexDigits[c>>4], hexDigits[c&15])
		}
		return append(b, '>')
	}

	b = append(b, '(')
	for _, c := range s {
		switch c {
		case '(', ')', '\\':
			b = append(b, '\\', c)
		case '\n':
			b = append(b, `\n`...)
		case '\r':
			b = append(b, `\r`...)
		case '\t':
			b = append(b, `\t`...)
		case '\b':
			b = append(b, `\b`...)
		case '\f':
			b = append(b, `\f`...)
		default:
			if c < 0x20 {
				b = append(b, '\\', '0'+c>>6, '0'+c>>3&7, '0'+c&7)
			} else {
				b = append(b, c)
			}
		}
	}
	return append(b, ')')
}

func appendName(b []byte, n Name) []byte {
	b = append(b, '/')
	for i := 0; i < len(n); i++ {
		c := n[i]
		if c <= 0x20 || c >= 0x7f || c == '#' || isDelimiter(c) {
			b = append(b, '#', hexDigits[c>>4], hexDigits[c&15])
		} else {
			b = append(b, c)
		}
	}
	return b
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

const hexDigits = "0123456789abcdef"

type byteWriter struct {
	b []byte
}

func (w *byteWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}

var errDirectStream = errors.New("streams must be indirect objects")
