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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// scanner splits PDF file data into objects.
type scanner struct {
	r     *bufio.Reader
	start int64 // file offset of the first byte
	n     int64 // number of bytes consumed

	// src, if set, is used to read stream data.
	src io.ReaderAt

	// getInt resolves the /Length of streams.
	getInt func(Object) (Integer, error)
}

func newScanner(r io.Reader, start int64, getInt func(Object) (Integer, error)) *scanner {
	return &scanner{
		r:      bufio.NewReaderSize(r, 1024),
		start:  start,
		getInt: getInt,
	}
}

// pos returns the file offset of the next unread byte.
func (s *scanner) pos() int64 {
	return s.start + s.n
}

func (s *scanner) errorf(format string, args ...any) error {
	return &MalformedFileError{
		Err: fmt.Errorf(format, args...),
		Loc: []string{"byte " + strconv.FormatInt(s.pos(), 10)},
	}
}

// peek returns up to n bytes of input, without consuming them.
// At the end of input the returned slice is short.
func (s *scanner) peek(n int) ([]byte, error) {
	buf, err := s.r.Peek(n)
	if err == io.EOF || err == bufio.ErrBufferFull {
		err = nil
	}
	return buf, err
}

func (s *scanner) discard(n int) {
	m, _ := s.r.Discard(n)
	s.n += int64(m)
}

// scan consumes bytes while accept returns true.
func (s *scanner) scan(accept func(c byte) bool) error {
	for {
		c, err := s.r.ReadByte()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if !accept(c) {
			return s.r.UnreadByte()
		}
		s.n++
	}
}

// skipSpace skips white space and comments.
func (s *scanner) skipSpace() error {
	inComment := false
	return s.scan(func(c byte) bool {
		switch {
		case inComment:
			inComment = c != '\r' && c != '\n'
		case c == '%':
			inComment = true
		default:
			return isSpace(c)
		}
		return true
	})
}

// expect consumes the keyword kw, or returns an error if the input does not
// start with kw.
func (s *scanner) expect(kw string) error {
	buf, err := s.peek(len(kw))
	if err != nil {
		return err
	}
	if string(buf) != kw {
		return s.errorf("expected %q, found %q", kw, buf)
	}
	s.discard(len(kw))
	return nil
}

// readIndirect reads an object of the form "n g obj ... endobj".
func (s *scanner) readIndirect() (Reference, Object, error) {
	err := s.skipSpace()
	if err != nil {
		return 0, nil, err
	}
	num, err := s.readInteger()
	if err != nil {
		return 0, nil, err
	}
	gen, err := s.readInteger()
	if err != nil {
		return 0, nil, err
	}
	if num < 0 || num > 0xFFFFFFFF || gen < 0 || gen > 0xFFFF {
		return 0, nil, s.errorf("invalid object number %d %d", num, gen)
	}
	ref := NewReference(uint32(num), uint16(gen))

	err = s.skipSpace()
	if err != nil {
		return 0, nil, err
	}
	err = s.expect("obj")
	if err != nil {
		return 0, nil, err
	}
	obj, err := s.readObject()
	if err != nil {
		return 0, nil, Wrap(err, "object "+ref.String())
	}

	if dict, ok := obj.(Dict); ok {
		err = s.skipSpace()
		if err != nil {
			return 0, nil, err
		}
		buf, err := s.peek(6)
		if err != nil {
			return 0, nil, err
		}
		if string(buf) == "stream" {
			obj, err = s.readStream(dict)
			if err != nil {
				return 0, nil, Wrap(err, "object "+ref.String())
			}
		}
	}

	err = s.skipSpace()
	if err != nil {
		return 0, nil, err
	}
	err = s.expect("endobj")
	if err != nil {
		return 0, nil, err
	}
	return ref, obj, nil
}

// readObject reads a direct object, or a reference.
func (s *scanner) readObject() (Object, error) {
	err := s.skipSpace()
	if err != nil {
		return nil, err
	}
	buf, err := s.peek(5)
	if err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, s.errorf("unexpected end of input")
	}

	switch {
	case bytes.HasPrefix(buf, []byte("null")):
		s.discard(4)
		return nil, nil
	case bytes.HasPrefix(buf, []byte("true")):
		s.discard(4)
		return Bool(true), nil
	case bytes.HasPrefix(buf, []byte("false")):
		s.discard(5)
		return Bool(false), nil
	case buf[0] == '/':
		return s.readName()
	case buf[0] >= '0' && buf[0] <= '9', buf[0] == '+', buf[0] == '-', buf[0] == '.':
		x, err := s.readNumber()
		if err != nil {
			return nil, err
		}
		if i, ok := x.(Integer); ok {
			if ref, ok := s.tryReference(i); ok {
				return ref, nil
			}
		}
		return x, nil
	case bytes.HasPrefix(buf, []byte("<<")):
		return s.readDict()
	case buf[0] == '<':
		return s.readHexString()
	case buf[0] == '(':
		return s.readLiteralString()
	case buf[0] == '[':
		return s.readArray()
	}
	return nil, s.errorf("unexpected input %q", buf)
}

// tryReference checks whether the integer num is followed by
// "gen R".  If so, the input is consumed and the reference is returned.
func (s *scanner) tryReference(num Integer) (Reference, bool) {
	buf, _ := s.peek(16)
	i := 0
	skip := func(accept func(byte) bool) int {
		start := i
		for i < len(buf) && accept(buf[i]) {
			i++
		}
		return i - start
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }

	if skip(isSpace) == 0 {
		return 0, false
	}
	genStart := i
	if skip(isDigit) == 0 {
		return 0, false
	}
	gen, err := strconv.ParseUint(string(buf[genStart:i]), 10, 16)
	if err != nil {
		return 0, false
	}
	if skip(isSpace) == 0 || i >= len(buf) || buf[i] != 'R' {
		return 0, false
	}
	i++
	if i < len(buf) && !isSpace(buf[i]) && !isDelimiter(buf[i]) {
		return 0, false
	}
	if num < 0 || num > 0xFFFFFFFF {
		return 0, false
	}
	s.discard(i)
	return NewReference(uint32(num), uint16(gen)), true
}

func (s *scanner) readInteger() (Integer, error) {
	err := s.skipSpace()
	if err != nil {
		return 0, err
	}
	x, err := s.readNumber()
	if err != nil {
		return 0, err
	}
	i, ok := x.(Integer)
	if !ok {
		return 0, s.errorf("expected integer, found %s", Format(x))
	}
	return i, nil
}

// readNumber reads an integer or a real number.
func (s *scanner) readNumber() (Object, error) {
	var tok []byte
	isReal := false
	err := s.scan(func(c byte) bool {
		switch {
		case c >= '0' && c <= '9':
		case (c == '+' || c == '-') && len(tok) == 0:
		case c == '.' && !isReal:
			isReal = true
		default:
			return false
		}
		tok = append(tok, c)
		return true
	})
	if err != nil {
		return nil, err
	}

	if isReal {
		x, err := strconv.ParseFloat(string(tok), 64)
		if err != nil {
			return nil, s.errorf("invalid number %q", tok)
		}
		return Real(x), nil
	}
	x, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		return nil, s.errorf("invalid number %q", tok)
	}
	return Integer(x), nil
}

func (s *scanner) readName() (Name, error) {
	err := s.expect("/")
	if err != nil {
		return "", err
	}
	var res []byte
	hexLeft := 0
	var hexVal byte
	err = s.scan(func(c byte) bool {
		if hexLeft > 0 {
			d, ok := hexDigit(c)
			if !ok {
				return false
			}
			hexVal = hexVal<<4 | d
			hexLeft--
			if hexLeft == 0 {
				res = append(res, hexVal)
			}
			return true
		}
		switch {
		case c == '#':
			hexLeft, hexVal = 2, 0
		case isSpace(c) || isDelimiter(c):
			return false
		default:
			res = append(res, c)
		}
		return true
	})
	if err != nil {
		return "", err
	}
	return Name(res), nil
}

// readLiteralString reads a string in parentheses.
func (s *scanner) readLiteralString() (String, error) {
	err := s.expect("(")
	if err != nil {
		return nil, err
	}

	res := String{}
	depth := 0
	escape := false
	octal := 0
	var octalVal byte
	skipLF := false
	done := false
	err = s.scan(func(c byte) bool {
		if done {
			return false
		}
		if skipLF {
			skipLF = false
			if c == '\n' {
				return true
			}
		}
		if octal > 0 {
			if c >= '0' && c <= '7' {
				octalVal = octalVal<<3 | (c - '0')
				octal--
				if octal > 0 {
					return true
				}
				res = append(res, octalVal)
				return true
			}
			res = append(res, octalVal)
			octal = 0
		}
		if escape {
			escape = false
			switch c {
			case 'n':
				res = append(res, '\n')
			case 'r':
				res = append(res, '\r')
			case 't':
				res = append(res, '\t')
			case 'b':
				res = append(res, '\b')
			case 'f':
				res = append(res, '\f')
			case '\r':
				skipLF = true
			case '\n':
				// line continuation
			default:
				if c >= '0' && c <= '7' {
					octal, octalVal = 2, c-'0'
				} else {
					res = append(res, c)
				}
			}
			return true
		}
		switch c {
		case '\\':
			escape = true
			return true
		case '(':
			depth++
		case ')':
			if depth == 0 {
				done = true
				return true
			}
			depth--
		case '\r':
			c = '\n'
			skipLF = true
		}
		res = append(res, c)
		return true
	})
	if err != nil {
		return nil, err
	}
	if octal > 0 {
		res = append(res, octalVal)
	}
	if !done {
		return nil, s.errorf("unterminated string")
	}
	return res, nil
}

// readHexString reads a string in angle brackets.
func (s *scanner) readHexString() (String, error) {
	err := s.expect("<")
	if err != nil {
		return nil, err
	}
	res := String{}
	var hi byte
	odd := false
	done := false
	err = s.scan(func(c byte) bool {
		if done {
			return false
		}
		if c == '>' {
			done = true
			return true
		}
		d, ok := hexDigit(c)
		if !ok {
			return isSpace(c)
		}
		if odd {
			res = append(res, hi<<4|d)
		} else {
			hi = d
		}
		odd = !odd
		return true
	})
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, s.errorf("unterminated hex string")
	}
	if odd {
		res = append(res, hi<<4)
	}
	return res, nil
}

func (s *scanner) readArray() (Array, error) {
	err := s.expect("[")
	if err != nil {
		return nil, err
	}
	res := Array{}
	for {
		err := s.skipSpace()
		if err != nil {
			return nil, err
		}
		buf, err := s.peek(1)
		if err != nil {
			return nil, err
		}
		if len(buf) == 0 {
			return nil, s.errorf("unterminated array")
		}
		if buf[0] == ']' {
			s.discard(1)
			return res, nil
		}
		obj, err := s.readObject()
		if err != nil {
			return nil, err
		}
		res = append(res, obj)
	}
}

func (s *scanner) readDict() (Dict, error) {
	err := s.expect("<<")
	if err != nil {
		return nil, err
	}
	res := Dict{}
	for {
		err := s.skipSpace()
		if err != nil {
			return nil, err
		}
		buf, err := s.peek(2)
		if err != nil {
			return nil, err
		}
		if string(buf) == ">>" {
			s.discard(2)
			return res, nil
		}
		if len(buf) == 0 || buf[0] != '/' {
			return nil, s.errorf("expected a name as dictionary key, found %q", buf)
		}
		key, err := s.readName()
		if err != nil {
			return nil, err
		}
		val, err := s.readObject()
		if err != nil {
			return nil, err
		}
		if val != nil {
			res[key] = val
		}
	}
}

// readStream reads the stream data following the dictionary dict.  The
// data is not copied, the returned stream reads directly from s.src.
func (s *scanner) readStream(dict Dict) (*Stream, error) {
	err := s.expect("stream")
	if err != nil {
		return nil, err
	}
	buf, err := s.peek(2)
	if err != nil {
		return nil, err
	}
	switch {
	case bytes.HasPrefix(buf, []byte("\r\n")):
		s.discard(2)
	case bytes.HasPrefix(buf, []byte("\n")):
		s.discard(1)
	default:
		return nil, s.errorf("missing end of line after \"stream\"")
	}
	if s.src == nil {
		return nil, s.errorf("stream not allowed here")
	}

	length, err := s.getInt(dict["Length"])
	if err != nil {
		return nil, Wrap(err, "stream length")
	}
	if length < 0 {
		return nil, s.errorf("invalid stream length %d", length)
	}
	start := s.pos()
	s.discard(int(length))
	if s.pos() != start+int64(length) {
		return nil, s.errorf("stream data truncated")
	}

	err = s.skipSpace()
	if err != nil {
		return nil, err
	}
	err = s.expect("endstream")
	if err != nil {
		return nil, err
	}
	return &Stream{
		Dict: dict,
		R:    io.NewSectionReader(s.src, start, int64(length)),
	}, nil
}

func isSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
