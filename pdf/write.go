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
	"fmt"
	"io"
)

// Write writes the contents of the store as a complete PDF file.
//
// Objects are written in order of increasing object number, followed by a
// classical cross-reference table and the trailer.  Object numbers which
// are not in use are marked as free.
func (s *Store) Write(w io.Writer) error {
	pw := &posWriter{w: w}

	_, err := fmt.Fprintf(pw, "%%PDF-%s\n%%\x80\x80\x80\x80\n", s.Version)
	if err != nil {
		return err
	}

	refs := s.Refs()
	size := uint32(1)
	if len(refs) > 0 {
		size = refs[len(refs)-1].Number() + 1
	}
	pos := make([]int64, size)
	gen := make([]uint16, size)
	for i := range pos {
		pos[i] = -1
	}

	for _, ref := range refs {
		pos[ref.Number()] = pw.pos
		gen[ref.Number()] = ref.Generation()
		_, err = fmt.Fprintf(pw, "%d %d obj\n", ref.Number(), ref.Generation())
		if err != nil {
			return err
		}
		err = writeObject(pw, s.objects[ref])
		if err != nil {
			return Wrap(err, ref.String())
		}
		_, err = pw.Write([]byte("\nendobj\n"))
		if err != nil {
			return err
		}
	}

	xRefPos := pw.pos
	_, err = fmt.Fprintf(pw, "xref\n0 %d\n", size)
	if err != nil {
		return err
	}
	for i := range pos {
		if pos[i] >= 0 {
			_, err = fmt.Fprintf(pw, "%010d %05d n\r\n", pos[i], gen[i])
		} else {
			// free object
			_, err = pw.Write([]byte("0000000000 65535 f\r\n"))
		}
		if err != nil {
			return err
		}
	}

	trailer := Dict{
		"Size": Integer(size),
		"Root": s.catalog,
	}
	if s.Has(s.info) {
		trailer["Info"] = s.info
	}
	_, err = pw.Write([]byte("trailer\n"))
	if err != nil {
		return err
	}
	err = trailer.PDF(pw)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(pw, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	return err
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
