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
	"io"
	"os"
)

// Reader gives access to the objects of a PDF file.
//
// Objects are read from the file when they are requested.  Only files with
// classical cross-reference tables are supported, as written by
// [Store.Write].  Incremental updates are followed via the /Prev entries
// of the trailers.
type Reader struct {
	// Version is the PDF version of the file.  This is taken from the file
	// header, or from the /Version entry of the catalog if that is larger.
	Version Version

	r    io.ReaderAt
	size int64

	xref    map[uint32]xrefEntry
	trailer Dict
	catalog Dict

	// depth counts nested lookups of stream lengths.
	depth int
}

// xrefEntry gives the file offset of an object.  Free objects have pos -1.
type xrefEntry struct {
	pos        int64
	generation uint16
}

// Open opens the named PDF file for reading.  The caller must call
// [Reader.Close] when done.
func Open(fname string) (*Reader, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, err
	}
	r, err := NewReader(fd, fi.Size())
	if err != nil {
		fd.Close()
		return nil, err
	}
	return r, nil
}

// NewReader reads the cross-reference information of a PDF file of the
// given size.
func NewReader(data io.ReaderAt, size int64) (*Reader, error) {
	r := &Reader{
		r:    data,
		size: size,
		xref: map[uint32]xrefEntry{},
	}

	version, err := r.readHeader()
	if err != nil {
		return nil, err
	}
	r.Version = version

	err = r.readXRef()
	if err != nil {
		return nil, err
	}

	catalog, err := GetDict(r, r.trailer["Root"])
	if err != nil {
		return nil, Wrap(err, "document catalog")
	}
	if catalog == nil {
		return nil, &MalformedFileError{Err: errors.New("document catalog not found")}
	}
	r.catalog = catalog
	if name, _ := catalog["Version"].(Name); name != "" {
		if v, err := ParseVersion(string(name)); err == nil && v > r.Version {
			r.Version = v
		}
	}

	return r, nil
}

// Close closes the underlying file, if it has a Close method.
func (r *Reader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Trailer returns the trailer dictionary of the file.  For files with
// incremental updates, this is the trailer of the last update.
func (r *Reader) Trailer() Dict {
	return r.trailer
}

// Catalog returns the document catalog.
func (r *Reader) Catalog() Dict {
	return r.catalog
}

// CatalogRef returns the reference of the document catalog.
func (r *Reader) CatalogRef() Reference {
	ref, _ := r.trailer["Root"].(Reference)
	return ref
}

// InfoRef returns the reference of the document information dictionary, or
// 0 if the file has none.
func (r *Reader) InfoRef() Reference {
	ref, _ := r.trailer["Info"].(Reference)
	return ref
}

// Get implements the [Getter] interface.
// Missing and free objects are reported as nil.
func (r *Reader) Get(ref Reference) (Object, error) {
	entry, ok := r.xref[ref.Number()]
	if !ok || entry.pos < 0 || entry.generation != ref.Generation() {
		return nil, nil
	}

	s := r.scannerAt(entry.pos)
	fileRef, obj, err := s.readIndirect()
	if err != nil {
		return nil, Wrap(err, "object "+ref.String())
	}
	if fileRef != ref {
		return nil, &MalformedFileError{
			Err: fmt.Errorf("xref points to object %s", fileRef),
			Loc: []string{"object " + ref.String()},
		}
	}
	return obj, nil
}

func (r *Reader) scannerAt(pos int64) *scanner {
	s := newScanner(io.NewSectionReader(r.r, pos, r.size-pos), pos, r.getLength)
	s.src = r.r
	return s
}

// getLength resolves the /Length entry of a stream dictionary.
func (r *Reader) getLength(obj Object) (Integer, error) {
	if x, ok := obj.(Integer); ok {
		return x, nil
	}
	if r.depth > 0 {
		return 0, &MalformedFileError{Err: errors.New("stream length refers to a stream")}
	}
	r.depth++
	defer func() { r.depth-- }()

	x, err := GetInt(r, obj)
	if err != nil {
		return 0, err
	}
	return x, nil
}

func (r *Reader) readHeader() (Version, error) {
	buf := make([]byte, 8)
	n, err := r.r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return 0, err
	}
	buf = buf[:n]
	if !bytes.HasPrefix(buf, []byte("%PDF-")) || len(buf) < 8 {
		return 0, &MalformedFileError{Err: errors.New("PDF header not found")}
	}
	v, err := ParseVersion(string(buf[5:8]))
	if errors.Is(err, errVersion) && buf[5] == '1' && buf[6] == '.' && buf[7] >= '0' && buf[7] < '4' {
		// PDF 1.0 to 1.3 are subsets of PDF 1.4
		v, err = V1_4, nil
	}
	if err != nil {
		return 0, &MalformedFileError{Err: err, Loc: []string{"file header"}}
	}
	return v, nil
}

// readXRef reads all cross-reference sections of the file.
func (r *Reader) readXRef() error {
	start, err := r.findXRef()
	if err != nil {
		return err
	}

	seen := map[int64]bool{}
	for !seen[start] {
		seen[start] = true

		s := r.scannerAt(start)
		trailer, err := r.readXRefSection(s)
		if err != nil {
			return Wrap(err, fmt.Sprintf("xref section at byte %d", start))
		}
		if r.trailer == nil {
			r.trailer = trailer
		}

		prev, ok := trailer["Prev"].(Integer)
		if !ok {
			break
		}
		if prev <= 0 || int64(prev) >= r.size {
			return &MalformedFileError{Err: fmt.Errorf("invalid /Prev %d", prev)}
		}
		start = int64(prev)
	}
	return nil
}

// findXRef returns the file offset given after the last "startxref".
func (r *Reader) findXRef() (int64, error) {
	const tail = 1024
	from := max(r.size-tail, 0)
	buf := make([]byte, r.size-from)
	n, err := r.r.ReadAt(buf, from)
	if err != nil && err != io.EOF {
		return 0, err
	}
	buf = buf[:n]

	idx := bytes.LastIndex(buf, []byte("startxref"))
	if idx < 0 {
		return 0, &MalformedFileError{Err: errors.New("startxref not found")}
	}
	pos := from + int64(idx) + int64(len("startxref"))
	s := newScanner(bytes.NewReader(buf[idx+len("startxref"):]), pos, nil)
	x, err := s.readInteger()
	if err != nil {
		return 0, err
	}
	if x <= 0 || int64(x) >= r.size {
		return 0, &MalformedFileError{Err: fmt.Errorf("invalid xref offset %d", x)}
	}
	return int64(x), nil
}

// readXRefSection reads one cross-reference table and the following
// trailer.  Entries already present in r.xref are kept, since sections are
// read from the newest to the oldest.
func (r *Reader) readXRefSection(s *scanner) (Dict, error) {
	buf, err := s.peek(4)
	if err != nil {
		return nil, err
	}
	if string(buf) != "xref" {
		return nil, &MalformedFileError{Err: errXRefStream}
	}
	s.discard(4)

	for {
		err := s.skipSpace()
		if err != nil {
			return nil, err
		}
		buf, err := s.peek(1)
		if err != nil {
			return nil, err
		}
		if len(buf) == 0 || buf[0] < '0' || buf[0] > '9' {
			break
		}

		first, err := s.readInteger()
		if err != nil {
			return nil, err
		}
		count, err := s.readInteger()
		if err != nil {
			return nil, err
		}
		if first < 0 || count < 0 || first+count > 1<<32 {
			return nil, s.errorf("invalid xref subsection %d %d", first, count)
		}
		for i := range uint32(count) {
			err := r.readXRefEntry(s, uint32(first)+i)
			if err != nil {
				return nil, err
			}
		}
	}

	err = s.expect("trailer")
	if err != nil {
		return nil, err
	}
	return s.readDict()
}

func (r *Reader) readXRefEntry(s *scanner, number uint32) error {
	pos, err := s.readInteger()
	if err != nil {
		return err
	}
	gen, err := s.readInteger()
	if err != nil {
		return err
	}
	err = s.skipSpace()
	if err != nil {
		return err
	}
	buf, err := s.peek(1)
	if err != nil {
		return err
	}
	if len(buf) == 0 || (buf[0] != 'n' && buf[0] != 'f') {
		return s.errorf("invalid xref entry for object %d", number)
	}
	inUse := buf[0] == 'n'
	s.discard(1)

	if _, seen := r.xref[number]; seen {
		return nil
	}
	if !inUse {
		r.xref[number] = xrefEntry{pos: -1}
		return nil
	}
	if pos <= 0 || int64(pos) >= r.size || gen < 0 || gen > 0xFFFF {
		return s.errorf("invalid xref entry for object %d", number)
	}
	r.xref[number] = xrefEntry{pos: int64(pos), generation: uint16(gen)}
	return nil
}

var errXRefStream = errors.New("cross-reference streams are not supported")
