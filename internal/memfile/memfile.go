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

// Package memfile provides an in-memory file for use in tests.
package memfile

import (
	"bytes"
	"errors"
	"io"
)

// MemFile is an [io.ReadWriteSeeker] backed by a byte slice.
// Writing past the end extends the file, and the zero value is an empty
// file.
type MemFile struct {
	Data   []byte
	Offset int64

	closed bool
}

// New returns an empty file.
func New() *MemFile {
	return new(MemFile)
}

// Write implements [io.Writer].
func (f *MemFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	end := int(f.Offset) + len(p)
	if end > len(f.Data) {
		f.Data = append(f.Data, make([]byte, end-len(f.Data))...)
	}
	copy(f.Data[f.Offset:end], p)
	f.Offset = int64(end)
	return len(p), nil
}

// Read implements [io.Reader].
func (f *MemFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if f.Offset >= int64(len(f.Data)) {
		return 0, io.EOF
	}
	n := copy(p, f.Data[f.Offset:])
	f.Offset += int64(n)
	return n, nil
}

// Seek implements [io.Seeker].
func (f *MemFile) Seek(offset int64, whence int) (int64, error) {
	base := map[int]int64{
		io.SeekStart:   0,
		io.SeekCurrent: f.Offset,
		io.SeekEnd:     int64(len(f.Data)),
	}
	b, ok := base[whence]
	if !ok {
		return f.Offset, errors.New("memfile: invalid whence")
	}
	pos := b + offset
	if pos < 0 {
		return f.Offset, errors.New("memfile: negative position")
	}
	f.Offset = pos
	return pos, nil
}

// Close marks the file as closed.  The contents remain available in Data.
func (f *MemFile) Close() error {
	f.closed = true
	return nil
}

// Count returns the number of non-overlapping occurrences of sep in the
// file contents.
func (f *MemFile) Count(sep string) int {
	return bytes.Count(f.Data, []byte(sep))
}

// ErrClosed is returned when a closed file is accessed.
var ErrClosed = errors.New("memfile: file is closed")
