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

// A Copier transfers objects from one PDF file into a [Store].
//
// Indirect objects are copied at most once: all references to the same
// source object are mapped to the same new reference.  This keeps shared
// resources like fonts shared in the destination, and makes reference
// cycles (for example /Parent links) safe to follow.
type Copier struct {
	src  Getter
	dst  *Store
	seen map[Reference]Reference
}

// NewCopier returns a Copier which reads from src and writes to dst.
func NewCopier(dst *Store, src Getter) *Copier {
	return &Copier{
		src:  src,
		dst:  dst,
		seen: map[Reference]Reference{},
	}
}

// Copy returns a version of obj which is valid in the destination store.
// Indirect objects reachable from obj are copied as needed.
func (c *Copier) Copy(obj Object) (Object, error) {
	switch x := obj.(type) {
	case Reference:
		return c.CopyReference(x)
	case Array:
		out := make(Array, len(x))
		for i, elem := range x {
			val, err := c.Copy(elem)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	case Dict:
		return c.copyDict(x)
	case *Stream:
		dict, err := c.copyDict(x.Dict)
		if err != nil {
			return nil, err
		}
		raw, err := ReadStream(x)
		if err != nil {
			return nil, err
		}
		return &Stream{Dict: dict, R: bytesReader(raw)}, nil
	}
	return Clone(obj)
}

// CopyReference copies the object ref points to and returns the
// corresponding reference in the destination store.
func (c *Copier) CopyReference(ref Reference) (Reference, error) {
	if newRef, done := c.seen[ref]; done {
		return newRef, nil
	}

	// The entry must be in place before recursing, to terminate cycles.
	newRef := c.dst.Alloc()
	c.seen[ref] = newRef

	obj, err := Resolve(c.src, ref)
	if err != nil {
		return 0, err
	}
	val, err := c.Copy(obj)
	if err != nil {
		return 0, err
	}
	if val == nil {
		// a dangling reference in the source still needs a target
		val = Dict(nil)
	}
	return newRef, c.dst.Put(newRef, val)
}

func (c *Copier) copyDict(dict Dict) (Dict, error) {
	if dict == nil {
		return nil, nil
	}
	out := make(Dict, len(dict))
	for key, val := range dict {
		newVal, err := c.Copy(val)
		if err != nil {
			return nil, err
		}
		out[key] = newVal
	}
	return out, nil
}
