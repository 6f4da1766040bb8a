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
)

// Clone returns a deep copy of obj.  References are copied as they are,
// the objects they point to are not duplicated.
//
// Stream data is read into memory.  An error is returned if this fails.
func Clone(obj Object) (Object, error) {
	switch x := obj.(type) {
	case Dict:
		if x == nil {
			return Dict(nil), nil
		}
		res := make(Dict, len(x))
		for key, val := range x {
			c, err := Clone(val)
			if err != nil {
				return nil, err
			}
			res[key] = c
		}
		return res, nil
	case Array:
		if x == nil {
			return Array(nil), nil
		}
		res := make(Array, len(x))
		for i, val := range x {
			c, err := Clone(val)
			if err != nil {
				return nil, err
			}
			res[i] = c
		}
		return res, nil
	case String:
		return String(bytes.Clone(x)), nil
	case *Stream:
		if x == nil {
			return x, nil
		}
		data, err := ReadStream(x)
		if err != nil {
			return nil, err
		}
		dict, err := Clone(x.Dict)
		if err != nil {
			return nil, err
		}
		return &Stream{
			Dict: dict.(Dict),
			R:    bytes.NewReader(bytes.Clone(data)),
		}, nil
	default:
		return obj, nil
	}
}
