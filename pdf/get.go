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
)

// maxIndirection limits the length of reference chains followed by
// [Resolve].
const maxIndirection = 16

// Resolve follows references until a direct object is found.
// Missing objects resolve to nil.
func Resolve(r Getter, obj Object) (Object, error) {
	start, _ := obj.(Reference)
	for range maxIndirection + 1 {
		ref, ok := obj.(Reference)
		if !ok {
			return obj, nil
		}
		next, err := r.Get(ref)
		if err != nil {
			return nil, err
		}
		obj = next
	}
	return nil, &MalformedFileError{
		Err: errors.New("reference chain too long"),
		Loc: []string{"object " + start.String()},
	}
}

// resolveAndCast resolves obj and checks that the result has type T.
// A null object gives the zero value of T without an error.
func resolveAndCast[T Object](r Getter, obj Object) (T, error) {
	var zero T
	obj, err := Resolve(r, obj)
	if err != nil || obj == nil {
		return zero, err
	}
	if x, ok := obj.(T); ok {
		return x, nil
	}
	return zero, &MalformedFileError{
		Err: fmt.Errorf("expected %T, found %T", zero, obj),
	}
}

// These functions resolve references and check the type of the result.
var (
	GetArray  = resolveAndCast[Array]
	GetBool   = resolveAndCast[Bool]
	GetDict   = resolveAndCast[Dict]
	GetInt    = resolveAndCast[Integer]
	GetName   = resolveAndCast[Name]
	GetReal   = resolveAndCast[Real]
	GetStream = resolveAndCast[*Stream]
	GetString = resolveAndCast[String]
)

// GetNumber resolves obj and returns its value as a float64.
// Both integers and reals are accepted, null gives 0.
func GetNumber(r Getter, obj Object) (float64, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	if i, ok := obj.(Integer); ok {
		return float64(i), nil
	}
	if x, ok := obj.(Real); ok {
		return float64(x), nil
	}
	return 0, &MalformedFileError{
		Err: fmt.Errorf("expected a number, found %T", obj),
	}
}
