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
	"strings"
)

// Version represents a version of the PDF standard.
type Version int

// PDF versions supported by this library.
const (
	V1_4 Version = iota + 4
	V1_5
	V1_6
	V1_7
	V2_0
)

// ParseVersion parses a version string like "1.7".
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1.4", "1.5", "1.6", "1.7":
		return Version(s[2] - '0'), nil
	case "2.0":
		return V2_0, nil
	}
	return 0, fmt.Errorf("%w %q", errVersion, s)
}

func (ver Version) String() string {
	switch ver {
	case V1_4, V1_5, V1_6, V1_7:
		return fmt.Sprintf("1.%d", int(ver))
	case V2_0:
		return "2.0"
	default:
		return fmt.Sprintf("Version(%d)", int(ver))
	}
}

// MalformedFileError indicates that an object graph could not be
// interpreted as a valid PDF structure.
type MalformedFileError struct {
	Err error
	Loc []string
}

func (err *MalformedFileError) Error() string {
	parts := make([]string, 0, len(err.Loc)+1)
	for i := len(err.Loc) - 1; i >= 0; i-- {
		parts = append(parts, err.Loc[i])
	}
	msg := "malformed PDF data"
	if err.Err != nil {
		msg = err.Err.Error()
	}
	parts = append(parts, msg)
	return strings.Join(parts, ": ")
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// Wrap adds location information to an error.
// If err is a [*MalformedFileError], the location is recorded in the Loc
// field, otherwise the error is wrapped using fmt.Errorf.
func Wrap(err error, loc string) error {
	if err == nil {
		return nil
	}
	var mf *MalformedFileError
	if errors.As(err, &mf) {
		mf.Loc = append(mf.Loc, loc)
		return err
	}
	return fmt.Errorf("%s: %w", loc, err)
}

var (
	errUnsupportedFilter = errors.New("unsupported filter")
	errVersion           = errors.New("unsupported PDF version")
)

// ErrNotFound is returned when a requested object is not present.
var ErrNotFound = errors.New("object not found")
