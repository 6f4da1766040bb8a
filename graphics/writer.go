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

package graphics

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// Writer writes a content stream.
type Writer struct {
	Content io.Writer
	Err     error

	currentObject objectType

	State
	stack []State

	nesting []pairType
}

// NewWriter returns a writer which appends operators to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{
		Content:       out,
		currentObject: objPage,
		State:         NewState(),
	}
}

// Depth returns the number of currently open q/Q and BT/ET pairs.
func (w *Writer) Depth() int {
	return len(w.nesting)
}

// isValid returns true if the current graphics object is one of the given
// types and if w.Err is nil.  Otherwise it sets w.Err and returns false.
func (w *Writer) isValid(cmd string, ss objectType) bool {
	if w.Err != nil {
		return false
	}
	if w.currentObject&ss != 0 {
		return true
	}
	w.Err = fmt.Errorf("unexpected state %q for %q", w.currentObject, cmd)
	return false
}

// writeOp writes the operands and the operator name as one line.
func (w *Writer) writeOp(op string, args ...float64) {
	buf := make([]byte, 0, 8*len(args)+len(op)+1)
	for _, x := range args {
		buf = append(buf, format(x)...)
		buf = append(buf, ' ')
	}
	buf = append(buf, op...)
	buf = append(buf, '\n')
	_, w.Err = w.Content.Write(buf)
}

type objectType int

const (
	objPage objectType = 1 << iota
	objPath
	objText
)

func (s objectType) String() string {
	switch s {
	case objPage:
		return "page"
	case objPath:
		return "path"
	case objText:
		return "text"
	default:
		return fmt.Sprintf("objectType(%d)", s)
	}
}

type pairType byte

const (
	pairTypeQ  pairType = iota + 1 // q ... Q
	pairTypeBT                     // BT ... ET
)

// format rounds x to three decimal places.
func format(x float64) string {
	x = math.Round(x*1000) / 1000
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func nearlyEqual(a, b float64) bool {
	const ε = 1e-6
	return math.Abs(a-b) < ε
}

func sliceNearlyEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i, x := range a {
		if !nearlyEqual(x, b[i]) {
			return false
		}
	}
	return true
}
