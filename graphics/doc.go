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

// Package graphics writes PDF content streams.
//
// A [Writer] emits the operators for paths, colours, text and XObjects,
// one operator per line.  The writer keeps track of the graphics state, so
// that redundant state changes are omitted, and checks that operators are
// only used where the PDF content stream syntax allows them.  The first
// error is kept in Writer.Err and all later operations are ignored.
//
// The operators are defined in section 8 and 9 of ISO 32000-2:2020.
package graphics
