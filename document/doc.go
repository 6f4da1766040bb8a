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

// Package document implements the page-oriented rendering host used by the
// layout engine.
//
// A [Document] keeps the complete render state: the object store with its
// page tree, the list of pages, the cursor, the current bounding region with
// its stack of padding insets, the font selection and the page-creation
// hook.  All layout operations receive the document explicitly.
//
// Coordinates are PDF user space units, with the origin in the lower left
// corner of the page.  The cursor is measured upwards from the bottom of the
// current bounding region.
package document
