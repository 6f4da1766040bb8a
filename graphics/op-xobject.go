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

import "seehuhn.de/go/typeset/pdf"

// DrawXObject paints an XObject, given by its name in the XObject resource
// dictionary.
//
// This implements the PDF graphics operator "Do".
func (w *Writer) DrawXObject(name pdf.Name) {
	if !w.isValid("DrawXObject", objPage) {
		return
	}
	w.writeNameOp(name, "Do")
}
