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

package pagetree

import (
	"errors"

	"seehuhn.de/go/typeset/pdf"
)

// FindPages lists the pages of a page tree in document order.  Unlike
// [Tree], this works for arbitrary nested trees, as found in files written
// by other software.
func FindPages(r pdf.Getter, root pdf.Reference) ([]pdf.Reference, error) {
	var res []pdf.Reference
	todo := []pdf.Reference{root}
	seen := map[pdf.Reference]bool{root: true}
	for len(todo) > 0 {
		k := len(todo) - 1
		ref := todo[k]
		todo = todo[:k]

		node, err := pdf.GetDict(r, ref)
		if err != nil {
			return nil, pdf.Wrap(err, "page tree node "+ref.String())
		}
		tp, err := pdf.GetName(r, node["Type"])
		if err != nil {
			return nil, pdf.Wrap(err, "page tree node "+ref.String())
		}
		switch tp {
		case "Page":
			res = append(res, ref)
		case "Pages":
			kids, err := pdf.GetArray(r, node["Kids"])
			if err != nil {
				return nil, pdf.Wrap(err, "page tree node "+ref.String())
			}
			for i := len(kids) - 1; i >= 0; i-- {
				kid, ok := kids[i].(pdf.Reference)
				if !ok || seen[kid] {
					return nil, &pdf.MalformedFileError{
						Err: errors.New("invalid page tree child"),
						Loc: []string{"page tree node " + ref.String()},
					}
				}
				seen[kid] = true
				todo = append(todo, kid)
			}
		default:
			return nil, &pdf.MalformedFileError{
				Err: errors.New("page tree node of invalid type"),
				Loc: []string{ref.String()},
			}
		}
	}
	return res, nil
}
