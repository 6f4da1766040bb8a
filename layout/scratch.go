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

package layout

import (
	"seehuhn.de/go/typeset/document"
)

// ScratchPool holds one scratch document per real document.
//
// Scratch documents are created from the prototype of the real document,
// on first use, and are reused for all later simulations.  Nothing done
// in a scratch document is ever written back to the real document.
//
// The zero value is ready to use.  A ScratchPool is not safe for
// concurrent use.
type ScratchPool struct {
	scratch map[*document.Document]*document.Document
}

// NewScratchPool returns an empty pool.
func NewScratchPool() *ScratchPool {
	return &ScratchPool{}
}

// Get returns the scratch document for doc.
//
// If doc has no prototype, a warning is logged and a fresh document with
// default settings (but the fonts of doc) is used instead.
func (sp *ScratchPool) Get(doc *document.Document) (*document.Document, error) {
	if s, ok := sp.scratch[doc]; ok {
		return s, nil
	}

	var s *document.Document
	var err error
	if proto := doc.Prototype(); proto != nil {
		s, err = proto.Instantiate()
	} else {
		doc.Warnf("no scratch prototype available; instantiating fresh scratch document")
		s, err = document.New(&document.Options{
			Fonts:  doc.Fonts().Clone(),
			Logger: doc.Logger(),
		})
	}
	if err != nil {
		return nil, err
	}
	s.MarkScratch()

	if sp.scratch == nil {
		sp.scratch = make(map[*document.Document]*document.Document)
	}
	sp.scratch[doc] = s
	return s, nil
}

// Release forgets the scratch document for doc.
func (sp *ScratchPool) Release(doc *document.Document) {
	delete(sp.scratch, doc)
}

// Len returns the number of cached scratch documents.
func (sp *ScratchPool) Len() int {
	return len(sp.scratch)
}
