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

// Package pagetree maintains the page tree of a document held in a
// [pdf.Store].
//
// The tree consists of a single root node of type /Pages, whose /Kids array
// lists the page objects in document order.  All changes are made in place,
// so that they are immediately visible to readers of the store.
package pagetree

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/typeset/pdf"
)

// Tree is the root node of a page tree.
type Tree struct {
	store *pdf.Store
	ref   pdf.Reference
	node  pdf.Dict
}

// New allocates an empty page tree in store and registers it in the
// document catalog.
func New(store *pdf.Store) *Tree {
	ref := store.Alloc()
	node := pdf.Dict{
		"Type":  pdf.Name("Pages"),
		"Kids":  pdf.Array{},
		"Count": pdf.Integer(0),
	}
	store.Put(ref, node)
	store.Catalog()["Pages"] = ref
	return &Tree{store: store, ref: ref, node: node}
}

// Open returns the page tree registered in the catalog of store.
func Open(store *pdf.Store) (*Tree, error) {
	ref, ok := store.Catalog()["Pages"].(pdf.Reference)
	if !ok {
		return nil, fmt.Errorf("page tree root: %w", pdf.ErrNotFound)
	}
	node, err := pdf.GetDict(store, ref)
	if err != nil {
		return nil, pdf.Wrap(err, "page tree root")
	}
	if node == nil {
		return nil, fmt.Errorf("page tree root %s: %w", ref, pdf.ErrNotFound)
	}
	if _, isArray := node["Kids"].(pdf.Array); !isArray {
		return nil, &pdf.MalformedFileError{
			Err: errors.New("page tree root without /Kids"),
			Loc: []string{ref.String()},
		}
	}
	t := &Tree{store: store, ref: ref, node: node}
	t.checkInvariants()
	return t, nil
}

// Ref returns the reference of the root node.
func (t *Tree) Ref() pdf.Reference {
	return t.ref
}

// Kids returns a copy of the list of page references, in page order.
func (t *Tree) Kids() []pdf.Reference {
	kids := t.kids()
	res := make([]pdf.Reference, 0, len(kids))
	for _, kid := range kids {
		if ref, ok := kid.(pdf.Reference); ok {
			res = append(res, ref)
		}
	}
	return res
}

// Count returns the value of the /Count entry of the root node.
func (t *Tree) Count() int {
	count, _ := t.node["Count"].(pdf.Integer)
	return int(count)
}

// Len returns the number of entries in the /Kids array.
func (t *Tree) Len() int {
	return len(t.kids())
}

// Index returns the position of a page in the tree, or -1 if the page is
// not found.
func (t *Tree) Index(page pdf.Reference) int {
	return slices.Index(t.kids(), pdf.Object(page))
}

// Insert adds a page at position i.  The page dictionary is updated to
// point to the root node.
func (t *Tree) Insert(i int, page pdf.Reference) {
	kids := t.kids()
	if i < 0 || i > len(kids) {
		panic(fmt.Sprintf("page index %d out of range [0, %d]", i, len(kids)))
	}
	t.node["Kids"] = slices.Insert(kids, i, pdf.Object(page))
	t.node["Count"] = pdf.Integer(t.Count() + 1)
	if dict, _ := pdf.GetDict(t.store, page); dict != nil {
		dict["Parent"] = t.ref
	}
	t.checkInvariants()
}

// Append adds a page at the end of the document.
func (t *Tree) Append(page pdf.Reference) {
	t.Insert(t.Len(), page)
}

// Remove deletes a page from the tree.  The page object itself is left in
// the store.
func (t *Tree) Remove(page pdf.Reference) error {
	i := t.Index(page)
	if i < 0 {
		return fmt.Errorf("page %s: %w", page, pdf.ErrNotFound)
	}
	t.node["Kids"] = slices.Delete(t.kids(), i, i+1)
	t.node["Count"] = pdf.Integer(t.Count() - 1)
	t.checkInvariants()
	return nil
}

// Pop removes the last page from the tree and returns its reference.
func (t *Tree) Pop() (pdf.Reference, error) {
	kids := t.Kids()
	if len(kids) == 0 {
		return 0, fmt.Errorf("empty page tree: %w", pdf.ErrNotFound)
	}
	last := kids[len(kids)-1]
	return last, t.Remove(last)
}

func (t *Tree) kids() pdf.Array {
	kids, _ := t.node["Kids"].(pdf.Array)
	return kids
}

// checkInvariants panics if the /Count entry disagrees with the number of
// kids.  This can only happen if the tree was modified outside this
// package.
func (t *Tree) checkInvariants() {
	if count, n := t.Count(), t.Len(); count != n {
		panic(fmt.Sprintf("page tree %s: /Count is %d but there are %d kids",
			t.ref, count, n))
	}
}
