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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/typeset/pdf"
)

func addPages(t *testing.T, store *pdf.Store, tree *Tree, n int) []pdf.Reference {
	t.Helper()
	var refs []pdf.Reference
	for i := 0; i < n; i++ {
		ref := store.Alloc()
		err := store.Put(ref, pdf.Dict{"Type": pdf.Name("Page")})
		if err != nil {
			t.Fatal(err)
		}
		tree.Append(ref)
		refs = append(refs, ref)
	}
	return refs
}

func TestAppendRemove(t *testing.T) {
	store := pdf.NewStore(pdf.V1_7)
	tree := New(store)
	refs := addPages(t, store, tree, 3)

	if d := cmp.Diff(refs, tree.Kids()); d != "" {
		t.Errorf("wrong kids (-want +got):\n%s", d)
	}
	if tree.Count() != 3 {
		t.Errorf("wrong count %d", tree.Count())
	}
	page, _ := pdf.GetDict(store, refs[1])
	if page["Parent"] != tree.Ref() {
		t.Error("parent not set")
	}

	err := tree.Remove(refs[1])
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]pdf.Reference{refs[0], refs[2]}, tree.Kids()); d != "" {
		t.Errorf("wrong kids (-want +got):\n%s", d)
	}
	if tree.Count() != 2 {
		t.Errorf("wrong count %d", tree.Count())
	}

	err = tree.Remove(refs[1])
	if !errors.Is(err, pdf.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	last, err := tree.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if last != refs[2] {
		t.Errorf("popped %s, want %s", last, refs[2])
	}
}

func TestInsert(t *testing.T) {
	store := pdf.NewStore(pdf.V1_7)
	tree := New(store)
	refs := addPages(t, store, tree, 2)

	extra := store.Alloc()
	store.Put(extra, pdf.Dict{"Type": pdf.Name("Page")})
	tree.Insert(1, extra)

	want := []pdf.Reference{refs[0], extra, refs[1]}
	if d := cmp.Diff(want, tree.Kids()); d != "" {
		t.Errorf("wrong kids (-want +got):\n%s", d)
	}
	if tree.Index(extra) != 1 {
		t.Errorf("wrong index %d", tree.Index(extra))
	}
}

func TestOpen(t *testing.T) {
	store := pdf.NewStore(pdf.V1_7)
	_, err := Open(store)
	if !errors.Is(err, pdf.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	tree := New(store)
	refs := addPages(t, store, tree, 2)

	clone, err := store.Clone()
	if err != nil {
		t.Fatal(err)
	}
	tree2, err := Open(clone)
	if err != nil {
		t.Fatal(err)
	}
	tree2.Pop()
	if tree.Count() != 2 || tree2.Count() != 1 {
		t.Error("clone shares the page tree with the original")
	}
	if d := cmp.Diff(refs, tree.Kids()); d != "" {
		t.Errorf("original kids changed (-want +got):\n%s", d)
	}
}

func TestCountMismatch(t *testing.T) {
	store := pdf.NewStore(pdf.V1_7)
	tree := New(store)
	addPages(t, store, tree, 2)

	// damage the tree behind its back
	root, _ := pdf.GetDict(store, tree.Ref())
	root["Count"] = pdf.Integer(5)

	defer func() {
		if recover() == nil {
			t.Error("count mismatch not detected")
		}
	}()
	tree.Append(store.Alloc())
}
