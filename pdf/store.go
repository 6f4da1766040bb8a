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
	"bytes"
	"compress/zlib"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Getter is implemented by object containers which can resolve references.
type Getter interface {
	Get(Reference) (Object, error)
}

// Store is an in-memory, cross-referenced collection of PDF objects.
//
// Every store has a document catalog and a document information dictionary,
// which are the roots used by [Store.Prune] and [Store.Write].
//
// A Store is not safe for concurrent use.
type Store struct {
	// Version is the PDF version used when the store is written.
	Version Version

	objects map[Reference]Object
	lastRef uint32

	catalog Reference
	info    Reference
}

// NewStore allocates a new, empty store.  The store contains an empty
// catalog and an empty document information dictionary.
func NewStore(v Version) *Store {
	s := &Store{
		Version: v,
		objects: map[Reference]Object{},
	}
	s.catalog = s.Alloc()
	s.objects[s.catalog] = Dict{"Type": Name("Catalog")}
	s.info = s.Alloc()
	s.objects[s.info] = Dict{}
	return s
}

// Alloc allocates a new object number for an indirect object.
func (s *Store) Alloc() Reference {
	for {
		s.lastRef++
		ref := NewReference(s.lastRef, 0)
		if _, ok := s.objects[ref]; !ok {
			return ref
		}
	}
}

// Get returns the object stored under ref.
// Missing objects are reported as nil, which represents the PDF null
// object.
func (s *Store) Get(ref Reference) (Object, error) {
	obj := s.objects[ref]
	if stm, ok := obj.(*Stream); ok {
		if seeker, ok := stm.R.(io.Seeker); ok {
			_, err := seeker.Seek(0, io.SeekStart)
			if err != nil {
				return nil, err
			}
		}
	}
	return obj, nil
}

// Put stores obj under the given reference, replacing any previous value.
// Storing nil deletes the object.
//
// The data of streams is read into memory, so that the stream can be read
// repeatedly.
func (s *Store) Put(ref Reference, obj Object) error {
	if obj == nil {
		delete(s.objects, ref)
		return nil
	}
	if stm, ok := obj.(*Stream); ok {
		if _, isSeeker := stm.R.(io.Seeker); !isSeeker {
			data, err := ReadStream(stm)
			if err != nil {
				return Wrap(err, ref.String())
			}
			stm.R = bytes.NewReader(data)
		}
	}
	s.objects[ref] = obj
	if n := ref.Number(); n > s.lastRef {
		s.lastRef = n
	}
	return nil
}

// Delete removes the given objects from the store.
// Missing objects are ignored.
func (s *Store) Delete(refs ...Reference) {
	for _, ref := range refs {
		delete(s.objects, ref)
	}
}

// Has reports whether an object is stored under ref.
func (s *Store) Has(ref Reference) bool {
	_, ok := s.objects[ref]
	return ok
}

// Len returns the number of objects in the store.
func (s *Store) Len() int {
	return len(s.objects)
}

// Refs returns the references of all objects in the store, ordered by
// object number.
func (s *Store) Refs() []Reference {
	refs := make([]Reference, 0, len(s.objects))
	for ref := range s.objects {
		refs = append(refs, ref)
	}
	slices.Sort(refs)
	return refs
}

// CatalogRef returns the reference of the document catalog.
func (s *Store) CatalogRef() Reference {
	return s.catalog
}

// Catalog returns the document catalog.
// Changes to the returned dictionary are reflected in the store.
func (s *Store) Catalog() Dict {
	dict, _ := s.objects[s.catalog].(Dict)
	return dict
}

// InfoRef returns the reference of the document information dictionary.
func (s *Store) InfoRef() Reference {
	return s.info
}

// Info returns the document information dictionary.
// Changes to the returned dictionary are reflected in the store.
func (s *Store) Info() Dict {
	dict, _ := s.objects[s.info].(Dict)
	return dict
}

// Reachable returns the set of references which can be reached from the
// catalog, the information dictionary, or any of the additional roots.
// References to objects which are not (yet) in the store are included.
func (s *Store) Reachable(roots ...Reference) map[Reference]bool {
	seen := map[Reference]bool{}
	todo := append([]Reference{s.catalog, s.info}, roots...)
	for len(todo) > 0 {
		ref := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if seen[ref] {
			continue
		}
		seen[ref] = true
		todo = appendRefs(todo, s.objects[ref])
	}
	return seen
}

func appendRefs(refs []Reference, obj Object) []Reference {
	switch x := obj.(type) {
	case Reference:
		refs = append(refs, x)
	case Array:
		for _, elem := range x {
			refs = appendRefs(refs, elem)
		}
	case Dict:
		for _, val := range x {
			refs = appendRefs(refs, val)
		}
	case *Stream:
		refs = appendRefs(refs, x.Dict)
	}
	return refs
}

// Prune deletes all objects which cannot be reached from the catalog,
// the information dictionary, or one of the given roots.
// The references of the deleted objects are returned in increasing order.
func (s *Store) Prune(roots ...Reference) []Reference {
	keep := s.Reachable(roots...)
	var removed []Reference
	for ref := range s.objects {
		if !keep[ref] {
			removed = append(removed, ref)
		}
	}
	slices.Sort(removed)
	s.Delete(removed...)
	return removed
}

// Clone returns a deep copy of the store.  Dictionaries, arrays and stream
// data are copied, so that changes to the clone never affect s.
// An error is returned if the data of a stream cannot be read.
func (s *Store) Clone() (*Store, error) {
	res := &Store{
		Version: s.Version,
		objects: make(map[Reference]Object, len(s.objects)),
		lastRef: s.lastRef,
		catalog: s.catalog,
		info:    s.info,
	}
	for ref, obj := range s.objects {
		c, err := Clone(obj)
		if err != nil {
			return nil, Wrap(err, ref.String())
		}
		res.objects[ref] = c
	}
	return res, nil
}

// OpenStream returns a writer which stores a stream object under ref once
// it is closed.  If compress is true, the data is compressed using the
// FlateDecode filter.
func (s *Store) OpenStream(ref Reference, dict Dict, compress bool) io.WriteCloser {
	streamDict := maps.Clone(dict)
	if streamDict == nil {
		streamDict = Dict{}
	}
	w := &storeStreamWriter{
		store: s,
		ref:   ref,
		dict:  streamDict,
	}
	if compress {
		streamDict["Filter"] = Name("FlateDecode")
		w.zw = zlib.NewWriter(&w.buf)
	}
	return w
}

type storeStreamWriter struct {
	store *Store
	ref   Reference
	dict  Dict
	buf   bytes.Buffer
	zw    *zlib.Writer
}

func (w *storeStreamWriter) Write(p []byte) (int, error) {
	if w.zw != nil {
		return w.zw.Write(p)
	}
	return w.buf.Write(p)
}

func (w *storeStreamWriter) Close() error {
	if w.zw != nil {
		err := w.zw.Close()
		if err != nil {
			return err
		}
	}
	return w.store.Put(w.ref, &Stream{
		Dict: w.dict,
		R:    bytes.NewReader(w.buf.Bytes()),
	})
}
