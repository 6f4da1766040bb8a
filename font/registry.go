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

package font

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"

	"seehuhn.de/go/typeset/pdf"
)

// Registry maps font family names and styles to faces.
//
// A Registry is not safe for concurrent modification.
type Registry struct {
	families map[string]map[Style]*Face
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		families: make(map[string]map[Style]*Face),
	}
}

// Register adds faces to a family, replacing previously registered faces
// with the same style.
func (r *Registry) Register(family string, faces ...*Face) {
	styles := r.families[family]
	if styles == nil {
		styles = make(map[Style]*Face)
		r.families[family] = styles
	}
	for _, f := range faces {
		styles[f.Style] = f
	}
}

// Lookup returns the face for the given family and style.
//
// If the family exists but lacks the requested style, the face for the
// closest available style is used: italic faces fall back to normal,
// bold-italic falls back to bold, then italic, then normal.
func (r *Registry) Lookup(family string, style Style) (*Face, error) {
	styles := r.families[family]
	if styles == nil {
		return nil, fmt.Errorf("font family %q: %w", family, pdf.ErrNotFound)
	}
	var candidates []Style
	switch style {
	case BoldItalic:
		candidates = []Style{BoldItalic, Bold, Italic, Normal}
	case Bold:
		candidates = []Style{Bold, Normal}
	case Italic:
		candidates = []Style{Italic, Normal}
	default:
		candidates = []Style{Normal}
	}
	for _, s := range candidates {
		if f := styles[s]; f != nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("font family %q, style %s: %w",
		family, style, pdf.ErrNotFound)
}

// Has reports whether the registry contains the given family.
func (r *Registry) Has(family string) bool {
	return len(r.families[family]) > 0
}

// Families returns the names of all registered families, in alphabetical
// order.
func (r *Registry) Families() []string {
	res := make([]string, 0, len(r.families))
	for name := range r.families {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Clone returns a copy of the registry.  The faces are shared, since they
// are immutable.
func (r *Registry) Clone() *Registry {
	res := NewRegistry()
	for name, styles := range r.families {
		res.families[name] = maps.Clone(styles)
	}
	return res
}
