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

// Package gofont provides the Go font families as layout faces.
package gofont

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"

	"seehuhn.de/go/typeset/font"
)

// Family names under which the Go fonts are registered.
const (
	Go          = "Go"
	GoMedium    = "Go Medium"
	GoMono      = "Go Mono"
	GoSmallcaps = "Go Smallcaps"
)

// Font identifies individual fonts in the Go font family.
type Font int

// Constants for the available fonts in the Go font family.
const (
	Regular         Font = iota // Go Regular
	Bold                        // Go Semi Bold
	BoldItalic                  // Go Semi Bold Italic
	Italic                      // Go Italic
	Medium                      // Go Medium Regular
	MediumItalic                // Go Medium Italic
	Smallcaps                   // Go Smallcaps Regular
	SmallcapsItalic             // Go Smallcaps Italic
	Mono                        // Go Mono Regular
	MonoBold                    // Go Mono Semi Bold
	MonoBoldItalic              // Go Mono Semi Bold Italic
	MonoItalic                  // Go Mono Italic
)

type fontInfo struct {
	data   []byte
	family string
	style  font.Style
}

var fonts = map[Font]fontInfo{
	Regular:         {goregular.TTF, Go, font.Normal},
	Bold:            {gobold.TTF, Go, font.Bold},
	Italic:          {goitalic.TTF, Go, font.Italic},
	BoldItalic:      {gobolditalic.TTF, Go, font.BoldItalic},
	Medium:          {gomedium.TTF, GoMedium, font.Normal},
	MediumItalic:    {gomediumitalic.TTF, GoMedium, font.Italic},
	Smallcaps:       {gosmallcaps.TTF, GoSmallcaps, font.Normal},
	SmallcapsItalic: {gosmallcapsitalic.TTF, GoSmallcaps, font.Italic},
	Mono:            {gomono.TTF, GoMono, font.Normal},
	MonoBold:        {gomonobold.TTF, GoMono, font.Bold},
	MonoItalic:      {gomonoitalic.TTF, GoMono, font.Italic},
	MonoBoldItalic:  {gomonobolditalic.TTF, GoMono, font.BoldItalic},
}

// All contains all the Go font family fonts available in this package.
var All = []Font{
	Regular, Bold, BoldItalic, Italic,
	Medium, MediumItalic,
	Smallcaps, SmallcapsItalic,
	Mono, MonoBold, MonoBoldItalic, MonoItalic,
}

// Face returns the layout face for f.
// Faces are parsed once and then shared.
func (f Font) Face() (*font.Face, error) {
	faces, err := loadFaces()
	if err != nil {
		return nil, err
	}
	face, ok := faces[f]
	if !ok {
		return nil, fmt.Errorf("gofont: unknown font %d", f)
	}
	return face, nil
}

// Registry returns a new registry which contains all Go font families.
func Registry() (*font.Registry, error) {
	faces, err := loadFaces()
	if err != nil {
		return nil, err
	}
	reg := font.NewRegistry()
	for _, f := range All {
		face := faces[f]
		reg.Register(face.Family, face)
	}
	return reg, nil
}

var loadFaces = sync.OnceValues(func() (map[Font]*font.Face, error) {
	res := make(map[Font]*font.Face, len(fonts))
	for f, info := range fonts {
		face, err := font.New(info.data, info.family, info.style)
		if err != nil {
			return nil, fmt.Errorf("gofont: %w", err)
		}
		res[f] = face
	}
	return res, nil
})
