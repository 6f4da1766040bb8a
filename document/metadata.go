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

package document

import (
	"bytes"
	"fmt"

	"golang.org/x/text/language"

	"seehuhn.de/go/icc"
	"seehuhn.de/go/xmp"

	"seehuhn.de/go/typeset/pdf"
)

// PDF 2.0 sections: 14.3.2 14.11.5

// writeMetadata stores an XMP metadata stream, with the title, author and
// subject from the document information dictionary, and links it from the
// catalog.  If none of these entries is set, no stream is written.
func (d *Document) writeMetadata() error {
	info := d.store.Info()
	catalog := d.store.Catalog()
	title, _ := info["Title"].(pdf.String)
	author, _ := info["Author"].(pdf.String)
	subject, _ := info["Subject"].(pdf.String)
	if len(title) == 0 && len(author) == 0 && len(subject) == 0 {
		delete(catalog, "Metadata")
		return nil
	}

	dc := &xmp.DublinCore{}
	if len(title) > 0 {
		dc.Title.Set(language.Und, string(title))
	}
	if len(author) > 0 {
		dc.Creator.Append(xmp.NewProperName(string(author)))
	}
	if len(subject) > 0 {
		dc.Description.Set(language.Und, string(subject))
	}
	packet := xmp.NewPacket()
	err := packet.Set(dc)
	if err != nil {
		return err
	}

	ref, ok := catalog["Metadata"].(pdf.Reference)
	if !ok {
		ref = d.store.Alloc()
		catalog["Metadata"] = ref
	}
	dict := pdf.Dict{
		"Type":    pdf.Name("Metadata"),
		"Subtype": pdf.Name("XML"),
	}
	w := d.store.OpenStream(ref, dict, d.compress)
	err = packet.Write(w, nil)
	if err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// writeOutputIntent adds an sRGB output intent to the catalog.
// Existing output intents are kept.
func (d *Document) writeOutputIntent() error {
	catalog := d.store.Catalog()
	if catalog["OutputIntents"] != nil {
		return nil
	}

	profile := srgbProfile()
	p, err := icc.Decode(bytes.Clone(profile))
	if err != nil {
		return err
	}
	if p.ColorSpace != icc.RGBSpace {
		return fmt.Errorf("output intent: unexpected color space %v", p.ColorSpace)
	}

	profileRef := d.store.Alloc()
	err = d.store.Put(profileRef, pdf.FlateStream(pdf.Dict{
		"N": pdf.Integer(p.ColorSpace.NumComponents()),
	}, profile))
	if err != nil {
		return err
	}

	intent := pdf.Dict{
		"Type":                      pdf.Name("OutputIntent"),
		"S":                         pdf.Name("GTS_PDFA1"),
		"OutputConditionIdentifier": pdf.String("sRGB"),
		"Info":                      pdf.String("sRGB IEC61966-2.1"),
		"DestOutputProfile":         profileRef,
	}
	catalog["OutputIntents"] = pdf.Array{intent}
	return nil
}
