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
	"fmt"
	"io"
)

// DecodeStream returns the decoded contents of a stream.
// Only the FlateDecode filter (without predictors) is supported.
func DecodeStream(r Getter, x *Stream) ([]byte, error) {
	if x == nil {
		return nil, nil
	}
	data, err := ReadStream(x)
	if err != nil {
		return nil, err
	}

	filters, err := getFilters(r, x.Dict)
	if err != nil {
		return nil, err
	}
	for _, name := range filters {
		switch name {
		case "FlateDecode", "Fl":
			data, err = inflate(data)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: %s", errUnsupportedFilter, name)
		}
	}
	return data, nil
}

func getFilters(r Getter, dict Dict) ([]Name, error) {
	obj, err := Resolve(r, dict["Filter"])
	if err != nil {
		return nil, err
	}
	switch x := obj.(type) {
	case nil:
		return nil, nil
	case Name:
		return []Name{x}, nil
	case Array:
		res := make([]Name, 0, len(x))
		for _, elem := range x {
			name, err := GetName(r, elem)
			if err != nil {
				return nil, err
			}
			res = append(res, name)
		}
		return res, nil
	default:
		return nil, &MalformedFileError{
			Err: fmt.Errorf("invalid filter description %s", Format(obj)),
		}
	}
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func deflate(data []byte) []byte {
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	zw.Write(data)
	zw.Close()
	return buf.Bytes()
}

// FlateStream returns a stream object which holds the compressed form of
// data.  The entries of dict are copied into the stream dictionary.
func FlateStream(dict Dict, data []byte) *Stream {
	streamDict := make(Dict, len(dict)+1)
	for key, val := range dict {
		streamDict[key] = val
	}
	streamDict["Filter"] = Name("FlateDecode")
	return &Stream{
		Dict: streamDict,
		R:    bytesReader(deflate(data)),
	}
}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
