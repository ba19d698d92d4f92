// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stardict

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DataType is a type of data in an article. Lower case types are string-like
// data terminated by a null byte. Upper case types are file-like data that
// start with a 32-bit big endian size.
type DataType byte

const (
	// UTFTextType is utf-8 text.
	UTFTextType = DataType('m')

	// LocaleTextType is text in a locale encoding.
	LocaleTextType = DataType('l')

	// PangoTextType is utf-8 text in the Pango text format.
	PangoTextType = DataType('g')

	// PhoneticType is utf-8 text representing an English phonetic string.
	PhoneticType = DataType('t')

	// XDXFType is utf-8 encoded xml in XDXF format.
	XDXFType = DataType('x')

	// YinBiaoOrKataType is utf-8 encoded Yin Biao or Kana phonetic string.
	YinBiaoOrKataType = DataType('y')

	// PowerWordType is a utf-8 encoded KingSoft PowerWord XML format.
	PowerWordType = DataType('p')

	// MediaWikiType is utf-8 encoded text in MediaWiki format.
	MediaWikiType = DataType('w')

	// HTMLType is utf-8 encoded HTML text.
	HTMLType = DataType('h')

	// WordNetType is WordNet data.
	WordNetType = DataType('n')

	// ResourceFileListType is a list of files in resource storage.
	ResourceFileListType = DataType('r')

	// WavType is .wav sound file data.
	WavType = DataType('W')

	// PictureType is image file data.
	PictureType = DataType('P')

	// ExperimentalType is reserved for experimental features.
	ExperimentalType = DataType('X')
)

func (t DataType) valid() bool {
	switch t {
	case UTFTextType,
		LocaleTextType,
		PangoTextType,
		PhoneticType,
		XDXFType,
		YinBiaoOrKataType,
		PowerWordType,
		MediaWikiType,
		HTMLType,
		WordNetType,
		ResourceFileListType,
		WavType,
		PictureType,
		ExperimentalType:
		return true
	}
	return false
}

// IsText reports whether the data type is string-like.
func (t DataType) IsText() bool {
	return 'a' <= t && t <= 'z'
}

// Data is a single data item of an article.
type Data struct {
	Type DataType
	Data []byte
}

// decodeArticle splits the raw article b into data items. When seq is not
// empty it determines the item types and the last item has no terminator or
// size prefix.
func decodeArticle(b []byte, seq []DataType) ([]*Data, error) {
	var items []*Data
	if len(seq) > 0 {
		for i, t := range seq {
			last := i == len(seq)-1
			var data []byte
			var err error
			data, b, err = splitItem(b, t, last)
			if err != nil {
				return nil, err
			}
			items = append(items, &Data{Type: t, Data: data})
		}
		return items, nil
	}

	for len(b) > 0 {
		t := DataType(b[0])
		if !t.valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidType, rune(t))
		}
		var data []byte
		var err error
		data, b, err = splitItem(b[1:], t, false)
		if err != nil {
			return nil, err
		}
		items = append(items, &Data{Type: t, Data: data})
	}
	return items, nil
}

// splitItem returns the data of the first item of type t in b and the rest of
// b.
func splitItem(b []byte, t DataType, last bool) ([]byte, []byte, error) {
	if t.IsText() {
		i := bytes.IndexByte(b, 0)
		if i < 0 {
			// The final item may omit the terminator.
			return b, nil, nil
		}
		return b[:i], b[i+1:], nil
	}

	if last {
		return b, nil, nil
	}
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("%w: truncated %q size", ErrInvalidArticle, rune(t))
	}
	size := binary.BigEndian.Uint32(b)
	b = b[4:]
	if uint64(size) > uint64(len(b)) {
		return nil, nil, fmt.Errorf("%w: %q data size %d exceeds article", ErrInvalidArticle, rune(t), size)
	}
	return b[:size], b[size:], nil
}
