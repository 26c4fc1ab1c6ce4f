package ctexture

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// nameSize is the width of a lump name field in binary records.
const nameSize = 8

// decodeName reads an 8-byte name field: bytes after the first NUL are
// ignored and ASCII letters are uppercased. Other bytes decode unchanged
// from Windows-1252.
func decodeName(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	raw := upperASCII(bytes.Clone(field))
	s, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(s)
}

// encodeName writes name into an 8-byte NUL-padded field with ASCII letters
// uppercased. Longer names are cut at 8 bytes.
func encodeName(dst []byte, name string) {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	b, err := enc.Bytes([]byte(name))
	if err != nil {
		b = []byte(name)
	}
	clear(dst[:nameSize])
	copy(dst[:nameSize], upperASCII(b))
}

// upperASCII uppercases a-z in place and returns b.
func upperASCII(b []byte) []byte {
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return b
}
