package ctexture

import (
	"errors"
	"fmt"
)

// Errors reported by the codecs.
var (
	// ErrUnexpectedEOF is returned when a definition ends before its closing brace.
	ErrUnexpectedEOF = errors.New("ctexture: unexpected end of input")

	// ErrExpectedComma is returned when a required ',' is missing.
	ErrExpectedComma = errors.New("ctexture: expected ','")

	// ErrExpectedNumber is returned when a numeric value is missing.
	ErrExpectedNumber = errors.New("ctexture: expected a number")

	// ErrInvalidTranslation is returned when a Translation property cannot be parsed.
	ErrInvalidTranslation = errors.New("ctexture: invalid translation")

	// ErrCorruptPNAMES is returned when PNAMES data is truncated.
	ErrCorruptPNAMES = errors.New("ctexture: PNAMES data is corrupt")

	// ErrCorruptTEXTUREX is returned when TEXTURE1/TEXTURE2 data is truncated
	// or references data outside the lump.
	ErrCorruptTEXTUREX = errors.New("ctexture: TEXTUREx data is corrupt")
)

// ParseError is a structural error in a text definition. Texture is the name
// of the texture being parsed, when known.
type ParseError struct {
	Texture string
	Line    int
	Err     error
}

func (e *ParseError) Error() string {
	if e.Texture == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("texture %s, line %d: %v", e.Texture, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
