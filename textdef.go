package ctexture

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wadtools/ctexture/tokenizer"
	"github.com/wadtools/ctexture/translation"
)

// ParseTextures parses a TEXTURES document: texture definitions introduced
// by a type keyword (Texture, WallTexture, Flat, Sprite, Graphic) and define
// lines. Unknown top-level tokens and blocks are skipped. Parsing stops at the
// first structural error; the textures read so far are returned with it.
func ParseTextures(src, name string) (*TextureList, error) {
	tz := tokenizer.New(src, name)
	list := NewTextureList()

	for !tz.AtEnd() {
		tok := tz.Next()
		var (
			t   *Texture
			err error
		)
		switch {
		case isKeyword(tok, "define"):
			t, err = ParseDefine(tz)
		case tok.Is("{"):
			if !tz.SkipBlock() {
				err = &ParseError{Line: tok.Line, Err: ErrUnexpectedEOF}
			}
		default:
			typ, ok := canonicalType(tok.Text)
			if !ok || tok.Quoted {
				Logger().Debug("ctexture: skipping token", "source", name, "line", tok.Line, "token", tok.Text)
				continue
			}
			t, err = ParseTexture(tz, typ)
		}
		if err != nil {
			return list, err
		}
		if t != nil {
			list.Add(t)
		}
	}

	if err := tz.Err(); err != nil {
		Logger().Warn("ctexture: tokenizer errors", "source", name, "err", err)
	}
	return list, nil
}

// ParseTexture parses one texture definition after its type keyword:
//
//	[Optional] "NAME", width, height [{ properties }]
func ParseTexture(tz *tokenizer.Tokenizer, typ string) (*Texture, error) {
	t := NewTexture("", FormatExtended)
	t.Type = typ
	if tz.Peek().Kind == tokenizer.KindIdent && tz.AcceptNC("Optional") {
		t.Optional = true
	}

	var err error
	if t.Name, err = expectName(tz, ""); err != nil {
		return nil, err
	}
	if err = expectComma(tz, t.Name); err != nil {
		return nil, err
	}
	if t.Width, err = expectInt(tz, t.Name); err != nil {
		return nil, err
	}
	if err = expectComma(tz, t.Name); err != nil {
		return nil, err
	}
	if t.Height, err = expectInt(tz, t.Name); err != nil {
		return nil, err
	}

	if !tz.Accept("{") {
		return t, nil
	}
	for !tz.Accept("}") {
		if tz.AtEnd() {
			return nil, &ParseError{Texture: t.Name, Line: tz.Line(), Err: ErrUnexpectedEOF}
		}
		if err := parseTextureProperty(tz, t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func parseTextureProperty(tz *tokenizer.Tokenizer, t *Texture) error {
	tok := tz.Next()
	var err error
	switch {
	case isKeyword(tok, "XScale"):
		t.ScaleX, err = expectFloat(tz, t.Name)
	case isKeyword(tok, "YScale"):
		t.ScaleY, err = expectFloat(tz, t.Name)
	case isKeyword(tok, "Offset"):
		var x, y int
		if x, err = expectInt(tz, t.Name); err != nil {
			return err
		}
		if err = expectComma(tz, t.Name); err != nil {
			return err
		}
		if y, err = expectInt(tz, t.Name); err != nil {
			return err
		}
		t.OffsetX, t.OffsetY = int16(x), int16(y)
	case isKeyword(tok, "WorldPanning"):
		t.WorldPanning = true
	case isKeyword(tok, "NoDecals"):
		t.NoDecals = true
	case isKeyword(tok, "NullTexture"):
		t.NullTexture = true
	case isKeyword(tok, "Patch"), isKeyword(tok, "Graphic"):
		kind := PatchKindPatch
		if isKeyword(tok, "Graphic") {
			kind = PatchKindGraphic
		}
		p, err := parsePatch(tz, kind, t.Name)
		if err != nil {
			return err
		}
		t.appendPatch(p)
	case tok.Is("{"):
		if !tz.SkipBlock() {
			return &ParseError{Texture: t.Name, Line: tz.Line(), Err: ErrUnexpectedEOF}
		}
	}
	return err
}

// ParseDefine parses a shortcut define after the define keyword:
//
//	"NAME" width height
func ParseDefine(tz *tokenizer.Tokenizer) (*Texture, error) {
	name, err := expectName(tz, "")
	if err != nil {
		return nil, err
	}
	w, err := expectInt(tz, name)
	if err != nil {
		return nil, err
	}
	h, err := expectInt(tz, name)
	if err != nil {
		return nil, err
	}
	return NewDefine(name, w, h), nil
}

// parsePatch parses a patch after its Patch or Graphic keyword:
//
//	"NAME", x, y [{ properties }]
func parsePatch(tz *tokenizer.Tokenizer, kind PatchKind, texture string) (*PatchEntry, error) {
	name, err := expectName(tz, texture)
	if err != nil {
		return nil, err
	}
	if err := expectComma(tz, texture); err != nil {
		return nil, err
	}
	x, err := expectInt(tz, texture)
	if err != nil {
		return nil, err
	}
	if err := expectComma(tz, texture); err != nil {
		return nil, err
	}
	y, err := expectInt(tz, texture)
	if err != nil {
		return nil, err
	}
	p := NewExtendedPatch(name, int16(x), int16(y), kind)

	if !tz.Accept("{") {
		return p, nil
	}
	for !tz.Accept("}") {
		if tz.AtEnd() {
			return nil, &ParseError{Texture: texture, Line: tz.Line(), Err: ErrUnexpectedEOF}
		}
		if err := parsePatchProperty(tz, p, texture); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func parsePatchProperty(tz *tokenizer.Tokenizer, p *PatchEntry, texture string) error {
	tok := tz.Next()
	switch {
	case isKeyword(tok, "FlipX"):
		p.FlipX = true
	case isKeyword(tok, "FlipY"):
		p.FlipY = true
	case isKeyword(tok, "UseOffsets"):
		p.UseOffsets = true
	case isKeyword(tok, "Rotate"):
		r, err := expectInt(tz, texture)
		if err != nil {
			return err
		}
		p.Rotation = r
	case isKeyword(tok, "Translation"):
		return parseTranslation(tz, p, texture)
	case isKeyword(tok, "Blend"):
		return parseBlend(tz, p, texture)
	case isKeyword(tok, "Alpha"):
		a, err := expectFloat(tz, texture)
		if err != nil {
			return err
		}
		p.Alpha = a
	case isKeyword(tok, "Style"):
		s := tz.Next()
		if s.Kind == tokenizer.KindEOF {
			return &ParseError{Texture: texture, Line: s.Line, Err: ErrUnexpectedEOF}
		}
		style, ok := ParseDrawStyle(s.Text)
		if !ok {
			Logger().Warn("ctexture: unknown patch style", "texture", texture, "patch", p.Name, "style", s.Text)
		}
		p.Style = style
	case tok.Is("{"):
		if !tz.SkipBlock() {
			return &ParseError{Texture: texture, Line: tz.Line(), Err: ErrUnexpectedEOF}
		}
	}
	return nil
}

// parseTranslation reads a comma-separated list of translation entries.
// Entries containing '=' are quoted again so the translation parser sees
// each range as a single item.
func parseTranslation(tz *tokenizer.Tokenizer, p *PatchEntry, texture string) error {
	var parts []string
	for {
		tok := tz.Next()
		if tok.Kind == tokenizer.KindEOF {
			return &ParseError{Texture: texture, Line: tok.Line, Err: ErrUnexpectedEOF}
		}
		text := tok.Text
		if strings.Contains(text, "=") {
			text = `"` + text + `"`
		}
		parts = append(parts, text)
		if !tz.Accept(",") {
			break
		}
	}

	tr, err := translation.Parse(strings.Join(parts, ", "))
	if err != nil {
		return &ParseError{Texture: texture, Line: tz.Line(), Err: fmt.Errorf("%w: %w", ErrInvalidTranslation, err)}
	}
	p.SetTranslation(tr)
	return nil
}

// parseBlend reads one of
//
//	colour
//	colour, amount
//	r, g, b, amount
func parseBlend(tz *tokenizer.Tokenizer, p *PatchEntry, texture string) error {
	first := tz.Next()
	if first.Kind == tokenizer.KindEOF {
		return &ParseError{Texture: texture, Line: first.Line, Err: ErrUnexpectedEOF}
	}
	if !tz.Accept(",") {
		p.SetColour(blendColour(first.Text, texture))
		return nil
	}

	second, err := expectFloat(tz, texture)
	if err != nil {
		return err
	}
	if !tz.Accept(",") {
		p.SetTint(blendColour(first.Text, texture), second)
		return nil
	}

	third, err := expectInt(tz, texture)
	if err != nil {
		return err
	}
	if err := expectComma(tz, texture); err != nil {
		return err
	}
	amount, err := expectFloat(tz, texture)
	if err != nil {
		return err
	}
	c := color.NRGBA{R: uint8(first.AsInt()), G: uint8(second), B: uint8(third)}
	p.SetTint(c, amount)
	return nil
}

func blendColour(s, texture string) color.NRGBA {
	c, ok := ParseColour(s)
	if !ok {
		Logger().Warn("ctexture: invalid blend colour", "texture", texture, "colour", s)
		return color.NRGBA{A: 255}
	}
	return c
}

func isKeyword(tok tokenizer.Token, s string) bool {
	return !tok.Quoted && tok.IsNC(s)
}

func expectName(tz *tokenizer.Tokenizer, texture string) (string, error) {
	tok := tz.Next()
	if tok.Kind == tokenizer.KindEOF {
		return "", &ParseError{Texture: texture, Line: tok.Line, Err: ErrUnexpectedEOF}
	}
	return strings.ToUpper(tok.Text), nil
}

func expectComma(tz *tokenizer.Tokenizer, texture string) error {
	if tz.Accept(",") {
		return nil
	}
	tok := tz.Peek()
	if tok.Kind == tokenizer.KindEOF {
		return &ParseError{Texture: texture, Line: tok.Line, Err: ErrUnexpectedEOF}
	}
	return &ParseError{Texture: texture, Line: tok.Line, Err: fmt.Errorf("%w, got %q", ErrExpectedComma, tok.Text)}
}

func expectNumber(tz *tokenizer.Tokenizer, texture string) (tokenizer.Token, error) {
	tok := tz.Next()
	switch {
	case tok.Kind == tokenizer.KindEOF:
		return tok, &ParseError{Texture: texture, Line: tok.Line, Err: ErrUnexpectedEOF}
	case !tok.IsNumber():
		return tok, &ParseError{Texture: texture, Line: tok.Line, Err: fmt.Errorf("%w, got %q", ErrExpectedNumber, tok.Text)}
	}
	return tok, nil
}

func expectInt(tz *tokenizer.Tokenizer, texture string) (int, error) {
	tok, err := expectNumber(tz, texture)
	return tok.AsInt(), err
}

func expectFloat(tz *tokenizer.Tokenizer, texture string) (float64, error) {
	tok, err := expectNumber(tz, texture)
	return tok.AsFloat(), err
}
