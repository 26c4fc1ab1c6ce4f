package ctexture

import "strings"

// PatchKind selects which namespace an extended patch prefers.
type PatchKind uint8

const (
	// PatchKindPatch prefers the patches namespace.
	PatchKindPatch PatchKind = iota

	// PatchKindGraphic prefers the graphics namespace.
	PatchKindGraphic
)

// String returns the keyword used in text definitions.
func (k PatchKind) String() string {
	if k == PatchKindGraphic {
		return "Graphic"
	}
	return "Patch"
}

// DrawStyle is the compositing style of an extended patch.
type DrawStyle uint8

const (
	StyleCopy DrawStyle = iota
	StyleCopyAlpha
	StyleOverlay
	StyleTranslucent
	StyleCopyNewAlpha
	StyleAdd
	StyleSubtract
	StyleReverseSubtract
	StyleModulate
)

var styleNames = [...]string{
	StyleCopy:            "Copy",
	StyleCopyAlpha:       "CopyAlpha",
	StyleOverlay:         "Overlay",
	StyleTranslucent:     "Translucent",
	StyleCopyNewAlpha:    "CopyNewAlpha",
	StyleAdd:             "Add",
	StyleSubtract:        "Subtract",
	StyleReverseSubtract: "ReverseSubtract",
	StyleModulate:        "Modulate",
}

// String returns the keyword used in text definitions.
func (s DrawStyle) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "Copy"
}

// ParseDrawStyle looks up a style keyword, ignoring case.
func ParseDrawStyle(name string) (DrawStyle, bool) {
	for i, n := range styleNames {
		if strings.EqualFold(n, name) {
			return DrawStyle(i), true
		}
	}
	return StyleCopy, false
}

// BlendType records which colour effect an extended patch applies. It is
// derived from the last Set call on the patch and cannot be set directly.
type BlendType uint8

const (
	BlendNone BlendType = iota
	BlendTranslation
	BlendColour
	BlendTint
)

// String returns the name of the blend type.
func (b BlendType) String() string {
	switch b {
	case BlendTranslation:
		return "Translation"
	case BlendColour:
		return "Colour"
	case BlendTint:
		return "Tint"
	default:
		return "None"
	}
}

// Format is the storage format of a texture.
type Format uint8

const (
	// FormatRegular is the binary TEXTURE1/TEXTURE2 format. Patches are basic
	// and scales hold raw eighths (0 means unscaled).
	FormatRegular Format = iota

	// FormatExtended is the TEXTURES text format.
	FormatExtended

	// FormatShortcutDefine is a single full-size patch declared with define.
	FormatShortcutDefine
)

// String returns the name of the format.
func (f Format) String() string {
	switch f {
	case FormatRegular:
		return "Regular"
	case FormatExtended:
		return "Extended"
	case FormatShortcutDefine:
		return "Define"
	default:
		return "Unknown"
	}
}

// Texture type keywords accepted in TEXTURES documents.
var textureTypes = []string{"Texture", "WallTexture", "Flat", "Sprite", "Graphic"}

// canonicalType returns the canonical spelling of a texture type keyword.
func canonicalType(name string) (string, bool) {
	for _, t := range textureTypes {
		if strings.EqualFold(t, name) {
			return t, true
		}
	}
	return "", false
}
