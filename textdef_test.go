package ctexture

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, src string) *Texture {
	t.Helper()
	list, err := ParseTextures(src, "TEXTURES")
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())
	return list.Texture(0)
}

func TestAsTextNonDefaultOnly(t *testing.T) {
	tex := NewTexture("WALL01", FormatExtended)
	tex.Width, tex.Height = 64, 128
	p := tex.AddPatch("PATCH1", 0, 0, -1)
	p.FlipX = true
	p.Rotation = 90
	p.Alpha = 0.5
	p.Style = StyleTranslucent

	const want = "Texture \"WALL01\", 64, 128\n" +
		"{\n" +
		"\tPatch \"PATCH1\", 0, 0\n" +
		"\t{\n" +
		"\t\tFlipX\n" +
		"\t\tRotate 90\n" +
		"\t\tAlpha 0.50\n" +
		"\t\tStyle Translucent\n" +
		"\t}\n" +
		"}\n\n"
	assert.Equal(t, want, tex.AsText())

	parsed := parseOne(t, tex.AsText())
	assert.Equal(t, "WALL01", parsed.Name)
	assert.Equal(t, 64, parsed.Width)
	assert.Equal(t, 128, parsed.Height)
	got, ok := parsed.Patch(0)
	require.True(t, ok)
	assert.True(t, got.Equal(p), "re-parsed patch = %+v", got)
}

func TestAsTextDefaultPatch(t *testing.T) {
	tex := NewTexture("PLAIN", FormatExtended)
	tex.Width, tex.Height = 8, 8
	tex.AddPatch("A", 1, 2, -1)
	p := tex.AddPatch("B", 0, 0, -1)
	p.Kind = PatchKindGraphic

	assert.Equal(t, "Texture \"PLAIN\", 8, 8\n{\n\tPatch \"A\", 1, 2\n\tGraphic \"B\", 0, 0\n}\n\n", tex.AsText())
}

func TestAsTextTextureProperties(t *testing.T) {
	tex := NewTexture("BIG", FormatExtended)
	tex.Type = "WallTexture"
	tex.Optional = true
	tex.Width, tex.Height = 128, 128
	tex.ScaleX = 2
	tex.OffsetX, tex.OffsetY = -4, 8
	tex.WorldPanning = true
	tex.NoDecals = true
	tex.NullTexture = true

	const want = "WallTexture Optional \"BIG\", 128, 128\n{\n" +
		"\tXScale 2.000\n" +
		"\tOffset -4, 8\n" +
		"\tWorldPanning\n" +
		"\tNoDecals\n" +
		"\tNullTexture\n" +
		"}\n\n"
	assert.Equal(t, want, tex.AsText())

	parsed := parseOne(t, want)
	assert.Equal(t, "WallTexture", parsed.Type)
	assert.True(t, parsed.Optional)
	assert.Equal(t, 2.0, parsed.ScaleX)
	assert.Equal(t, 1.0, parsed.ScaleY)
	assert.Equal(t, int16(-4), parsed.OffsetX)
	assert.Equal(t, int16(8), parsed.OffsetY)
	assert.True(t, parsed.WorldPanning && parsed.NoDecals && parsed.NullTexture)
	assert.Equal(t, want, parsed.AsText())
}

func TestAsTextFormats(t *testing.T) {
	reg := NewTexture("REG", FormatRegular)
	reg.AddPatch("A", 0, 0, -1)
	assert.Equal(t, "", reg.AsText())

	def := NewDefine("SKY1", 256, 128)
	def.NoDecals = true
	assert.Equal(t, "define \"SKY1\" 256 128\n", def.AsText())
}

func TestParseBlend(t *testing.T) {
	tests := []struct {
		name   string
		blend  string
		want   BlendType
		colour color.NRGBA
		text   string
	}{
		{"hex colour", `"#FF8000"`, BlendColour, color.NRGBA{R: 255, G: 128, A: 255}, `Blend "#FF8000"`},
		{"named colour", `"red"`, BlendColour, color.NRGBA{R: 255, A: 255}, `Blend "#FF0000"`},
		{"tint", `"#0000FF", 0.5`, BlendTint, color.NRGBA{B: 255, A: 127}, `Blend "#0000FF", 0.5`},
		{"rgba", `10, 20, 30, 1.0`, BlendTint, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, `Blend "#0A141E", 1.0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex := parseOne(t, `Texture "T", 8, 8 { Patch "P", 0, 0 { Blend `+tt.blend+` } }`)
			p, ok := tex.Patch(0)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Blend())
			assert.Equal(t, tt.colour, p.Colour())
			assert.Contains(t, p.AsText(), "\t\t"+tt.text+"\n")
		})
	}
}

func TestParseBlendMissingComma(t *testing.T) {
	_, err := ParseTextures(`Texture "T", 8, 8 { Patch "P", 0, 0 { Blend 10, 20, 30 1.0 } }`, "TEXTURES")
	require.ErrorIs(t, err, ErrExpectedComma)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "T", pe.Texture)
}

func TestParseTranslation(t *testing.T) {
	tex := parseOne(t, `Texture "T", 8, 8 { Patch "P", 0, 0 { Translation "0:15=16:31", "32:47=[255,0,0]:[0,0,0]" } }`)
	p, _ := tex.Patch(0)
	require.Equal(t, BlendTranslation, p.Blend())
	require.Len(t, p.Translation().Ranges(), 2)
	assert.Contains(t, p.AsText(), "\t\tTranslation \"0:15=16:31\", \"32:47=[255,0,0]:[0,0,0]\"\n")

	_, err := ParseTextures(`Texture "T", 8, 8 { Patch "P", 0, 0 { Translation "0:15=oops" } }`, "TEXTURES")
	assert.ErrorIs(t, err, ErrInvalidTranslation)
}

func TestParseEndOfInput(t *testing.T) {
	tests := []string{
		`Texture "BROKEN", 8, 8 { Patch "P", 0, 0`,
		`Texture "BROKEN", 8, 8 { Patch "P", 0, 0 { FlipX `,
		`Texture "BROKEN", 8, 8 { XScale 2.0`,
	}
	for _, src := range tests {
		_, err := ParseTextures(src, "TEXTURES")
		require.ErrorIs(t, err, ErrUnexpectedEOF, src)
		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "BROKEN", pe.Texture)
		assert.Contains(t, err.Error(), "BROKEN")
	}
}

func TestParseSkipsUnknownProperties(t *testing.T) {
	tex := parseOne(t, `Texture "T", 8, 8
{
	Future 1, 2
	Nested { Deep { Value } }
	Patch "P", 0, 0 { Glow "red" FlipY Style Bogus }
}`)
	p, ok := tex.Patch(0)
	require.True(t, ok)
	assert.True(t, p.FlipY)
	assert.Equal(t, StyleCopy, p.Style, "unknown style falls back to Copy")
}

func TestParseTexturesDocument(t *testing.T) {
	src := `// comment
define "sky1" 256 128
texture "first", 16, 16 { Patch "A", 0, 0 }
Sprite "TROOA1", 41, 57 { Offset 20, 50 Graphic "TROOA1", 0, 0 { UseOffsets } }
flat "FLOOR", 64, 64
`
	list, err := ParseTextures(src, "TEXTURES")
	require.NoError(t, err)
	require.Equal(t, 4, list.Len())

	def := list.Texture(0)
	assert.Equal(t, FormatShortcutDefine, def.Format())
	assert.Equal(t, "SKY1", def.Name)
	assert.Equal(t, 256, def.NominalWidth)
	require.Equal(t, 1, def.PatchCount())
	p, _ := def.Patch(0)
	assert.Equal(t, "SKY1", p.Name)

	assert.Equal(t, "Texture", list.Texture(1).Type)
	assert.Equal(t, "FIRST", list.Texture(1).Name)

	sprite := list.Texture(2)
	assert.Equal(t, "Sprite", sprite.Type)
	p, _ = sprite.Patch(0)
	assert.Equal(t, PatchKindGraphic, p.Kind)
	assert.True(t, p.UseOffsets)

	assert.Equal(t, 0, list.Texture(3).PatchCount())
	assert.Same(t, list, list.Texture(3).List())

	again, err := ParseTextures(list.AsText(), "TEXTURES")
	require.NoError(t, err)
	assert.Equal(t, list.AsText(), again.AsText())
}

func TestParseMissingHeaderComma(t *testing.T) {
	_, err := ParseTextures(`Texture "T" 8, 8`, "TEXTURES")
	assert.ErrorIs(t, err, ErrExpectedComma)

	_, err = ParseTextures(`Texture "T", x, 8`, "TEXTURES")
	assert.ErrorIs(t, err, ErrExpectedNumber)
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, true},
		{"102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, true},
		{"#F0A", color.NRGBA{R: 0xFF, G: 0x00, B: 0xAA, A: 255}, true},
		{"ff 80 00", color.NRGBA{R: 0xFF, G: 0x80, A: 255}, true},
		{"DarkRed", color.NRGBA{R: 0x8B, A: 255}, true},
		{"#12345", color.NRGBA{}, false},
		{"nope", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColour(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColour(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if got := FormatColour(color.NRGBA{R: 1, G: 0xAB, B: 0xFF}); got != "#01ABFF" {
		t.Errorf("FormatColour() = %q, want #01ABFF", got)
	}
}
