package archive

import (
	"bytes"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadtools/ctexture"
	"github.com/wadtools/ctexture/imagebuf"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img, err := imagebuf.NewImageBuf(w, h, imagebuf.FormatRGBA8)
	require.NoError(t, err)
	for y := range h {
		for x := range w {
			require.NoError(t, img.Set(x, y, c, nil))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, img.EncodePNG(&buf, nil))
	return buf.Bytes()
}

func file(data []byte) *fstest.MapFile {
	return &fstest.MapFile{Data: data}
}

// binaryLumps returns PNAMES and TEXTURE1 data for a single 2x2 texture
// BRICK made of the patch WALL.
func binaryLumps(t *testing.T) (pnames, texture1 []byte) {
	t.Helper()
	pt := ctexture.NewPatchTable(nil)
	list := ctexture.NewTextureList()
	brick := ctexture.NewTexture("BRICK", ctexture.FormatRegular)
	brick.Width, brick.Height = 2, 2
	brick.AddPatch("WALL", 0, 0, -1)
	list.Add(brick)
	texture1 = list.TEXTUREX(pt)
	return pt.PNAMES(), texture1
}

const texturesLump = `
Texture "FANCY", 4, 2
{
	Patch "BRICK", 0, 0
	Patch "WALL", 2, 0
}
define "HIRES" 1 1
`

func testFS(t *testing.T) fstest.MapFS {
	pnames, texture1 := binaryLumps(t)
	return fstest.MapFS{
		"PNAMES.lmp":         file(pnames),
		"TEXTURE1.lmp":       file(texture1),
		"TEXTURES.txt":       file([]byte(texturesLump)),
		"patches/wall.png":   file(solidPNG(t, 2, 2, red)),
		"graphics/X.lmp":     file([]byte("first")),
		"graphics/a/x.png":   file([]byte("second")),
		"Flats/floor.raw":    file(make([]byte, 4096)),
		"patches/.DS_Store":  file([]byte("junk")),
		"textures/hires.png": file(solidPNG(t, 2, 2, blue)),
	}
}

func TestOpen(t *testing.T) {
	a, err := Open("base", testFS(t))
	require.NoError(t, err)
	assert.Equal(t, "base", a.Name())
	assert.Len(t, a.Entries(), 8, "dotfiles are skipped")

	e := a.Find("wall", ctexture.NamespacePatches)
	require.NotNil(t, e)
	assert.Equal(t, "WALL", e.Name())
	assert.Equal(t, "patches", e.Namespace())
	assert.Equal(t, "patches/wall.png", e.Path())
	assert.Equal(t, ctexture.Archive(a), e.Parent())

	floor := a.Find("FLOOR", ctexture.NamespaceFlats)
	require.NotNil(t, floor, "namespaces are lower-cased")

	root := a.Find("PNAMES", ctexture.NamespaceAny)
	require.NotNil(t, root)
	assert.Equal(t, "", root.Namespace())
}

func TestFind(t *testing.T) {
	a, err := Open("base", testFS(t))
	require.NoError(t, err)

	e := a.Find("x", ctexture.NamespaceGraphics)
	require.NotNil(t, e)
	data, err := e.Data()
	require.NoError(t, err)
	assert.Equal(t, "second", string(data), "the last match wins")

	assert.Nil(t, a.Find("WALL", ctexture.NamespaceGraphics))
	assert.NotNil(t, a.Find("WALL", ctexture.NamespaceAny))
	assert.Nil(t, a.Find("NOPE", ctexture.NamespaceAny))
}

func TestLoadTextures(t *testing.T) {
	a, err := Open("base", testFS(t))
	require.NoError(t, err)
	require.NoError(t, a.LoadTextures())

	pt := a.PatchTable()
	assert.Equal(t, []string{"WALL"}, pt.Names())
	assert.Equal(t, ctexture.Archive(a), pt.Parent())

	list := a.Textures()
	require.Equal(t, 3, list.Len())
	brick, fancy, hires := list.Texture(0), list.Texture(1), list.Texture(2)
	assert.Equal(t, "BRICK", brick.Name)
	assert.Equal(t, ctexture.FormatRegular, brick.Format())
	assert.Equal(t, "FANCY", fancy.Name)
	assert.Equal(t, ctexture.FormatExtended, fancy.Format())
	assert.Equal(t, 2, fancy.PatchCount())
	assert.True(t, hires.IsShortcut())
}

func TestLoadTexturesCorrupt(t *testing.T) {
	fsys := fstest.MapFS{"PNAMES": file([]byte{5, 0, 0, 0, 'A'})}
	a, err := Open("bad", fsys)
	require.NoError(t, err)
	err = a.LoadTextures()
	assert.ErrorIs(t, err, ctexture.ErrCorruptPNAMES)
	assert.Equal(t, 0, a.Textures().Len())
}

func TestLoadTexturesIgnoresNamespacedLumps(t *testing.T) {
	fsys := fstest.MapFS{"graphics/PNAMES.lmp": file([]byte{5, 0, 0, 0})}
	a, err := Open("ns", fsys)
	require.NoError(t, err)
	require.NoError(t, a.LoadTextures())
	assert.Equal(t, 0, a.PatchTable().Len())
}

func TestRegistryPriority(t *testing.T) {
	base, err := Open("base", fstest.MapFS{"patches/WALL.lmp": file([]byte("base"))})
	require.NoError(t, err)
	mod, err := Open("mod", fstest.MapFS{"patches/WALL.lmp": file([]byte("mod"))})
	require.NoError(t, err)

	r := NewRegistry(base)
	r.Add(mod)
	assert.Equal(t, []*Archive{base, mod}, r.Archives())

	data, err := r.Entry("WALL", ctexture.NamespacePatches)
	require.NoError(t, err)
	assert.Equal(t, "mod", string(data), "later archives win")

	e := r.Find("WALL", ctexture.NamespacePatches, base)
	require.NotNil(t, e)
	assert.Equal(t, ctexture.Archive(base), e.Parent(), "the parent archive wins")

	assert.True(t, r.Remove(mod))
	assert.False(t, r.Remove(mod))
	data, err = r.Entry("WALL", ctexture.NamespacePatches)
	require.NoError(t, err)
	assert.Equal(t, "base", string(data))
}

func TestRegistryMiss(t *testing.T) {
	r := NewRegistry()
	e := r.Find("WALL", ctexture.NamespacePatches, nil)
	assert.True(t, e == nil, "a miss must be an untyped nil")

	_, err := r.Entry("WALL", ctexture.NamespacePatches)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, r.FindTexture("WALL", nil))
}

func TestRegistryFindTexture(t *testing.T) {
	a, err := Open("base", testFS(t))
	require.NoError(t, err)
	require.NoError(t, a.LoadTextures())

	r := NewRegistry(a)
	assert.Same(t, a.Textures().Find("BRICK"), r.FindTexture("brick", nil))
	assert.Nil(t, r.FindTexture("MISSING", a))
}

func TestRenderFromArchive(t *testing.T) {
	a, err := Open("base", testFS(t))
	require.NoError(t, err)
	require.NoError(t, a.LoadTextures())
	r := NewRegistry(a)

	fancy := a.Textures().Find("FANCY")
	img, err := fancy.Render(ctexture.WithResolver(r), ctexture.WithParent(a))
	require.NoError(t, err)
	for x := range 4 {
		assert.Equal(t, red, img.At(x, 1, nil), "pixel %d", x)
	}

	hires := a.Textures().Find("HIRES")
	img, err = hires.Render(ctexture.WithResolver(r))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, 2.0, hires.ScaleX)
	assert.Equal(t, blue, img.At(1, 1, nil))
}
