package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadtools/ctexture/imagebuf"
)

const texturesLump = `
Texture "DOUBLE", 4, 4
{
	XScale 2.0
	YScale 2.0
	Patch "WALL", 0, 0
	Patch "WALL", 2, 2
}
`

func writeArchive(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "base")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "patches"), 0o755))

	img, err := imagebuf.NewImageBuf(2, 2, imagebuf.FormatRGBA8)
	require.NoError(t, err)
	fillImage(t, img, color.NRGBA{R: 255, A: 255})
	require.NoError(t, img.SavePNG(filepath.Join(dir, "patches", "wall.png"), nil))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "TEXTURES.txt"), []byte(texturesLump), 0o644))
	return dir
}

func TestWorkspaceCommands(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Archives = []string{writeArchive(t)}
	cfg.Output = t.TempDir()
	cfg.Scaled = true

	ws, err := openWorkspace(cfg)
	require.NoError(t, err)
	assert.Nil(t, ws.pal, "no palette anywhere")

	var out bytes.Buffer
	require.NoError(t, ws.list(&out))
	assert.Contains(t, out.String(), "DOUBLE")
	assert.Contains(t, out.String(), "4x4")

	out.Reset()
	require.NoError(t, ws.text(&out))
	assert.Contains(t, out.String(), `Texture "DOUBLE", 4, 4`)
	assert.Contains(t, out.String(), `Patch "WALL", 2, 2`)

	require.NoError(t, ws.binary())
	for _, name := range []string{"PNAMES.lmp", "TEXTURE1.lmp"} {
		_, err := os.Stat(filepath.Join(cfg.Output, name))
		assert.NoError(t, err, name)
	}

	written, err := ws.render([]string{"double"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(cfg.Output, "double.png"),
		filepath.Join(cfg.Output, "double.scaled.png"),
	}, written)
	full, err := os.ReadFile(filepath.Join(cfg.Output, "double.png"))
	require.NoError(t, err)
	img, err := imagebuf.Decode(full)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width())

	scaled, err := os.ReadFile(filepath.Join(cfg.Output, "double.scaled.png"))
	require.NoError(t, err)
	img, err = imagebuf.Decode(scaled)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, 2, img.Height())

	_, err = ws.render([]string{"NOPE"})
	assert.Error(t, err)
}

func TestWorkspacePatches(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Archives = []string{writeArchive(t)}
	cfg.Output = t.TempDir()

	ws, err := openWorkspace(cfg)
	require.NoError(t, err)
	require.NoError(t, ws.binary())

	// Reopen the binary output as a second archive with the patch lump.
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.Output, "patches"), 0o755))
	wall, err := os.ReadFile(filepath.Join(cfg.Archives[0], "patches", "wall.png"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Output, "patches", "wall.png"), wall, 0o644))

	cfg.Archives = append(cfg.Archives, cfg.Output)
	ws, err = openWorkspace(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ws.patches(&out))
	assert.Regexp(t, `WALL\s+true\s+DOUBLE`, out.String())
}

func TestScalePreview(t *testing.T) {
	img, err := imagebuf.NewImageBuf(4, 2, imagebuf.FormatRGBA8)
	require.NoError(t, err)
	fillImage(t, img, color.NRGBA{G: 255, A: 255})

	got := scalePreview(img, 2, 0.5, nil)
	assert.Equal(t, 2, got.Bounds().Dx())
	assert.Equal(t, 4, got.Bounds().Dy())
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, got.NRGBAAt(1, 3))
}

func fillImage(t *testing.T, img *imagebuf.ImageBuf, c color.NRGBA) {
	t.Helper()
	for y := range img.Height() {
		for x := range img.Width() {
			require.NoError(t, img.Set(x, y, c, nil))
		}
	}
}
