package ctexture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patchNames(tex *Texture) []string {
	var names []string
	for _, p := range tex.Patches() {
		names = append(names, p.Name)
	}
	return names
}

func TestAddPatch(t *testing.T) {
	tex := NewTexture("T", FormatExtended)
	tex.AddPatch("A", 0, 0, -1)
	tex.AddPatch("C", 0, 0, 5)
	tex.AddPatch("B", 0, 0, 1)
	assert.Equal(t, []string{"A", "B", "C"}, patchNames(tex))

	p, _ := tex.Patch(0)
	assert.True(t, p.IsExtended(), "patch variant follows the texture format")

	reg := NewTexture("R", FormatRegular)
	p = reg.AddPatch("A", 0, 0, -1)
	assert.False(t, p.IsExtended())
}

func TestPatchEdits(t *testing.T) {
	tex := NewTexture("T", FormatExtended)
	for _, n := range []string{"A", "B", "A", "C"} {
		tex.AddPatch(n, 0, 0, -1)
	}

	assert.True(t, tex.SwapPatches(0, 3))
	assert.Equal(t, []string{"C", "B", "A", "A"}, patchNames(tex))

	assert.True(t, tex.RemovePatchNamed("a"))
	assert.Equal(t, []string{"C", "B"}, patchNames(tex))
	assert.False(t, tex.RemovePatchNamed("A"))

	assert.True(t, tex.ReplacePatch(1, "D"))
	assert.Equal(t, []string{"C", "D"}, patchNames(tex))

	assert.True(t, tex.RemovePatch(0))
	assert.Equal(t, []string{"D"}, patchNames(tex))
}

func TestPatchEditIndexErrors(t *testing.T) {
	tex := NewTexture("T", FormatExtended)
	tex.AddPatch("A", 0, 0, -1)

	var log eventLog
	tex.AddListener(&log)

	assert.False(t, tex.RemovePatch(1))
	assert.False(t, tex.RemovePatch(-1))
	assert.False(t, tex.ReplacePatch(2, "X"))
	assert.False(t, tex.DuplicatePatch(1, 0, 0))
	assert.False(t, tex.SwapPatches(0, 1))
	_, ok := tex.Patch(1)
	assert.False(t, ok)

	assert.Empty(t, log.events, "failed edits announce nothing")
	assert.Equal(t, 1, tex.PatchCount())
}

func TestDuplicatePatch(t *testing.T) {
	tex := NewTexture("T", FormatExtended)
	p := tex.AddPatch("A", 10, 20, -1)
	p.FlipX = true
	tex.AddPatch("B", 0, 0, -1)

	require.True(t, tex.DuplicatePatch(0, 4, -4))
	assert.Equal(t, []string{"A", "A", "B"}, patchNames(tex))

	orig, _ := tex.Patch(0)
	dup, _ := tex.Patch(1)
	assert.Same(t, p, orig)
	assert.NotSame(t, orig, dup)
	assert.Equal(t, int16(14), dup.OffsetX)
	assert.Equal(t, int16(16), dup.OffsetY)
	assert.True(t, dup.FlipX)
}

func TestEditsEndShortcut(t *testing.T) {
	var log eventLog
	def := NewDefine("SKY1", 256, 128)
	def.AddListener(&log)

	def.AddPatch("STARS", 0, 0, -1)
	assert.Equal(t, FormatExtended, def.Format())
	assert.Equal(t, []string{EventPatchesModified}, log.events)
}

func TestMute(t *testing.T) {
	tex := NewTexture("T", FormatExtended)
	var log eventLog
	tex.AddListener(&log)

	restore := tex.Mute()
	tex.AddPatch("A", 0, 0, -1)
	assert.True(t, tex.Muted())
	restore()
	restore()
	assert.False(t, tex.Muted())

	tex.AddPatch("B", 0, 0, -1)
	assert.Equal(t, []string{EventPatchesModified}, log.events)
}

func TestListenerFunc(t *testing.T) {
	tex := NewTexture("T", FormatExtended)
	var source any
	tex.AddListener(ListenerFunc(func(s any, _ string) { source = s }))
	tex.AddPatch("A", 0, 0, -1)
	assert.Same(t, tex, source)
}

func TestClear(t *testing.T) {
	tex := NewTexture("T", FormatExtended)
	tex.Width, tex.Height = 64, 64
	tex.ScaleX = 2
	tex.NoDecals = true
	tex.AddPatch("A", 0, 0, -1)

	tex.Clear()
	assert.Equal(t, "", tex.Name)
	assert.Equal(t, 0, tex.Width)
	assert.Equal(t, 1.0, tex.ScaleX)
	assert.False(t, tex.NoDecals)
	assert.Equal(t, 0, tex.PatchCount())
	assert.Equal(t, FormatExtended, tex.Format())
}

func TestCopyFrom(t *testing.T) {
	src := NewTexture("SRC", FormatExtended)
	src.Width, src.Height = 32, 16
	src.ScaleX = 0.5
	p := src.AddPatch("A", 1, 1, -1)
	p.FlipY = true

	dst := NewTexture("DST", FormatRegular)
	dst.CopyFrom(src, false)
	assert.Equal(t, "SRC", dst.Name)
	assert.Equal(t, FormatExtended, dst.Format())
	got, _ := dst.Patch(0)
	assert.True(t, got.Equal(p))
	assert.NotSame(t, p, got)

	kept := NewTexture("DST", FormatRegular)
	kept.CopyFrom(src, true)
	assert.Equal(t, FormatRegular, kept.Format())
	assert.Equal(t, 4.0, kept.ScaleX)
	got, _ = kept.Patch(0)
	assert.False(t, got.IsExtended())
}

func TestTextureList(t *testing.T) {
	list := NewTextureList()
	a := NewTexture("A", FormatExtended)
	b := NewTexture("B", FormatExtended)
	c := NewTexture("C", FormatExtended)
	list.Add(a)
	list.Add(c)
	list.Insert(b, 1)

	assert.Equal(t, 3, list.Len())
	assert.Equal(t, 1, b.Index())
	assert.Equal(t, 2, list.IndexOf("c"))
	assert.Same(t, list, c.List())

	assert.Same(t, a, list.FindBefore("A", c))
	assert.Nil(t, list.FindBefore("C", a), "later textures are not found")
	assert.Nil(t, list.FindBefore("B", b), "a texture does not find itself")

	removed := list.Remove(0)
	assert.Same(t, a, removed)
	assert.Nil(t, a.List())
	assert.Equal(t, 0, a.Index(), "position kept as a hint")
	assert.Equal(t, 0, b.Index())

	other := NewTextureList()
	other.Add(b)
	assert.Equal(t, 1, list.Len(), "adding to another list moves the texture")
	assert.Same(t, other, b.List())
}
