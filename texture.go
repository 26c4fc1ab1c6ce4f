package ctexture

import (
	"strings"
)

// Texture is a composite texture: an ordered stack of patches drawn onto a
// canvas of Width x Height. Later patches are drawn on top.
//
// For FormatRegular, ScaleX and ScaleY hold the raw eighths stored in
// TEXTUREx records, with 0 meaning unscaled. For the other formats they are
// plain multipliers.
//
// Texture is not safe for concurrent mutation.
type Texture struct {
	Announcer

	Name string

	// Type is the TEXTURES keyword the texture was declared with.
	Type string

	Width  int
	Height int

	// NominalWidth and NominalHeight are the sizes declared by a define.
	NominalWidth  int
	NominalHeight int

	ScaleX float64
	ScaleY float64

	OffsetX int16
	OffsetY int16

	WorldPanning bool
	NoDecals     bool
	NullTexture  bool
	Optional     bool

	format  Format
	patches []*PatchEntry

	list         *TextureList
	positionHint int
}

// NewTexture returns an empty texture of the given format.
func NewTexture(name string, format Format) *Texture {
	t := &Texture{Name: name, Type: "Texture", format: format, ScaleX: 1, ScaleY: 1, positionHint: -1}
	if format == FormatRegular {
		t.ScaleX, t.ScaleY = 0, 0
	}
	return t
}

// NewDefine returns a shortcut texture made of the single full-size patch
// named name, with the given nominal size.
func NewDefine(name string, width, height int) *Texture {
	t := NewTexture(name, FormatShortcutDefine)
	t.Type = "Define"
	t.NominalWidth, t.NominalHeight = width, height
	t.Width, t.Height = width, height
	t.patches = []*PatchEntry{NewExtendedPatch(name, 0, 0, PatchKindPatch)}
	return t
}

// Format returns the texture's format.
func (t *Texture) Format() Format {
	return t.format
}

// IsExtended reports whether the texture uses extended patches.
func (t *Texture) IsExtended() bool {
	return t.format != FormatRegular
}

// IsShortcut reports whether the texture is a shortcut define.
func (t *Texture) IsShortcut() bool {
	return t.format == FormatShortcutDefine
}

// List returns the list holding the texture, or nil.
func (t *Texture) List() *TextureList {
	return t.list
}

// Index returns the texture's position in its list. Without a list it
// returns the last known position, or -1.
func (t *Texture) Index() int {
	if t.list != nil {
		if i := t.list.indexOf(t); i >= 0 {
			return i
		}
	}
	return t.positionHint
}

// Scale returns the texture's scale multipliers, decoding the eighths used
// by the regular format.
func (t *Texture) Scale() (x, y float64) {
	decode := func(v float64) float64 {
		switch {
		case v == 0:
			return 1
		case t.format == FormatRegular:
			return v / 8
		default:
			return v
		}
	}
	return decode(t.ScaleX), decode(t.ScaleY)
}

// PatchCount returns the number of patches.
func (t *Texture) PatchCount() int {
	return len(t.patches)
}

// Patches returns the patches in drawing order. The slice is a copy; the
// patches are shared.
func (t *Texture) Patches() []*PatchEntry {
	return append([]*PatchEntry(nil), t.patches...)
}

// Patch returns the patch at index.
func (t *Texture) Patch(index int) (*PatchEntry, bool) {
	if index < 0 || index >= len(t.patches) {
		return nil, false
	}
	return t.patches[index], true
}

// patchesChanged ends shortcut status and announces a patch edit.
func (t *Texture) patchesChanged() {
	if t.format == FormatShortcutDefine {
		t.format = FormatExtended
	}
	t.announce(t, EventPatchesModified)
}

func (t *Texture) newPatch(name string, x, y int16) *PatchEntry {
	if t.IsExtended() {
		return NewExtendedPatch(name, x, y, PatchKindPatch)
	}
	return NewBasicPatch(name, x, y)
}

// AddPatch inserts a new patch at index, or appends it when index is out of
// range. The patch variant follows the texture format.
func (t *Texture) AddPatch(name string, x, y int16, index int) *PatchEntry {
	p := t.newPatch(name, x, y)
	if index >= 0 && index < len(t.patches) {
		t.patches = append(t.patches[:index], append([]*PatchEntry{p}, t.patches[index:]...)...)
	} else {
		t.patches = append(t.patches, p)
	}
	t.patchesChanged()
	return p
}

// appendPatch adds an already built patch without announcing.
func (t *Texture) appendPatch(p *PatchEntry) {
	t.patches = append(t.patches, p)
}

// RemovePatch removes the patch at index.
func (t *Texture) RemovePatch(index int) bool {
	if index < 0 || index >= len(t.patches) {
		return false
	}
	t.patches = append(t.patches[:index], t.patches[index+1:]...)
	t.patchesChanged()
	return true
}

// RemovePatchNamed removes every patch named name and reports whether any
// were removed.
func (t *Texture) RemovePatchNamed(name string) bool {
	kept := t.patches[:0]
	for _, p := range t.patches {
		if !strings.EqualFold(p.Name, name) {
			kept = append(kept, p)
		}
	}
	removed := len(kept) != len(t.patches)
	clear(t.patches[len(kept):])
	t.patches = kept
	if t.format == FormatShortcutDefine {
		t.format = FormatExtended
	}
	if removed {
		t.announce(t, EventPatchesModified)
	}
	return removed
}

// ReplacePatch renames the patch at index.
func (t *Texture) ReplacePatch(index int, name string) bool {
	if index < 0 || index >= len(t.patches) {
		return false
	}
	t.patches[index].Name = name
	t.patchesChanged()
	return true
}

// DuplicatePatch inserts a copy of the patch at index directly above it,
// moved by (dx, dy).
func (t *Texture) DuplicatePatch(index int, dx, dy int16) bool {
	if index < 0 || index >= len(t.patches) {
		return false
	}
	dup := t.patches[index].Clone()
	dup.OffsetX += dx
	dup.OffsetY += dy
	t.patches = append(t.patches[:index+1], append([]*PatchEntry{dup}, t.patches[index+1:]...)...)
	t.patchesChanged()
	return true
}

// SwapPatches exchanges the patches at a and b.
func (t *Texture) SwapPatches(a, b int) bool {
	if a < 0 || b < 0 || a >= len(t.patches) || b >= len(t.patches) {
		return false
	}
	t.patches[a], t.patches[b] = t.patches[b], t.patches[a]
	t.announce(t, EventPatchesModified)
	return true
}

// Clear resets every property and removes all patches. The format is kept
// and the texture stays in its list.
func (t *Texture) Clear() {
	format := t.format
	if format == FormatShortcutDefine {
		format = FormatExtended
	}
	*t = Texture{
		Announcer:    t.Announcer,
		Type:         "Texture",
		format:       format,
		list:         t.list,
		positionHint: t.positionHint,
	}
	if format != FormatRegular {
		t.ScaleX, t.ScaleY = 1, 1
	}
	t.announce(t, EventPatchesModified)
}

// CopyFrom copies every property and patch of src. With keepFormat the
// texture keeps its own format and the copied patches are converted to it;
// otherwise it takes the format of src.
func (t *Texture) CopyFrom(src *Texture, keepFormat bool) {
	if src == nil || src == t {
		return
	}
	format := t.format
	t.Name = src.Name
	t.Type = src.Type
	t.Width, t.Height = src.Width, src.Height
	t.NominalWidth, t.NominalHeight = src.NominalWidth, src.NominalHeight
	t.ScaleX, t.ScaleY = src.ScaleX, src.ScaleY
	t.OffsetX, t.OffsetY = src.OffsetX, src.OffsetY
	t.WorldPanning = src.WorldPanning
	t.NoDecals = src.NoDecals
	t.NullTexture = src.NullTexture
	t.Optional = src.Optional
	t.format = src.format
	t.patches = make([]*PatchEntry, 0, len(src.patches))
	for _, p := range src.patches {
		t.patches = append(t.patches, p.Clone())
	}

	if keepFormat && format != t.format {
		restore := t.Mute()
		if format == FormatRegular {
			t.ToRegular()
		} else {
			t.ToExtended()
		}
		restore()
	}
	t.announce(t, EventModified)
}
