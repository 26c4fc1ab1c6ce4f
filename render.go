package ctexture

import (
	"fmt"
	"strings"

	"github.com/wadtools/ctexture/imagebuf"
)

// Render composites the texture into a new RGBA8 image of Width x Height.
//
// Patches are drawn in order. A patch whose source cannot be found or
// decoded is left out; this is logged but is not an error. A shortcut define
// is sized from its resolved patch, and its Width, Height, ScaleX and ScaleY
// are updated to match. Render returns an error only when the texture has no
// usable size.
func (t *Texture) Render(opts ...RenderOption) (*imagebuf.ImageBuf, error) {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &renderer{renderOptions: o, active: make(map[string]bool)}
	return r.render(t)
}

// renderer carries the state of one Render call across nested textures.
type renderer struct {
	renderOptions

	// active holds the upper-cased names of the textures being rendered.
	active map[string]bool
	depth  int
}

func (r *renderer) render(t *Texture) (*imagebuf.ImageBuf, error) {
	key := strings.ToUpper(t.Name)
	r.active[key] = true
	r.depth++
	defer func() {
		delete(r.active, key)
		r.depth--
	}()

	switch t.format {
	case FormatShortcutDefine:
		return r.renderDefine(t)
	case FormatExtended:
		return r.renderExtended(t)
	default:
		return r.renderRegular(t)
	}
}

func newCanvas(t *Texture, w, h int) (*imagebuf.ImageBuf, error) {
	img, err := imagebuf.NewImageBuf(w, h, imagebuf.FormatRGBA8)
	if err != nil {
		return nil, fmt.Errorf("ctexture: render %s (%dx%d): %w", t.Name, w, h, err)
	}
	return img, nil
}

func (r *renderer) renderRegular(t *Texture) (*imagebuf.ImageBuf, error) {
	canvas, err := newCanvas(t, t.Width, t.Height)
	if err != nil {
		return nil, err
	}
	for _, p := range t.patches {
		img := r.decode(t, p, FindPatchEntry(r.resolver, p, r.parent))
		if img == nil {
			continue
		}
		imagebuf.DrawImage(canvas, img, int(p.OffsetX), int(p.OffsetY), imagebuf.Opaque, r.pal)
	}
	return canvas, nil
}

// renderDefine starts from a canvas of the nominal size and resizes it to
// the patch, deriving the scale from the two sizes.
func (r *renderer) renderDefine(t *Texture) (*imagebuf.ImageBuf, error) {
	canvas, err := newCanvas(t, t.Width, t.Height)
	if err != nil {
		return nil, err
	}
	var img *imagebuf.ImageBuf
	if len(t.patches) > 0 {
		img = r.loadPatch(t, t.patches[0])
	}
	if img == nil {
		return canvas, nil
	}

	if err := canvas.Resize(img.Width(), img.Height()); err != nil {
		return nil, fmt.Errorf("ctexture: render %s: %w", t.Name, err)
	}
	t.Width, t.Height = img.Width(), img.Height()
	if t.NominalWidth > 0 {
		t.ScaleX = float64(t.Width) / float64(t.NominalWidth)
	}
	if t.NominalHeight > 0 {
		t.ScaleY = float64(t.Height) / float64(t.NominalHeight)
	}

	imagebuf.DrawImage(canvas, img, 0, 0, imagebuf.Opaque, r.pal)
	return canvas, nil
}

func (r *renderer) renderExtended(t *Texture) (*imagebuf.ImageBuf, error) {
	canvas, err := newCanvas(t, t.Width, t.Height)
	if err != nil {
		return nil, err
	}

	for _, p := range t.patches {
		img := r.loadPatch(t, p)
		if img == nil {
			continue
		}

		x, y := int(p.OffsetX), int(p.OffsetY)
		if p.UseOffsets {
			ox, oy := img.Offset()
			x -= ox
			y -= oy
		}

		// Translations work on palette indices, so they go before any RGBA conversion.
		if p.blend == BlendTranslation {
			p.translation.Apply(img, r.pal, r.forceRGBA)
		}
		if r.forceRGBA {
			img.ConvertRGBA(r.pal)
		}

		if p.FlipX {
			img.Mirror(false)
		}
		if p.FlipY {
			img.Mirror(true)
		}
		if p.Rotation != 0 && !img.Rotate(p.Rotation) {
			Logger().Warn("ctexture: unsupported rotation", "texture", t.Name, "patch", p.Name, "rotation", p.Rotation)
		}

		switch p.blend {
		case BlendColour:
			img.Colourise(p.colour, r.pal)
		case BlendTint:
			img.Tint(p.colour, p.TintAmount(), r.pal)
		}

		imagebuf.DrawImage(canvas, img, x, y, drawProps(p), r.pal)
	}
	return canvas, nil
}

// drawProps maps a patch style to blend parameters.
func drawProps(p *PatchEntry) imagebuf.DrawProps {
	props := imagebuf.Opaque
	switch p.Style {
	case StyleCopyAlpha, StyleOverlay:
		props.SrcAlpha = true
	case StyleTranslucent, StyleCopyNewAlpha:
		props.Alpha = p.Alpha
	case StyleAdd:
		props.Blend, props.Alpha = imagebuf.BlendAdd, p.Alpha
	case StyleSubtract:
		props.Blend, props.Alpha = imagebuf.BlendSubtract, p.Alpha
	case StyleReverseSubtract:
		props.Blend, props.Alpha = imagebuf.BlendReverseSubtract, p.Alpha
	case StyleModulate:
		props.Blend, props.Alpha = imagebuf.BlendModulate, p.Alpha
	}
	return props
}

// loadPatch returns a fresh image for an extended texture's patch, or nil.
//
// Textures used as patches come first: an earlier texture in the same list,
// then any texture the resolver knows. Then the patch namespaces are
// searched, and finally the textures namespace.
func (r *renderer) loadPatch(t *Texture, p *PatchEntry) *imagebuf.ImageBuf {
	if !strings.EqualFold(p.Name, t.Name) {
		if src := r.findTexture(t, p.Name); src != nil {
			if img := r.renderNested(t, src); img != nil {
				return img
			}
		}
	}

	if e := FindPatchEntry(r.resolver, p, r.parent); e != nil {
		return r.decode(t, p, e)
	}
	if r.resolver != nil {
		if e := r.resolver.Find(p.Name, NamespaceTextures, r.parent); e != nil {
			return r.decode(t, p, e)
		}
	}
	Logger().Warn("ctexture: patch not found", "texture", t.Name, "patch", p.Name)
	return nil
}

func (r *renderer) findTexture(t *Texture, name string) *Texture {
	if t.list != nil {
		if src := t.list.FindBefore(name, t); src != nil {
			return src
		}
	}
	if r.resolver != nil {
		return r.resolver.FindTexture(name, r.parent)
	}
	return nil
}

// renderNested renders src for use as a patch of t. Cycles and chains deeper
// than maxDepth are cut off and yield nil.
func (r *renderer) renderNested(t, src *Texture) *imagebuf.ImageBuf {
	if r.active[strings.ToUpper(src.Name)] {
		Logger().Warn("ctexture: texture cycle", "texture", t.Name, "uses", src.Name)
		return nil
	}
	if r.depth >= r.maxDepth {
		Logger().Warn("ctexture: texture nesting too deep", "texture", t.Name, "uses", src.Name, "max", r.maxDepth)
		return nil
	}
	img, err := r.render(src)
	if err != nil {
		Logger().Warn("ctexture: nested texture failed", "texture", t.Name, "uses", src.Name, "err", err)
		return nil
	}
	return img
}

// decode reads and decodes e, or returns nil when e is nil or unusable.
func (r *renderer) decode(t *Texture, p *PatchEntry, e Entry) *imagebuf.ImageBuf {
	if e == nil {
		Logger().Warn("ctexture: patch not found", "texture", t.Name, "patch", p.Name)
		return nil
	}
	decode := func() *imagebuf.ImageBuf {
		data, err := e.Data()
		if err != nil {
			Logger().Warn("ctexture: patch unreadable", "texture", t.Name, "patch", p.Name, "err", err)
			return nil
		}
		img, err := imagebuf.Decode(data)
		if err != nil {
			Logger().Warn("ctexture: patch not decodable", "texture", t.Name, "patch", p.Name, "err", err)
			return nil
		}
		return img
	}
	if r.cache != nil {
		return r.cache.load(e, decode)
	}
	return decode()
}
