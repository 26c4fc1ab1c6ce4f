package ctexture

import "github.com/wadtools/ctexture/palette"

// DefaultMaxDepth is the default limit on nested texture-as-patch rendering.
const DefaultMaxDepth = 8

// RenderOption configures Texture.Render.
//
// Example:
//
//	img, err := tex.Render(
//	    ctexture.WithResolver(registry),
//	    ctexture.WithPalette(pal),
//	    ctexture.WithForceRGBA(true),
//	)
type RenderOption func(*renderOptions)

// renderOptions holds the configuration of a render.
type renderOptions struct {
	parent    Archive
	pal       *palette.Palette
	forceRGBA bool
	maxDepth  int
	resolver  Resolver
	cache     *PatchCache
}

// defaultRenderOptions returns the default render options.
func defaultRenderOptions() renderOptions {
	return renderOptions{
		maxDepth: DefaultMaxDepth,
	}
}

// WithParent makes patch lookups prefer entries inside a.
func WithParent(a Archive) RenderOption {
	return func(o *renderOptions) {
		o.parent = a
	}
}

// WithPalette sets the palette used for indexed patches. Without one,
// patches that carry no palette of their own render in greyscale.
func WithPalette(p *palette.Palette) RenderOption {
	return func(o *renderOptions) {
		o.pal = p
	}
}

// WithForceRGBA converts every patch to RGBA before it is transformed and
// composited. Translations are still applied to the indexed data first.
func WithForceRGBA(force bool) RenderOption {
	return func(o *renderOptions) {
		o.forceRGBA = force
	}
}

// WithMaxDepth limits how deeply textures used as patches may nest. Values
// below 1 are ignored.
func WithMaxDepth(depth int) RenderOption {
	return func(o *renderOptions) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithResolver sets the resolver used to find patch data and textures
// outside the texture's own list. Without one only earlier textures in the
// same list can be used as patches.
func WithResolver(r Resolver) RenderOption {
	return func(o *renderOptions) {
		o.resolver = r
	}
}

// WithCache reuses decoded patch images across renders sharing c.
func WithCache(c *PatchCache) RenderOption {
	return func(o *renderOptions) {
		o.cache = c
	}
}
