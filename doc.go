// Package ctexture models composite textures and renders them.
//
// # Overview
//
// A composite texture is a named canvas built by drawing an ordered stack of
// patches (image fragments) onto it. Each patch has a placement and, in the
// extended format, flips, rotation, a draw style and an optional colour effect.
//
// Textures come in three formats:
//   - Regular: the binary TEXTURE1/TEXTURE2 format. Patches refer to a
//     [PatchTable] (PNAMES) by index and carry offsets only.
//   - Extended: the TEXTURES text format with per-patch attributes.
//   - Shortcut define: a single full-size patch declared with define.
//
// # Quick Start
//
//	list, err := ctexture.ParseTextures(src, "TEXTURES")
//	if err != nil {
//	    return err
//	}
//	img, err := list.Find("WALL01").Render(
//	    ctexture.WithResolver(registry),
//	    ctexture.WithPalette(pal),
//	)
//	if err != nil {
//	    return err
//	}
//	return img.SavePNG("wall01.png", pal)
//
// # Resolution
//
// Rendering asks a [Resolver] for the bytes of each patch. Extended textures
// may use other textures as patches: earlier textures in the same
// [TextureList] are preferred, then any texture the resolver knows. Nested
// rendering is guarded against cycles and limited by [WithMaxDepth]. A patch
// that cannot be resolved is left out of the image. A [PatchCache] passed
// with [WithCache] keeps decoded patches between renders.
//
// # Notifications
//
// [Texture], [TextureList] and [PatchTable] embed an [Announcer]. Edits
// announce [EventModified] or [EventPatchesModified] to registered listeners.
//
// # Sub-packages
//
//   - imagebuf: pixel buffers, decoding, transforms and blending
//   - palette: 256-colour palettes
//   - translation: palette translation tables
//   - tokenizer: the token stream used by the text parser
//   - archive: fs.FS archives and a Resolver over them
package ctexture
