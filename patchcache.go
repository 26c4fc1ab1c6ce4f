package ctexture

import (
	"github.com/wadtools/ctexture/imagebuf"
	"github.com/wadtools/ctexture/internal/lru"
)

// PatchCache keeps decoded patch images between renders, keyed by the
// resolved Entry. Entries must be comparable; pointer types are.
//
// Cached images are never handed out directly: every hit returns a copy, so
// per-patch transforms cannot leak into later renders. A PatchCache is safe
// for concurrent use.
type PatchCache struct {
	images *lru.Cache[Entry, *imagebuf.ImageBuf]
}

// CacheStats is a snapshot of PatchCache counters.
type CacheStats = lru.Stats

// NewPatchCache returns a cache holding at most capacity decoded images.
// A capacity below 1 selects a default.
func NewPatchCache(capacity int) *PatchCache {
	return &PatchCache{images: lru.New[Entry, *imagebuf.ImageBuf](capacity)}
}

// load returns a copy of the cached image for e, decoding it with decode on
// a miss. Failed decodes are not cached.
func (c *PatchCache) load(e Entry, decode func() *imagebuf.ImageBuf) *imagebuf.ImageBuf {
	img := c.images.GetOrCreate(e, func() (*imagebuf.ImageBuf, bool) {
		img := decode()
		return img, img != nil
	})
	if img == nil {
		return nil
	}
	return img.Clone()
}

// Invalidate drops the image cached for e. It reports whether there was one.
func (c *PatchCache) Invalidate(e Entry) bool {
	return c.images.Delete(e)
}

// Clear drops every cached image.
func (c *PatchCache) Clear() {
	c.images.Clear()
}

// Len returns the number of cached images.
func (c *PatchCache) Len() int {
	return c.images.Len()
}

// Stats returns the cache counters.
func (c *PatchCache) Stats() CacheStats {
	return c.images.Stats()
}
