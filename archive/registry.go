package archive

import (
	"fmt"
	"slices"

	"github.com/wadtools/ctexture"
)

// Registry resolves names across open archives. Archives opened later take
// priority over earlier ones, and a caller-supplied parent archive takes
// priority over all of them.
type Registry struct {
	archives []*Archive
}

var _ ctexture.Resolver = (*Registry)(nil)

// NewRegistry returns a registry over archives, in opening order.
func NewRegistry(archives ...*Archive) *Registry {
	return &Registry{archives: slices.Clone(archives)}
}

// Add opens a into the registry with the highest priority.
func (r *Registry) Add(a *Archive) {
	r.archives = append(r.archives, a)
}

// Remove closes a. It reports whether a was open.
func (r *Registry) Remove(a *Archive) bool {
	i := slices.Index(r.archives, a)
	if i < 0 {
		return false
	}
	r.archives = slices.Delete(r.archives, i, i+1)
	return true
}

// Archives returns the open archives in opening order.
func (r *Registry) Archives() []*Archive {
	return slices.Clone(r.archives)
}

// search calls fn on the parent archive first, then on every other archive
// from newest to oldest, until fn reports a hit.
func (r *Registry) search(parent ctexture.Archive, fn func(*Archive) bool) {
	pa, _ := parent.(*Archive)
	if pa != nil && fn(pa) {
		return
	}
	for i := len(r.archives) - 1; i >= 0; i-- {
		if a := r.archives[i]; a != pa && fn(a) {
			return
		}
	}
}

// Find implements ctexture.Resolver.
func (r *Registry) Find(name, namespace string, parent ctexture.Archive) ctexture.Entry {
	var found *Entry
	r.search(parent, func(a *Archive) bool {
		found = a.Find(name, namespace)
		return found != nil
	})
	if found == nil {
		return nil
	}
	return found
}

// FindTexture implements ctexture.Resolver. It searches the textures loaded
// by each archive's LoadTextures.
func (r *Registry) FindTexture(name string, parent ctexture.Archive) *ctexture.Texture {
	var found *ctexture.Texture
	r.search(parent, func(a *Archive) bool {
		found = a.textures.Find(name)
		return found != nil
	})
	return found
}

// Entry returns the bytes of the entry name in namespace.
func (r *Registry) Entry(name, namespace string) ([]byte, error) {
	e := r.Find(name, namespace, nil)
	if e == nil {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, namespace, name)
	}
	return e.Data()
}
