package ctexture

// Resource namespaces searched when resolving patch names.
const (
	NamespacePatches  = "patches"
	NamespaceGraphics = "graphics"
	NamespaceTextures = "textures"
	NamespaceFlats    = "flats"

	// NamespaceAny matches entries in every namespace.
	NamespaceAny = ""
)

// Archive is a container of named entries.
type Archive interface {
	Name() string
}

// Entry is a named blob of data inside an archive. Implementations must be
// comparable; PatchTable.IndexOfEntry matches entries by identity.
type Entry interface {
	Name() string
	Data() ([]byte, error)
	Parent() Archive
}

// Resolver looks up resources by name across open archives. Both methods
// prefer matches inside parent, when it is not nil, and return nil on a miss.
type Resolver interface {
	Find(name, namespace string, parent Archive) Entry
	FindTexture(name string, parent Archive) *Texture
}

// basicNamespaces is the search order for basic patches.
var basicNamespaces = []string{NamespacePatches, NamespaceGraphics, NamespaceTextures}

// extendedNamespaces returns the search order for an extended patch.
func extendedNamespaces(kind PatchKind) []string {
	if kind == PatchKindGraphic {
		return []string{NamespaceGraphics, NamespacePatches, NamespaceFlats}
	}
	return []string{NamespacePatches, NamespaceFlats, NamespaceGraphics}
}

// FindPatchEntry resolves the source entry of p through r. Basic patches
// search patches, graphics and textures; extended patches search their
// preferred namespace first. It returns nil when r is nil or nothing matches.
func FindPatchEntry(r Resolver, p *PatchEntry, parent Archive) Entry {
	if r == nil {
		return nil
	}
	namespaces := basicNamespaces
	if p.IsExtended() {
		namespaces = extendedNamespaces(p.Kind)
	}
	for _, ns := range namespaces {
		if e := r.Find(p.Name, ns, parent); e != nil {
			Logger().Debug("ctexture: patch resolved", "patch", p.Name, "namespace", ns)
			return e
		}
	}
	return nil
}
