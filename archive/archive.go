// Package archive provides resource archives backed by an fs.FS and a
// registry that resolves names across them.
//
// Top-level directories name namespaces ("patches", "graphics", "flats",
// "textures", ...); files at the root belong to no namespace. Entry names are
// the upper-cased file name without its extension, so "patches/wall01.png"
// is entry WALL01 in namespace "patches".
package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/wadtools/ctexture"
)

// Lump names read by LoadTextures.
const (
	LumpPNAMES   = "PNAMES"
	LumpTEXTURE1 = "TEXTURE1"
	LumpTEXTURE2 = "TEXTURE2"
	LumpTEXTURES = "TEXTURES"
)

// ErrNotFound is returned by Registry.Entry when no archive has the entry.
var ErrNotFound = errors.New("archive: entry not found")

// Entry is a file inside an Archive. Its data is read on first use.
type Entry struct {
	name      string
	namespace string
	path      string
	archive   *Archive

	once sync.Once
	data []byte
	err  error
}

// Name returns the entry name.
func (e *Entry) Name() string { return e.name }

// Namespace returns the entry namespace, or "" for root entries.
func (e *Entry) Namespace() string { return e.namespace }

// Path returns the entry's path inside the archive.
func (e *Entry) Path() string { return e.path }

// Parent returns the archive holding the entry.
func (e *Entry) Parent() ctexture.Archive { return e.archive }

// Data returns the entry's bytes.
func (e *Entry) Data() ([]byte, error) {
	e.once.Do(func() {
		e.data, e.err = fs.ReadFile(e.archive.fsys, e.path)
		if e.err != nil {
			e.err = fmt.Errorf("archive: read %s: %w", e.path, e.err)
		}
	})
	return e.data, e.err
}

// Archive is a set of entries read from an fs.FS.
type Archive struct {
	name    string
	fsys    fs.FS
	entries []*Entry

	pnames   *ctexture.PatchTable
	textures *ctexture.TextureList
}

// Open indexes every regular file in fsys.
func Open(name string, fsys fs.FS) (*Archive, error) {
	a := &Archive{name: name, fsys: fsys}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		ns := ""
		if dir, _, ok := strings.Cut(p, "/"); ok {
			ns = strings.ToLower(dir)
		}
		base := path.Base(p)
		a.entries = append(a.entries, &Entry{
			name:      strings.ToUpper(strings.TrimSuffix(base, path.Ext(base))),
			namespace: ns,
			path:      p,
			archive:   a,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("archive: open %s: %w", name, err)
	}
	a.pnames = ctexture.NewPatchTable(a)
	a.textures = ctexture.NewTextureList()
	return a, nil
}

// OpenDir opens the directory dir as an archive named after it.
func OpenDir(dir string) (*Archive, error) {
	return Open(filepath.Base(filepath.Clean(dir)), os.DirFS(dir))
}

// Name returns the archive name.
func (a *Archive) Name() string { return a.name }

// Entries returns every entry in walk order.
func (a *Archive) Entries() []*Entry {
	return append([]*Entry(nil), a.entries...)
}

// Find returns the last entry named name, ignoring case, in namespace. An
// empty namespace matches every entry.
func (a *Archive) Find(name, namespace string) *Entry {
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		if namespace != ctexture.NamespaceAny && e.namespace != namespace {
			continue
		}
		if strings.EqualFold(e.name, name) {
			return e
		}
	}
	return nil
}

// lump returns the last root entry named name.
func (a *Archive) lump(name string) *Entry {
	for i := len(a.entries) - 1; i >= 0; i-- {
		if e := a.entries[i]; e.namespace == "" && strings.EqualFold(e.name, name) {
			return e
		}
	}
	return nil
}

// PatchTable returns the archive's patch table, filled by LoadTextures.
func (a *Archive) PatchTable() *ctexture.PatchTable { return a.pnames }

// Textures returns the archive's textures, filled by LoadTextures.
func (a *Archive) Textures() *ctexture.TextureList { return a.textures }

// LoadTextures reads PNAMES, TEXTURE1, TEXTURE2 and TEXTURES from the root
// of the archive, in that order. Missing lumps are skipped; the first corrupt
// one aborts the load.
func (a *Archive) LoadTextures() error {
	pnames := ctexture.NewPatchTable(a)
	list := ctexture.NewTextureList()

	if e := a.lump(LumpPNAMES); e != nil {
		data, err := e.Data()
		if err != nil {
			return err
		}
		if err := pnames.LoadPNAMES(data); err != nil {
			return fmt.Errorf("archive: %s: %w", e.path, err)
		}
	}

	for _, lump := range []string{LumpTEXTURE1, LumpTEXTURE2} {
		e := a.lump(lump)
		if e == nil {
			continue
		}
		if pnames.Len() == 0 {
			ctexture.Logger().Warn("archive: texture lump without PNAMES", "archive", a.name, "lump", lump)
		}
		data, err := e.Data()
		if err != nil {
			return err
		}
		if err := list.LoadTEXTUREX(data, pnames); err != nil {
			return fmt.Errorf("archive: %s: %w", e.path, err)
		}
	}

	if e := a.lump(LumpTEXTURES); e != nil {
		data, err := e.Data()
		if err != nil {
			return err
		}
		parsed, err := ctexture.ParseTextures(string(data), e.path)
		if err != nil {
			return fmt.Errorf("archive: %s: %w", e.path, err)
		}
		for _, t := range parsed.Textures() {
			list.Add(t)
		}
	}

	a.pnames = pnames
	a.textures = list
	return nil
}
