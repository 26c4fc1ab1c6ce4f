package ctexture

import (
	"slices"
	"strings"
)

// TablePatch is a PatchTable record.
type TablePatch struct {
	Name string

	usedIn []string
}

// UsedIn returns the names of the textures that use the patch, in the order
// they were recorded. Each name appears once.
func (p *TablePatch) UsedIn() []string {
	return slices.Clone(p.usedIn)
}

func (p *TablePatch) addUsage(texture string) {
	if !slices.Contains(p.usedIn, texture) {
		p.usedIn = append(p.usedIn, texture)
	}
}

func (p *TablePatch) removeUsage(texture string) {
	p.usedIn = slices.DeleteFunc(p.usedIn, func(s string) bool { return s == texture })
}

// PatchTable is the ordered patch name table (PNAMES) shared by regular
// textures, which refer to patches by index.
//
// The usage sets are a cache rebuilt by UpdateUsage and are not kept in
// sync by other edits.
type PatchTable struct {
	Announcer

	patches []*TablePatch
	parent  Archive
}

// NewPatchTable returns an empty table whose names resolve preferentially
// inside parent.
func NewPatchTable(parent Archive) *PatchTable {
	return &PatchTable{parent: parent}
}

// Parent returns the archive the table belongs to.
func (pt *PatchTable) Parent() Archive {
	return pt.parent
}

// SetParent changes the archive names resolve in.
func (pt *PatchTable) SetParent(a Archive) {
	pt.parent = a
}

// Len returns the number of patches.
func (pt *PatchTable) Len() int {
	return len(pt.patches)
}

// Patch returns the patch at index.
func (pt *PatchTable) Patch(index int) (*TablePatch, bool) {
	if index < 0 || index >= len(pt.patches) {
		return nil, false
	}
	return pt.patches[index], true
}

// PatchByName returns the first patch named name, ignoring case.
func (pt *PatchTable) PatchByName(name string) (*TablePatch, bool) {
	return pt.Patch(pt.IndexOf(name))
}

// PatchName returns the name of the patch at index, or "" when out of range.
func (pt *PatchTable) PatchName(index int) string {
	if p, ok := pt.Patch(index); ok {
		return p.Name
	}
	return ""
}

// Names returns every patch name in order.
func (pt *PatchTable) Names() []string {
	names := make([]string, len(pt.patches))
	for i, p := range pt.patches {
		names[i] = p.Name
	}
	return names
}

// UsedIn returns the textures recorded as using the patch at index.
func (pt *PatchTable) UsedIn(index int) []string {
	if p, ok := pt.Patch(index); ok {
		return p.UsedIn()
	}
	return nil
}

// IndexOf returns the index of the first patch named name, ignoring case,
// or -1.
func (pt *PatchTable) IndexOf(name string) int {
	for i, p := range pt.patches {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

// IndexOfEntry returns the index of the first patch whose patches-namespace
// entry, resolved through r, is e. It returns -1 when none matches.
func (pt *PatchTable) IndexOfEntry(r Resolver, e Entry) int {
	if r == nil || e == nil {
		return -1
	}
	for i, p := range pt.patches {
		if r.Find(p.Name, NamespacePatches, pt.parent) == e {
			return i
		}
	}
	return -1
}

// PatchEntry resolves the entry of the patch at index, searching the patches
// namespace and then graphics. It returns nil on a miss.
func (pt *PatchTable) PatchEntry(r Resolver, index int) Entry {
	p, ok := pt.Patch(index)
	if !ok || r == nil {
		return nil
	}
	if e := r.Find(p.Name, NamespacePatches, pt.parent); e != nil {
		return e
	}
	return r.Find(p.Name, NamespaceGraphics, pt.parent)
}

// AddPatch appends a patch. It returns false, leaving the table unchanged,
// when the name already exists and allowDuplicate is false.
func (pt *PatchTable) AddPatch(name string, allowDuplicate bool) bool {
	if !allowDuplicate && pt.IndexOf(name) >= 0 {
		return false
	}
	pt.patches = append(pt.patches, &TablePatch{Name: name})
	pt.announce(pt, EventModified)
	return true
}

// RemovePatch removes the patch at index.
func (pt *PatchTable) RemovePatch(index int) bool {
	if index < 0 || index >= len(pt.patches) {
		return false
	}
	pt.patches = slices.Delete(pt.patches, index, index+1)
	pt.announce(pt, EventModified)
	return true
}

// ReplacePatch renames the patch at index.
func (pt *PatchTable) ReplacePatch(index int, name string) bool {
	if index < 0 || index >= len(pt.patches) {
		return false
	}
	pt.patches[index].Name = name
	pt.announce(pt, EventModified)
	return true
}

// ClearUsage empties every usage set.
func (pt *PatchTable) ClearUsage() {
	for _, p := range pt.patches {
		p.usedIn = nil
	}
	pt.announce(pt, EventModified)
}

// UpdateUsage rescans t: its name is removed from every usage set and then
// added to the set of each patch it references.
func (pt *PatchTable) UpdateUsage(t *Texture) {
	for _, p := range pt.patches {
		p.removeUsage(t.Name)
	}
	for _, tp := range t.patches {
		if p, ok := pt.PatchByName(tp.Name); ok {
			p.addUsage(t.Name)
		}
	}
	pt.announce(pt, EventModified)
}
