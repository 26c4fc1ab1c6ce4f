package ctexture

import (
	"strings"
)

// TextureList is an ordered collection of textures. A texture may only use
// textures earlier in its own list as patches.
type TextureList struct {
	Announcer

	textures []*Texture
}

// NewTextureList returns an empty list.
func NewTextureList() *TextureList {
	return &TextureList{}
}

// Len returns the number of textures.
func (l *TextureList) Len() int {
	return len(l.textures)
}

// Texture returns the texture at index, or nil.
func (l *TextureList) Texture(index int) *Texture {
	if index < 0 || index >= len(l.textures) {
		return nil
	}
	return l.textures[index]
}

// Textures returns the textures in order. The slice is a copy.
func (l *TextureList) Textures() []*Texture {
	return append([]*Texture(nil), l.textures...)
}

// Add appends t, taking it from any list it was in.
func (l *TextureList) Add(t *Texture) {
	l.Insert(t, -1)
}

// Insert places t at index, or appends it when index is out of range.
func (l *TextureList) Insert(t *Texture, index int) {
	if t.list != nil {
		t.list.Remove(t.list.indexOf(t))
	}
	if index < 0 || index >= len(l.textures) {
		l.textures = append(l.textures, t)
	} else {
		l.textures = append(l.textures[:index], append([]*Texture{t}, l.textures[index:]...)...)
	}
	t.list = l
	l.reindex()
	l.announce(l, EventModified)
}

// Remove takes the texture at index out of the list and returns it.
func (l *TextureList) Remove(index int) *Texture {
	if index < 0 || index >= len(l.textures) {
		return nil
	}
	t := l.textures[index]
	l.textures = append(l.textures[:index], l.textures[index+1:]...)
	t.list = nil
	t.positionHint = index
	l.reindex()
	l.announce(l, EventModified)
	return t
}

func (l *TextureList) reindex() {
	for i, t := range l.textures {
		t.positionHint = i
	}
}

func (l *TextureList) indexOf(t *Texture) int {
	for i, lt := range l.textures {
		if lt == t {
			return i
		}
	}
	return -1
}

// IndexOf returns the index of the first texture named name, ignoring case,
// or -1.
func (l *TextureList) IndexOf(name string) int {
	for i, t := range l.textures {
		if strings.EqualFold(t.Name, name) {
			return i
		}
	}
	return -1
}

// Find returns the first texture named name, ignoring case, or nil.
func (l *TextureList) Find(name string) *Texture {
	return l.Texture(l.IndexOf(name))
}

// FindBefore returns the first texture named name that precedes owner in
// the list. The scan stops at owner, so owner itself and later textures are
// never returned. Textures named like owner also end the scan.
func (l *TextureList) FindBefore(name string, owner *Texture) *Texture {
	for _, t := range l.textures {
		if t == owner || strings.EqualFold(t.Name, owner.Name) {
			return nil
		}
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// AsText returns the TEXTURES text of every non-regular texture, in order.
func (l *TextureList) AsText() string {
	var b strings.Builder
	for _, t := range l.textures {
		b.WriteString(t.AsText())
	}
	return b.String()
}

// ToExtended converts every texture to the extended format.
func (l *TextureList) ToExtended() {
	for _, t := range l.textures {
		t.ToExtended()
	}
}

// ToRegular converts every texture to the regular format.
func (l *TextureList) ToRegular() {
	for _, t := range l.textures {
		t.ToRegular()
	}
}
