package ctexture

// ToExtended converts the texture to the extended format. A shortcut define
// simply becomes extended. For a regular texture a scale of 0 becomes 1; any
// other stored scale is kept as is, and every patch gains default extended
// attributes.
func (t *Texture) ToExtended() {
	switch t.format {
	case FormatShortcutDefine:
		t.format = FormatExtended
		t.announce(t, EventModified)
		return
	case FormatExtended:
		return
	}

	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	for _, p := range t.patches {
		p.Extended()
	}
	t.format = FormatExtended
	t.announce(t, EventModified)
}

// ToRegular converts the texture to the regular format. A scale of 1 becomes
// the 0 sentinel and any other scale is multiplied by 8. Patches lose every
// attribute but their name and offsets.
//
// ToRegular and ToExtended are not inverses: extended patch attributes are
// dropped and scales are re-encoded in eighths.
func (t *Texture) ToRegular() {
	if t.format == FormatRegular {
		return
	}

	if t.ScaleX == 1 {
		t.ScaleX = 0
	} else {
		t.ScaleX *= 8
	}
	if t.ScaleY == 1 {
		t.ScaleY = 0
	} else {
		t.ScaleY *= 8
	}
	for _, p := range t.patches {
		p.Basic()
	}
	t.format = FormatRegular
	t.announce(t, EventModified)
}
