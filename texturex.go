package ctexture

import (
	"encoding/binary"
	"fmt"
	"io"
)

// TEXTUREx record layout.
const (
	texRecordSize    = 22
	texPatchSize     = 10
	flagWorldPanning = 0x8000
)

// LoadTEXTUREX appends the textures stored in TEXTURE1/TEXTURE2 data to the
// list as regular textures. Patch numbers are resolved through pt. On
// corrupt data nothing is added.
func (l *TextureList) LoadTEXTUREX(data []byte, pt *PatchTable) error {
	if len(data) < 4 {
		return fmt.Errorf("%w: missing count", ErrCorruptTEXTUREX)
	}
	count := int(int32(binary.LittleEndian.Uint32(data)))
	if count < 0 || 4+count*4 > len(data) {
		return fmt.Errorf("%w: bad texture count %d", ErrCorruptTEXTUREX, count)
	}

	textures := make([]*Texture, 0, count)
	for i := range count {
		off := int(int32(binary.LittleEndian.Uint32(data[4+i*4:])))
		t, err := readTexRecord(data, off, pt)
		if err != nil {
			return fmt.Errorf("%w: texture %d: %v", ErrCorruptTEXTUREX, i, err)
		}
		textures = append(textures, t)
	}

	restore := l.Mute()
	for _, t := range textures {
		l.Add(t)
	}
	restore()
	l.announce(l, EventModified)
	return nil
}

func readTexRecord(data []byte, off int, pt *PatchTable) (*Texture, error) {
	if off < 0 || off+texRecordSize > len(data) {
		return nil, fmt.Errorf("record offset %d out of range", off)
	}
	rec := data[off:]
	t := NewTexture(decodeName(rec[:nameSize]), FormatRegular)
	flags := binary.LittleEndian.Uint16(rec[8:])
	t.WorldPanning = flags&flagWorldPanning != 0
	t.ScaleX = float64(rec[10])
	t.ScaleY = float64(rec[11])
	t.Width = int(int16(binary.LittleEndian.Uint16(rec[12:])))
	t.Height = int(int16(binary.LittleEndian.Uint16(rec[14:])))
	n := int(int16(binary.LittleEndian.Uint16(rec[20:])))
	if n < 0 || off+texRecordSize+n*texPatchSize > len(data) {
		return nil, fmt.Errorf("%s: %d patches overrun the lump", t.Name, n)
	}

	for j := range n {
		p := rec[texRecordSize+j*texPatchSize:]
		x := int16(binary.LittleEndian.Uint16(p[0:]))
		y := int16(binary.LittleEndian.Uint16(p[2:]))
		idx := int(int16(binary.LittleEndian.Uint16(p[4:])))
		name := pt.PatchName(idx)
		if name == "" {
			Logger().Warn("ctexture: patch number out of range", "texture", t.Name, "index", idx, "pnames", pt.Len())
			continue
		}
		t.appendPatch(NewBasicPatch(name, x, y))
	}
	return t, nil
}

// TEXTUREX encodes the list in TEXTURE1/TEXTURE2 format. Textures in other
// formats are written as their regular conversion. Patch names missing from
// pt are appended to it.
func (l *TextureList) TEXTUREX(pt *PatchTable) []byte {
	n := len(l.textures)
	out := make([]byte, 4+n*4)
	binary.LittleEndian.PutUint32(out, uint32(n))

	for i, src := range l.textures {
		t := src
		if t.format != FormatRegular {
			t = NewTexture("", FormatRegular)
			t.CopyFrom(src, true)
		}
		binary.LittleEndian.PutUint32(out[4+i*4:], uint32(len(out)))

		rec := make([]byte, texRecordSize+len(t.patches)*texPatchSize)
		encodeName(rec, t.Name)
		var flags uint16
		if t.WorldPanning {
			flags |= flagWorldPanning
		}
		binary.LittleEndian.PutUint16(rec[8:], flags)
		rec[10] = scaleByte(t.ScaleX)
		rec[11] = scaleByte(t.ScaleY)
		binary.LittleEndian.PutUint16(rec[12:], uint16(int16(t.Width)))
		binary.LittleEndian.PutUint16(rec[14:], uint16(int16(t.Height)))
		binary.LittleEndian.PutUint16(rec[20:], uint16(len(t.patches)))

		for j, p := range t.patches {
			idx := pt.IndexOf(p.Name)
			if idx < 0 {
				pt.AddPatch(p.Name, false)
				idx = pt.Len() - 1
			}
			pr := rec[texRecordSize+j*texPatchSize:]
			binary.LittleEndian.PutUint16(pr[0:], uint16(p.OffsetX))
			binary.LittleEndian.PutUint16(pr[2:], uint16(p.OffsetY))
			binary.LittleEndian.PutUint16(pr[4:], uint16(int16(idx)))
		}
		out = append(out, rec...)
	}
	return out
}

// WriteTEXTUREX writes the list in TEXTURE1/TEXTURE2 format to w.
func (l *TextureList) WriteTEXTUREX(w io.Writer, pt *PatchTable) error {
	if _, err := w.Write(l.TEXTUREX(pt)); err != nil {
		return fmt.Errorf("ctexture: write TEXTUREx: %w", err)
	}
	return nil
}

func scaleByte(v float64) uint8 {
	return uint8(max(0, min(255, v)))
}
