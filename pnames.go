package ctexture

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LoadPNAMES replaces the table with the names stored in PNAMES data: a
// little-endian uint32 count followed by count 8-byte names. Duplicate names
// are kept. On corrupt data the table is left as it was before the call.
func (pt *PatchTable) LoadPNAMES(data []byte) error {
	restore := pt.Mute()
	defer restore()

	saved := pt.patches
	pt.patches = nil

	if len(data) < 4 {
		pt.patches = saved
		return fmt.Errorf("%w: missing count", ErrCorruptPNAMES)
	}
	count := binary.LittleEndian.Uint32(data)
	p := 4
	for i := range count {
		if p+nameSize > len(data) {
			pt.patches = saved
			Logger().Warn("ctexture: PNAMES record truncated", "index", i, "count", count)
			return fmt.Errorf("%w: record %d of %d truncated", ErrCorruptPNAMES, i, count)
		}
		pt.AddPatch(decodeName(data[p:p+nameSize]), true)
		p += nameSize
	}

	restore()
	pt.announce(pt, EventModified)
	return nil
}

// PNAMES returns the table encoded in PNAMES format.
func (pt *PatchTable) PNAMES() []byte {
	out := make([]byte, 4+len(pt.patches)*nameSize)
	binary.LittleEndian.PutUint32(out, uint32(len(pt.patches)))
	for i, p := range pt.patches {
		off := 4 + i*nameSize
		encodeName(out[off:off+nameSize], p.Name)
	}
	return out
}

// WritePNAMES writes the table in PNAMES format to w.
func (pt *PatchTable) WritePNAMES(w io.Writer) error {
	if _, err := w.Write(pt.PNAMES()); err != nil {
		return fmt.Errorf("ctexture: write PNAMES: %w", err)
	}
	return nil
}
