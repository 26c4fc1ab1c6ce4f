package ctexture

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wadtools/ctexture/imagebuf"
)

type testArchive string

func (a testArchive) Name() string { return string(a) }

type testEntry struct {
	name   string
	data   []byte
	parent Archive
}

func (e *testEntry) Name() string          { return e.name }
func (e *testEntry) Data() ([]byte, error) { return e.data, nil }
func (e *testEntry) Parent() Archive       { return e.parent }

// mapResolver is an in-memory Resolver recording every lookup.
type mapResolver struct {
	entries  map[string]*testEntry
	textures map[string]*Texture
	calls    []string
}

func newMapResolver() *mapResolver {
	return &mapResolver{entries: map[string]*testEntry{}, textures: map[string]*Texture{}}
}

func (r *mapResolver) add(namespace, name string, data []byte) *testEntry {
	e := &testEntry{name: name, data: data, parent: testArchive("test")}
	r.entries[namespace+"/"+strings.ToUpper(name)] = e
	return e
}

func (r *mapResolver) Find(name, namespace string, _ Archive) Entry {
	key := namespace + "/" + strings.ToUpper(name)
	r.calls = append(r.calls, key)
	if e, ok := r.entries[key]; ok {
		return e
	}
	return nil
}

func (r *mapResolver) FindTexture(name string, _ Archive) *Texture {
	return r.textures[strings.ToUpper(name)]
}

// solidPNG encodes a w x h RGBA image filled with c.
func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img, err := imagebuf.NewImageBuf(w, h, imagebuf.FormatRGBA8)
	require.NoError(t, err)
	for y := range h {
		for x := range w {
			require.NoError(t, img.Set(x, y, c, nil))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, img.EncodePNG(&buf, nil))
	return buf.Bytes()
}

// solidPicture encodes a w x h column-based picture with every pixel set to
// index and the given embedded offsets.
func solidPicture(w, h int, index uint8, left, top int16) []byte {
	var b bytes.Buffer
	for _, v := range []int16{int16(w), int16(h), left, top} {
		_ = binary.Write(&b, binary.LittleEndian, v)
	}
	colSize := h + 5
	for x := range w {
		_ = binary.Write(&b, binary.LittleEndian, uint32(8+w*4+x*colSize))
	}
	for range w {
		b.Write([]byte{0, byte(h), 0})
		b.Write(bytes.Repeat([]byte{index}, h))
		b.Write([]byte{0, 0xFF})
	}
	return b.Bytes()
}

// rgbaAt returns the pixel at (x, y) of an RGBA8 image.
func rgbaAt(img *imagebuf.ImageBuf, x, y int) color.NRGBA {
	return img.At(x, y, nil)
}

// eventLog records announcements.
type eventLog struct {
	events []string
}

func (l *eventLog) OnAnnouncement(_ any, event string) {
	l.events = append(l.events, event)
}
