package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"golang.org/x/image/draw"

	"github.com/wadtools/ctexture"
	"github.com/wadtools/ctexture/archive"
	"github.com/wadtools/ctexture/imagebuf"
	"github.com/wadtools/ctexture/palette"
)

// workspace holds the opened archives and render settings of one run.
type workspace struct {
	cfg      Config
	archives []*archive.Archive
	registry *archive.Registry
	pal      *palette.Palette
}

func openWorkspace(cfg Config) (*workspace, error) {
	ws := &workspace{cfg: cfg, registry: archive.NewRegistry()}
	for _, dir := range cfg.Archives {
		a, err := archive.OpenDir(dir)
		if err != nil {
			return nil, err
		}
		if err := a.LoadTextures(); err != nil {
			return nil, err
		}
		ws.archives = append(ws.archives, a)
		ws.registry.Add(a)
	}

	pal, err := ws.loadPalette()
	if err != nil {
		return nil, err
	}
	ws.pal = pal
	return ws, nil
}

// loadPalette reads the configured palette file, or else the PLAYPAL lump
// of the archives. It returns nil when neither exists.
func (ws *workspace) loadPalette() (*palette.Palette, error) {
	var data []byte
	var err error
	if ws.cfg.Palette != "" {
		data, err = os.ReadFile(filepath.Clean(ws.cfg.Palette))
	} else {
		data, err = ws.registry.Entry("PLAYPAL", ctexture.NamespaceAny)
		if errors.Is(err, archive.ErrNotFound) {
			return nil, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return palette.FromPLAYPAL(data)
}

// owned pairs a texture with the archive it was loaded from.
type owned struct {
	tex *ctexture.Texture
	arc *archive.Archive
}

// textures returns every loaded texture, in archive then list order.
func (ws *workspace) textures() []owned {
	var out []owned
	for _, a := range ws.archives {
		for _, t := range a.Textures().Textures() {
			out = append(out, owned{t, a})
		}
	}
	return out
}

// lookup returns the texture name resolves to: the one in the newest
// archive that defines it.
func (ws *workspace) lookup(name string) (owned, bool) {
	for i := len(ws.archives) - 1; i >= 0; i-- {
		a := ws.archives[i]
		if t := a.Textures().Find(name); t != nil {
			return owned{t, a}, true
		}
	}
	return owned{}, false
}

func (ws *workspace) list(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ARCHIVE\tNAME\tTYPE\tFORMAT\tSIZE\tSCALE\tPATCHES")
	for _, o := range ws.textures() {
		t := o.tex
		sx, sy := t.Scale()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dx%d\t%gx%g\t%d\n",
			o.arc.Name(), t.Name, t.Type, t.Format(), t.Width, t.Height, sx, sy, t.PatchCount())
	}
	return tw.Flush()
}

// patches prints each archive's patch table with the textures using each
// patch and whether the patch resolves.
func (ws *workspace) patches(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ARCHIVE\tINDEX\tPATCH\tFOUND\tUSED IN")
	for _, a := range ws.archives {
		pt := a.PatchTable()
		pt.ClearUsage()
		for _, t := range a.Textures().Textures() {
			if t.Format() == ctexture.FormatRegular {
				pt.UpdateUsage(t)
			}
		}
		for i := range pt.Len() {
			found := pt.PatchEntry(ws.registry, i) != nil
			fmt.Fprintf(tw, "%s\t%d\t%s\t%t\t%s\n",
				a.Name(), i, pt.PatchName(i), found, strings.Join(pt.UsedIn(i), " "))
		}
	}
	return tw.Flush()
}

// text prints every texture as TEXTURES text. Regular textures are
// converted to the extended format first.
func (ws *workspace) text(out io.Writer) error {
	for _, o := range ws.textures() {
		c := ctexture.NewTexture("", ctexture.FormatExtended)
		c.CopyFrom(o.tex, o.tex.Format() == ctexture.FormatRegular)
		if _, err := io.WriteString(out, c.AsText()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// binary writes every texture as TEXTURE1 with a matching PNAMES into the
// output directory.
func (ws *workspace) binary() error {
	pt := ctexture.NewPatchTable(nil)
	list := ctexture.NewTextureList()
	for _, o := range ws.textures() {
		c := ctexture.NewTexture("", o.tex.Format())
		c.CopyFrom(o.tex, false)
		list.Add(c)
	}
	tex1 := list.TEXTUREX(pt)

	if err := os.MkdirAll(ws.cfg.Output, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(ws.cfg.Output, archive.LumpPNAMES+".lmp"), pt.PNAMES(), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(ws.cfg.Output, archive.LumpTEXTURE1+".lmp"), tex1, 0o644)
}

// render writes a PNG for each named texture, or for every texture when
// names is empty, and returns the paths of the files it wrote.
func (ws *workspace) render(names []string) ([]string, error) {
	var todo []owned
	if len(names) == 0 {
		todo = ws.textures()
	}
	for _, name := range names {
		o, ok := ws.lookup(name)
		if !ok {
			return nil, fmt.Errorf("texture %q not found", name)
		}
		todo = append(todo, o)
	}

	if err := os.MkdirAll(ws.cfg.Output, 0o755); err != nil {
		return nil, err
	}
	cache := ctexture.NewPatchCache(ws.cfg.CacheSize)
	defer func() {
		s := cache.Stats()
		ctexture.Logger().Debug("patch cache", "hits", s.Hits, "misses", s.Misses, "evictions", s.Evictions)
	}()
	var written []string
	for _, o := range todo {
		img, err := o.tex.Render(
			ctexture.WithResolver(ws.registry),
			ctexture.WithParent(o.arc),
			ctexture.WithPalette(ws.pal),
			ctexture.WithForceRGBA(ws.cfg.ForceRGBA),
			ctexture.WithMaxDepth(ws.cfg.MaxDepth),
			ctexture.WithCache(cache),
		)
		if err != nil {
			return written, err
		}
		base := filepath.Join(ws.cfg.Output, strings.ToLower(o.tex.Name))
		if err := img.SavePNG(base+".png", ws.pal); err != nil {
			return written, err
		}
		written = append(written, base+".png")
		if ws.cfg.Scaled {
			sx, sy := o.tex.Scale()
			if err := savePNG(base+".scaled.png", scalePreview(img, sx, sy, ws.pal)); err != nil {
				return written, err
			}
			written = append(written, base+".scaled.png")
		}
	}
	return written, nil
}

// scalePreview resizes img from texture pixels to world units, dividing
// each side by its scale.
func scalePreview(img *imagebuf.ImageBuf, sx, sy float64, pal *palette.Palette) *image.NRGBA {
	src := img.ToStdImage(pal)
	w := max(1, int(math.Round(float64(img.Width())/sx)))
	h := max(1, int(math.Round(float64(img.Height())/sy)))
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
