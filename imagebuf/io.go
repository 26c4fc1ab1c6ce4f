package imagebuf

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/wadtools/ctexture/palette"
)

// ToStdImage converts the ImageBuf to a standard library *image.NRGBA,
// resolving indexed pixels through the image's own palette or pal.
func (b *ImageBuf) ToStdImage(pal *palette.Palette) *image.NRGBA {
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))

	if b.format == FormatRGBA8 {
		for y := range b.height {
			copy(nrgba.Pix[y*nrgba.Stride:], b.data[y*b.stride:y*b.stride+b.width*4])
		}
		return nrgba
	}

	for y := range b.height {
		for x := range b.width {
			nrgba.SetNRGBA(x, y, b.At(x, y, pal))
		}
	}
	return nrgba
}

// EncodePNG encodes the image as PNG to the given writer.
func (b *ImageBuf) EncodePNG(w io.Writer, pal *palette.Palette) error {
	if err := png.Encode(w, b.ToStdImage(pal)); err != nil {
		return fmt.Errorf("imagebuf: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the image as a PNG file.
func (b *ImageBuf) SavePNG(path string, pal *palette.Palette) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imagebuf: create file: %w", err)
	}

	if err := b.EncodePNG(f, pal); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
