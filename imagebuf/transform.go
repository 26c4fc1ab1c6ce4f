package imagebuf

// Mirror flips the image in place: horizontally, or vertically when vertical is true.
func (b *ImageBuf) Mirror(vertical bool) {
	bpp := b.format.BytesPerPixel()
	if vertical {
		tmp := make([]byte, b.stride)
		for y := range b.height / 2 {
			top := b.data[y*b.stride : (y+1)*b.stride]
			bot := b.data[(b.height-1-y)*b.stride : (b.height-y)*b.stride]
			copy(tmp, top)
			copy(top, bot)
			copy(bot, tmp)
		}
		return
	}

	for y := range b.height {
		row := b.data[y*b.stride : (y+1)*b.stride]
		for x := range b.width / 2 {
			l := x * bpp
			r := (b.width - 1 - x) * bpp
			for i := range bpp {
				row[l+i], row[r+i] = row[r+i], row[l+i]
			}
		}
	}
}

// Rotate rotates the image clockwise by angle degrees. Only multiples of 90
// are supported; negative angles rotate anticlockwise. Returns false and
// leaves the image untouched for any other angle.
func (b *ImageBuf) Rotate(angle int) bool {
	angle %= 360
	if angle < 0 {
		angle += 360
	}
	if angle%90 != 0 {
		return false
	}
	if angle == 0 {
		return true
	}

	w, h := b.width, b.height
	nw, nh := w, h
	if angle != 180 {
		nw, nh = h, w
	}

	bpp := b.format.BytesPerPixel()
	nstride := b.format.RowBytes(nw)
	out := make([]byte, nstride*nh)
	for y := range h {
		for x := range w {
			var dx, dy int
			switch angle {
			case 90:
				dx, dy = h-1-y, x
			case 180:
				dx, dy = w-1-x, h-1-y
			case 270:
				dx, dy = y, w-1-x
			}
			src := y*b.stride + x*bpp
			dst := dy*nstride + dx*bpp
			copy(out[dst:dst+bpp], b.data[src:src+bpp])
		}
	}

	b.data = out
	b.width = nw
	b.height = nh
	b.stride = nstride
	return true
}
