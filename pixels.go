package steg

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cespare/xxhash/v2"
)

// Pixels is a decoded raster: W*H pixels in row-major order, four 8-bit
// non-premultiplied channels (R, G, B, A) per pixel.
type Pixels struct {
	W, H int
	Pix  []uint8
}

// NewPixels returns a fully transparent black buffer of the given size.
func NewPixels(w, h int) *Pixels {
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	return &Pixels{W: w, H: h, Pix: make([]uint8, w*h*rgbaChannels)}
}

// Clone returns a deep copy of p.
func (p *Pixels) Clone() *Pixels {
	pix := make([]uint8, len(p.Pix))
	copy(pix, p.Pix)
	return &Pixels{W: p.W, H: p.H, Pix: pix}
}

// PixOffset returns the index of the first channel of the pixel at (x, y).
func (p *Pixels) PixOffset(x, y int) int {
	return (y*p.W + x) * rgbaChannels
}

// NRGBAAt returns the colour of the pixel at (x, y).
func (p *Pixels) NRGBAAt(x, y int) color.NRGBA {
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+rgbaChannels : i+rgbaChannels]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// Digest returns a fingerprint of the pixel data. Two buffers with the same
// dimensions and digest almost certainly carry the same channel values.
func (p *Pixels) Digest() uint64 {
	return xxhash.Sum64(p.Pix)
}

// DigestString is Digest formatted for display.
func (p *Pixels) DigestString() string {
	return fmt.Sprintf("%016x", p.Digest())
}

// Image returns p as an *image.NRGBA sharing no memory with p.
func (p *Pixels) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.W, p.H))
	copy(img.Pix, p.Pix)
	return img
}

// FromImage converts any decoded image into an 8-bit non-premultiplied buffer.
// Images with 16-bit channels keep only their high byte.
func FromImage(img image.Image) (*Pixels, error) {
	if img == nil {
		return nil, &InvalidFormatError{"The provided image is nil."}
	}
	b := img.Bounds()
	p := NewPixels(b.Dx(), b.Dy())

	// NRGBA already has this layout, so rows are copied straight across
	if simg, ok := img.(*image.NRGBA); ok {
		rowLen := p.W * rgbaChannels
		for y := 0; y < p.H; y++ {
			src := simg.PixOffset(b.Min.X, b.Min.Y+y)
			copy(p.Pix[y*rowLen:(y+1)*rowLen], simg.Pix[src:src+rowLen])
		}
		return p, nil
	}

	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			c, ok := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if !ok {
				return nil, UnknownColourModelError{}
			}
			i := p.PixOffset(x, y)
			p.Pix[i] = c.R
			p.Pix[i+1] = c.G
			p.Pix[i+2] = c.B
			p.Pix[i+3] = c.A
		}
	}
	return p, nil
}
