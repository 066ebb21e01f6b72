package steg

import (
	"math/rand"
	"testing"
)

// noisyPixels returns a w*h buffer filled with reproducible noise, alpha included.
func noisyPixels(t *testing.T, w, h int, seed int64) *Pixels {
	t.Helper()
	p := NewPixels(w, h)
	r := rand.New(rand.NewSource(seed))
	r.Read(p.Pix)
	return p
}

// columnMajorChannels lists the Pix offsets of the R, G and B channels in column-major order.
func columnMajorChannels(w, h int) []int {
	out := make([]int, 0, w*h*3)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			for c := 0; c < 3; c++ {
				out = append(out, (y*w+x)*rgbaChannels+c)
			}
		}
	}
	return out
}
