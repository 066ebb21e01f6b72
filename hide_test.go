package steg

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed_SingleCharScenario(t *testing.T) {
	cover := noisyPixels(t, 3, 3, 1)
	require.True(t, CanEncode("A", 3, 3, DefaultFormat))

	bits, err := PackMessage("A", DefaultFormat)
	require.NoError(t, err)
	require.Equal(t, "0100000100100101", bitString(bits))

	encoded, n := Embed(cover, bits, DefaultFormat)
	require.Equal(t, 16, n)

	order := columnMajorChannels(3, 3)
	require.Len(t, order, 27)
	for k, off := range order {
		if k < 16 {
			assert.Equal(t, bits[k], encoded.Pix[off]&1, "channel %d should carry bit %d", off, k)
			assert.Equal(t, cover.Pix[off]&^1, encoded.Pix[off]&^1, "channel %d changed above the LSB", off)
		} else {
			assert.Equal(t, cover.Pix[off], encoded.Pix[off], "channel %d past the bitstream was modified", off)
		}
	}
}

func TestEmbed_DoesNotMutateInput(t *testing.T) {
	cover := noisyPixels(t, 8, 5, 2)
	before := cover.Clone()

	bits, err := PackMessage("hello", DefaultFormat)
	require.NoError(t, err)
	encoded, _ := Embed(cover, bits, DefaultFormat)

	assert.Equal(t, before.Pix, cover.Pix)
	assert.NotSame(t, cover, encoded)
	assert.Equal(t, cover.W, encoded.W)
	assert.Equal(t, cover.H, encoded.H)
}

func TestEmbed_AlphaAndPerturbation(t *testing.T) {
	cover := noisyPixels(t, 17, 11, 3)
	bits, err := PackMessage(strings.Repeat("The quick brown fox. ", 3), DefaultFormat)
	require.NoError(t, err)

	encoded, n := Embed(cover, bits, DefaultFormat)
	require.Equal(t, len(bits), n)

	for i := range cover.Pix {
		if i%rgbaChannels == alphaChannel {
			assert.Equal(t, cover.Pix[i], encoded.Pix[i], "alpha at %d changed", i)
			continue
		}
		diff := int(cover.Pix[i]) - int(encoded.Pix[i])
		assert.LessOrEqual(t, diff*diff, 1, "channel %d moved by %d", i, diff)
	}
}

func TestEmbed_TruncatesWhenOverlong(t *testing.T) {
	cover := noisyPixels(t, 2, 2, 4)
	bits := make([]uint8, 40)
	for i := range bits {
		bits[i] = 1
	}

	encoded, n := Embed(cover, bits, DefaultFormat)
	assert.Equal(t, 12, n)
	for _, off := range columnMajorChannels(2, 2) {
		assert.Equal(t, uint8(1), encoded.Pix[off]&1)
	}
}

func TestEmbed_ChannelsPerPixel(t *testing.T) {
	cover := NewPixels(4, 1)
	f := DefaultFormat
	f.ChannelsPerPixel = 1

	bits := []uint8{1, 1, 1, 1}
	encoded, n := Embed(cover, bits, f)
	require.Equal(t, 4, n)
	for x := 0; x < 4; x++ {
		c := encoded.NRGBAAt(x, 0)
		assert.Equal(t, color.NRGBA{R: 1}, c)
	}
}

func TestEmbed_InvalidFormatWritesNothing(t *testing.T) {
	tests := []struct {
		name     string
		channels uint8
	}{
		{"alpha channel", 4},
		{"past the pixel", 5},
		{"no channels", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cover := noisyPixels(t, 2, 2, 3)
			f := DefaultFormat
			f.ChannelsPerPixel = tt.channels

			var encoded *Pixels
			var n int
			require.NotPanics(t, func() {
				encoded, n = Embed(cover, []uint8{0, 1, 0, 1, 0, 1, 0, 1}, f)
			})
			assert.Equal(t, 0, n)
			assert.Equal(t, cover.Pix, encoded.Pix)
		})
	}
}

func TestHideImage_Errors(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))

	_, err := HideImage(img, "", DefaultFormat)
	var invalid *InvalidFormatError
	require.ErrorAs(t, err, &invalid)

	_, err = HideImage(img, "50% off", DefaultFormat)
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "sentinel")

	_, err = HideImage(img, "way too long for nine pixels", DefaultFormat)
	var insufficient *InsufficientCapacityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(27), insufficient.Available)
	assert.Equal(t, RequiredBits(len("way too long for nine pixels")), insufficient.Required)
	assert.Contains(t, err.Error(), "not enough space to embed in this image.")

	bad := DefaultFormat
	bad.ChannelsPerPixel = 4
	_, err = HideImage(img, "A", bad)
	require.ErrorAs(t, err, &invalid)
}

func TestHideImage_ApproxGateNeverTruncates(t *testing.T) {
	approx := DefaultFormat
	approx.Capacity = CapacityApprox
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))

	// The approximate estimate admits four characters; the image only holds three with the sentinel.
	require.True(t, CanEncode("abcd", 3, 3, approx))
	_, err := HideImage(img, "abcd", approx)
	var insufficient *InsufficientCapacityError
	require.ErrorAs(t, err, &insufficient)
	assert.Contains(t, insufficient.AdditionalInfo, "only 27 of 40 bits fit")
}

func TestHideImage_LeavesSourceImageAlone(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	out, err := HideImage(img, "hi", DefaultFormat)
	require.NoError(t, err)
	for _, v := range img.Pix {
		require.Equal(t, uint8(0xff), v)
	}
	assert.Equal(t, img.Bounds(), out.Bounds())
}
