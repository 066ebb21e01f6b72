package steg

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zedseven/textsteg/internal/algos"
)

func hideString(t *testing.T, cover *Pixels, message string, f Format) *Pixels {
	t.Helper()
	require.True(t, CanEncode(message, cover.W, cover.H, f))
	bits, err := PackMessage(message, f)
	require.NoError(t, err)
	encoded, n := Embed(cover, bits, f)
	require.Equal(t, len(bits), n)
	return encoded
}

func TestExtract_RoundTrip(t *testing.T) {
	messages := []string{
		"A",
		"hello, world",
		"Ünïcödé within Latin-1: ÿ",
		"line one\nline two\ttabbed",
		strings.Repeat("long message ", 20),
	}
	rowMajor := DefaultFormat
	rowMajor.Algorithm = algos.AlgoRowMajor
	oneChannel := DefaultFormat
	oneChannel.ChannelsPerPixel = 1
	hashSentinel := DefaultFormat
	hashSentinel.Sentinel = '#'

	for _, f := range []Format{DefaultFormat, rowMajor, oneChannel, hashSentinel} {
		for i, msg := range messages {
			cover := noisyPixels(t, 64, 48, int64(i))
			got, found := Extract(hideString(t, cover, msg, f), f)
			assert.True(t, found, "format %v", f)
			assert.Equal(t, msg, got, "format %v", f)
		}
	}
}

func TestExtract_ExactFit(t *testing.T) {
	// 8x1 holds exactly 24 bits: two characters and the sentinel.
	cover := noisyPixels(t, 8, 1, 9)
	got, found := Extract(hideString(t, cover, "ok", DefaultFormat), DefaultFormat)
	assert.True(t, found)
	assert.Equal(t, "ok", got)
}

func TestExtract_NoHiddenMessage(t *testing.T) {
	// A blank image decodes to NUL characters all the way to the end.
	blank := NewPixels(4, 4)
	got, found := Extract(blank, DefaultFormat)
	assert.False(t, found)
	assert.Equal(t, strings.Repeat("\x00", 48/8), got)
}

func TestExtract_PartialCharacterAtEnd(t *testing.T) {
	// 3x1 holds 9 bits: one full character and one stray bit.
	blank := NewPixels(3, 1)
	got, found := Extract(blank, DefaultFormat)
	assert.False(t, found)
	assert.Equal(t, "\x00", got)
}

func TestExtract_Idempotent(t *testing.T) {
	cover := noisyPixels(t, 20, 20, 5)
	encoded := hideString(t, cover, "twice", DefaultFormat)
	before := encoded.Clone()

	a, foundA := Extract(encoded, DefaultFormat)
	b, foundB := Extract(encoded, DefaultFormat)
	assert.Equal(t, a, b)
	assert.Equal(t, foundA, foundB)
	assert.Equal(t, before.Pix, encoded.Pix)
}

func TestExtract_ScanOrderMustMatch(t *testing.T) {
	cover := NewPixels(16, 16)
	encoded := hideString(t, cover, "column major", DefaultFormat)

	rowMajor := DefaultFormat
	rowMajor.Algorithm = algos.AlgoRowMajor
	got, _ := Extract(encoded, rowMajor)
	assert.NotEqual(t, "column major", got)
}

func TestExtract_StopsAtFirstSentinel(t *testing.T) {
	// Embedding a raw bitstream that contains the sentinel mid-way shows the format limitation.
	bits, err := ToBits("ab%cd%")
	require.NoError(t, err)
	encoded, _ := Embed(NewPixels(10, 10), bits, DefaultFormat)

	got, found := Extract(encoded, DefaultFormat)
	assert.True(t, found)
	assert.Equal(t, "ab", got)
}

func TestExtract_InvalidFormatFindsNothing(t *testing.T) {
	encoded := hideString(t, NewPixels(8, 8), "hi", DefaultFormat)

	for _, channels := range []uint8{0, 4, 5} {
		f := DefaultFormat
		f.ChannelsPerPixel = channels
		var got string
		var found bool
		require.NotPanics(t, func() { got, found = Extract(encoded, f) })
		assert.False(t, found, "channels=%d", channels)
		assert.Empty(t, got, "channels=%d", channels)
	}
}

func TestDigImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	out, err := HideImage(img, "in memory", DefaultFormat)
	require.NoError(t, err)

	msg, found, err := DigImage(out, DefaultFormat)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "in memory", msg)

	_, _, err = DigImage(out, Format{})
	var invalid *InvalidFormatError
	require.ErrorAs(t, err, &invalid)
}
