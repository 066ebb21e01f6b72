package steg

import (
	"unicode/utf8"
)

// Capacity returns the number of message bits an image of w*h pixels can hold
// under f: one bit per embedding channel per pixel.
func Capacity(w, h int, f Format) int64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	return int64(w) * int64(h) * int64(f.ChannelsPerPixel)
}

// RequiredBits returns the exact number of bits needed to embed a message of
// n characters, sentinel included.
func RequiredBits(n int) int64 {
	return (int64(n) + 1) * int64(BitsPerChar)
}

// estimatedBits is the bit count the pre-check compares against capacity.
func estimatedBits(n int, mode CapacityMode) int64 {
	if mode == CapacityApprox {
		return int64(n)*int64(BitsPerChar) - approxCapacitySlack
	}
	return RequiredBits(n)
}

// CanEncode reports whether message can be embedded in a w*h image under f.
// It must be consulted before any embedding; it has no side effects.
func CanEncode(message string, w, h int, f Format) bool {
	n := utf8.RuneCountInString(message)
	return Capacity(w, h, f) >= estimatedBits(n, f.Capacity)
}

// MaxMessageLen returns the longest message, in characters, that fits exactly
// in a w*h image under f.
func MaxMessageLen(w, h int, f Format) int {
	n := Capacity(w, h, f)/int64(BitsPerChar) - 1
	if n < 0 {
		return 0
	}
	return int(n)
}
