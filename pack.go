package steg

import (
	"fmt"

	"github.com/zedseven/binmani"
)

// latin1 maps every rune of text to one byte. Runes above 255 have no 8-bit form.
func latin1(text string) ([]byte, error) {
	b := make([]byte, 0, len(text))
	for i, r := range text {
		if r < 0 || r > 0xff {
			return nil, &InvalidFormatError{fmt.Sprintf("The character %q at byte %d does not fit in %d bits.", r, i, BitsPerChar)}
		}
		b = append(b, byte(r))
	}
	return b, nil
}

// ToBits renders every character of text as 8 bits, most-significant bit
// first. No sentinel is added.
func ToBits(text string) ([]uint8, error) {
	b, err := latin1(text)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return []uint8{}, nil
	}
	return *binmani.BytesToBits(&b), nil
}

// PackMessage appends the sentinel of f to message and returns the resulting bitstream.
func PackMessage(message string, f Format) ([]uint8, error) {
	return ToBits(message + string(rune(f.Sentinel)))
}
