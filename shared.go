package steg

import (
	"fmt"
)

const (
	// BitsPerChar is the width of one message character in the bitstream.
	BitsPerChar  uint8 = 8
	rgbaChannels       = 4
	alphaChannel       = 3
	VersionMax   uint8 = 1
	VersionMid   uint8 = 0
	VersionMin   uint8 = 0
)

// Error types

// UnknownColourModelError is thrown when a decoded image cannot be brought into 8-bit RGBA.
type UnknownColourModelError struct{}

func (e UnknownColourModelError) Error() string {
	return "The colour model of the provided Image is unknown."
}

// InvalidFormatError is thrown for bad configuration values, messages or output encodings.
type InvalidFormatError struct {
	ErrorDesc string
}

func (e InvalidFormatError) Error() string {
	if len(e.ErrorDesc) > 0 {
		return e.ErrorDesc
	}
	return "The provided data is of an invalid format."
}

// InsufficientCapacityError is thrown when the message does not fit in the image.
// It is always raised before the image has been modified.
type InsufficientCapacityError struct {
	Required       int64 // Bits needed, sentinel included.
	Available      int64 // Bits the image can hold.
	AdditionalInfo string
}

func (e *InsufficientCapacityError) Error() string {
	ret := "not enough space to embed in this image."
	if e.Required > 0 || e.Available > 0 {
		ret = fmt.Sprintf("%v (%d bits required, %d available)", ret, e.Required, e.Available)
	}
	if len(e.AdditionalInfo) > 0 {
		return fmt.Sprintf("%v Additional info: %v", ret, e.AdditionalInfo)
	}
	return ret
}

// SourceUnavailableError is thrown when the input image cannot be opened or decoded.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	if len(e.Source) > 0 {
		return fmt.Sprintf("unable to load the image from '%v': %v", e.Source, e.Err)
	}
	return fmt.Sprintf("unable to load the image: %v", e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// Library methods

// Version returns the version of the library.
func Version() string {
	return fmt.Sprintf("%02d.%02d.%02d", VersionMax, VersionMid, VersionMin)
}

// Shared methods

// PC = Pixel, Channel
func addrToPC(addr int64, channels uint8) (pix int64, channel uint8) {
	// Would normally floor here, but since all values are >= 0, integer division handles this for us
	pix = addr / int64(channels)
	channel = uint8(addr % int64(channels))
	return
}

func posToXY(pos int64, w int) (x, y int) {
	x = int(pos % int64(w))
	y = int(pos / int64(w))
	return
}
