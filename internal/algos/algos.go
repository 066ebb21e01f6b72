// Package algos provides the scan orders used to walk the embedding channels of an image.
// Every order hands out channel addresses of the form pixelIndex*channels + channel,
// where pixelIndex = y*width + x.
package algos

import (
	"fmt"
	"strings"
)

// Algorithm definitions

// Algo defines a supported scan order.
type Algo int

// IsValid simply determines whether a given scan order is valid.
func (algo Algo) IsValid() bool {
	return algo > AlgoUnknown && algo <= maxAlgoVal
}

// String returns the name of the scan order, or "<unknown>" if unknown.
func (algo Algo) String() string {
	switch algo {
	case AlgoColumnMajor:
		return "column"
	case AlgoRowMajor:
		return "row"
	default:
		return "<unknown>"
	}
}

const (
	AlgoUnknown     Algo = iota     // An unknown scan order.
	AlgoColumnMajor Algo = iota     // x outer, y inner. This is the order of the on-image format.
	AlgoRowMajor    Algo = iota     // y outer, x inner. Only readable by a decoder configured the same way.
	maxAlgoVal      Algo = iota - 1 // The maximum algorithm value, used for validity checking.
)

// Error types

// UnknownAlgoError is thrown when an unknown scan order is provided.
type UnknownAlgoError struct {
	Algorithm Algo
}

func (e UnknownAlgoError) Error() string {
	return fmt.Sprintf("The specified scan order (%d) does not exist.", e.Algorithm)
}

// EmptyPoolError is thrown when an addressor is called but it has no addresses left to hand out.
type EmptyPoolError struct{}

func (e EmptyPoolError) Error() string {
	return "The pool of channel addresses is empty."
}

// Algorithm closures

// ColumnMajorAddressor walks the image one column at a time, visiting every channel of a pixel before moving down.
func ColumnMajorAddressor(w, h int64, channels uint8) func() (int64, error) {
	x, y, c := int64(0), int64(0), uint8(0)
	return func() (int64, error) {
		if x >= w || h <= 0 || channels == 0 {
			return -1, &EmptyPoolError{}
		}
		addr := (y*w+x)*int64(channels) + int64(c)

		c++
		if c >= channels {
			c = 0
			y++
			if y >= h {
				y = 0
				x++
			}
		}
		return addr, nil
	}
}

// RowMajorAddressor walks the image in conventional raster order.
func RowMajorAddressor(w, h int64, channels uint8) func() (int64, error) {
	pos := int64(-1)
	posMax := w * h * int64(channels)
	return func() (int64, error) {
		pos++
		if pos >= posMax {
			return -1, &EmptyPoolError{}
		}
		return pos, nil
	}
}

// Algorithm type interfacing methods

// AlgoAddressor returns the addressor for a scan order chosen at runtime.
func AlgoAddressor(algo Algo, w, h int64, channels uint8) (func() (int64, error), error) {
	switch algo {
	case AlgoColumnMajor:
		return ColumnMajorAddressor(w, h, channels), nil
	case AlgoRowMajor:
		return RowMajorAddressor(w, h, channels), nil
	default:
		return nil, &UnknownAlgoError{algo}
	}
}

// StringToAlgo simply parses a string into a scan order, or AlgoUnknown if the string is not recognized.
func StringToAlgo(str string) Algo {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "column", "column-major", "columnmajor":
		return AlgoColumnMajor
	case "row", "row-major", "rowmajor":
		return AlgoRowMajor
	default:
		return AlgoUnknown
	}
}
