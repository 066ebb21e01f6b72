package steg

import (
	"fmt"
	"strings"

	"github.com/zedseven/textsteg/internal/algos"
)

// CapacityMode selects how the capacity pre-check estimates the bits a message needs.
type CapacityMode int

const (
	// CapacityExact requires room for every message bit plus the sentinel: (len+1)*8.
	CapacityExact CapacityMode = iota
	// CapacityApprox reproduces the historical estimate len*8 - 10.
	// It can admit messages that do not fit; HideImage still refuses those.
	CapacityApprox
)

const approxCapacitySlack = int64(BitsPerChar) + 2

// String returns the name of the mode.
func (m CapacityMode) String() string {
	switch m {
	case CapacityExact:
		return "exact"
	case CapacityApprox:
		return "approx"
	default:
		return "<unknown>"
	}
}

// ParseCapacityMode parses "exact" or "approx".
func ParseCapacityMode(s string) (CapacityMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact", "":
		return CapacityExact, nil
	case "approx", "approximate", "legacy":
		return CapacityApprox, nil
	default:
		return CapacityExact, &InvalidFormatError{fmt.Sprintf("Unknown capacity mode '%v'.", s)}
	}
}

// Format holds everything the embedder and the extractor must agree on.
// An image written with one Format can only be read back with the same one.
type Format struct {
	// Algorithm is the scan order pixels are visited in.
	Algorithm algos.Algo
	// ChannelsPerPixel is how many colour channels, starting from R, carry one bit each.
	// Alpha is never used, so the maximum is 3.
	ChannelsPerPixel uint8
	// Sentinel terminates the message in the bitstream.
	Sentinel byte
	// Capacity is the pre-check estimate used by CanEncode.
	Capacity CapacityMode
}

// DefaultFormat is the column-major, RGB, '%'-terminated format.
var DefaultFormat = Format{
	Algorithm:        algos.AlgoColumnMajor,
	ChannelsPerPixel: 3,
	Sentinel:         '%',
	Capacity:         CapacityExact,
}

// Validate reports the first invalid field of f.
func (f Format) Validate() error {
	if !f.Algorithm.IsValid() {
		return &InvalidFormatError{"Algorithm is invalid."}
	}
	if f.ChannelsPerPixel < 1 || f.ChannelsPerPixel > 3 {
		return &InvalidFormatError{fmt.Sprintf("ChannelsPerPixel is outside the allowed range of 1-3: Provided %d.", f.ChannelsPerPixel)}
	}
	if f.Capacity != CapacityExact && f.Capacity != CapacityApprox {
		return &InvalidFormatError{"Capacity mode is invalid."}
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("{%v %d %q %v}", f.Algorithm, f.ChannelsPerPixel, rune(f.Sentinel), f.Capacity)
}
