package steg

import (
	"fmt"
	"image"
	"strings"

	"github.com/zedseven/binmani"
	"github.com/zedseven/textsteg/internal/algos"
)

// Types

// DigConfig stores the configuration options for the Dig operation.
type DigConfig struct {
	ImagePath string // The path on disk to a supported image.
	Format    Format // The on-image format; must match the one used in hiding. The zero value means DefaultFormat.
}

// DigResult is what the Dig operation recovered from an image.
type DigResult struct {
	// Message holds the decoded characters, without the sentinel.
	Message string
	// Found is false when no sentinel was met before the image ran out. Message
	// is then whatever the channels happened to decode to, not a hidden message.
	Found bool
	W, H  int
}

// Primary method

// Dig extracts the message hidden in the image at config.ImagePath.
// The configuration must perfectly match the one used in hiding in order to extract successfully.
func Dig(config DigConfig, outputLevel OutputLevel) (*DigResult, error) {
	// Input validation
	if len(config.ImagePath) <= 0 {
		return nil, &InvalidFormatError{"ImagePath is empty."}
	}
	format := config.Format
	if format == (Format{}) {
		format = DefaultFormat
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	printlnLvl(outputLevel, OutputDebug, "This tool has been set to display debug output.")

	printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Loading the image from '%v'...", config.ImagePath))
	pixels, kind, err := loadImage(config.ImagePath, outputLevel)
	if err != nil {
		return nil, err
	}

	printlnLvl(outputLevel, OutputInfo,
		fmt.Sprintf("Image info:\n\tDimensions: %dx%d px\n\tSource format: %v\n\tPixel digest: %v",
			pixels.W, pixels.H, kind, pixels.DigestString()))
	printlnLvl(outputLevel, OutputInfo, "Stego format:", format)
	printlnLvl(outputLevel, OutputInfo, "Maximum readable bits:", Capacity(pixels.W, pixels.H, format))

	printlnLvl(outputLevel, OutputSteps, "Reading the message from the image...")
	message, found := Extract(pixels, format)

	if found {
		printlnLvl(outputLevel, OutputInfo, fmt.Sprintf("Found a sentinel after %d characters.", len([]rune(message))))
	} else {
		printlnLvl(outputLevel, OutputSteps, "Reached the end of the image without finding a sentinel.")
	}
	printlnLvl(outputLevel, OutputDebug, "Read message:", message)

	printlnLvl(outputLevel, OutputSteps, "All done! c:")

	return &DigResult{Message: message, Found: found, W: pixels.W, H: pixels.H}, nil
}

// DigImage extracts the message hidden in img.
func DigImage(img image.Image, f Format) (string, bool, error) {
	if err := f.Validate(); err != nil {
		return "", false, err
	}
	pixels, err := FromImage(img)
	if err != nil {
		return "", false, err
	}
	message, found := Extract(pixels, f)
	return message, found, nil
}

// Extract reads the least-significant bit of each embedding channel in the
// scan order of f, assembling characters 8 bits at a time, most-significant
// bit first. It stops at the first sentinel and returns the characters before
// it with found set. If the image runs out first, found is false and the
// characters decoded so far are returned; the caller must treat that as "no
// hidden message". p is not modified, and an invalid f finds nothing.
func Extract(p *Pixels, f Format) (message string, found bool) {
	if f.Validate() != nil {
		return "", false
	}
	pos, err := algos.AlgoAddressor(f.Algorithm, int64(p.W), int64(p.H), f.ChannelsPerPixel)
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	var char uint16
	j := uint8(0)
	for {
		addr, err := pos()
		if err != nil {
			return sb.String(), false
		}
		pix, c := addrToPC(addr, f.ChannelsPerPixel)

		readBit := binmani.ReadFrom(uint16(p.Pix[pix*rgbaChannels+int64(c)]), 0, 1)
		char = binmani.WriteTo(char, BitsPerChar-j-1, 1, readBit)
		j++
		if j < BitsPerChar {
			continue
		}

		if byte(char) == f.Sentinel {
			return sb.String(), true
		}
		sb.WriteRune(rune(byte(char)))
		char, j = 0, 0
	}
}
