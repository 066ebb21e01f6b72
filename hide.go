package steg

import (
	"fmt"
	"image"
	"strings"
	"unicode/utf8"

	"github.com/zedseven/binmani"
	"github.com/zedseven/textsteg/internal/algos"
)

// HideConfig stores the configuration options for the Hide operation.
type HideConfig struct {
	// ImagePath is the path on disk to a supported image.
	ImagePath string
	// Message is the text to hide.
	Message string
	// OutPath is the path on disk to write the output image.
	OutPath string
	// Encoding is the lossless encoding of the output. If unset, it is inferred from OutPath.
	Encoding Encoding
	// Format is the on-image format. The zero value means DefaultFormat.
	Format Format
}

// Primary method

// Hide loads the image at config.ImagePath, embeds config.Message and writes
// the result to config.OutPath. The source image is left untouched.
func Hide(config *HideConfig, outputLevel OutputLevel) error {
	// Input validation
	if len(config.ImagePath) <= 0 {
		return &InvalidFormatError{"ImagePath is empty."}
	}
	if len(config.OutPath) <= 0 {
		return &InvalidFormatError{"OutPath is empty."}
	}
	format := config.Format
	if format == (Format{}) {
		format = DefaultFormat
	}
	if err := format.Validate(); err != nil {
		return err
	}
	enc := config.Encoding
	if enc == EncodingUnknown {
		var err error
		if enc, err = EncodingFromPath(config.OutPath); err != nil {
			return err
		}
	}

	printlnLvl(outputLevel, OutputDebug, "This tool has been set to display debug output.")

	printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Loading the image from '%v'...", config.ImagePath))
	pixels, kind, err := loadImage(config.ImagePath, outputLevel)
	if err != nil {
		return err
	}

	printlnLvl(outputLevel, OutputInfo,
		fmt.Sprintf("Image info:\n\tDimensions: %dx%d px\n\tSource format: %v\n\tPixel digest: %v",
			pixels.W, pixels.H, kind, pixels.DigestString()))
	printlnLvl(outputLevel, OutputInfo, "Stego format:", format)
	printlnLvl(outputLevel, OutputInfo, "Maximum writable bits:", Capacity(pixels.W, pixels.H, format))

	printlnLvl(outputLevel, OutputSteps, "Encoding the message into the image...")
	encoded, err := hidePixels(pixels, config.Message, format, outputLevel)
	if err != nil {
		return err
	}

	printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Writing the encoded image to '%v' now...", config.OutPath))
	if err = writeImage(encoded, enc, config.OutPath, outputLevel); err != nil {
		printlnLvl(outputLevel, OutputSteps, "An error occurred while writing to the final image.")
		return err
	}

	printlnLvl(outputLevel, OutputInfo, "Encoded pixel digest:", encoded.DigestString())
	printlnLvl(outputLevel, OutputSteps, "All done! c:")

	return nil
}

// HideImage embeds message in a copy of img and returns it.
func HideImage(img image.Image, message string, f Format) (*image.NRGBA, error) {
	pixels, err := FromImage(img)
	if err != nil {
		return nil, err
	}
	encoded, err := HidePixels(pixels, message, f)
	if err != nil {
		return nil, err
	}
	return encoded.Image(), nil
}

// HidePixels checks capacity, packs message with its sentinel and embeds it in
// a copy of p. Nothing is embedded unless the whole message fits.
func HidePixels(p *Pixels, message string, f Format) (*Pixels, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return hidePixels(p, message, f, OutputNone)
}

// Embed writes bits into the least-significant bit of each embedding channel
// of a copy of p, in the scan order of f. p is not modified. Once bits runs
// out, the remaining channels are left as they were; bits that do not fit
// are dropped. It returns the new buffer and the number of bits written.
// An invalid f writes nothing.
func Embed(p *Pixels, bits []uint8, f Format) (*Pixels, int) {
	out := p.Clone()
	if f.Validate() != nil {
		return out, 0
	}
	pos, err := algos.AlgoAddressor(f.Algorithm, int64(p.W), int64(p.H), f.ChannelsPerPixel)
	if err != nil {
		return out, 0
	}

	n := 0
	for ; n < len(bits); n++ {
		addr, err := pos()
		if err != nil {
			break
		}
		pix, c := addrToPC(addr, f.ChannelsPerPixel)
		i := pix*rgbaChannels + int64(c)
		out.Pix[i] = uint8(binmani.WriteTo(uint16(out.Pix[i]), 0, 1, uint16(bits[n]&1)))
	}
	return out, n
}

// Helper functions

func checkMessage(message string, f Format) error {
	if len(message) <= 0 {
		return &InvalidFormatError{"Message is empty."}
	}
	if !utf8.ValidString(message) {
		return &InvalidFormatError{"Message is not valid UTF-8."}
	}
	if i := strings.IndexRune(message, rune(f.Sentinel)); i >= 0 {
		return &InvalidFormatError{fmt.Sprintf("Message contains the sentinel %q at byte %d, which would end extraction early.", rune(f.Sentinel), i)}
	}
	return nil
}

// hidePixels gates, packs and embeds. It refuses rather than truncates.
func hidePixels(pixels *Pixels, message string, f Format, outputLevel OutputLevel) (*Pixels, error) {
	if err := checkMessage(message, f); err != nil {
		return nil, err
	}

	available := Capacity(pixels.W, pixels.H, f)
	required := RequiredBits(utf8.RuneCountInString(message))
	if !CanEncode(message, pixels.W, pixels.H, f) {
		return nil, &InsufficientCapacityError{Required: required, Available: available}
	}

	bits, err := PackMessage(message, f)
	if err != nil {
		return nil, err
	}
	printlnLvl(outputLevel, OutputInfo, "Message bits to write (including sentinel):", len(bits))

	encoded, n := Embed(pixels, bits, f)
	if n < len(bits) {
		return nil, &InsufficientCapacityError{Required: required, Available: available,
			AdditionalInfo: fmt.Sprintf("The %v capacity estimate admitted the message, but only %d of %d bits fit.", f.Capacity, n, len(bits))}
	}

	if outputLevel >= OutputDebug {
		debugDiff(pixels, encoded, outputLevel)
	}
	return encoded, nil
}

func debugDiff(before, after *Pixels, outputLevel OutputLevel) {
	for i := 0; i < len(before.Pix); i += rgbaChannels {
		if string(before.Pix[i:i+rgbaChannels]) == string(after.Pix[i:i+rgbaChannels]) {
			continue
		}
		x, y := posToXY(int64(i/rgbaChannels), before.W)
		printfLvl(outputLevel, OutputDebug, "pixel (%d, %d): %v -> %v\n", x, y,
			before.Pix[i:i+rgbaChannels], after.Pix[i:i+rgbaChannels])
	}
}
