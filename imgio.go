package steg

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Cover images may arrive in any of these; lossy ones are fine as a source.
	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Encoding is a lossless image encoding the stego image can be written in.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingPNG
	EncodingBMP
	EncodingTIFF
)

// String returns the name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingPNG:
		return "png"
	case EncodingBMP:
		return "bmp"
	case EncodingTIFF:
		return "tiff"
	default:
		return "<unknown>"
	}
}

// Ext returns the file extension for the encoding, dot included.
func (e Encoding) Ext() string {
	switch e {
	case EncodingTIFF:
		return ".tiff"
	case EncodingUnknown:
		return ""
	default:
		return "." + e.String()
	}
}

// MIMEType returns the media type of the encoding.
func (e Encoding) MIMEType() string {
	switch e {
	case EncodingPNG:
		return "image/png"
	case EncodingBMP:
		return "image/bmp"
	case EncodingTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

// ParseEncoding parses an encoding name or extension. Lossy encodings are refused,
// since they would not preserve the hidden bits.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "png":
		return EncodingPNG, nil
	case "bmp":
		return EncodingBMP, nil
	case "tif", "tiff":
		return EncodingTIFF, nil
	case "jpg", "jpeg", "gif", "webp":
		return EncodingUnknown, &InvalidFormatError{fmt.Sprintf("'%v' cannot carry a hidden message: use png, bmp or tiff.", s)}
	default:
		return EncodingUnknown, &InvalidFormatError{fmt.Sprintf("Unsupported output encoding '%v': use png, bmp or tiff.", s)}
	}
}

// EncodingFromPath infers the output encoding from the extension of path.
func EncodingFromPath(path string) (Encoding, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return EncodingUnknown, &InvalidFormatError{fmt.Sprintf("Cannot infer an image encoding for '%v': it has no extension.", path)}
	}
	return ParseEncoding(ext)
}

// ReadPixels decodes an image from r. It returns the decoded buffer and the
// name of the format it was read as.
func ReadPixels(r io.Reader) (*Pixels, string, error) {
	img, kind, err := image.Decode(r)
	if err != nil {
		return nil, "", &SourceUnavailableError{Err: err}
	}
	pixels, err := FromImage(img)
	if err != nil {
		return nil, kind, &SourceUnavailableError{Err: err}
	}
	return pixels, kind, nil
}

// LoadPixels opens and decodes the image at path.
func LoadPixels(path string) (*Pixels, string, error) {
	return loadImage(path, OutputNone)
}

// WritePixels encodes p to w using enc. BMP has no alpha channel, so a buffer
// with any translucent pixel is refused for it.
func WritePixels(w io.Writer, p *Pixels, enc Encoding) error {
	if err := checkEncodable(p, enc); err != nil {
		return err
	}
	img := p.Image()
	switch enc {
	case EncodingPNG:
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		return encoder.Encode(w, img)
	case EncodingBMP:
		return bmp.Encode(w, img)
	case EncodingTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return &InvalidFormatError{fmt.Sprintf("Unsupported output encoding %v.", enc)}
	}
}

// Primary methods

func loadImage(imgPath string, outputLevel OutputLevel) (pixels *Pixels, kind string, err error) {
	imgFile, err := os.Open(imgPath)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, "Unable to open the image!", err.Error())
		return nil, "", &SourceUnavailableError{Source: imgPath, Err: err}
	}

	defer func() {
		if cerr := imgFile.Close(); cerr != nil {
			printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Error closing the file '%v': %v", imgPath, cerr.Error()))
		}
	}()

	pixels, kind, err = ReadPixels(imgFile)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, "The image couldn't be decoded:", err.Error())
		if se, ok := err.(*SourceUnavailableError); ok {
			se.Source = imgPath
		}
		return nil, "", err
	}

	return pixels, kind, nil
}

func checkEncodable(p *Pixels, enc Encoding) error {
	if enc == EncodingBMP && !p.Image().Opaque() {
		return &InvalidFormatError{"The image has translucent pixels, which BMP cannot store. Use png or tiff instead."}
	}
	return nil
}

func writeImage(pixels *Pixels, enc Encoding, outPath string, outputLevel OutputLevel) (err error) {
	if err = checkEncodable(pixels, enc); err != nil {
		printlnLvl(outputLevel, OutputSteps, err.Error())
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("There was an error creating the file '%v'.", outPath))
		return err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Error closing the file '%v': %v", outPath, cerr.Error()))
			if err == nil {
				err = cerr
			}
		}
	}()

	if err = WritePixels(f, pixels, enc); err != nil {
		printlnLvl(outputLevel, OutputSteps, "There was an error encoding the image to the new file.")
		return err
	}

	return nil
}
