// Package image encodes mask images in the output formats pagemask supports.
package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

type encoder func(w io.Writer, img image.Image) error

var encoders = map[string]encoder{
	"png":  encodePNG,
	"jpg":  encodeJPEG,
	"jpeg": encodeJPEG,
	"gif":  encodeGIF,
	"tif":  encodeTIFF,
	"tiff": encodeTIFF,
	"bmp":  encodeBMP,
	"dib":  encodeBMP,
}

// Formats returns the supported format names.
func Formats() []string {
	return []string{"png", "jpg", "jpeg", "gif", "tif", "tiff", "bmp", "dib"}
}

// Supported reports whether format can be encoded.
func Supported(format string) bool {
	_, ok := encoders[normalize(format)]
	return ok
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

// Encode writes img to w in the given format ("png", "tif", ...).
func Encode(w io.Writer, img image.Image, format string) error {
	enc, ok := encoders[normalize(format)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return enc(w, img)
}

// Save writes img to path, choosing the format from the file extension.
func Save(path string, img image.Image) error {
	format := filepath.Ext(path)
	if !Supported(format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func encodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

func encodeJPEG(w io.Writer, img image.Image) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("image: encode JPEG: %w", err)
	}
	return nil
}

func encodeTIFF(w io.Writer, img image.Image) error {
	if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
		return fmt.Errorf("image: encode TIFF: %w", err)
	}
	return nil
}

func encodeBMP(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode BMP: %w", err)
	}
	return nil
}

// encodeGIF writes img with an exact palette so mask colors survive.
// Images with more than 256 colors fall back to Plan 9 without dithering.
func encodeGIF(w io.Writer, img image.Image) error {
	if err := gif.Encode(w, ToPaletted(img), nil); err != nil {
		return fmt.Errorf("image: encode GIF: %w", err)
	}
	return nil
}

// ToPaletted converts img to a paletted image holding exactly its colors.
func ToPaletted(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	index := make(map[color.RGBA]uint8)
	var pal color.Palette

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, ok := index[c]; ok {
				continue
			}
			if len(pal) == 256 {
				out := image.NewPaletted(bounds, palette.Plan9)
				draw.Draw(out, bounds, img, bounds.Min, draw.Src)
				return out
			}
			index[c] = uint8(len(pal))
			pal = append(pal, c)
		}
	}

	out := image.NewPaletted(bounds, pal)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			out.SetColorIndex(x, y, index[c])
		}
	}
	return out
}
