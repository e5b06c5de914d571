package eimage

import(
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// exifColorSpaceSRGB is the EXIF ColorSpace tag value for sRGB; 0xFFFF means "uncalibrated".
const exifColorSpaceSRGB = 1

// Load decodes an image file into a Raster. Decoding errors wrap ErrDecodeFailure.
func Load(filename string) (*Raster, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: open+r '%s': %v", ErrDecodeFailure, filename, err)
	}
	defer reader.Close()

	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrDecodeFailure, filename, err)
	}

	warnIfNotSRGB(filename)

	r := FromImage(img)
	if r.Width == 0 || r.Height == 0 {
		return nil, fmt.Errorf("%w: '%s' (%s) is empty", ErrDecodeFailure, filename, format)
	}
	return r, nil
}

// Color profiles are ignored, input is always treated as sRGB; if the
// file has EXIF data saying otherwise, say so. Files without EXIF are
// the common case (e.g. PNG) and stay quiet.
func warnIfNotSRGB(filename string) {
	reader, err := os.Open(filename)
	if err != nil {
		return
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return
	}
	tag, err := ex.Get(exif.ColorSpace)
	if err != nil {
		return
	}
	if cs, err := tag.Int(0); err == nil && cs != exifColorSpaceSRGB {
		log.Printf("warning: '%s' has EXIF ColorSpace %d; treating it as sRGB anyway\n", filename, cs)
	}
}

// ChannelsOf guesses how many channels the decoder would report for
// the image: 1 for gray, 4 if there is (or could be) transparency, else 3.
func ChannelsOf(img image.Image) int {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.NRGBA, *image.NRGBA64:
		return 4
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xFFFF {
				return 4
			}
		}
		return 3
	case interface{ Opaque() bool }:
		if !m.Opaque() {
			return 4
		}
	}
	return 3
}

// FromImage converts any image.Image into an 8-bit Raster, with
// non-premultiplied samples in R,G,B(,A) order.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy(), ChannelsOf(img))

	for y:=0; y<r.Height; y++ {
		for x:=0; x<r.Width; x++ {
			c := img.At(b.Min.X + x, b.Min.Y + y)
			if r.Channels == 1 {
				r.Set(x, y, 0, color.GrayModel.Convert(c).(color.Gray).Y)
				continue
			}
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			r.Set(x, y, 0, n.R)
			r.Set(x, y, 1, n.G)
			r.Set(x, y, 2, n.B)
			if r.Channels == 4 {
				r.Set(x, y, 3, n.A)
			}
		}
	}
	return r
}
