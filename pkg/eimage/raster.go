package eimage

import(
	"fmt"

	"github.com/abworrall/ssimulacra/pkg/emath"
)

// A Raster is a decoded image: 8 bits per sample, interleaved, row
// major. Channels is 1 (gray), 3 (RGB) or 4 (RGBA).
type Raster struct {
	Width, Height int
	Channels      int
	Pix         []uint8
}

func NewRaster(w, h, channels int) *Raster {
	return &Raster{
		Width:    w,
		Height:   h,
		Channels: channels,
		Pix:      make([]uint8, w*h*channels),
	}
}

func (r *Raster)String() string {
	return fmt.Sprintf("raster[%dx%d, %d channels]", r.Width, r.Height, r.Channels)
}

func (r *Raster)offset(x, y int) int            { return (y*r.Width + x) * r.Channels }
func (r *Raster)At(x, y, c int) uint8           { return r.Pix[r.offset(x,y) + c] }
func (r *Raster)Set(x, y, c int, v uint8)       { r.Pix[r.offset(x,y) + c] = v }
func (r *Raster)NumPixels() int                 { return r.Width * r.Height }

// WithOpaqueAlpha turns an RGB raster into an RGBA one, with every
// pixel fully opaque.
func (r *Raster)WithOpaqueAlpha() *Raster {
	r2 := NewRaster(r.Width, r.Height, 4)
	for i:=0; i<r.NumPixels(); i++ {
		copy(r2.Pix[i*4:i*4+3], r.Pix[i*3:i*3+3])
		r2.Pix[i*4+3] = 0xFF
	}
	return r2
}

// An Image is a normalized, floating point image - one grid per
// channel, all the same size.
type Image struct {
	Channels []emath.FloatGrid
}

func NewImage(w, h, channels int) Image {
	im := Image{Channels: make([]emath.FloatGrid, channels)}
	for i := range im.Channels {
		im.Channels[i] = emath.NewFloatGrid(w, h)
	}
	return im
}

func (im Image)NumChannels() int { return len(im.Channels) }
func (im Image)Dx() int          { return im.Channels[0].Dx() }
func (im Image)Dy() int          { return im.Channels[0].Dy() }

// DownSample returns a new image, half the size in each dimension.
func (im Image)DownSample() Image {
	im2 := Image{Channels: make([]emath.FloatGrid, len(im.Channels))}
	for i := range im.Channels {
		im2.Channels[i] = im.Channels[i].DownSample()
	}
	return im2
}
