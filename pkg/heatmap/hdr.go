package heatmap

import(
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/mdouchement/hdr/tmo"

	"github.com/abworrall/ssimulacra/pkg/emath"
)

var(
	Tonemappers = []string{"drago03", "durand", "linear", "reinhard05"}
)

// FloatImage presents channel maps, unscaled, as an HDR image: channels
// 0,1,2 become R,G,B. A single map is shown as gray.
type FloatImage []emath.FloatGrid

// Implement image.Image
func (fi FloatImage)ColorModel() color.Model       { return hdrcolor.RGBModel }
func (fi FloatImage)Bounds() image.Rectangle       { return image.Rect(0, 0, fi[0].Dx(), fi[0].Dy()) }
func (fi FloatImage)At(x, y int) color.Color       { return fi.HDRAt(x,y) }

// Implement hdr.Image
func (fi FloatImage)HDRAt(x, y int) hdrcolor.Color { return hdrcolor.RGB{R: fi.val(0,x,y), G: fi.val(1,x,y), B: fi.val(2,x,y)} }
func (fi FloatImage)Size() int                     { return fi.Bounds().Dx() * fi.Bounds().Dy() }

func (fi FloatImage)val(c, x, y int) float64 {
	if c >= len(fi) {
		c = len(fi)-1
	}
	return fi[c].Get(x,y)
}

var _ hdr.Image = FloatImage{}

// WriteHDR writes the maps as a Radiance RGBE file, so the raw values
// can be inspected in HDR tools.
func WriteHDR(filename string, maps []emath.FloatGrid) error {
	if len(maps) == 0 {
		return fmt.Errorf("WriteHDR '%s': no maps", filename)
	}

	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, FloatImage(maps))
		if err != nil {
			log.Printf("WriteHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}

func ListTonemappers() string {
	return fmt.Sprintf("%v", Tonemappers)
}

// Tonemap develops the maps into a viewable image with one of the
// hdr/tmo operators; unlike the fixed gains of the PNG heatmaps, this
// adapts to the range of values present.
func Tonemap(maps []emath.FloatGrid, name string) (image.Image, error) {
	if len(maps) == 0 {
		return nil, fmt.Errorf("Tonemap: no maps")
	}
	fi := FloatImage(maps)

	var op tmo.ToneMappingOperator
	switch name {
	case "drago03":
		op = tmo.NewDefaultDrago03(fi)
	case "durand":
		op = tmo.NewDefaultDurand(fi)
	case "linear":
		op = tmo.NewLinear(fi)
	case "reinhard05":
		op = tmo.NewDefaultReinhard05(fi)
	default:
		return nil, fmt.Errorf("Tonemapper %q not recognized, wanted %s", name, ListTonemappers())
	}

	return op.Perform(), nil
}

// WriteTonemapped writes a tonemapped rendering of the maps as a PNG.
func WriteTonemapped(filename string, maps []emath.FloatGrid, name string) error {
	img, err := Tonemap(maps, name)
	if err != nil {
		return err
	}
	return WritePNG(img, filename)
}
