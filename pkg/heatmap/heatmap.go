// Package heatmap renders the per-channel SSIM and edge-diff maps from a
// comparison as images. The color coding makes the channels visible at
// a glance: in the SSIM image, bright means worse.
package heatmap

import(
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/abworrall/ssimulacra/pkg/emath"
)

const(
	ssimGain     = 255.0
	edgeDiffGain = 5000.0 // edge differences are small; exaggerate them
)

// saturate scales v into a byte, rounding half to even and clamping.
func saturate(v, gain float64) uint8 {
	v = math.RoundToEven(v * gain)
	if v < 0   { return 0 }
	if v > 255 { return 255 }
	return uint8(v)
}

func checkMaps(maps []emath.FloatGrid) error {
	if len(maps) < 3 {
		return fmt.Errorf("heatmap: need L,a,b maps, got %d channels", len(maps))
	}
	for i := range maps[1:3] {
		if maps[i+1].Dx() != maps[0].Dx() || maps[i+1].Dy() != maps[0].Dy() {
			return fmt.Errorf("heatmap: channel %d is %dx%d, channel 0 is %dx%d", i+1,
				maps[i+1].Dx(), maps[i+1].Dy(), maps[0].Dx(), maps[0].Dy())
		}
	}
	return nil
}

// SSIMImage renders SSIM maps: red is the inverted a similarity, green
// the inverted L, blue the inverted b. Any alpha map is not shown.
func SSIMImage(maps []emath.FloatGrid) (image.Image, error) {
	if err := checkMaps(maps); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, maps[0].Dx(), maps[0].Dy()))
	for y:=0; y<maps[0].Dy(); y++ {
		for x:=0; x<maps[0].Dx(); x++ {
			L := saturate(maps[0].Get(x,y), ssimGain)
			a := saturate(maps[1].Get(x,y), ssimGain)
			b := saturate(maps[2].Get(x,y), ssimGain)
			img.SetNRGBA(x, y, color.NRGBA{255-a, 255-L, 255-b, 0xFF})
		}
	}
	return img, nil
}

// EdgeDiffImage renders edge-diff maps: L as gray in red and green,
// with the sum of a and b in blue (which will wrap when both are large).
func EdgeDiffImage(maps []emath.FloatGrid) (image.Image, error) {
	if err := checkMaps(maps); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, maps[0].Dx(), maps[0].Dy()))
	for y:=0; y<maps[0].Dy(); y++ {
		for x:=0; x<maps[0].Dx(); x++ {
			L := saturate(maps[0].Get(x,y), edgeDiffGain)
			a := saturate(maps[1].Get(x,y), edgeDiffGain)
			b := saturate(maps[2].Get(x,y), edgeDiffGain)
			img.SetNRGBA(x, y, color.NRGBA{L, L, a+b, 0xFF})
		}
	}
	return img, nil
}

// WriteSSIM writes <prefix>.ssim.png
func WriteSSIM(prefix string, maps []emath.FloatGrid) error {
	img, err := SSIMImage(maps)
	if err != nil {
		return err
	}
	return WritePNG(img, prefix + ".ssim.png")
}

// WriteEdgeDiff writes <prefix>.edgediff.png
func WriteEdgeDiff(prefix string, maps []emath.FloatGrid) error {
	img, err := EdgeDiffImage(maps)
	if err != nil {
		return err
	}
	return WritePNG(img, prefix + ".edgediff.png")
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}
