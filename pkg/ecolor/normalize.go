package ecolor

import(
	"github.com/abworrall/ssimulacra/pkg/eimage"
	"github.com/abworrall/ssimulacra/pkg/emath"
)

// Normalize converts a validated raster into the working color space:
// - RGBA is first blended over a neutral gray background
// - color samples (and alpha) are gamma decoded into linear light
// - RGB is converted to L*a*b*, each channel in [0,1]; alpha is left linear
// - gray is just scaled into [0,1]
func Normalize(r *eimage.Raster) eimage.Image {
	im := eimage.NewImage(r.Width, r.Height, r.Channels)

	for y:=0; y<r.Height; y++ {
		for x:=0; x<r.Width; x++ {
			switch r.Channels {
			case 1:
				im.Channels[0].Set(x, y, float64(r.At(x, y, 0)) / 255.0)

			case 3, 4:
				var samples [4]uint8
				for c:=0; c<r.Channels; c++ {
					samples[c] = r.At(x, y, c)
				}
				if r.Channels == 4 {
					for c:=0; c<3; c++ {
						samples[c] = CompositeOverGray(samples[c], samples[3])
					}
					im.Channels[3].Set(x, y, SRGBToLinear[samples[3]])
				}

				lab := LinearRGBToLab(emath.Vec3{
					SRGBToLinear[samples[0]],
					SRGBToLinear[samples[1]],
					SRGBToLinear[samples[2]],
				})
				for c:=0; c<3; c++ {
					im.Channels[c].Set(x, y, lab[c])
				}
			}
		}
	}

	return im
}
