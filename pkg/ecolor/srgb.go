package ecolor

import "github.com/abworrall/ssimulacra/pkg/emath"

// The gray that semi-transparent pixels are blended against.
const BackgroundGray = 128

// SRGBToLinear maps an 8-bit gamma-encoded sRGB sample to linear light in [0,1].
var SRGBToLinear = func() [256]float64 {
	var lut [256]float64
	for i := range lut {
		lut[i] = emath.Linearize_F64(float64(i) / 255.0)
	}
	return lut
}()

// CompositeOverGray blends an 8-bit color sample over the neutral gray
// background, using integer arithmetic (truncating).
func CompositeOverGray(c, alpha uint8) uint8 {
	a := uint32(alpha)
	return uint8((a*uint32(c) + (255-a)*BackgroundGray) / 255)
}
