package ecolor

import(
	"math"

	"github.com/abworrall/ssimulacra/pkg/emath"
)

// The working color space is CIE L*a*b*, with each channel rescaled
// into [0,1]. Published SSIMULACRA scores were computed with these
// literals in single precision, so they are rounded the same way here.
const(
	labEpsilon = float64(float32(0.00885645167903563081))
	labS       = float64(float32(0.13793103448275862068))
	labK       = float64(float32(7.78703703703703703703))
	labCbrt    = float64(float32(1.0 / 3.0))

	labLScale  = float64(float32(1.16))
	labAOffset = float64(float32(0.39181818181818181818))
	labAScale  = float64(float32(2.27272727272727272727))
	labBOffset = float64(float32(0.49045454545454545454))
	labBScale  = float64(float32(0.90909090909090909090))
)

var(
	// Linear sRGB(D65) -> XYZ, with each row already divided by the D65
	// reference white, so a neutral lands on X=Y=Z.
	LinearSRGBToNormalizedXYZ = emath.Mat3{
		float64(float32(0.43393624408206207259)), float64(float32(0.37619779063650710152)), float64(float32(0.18983429773803261441)),
		float64(float32(0.2126729)),              float64(float32(0.7151522)),              float64(float32(0.0721750)),
		float64(float32(0.01775381083562901744)), float64(float32(0.10945087235996326905)), float64(float32(0.87263921028466483011)),
	}
)

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Pow(t, labCbrt) - labS
	}
	return labK * t
}

// LinearRGBToLab maps a linear RGB triple (each channel in [0,1]) into
// L*a*b*, scaled so that each channel lands in roughly [0,1].
func LinearRGBToLab(rgb emath.Vec3) emath.Vec3 {
	xyz := LinearSRGBToNormalizedXYZ.Apply(rgb)

	X := labF(xyz[0])
	Y := labF(xyz[1])
	Z := labF(xyz[2])

	return emath.Vec3{
		Y * labLScale,
		labAOffset + labAScale * (X - Y),
		labBOffset + labBScale * (Y - Z),
	}
}
