package ssimulacra

import(
	"github.com/abworrall/ssimulacra/pkg/emath"
)

// channelSSIM is the outcome of comparing one channel at one scale. The
// blurred means are kept since the edge detector needs them too.
type channelSSIM struct {
	mu1, mu2 emath.FloatGrid
	ssim     emath.FloatGrid
}

// computeSSIM builds the local SSIM map of two same-sized channels:
//
//   ((2 mu1 mu2 + C1) (2 s12 + C2)) / ((mu1² + mu2² + C1) (s1² + s2² + C2))
//
// with the local (co)variances expressed as G(x·y) - mu_x mu_y.
func computeSSIM(img1, img2 emath.FloatGrid) channelSSIM {
	mu1 := img1.GaussianBlur()
	mu2 := img2.GaussianBlur()

	g12 := emath.Mul(img1, img2).GaussianBlur()
	g11 := emath.Mul(img1, img1).GaussianBlur()
	g22 := emath.Mul(img2, img2).GaussianBlur()

	ssim := mu1.NewFromThis()
	for y:=0; y<ssim.Dy(); y++ {
		for x:=0; x<ssim.Dx(); x++ {
			m1, m2 := mu1.Get(x,y), mu2.Get(x,y)

			// The explicit conversions stop the compiler fusing these
			// products into the adds below; when img1==img2 the two
			// sides must round identically so that ssim is exactly 1.
			mu12 := float64(2 * m1 * m2)
			musq := float64(m1 * m1) + float64(m2 * m2)

			num := (mu12 + C1) * (2*g12.Get(x,y) - mu12 + C2)
			den := (musq + C1) * ((g11.Get(x,y) + g22.Get(x,y)) - musq + C2)
			ssim.Set(x, y, num/den)
		}
	}

	return channelSSIM{mu1: mu1, mu2: mu2, ssim: ssim}
}
