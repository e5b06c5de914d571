package ssimulacra

import(
	"fmt"

	"github.com/codahale/hdrhistogram"
	"github.com/skypies/util/histogram"

	"github.com/abworrall/ssimulacra/pkg/emath"
)

// SSIM values are bucketed to 1e-4; anything outside [0,1] is clamped.
const histogramResolution = 10000

// ssimQuantiles summarizes the distribution of an SSIM map, for the
// verbose per-scale log lines.
func ssimQuantiles(g emath.FloatGrid) string {
	h := hdrhistogram.New(0, histogramResolution, 3)
	for y:=0; y<g.Dy(); y++ {
		for x:=0; x<g.Dx(); x++ {
			v := int64(g.Get(x,y) * histogramResolution)
			if v < 0                   { v = 0 }
			if v > histogramResolution { v = histogramResolution }
			h.RecordValue(v)
		}
	}

	q := func(p float64) float64 { return float64(h.ValueAtQuantile(p)) / histogramResolution }
	return fmt.Sprintf("p1=%.4f p10=%.4f p50=%.4f p90=%.4f", q(1), q(10), q(50), q(90))
}

// ssimBuckets is a full 256 bucket histogram of an SSIM map (scaled
// the same way as the heatmap images), for the most verbose logging.
func ssimBuckets(g emath.FloatGrid) string {
	h := histogram.Histogram{NumBuckets:256, ValMin:0, ValMax:256}
	for y:=0; y<g.Dy(); y++ {
		for x:=0; x<g.Dx(); x++ {
			v := int(g.Get(x,y) * 255)
			if v < 0   { v = 0 }
			if v > 255 { v = 255 }
			h.Add(histogram.ScalarVal(v))
		}
	}
	return fmt.Sprintf("%v", h)
}
