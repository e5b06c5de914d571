package ssimulacra

// NumScales is the depth of the image pyramid.
const NumScales = 6

// SSIM stabilization constants. These must not both be zero; DSSIM as
// originally described (all Ci = 0) is numerically unstable in flat
// regions. Standard SSIM has C2 = 0.0009 (K2 = 0.03); smaller works slightly better.
const(
	C1 = 0.0001
	C2 = 0.0004
)

// Grid-artifact table rows
const(
	GridOnSSIM = 0
	GridOnEdges = 1
)

// Weights holds the calibrated tables, indexed by channel (L, a, b,
// alpha) and, where relevant, by scale. All of these were arrived at
// by some tweaking; there is room for improvement.
type Weights struct {
	// Weight of the mean SSIM at each scale. Chroma gives more weight to
	// the larger (zoomed out) scales, similar to subsampled chroma.
	Scale      [4][NumScales]float64

	// Weight of the worst 4x4 block at each scale (1:4 ... 1:128).
	MinScale   [4][NumScales]float64

	// Higher means more importance to worst local artifacts.
	Min        [4]float64

	// Higher means more importance to edges that appear where the
	// original is smooth.
	ExtraEdges [4]float64

	// Higher means more importance to grid-like artifacts (blockiness);
	// row GridOnSSIM for the SSIM map, GridOnEdges for the edge map.
	WorstGrid  [2][4]float64

	// Multiplies the scale weights for every channel other than L.
	Chroma     float64
}

// DefaultWeights returns the calibrated tables. Scores are only
// comparable across runs that used the same tables.
func DefaultWeights() Weights {
	return Weights{
		Scale: [4][NumScales]float64{
			// 1:1   1:2     1:4     1:8     1:16    1:32
			{0.0448, 0.2856, 0.3001, 0.2363, 0.1333, 0.1  },
			{0.015,  0.0448, 0.2856, 0.3001, 0.3363, 0.25 },
			{0.015,  0.0448, 0.2856, 0.3001, 0.3363, 0.25 },
			{0.0448, 0.2856, 0.3001, 0.2363, 0.1333, 0.1  },
		},
		MinScale: [4][NumScales]float64{
			// 1:4   1:8     1:16    1:32   1:64   1:128
			{0.2,    0.3,    0.25,   0.2,   0.12,  0.05},
			{0.01,   0.05,   0.2,    0.3,   0.35,  0.35},
			{0.01,   0.05,   0.2,    0.3,   0.35,  0.35},
			{0.2,    0.3,    0.25,   0.2,   0.12,  0.05},
		},
		Min:        [4]float64{0.1, 0.005, 0.005, 0.005},
		ExtraEdges: [4]float64{1.5, 0.1, 0.1, 0.5},
		WorstGrid: [2][4]float64{
			{1.0, 0.1, 0.1, 0.5},
			{1.0, 0.1, 0.1, 0.5},
		},
		Chroma: 0.2,
	}
}

func (w Weights)chroma(channel int) float64 {
	if channel > 0 {
		return w.Chroma
	}
	return 1.0
}

// MeanWeight is the weight of the mean SSIM for a channel at a scale.
func (w Weights)MeanWeight(channel, scale int) float64 {
	return float64(w.chroma(channel) * w.Scale[channel][scale])
}

// MinWeight is the weight of the worst-block SSIM for a channel at a scale.
func (w Weights)MinWeight(channel, scale int) float64 {
	return float64(float64(w.chroma(channel) * w.Min[channel]) * w.MinScale[channel][scale])
}
