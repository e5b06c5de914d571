package ssimulacra

import(
	"math"
	"testing"

	"github.com/abworrall/ssimulacra/pkg/emath"
)

func grid(w, h int, f func(x, y int) float64) emath.FloatGrid {
	g := emath.NewFloatGrid(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			g.Set(x, y, f(x, y))
		}
	}
	return g
}

func TestComputeSSIMIdentical(t *testing.T) {
	img := grid(23, 17, func(x, y int) float64 { return math.Mod(float64(x*x+3*y)*0.37, 1) })
	st := computeSSIM(img, img)
	for y:=0; y<st.ssim.Dy(); y++ {
		for x:=0; x<st.ssim.Dx(); x++ {
			if v := st.ssim.Get(x, y); v != 1 {
				t.Fatalf("ssim(img, img) at (%d,%d) = %v, want exactly 1", x, y, v)
			}
		}
	}
}

func TestComputeSSIMFlat(t *testing.T) {
	// With no local variance, SSIM reduces to the luminance term
	a := grid(12, 12, func(x, y int) float64 { return 0.2 })
	b := grid(12, 12, func(x, y int) float64 { return 0.6 })
	st := computeSSIM(a, b)
	want := (2*0.2*0.6 + C1) / (0.2*0.2 + 0.6*0.6 + C1)
	if got := st.ssim.Get(6, 6); math.Abs(got-want) > 1e-9 {
		t.Errorf("flat ssim = %v, want %v", got, want)
	}
}

func TestEdgeDiff(t *testing.T) {
	flat := grid(16, 16, func(x, y int) float64 { return 0.5 })
	lined := grid(16, 16, func(x, y int) float64 {
		if x == 8 {
			return 1
		}
		return 0.5
	})

	introduced := edgeDiff(flat, flat.GaussianBlur(), lined, lined.GaussianBlur())
	removed := edgeDiff(lined, lined.GaussianBlur(), flat, flat.GaussianBlur())

	if introduced.Min() < 0 || removed.Min() < 0 {
		t.Errorf("negative edge diff: %v, %v", introduced.Min(), removed.Min())
	}
	if introduced.Get(8, 8) <= 0.1 {
		t.Errorf("new edge not detected: %v", introduced.Get(8, 8))
	}
	if removed.Max() > 1e-12 {
		t.Errorf("removed edge was penalized: %v", removed.Max())
	}
}

func TestWorstRowAndCol(t *testing.T) {
	// 100 rows, so the pick is the third lowest (100/50 = 2)
	g := grid(3, 100, func(x, y int) float64 { return float64((y*37)%100) })
	if got := worstRow(g); got != 2 {
		t.Errorf("worstRow = %v, want 2", got)
	}

	// Fewer than 50 columns: the very worst
	g = grid(10, 4, func(x, y int) float64 { return float64(10 - x) })
	if got := worstCol(g); got != 1 {
		t.Errorf("worstCol = %v, want 1", got)
	}
}

func TestGridArtifactOrder(t *testing.T) {
	c := comparison{weights: DefaultWeights()}
	ones := grid(8, 8, func(x, y int) float64 { return 1 })
	c.addGridArtifacts([]emath.FloatGrid{ones, ones, ones}, GridOnSSIM)
	if c.acc.terms != 6 {
		t.Errorf("terms = %d, want 6", c.acc.terms)
	}
	if want := 2 * (1.0 + 0.1 + 0.1); math.Abs(c.acc.scoreMax-want) > 1e-12 || c.acc.score != c.acc.scoreMax {
		t.Errorf("score/max = %v/%v, want %v/%v", c.acc.score, c.acc.scoreMax, want, want)
	}
}

func TestEdgeArtifactsPerfect(t *testing.T) {
	c := comparison{weights: DefaultWeights()}
	zeros := emath.NewFloatGrid(8, 8)
	c.addEdgeArtifacts([]emath.FloatGrid{zeros})
	if c.acc.terms != 3 || c.acc.score != c.acc.scoreMax {
		t.Errorf("terms %d, score/max %v/%v", c.acc.terms, c.acc.score, c.acc.scoreMax)
	}
	if want := 1.5 + 1.0 + 1.0; math.Abs(c.acc.scoreMax-want) > 1e-12 {
		t.Errorf("scoreMax = %v, want %v", c.acc.scoreMax, want)
	}
}
