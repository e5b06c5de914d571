package ssimulacra

import(
	"fmt"
	"log"

	"github.com/abworrall/ssimulacra/pkg/ecolor"
	"github.com/abworrall/ssimulacra/pkg/eimage"
	"github.com/abworrall/ssimulacra/pkg/emath"
)

// Result is the outcome of one comparison.
type Result struct {
	Score       float64 // 0 is identical, 1 is very different

	// How many pyramid levels were evaluated; fewer than NumScales for
	// small images.
	Scales      int

	// Per-channel maps from scale 0, only when Config.KeepHeatmaps is set
	// and the images have color.
	SSIMMap     []emath.FloatGrid
	EdgeDiffMap []emath.FloatGrid
}

// comparison is the state of one Compare call.
type comparison struct {
	Config
	weights Weights
	acc     accumulator
	result  Result
}

// Compare returns the perceptual distortion of dist relative to orig.
// Both must be the same size, at least 8x8, and have compatible
// channel counts (see eimage.Prepare). The inputs are not modified.
func Compare(cfg Config, orig, dist *eimage.Raster) (Result, error) {
	a, b, err := eimage.Prepare(orig, dist)
	if err != nil {
		return Result{}, err
	}

	c := comparison{Config: cfg, weights: DefaultWeights()}
	if c.Verbosity > 0 {
		log.Printf("ssimulacra: comparing %s vs %s\n", a, b)
	}

	img1 := ecolor.Normalize(a)
	img2 := ecolor.Normalize(b)

	for scale:=0; scale<NumScales; scale++ {
		if img1.Dx() < eimage.MinDimension || img1.Dy() < eimage.MinDimension {
			break
		}
		c.compareScale(scale, img1, img2)
		c.result.Scales++

		if scale < NumScales-1 {
			img1 = img1.DownSample()
			img2 = img2.DownSample()
		}
	}

	c.result.Score = c.acc.final()
	if c.Verbosity > 0 {
		log.Printf("ssimulacra: %d scales, %d terms, score/max %f/%f => %.8f\n",
			c.result.Scales, c.acc.terms, c.acc.score, c.acc.scoreMax, c.result.Score)
	}

	return c.result, nil
}

// compareScale adds a single pyramid level's terms.
func (c *comparison)compareScale(scale int, img1, img2 eimage.Image) {
	n := img1.NumChannels()
	maps := make([]emath.FloatGrid, n)
	edges := []emath.FloatGrid{}

	for i:=0; i<n; i++ {
		st := computeSSIM(img1.Channels[i], img2.Channels[i])
		maps[i] = st.ssim
		if scale == 0 {
			edges = append(edges, edgeDiff(img1.Channels[i], st.mu1, img2.Channels[i], st.mu2))
		}
	}

	if scale == 0 {
		c.addEdgeArtifacts(edges)
		c.addGridArtifacts(maps, GridOnSSIM)

		if c.KeepHeatmaps && n >= 3 {
			c.result.SSIMMap = maps
			c.result.EdgeDiffMap = edges
		}
	}

	for i := range maps {
		c.acc.add(c.weights.MeanWeight(i, scale), maps[i].Mean())
	}

	// The worst 4x4 block (at scale 0; 8x8, 16x16 etc. at later scales)
	for i := range maps {
		blocks := maps[i].ResizeByFactor(0.25)
		c.acc.add(c.weights.MinWeight(i, scale), blocks.Min())
	}

	c.maybeLogScale(scale, maps)
	c.maybeDumpGrids(scale, maps)
}

func (c *comparison)maybeLogScale(scale int, maps []emath.FloatGrid) {
	if c.Verbosity < 1 {
		return
	}
	log.Printf("ssimulacra: scale %d (%dx%d): running score/max %f/%f\n",
		scale, maps[0].Dx(), maps[0].Dy(), c.acc.score, c.acc.scoreMax)

	if c.Verbosity < 2 {
		return
	}
	for i := range maps {
		log.Printf("ssimulacra:   chan %d: %s, %s\n", i, maps[i].Stats(), ssimQuantiles(maps[i]))
		if c.Verbosity > 2 {
			log.Printf("ssimulacra:   chan %d histogram: %v\n", i, ssimBuckets(maps[i]))
		}
	}
}

func (c *comparison)maybeDumpGrids(scale int, maps []emath.FloatGrid) {
	if !c.DumpGrids {
		return
	}
	prefix := c.DebugPrefix
	if prefix == "" {
		prefix = "ssimulacra"
	}
	for i := range maps {
		title := fmt.Sprintf("ssim scale %d chan %d", scale, i)
		filename := fmt.Sprintf("%s.ssim-s%d-c%d.png", prefix, scale, i)
		if err := maps[i].ToImg(title, filename); err != nil {
			log.Printf("ssimulacra: dump %s: %v\n", filename, err)
		}
	}
}
