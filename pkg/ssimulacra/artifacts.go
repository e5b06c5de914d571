package ssimulacra

import(
	"math"

	"github.com/abworrall/ssimulacra/pkg/emath"
)

// edgeDiff measures edges that the distorted image has but the
// original doesn't: max(|img2 - mu2| - |img1 - mu1|, 0). Blurring (and
// so losing edges) is already caught by SSIM, so only new edges count;
// this is why the metric is not symmetric.
func edgeDiff(img1, mu1, img2, mu2 emath.FloatGrid) emath.FloatGrid {
	abs := func(v, mu float64) float64 { return math.Abs(v - mu) }
	d1 := emath.Combine(img1, mu1, abs)
	d2 := emath.Combine(img2, mu2, abs)

	return emath.Combine(d2, d1, func(a, b float64) float64 {
		if d := a - b; d > 0 {
			return d
		}
		return 0
	})
}

// invert turns a difference map into a similarity map (1 is good).
func invert(g emath.FloatGrid) emath.FloatGrid {
	return g.Map(func(v float64) float64 { return 1 - v })
}

// worstRow returns a near-worst row mean of the map: the row averages
// are sorted, and the one 2% of the way up is picked. Blocky codecs
// tend to damage whole rows and columns on their block boundaries.
func worstRow(g emath.FloatGrid) float64 {
	rows := g.RowMeans()
	return emath.SortedAt(rows, len(rows)/50)
}

func worstCol(g emath.FloatGrid) float64 {
	cols := g.ColMeans()
	return emath.SortedAt(cols, len(cols)/50)
}

// addGridArtifacts penalizes grid-like damage in the per-channel
// similarity maps, using row `which` of the WorstGrid table. All the
// rows go in first, then all the columns.
func (c *comparison)addGridArtifacts(maps []emath.FloatGrid, which int) {
	for i := range maps {
		c.acc.add(c.weights.WorstGrid[which][i], worstRow(maps[i]))
	}
	for i := range maps {
		c.acc.add(c.weights.WorstGrid[which][i], worstCol(maps[i]))
	}
}

// addEdgeArtifacts takes the per-channel edge-diff maps, and adds the
// mean similarity of each, followed by their grid penalties.
func (c *comparison)addEdgeArtifacts(edges []emath.FloatGrid) {
	inverted := make([]emath.FloatGrid, len(edges))
	for i := range edges {
		inverted[i] = invert(edges[i])
		c.acc.add(c.weights.ExtraEdges[i], inverted[i].Mean())
	}
	c.addGridArtifacts(inverted, GridOnEdges)
}
