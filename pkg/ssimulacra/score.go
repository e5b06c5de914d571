package ssimulacra

// An accumulator collects weighted similarity terms. score is the
// running weighted sum, scoreMax the sum of the weights, i.e. what
// score would be if every term were a perfect 1.0.
type accumulator struct {
	score    float64
	scoreMax float64
	terms    int
}

// add records a similarity value v (nominally in [0,1]) with weight w.
func (a *accumulator)add(w, v float64) {
	a.score += float64(w * v)
	a.scoreMax += w
	a.terms++
}

// Final turns the accumulated terms into a distortion in [0,1]; 0 is
// identical. The ratio amplifies any near-zero similarity term, so a
// single bad statistic dominates.
//
// A score <= 0 (every term zero, or anti-correlated images driving SSIM
// negative) means the images are as different as they can get.
func (a accumulator)final() float64 {
	if a.score <= 0 {
		return 1
	}

	d := a.scoreMax / a.score - 1
	if d < 0 { d = 0 } // should not happen
	if d > 1 { d = 1 } // very different images
	return d
}
