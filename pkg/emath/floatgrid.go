package emath

import(
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A FloatGrid is a grid of floats, with some operations
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g1 *FloatGrid)NewFromThis() FloatGrid  { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg *FloatGrid)Get(x, y int) float64    { return fg.values[fg.stride*y + x] }
func (fg *FloatGrid)Dx() int                 { return fg.stride }
func (fg *FloatGrid)Dy() int {
	if fg.stride == 0 { return 0 }
	return len(fg.values) / fg.stride
}

// Map returns a new grid holding f applied to every value.
func (g1 FloatGrid)Map(f func(v float64) float64) FloatGrid {
	g2 := g1.NewFromThis()
	for i, v := range g1.values {
		g2.values[i] = f(v)
	}
	return g2
}

// Combine returns a new grid holding f(a, b) for each pair of values
// at the same position. Both grids must be the same size.
func Combine(a, b FloatGrid, f func(va, vb float64) float64) FloatGrid {
	if a.stride != b.stride || len(a.values) != len(b.values) {
		panic(fmt.Sprintf("emath.Combine: size mismatch %dx%d vs %dx%d", a.Dx(), a.Dy(), b.Dx(), b.Dy()))
	}
	g := a.NewFromThis()
	for i := range a.values {
		g.values[i] = f(a.values[i], b.values[i])
	}
	return g
}

// Mul is the element-wise product of two grids.
func Mul(a, b FloatGrid) FloatGrid {
	return Combine(a, b, func(va, vb float64) float64 { return va * vb })
}

// {{{ Gaussian blur

const(
	ssimKernelSize  = 11
	ssimKernelSigma = 1.5
)

// ssimKernel is the normalized 11 tap gaussian (sigma=1.5) used for
// all the local SSIM statistics.
var ssimKernel = GaussianKernel(ssimKernelSize, ssimKernelSigma)

// GaussianKernel returns a normalized 1D gaussian with n taps.
func GaussianKernel(n int, sigma float64) []float64 {
	k := make([]float64, n)
	scale2X := -0.5 / (sigma * sigma)
	sum := 0.0
	for i := 0; i < n; i++ {
		x := float64(i) - float64(n-1)*0.5
		k[i] = math.Exp(scale2X * x * x)
		sum += k[i]
	}
	for i := range k {
		k[i] *= 1.0 / sum
	}
	return k
}

// reflect101 maps an out of range index back into [0,n), mirroring
// about the edge pixels without repeating them (dcb|abcd|cba).
func reflect101(p, n int) int {
	if n == 1 { return 0 }
	for p < 0 || p >= n {
		if p < 0 {
			p = -p
		} else {
			p = 2*n - 2 - p
		}
	}
	return p
}

// GaussianBlur convolves the grid with the 11x11 (sigma=1.5) SSIM
// window, as two separable passes. Borders are reflected.
func (g1 FloatGrid)GaussianBlur() FloatGrid {
	return g1.SeparableBlur(ssimKernel)
}

// SeparableBlur applies the odd-length kernel along X, then along Y.
func (g1 FloatGrid)SeparableBlur(kernel []float64) FloatGrid {
	width := g1.Dx()
	height := g1.Dy()
	radius := len(kernel) / 2
	g2 := g1.NewFromThis()

	T  := g1.NewFromThis()

	// Precompute the (reflected) source index for each tap, per position
	xIdx := make([][]int, width)
	for x:=0; x<width; x++ {
		xIdx[x] = make([]int, len(kernel))
		for k:=range kernel {
			xIdx[x][k] = reflect101(x+k-radius, width)
		}
	}
	yIdx := make([][]int, height)
	for y:=0; y<height; y++ {
		yIdx[y] = make([]int, len(kernel))
		for k:=range kernel {
			yIdx[y][k] = reflect101(y+k-radius, height)
		}
	}

	//--- X blur, build up in T
	for y:=0; y<height; y++ {
		row := g1.values[y*width : (y+1)*width]
		for x:=0; x<width; x++ {
			t := 0.0
			for k, w := range kernel {
				t += w * row[xIdx[x][k]]
			}
			T.Set(x, y, t)
		}
	}

	//--- Y blur, read from T and generate output
	for y:=0; y<height; y++ {
		for x:=0; x<width; x++ {
			t := 0.0
			for k, w := range kernel {
				t += w * T.Get(x, yIdx[y][k])
			}
			g2.Set(x, y, t)
		}
	}

	return g2
}

// }}}
// {{{ Resizing

// DownSample returns a grid half the size in each dimension (rounded
// half to even), averaging the values from the original.
func (g1 *FloatGrid)DownSample() FloatGrid {
	return g1.ResizeByFactor(0.5)
}

// ResizeByFactor scales both dimensions by the factor, rounding the new
// size half to even, and resamples by area averaging. Each output cell
// covers exactly 1/f input cells; cells hanging off the far edge are
// clipped, and any input beyond the last cell is dropped.
func (g1 *FloatGrid)ResizeByFactor(f float64) FloatGrid {
	w := int(math.RoundToEven(float64(g1.Dx()) * f))
	h := int(math.RoundToEven(float64(g1.Dy()) * f))
	if w < 1 { w = 1 }
	if h < 1 { h = 1 }
	return g1.resizeArea(areaTaps(g1.Dx(), w, 1/f), areaTaps(g1.Dy(), h, 1/f))
}

// areaTap is one source cell contributing to a destination cell.
type areaTap struct {
	src    int
	weight float64
}

// areaTaps works out, for each of the dst cells, which src cells it
// overlaps and by how much, when each dst cell spans `scale` src cells.
func areaTaps(src, dst int, scale float64) [][]areaTap {
	taps := make([][]areaTap, dst)
	for d:=0; d<dst; d++ {
		lo := float64(d) * scale
		hi := math.Min(lo + scale, float64(src))
		for s := int(math.Floor(lo)); s < src && float64(s) < hi; s++ {
			w := math.Min(hi, float64(s+1)) - math.Max(lo, float64(s))
			if w > 1e-12 {
				taps[d] = append(taps[d], areaTap{s, w})
			}
		}
	}
	return taps
}

// resizeArea does the horizontal pass, then the vertical one. Dividing
// by the summed weights (rather than the nominal cell area) keeps a
// grid of constant values exactly constant.
func (g1 *FloatGrid)resizeArea(xTaps, yTaps [][]areaTap) FloatGrid {
	w, h := len(xTaps), len(yTaps)

	T := NewFloatGrid(w, g1.Dy())
	for y:=0; y<g1.Dy(); y++ {
		for x:=0; x<w; x++ {
			sum, wsum := 0.0, 0.0
			for _, tap := range xTaps[x] {
				sum += float64(tap.weight * g1.Get(tap.src, y))
				wsum += tap.weight
			}
			T.Set(x, y, sum/wsum)
		}
	}

	g2 := NewFloatGrid(w, h)
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			sum, wsum := 0.0, 0.0
			for _, tap := range yTaps[y] {
				sum += float64(tap.weight * T.Get(x, tap.src))
				wsum += tap.weight
			}
			g2.Set(x, y, sum/wsum)
		}
	}

	return g2
}

// }}}
// {{{ Reductions

func (fg *FloatGrid)Mean() float64 { return stat.Mean(fg.values, nil) }
func (fg *FloatGrid)Min() float64  { return floats.Min(fg.values) }
func (fg *FloatGrid)Max() float64  { return floats.Max(fg.values) }

// RowMeans returns the average of each row, top to bottom.
func (fg *FloatGrid)RowMeans() []float64 {
	ret := make([]float64, fg.Dy())
	for y := range ret {
		ret[y] = stat.Mean(fg.values[y*fg.stride:(y+1)*fg.stride], nil)
	}
	return ret
}

// ColMeans returns the average of each column, left to right.
func (fg *FloatGrid)ColMeans() []float64 {
	col := make([]float64, fg.Dy())
	ret := make([]float64, fg.Dx())
	for x := range ret {
		for y := range col {
			col[y] = fg.Get(x, y)
		}
		ret[x] = stat.Mean(col, nil)
	}
	return ret
}

// SortedAt returns the i'th smallest of the values (clamped to the
// valid range). The input slice is not modified.
func SortedAt(vals []float64, i int) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	if i < 0            { i = 0 }
	if i >= len(sorted) { i = len(sorted)-1 }
	return sorted[i]
}

func (fg *FloatGrid)Stats() string {
	if len(fg.values) == 0 {
		return "fg[0x0]"
	}
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}, avg %f]", fg.Dx(), fg.Dy(), fg.Min(), fg.Max(), fg.Mean())
}

// }}}

// ToImg saves a simple grayscale, based on the range of values in the grid, and gamma scaling the
// gray to look normal for human vision
func (fg *FloatGrid)ToImg(title, filename string) error {
	min, max := fg.Min(), fg.Max()
	if max <= min { max = min + 1 } // flat grid; render as black

	img := image.NewRGBA64(image.Rectangle{Max:image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			lum := fg.Get(x,y)
			gray := GammaExpand_F64 ((lum - min) / (max - min))
			col := color.RGBA64{uint16(gray * 65535.0), uint16(gray * 65535.0), uint16(gray * 65535.0), 0xFFFF}
			img.Set(x, y, col)
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,0,0)
	dc.DrawString(title, 4, 12)
	return dc.SavePNG(filename)
}
