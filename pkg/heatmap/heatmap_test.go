package heatmap

import(
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/abworrall/ssimulacra/pkg/emath"
)

func constMaps(w, h int, vals ...float64) []emath.FloatGrid {
	maps := make([]emath.FloatGrid, len(vals))
	for i, v := range vals {
		maps[i] = emath.NewFloatGrid(w, h)
		for y:=0; y<h; y++ {
			for x:=0; x<w; x++ {
				maps[i].Set(x, y, v + float64(x)*0.001)
			}
		}
	}
	return maps
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		v, gain float64
		want    uint8
	}{
		{0, 255, 0},
		{1, 255, 255},
		{1.5, 255, 255},
		{-0.2, 255, 0},
		{0.5, 255, 128}, // 127.5 rounds to even
		{0.5/255, 255, 0}, // 0.5 rounds to even
		{0.01, 5000, 50},
		{0.1, 5000, 255},
	}
	for _, tt := range tests {
		if got := saturate(tt.v, tt.gain); got != tt.want {
			t.Errorf("saturate(%v, %v) = %d, want %d", tt.v, tt.gain, got, tt.want)
		}
	}
}

func TestSSIMImage(t *testing.T) {
	maps := constMaps(4, 3, 1, 0, 0.5)
	img, err := SSIMImage(maps)
	if err != nil {
		t.Fatal(err)
	}
	// L=1 -> G=0, a=0 -> R=255, b=0.5 -> B=255-128
	want := color.NRGBA{255, 0, 127, 255}
	if got := img.At(0, 0).(color.NRGBA); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v", b)
	}
}

func TestEdgeDiffImage(t *testing.T) {
	maps := constMaps(2, 2, 0.01, 0.03, 0.04, 0)
	img, err := EdgeDiffImage(maps)
	if err != nil {
		t.Fatal(err)
	}
	// L=50, a=150, b=200; blue is a+b mod 256
	want := color.NRGBA{50, 50, uint8(350 - 256), 255}
	if got := img.At(0, 0).(color.NRGBA); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestNeedsColor(t *testing.T) {
	if _, err := SSIMImage(constMaps(4, 4, 1)); err == nil {
		t.Errorf("SSIMImage accepted a single channel")
	}
	bad := constMaps(4, 4, 1, 1, 1)
	bad[2] = emath.NewFloatGrid(3, 4)
	if _, err := EdgeDiffImage(bad); err == nil {
		t.Errorf("EdgeDiffImage accepted mismatched maps")
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "out")
	maps := constMaps(16, 12, 0.9, 0.95, 0.8, 1)

	if err := WriteSSIM(prefix, maps); err != nil {
		t.Fatal(err)
	}
	if err := WriteEdgeDiff(prefix, maps); err != nil {
		t.Fatal(err)
	}
	if err := WriteHDR(prefix + ".ssim.hdr", maps); err != nil {
		t.Fatal(err)
	}
	if err := WriteTonemapped(prefix + ".ssim-linear.png", maps, "linear"); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"out.ssim.png", "out.edgediff.png", "out.ssim.hdr", "out.ssim-linear.png"} {
		if fi, err := os.Stat(filepath.Join(dir, name)); err != nil || fi.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}

	if err := WriteHDR(filepath.Join(dir, "empty.hdr"), nil); err == nil {
		t.Errorf("WriteHDR with no maps did not fail")
	}
	if err := WriteSSIM(filepath.Join(dir, "nodir", "out"), maps); err == nil {
		t.Errorf("WriteSSIM into a missing directory did not fail")
	}
}

func TestFloatImage(t *testing.T) {
	gray := FloatImage(constMaps(3, 2, 0.25))
	r, g, b, _ := gray.HDRAt(0, 1).HDRRGBA()
	if r != 0.25 || g != 0.25 || b != 0.25 {
		t.Errorf("gray HDRAt = %v,%v,%v", r, g, b)
	}
	if gray.Size() != 6 {
		t.Errorf("Size() = %d, want 6", gray.Size())
	}

	if _, err := Tonemap(constMaps(3, 3, 0.5, 0.5, 0.5), "nope"); err == nil {
		t.Errorf("unknown tonemapper accepted")
	}
}
