package ecolor

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/ssimulacra/pkg/eimage"
	"github.com/abworrall/ssimulacra/pkg/emath"
)

func TestSRGBToLinear(t *testing.T) {
	if SRGBToLinear[0] != 0 {
		t.Errorf("black = %v", SRGBToLinear[0])
	}
	if math.Abs(SRGBToLinear[255]-1) > 1e-12 {
		t.Errorf("white = %v", SRGBToLinear[255])
	}
	// 10/255 is below the 0.04045 knee, so it is on the linear segment
	if want := (10.0 / 255.0) / 12.92; math.Abs(SRGBToLinear[10]-want) > 1e-15 {
		t.Errorf("10 = %v, want %v", SRGBToLinear[10], want)
	}
	for i := 1; i < 256; i++ {
		if SRGBToLinear[i] <= SRGBToLinear[i-1] {
			t.Fatalf("LUT not increasing at %d", i)
		}
	}
}

func TestCompositeOverGray(t *testing.T) {
	tests := []struct {
		c, a, want uint8
	}{
		{200, 255, 200},
		{200, 0, 128},
		{0, 0, 128},
		{255, 128, (128*255 + 127*128) / 255},
		{10, 1, (1*10 + 254*128) / 255},
	}
	for _, tt := range tests {
		if got := CompositeOverGray(tt.c, tt.a); got != tt.want {
			t.Errorf("CompositeOverGray(%d, %d) = %d, want %d", tt.c, tt.a, got, tt.want)
		}
	}
}

func TestLabEndpoints(t *testing.T) {
	white := LinearRGBToLab(emath.Vec3{1, 1, 1})
	if math.Abs(white[0]-1) > 1e-4 {
		t.Errorf("white L = %v, want 1", white[0])
	}
	if math.Abs(white[1]-0.3918) > 1e-3 || math.Abs(white[2]-0.4905) > 1e-3 {
		t.Errorf("white a,b = %v,%v; want the neutral offsets", white[1], white[2])
	}

	black := LinearRGBToLab(emath.Vec3{0, 0, 0})
	if black[0] != 0 {
		t.Errorf("black L = %v, want 0", black[0])
	}
}

// The lightness channel is CIE L*/100, so it should agree with go-colorful;
// a and b are rescaled versions of a*, b*.
func TestLabAgreesWithColorful(t *testing.T) {
	for r := 0; r < 256; r += 51 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 51 {
				lin := emath.Vec3{SRGBToLinear[r], SRGBToLinear[g], SRGBToLinear[b]}
				got := LinearRGBToLab(lin)

				wantL, wantA, wantB := colorful.LinearRgb(lin[0], lin[1], lin[2]).Lab()
				if math.Abs(got[0]-wantL) > 1e-4 {
					t.Errorf("rgb(%d,%d,%d): L = %v, colorful %v", r, g, b, got[0], wantL)
				}
				if a := 0.39181818 + wantA*2.27272727/5; math.Abs(got[1]-a) > 2e-3 {
					t.Errorf("rgb(%d,%d,%d): a = %v, colorful-derived %v", r, g, b, got[1], a)
				}
				if bb := 0.49045454 + wantB*0.90909090/2; math.Abs(got[2]-bb) > 2e-3 {
					t.Errorf("rgb(%d,%d,%d): b = %v, colorful-derived %v", r, g, b, got[2], bb)
				}
			}
		}
	}
}

func TestNormalizeGray(t *testing.T) {
	r := eimage.NewRaster(8, 8, 1)
	r.Set(2, 3, 0, 51)
	im := Normalize(r)
	if im.NumChannels() != 1 {
		t.Fatalf("channels = %d", im.NumChannels())
	}
	if got := im.Channels[0].Get(2, 3); got != 51.0/255.0 {
		t.Errorf("gray = %v, want %v", got, 51.0/255.0)
	}
}

func TestNormalizeOpaqueRGBAMatchesRGB(t *testing.T) {
	rgb := eimage.NewRaster(8, 8, 3)
	for i := range rgb.Pix {
		rgb.Pix[i] = uint8(i * 13)
	}
	a := Normalize(rgb)
	b := Normalize(rgb.WithOpaqueAlpha())

	if b.NumChannels() != 4 {
		t.Fatalf("channels = %d", b.NumChannels())
	}
	for c := 0; c < 3; c++ {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if a.Channels[c].Get(x, y) != b.Channels[c].Get(x, y) {
					t.Fatalf("channel %d differs at (%d,%d)", c, x, y)
				}
			}
		}
	}
	if b.Channels[3].Get(0, 0) != SRGBToLinear[255] {
		t.Errorf("alpha = %v", b.Channels[3].Get(0, 0))
	}
}

func TestNormalizeTransparentIsGray(t *testing.T) {
	r := eimage.NewRaster(8, 8, 4)
	r.Set(0, 0, 0, 255) // red, but fully transparent
	im := Normalize(r)

	gray := LinearRGBToLab(emath.Vec3{SRGBToLinear[128], SRGBToLinear[128], SRGBToLinear[128]})
	for c := 0; c < 3; c++ {
		if im.Channels[c].Get(0, 0) != gray[c] {
			t.Errorf("channel %d = %v, want gray %v", c, im.Channels[c].Get(0, 0), gray[c])
		}
	}
	if im.Channels[3].Get(0, 0) != 0 {
		t.Errorf("alpha = %v, want 0", im.Channels[3].Get(0, 0))
	}
}
