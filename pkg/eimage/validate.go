package eimage

import "fmt"

// MinDimension is the smallest width or height we can compare.
const MinDimension = 8

// Prepare checks that a pair of rasters can be compared, and makes
// their channel counts agree. If one is RGB and the other RGBA, the RGB
// one is promoted to RGBA (fully opaque). The inputs are never
// modified.
func Prepare(orig, dist *Raster) (*Raster, *Raster, error) {
	if orig.Width != dist.Width || orig.Height != dist.Height {
		return nil, nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch,
			orig.Width, orig.Height, dist.Width, dist.Height)
	}

	if orig.Width < MinDimension || orig.Height < MinDimension {
		return nil, nil, fmt.Errorf("%w: %dx%d, need at least %d rows and columns", ErrImageTooSmall,
			orig.Width, orig.Height, MinDimension)
	}

	if orig.Channels != dist.Channels {
		if orig.Channels < 3 || dist.Channels < 3 {
			return nil, nil, fmt.Errorf("%w: %d vs %d", ErrChannelMismatch, orig.Channels, dist.Channels)
		}
		if orig.Channels == 3 { orig = orig.WithOpaqueAlpha() }
		if dist.Channels == 3 { dist = dist.WithOpaqueAlpha() }
	}

	for _, r := range []*Raster{orig, dist} {
		switch r.Channels {
		case 1, 3, 4:
		default:
			return nil, nil, fmt.Errorf("%w: %d channels", ErrChannelCountUnsupported, r.Channels)
		}
	}
	if orig.Channels != dist.Channels {
		return nil, nil, fmt.Errorf("%w: %d vs %d after promotion", ErrChannelMismatch, orig.Channels, dist.Channels)
	}

	if len(orig.Pix) != orig.NumPixels()*orig.Channels || len(dist.Pix) != dist.NumPixels()*dist.Channels {
		return nil, nil, fmt.Errorf("%w: pixel buffer does not match %s", ErrDimensionMismatch, orig)
	}

	return orig, dist, nil
}
