package eimage

import "errors"

var (
	ErrDimensionMismatch       = errors.New("ssimulacra: image dimensions have to be identical")
	ErrImageTooSmall           = errors.New("ssimulacra: image is too small")
	ErrChannelCountUnsupported = errors.New("ssimulacra: can only deal with grayscale, RGB or RGBA input")
	ErrChannelMismatch         = errors.New("ssimulacra: channel counts differ")
	ErrDecodeFailure           = errors.New("ssimulacra: decode failed")
)
