package bmp

import "errors"

var (
	ErrFormat                 = errors.New("bmp: invalid format")
	ErrUnsupportedDepth       = errors.New("bmp: unsupported bit depth")
	ErrUnsupportedCompression = errors.New("bmp: unsupported compression")
	ErrTruncated              = errors.New("bmp: truncated data")
	ErrAllocation             = errors.New("bmp: image dimensions exceed limit")
	ErrDegenerateImage        = errors.New("bmp: degenerate image")
)
