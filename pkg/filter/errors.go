package filter

import "errors"

var (
	ErrInvalidKernel = errors.New("filter: invalid kernel")
	ErrEmptyStore    = errors.New("filter: empty pixel store")
	ErrNotGrayscale  = errors.New("filter: operation requires a single channel store")
)
