package filter

import (
	"fmt"
	"sort"
)

// Kernel is an odd sized square weight matrix. The weighted neighborhood sum
// is divided by Divisor (treated as 1 when zero), which lets integer weighted
// kernels such as the blurs stay exact.
type Kernel struct {
	Name    string
	Weights [][]float64
	Divisor float64
}

// Size is N for an N x N kernel.
func (k Kernel) Size() int {
	return len(k.Weights)
}

// Validate checks that the kernel is non-empty, square, and odd sized.
func (k Kernel) Validate() error {
	n := len(k.Weights)
	if n == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidKernel, k.label())
	}
	if n%2 == 0 {
		return fmt.Errorf("%w: %s has even size %d", ErrInvalidKernel, k.label(), n)
	}
	for i, row := range k.Weights {
		if len(row) != n {
			return fmt.Errorf("%w: %s row %d has %d weights, want %d", ErrInvalidKernel, k.label(), i, len(row), n)
		}
	}
	return nil
}

func (k Kernel) divisor() float64 {
	if k.Divisor == 0 {
		return 1
	}
	return k.Divisor
}

func (k Kernel) label() string {
	if k.Name == "" {
		return "kernel"
	}
	return "kernel " + k.Name
}

// Each constructor returns a fresh kernel so callers may modify the result.

// BoxBlurKernel is the uniform 3x3 mean.
func BoxBlurKernel() Kernel {
	return Kernel{
		Name: "box-blur",
		Weights: [][]float64{
			{1, 1, 1},
			{1, 1, 1},
			{1, 1, 1},
		},
		Divisor: 9,
	}
}

// GaussianBlurKernel is the 3x3 binomial approximation.
func GaussianBlurKernel() Kernel {
	return Kernel{
		Name: "gaussian-blur",
		Weights: [][]float64{
			{1, 2, 1},
			{2, 4, 2},
			{1, 2, 1},
		},
		Divisor: 16,
	}
}

// GaussianBlur5Kernel is the 5x5 binomial approximation.
func GaussianBlur5Kernel() Kernel {
	return Kernel{
		Name: "gaussian-blur-5",
		Weights: [][]float64{
			{1, 4, 6, 4, 1},
			{4, 16, 24, 16, 4},
			{6, 24, 36, 24, 6},
			{4, 16, 24, 16, 4},
			{1, 4, 6, 4, 1},
		},
		Divisor: 256,
	}
}

// OutlineKernel is a Laplacian edge detector.
func OutlineKernel() Kernel {
	return Kernel{
		Name: "outline",
		Weights: [][]float64{
			{-1, -1, -1},
			{-1, 8, -1},
			{-1, -1, -1},
		},
	}
}

// EmbossKernel lights the image from the bottom right.
func EmbossKernel() Kernel {
	return Kernel{
		Name: "emboss",
		Weights: [][]float64{
			{-2, -1, 0},
			{-1, 1, 1},
			{0, 1, 2},
		},
	}
}

// SharpenKernel boosts the center against its four neighbors.
func SharpenKernel() Kernel {
	return Kernel{
		Name: "sharpen",
		Weights: [][]float64{
			{0, -1, 0},
			{-1, 5, -1},
			{0, -1, 0},
		},
	}
}

// IdentityKernel reproduces its input.
func IdentityKernel() Kernel {
	return Kernel{
		Name: "identity",
		Weights: [][]float64{
			{0, 0, 0},
			{0, 1, 0},
			{0, 0, 0},
		},
	}
}

// kernelsByName maps kernel names, plus the short aliases blur, gaussian,
// gaussian5 and edge, to constructors
var kernelsByName = map[string]func() Kernel{
	"box-blur":        BoxBlurKernel,
	"blur":            BoxBlurKernel,
	"gaussian-blur":   GaussianBlurKernel,
	"gaussian":        GaussianBlurKernel,
	"gaussian-blur-5": GaussianBlur5Kernel,
	"gaussian5":       GaussianBlur5Kernel,
	"outline":         OutlineKernel,
	"edge":            OutlineKernel,
	"emboss":          EmbossKernel,
	"sharpen":         SharpenKernel,
	"identity":        IdentityKernel,
}

// KernelByName returns a predefined kernel, or false if the name is unknown.
func KernelByName(name string) (Kernel, bool) {
	fn, ok := kernelsByName[name]
	if !ok {
		return Kernel{}, false
	}
	return fn(), true
}

// KernelNames lists every registered name, aliases included, sorted.
func KernelNames() []string {
	names := make([]string, 0, len(kernelsByName))
	for name := range kernelsByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
