package filter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jpfielding/bmp.go/pkg/bmp"
)

// Border selects how a convolution treats pixels whose neighborhood leaves the image.
type Border int

const (
	// BorderClamp filters every pixel, reading out of range neighbors from
	// the nearest edge coordinate.
	BorderClamp Border = iota
	// BorderSkip filters only pixels whose whole neighborhood is inside the
	// image and copies the outer ring through unchanged.
	BorderSkip
)

func (b Border) String() string {
	switch b {
	case BorderClamp:
		return "clamp"
	case BorderSkip:
		return "skip"
	default:
		return fmt.Sprintf("Border(%d)", int(b))
	}
}

// ParseBorder accepts "clamp" (or "") and "skip".
func ParseBorder(s string) (Border, error) {
	switch strings.ToLower(s) {
	case "", "clamp":
		return BorderClamp, nil
	case "skip":
		return BorderSkip, nil
	default:
		return BorderClamp, fmt.Errorf("unknown border policy %q (clamp|skip)", s)
	}
}

// Apply convolves every channel of src with k and returns a new store; src is
// never modified. Each output sample is the weighted sum divided by the
// kernel divisor, truncated toward zero and clamped to [0, 255].
func Apply(src *bmp.PixelStore, k Kernel, border Border) (*bmp.PixelStore, error) {
	if src.Empty() {
		return nil, ErrEmptyStore
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	n := k.Size()
	if src.Width < n || src.Height < n {
		return nil, fmt.Errorf("%w: %s is %dx%d, image is only %dx%d",
			ErrInvalidKernel, k.label(), n, n, src.Width, src.Height)
	}

	half := n / 2
	div := k.divisor()
	ch := src.Channels
	dst := src.Clone()

	x0, y0, x1, y1 := 0, 0, src.Width, src.Height
	if border == BorderSkip {
		x0, y0, x1, y1 = half, half, src.Width-half, src.Height-half
	}

	var sums [3]float64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sums = [3]float64{}
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					w := k.Weights[i][j]
					if w == 0 {
						continue
					}
					nx, ny := src.Clamp(x+j-half, y+i-half)
					p := src.Offset(nx, ny)
					for c := 0; c < ch; c++ {
						sums[c] += w * float64(src.Pix[p+c])
					}
				}
			}
			o := dst.Offset(x, y)
			for c := 0; c < ch; c++ {
				dst.Pix[o+c] = truncate(sums[c] / div)
			}
		}
	}

	slog.Debug("applied kernel", "kernel", k.Name, "size", n, "border", border.String(),
		"width", src.Width, "height", src.Height, "channels", ch)
	return dst, nil
}

// ApplyToImage convolves the image and installs the result. The image is left
// unchanged when the kernel is rejected.
func ApplyToImage(img *bmp.Image, k Kernel, border Border) error {
	out, err := Apply(img.Pixels, k, border)
	if err != nil {
		return err
	}
	return img.ReplacePixels(out)
}

func BoxBlur(src *bmp.PixelStore, border Border) (*bmp.PixelStore, error) {
	return Apply(src, BoxBlurKernel(), border)
}

func GaussianBlur(src *bmp.PixelStore, border Border) (*bmp.PixelStore, error) {
	return Apply(src, GaussianBlurKernel(), border)
}

func GaussianBlur5(src *bmp.PixelStore, border Border) (*bmp.PixelStore, error) {
	return Apply(src, GaussianBlur5Kernel(), border)
}

func Outline(src *bmp.PixelStore, border Border) (*bmp.PixelStore, error) {
	return Apply(src, OutlineKernel(), border)
}

func Emboss(src *bmp.PixelStore, border Border) (*bmp.PixelStore, error) {
	return Apply(src, EmbossKernel(), border)
}

func Sharpen(src *bmp.PixelStore, border Border) (*bmp.PixelStore, error) {
	return Apply(src, SharpenKernel(), border)
}

// truncate rounds toward zero and saturates; NaN maps to 0.
func truncate(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
