package equalize

import (
	"fmt"
	"log/slog"

	"github.com/jpfielding/bmp.go/pkg/bmp"
)

// Equalize stretches the contrast of img in place. Gray images are remapped
// sample by sample, color images through their luma.
func Equalize(img *bmp.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", bmp.ErrDegenerateImage)
	}
	return Store(img.Pixels)
}

// Store equalizes a pixel store in place. Nothing is written until every
// output sample has been computed.
func Store(s *bmp.PixelStore) error {
	if s.Empty() {
		return fmt.Errorf("%w: no pixels to equalize", bmp.ErrDegenerateImage)
	}
	switch s.Channels {
	case 1:
		gray(s)
	case 3:
		color(s)
	default:
		return fmt.Errorf("%w: %d channels", bmp.ErrUnsupportedDepth, s.Channels)
	}
	return nil
}

func gray(s *bmp.PixelStore) {
	hist := Histogram(s.Pix)
	m := Map(hist)
	for i, v := range s.Pix {
		s.Pix[i] = m[v]
	}
	slog.Debug("equalized gray", "samples", len(s.Pix), "cdf_min", CDFMin(CDF(hist)))
}

func color(s *bmp.PixelStore) {
	n := s.Width * s.Height
	// chrominance is kept at float32 precision, like the luma bins
	us := make([]float32, n)
	vs := make([]float32, n)
	levels := make([]byte, n)
	for i := 0; i < n; i++ {
		p := i * 3
		y, u, v := ToYUV(s.Pix[p], s.Pix[p+1], s.Pix[p+2])
		us[i], vs[i] = float32(u), float32(v)
		levels[i] = Level(y)
	}

	hist := Histogram(levels)
	m := Map(hist)

	out := make([]byte, len(s.Pix))
	for i := 0; i < n; i++ {
		p := i * 3
		out[p], out[p+1], out[p+2] = FromYUV(float64(m[levels[i]]), float64(us[i]), float64(vs[i]))
	}
	copy(s.Pix, out)
	slog.Debug("equalized luma", "pixels", n, "cdf_min", CDFMin(CDF(hist)))
}

// Summary describes the intensity distribution of a store. Color stores are
// summarized through their luma.
type Summary struct {
	Samples   int
	Min       uint8
	Max       uint8
	Mean      float64
	Histogram [Levels]int
}

// Stats summarizes s without modifying it.
func Stats(s *bmp.PixelStore) (Summary, error) {
	if s.Empty() {
		return Summary{}, fmt.Errorf("%w: no pixels", bmp.ErrDegenerateImage)
	}
	var levels []byte
	switch s.Channels {
	case 1:
		levels = s.Pix
	case 3:
		levels = make([]byte, s.Width*s.Height)
		for i := range levels {
			p := i * 3
			y, _, _ := ToYUV(s.Pix[p], s.Pix[p+1], s.Pix[p+2])
			levels[i] = Level(y)
		}
	default:
		return Summary{}, fmt.Errorf("%w: %d channels", bmp.ErrUnsupportedDepth, s.Channels)
	}

	sum := Summary{Samples: len(levels), Histogram: Histogram(levels)}
	total := 0
	first := true
	for v, c := range sum.Histogram {
		if c == 0 {
			continue
		}
		if first {
			sum.Min = uint8(v)
			first = false
		}
		sum.Max = uint8(v)
		total += v * c
	}
	sum.Mean = float64(total) / float64(sum.Samples)
	return sum, nil
}
