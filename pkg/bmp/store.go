package bmp

import (
	"bytes"
	"fmt"
)

// MaxPixels bounds allocations made from untrusted header dimensions.
const MaxPixels = 1 << 28

// PixelStore is an owned width x height matrix of pixel samples. Rows are
// contiguous, left to right, row 0 is the visually topmost row. A store holds
// either 1 channel (palette index / gray level) or 3 channels (R, G, B).
// Row padding never appears here.
type PixelStore struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// NewPixelStore allocates a zeroed store.
func NewPixelStore(width, height, channels int) (*PixelStore, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDegenerateImage, width, height)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedDepth, channels)
	}
	if int64(width)*int64(height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrAllocation, width, height)
	}
	return &PixelStore{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}, nil
}

// Len is the number of samples (width * height * channels).
func (s *PixelStore) Len() int {
	return len(s.Pix)
}

// Empty reports whether the store has no samples.
func (s *PixelStore) Empty() bool {
	return s == nil || s.Width <= 0 || s.Height <= 0 || len(s.Pix) == 0
}

// Offset returns the index of the first channel of (x, y).
func (s *PixelStore) Offset(x, y int) int {
	return (y*s.Width + x) * s.Channels
}

// InBounds reports whether (x, y) addresses a pixel.
func (s *PixelStore) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

// Clamp pins (x, y) to the nearest valid coordinate.
func (s *PixelStore) Clamp(x, y int) (int, int) {
	return clamp(x, 0, s.Width-1), clamp(y, 0, s.Height-1)
}

// At returns the channels of (x, y) as a slice aliasing the store.
func (s *PixelStore) At(x, y int) []byte {
	if !s.InBounds(x, y) {
		panic(fmt.Sprintf("bmp: pixel (%d,%d) out of range %dx%d", x, y, s.Width, s.Height))
	}
	i := s.Offset(x, y)
	return s.Pix[i : i+s.Channels]
}

// Row returns row y as a slice aliasing the store.
func (s *PixelStore) Row(y int) []byte {
	stride := s.Width * s.Channels
	return s.Pix[y*stride : (y+1)*stride]
}

// Gray returns the single sample of a 1 channel store.
func (s *PixelStore) Gray(x, y int) uint8 {
	return s.At(x, y)[0]
}

// SetGray writes v to every channel of (x, y).
func (s *PixelStore) SetGray(x, y int, v uint8) {
	p := s.At(x, y)
	for c := range p {
		p[c] = v
	}
}

// RGB returns the color of (x, y); a 1 channel store reports its gray level on all three.
func (s *PixelStore) RGB(x, y int) (r, g, b uint8) {
	p := s.At(x, y)
	if s.Channels == 1 {
		return p[0], p[0], p[0]
	}
	return p[0], p[1], p[2]
}

// SetRGB writes a color; a 1 channel store keeps the (R+G+B)/3 average.
func (s *PixelStore) SetRGB(x, y int, r, g, b uint8) {
	p := s.At(x, y)
	if s.Channels == 1 {
		p[0] = uint8((int(r) + int(g) + int(b)) / 3)
		return
	}
	p[0], p[1], p[2] = r, g, b
}

// Clone returns a deep copy.
func (s *PixelStore) Clone() *PixelStore {
	c := *s
	c.Pix = bytes.Clone(s.Pix)
	return &c
}

// SameGeometry reports whether o can stand in for s.
func (s *PixelStore) SameGeometry(o *PixelStore) bool {
	return o != nil && s.Width == o.Width && s.Height == o.Height && s.Channels == o.Channels
}

// Equal compares geometry and samples.
func (s *PixelStore) Equal(o *PixelStore) bool {
	return s.SameGeometry(o) && bytes.Equal(s.Pix, o.Pix)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
