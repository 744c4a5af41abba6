// Package filter implements the per-pixel point operations and the square
// kernel convolutions applied to a bmp.PixelStore.
//
// Point operations work in place on every channel. Convolutions read from the
// input store and return a new one, so a pass never observes its own output.
package filter

import (
	"github.com/jpfielding/bmp.go/pkg/bmp"
)

// Negative inverts every sample: out = 255 - in.
func Negative(s *bmp.PixelStore) error {
	if s.Empty() {
		return ErrEmptyStore
	}
	for i, v := range s.Pix {
		s.Pix[i] = 255 - v
	}
	return nil
}

// Brightness adds delta to every sample, saturating at 0 and 255.
func Brightness(s *bmp.PixelStore, delta int) error {
	if s.Empty() {
		return ErrEmptyStore
	}
	for i, v := range s.Pix {
		s.Pix[i] = clampByte(int(v) + delta)
	}
	return nil
}

// Threshold maps samples >= t to 255 and everything else to 0. It is defined
// for gray (single channel) stores; convert color with Grayscale first.
func Threshold(s *bmp.PixelStore, t int) error {
	if s.Empty() {
		return ErrEmptyStore
	}
	if s.Channels != 1 {
		return ErrNotGrayscale
	}
	for i, v := range s.Pix {
		if int(v) >= t {
			s.Pix[i] = 255
		} else {
			s.Pix[i] = 0
		}
	}
	return nil
}

// Grayscale replaces each RGB pixel by the truncated mean (R+G+B)/3 on all
// three channels. Gray stores are left untouched.
func Grayscale(s *bmp.PixelStore) error {
	if s.Empty() {
		return ErrEmptyStore
	}
	if s.Channels == 1 {
		return nil
	}
	for i := 0; i+2 < len(s.Pix); i += 3 {
		avg := uint8((int(s.Pix[i]) + int(s.Pix[i+1]) + int(s.Pix[i+2])) / 3)
		s.Pix[i], s.Pix[i+1], s.Pix[i+2] = avg, avg, avg
	}
	return nil
}

// GrayscaleLuma is Grayscale with the ITU-R 601-2 luma weights.
func GrayscaleLuma(s *bmp.PixelStore) error {
	if s.Empty() {
		return ErrEmptyStore
	}
	if s.Channels == 1 {
		return nil
	}
	for i := 0; i+2 < len(s.Pix); i += 3 {
		l := uint8((int(s.Pix[i])*299 + int(s.Pix[i+1])*587 + int(s.Pix[i+2])*114) / 1000)
		s.Pix[i], s.Pix[i+1], s.Pix[i+2] = l, l, l
	}
	return nil
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
