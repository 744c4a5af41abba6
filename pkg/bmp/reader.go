package bmp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config is the header level description of a bitmap, available without
// decoding the pixel array.
type Config struct {
	FileHeader  FileHeader
	InfoHeader  InfoHeader
	Width       int
	Height      int
	Depth       int
	Orientation Orientation
}

// ReadFile decodes a bitmap from disk
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	img, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// ReadConfigFile reads only the headers of a bitmap on disk.
func ReadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig reads and validates the headers, leaving the reader positioned
// just after the info header.
func DecodeConfig(r io.Reader) (Config, error) {
	fh, ih, err := readHeader(r)
	if err != nil {
		return Config{}, err
	}
	return Config{
		FileHeader:  fh,
		InfoHeader:  ih,
		Width:       int(ih.Width),
		Height:      ih.AbsHeight(),
		Depth:       int(ih.BitCount),
		Orientation: ih.Orientation(),
	}, nil
}

// Decode reads a complete 8-bit paletted or 24-bit RGB bitmap. On error no
// Image is returned.
func Decode(r io.Reader) (*Image, error) {
	fh, ih, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	img := &Image{
		FileHeader:  fh,
		InfoHeader:  ih,
		Orientation: ih.Orientation(),
	}

	if n := ih.PaletteLen(); n > 0 {
		pal, err := readPalette(r, n)
		if err != nil {
			return nil, err
		}
		img.Palette = pal
	}

	// Anything between the palette and the pixel array is kept verbatim
	if gap := int64(fh.OffBits) - int64(ih.PixelDataStart()); gap > 0 {
		var buf bytes.Buffer
		if _, err := io.CopyN(&buf, r, gap); err != nil {
			return nil, fmt.Errorf("%w: seeking to pixel offset %d: %v", ErrTruncated, fh.OffBits, err)
		}
		img.gap = buf.Bytes()
	}

	store, err := readPixels(r, ih)
	if err != nil {
		return nil, err
	}
	img.Pixels = store

	warnHeader(fh, ih)
	slog.Debug("decoded bitmap",
		"width", store.Width,
		"height", store.Height,
		"depth", ih.BitCount,
		"orientation", img.Orientation.String(),
		"palette", len(img.Palette))
	return img, nil
}

func readHeader(r io.Reader) (FileHeader, InfoHeader, error) {
	b := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, b)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// let DecodeHeader report signature problems before the short read
		b = b[:n]
	default:
		return FileHeader{}, InfoHeader{}, fmt.Errorf("reading header: %w", err)
	}
	return DecodeHeader(b)
}

func readPalette(r io.Reader, n int) ([]RGBQuad, error) {
	raw := make([]byte, n*PaletteEntrySize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, fmt.Errorf("%w: palette of %d entries: %v", ErrTruncated, n, err)
	}
	pal := make([]RGBQuad, n)
	for i := range pal {
		q := raw[i*PaletteEntrySize:]
		pal[i] = RGBQuad{Blue: q[0], Green: q[1], Red: q[2], Reserved: q[3]}
	}
	return pal, nil
}

// warnHeader logs fields that are accepted but do not match what a writer would produce.
func warnHeader(fh FileHeader, ih InfoHeader) {
	if fh.Reserved1 != 0 || fh.Reserved2 != 0 {
		slog.Warn("Non-zero reserved header fields", "reserved1", fh.Reserved1, "reserved2", fh.Reserved2)
	}
	want := uint32(Stride(ih.BytesPerPixel(), int(ih.Width)) * ih.AbsHeight())
	if ih.SizeImage != 0 && ih.SizeImage != want {
		slog.Warn("Image size field disagrees with geometry", "sizeImage", ih.SizeImage, "expected", want)
	}
}
