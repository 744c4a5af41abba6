package bmp

import (
	"fmt"
	"io"
)

// Padding is the number of zero bytes that round a scanline up to 4 bytes.
func Padding(bytesPerPixel, width int) int {
	return (4 - (bytesPerPixel*width)%4) % 4
}

// Stride is the on-disk length of one scanline including padding.
func Stride(bytesPerPixel, width int) int {
	return bytesPerPixel*width + Padding(bytesPerPixel, width)
}

// rowIndex maps the i-th scanline on disk to its in-memory row.
func rowIndex(i, height int, o Orientation) int {
	if o == TopDown {
		return i
	}
	return height - 1 - i
}

// readPixels consumes the pixel array described by ih. The reader must be
// positioned at the pixel data offset.
func readPixels(r io.Reader, ih InfoHeader) (*PixelStore, error) {
	store, err := NewPixelStore(int(ih.Width), ih.AbsHeight(), ih.BytesPerPixel())
	if err != nil {
		return nil, err
	}
	o := ih.Orientation()
	line := make([]byte, Stride(store.Channels, store.Width))

	for i := 0; i < store.Height; i++ {
		if _, err := io.ReadFull(r, line); err != nil {
			return nil, fmt.Errorf("%w: scanline %d of %d: %v", ErrTruncated, i, store.Height, err)
		}
		dst := store.Row(rowIndex(i, store.Height, o))
		if store.Channels == 1 {
			copy(dst, line[:store.Width])
			continue
		}
		// B,G,R on disk
		for x := 0; x < store.Width; x++ {
			j := x * 3
			dst[j], dst[j+1], dst[j+2] = line[j+2], line[j+1], line[j]
		}
	}
	return store, nil
}

// writePixels emits the pixel array in the given row order with zeroed padding.
func writePixels(w io.Writer, store *PixelStore, o Orientation) error {
	line := make([]byte, Stride(store.Channels, store.Width))

	for i := 0; i < store.Height; i++ {
		src := store.Row(rowIndex(i, store.Height, o))
		if store.Channels == 1 {
			copy(line, src)
		} else {
			for x := 0; x < store.Width; x++ {
				j := x * 3
				line[j], line[j+1], line[j+2] = src[j+2], src[j+1], src[j]
			}
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("writing scanline %d: %w", i, err)
		}
	}
	return nil
}
