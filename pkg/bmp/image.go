// Package bmp reads and writes Windows bitmaps holding 8-bit paletted or
// 24-bit uncompressed RGB pixels.
//
// Decoded pixels live in a PixelStore: a flat, row-major buffer whose row 0
// is the visually topmost row whatever the on-disk order was. Scanline padding
// exists only on disk.
//
// Basic usage:
//
//	img, err := bmp.ReadFile("/path/to/lena.bmp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	r, g, b := img.Pixels.RGB(0, 0)
//
//	if _, err := bmp.WriteFile("/path/to/copy.bmp", img); err != nil {
//		log.Fatal(err)
//	}
package bmp

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"slices"
)

// RGBQuad is one palette entry in on-disk order.
type RGBQuad struct {
	Blue, Green, Red, Reserved uint8
}

// Image is a decoded bitmap. It is the single owner of its PixelStore;
// transforms either mutate Pixels in place or install a new store through
// ReplacePixels.
type Image struct {
	FileHeader  FileHeader
	InfoHeader  InfoHeader
	Orientation Orientation
	Palette     []RGBQuad // 8-bit only
	Pixels      *PixelStore

	// bytes between the end of the palette and the pixel offset
	gap []byte
}

// NewImage allocates a bottom-up image with consistent headers. 8-bit images
// get a 256 level gray ramp palette.
func NewImage(width, height, depth int) (*Image, error) {
	if depth != 8 && depth != 24 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedDepth, depth)
	}
	store, err := NewPixelStore(width, height, depth/8)
	if err != nil {
		return nil, err
	}

	img := &Image{
		FileHeader: FileHeader{Type: Signature},
		InfoHeader: InfoHeader{
			Size:     InfoHeaderSize,
			Width:    int32(width),
			Height:   int32(height),
			Planes:   1,
			BitCount: uint16(depth),
		},
		Orientation: BottomUp,
		Pixels:      store,
	}
	if depth == 8 {
		img.Palette = GrayPalette()
		img.InfoHeader.ColorsUsed = PaletteEntries
	}
	img.SyncHeaders()
	return img, nil
}

// GrayPalette is the identity ramp where index i is gray level i.
func GrayPalette() []RGBQuad {
	p := make([]RGBQuad, PaletteEntries)
	for i := range p {
		v := uint8(i)
		p[i] = RGBQuad{Blue: v, Green: v, Red: v}
	}
	return p
}

func (img *Image) Width() int  { return img.Pixels.Width }
func (img *Image) Height() int { return img.Pixels.Height }

// Depth is the bits per pixel, 8 or 24.
func (img *Image) Depth() int { return int(img.InfoHeader.BitCount) }

// IsGray reports whether the image stores one palette index per pixel.
func (img *Image) IsGray() bool { return img.Pixels.Channels == 1 }

// SyncHeaders recomputes the size and offset fields from the pixel store,
// palette, and orientation.
func (img *Image) SyncHeaders() {
	ih := &img.InfoHeader
	s := img.Pixels

	ih.Width = int32(s.Width)
	ih.Height = int32(s.Height)
	if img.Orientation == TopDown {
		ih.Height = -ih.Height
	}
	if s.Channels == 1 && (ih.ColorsUsed != 0 || len(img.Palette) != PaletteEntries) {
		ih.ColorsUsed = uint32(len(img.Palette))
	}
	ih.SizeImage = uint32(Stride(s.Channels, s.Width) * s.Height)

	img.FileHeader.OffBits = uint32(ih.PixelDataStart() + len(img.gap))
	img.FileHeader.Size = img.FileHeader.OffBits + ih.SizeImage
}

// ReplacePixels installs a new store of identical geometry, discarding the old one.
func (img *Image) ReplacePixels(s *PixelStore) error {
	if s == nil {
		return fmt.Errorf("%w: nil replacement store", ErrDegenerateImage)
	}
	if !img.Pixels.SameGeometry(s) {
		return fmt.Errorf("%w: replacement store %dx%dx%d does not match %dx%dx%d", ErrFormat,
			s.Width, s.Height, s.Channels, img.Pixels.Width, img.Pixels.Height, img.Pixels.Channels)
	}
	if len(s.Pix) != img.Pixels.Len() {
		return fmt.Errorf("%w: replacement store holds %d samples, want %d", ErrTruncated, len(s.Pix), img.Pixels.Len())
	}
	img.Pixels = s
	return nil
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	c := *img
	c.Palette = slices.Clone(img.Palette)
	c.Pixels = img.Pixels.Clone()
	c.gap = bytes.Clone(img.gap)
	return &c
}

// Validate checks that headers, palette, and store agree before encoding.
func (img *Image) Validate() error {
	if img == nil || img.Pixels.Empty() {
		return fmt.Errorf("%w: no pixel data", ErrDegenerateImage)
	}
	ih := img.InfoHeader
	if int(ih.Width) != img.Pixels.Width || ih.AbsHeight() != img.Pixels.Height {
		return fmt.Errorf("%w: header %dx%d does not match pixels %dx%d", ErrFormat,
			ih.Width, ih.AbsHeight(), img.Pixels.Width, img.Pixels.Height)
	}
	if ih.BytesPerPixel() != img.Pixels.Channels {
		return fmt.Errorf("%w: %d bits per pixel with %d channel store", ErrUnsupportedDepth, ih.BitCount, img.Pixels.Channels)
	}
	if len(img.Pixels.Pix) != img.Pixels.Width*img.Pixels.Height*img.Pixels.Channels {
		return fmt.Errorf("%w: store holds %d samples", ErrTruncated, len(img.Pixels.Pix))
	}
	if ih.Orientation() != img.Orientation {
		return fmt.Errorf("%w: height sign disagrees with %s orientation", ErrFormat, img.Orientation)
	}
	if img.Pixels.Channels == 1 && len(img.Palette) != ih.PaletteLen() {
		return fmt.Errorf("%w: palette has %d entries, header declares %d", ErrFormat, len(img.Palette), ih.PaletteLen())
	}
	if int(img.FileHeader.OffBits) != ih.PixelDataStart()+len(img.gap) {
		return fmt.Errorf("%w: pixel offset %d, layout puts pixels at %d", ErrFormat,
			img.FileHeader.OffBits, ih.PixelDataStart()+len(img.gap))
	}
	return nil
}

// ToImage converts to the standard library image model: *image.Paletted for
// 8-bit and *image.RGBA for 24-bit.
func (img *Image) ToImage() image.Image {
	s := img.Pixels
	rect := image.Rect(0, 0, s.Width, s.Height)

	if s.Channels == 1 {
		pal := make(color.Palette, PaletteEntries)
		for i := range pal {
			pal[i] = color.RGBA{A: 0xff}
		}
		for i, q := range img.Palette {
			pal[i] = color.RGBA{R: q.Red, G: q.Green, B: q.Blue, A: 0xff}
		}
		out := image.NewPaletted(rect, pal)
		copy(out.Pix, s.Pix)
		return out
	}

	out := image.NewRGBA(rect)
	for i, j := 0, 0; i < len(s.Pix); i, j = i+3, j+4 {
		out.Pix[j] = s.Pix[i]
		out.Pix[j+1] = s.Pix[i+1]
		out.Pix[j+2] = s.Pix[i+2]
		out.Pix[j+3] = 0xff
	}
	return out
}
