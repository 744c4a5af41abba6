package bmp

import (
	"encoding/binary"
	"fmt"
)

// Layout of the packed on-disk headers
// Reference: https://learn.microsoft.com/en-us/windows/win32/gdi/bitmap-storage
const (
	FileHeaderSize   = 14
	InfoHeaderSize   = 40
	HeaderSize       = FileHeaderSize + InfoHeaderSize
	PaletteEntries   = 256
	PaletteEntrySize = 4
)

// Signature is the two byte magic every bitmap starts with ("BM", 0x4d42 little-endian)
var Signature = [2]byte{'B', 'M'}

// FileHeader is the 14 byte BITMAPFILEHEADER.
type FileHeader struct {
	Type      [2]byte // must equal Signature
	Size      uint32  // size of the whole file in bytes
	Reserved1 uint16  // round-tripped unchanged
	Reserved2 uint16  // round-tripped unchanged
	OffBits   uint32  // offset from the start of the file to the pixel array
}

// InfoHeader is the 40 byte BITMAPINFOHEADER.
type InfoHeader struct {
	Size            uint32 // must be 40
	Width           int32  // pixels
	Height          int32  // pixels, negative for top-down storage
	Planes          uint16 // must be 1
	BitCount        uint16 // 8 or 24
	Compression     uint32 // must be 0 (BI_RGB)
	SizeImage       uint32 // bytes of pixel data, may be 0 for BI_RGB
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32 // palette entries, 0 means 2^BitCount
	ColorsImportant uint32
}

// Orientation is the on-disk row order, resolved once from the sign of the height.
type Orientation int

const (
	BottomUp Orientation = iota
	TopDown
)

func (o Orientation) String() string {
	if o == TopDown {
		return "top-down"
	}
	return "bottom-up"
}

// BytesPerPixel returns 1 for paletted images and 3 for RGB.
func (ih InfoHeader) BytesPerPixel() int {
	return int(ih.BitCount) / 8
}

// AbsHeight is the row count regardless of storage order.
func (ih InfoHeader) AbsHeight() int {
	h := int64(ih.Height)
	if h < 0 {
		h = -h
	}
	return int(h)
}

// Orientation derives the row order from the height sign.
func (ih InfoHeader) Orientation() Orientation {
	if ih.Height < 0 {
		return TopDown
	}
	return BottomUp
}

// PaletteLen is the number of palette entries stored after the info header.
func (ih InfoHeader) PaletteLen() int {
	if ih.BitCount != 8 {
		return 0
	}
	if ih.ColorsUsed == 0 {
		return PaletteEntries
	}
	return int(ih.ColorsUsed)
}

// PixelDataStart is the first byte past the headers and palette.
func (ih InfoHeader) PixelDataStart() int {
	return HeaderSize + ih.PaletteLen()*PaletteEntrySize
}

// DecodeHeader parses the 54 byte header block. The signature is checked before
// anything else so that a short non-bitmap input still reports ErrFormat.
func DecodeHeader(b []byte) (FileHeader, InfoHeader, error) {
	var fh FileHeader
	var ih InfoHeader

	if len(b) < 2 {
		return fh, ih, fmt.Errorf("%w: need %d header bytes, have %d", ErrTruncated, HeaderSize, len(b))
	}
	if b[0] != Signature[0] || b[1] != Signature[1] {
		return fh, ih, fmt.Errorf("%w: signature %q is not a bitmap", ErrFormat, b[:2])
	}
	if len(b) < HeaderSize {
		return fh, ih, fmt.Errorf("%w: need %d header bytes, have %d", ErrTruncated, HeaderSize, len(b))
	}

	le := binary.LittleEndian
	fh.Type = [2]byte{b[0], b[1]}
	fh.Size = le.Uint32(b[2:6])
	fh.Reserved1 = le.Uint16(b[6:8])
	fh.Reserved2 = le.Uint16(b[8:10])
	fh.OffBits = le.Uint32(b[10:14])

	ih.Size = le.Uint32(b[14:18])
	ih.Width = int32(le.Uint32(b[18:22]))
	ih.Height = int32(le.Uint32(b[22:26]))
	ih.Planes = le.Uint16(b[26:28])
	ih.BitCount = le.Uint16(b[28:30])
	ih.Compression = le.Uint32(b[30:34])
	ih.SizeImage = le.Uint32(b[34:38])
	ih.XPixelsPerM = int32(le.Uint32(b[38:42]))
	ih.YPixelsPerM = int32(le.Uint32(b[42:46]))
	ih.ColorsUsed = le.Uint32(b[46:50])
	ih.ColorsImportant = le.Uint32(b[50:54])

	if err := validateHeader(fh, ih); err != nil {
		return fh, ih, err
	}
	return fh, ih, nil
}

func validateHeader(fh FileHeader, ih InfoHeader) error {
	if ih.Size != InfoHeaderSize {
		return fmt.Errorf("%w: info header size %d (only %d is supported)", ErrFormat, ih.Size, InfoHeaderSize)
	}
	if ih.Planes != 1 {
		return fmt.Errorf("%w: %d planes", ErrFormat, ih.Planes)
	}
	if ih.BitCount != 8 && ih.BitCount != 24 {
		return fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedDepth, ih.BitCount)
	}
	if ih.Compression != 0 {
		return fmt.Errorf("%w: compression type %d", ErrUnsupportedCompression, ih.Compression)
	}
	if ih.Width <= 0 || ih.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrDegenerateImage, ih.Width, ih.Height)
	}
	if ih.BitCount == 8 && ih.ColorsUsed > PaletteEntries {
		return fmt.Errorf("%w: %d palette entries", ErrFormat, ih.ColorsUsed)
	}
	if int64(fh.OffBits) < int64(ih.PixelDataStart()) {
		return fmt.Errorf("%w: pixel offset %d overlaps headers ending at %d", ErrFormat, fh.OffBits, ih.PixelDataStart())
	}
	if fh.Size != 0 && fh.OffBits > fh.Size {
		return fmt.Errorf("%w: pixel offset %d beyond file size %d", ErrFormat, fh.OffBits, fh.Size)
	}
	return nil
}

// EncodeHeader serializes both headers into the packed 54 byte block.
func EncodeHeader(fh FileHeader, ih InfoHeader) []byte {
	b := make([]byte, HeaderSize)
	le := binary.LittleEndian

	b[0], b[1] = fh.Type[0], fh.Type[1]
	le.PutUint32(b[2:6], fh.Size)
	le.PutUint16(b[6:8], fh.Reserved1)
	le.PutUint16(b[8:10], fh.Reserved2)
	le.PutUint32(b[10:14], fh.OffBits)

	le.PutUint32(b[14:18], ih.Size)
	le.PutUint32(b[18:22], uint32(ih.Width))
	le.PutUint32(b[22:26], uint32(ih.Height))
	le.PutUint16(b[26:28], ih.Planes)
	le.PutUint16(b[28:30], ih.BitCount)
	le.PutUint32(b[30:34], ih.Compression)
	le.PutUint32(b[34:38], ih.SizeImage)
	le.PutUint32(b[38:42], uint32(ih.XPixelsPerM))
	le.PutUint32(b[42:46], uint32(ih.YPixelsPerM))
	le.PutUint32(b[46:50], ih.ColorsUsed)
	le.PutUint32(b[50:54], ih.ColorsImportant)
	return b
}
