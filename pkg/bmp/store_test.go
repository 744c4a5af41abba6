package bmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPixelStore(t *testing.T) {
	s, err := NewPixelStore(4, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 36, s.Len())
	assert.False(t, s.Empty())

	_, err = NewPixelStore(0, 3, 1)
	assert.ErrorIs(t, err, ErrDegenerateImage)
	_, err = NewPixelStore(3, -1, 1)
	assert.ErrorIs(t, err, ErrDegenerateImage)
	_, err = NewPixelStore(3, 3, 4)
	assert.ErrorIs(t, err, ErrUnsupportedDepth)
	_, err = NewPixelStore(1<<16, 1<<16, 1)
	assert.ErrorIs(t, err, ErrAllocation)

	var nilStore *PixelStore
	assert.True(t, nilStore.Empty())
}

func TestPixelStore_Accessors(t *testing.T) {
	s, err := NewPixelStore(3, 2, 3)
	require.NoError(t, err)

	s.SetRGB(2, 1, 10, 20, 30)
	r, g, b := s.RGB(2, 1)
	assert.Equal(t, []uint8{10, 20, 30}, []uint8{r, g, b})
	assert.Equal(t, (1*3+2)*3, s.Offset(2, 1))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 10, 20, 30}, s.Row(1))

	s.SetGray(0, 0, 99)
	assert.Equal(t, []byte{99, 99, 99}, s.At(0, 0))

	assert.Panics(t, func() { s.At(3, 0) })
	assert.Panics(t, func() { s.At(0, -1) })

	x, y := s.Clamp(-4, 9)
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y)
}

func TestPixelStore_GrayAccessors(t *testing.T) {
	s, err := NewPixelStore(2, 2, 1)
	require.NoError(t, err)

	s.SetRGB(1, 0, 30, 60, 91)
	assert.Equal(t, uint8(60), s.Gray(1, 0))
	r, g, b := s.RGB(1, 0)
	assert.Equal(t, []uint8{60, 60, 60}, []uint8{r, g, b})
}

func TestPixelStore_CloneIsIndependent(t *testing.T) {
	s, err := NewPixelStore(2, 2, 1)
	require.NoError(t, err)
	c := s.Clone()
	c.Pix[0] = 7

	assert.Equal(t, byte(0), s.Pix[0])
	assert.False(t, s.Equal(c))
	assert.True(t, s.SameGeometry(c))
}

func TestNewImage(t *testing.T) {
	gray, err := NewImage(5, 3, 8)
	require.NoError(t, err)
	assert.Equal(t, uint32(1078), gray.FileHeader.OffBits)
	assert.Equal(t, uint32(1078+8*3), gray.FileHeader.Size)
	assert.Equal(t, uint32(24), gray.InfoHeader.SizeImage)
	assert.Len(t, gray.Palette, 256)
	assert.Equal(t, RGBQuad{Blue: 200, Green: 200, Red: 200}, gray.Palette[200])
	assert.True(t, gray.IsGray())
	require.NoError(t, gray.Validate())

	rgb, err := NewImage(5, 3, 24)
	require.NoError(t, err)
	assert.Equal(t, uint32(54), rgb.FileHeader.OffBits)
	assert.Equal(t, uint32(54+16*3), rgb.FileHeader.Size)
	assert.Equal(t, 24, rgb.Depth())
	assert.Nil(t, rgb.Palette)
	require.NoError(t, rgb.Validate())

	_, err = NewImage(5, 3, 16)
	assert.ErrorIs(t, err, ErrUnsupportedDepth)
	_, err = NewImage(0, 3, 24)
	assert.ErrorIs(t, err, ErrDegenerateImage)
}

func TestImage_ReplacePixels(t *testing.T) {
	img, err := NewImage(4, 4, 24)
	require.NoError(t, err)

	next := img.Pixels.Clone()
	next.Pix[0] = 200
	require.NoError(t, img.ReplacePixels(next))
	assert.Same(t, next, img.Pixels)

	wrong, err := NewPixelStore(4, 3, 3)
	require.NoError(t, err)
	assert.Error(t, img.ReplacePixels(wrong))
	assert.Error(t, img.ReplacePixels(nil))
	assert.Same(t, next, img.Pixels)
}

func TestImage_Clone(t *testing.T) {
	img, err := NewImage(2, 2, 8)
	require.NoError(t, err)
	c := img.Clone()
	c.Pixels.Pix[0] = 1
	c.Palette[0].Red = 9

	assert.Equal(t, byte(0), img.Pixels.Pix[0])
	assert.Equal(t, uint8(0), img.Palette[0].Red)
}
