package equalize

import (
	"testing"

	"github.com/jpfielding/bmp.go/pkg/bmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayImage(t *testing.T, width, height int, pix ...byte) *bmp.Image {
	t.Helper()
	img, err := bmp.NewImage(width, height, 8)
	require.NoError(t, err)
	require.Len(t, pix, img.Pixels.Len())
	copy(img.Pixels.Pix, pix)
	return img
}

func TestHistogramAndCDF(t *testing.T) {
	hist := Histogram([]byte{3, 3, 0, 255, 3})
	assert.Equal(t, 1, hist[0])
	assert.Equal(t, 3, hist[3])
	assert.Equal(t, 1, hist[255])

	cdf := CDF(hist)
	assert.Equal(t, 1, cdf[0])
	assert.Equal(t, 1, cdf[2])
	assert.Equal(t, 4, cdf[3])
	assert.Equal(t, 5, cdf[255])
	assert.Equal(t, 1, CDFMin(cdf))

	assert.Equal(t, 0, CDFMin(CDF([Levels]int{})))
}

func TestEqualize_TwoLevels(t *testing.T) {
	img := grayImage(t, 2, 2, 10, 10, 200, 200)
	require.NoError(t, Equalize(img))
	assert.Equal(t, []byte{0, 0, 255, 255}, img.Pixels.Pix)
}

func TestMap_MonotonicAndSpansRange(t *testing.T) {
	values := make([]byte, 0, 64)
	for i := 0; i < 64; i++ {
		values = append(values, byte(60+i%20*3))
	}
	m := Map(Histogram(values))

	for i := 1; i < Levels; i++ {
		require.GreaterOrEqual(t, m[i], m[i-1], "level %d", i)
	}
	assert.Equal(t, uint8(0), m[60])
	assert.Equal(t, uint8(255), m[60+19*3])

	img := grayImage(t, 8, 8, values...)
	require.NoError(t, Equalize(img))
	out := CDF(Histogram(img.Pixels.Pix))
	for i := 1; i < Levels; i++ {
		require.GreaterOrEqual(t, out[i], out[i-1])
	}
	assert.Equal(t, 64, out[255])
	s, err := Stats(img.Pixels)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), s.Min)
	assert.Equal(t, uint8(255), s.Max)
}

func TestMap_Rounding(t *testing.T) {
	// cdf 2,3,4 over levels 50,100,150: (3-2)/(4-2)*255 = 127.5
	m := Map(Histogram([]byte{50, 50, 100, 150}))
	assert.Equal(t, uint8(0), m[50])
	assert.Equal(t, uint8(128), m[100])
	assert.Equal(t, uint8(255), m[150])
	assert.Equal(t, uint8(0), m[10])
}

func TestMap_DegenerateHistograms(t *testing.T) {
	assert.Equal(t, Identity(), Map([Levels]int{}))
	assert.Equal(t, Identity(), Map(Histogram([]byte{77, 77, 77})))

	img := grayImage(t, 3, 1, 77, 77, 77)
	require.NoError(t, Equalize(img))
	assert.Equal(t, []byte{77, 77, 77}, img.Pixels.Pix)
}

func TestYUV_RoundTrip(t *testing.T) {
	colors := [][3]uint8{
		{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0},
		{0, 0, 255}, {12, 200, 97}, {128, 64, 32},
	}
	for _, c := range colors {
		r, g, b := FromYUV(ToYUV(c[0], c[1], c[2]))
		assert.InDelta(t, c[0], r, 1, "%v", c)
		assert.InDelta(t, c[1], g, 1, "%v", c)
		assert.InDelta(t, c[2], b, 1, "%v", c)
	}

	y, u, v := ToYUV(100, 100, 100)
	assert.InDelta(t, 100, y, 1e-9)
	// the published U row sums to 1e-5, not 0
	assert.InDelta(t, 0, u, 0.01)
	assert.InDelta(t, 0, v, 1e-9)
	assert.Equal(t, uint8(100), Level(y))
}

func TestFromYUV_Clamps(t *testing.T) {
	r, g, b := FromYUV(300, 0, 0)
	assert.Equal(t, []uint8{255, 255, 255}, []uint8{r, g, b})
	r, g, b = FromYUV(-20, 0, 0)
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{r, g, b})
	// truncation toward zero
	r, _, _ = FromYUV(10.9, 0, 0)
	assert.Equal(t, uint8(10), r)
	assert.Equal(t, uint8(255), Level(1e6))
	assert.Equal(t, uint8(0), Level(-3))
}

func TestEqualize_ColorKeepsGrayNeutral(t *testing.T) {
	img, err := bmp.NewImage(2, 2, 24)
	require.NoError(t, err)
	for i, v := range []uint8{50, 50, 100, 150} {
		img.Pixels.Pix[i*3], img.Pixels.Pix[i*3+1], img.Pixels.Pix[i*3+2] = v, v, v
	}

	require.NoError(t, Equalize(img))
	want := []uint8{0, 0, 128, 255}
	for i, w := range want {
		r, g, b := img.Pixels.RGB(i%2, i/2)
		assert.InDelta(t, w, r, 1, "pixel %d", i)
		assert.InDelta(t, w, g, 1, "pixel %d", i)
		assert.InDelta(t, w, b, 1, "pixel %d", i)
	}
}

func TestEqualize_ColorTruncatesLumaBins(t *testing.T) {
	// green's luma is 149.685: it shares no bin with the gray 150
	y, _, _ := ToYUV(0, 255, 0)
	assert.Equal(t, uint8(149), Level(y))

	img, err := bmp.NewImage(3, 1, 24)
	require.NoError(t, err)
	copy(img.Pixels.Pix, []uint8{
		0, 0, 0,
		0, 255, 0,
		150, 150, 150,
	})
	require.NoError(t, Equalize(img))

	// bins 0, 149, 150 remap to 0, 128, 255
	r, g, b := img.Pixels.RGB(0, 0)
	assert.Equal(t, []uint8{0, 0, 0}, []uint8{r, g, b})
	r, g, b = img.Pixels.RGB(1, 0)
	assert.Equal(t, []uint8{0, 233, 0}, []uint8{r, g, b})
	r, g, b = img.Pixels.RGB(2, 0)
	assert.InDelta(t, 255, r, 1)
	assert.InDelta(t, 255, g, 1)
	assert.InDelta(t, 255, b, 1)
}

func TestEqualize_ColorStretchesLuma(t *testing.T) {
	img, err := bmp.NewImage(4, 1, 24)
	require.NoError(t, err)
	pix := []uint8{
		90, 60, 60,
		100, 70, 70,
		110, 80, 80,
		120, 90, 90,
	}
	copy(img.Pixels.Pix, pix)

	before, err := Stats(img.Pixels)
	require.NoError(t, err)
	require.NoError(t, Equalize(img))
	after, err := Stats(img.Pixels)
	require.NoError(t, err)

	assert.Less(t, after.Min, before.Min)
	assert.Greater(t, after.Max, before.Max)
	// red stays the dominant channel wherever the pixel is not saturated or black
	r, g, b := img.Pixels.RGB(1, 0)
	assert.Greater(t, r, g)
	assert.InDelta(t, g, b, 1)
}

func TestEqualize_Errors(t *testing.T) {
	assert.ErrorIs(t, Equalize(nil), bmp.ErrDegenerateImage)
	assert.ErrorIs(t, Equalize(&bmp.Image{}), bmp.ErrDegenerateImage)

	odd := &bmp.PixelStore{Width: 1, Height: 1, Channels: 2, Pix: []byte{1, 2}}
	assert.ErrorIs(t, Store(odd), bmp.ErrUnsupportedDepth)
	assert.Equal(t, []byte{1, 2}, odd.Pix)

	_, err := Stats(nil)
	assert.ErrorIs(t, err, bmp.ErrDegenerateImage)
}

func TestStats(t *testing.T) {
	img := grayImage(t, 2, 2, 10, 10, 200, 200)
	s, err := Stats(img.Pixels)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Samples)
	assert.Equal(t, uint8(10), s.Min)
	assert.Equal(t, uint8(200), s.Max)
	assert.InDelta(t, 105.0, s.Mean, 1e-9)
	assert.Equal(t, 2, s.Histogram[10])
	assert.Equal(t, []byte{10, 10, 200, 200}, img.Pixels.Pix)
}
