// Package equalize stretches image contrast by remapping intensities through
// their cumulative distribution.
//
// Gray images are remapped directly. Color images are converted to Y/U/V,
// the Y channel alone is remapped, and the color is rebuilt from the new Y and
// the untouched chrominance so hue survives the stretch.
package equalize

import "math"

// Levels is the number of histogram bins.
const Levels = 256

// Histogram counts occurrences of every intensity in values.
func Histogram(values []byte) [Levels]int {
	var h [Levels]int
	for _, v := range values {
		h[v]++
	}
	return h
}

// CDF is the inclusive running total of hist. The last bin is the sample count.
func CDF(hist [Levels]int) [Levels]int {
	var cdf [Levels]int
	total := 0
	for i, n := range hist {
		total += n
		cdf[i] = total
	}
	return cdf
}

// CDFMin is the smallest non-zero value of cdf, or 0 when cdf is all zeros.
func CDFMin(cdf [Levels]int) int {
	for _, c := range cdf {
		if c > 0 {
			return c
		}
	}
	return 0
}

// Map builds the remap table for hist:
//
//	out[i] = round((cdf[i] - cdfMin) / (N - cdfMin) * 255)
//
// with out[i] = 0 below the first occupied level. An empty histogram or one
// holding a single intensity (N == cdfMin) yields the identity table.
func Map(hist [Levels]int) [Levels]uint8 {
	cdf := CDF(hist)
	n := cdf[Levels-1]
	cdfMin := CDFMin(cdf)
	if n == 0 || n == cdfMin {
		return Identity()
	}

	var m [Levels]uint8
	span := float64(n - cdfMin)
	for i, c := range cdf {
		if c < cdfMin {
			continue
		}
		m[i] = uint8(math.Round(float64(c-cdfMin) / span * 255))
	}
	return m
}

// Identity is the table that maps every level to itself.
func Identity() [Levels]uint8 {
	var m [Levels]uint8
	for i := range m {
		m[i] = uint8(i)
	}
	return m
}
