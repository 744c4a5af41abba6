package equalize

// ToYUV converts with the analog broadcast (BT.601) coefficients.
func ToYUV(r, g, b uint8) (y, u, v float64) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	y = 0.299*fr + 0.587*fg + 0.114*fb
	u = -0.14713*fr - 0.28886*fg + 0.436*fb
	v = 0.615*fr - 0.51499*fg - 0.10001*fb
	return y, u, v
}

// FromYUV is the inverse of ToYUV. Each channel is truncated toward zero and
// then clamped to [0, 255].
func FromYUV(y, u, v float64) (r, g, b uint8) {
	r = channel(y + 1.13983*v)
	g = channel(y - 0.39465*u - 0.58060*v)
	b = channel(y + 2.03211*u)
	return r, g, b
}

// Level bins a luma value: it is narrowed to float32, clamped to [0, 255] and
// truncated. The float32 step puts gray sums such as 99.99999999999999 back
// on their integer.
func Level(y float64) uint8 {
	return channel(float64(float32(y)))
}

func channel(f float64) uint8 {
	if !(f > 0) {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}
