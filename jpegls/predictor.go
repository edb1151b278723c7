package jpegls

// MED (Median Edge Detection) predictor for JPEG-LS
// This is the LOCO-I predictor that detects horizontal or vertical edges

// Predict computes the MED prediction for the current pixel
// a = left pixel (West)
// b = top pixel (North)
// c = top-left pixel (North-West)
func Predict(a, b, c int) int {
	if c >= max(a, b) {
		return min(a, b)
	}
	if c <= min(a, b) {
		return max(a, b)
	}
	return a + b - c
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

// quantizeError maps a prediction error to its near-lossless bin:
// (e+near)/step for e >= 0 and (e-near)/step otherwise, truncating.
func quantizeError(e, near, step int) int {
	if e >= 0 {
		return (e + near) / step
	}
	return (e - near) / step
}
