package jpegls

import "golang.org/x/exp/constraints"

// scanParams describes one predictive scan over interleaved samples.
type scanParams struct {
	width      int
	height     int
	components int

	// near is the tolerance in sample units (already scaled for 16-bit).
	near int
	// maxVal is the largest value of the sample container.
	maxVal int
	// seed predicts the first pixel of each component.
	seed int
}

// predictAt predicts sample i at (x, y) from reconstructed neighbours of the
// same component.
func predictAt[T constraints.Unsigned](rec []T, i, x, y int, p *scanParams) int {
	stride := p.width * p.components
	switch {
	case x == 0 && y == 0:
		return p.seed
	case y == 0:
		return int(rec[i-p.components])
	case x == 0:
		return int(rec[i-stride])
	}
	a := int(rec[i-p.components])
	b := int(rec[i-stride])
	c := int(rec[i-stride-p.components])
	return clamp(Predict(a, b, c), 0, p.maxVal)
}

// encodeScan returns one residual per sample in the container type.
// Lossless residuals wrap at the container width; near-lossless residuals
// are quantized bins stored in two's complement, and the reconstruction they
// imply feeds every later prediction.
func encodeScan[T constraints.Unsigned](src []T, p *scanParams) []T {
	out := make([]T, len(src))
	rec := src
	step := 2*p.near + 1
	if p.near > 0 {
		rec = make([]T, len(src))
	}

	i := 0
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			for c := 0; c < p.components; c++ {
				pred := predictAt(rec, i, x, y, p)
				if p.near == 0 {
					out[i] = src[i] - T(pred)
				} else {
					q := quantizeError(int(src[i])-pred, p.near, step)
					out[i] = T(q)
					rec[i] = T(clamp(pred+q*step, 0, p.maxVal))
				}
				i++
			}
		}
	}
	return out
}

// decodeScan mirrors encodeScan, predicting from the output buffer.
func decodeScan[T constraints.Unsigned](residuals []T, p *scanParams) []T {
	out := make([]T, len(residuals))
	step := 2*p.near + 1

	i := 0
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			for c := 0; c < p.components; c++ {
				pred := predictAt(out, i, x, y, p)
				if p.near == 0 {
					out[i] = T(pred) + residuals[i]
				} else {
					q := int(residuals[i])
					if q > p.maxVal/2 {
						q -= p.maxVal + 1
					}
					out[i] = T(clamp(pred+q*step, 0, p.maxVal))
				}
				i++
			}
		}
	}
	return out
}
