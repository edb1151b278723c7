package jpeg2000

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/cocosip/go-medimg-codec/codec"
)

// The tile payload stands in for the wavelet and EBCOT stages. Lossless
// tiles hold a causal delta of the sample sequence; lossy tiles hold a
// quantization byte followed by right-shifted samples packed at the
// remaining bit width.

// deltaEncode stores the first sample verbatim and then the wrapping
// difference to the previous sample.
func deltaEncode[T constraints.Unsigned](samples []T) []T {
	out := make([]T, len(samples))
	var prev T
	for i, s := range samples {
		out[i] = s - prev
		prev = s
	}
	return out
}

// deltaDecode is the wrapping prefix sum inverting deltaEncode.
func deltaDecode[T constraints.Unsigned](deltas []T) []T {
	out := make([]T, len(deltas))
	var acc T
	for i, d := range deltas {
		acc += d
		out[i] = acc
	}
	return out
}

// quantBits maps a target compression ratio to the number of low bits
// discarded per sample: round(log2(ratio)/2) clamped to 0..bits-1.
func quantBits(ratio float64, bits int) int {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return 0
	}
	q := int(math.Round(math.Log2(ratio) * 0.5))
	switch {
	case q < 0:
		return 0
	case q > bits-1:
		return max(bits-1, 0)
	}
	return q
}

func containerBits(bits int) int {
	if bits <= 8 {
		return 8
	}
	return 16
}

func shiftFor(q, container int) int {
	return min(q, container-1)
}

func encodeLosslessTile(pixels []byte, bits int) []byte {
	if bits <= 8 {
		return deltaEncode(pixels)
	}
	return codec.Bytes16(deltaEncode(codec.Samples16(pixels)))
}

func decodeLosslessTile(payload []byte, bits int) []byte {
	if bits <= 8 {
		return deltaDecode(payload)
	}
	return codec.Bytes16(deltaDecode(codec.Samples16(payload)))
}

func encodeLossyTile(pixels []byte, bits int, ratio float64) []byte {
	q := quantBits(ratio, bits)
	container := containerBits(bits)
	shift := shiftFor(q, container)
	width := container - shift

	var samples []uint16
	if container == 8 {
		samples = make([]uint16, len(pixels))
		for i, p := range pixels {
			samples[i] = uint16(p)
		}
	} else {
		samples = codec.Samples16(pixels)
	}

	bw := newBitWriter(1 + packedLen(len(samples), width))
	bw.buf = append(bw.buf, byte(q))
	for _, s := range samples {
		bw.writeBits(uint32(s>>shift), width)
	}
	return bw.flush()
}

// decodeLossyTile unpacks up to sampleCount samples and shifts them back.
// It may return fewer bytes than the geometry needs when the payload is
// short.
func decodeLossyTile(payload []byte, bits, sampleCount int) []byte {
	container := containerBits(bits)
	shift := shiftFor(int(payload[0]), container)
	width := container - shift
	packed := payload[1:]

	n := sampleCount
	if packedLen(n, width) != len(packed) {
		n = len(packed) * 8 / width
	}

	br := newBitReader(packed)
	bytesPer := container / 8
	out := make([]byte, 0, n*bytesPer)
	for i := 0; i < n; i++ {
		v, ok := br.readBits(width)
		if !ok {
			break
		}
		s := uint16(v) << shift
		if bytesPer == 1 {
			out = append(out, byte(s))
		} else {
			out = append(out, byte(s), byte(s>>8))
		}
	}
	return out
}
