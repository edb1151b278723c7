package codec

import "encoding/binary"

// Samples16 reads little-endian 16-bit samples. A trailing odd byte is ignored.
func Samples16(data []byte) []uint16 {
	samples := make([]uint16, len(data)/2)
	for i := range samples {
		samples[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return samples
}

// Bytes16 writes samples as little-endian 16-bit values.
func Bytes16(samples []uint16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], s)
	}
	return data
}
