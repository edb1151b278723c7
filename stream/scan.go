package stream

import "encoding/binary"

// Uint16 reads a big-endian value at off. It returns false when fewer than
// two bytes remain.
func Uint16(data []byte, off int) (uint16, bool) {
	if off < 0 || off+2 > len(data) {
		return 0, false
	}
	return binary.BigEndian.Uint16(data[off:]), true
}

// HasMarker reports whether data holds marker at off.
func HasMarker(data []byte, off int, marker uint16) bool {
	v, ok := Uint16(data, off)
	return ok && v == marker
}

// IndexMarker returns the offset of the first occurrence of marker at or
// after from, or -1.
func IndexMarker(data []byte, from int, marker uint16) int {
	hi, lo := byte(marker>>8), byte(marker)
	if from < 0 {
		from = 0
	}
	for i := from; i+1 < len(data); i++ {
		if data[i] == hi && data[i+1] == lo {
			return i
		}
	}
	return -1
}

// HasTrailingMarker reports whether data ends with marker.
func HasTrailingMarker(data []byte, marker uint16) bool {
	return HasMarker(data, len(data)-2, marker)
}

// PayloadEnd returns the end of a payload starting at start: the position of
// a trailing end marker when present, otherwise len(data).
func PayloadEnd(data []byte, start int, endMarker uint16) int {
	if len(data)-2 >= start && HasTrailingMarker(data, endMarker) {
		return len(data) - 2
	}
	return len(data)
}
