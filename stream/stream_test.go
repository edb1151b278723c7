package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSegment(t *testing.T) {
	b := NewBuffer(16)
	require.NoError(t, b.WriteMarker(0xFFD8))
	require.NoError(t, b.WriteSegment(0xFF5C, []byte{0x22, 0x00}))
	require.NoError(t, b.WriteUint32(0x01020304))
	require.NoError(t, b.WriteByte(0xAB))
	require.NoError(t, b.WriteBytes([]byte{0xFF, 0xD9}))

	want := []byte{
		0xFF, 0xD8,
		0xFF, 0x5C, 0x00, 0x04, 0x22, 0x00,
		0x01, 0x02, 0x03, 0x04,
		0xAB,
		0xFF, 0xD9,
	}
	assert.Equal(t, want, b.Bytes())
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n == 0 {
		return 0, errors.New("disk full")
	}
	f.n--
	return len(p), nil
}

func TestWriterStickyError(t *testing.T) {
	fw := &failingWriter{n: 1}
	w := NewWriter(fw)
	assert.NoError(t, w.WriteMarker(0xFF4F))
	assert.Error(t, w.WriteUint16(1))
	assert.Error(t, w.WriteBytes([]byte{1}))
	assert.EqualError(t, w.Err(), "disk full")
}

func TestIndexMarker(t *testing.T) {
	data := []byte{0xFF, 0x4F, 0x00, 0xFF, 0x93, 0x01, 0xFF, 0x93}

	tests := []struct {
		name string
		from int
		want int
	}{
		{"from start", 0, 3},
		{"after first", 4, 6},
		{"past end", 7, -1},
		{"negative from", -3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndexMarker(data, tt.from, 0xFF93))
		})
	}
	assert.Equal(t, -1, IndexMarker(nil, 0, 0xFF93))
}

func TestTrailingMarker(t *testing.T) {
	data := []byte{0xFF, 0x93, 0x01, 0x02, 0xFF, 0xD9}
	assert.True(t, HasTrailingMarker(data, 0xFFD9))
	assert.False(t, HasTrailingMarker(data[:5], 0xFFD9))
	assert.False(t, HasTrailingMarker([]byte{0xD9}, 0xFFD9))

	assert.Equal(t, 4, PayloadEnd(data, 2, 0xFFD9))
	assert.Equal(t, 5, PayloadEnd(data[:5], 2, 0xFFD9))
}

func TestUint16(t *testing.T) {
	v, ok := Uint16([]byte{0x12, 0x34}, 0)
	assert.True(t, ok)
	assert.Equal(t, uint16(0x1234), v)

	_, ok = Uint16([]byte{0x12}, 0)
	assert.False(t, ok)
	assert.True(t, HasMarker([]byte{0, 0xFF, 0xD8}, 1, 0xFFD8))
}
