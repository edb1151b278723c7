package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestImage(width, height, bits int) *ImageData {
	img := NewImageData(width, height, bits, 1, nil)
	img.PixelData = make([]byte, img.ExpectedSize())
	for i := range img.PixelData {
		img.PixelData[i] = byte(i % 256)
	}
	img.PhotometricInterpretation = "MONOCHROME2"
	return img
}

func TestImageDataExpectedSize(t *testing.T) {
	img := NewImageData(512, 512, 16, 1, make([]byte, 512*512*2))
	assert.Equal(t, 512*512*2, img.ExpectedSize())
	assert.Equal(t, 2, img.BytesPerSample())

	assert.Equal(t, 10*10*3, ExpectedSize(10, 10, 8, 3))
	assert.Equal(t, 10*10*2, ExpectedSize(10, 10, 12, 1))
	assert.Equal(t, 10*10, ExpectedSize(10, 10, 1, 1))
}

func TestImageDataValidate(t *testing.T) {
	tests := []struct {
		name    string
		img     *ImageData
		wantErr error
	}{
		{"valid", NewImageData(64, 64, 8, 1, make([]byte, 64*64)), nil},
		{"nil", nil, ErrEmptyPixelData},
		{"zero width", NewImageData(0, 64, 8, 1, make([]byte, 64)), ErrInvalidDimensions},
		{"zero height", NewImageData(64, 0, 8, 1, make([]byte, 64)), ErrInvalidDimensions},
		{"zero samples", NewImageData(8, 8, 8, 0, make([]byte, 64)), ErrInvalidDimensions},
		{"17 bits", NewImageData(8, 8, 17, 1, make([]byte, 8*8*3)), ErrUnsupportedBitDepth},
		{"empty", NewImageData(64, 64, 8, 1, nil), ErrEmptyPixelData},
		{"too small", NewImageData(64, 64, 8, 1, make([]byte, 100)), ErrSizeMismatch},
		{"too large", NewImageData(4, 4, 8, 1, make([]byte, 17)), ErrSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.img.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsKind(err, KindImageData), "want image-data error, got %v", err)
		})
	}
}

func TestSizeMismatchMessage(t *testing.T) {
	err := NewImageData(64, 64, 8, 1, make([]byte, 100)).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4096 bytes, got 100")
}

func TestErrorKinds(t *testing.T) {
	err := CodecError("decode", ErrTooShort, "%d bytes", 3)
	assert.True(t, IsKind(err, KindCodec))
	assert.False(t, IsKind(err, KindImageData))
	assert.ErrorIs(t, err, ErrTooShort)
	assert.False(t, IsKind(errors.New("plain"), KindCodec))

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "decode", ce.Op)
}

func TestCanEncodeWith(t *testing.T) {
	caps := Capabilities{MaxBitsPerSample: 16, SupportsSigned: false, SupportsColor: false}

	img := createTestImage(4, 4, 8)
	assert.True(t, CanEncodeWith(caps, img))

	img.BitsPerSample = 17
	assert.False(t, CanEncodeWith(caps, img), "17 bits exceeds max")

	img = createTestImage(4, 4, 8)
	img.SamplesPerPixel = 3
	assert.False(t, CanEncodeWith(caps, img), "color not supported")

	img = createTestImage(4, 4, 8)
	img.IsSigned = true
	assert.False(t, CanEncodeWith(caps, img), "signed not supported")

	assert.False(t, CanEncodeWith(caps, nil))
}

func TestUncompressedPassthrough(t *testing.T) {
	c := NewUncompressed()
	img := createTestImage(16, 16, 16)

	encoded, err := c.Encode(img, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, img.PixelData, encoded)

	encoded[0] ^= 0xFF
	assert.NotEqual(t, img.PixelData[0], encoded[0], "encode must copy, not alias")

	encoded[0] ^= 0xFF
	decoded, err := c.Decode(encoded, 16, 16, 16, 1)
	require.NoError(t, err)
	assert.Equal(t, img.PixelData, decoded.PixelData)
	assert.Equal(t, 16, decoded.Width)
	assert.Equal(t, 16, decoded.BitsPerSample)

	uid, ok := c.TransferSyntaxUID(true)
	assert.True(t, ok)
	assert.Equal(t, "1.2.840.10008.1.2.1", uid)
	_, ok = c.TransferSyntaxUID(false)
	assert.False(t, ok)
}

func TestSamples16RoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0xFF, 0xFF, 0x00, 0x80}
	samples := Samples16(data)
	assert.Equal(t, []uint16{0x0201, 0xFFFF, 0x8000}, samples)
	assert.Equal(t, data, Bytes16(samples))
}
