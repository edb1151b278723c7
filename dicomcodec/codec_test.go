package dicomcodec

import (
	"testing"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-dicom/pkg/imaging/codec"
	"github.com/cocosip/go-dicom/pkg/imaging/imagetypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monoFrameInfo(width, height, bits int) *imagetypes.FrameInfo {
	allocated := 8
	if bits > 8 {
		allocated = 16
	}
	return &imagetypes.FrameInfo{
		Width:                     uint16(width),
		Height:                    uint16(height),
		BitsAllocated:             uint16(allocated),
		BitsStored:                uint16(bits),
		HighBit:                   uint16(bits - 1),
		SamplesPerPixel:           1,
		PixelRepresentation:       0,
		PlanarConfiguration:       0,
		PhotometricInterpretation: "MONOCHROME2",
	}
}

func makeFrame(width, height, bits, seed int) []byte {
	if bits <= 8 {
		frame := make([]byte, width*height)
		for i := range frame {
			frame[i] = byte((i*7 + seed) % 256)
		}
		return frame
	}
	frame := make([]byte, width*height*2)
	limit := 1 << bits
	for i := 0; i < width*height; i++ {
		v := (i*131 + seed) % limit
		frame[i*2] = byte(v)
		frame[i*2+1] = byte(v >> 8)
	}
	return frame
}

func TestLosslessRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		codec *Codec
		bits  int
	}{
		{"j2k 8-bit", NewJPEG2000Lossless(), 8},
		{"j2k 12-bit", NewJPEG2000Lossless(), 12},
		{"jls 8-bit", NewJPEGLSLossless(), 8},
		{"jls 16-bit", NewJPEGLSLossless(), 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := monoFrameInfo(24, 16, tt.bits)
			src := newTestPixelData(info)
			frames := [][]byte{makeFrame(24, 16, tt.bits, 0), makeFrame(24, 16, tt.bits, 99)}
			for _, f := range frames {
				require.NoError(t, src.AddFrame(f))
			}

			encoded := newTestPixelData(info)
			require.NoError(t, tt.codec.Encode(src, encoded, nil))
			require.Equal(t, 2, encoded.FrameCount())

			decoded := newTestPixelData(info)
			require.NoError(t, tt.codec.Decode(encoded, decoded, nil))
			require.Equal(t, 2, decoded.FrameCount())
			for i, want := range frames {
				got, err := decoded.GetFrame(i)
				require.NoError(t, err)
				assert.Equal(t, want, got, "frame %d", i)
			}
		})
	}
}

func TestNearLosslessParameter(t *testing.T) {
	c := NewJPEGLSNearLossless(2)
	info := monoFrameInfo(32, 8, 8)
	frame := makeFrame(32, 8, 8, 3)

	for _, near := range []int{0, 3, 7} {
		src := newTestPixelData(info)
		require.NoError(t, src.AddFrame(frame))

		params := codec.NewBaseParameters()
		params.SetParameter("near", near)

		encoded := newTestPixelData(info)
		require.NoError(t, c.Encode(src, encoded, params))
		decoded := newTestPixelData(info)
		require.NoError(t, c.Decode(encoded, decoded, nil))

		got, err := decoded.GetFrame(0)
		require.NoError(t, err)
		require.Len(t, got, len(frame))
		for i := range frame {
			diff := int(got[i]) - int(frame[i])
			if diff < 0 {
				diff = -diff
			}
			require.LessOrEqual(t, diff, near, "near=%d pixel %d", near, i)
		}
	}
}

func TestLossyJPEG2000(t *testing.T) {
	c := NewJPEG2000Lossy(8)
	info := monoFrameInfo(32, 32, 8)
	src := newTestPixelData(info)
	frame := makeFrame(32, 32, 8, 0)
	require.NoError(t, src.AddFrame(frame))

	encoded := newTestPixelData(info)
	require.NoError(t, c.Encode(src, encoded, nil))
	data, err := encoded.GetFrame(0)
	require.NoError(t, err)
	assert.Less(t, len(data), len(frame))

	decoded := newTestPixelData(info)
	require.NoError(t, c.Decode(encoded, decoded, nil))
	got, err := decoded.GetFrame(0)
	require.NoError(t, err)
	assert.Len(t, got, len(frame))
}

func TestEncodeErrors(t *testing.T) {
	c := NewJPEGLSLossless()
	info := monoFrameInfo(4, 4, 8)

	assert.Error(t, c.Encode(nil, newTestPixelData(info), nil))
	assert.Error(t, c.Encode(newTestPixelData(nil), newTestPixelData(info), nil), "missing frame info")

	src := newTestPixelData(info)
	require.NoError(t, src.AddFrame(nil))
	err := c.Encode(src, newTestPixelData(info), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 0 pixel data is empty")

	src = newTestPixelData(info)
	require.NoError(t, src.AddFrame(make([]byte, 5)))
	err = c.Encode(src, newTestPixelData(info), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frame 0")
}

func TestDecodeCorruptFrame(t *testing.T) {
	c := NewJPEG2000Lossless()
	info := monoFrameInfo(4, 4, 8)
	src := newTestPixelData(info)
	require.NoError(t, src.AddFrame([]byte{0x00, 0x01, 0x02}))

	err := c.Decode(src, newTestPixelData(info), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode failed for frame 0")
}

func TestParameters(t *testing.T) {
	p := NewParameters()
	assert.Equal(t, 1, p.GetParameter("layers"))

	p.SetParameter("ratio", 12)
	assert.Equal(t, 12.0, p.Ratio)
	p.SetParameter("near", 4)
	assert.Equal(t, 4, p.GetParameter("near"))
	p.SetParameter("custom", "x")
	assert.Equal(t, "x", p.GetParameter("custom"))

	p.Near = 999
	p.Layers = 0
	p.Ratio = -3
	require.NoError(t, p.Validate())
	assert.Equal(t, 0, p.Near)
	assert.Equal(t, 1, p.Layers)
	assert.Equal(t, 0.0, p.Ratio)

	defaults := NewJPEGLSNearLossless(5).GetDefaultParameters()
	assert.Equal(t, 5, defaults.GetParameter("near"))
	assert.Equal(t, 2, NewJPEGLSNearLossless(-1).GetDefaultParameters().GetParameter("near"))
}

func TestTransferSyntaxes(t *testing.T) {
	tests := []struct {
		codec *Codec
		uid   string
	}{
		{NewJPEG2000Lossless(), "1.2.840.10008.1.2.4.90"},
		{NewJPEG2000Lossy(0), "1.2.840.10008.1.2.4.91"},
		{NewJPEGLSLossless(), "1.2.840.10008.1.2.4.80"},
		{NewJPEGLSNearLossless(2), "1.2.840.10008.1.2.4.81"},
	}
	for _, tt := range tests {
		t.Run(tt.codec.Name(), func(t *testing.T) {
			assert.Equal(t, tt.uid, tt.codec.TransferSyntax().UID().UID())
		})
	}
}

func TestRegistered(t *testing.T) {
	registry := codec.GetGlobalRegistry()
	for _, ts := range []*transfer.Syntax{transfer.JPEGLSLossless, transfer.JPEGLSNearLossless, transfer.JPEG2000Lossless} {
		c, exists := registry.GetCodec(ts)
		require.True(t, exists, ts.UID().UID())
		_, ok := c.(*Codec)
		assert.True(t, ok, ts.UID().UID())
	}
}
