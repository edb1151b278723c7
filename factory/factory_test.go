package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocosip/go-medimg-codec/codec"
)

func TestNew(t *testing.T) {
	tests := []struct {
		typ  codec.Type
		name string
	}{
		{codec.TypeJPEG2000, "JPEG 2000"},
		{codec.TypeJPEGLS, "JPEG-LS"},
		{codec.TypeUncompressed, "Uncompressed"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			c, err := New(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.name, c.Info().Name)
		})
	}

	_, err := New(codec.Type(99))
	assert.ErrorIs(t, err, codec.ErrCodecNotFound)
}

func TestForConfig(t *testing.T) {
	c, err := ForConfig(codec.NearLosslessConfig(2))
	require.NoError(t, err)
	assert.Equal(t, "JPEG-LS", c.Info().Name)

	_, err = ForConfig(nil)
	assert.ErrorIs(t, err, codec.ErrInvalidParameter)
}

// Scenario C through the factory: every codec rejects an empty buffer.
func TestEmptyBufferRejected(t *testing.T) {
	for _, typ := range []codec.Type{codec.TypeJPEG2000, codec.TypeJPEGLS} {
		c, err := New(typ)
		require.NoError(t, err)
		out, err := c.Encode(codec.NewImageData(16, 16, 8, 1, []byte{}), codec.LosslessConfig(typ))
		assert.Nil(t, out, typ.String())
		assert.True(t, codec.IsKind(err, codec.KindImageData), "%v: %v", typ, err)
	}
}

func TestPassthroughRoundTrip(t *testing.T) {
	c, err := New(codec.TypeUncompressed)
	require.NoError(t, err)

	pixels := []byte{1, 2, 3, 4, 5, 6}
	out, err := c.Encode(codec.NewImageData(3, 1, 16, 1, pixels), nil)
	require.NoError(t, err)
	img, err := c.Decode(out, 3, 1, 16, 1)
	require.NoError(t, err)
	assert.Equal(t, pixels, img.PixelData)
}
